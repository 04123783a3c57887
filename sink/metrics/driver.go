// Package metrics exports the running aggregates as Prometheus gauges,
// an alternative "chart" that scrapers can poll instead of a terminal.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"buzzline/internal/event"
	"buzzline/sink"
	"buzzline/sink/aggregate"
)

/* ────────── public config ────────── */
type Config struct {
	// Registerer defaults to prometheus.DefaultRegisterer; tests pass
	// their own registry.
	Registerer prometheus.Registerer
}

/* ────────── driver ────────── */
type driver struct {
	mean       *aggregate.MeanByAuthor
	byAuthor   *aggregate.CountBy
	byCategory *aggregate.CountBy

	sentimentAvg  *prometheus.GaugeVec
	authorTotal   *prometheus.GaugeVec
	categoryTotal *prometheus.GaugeVec
}

func newDriver() sink.Adapter {
	return &driver{
		mean:       aggregate.NewMeanByAuthor(),
		byAuthor:   aggregate.NewCountByAuthor(),
		byCategory: aggregate.NewCountByCategory(),
	}
}

/* ────────── sink.Adapter ────────── */

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("metrics-sink: expected Config, got %T", raw)
	}
	reg := c.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	d.sentimentAvg = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "buzzline",
		Name:      "author_sentiment_avg",
		Help:      "Running mean sentiment per author",
	}, []string{"author"})
	d.authorTotal = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "buzzline",
		Name:      "author_messages_total",
		Help:      "Messages consumed per author",
	}, []string{"author"})
	d.categoryTotal = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "buzzline",
		Name:      "category_messages_total",
		Help:      "Messages consumed per category",
	}, []string{"category"})

	for _, col := range []prometheus.Collector{d.sentimentAvg, d.authorTotal, d.categoryTotal} {
		if err := reg.Register(col); err != nil {
			return fmt.Errorf("metrics-sink: register: %w", err)
		}
	}
	return nil
}

func (d *driver) Record(e *event.Event) error {
	d.mean.Record(e)
	d.byAuthor.Record(e)
	d.byCategory.Record(e)

	for _, kv := range d.mean.Snapshot() {
		d.sentimentAvg.WithLabelValues(kv.Key).Set(kv.Value)
	}
	for _, kv := range d.byAuthor.Snapshot() {
		d.authorTotal.WithLabelValues(kv.Key).Set(kv.Value)
	}
	for _, kv := range d.byCategory.Snapshot() {
		d.categoryTotal.WithLabelValues(kv.Key).Set(kv.Value)
	}
	return nil
}

func (d *driver) Close() error { return nil }

/* ────────── sink.Snapshotter ────────── */

func (d *driver) Snapshot() []sink.KV { return d.mean.Snapshot() }

/* ────────── auto-register ────────── */
func init() {
	sink.Register("metrics", newDriver)
}

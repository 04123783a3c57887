// Package chart is the live-chart sink: it folds events into in-memory
// aggregates and redraws a bar chart through a render.Renderer.
package chart

import (
	"fmt"
	"os"

	"buzzline/internal/event"
	"buzzline/internal/render"
	"buzzline/sink"
	"buzzline/sink/aggregate"
)

/* ────────── public YAML config ────────── */
type Config struct {
	RedrawEvery int `yaml:"redraw_every"` // 1 = redraw per event (default)
	Width       int `yaml:"width"`        // bar width in characters
}

/* ────────── driver ────────── */

// panel pairs one aggregate with its chart title.
type panel struct {
	title  string
	prefix string // snapshot key prefix when the driver has several panels
	agg    aggregate.Aggregator
}

type driver struct {
	cfg    Config
	r      render.Renderer
	panels []panel
	seen   int // events since start
	drawn  int // events at last redraw
}

func newSentiment() sink.Adapter {
	return &driver{panels: []panel{
		{title: "Average Sentiment by Author", agg: aggregate.NewMeanByAuthor()},
	}}
}

func newCounts() sink.Adapter {
	return &driver{panels: []panel{
		{title: "Messages by Author", prefix: "author", agg: aggregate.NewCountByAuthor()},
		{title: "Messages by Category", prefix: "category", agg: aggregate.NewCountByCategory()},
	}}
}

/* ────────── sink.Adapter ────────── */

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("chart-sink: expected Config, got %T", raw)
	}
	if c.RedrawEvery <= 0 {
		c.RedrawEvery = 1
	}
	d.cfg = c
	if d.r == nil {
		d.r = render.NewTermWidth(os.Stdout, c.Width)
	}
	return nil
}

func (d *driver) Record(e *event.Event) error {
	for _, p := range d.panels {
		p.agg.Record(e)
	}
	d.seen++
	if d.seen%d.cfg.RedrawEvery == 0 {
		d.redraw()
	}
	return nil
}

func (d *driver) Close() error {
	// flush anything recorded since the last redraw
	if d.seen > d.drawn {
		d.redraw()
	}
	return nil
}

/* ────────── sink.Snapshotter ────────── */

func (d *driver) Snapshot() []sink.KV {
	if len(d.panels) == 1 {
		return d.panels[0].agg.Snapshot()
	}
	var out []sink.KV
	for _, p := range d.panels {
		for _, kv := range p.agg.Snapshot() {
			out = append(out, sink.KV{Key: p.prefix + ":" + kv.Key, Value: kv.Value})
		}
	}
	return out
}

/* ────────── renderer injection ────────── */

// BindRenderer replaces the default terminal renderer. Must be called
// before Configure.
func (d *driver) BindRenderer(r render.Renderer) { d.r = r }

func (d *driver) redraw() {
	if d.r == nil {
		return
	}
	for _, p := range d.panels {
		d.r.Render(p.title, p.agg.Snapshot())
	}
	d.drawn = d.seen
}

/* ────────── auto-register ────────── */
func init() {
	sink.Register("chart_sentiment", newSentiment)
	sink.Register("chart_counts", newCounts)
}

package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RecordsConsumed counts every record pulled from the source,
	// decodable or not.
	RecordsConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "buzzline",
		Name:      "records_consumed_total",
		Help:      "Records pulled from the source",
	})

	// DecodeFailures counts dropped records by failure kind
	// (malformed, not_an_object).
	DecodeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "buzzline",
		Name:      "decode_failures_total",
		Help:      "Records dropped because they could not be decoded",
	}, []string{"kind"})

	// SinkFailures counts failed sink updates by sink name. The record
	// is dropped for that sink only.
	SinkFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "buzzline",
		Name:      "sink_failures_total",
		Help:      "Failed sink updates",
	}, []string{"sink"})
)

func Expose(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
	}()
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"buzzline/internal/event"
)

func TestMetricsSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	d := newDriver().(*driver)
	if err := d.Configure(Config{Registerer: reg}); err != nil {
		t.Fatalf("configure: %v", err)
	}

	events := []*event.Event{
		{Author: "Eve", Category: "humor", Sentiment: 0.5},
		{Author: "Eve", Category: "tech", Sentiment: 1.5},
		{Author: "Charlie", Category: "humor", Sentiment: -0.2},
	}
	for _, e := range events {
		if err := d.Record(e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	if got := testutil.ToFloat64(d.sentimentAvg.WithLabelValues("Eve")); got != 1.0 {
		t.Fatalf("Eve sentiment avg = %g, want 1.0", got)
	}
	if got := testutil.ToFloat64(d.authorTotal.WithLabelValues("Eve")); got != 2 {
		t.Fatalf("Eve message count = %g, want 2", got)
	}
	if got := testutil.ToFloat64(d.categoryTotal.WithLabelValues("humor")); got != 2 {
		t.Fatalf("humor count = %g, want 2", got)
	}

	snap := d.Snapshot()
	if len(snap) != 2 || snap[0].Key != "Charlie" || snap[1].Key != "Eve" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestMetricsSink_DoubleRegisterFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := newDriver()
	if err := a.Configure(Config{Registerer: reg}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	b := newDriver()
	if err := b.Configure(Config{Registerer: reg}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

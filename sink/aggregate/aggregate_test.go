package aggregate

import (
	"fmt"
	"math"
	"testing"

	"buzzline/internal/event"
	"buzzline/sink"
)

func evt(author, category string, sentiment float64) *event.Event {
	return &event.Event{Author: author, Category: category, Sentiment: sentiment}
}

func TestMeanByAuthor(t *testing.T) {
	m := NewMeanByAuthor()
	m.Record(evt("Eve", "humor", 0.5))
	m.Record(evt("Eve", "tech", 1.5))
	m.Record(evt("Charlie", "humor", -0.2))

	snap := m.Snapshot()
	want := []sink.KV{{Key: "Charlie", Value: -0.2}, {Key: "Eve", Value: 1.0}}
	if len(snap) != len(want) {
		t.Fatalf("snapshot size: got %d want %d", len(snap), len(want))
	}
	for i := range want {
		if snap[i].Key != want[i].Key || math.Abs(snap[i].Value-want[i].Value) > 1e-9 {
			t.Fatalf("snapshot[%d]: got %+v want %+v", i, snap[i], want[i])
		}
	}
}

// The incremental running mean and the recompute-from-history mean must
// agree for every author on the same input sequence.
func TestMeanEquivalence(t *testing.T) {
	inc := NewMeanByAuthor()
	hist := NewHistoryMean()

	authors := []string{"Alice", "Bob", "Charlie", "Eve"}
	for i := 0; i < 500; i++ {
		e := evt(authors[i%len(authors)], "misc", math.Sin(float64(i))*float64(i%7)-0.3)
		inc.Record(e)
		hist.Record(e)
	}
	if hist.Len() != 500 {
		t.Fatalf("history retained %d events, want 500", hist.Len())
	}

	a, b := inc.Snapshot(), hist.Snapshot()
	if len(a) != len(b) {
		t.Fatalf("snapshot sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			t.Fatalf("key mismatch at %d: %q vs %q", i, a[i].Key, b[i].Key)
		}
		if math.Abs(a[i].Value-b[i].Value) > 1e-9 {
			t.Fatalf("mean mismatch for %q: %g vs %g", a[i].Key, a[i].Value, b[i].Value)
		}
	}
}

func TestCountBy(t *testing.T) {
	byAuthor := NewCountByAuthor()
	byCategory := NewCountByCategory()

	events := []*event.Event{
		evt("Eve", "humor", 0),
		evt("Eve", "tech", 0),
		evt("Charlie", "humor", 0),
	}
	for _, e := range events {
		byAuthor.Record(e)
		byCategory.Record(e)
	}

	got := byAuthor.Snapshot()
	if len(got) != 2 || got[0] != (sink.KV{Key: "Charlie", Value: 1}) || got[1] != (sink.KV{Key: "Eve", Value: 2}) {
		t.Fatalf("author counts: %+v", got)
	}
	got = byCategory.Snapshot()
	if len(got) != 2 || got[0] != (sink.KV{Key: "humor", Value: 2}) || got[1] != (sink.KV{Key: "tech", Value: 1}) {
		t.Fatalf("category counts: %+v", got)
	}
}

// Once a key shows up in a snapshot it never disappears, and its count
// never decreases.
func TestMonotonicKeySet(t *testing.T) {
	c := NewCountByAuthor()

	seen := map[string]float64{}
	for i := 0; i < 100; i++ {
		c.Record(evt(fmt.Sprintf("author-%d", i%10), "", 0))

		prev := seen
		seen = map[string]float64{}
		for _, kv := range c.Snapshot() {
			seen[kv.Key] = kv.Value
		}
		for k, v := range prev {
			cur, ok := seen[k]
			if !ok {
				t.Fatalf("key %q disappeared after event %d", k, i)
			}
			if cur < v {
				t.Fatalf("count for %q decreased: %g -> %g", k, v, cur)
			}
		}
	}
}

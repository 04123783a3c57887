// Package aggregate holds the in-memory running statistics the chart
// and metrics sinks are built on. State is owned by whoever holds the
// aggregator; none of it is global. Keys are never removed once seen.
package aggregate

import (
	"sort"

	"buzzline/internal/event"
	"buzzline/sink"
)

// Aggregator folds events into a keyed running statistic.
type Aggregator interface {
	Record(*event.Event)
	Snapshot() []sink.KV
}

// MeanByAuthor maintains the arithmetic mean of sentiment per author
// incrementally, one running sum and count per key.
type MeanByAuthor struct {
	sums   map[string]float64
	counts map[string]int64
}

func NewMeanByAuthor() *MeanByAuthor {
	return &MeanByAuthor{
		sums:   make(map[string]float64),
		counts: make(map[string]int64),
	}
}

func (m *MeanByAuthor) Record(e *event.Event) {
	m.sums[e.Author] += e.Sentiment
	m.counts[e.Author]++
}

func (m *MeanByAuthor) Snapshot() []sink.KV {
	out := make([]sink.KV, 0, len(m.counts))
	for author, n := range m.counts {
		out = append(out, sink.KV{Key: author, Value: m.sums[author] / float64(n)})
	}
	sortByKey(out)
	return out
}

// HistoryMean computes the same per-author sentiment mean as
// MeanByAuthor but retains the full event history and recomputes on
// every snapshot, the way the pandas-based consumer did. Kept as a
// second policy so the two can be checked against each other.
type HistoryMean struct {
	authors    []string
	sentiments []float64
}

func NewHistoryMean() *HistoryMean { return &HistoryMean{} }

func (h *HistoryMean) Record(e *event.Event) {
	h.authors = append(h.authors, e.Author)
	h.sentiments = append(h.sentiments, e.Sentiment)
}

func (h *HistoryMean) Snapshot() []sink.KV {
	sums := make(map[string]float64)
	counts := make(map[string]int64)
	for i, author := range h.authors {
		sums[author] += h.sentiments[i]
		counts[author]++
	}
	out := make([]sink.KV, 0, len(counts))
	for author, n := range counts {
		out = append(out, sink.KV{Key: author, Value: sums[author] / float64(n)})
	}
	sortByKey(out)
	return out
}

// Len returns the number of retained events.
func (h *HistoryMean) Len() int { return len(h.authors) }

// CountBy counts events per key, one increment per event.
type CountBy struct {
	key    func(*event.Event) string
	counts map[string]int64
}

func NewCountByAuthor() *CountBy {
	return &CountBy{
		key:    func(e *event.Event) string { return e.Author },
		counts: make(map[string]int64),
	}
}

func NewCountByCategory() *CountBy {
	return &CountBy{
		key:    func(e *event.Event) string { return e.Category },
		counts: make(map[string]int64),
	}
}

func (c *CountBy) Record(e *event.Event) {
	c.counts[c.key(e)]++
}

func (c *CountBy) Snapshot() []sink.KV {
	out := make([]sink.KV, 0, len(c.counts))
	for k, n := range c.counts {
		out = append(out, sink.KV{Key: k, Value: float64(n)})
	}
	sortByKey(out)
	return out
}

func sortByKey(kvs []sink.KV) {
	sort.Slice(kvs, func(i, j int) bool { return kvs[i].Key < kvs[j].Key })
}

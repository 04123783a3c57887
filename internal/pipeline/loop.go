// Package pipeline holds the consumer control loop: pull a record,
// decode it, update every sink, repeat. Strictly sequential — one
// record is fully processed before the next is pulled.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"buzzline/internal/event"
	"buzzline/internal/logging"
	"buzzline/internal/telemetry"
	"buzzline/sink"
	"buzzline/source/kafka"
)

// State is the loop lifecycle. Closed is terminal; there is no restart
// path.
type State int32

const (
	Idle State = iota
	Running
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "closed"
	}
}

// SinkFailure names the sink whose update failed for one record.
type SinkFailure struct {
	Sink string
	Err  error
}

// Result is the structured outcome of one record. Failures never abort
// the loop; callers that care about failure rates read Results (or the
// cumulative Stats).
type Result struct {
	Offset    int64
	Event     *event.Event // nil when decoding failed
	DecodeErr error
	SinkErrs  []SinkFailure
}

func (r Result) OK() bool { return r.DecodeErr == nil && len(r.SinkErrs) == 0 }

// Stats are cumulative counters over the life of the loop.
type Stats struct {
	Records        uint64
	DecodeFailures uint64
	SinkFailures   uint64
}

type namedSink struct {
	name string
	s    sink.Adapter
}

type Loop struct {
	source   kafka.Adapter
	sinks    []namedSink
	onUpdate func()

	state     atomic.Int32
	closeOnce sync.Once

	records        atomic.Uint64
	decodeFailures atomic.Uint64
	sinkFailures   atomic.Uint64
}

func NewLoop() *Loop { return &Loop{} }

func (l *Loop) SetSource(s kafka.Adapter) { l.source = s }

// AddSink appends a sink; sinks are updated in add order.
func (l *Loop) AddSink(name string, s sink.Adapter) {
	l.sinks = append(l.sinks, namedSink{name: name, s: s})
}

// OnUpdate registers a hook invoked once per record after at least one
// sink updated successfully. Rendering collaborators hang off this
// instead of the decode/sink path.
func (l *Loop) OnUpdate(fn func()) { l.onUpdate = fn }

func (l *Loop) State() State { return State(l.state.Load()) }

func (l *Loop) Stats() Stats {
	return Stats{
		Records:        l.records.Load(),
		DecodeFailures: l.decodeFailures.Load(),
		SinkFailures:   l.sinkFailures.Load(),
	}
}

// Run drives the loop until ctx is cancelled or the source reports a
// permanent failure. The source is released exactly once on every exit
// path. Cancellation is treated as a clean shutdown and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	if l.source == nil {
		return errors.New("pipeline: no source configured")
	}
	if !l.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return errors.New("pipeline: loop already started")
	}
	defer l.close()

	err := l.source.Run(ctx, func(rec kafka.Record) error {
		l.Process(rec)
		// record-level failures are logged and counted, never fatal
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.L().Error("pipeline: source failed", "err", err)
		return err
	}
	logging.L().Info("pipeline: interrupted, shutting down")
	return nil
}

// Process decodes one record and updates every sink. A decode failure
// drops the record; a sink failure drops the record for that sink only
// and never blocks the remaining sinks.
func (l *Loop) Process(rec kafka.Record) Result {
	l.records.Add(1)
	telemetry.RecordsConsumed.Inc()
	logging.L().Debug("pipeline: received record",
		"topic", rec.Topic, "partition", rec.Partition, "offset", rec.Offset)

	e, err := event.Decode(rec.Value)
	if err != nil {
		l.decodeFailures.Add(1)

		var de *event.DecodeError
		if errors.As(err, &de) && de.Kind == event.NotAnObject {
			telemetry.DecodeFailures.WithLabelValues(de.Kind.String()).Inc()
			logging.L().Error("pipeline: expected a JSON object", "offset", rec.Offset, "err", err)
		} else {
			telemetry.DecodeFailures.WithLabelValues(event.Malformed.String()).Inc()
			logging.L().Error("pipeline: invalid JSON message", "offset", rec.Offset, "err", err)
		}
		return Result{Offset: rec.Offset, DecodeErr: err}
	}

	res := Result{Offset: rec.Offset, Event: e}
	for _, ns := range l.sinks {
		if err := ns.s.Record(e); err != nil {
			l.sinkFailures.Add(1)
			telemetry.SinkFailures.WithLabelValues(ns.name).Inc()
			logging.L().Error("pipeline: sink update failed", "sink", ns.name, "err", err)
			res.SinkErrs = append(res.SinkErrs, SinkFailure{Sink: ns.name, Err: err})
		}
	}
	if l.onUpdate != nil && len(res.SinkErrs) < len(l.sinks) {
		l.onUpdate()
	}
	return res
}

func (l *Loop) close() {
	l.closeOnce.Do(func() {
		l.state.Store(int32(Closed))
		if err := l.source.Close(); err != nil {
			logging.L().Error("pipeline: source close failed", "err", err)
		}
		for _, ns := range l.sinks {
			if err := ns.s.Close(); err != nil {
				logging.L().Error("pipeline: sink close failed", "sink", ns.name, "err", err)
			}
		}
		logging.L().Info("pipeline: closed", "stats", l.Stats())
	})
}

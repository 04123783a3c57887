package sink

import (
	"fmt"

	"buzzline/internal/event"
)

// KV is one entry of an aggregate snapshot. Snapshots are ordered by
// Key and their key set only ever grows.
type KV struct {
	Key   string
	Value float64
}

// Adapter is the common behaviour every sink exposes.
type Adapter interface {
	Configure(any) error       // driver-specific YAML ⇒ struct
	Record(*event.Event) error // consume one decoded event
	Close() error              // idempotent
}

// Snapshotter is *optional*; aggregate-backed sinks expose their
// current state for rendering or export.
type Snapshotter interface {
	Snapshot() []KV
}

/*──────── registry ───────*/

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", name)
}

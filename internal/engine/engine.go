package engine

import (
	"context"

	"buzzline/internal/pipeline"
)

type Engine struct {
	loop *pipeline.Loop
}

// Run drives the consumer loop until ctx is cancelled or the source
// fails permanently.
func (e *Engine) Run(ctx context.Context) error {
	return e.loop.Run(ctx)
}

func (e *Engine) Stats() pipeline.Stats { return e.loop.Stats() }

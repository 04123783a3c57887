package engine

import (
	"fmt"

	"buzzline/internal/pipeline"
	"buzzline/internal/telemetry"
)

type Config struct {
	MetricsPort int
	ConsumerYml string
}

func Bootstrap(cfg Config) (*Engine, error) {
	// 1. consumer pipeline
	loop, err := pipeline.Compile(cfg.ConsumerYml)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	// 2. metrics
	telemetry.Expose(cfg.MetricsPort)

	return &Engine{loop: loop}, nil
}

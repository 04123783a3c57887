package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"buzzline/internal/engine"
	"buzzline/internal/logging"
	"buzzline/source/kafka"
)

func main() {
	configPath := flag.String("config", "consumer.yml", "path to the consumer YAML")
	metricsPort := flag.Int("metrics-port", 9100, "prometheus /metrics port")
	flag.Parse()

	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	kafka.Register("sarama", func() kafka.Adapter { return &kafka.SaramaDriver{} })

	e, err := engine.Bootstrap(engine.Config{
		MetricsPort: *metricsPort,
		ConsumerYml: *configPath,
	})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	// Runtime failures are logged, never escalated to a non-zero exit:
	// an interrupted or starved consumer still shuts down cleanly.
	if err := e.Run(ctx); err != nil {
		logging.L().Error("consumer stopped", "err", err)
	}
	logging.L().Info("consumer exited", "stats", e.Stats())
}

package pipeline

import (
	"fmt"

	"buzzline/internal/config"
	"buzzline/internal/logging"
	"buzzline/sink"
	"buzzline/sink/chart"
	"buzzline/sink/metrics"
	"buzzline/sink/sqlite"
	"buzzline/source/kafka"
)

// Compile builds a ready-to-run Loop from a consumer YAML. The sqlite
// sink's schema is ensured here, before the loop ever enters Running.
func Compile(path string) (*Loop, error) {
	l := NewLoop()
	if err := LoadYAML(path, l); err != nil {
		return nil, err
	}
	return l, nil
}

func LoadYAML(path string, l *Loop) error {
	cfg, confPath, err := config.LoadConsumerSpec(path)
	if err != nil {
		return err
	}
	if cfg.Log.Level != "" || cfg.Log.JSON {
		logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	}

	src, err := kafka.NewAdapter(cfg.Source.Driver)
	if err != nil {
		return err
	}
	kc, err := config.LoadKafkaConfig(confPath)
	if err != nil {
		return err
	}
	if err = src.Configure(kc); err != nil {
		return err
	}
	l.SetSource(src)

	for _, name := range cfg.Sinks {
		sDrv, err := sink.NewAdapter(name)
		if err != nil {
			return err
		}

		switch name {
		case "chart_sentiment", "chart_counts":
			err = sDrv.Configure(chart.Config{
				RedrawEvery: cfg.ChartRedrawEvery(),
				Width:       cfg.ChartWidth(),
			})
		case "sqlite":
			err = sDrv.Configure(sqlite.Config{Path: cfg.SQLitePath()})
		case "metrics":
			err = sDrv.Configure(metrics.Config{})
		default:
			err = fmt.Errorf("no config block for sink %q", name)
		}
		if err != nil {
			return err
		}
		l.AddSink(name, sDrv)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"buzzline/internal/spec"
)

const SupportedSchema = "v1"

// LoadConsumerSpec parses a consumer YAML, validates schema_version,
// and returns the parsed spec plus an absolute path to the Kafka
// source config (if set). A .env file alongside the process is loaded
// first so ${PROJECT_TOPIC}-style defaults resolve.
func LoadConsumerSpec(path string) (spec.File, string, error) {
	_ = godotenv.Load()

	var cfg spec.File
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, "", err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, "", err
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = SupportedSchema
	}
	if cfg.SchemaVersion != SupportedSchema {
		return cfg, "", fmt.Errorf("consumer schema_version %q not supported (want %q)", cfg.SchemaVersion, SupportedSchema)
	}
	applyDefaults(&cfg)

	confPath := cfg.Source.Config
	if confPath != "" && !filepath.IsAbs(confPath) {
		confPath = filepath.Join(filepath.Dir(path), confPath)
	}
	return cfg, confPath, nil
}

func applyDefaults(cfg *spec.File) {
	if cfg.Source.Driver == "" {
		cfg.Source.Driver = "sarama"
	}
	if len(cfg.Sinks) == 0 {
		cfg.Sinks = []string{"chart_sentiment"}
	}
}

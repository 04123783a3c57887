package kafka

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IBM/sarama"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PROJECT_TOPIC", "")
	t.Setenv("PROJECT_GROUP_ID", "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Topic != "buzzline-topic" {
		t.Fatalf("topic = %q, want buzzline-topic", cfg.Topic)
	}
	if cfg.GroupID != "buzzline-topic" {
		t.Fatalf("group_id = %q, want buzzline-topic", cfg.GroupID)
	}
	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != "localhost:9092" {
		t.Fatalf("brokers = %v", cfg.Brokers)
	}
	if cfg.StartFrom != "newest" {
		t.Fatalf("start_from = %q", cfg.StartFrom)
	}
	if _, err := sarama.ParseKafkaVersion(cfg.Version); err != nil {
		t.Fatalf("default version %q does not parse: %v", cfg.Version, err)
	}
}

func TestLoadConfig_ProjectEnvFallback(t *testing.T) {
	t.Setenv("PROJECT_TOPIC", "buzz-dev")
	t.Setenv("PROJECT_GROUP_ID", "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Topic != "buzz-dev" {
		t.Fatalf("topic = %q, want buzz-dev", cfg.Topic)
	}
	// group id has its own env key; unset it falls back to the literal
	if cfg.GroupID != "buzzline-topic" {
		t.Fatalf("group_id = %q, want buzzline-topic", cfg.GroupID)
	}
}

func TestLoadConfig_YAMLAndEnvOverride(t *testing.T) {
	t.Setenv("PROJECT_TOPIC", "")
	t.Setenv("PROJECT_GROUP_ID", "")
	t.Setenv("BUZZLINE_KAFKA__GROUP_ID", "override-group")

	path := filepath.Join(t.TempDir(), "kafka.yml")
	yml := "schema_version: v1\nbrokers:\n  - broker-1:9092\ntopic: from-yaml\ngroup_id: from-yaml\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Topic != "from-yaml" {
		t.Fatalf("topic = %q", cfg.Topic)
	}
	if cfg.GroupID != "override-group" {
		t.Fatalf("group_id = %q, env should win over yaml", cfg.GroupID)
	}
	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != "broker-1:9092" {
		t.Fatalf("brokers = %v", cfg.Brokers)
	}
}

func TestLoadConfig_UnsupportedSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kafka.yml")
	if err := os.WriteFile(path, []byte("schema_version: v2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected schema_version error")
	}
}

func TestRegistry(t *testing.T) {
	Register("fake", func() Adapter { return &SaramaDriver{} })
	if _, err := NewAdapter("fake"); err != nil {
		t.Fatalf("NewAdapter(fake): %v", err)
	}
	if _, err := NewAdapter("nope"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

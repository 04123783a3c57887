// Package spec defines the YAML shape of the consumer pipeline file.
package spec

type chartSection struct {
	RedrawEvery int `yaml:"redraw_every"`
	Width       int `yaml:"width"`
}

type sqliteSection struct {
	Path string `yaml:"path"`
}

type sinkConfigs struct {
	Chart  chartSection  `yaml:"chart"`
	SQLite sqliteSection `yaml:"sqlite"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	Source struct {
		Driver string `yaml:"driver"` // e.g. "sarama"
		Config string `yaml:"config"` // path to the kafka YAML, optional
	} `yaml:"source"`

	// Sinks to compose, in update order: chart_sentiment,
	// chart_counts, sqlite, metrics.
	Sinks       []string    `yaml:"sinks"`
	SinkConfigs sinkConfigs `yaml:"sink_configs"`

	Log struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	} `yaml:"log"`
}

func (f *File) ChartRedrawEvery() int { return f.SinkConfigs.Chart.RedrawEvery }
func (f *File) ChartWidth() int       { return f.SinkConfigs.Chart.Width }
func (f *File) SQLitePath() string    { return f.SinkConfigs.SQLite.Path }

// Package config loads the analysis configuration from a YAML file, applies
// environment overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root configuration of a run
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Layout   LayoutConfig   `yaml:"layout"`
	Render   RenderConfig   `yaml:"render"`
	Output   OutputConfig   `yaml:"output"`
	Publish  PublishConfig  `yaml:"publish"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputConfig selects where articles come from
type InputConfig struct {
	Source    string         `yaml:"source" validate:"oneof=csv postgres"`
	Path      string         `yaml:"path"`
	Delimiter string         `yaml:"delimiter" validate:"len=1"`
	Postgres  PostgresConfig `yaml:"postgres"`
}

// PostgresConfig configures the Postgres article source. Query must
// return authors, year, cites_per_year, title, cites.
type PostgresConfig struct {
	URL   string `yaml:"url"`
	Query string `yaml:"query"`
}

// AnalysisConfig holds the thresholds used for selection and ranking
type AnalysisConfig struct {
	HubDegree            int     `yaml:"hub_degree" validate:"gte=0"`
	BetweennessThreshold float64 `yaml:"betweenness_threshold" validate:"gte=0,lte=1"`
	TopNeighbors         int     `yaml:"top_neighbors" validate:"gte=1"`
	TopN                 int     `yaml:"top_n" validate:"gte=1"`
	HistogramBins        int     `yaml:"histogram_bins" validate:"gte=1,lte=1000"`
}

// LayoutConfig configures the network layout
type LayoutConfig struct {
	Algorithm  string  `yaml:"algorithm" validate:"oneof=spring circular hierarchical"`
	Seed       int64   `yaml:"seed"`
	K          float64 `yaml:"k" validate:"gte=0"`
	Iterations int     `yaml:"iterations" validate:"gte=1,lte=10000"`
}

// RenderConfig configures chart rendering
type RenderConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Format       string  `yaml:"format" validate:"oneof=png svg pdf"`
	Topic        string  `yaml:"topic"`
	NetworkSize  float64 `yaml:"network_size_inches" validate:"gt=0"`
	ChartWidth   float64 `yaml:"chart_width_inches" validate:"gt=0"`
	ChartHeight  float64 `yaml:"chart_height_inches" validate:"gt=0"`
	ConsoleColor bool    `yaml:"console_color"`
}

// OutputConfig configures where artifacts go
type OutputConfig struct {
	Dir         string `yaml:"dir" validate:"required"`
	Snapshot    bool   `yaml:"snapshot"`
	Compress    bool   `yaml:"compress"`
	MetricsFile string `yaml:"metrics_file"`
}

// PublishConfig configures artifact publishing
type PublishConfig struct {
	S3 S3Config `yaml:"s3"`
}

// S3Config configures the S3 uploader. Publishing is off when Bucket is empty.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// LoggingConfig configures the process logger
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Source:    "csv",
			Path:      "PoPCites.csv",
			Delimiter: ",",
			Postgres: PostgresConfig{
				Query: "SELECT authors, year, cites_per_year, title, cites FROM articles ORDER BY id",
			},
		},
		Analysis: AnalysisConfig{
			HubDegree:            10,
			BetweennessThreshold: 0.05,
			TopNeighbors:         3,
			TopN:                 5,
			HistogramBins:        20,
		},
		Layout: LayoutConfig{
			Algorithm:  "spring",
			Seed:       42,
			K:          0.5,
			Iterations: 50,
		},
		Render: RenderConfig{
			Enabled:      true,
			Format:       "png",
			Topic:        "Machine Learning in Agriculture",
			NetworkSize:  15,
			ChartWidth:   10,
			ChartHeight:  6,
			ConsoleColor: true,
		},
		Output: OutputConfig{
			Dir:         "out",
			Snapshot:    true,
			Compress:    false,
			MetricsFile: "metrics.prom",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DelimiterRune returns the CSV delimiter as a rune
func (c InputConfig) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ','
	}
	return []rune(c.Delimiter)[0]
}

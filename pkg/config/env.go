package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables recognised by ApplyEnv
const (
	EnvInput       = "COAUTHOR_INPUT"
	EnvSource      = "COAUTHOR_SOURCE"
	EnvDatabaseURL = "COAUTHOR_DATABASE_URL"
	EnvOutputDir   = "COAUTHOR_OUTPUT_DIR"
	EnvLayoutSeed  = "COAUTHOR_LAYOUT_SEED"
	EnvS3Bucket    = "COAUTHOR_S3_BUCKET"
	EnvS3Region    = "COAUTHOR_S3_REGION"
	EnvLogLevel    = "LOG_LEVEL"
)

// ApplyEnv overrides cfg with any recognised environment variables
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvInput); ok && v != "" {
		cfg.Input.Path = v
	}
	if v, ok := os.LookupEnv(EnvSource); ok && v != "" {
		cfg.Input.Source = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseURL); ok && v != "" {
		cfg.Input.Postgres.URL = v
	}
	if v, ok := os.LookupEnv(EnvOutputDir); ok && v != "" {
		cfg.Output.Dir = v
	}
	if v, ok := os.LookupEnv(EnvLayoutSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, EnvLayoutSeed, err)
		}
		cfg.Layout.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvS3Bucket); ok && v != "" {
		cfg.Publish.S3.Bucket = v
	}
	if v, ok := os.LookupEnv(EnvS3Region); ok && v != "" {
		cfg.Publish.S3.Region = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// Validate checks struct tags and the cross-field rules tags cannot express
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	switch c.Input.Source {
	case "csv":
		if strings.TrimSpace(c.Input.Path) == "" {
			return fmt.Errorf("%w: input.path is required for the csv source", ErrInvalidConfig)
		}
	case "postgres":
		if c.Input.Postgres.URL == "" {
			return fmt.Errorf("%w: input.postgres.url is required for the postgres source", ErrInvalidConfig)
		}
		if c.Input.Postgres.Query == "" {
			return fmt.Errorf("%w: input.postgres.query is required for the postgres source", ErrInvalidConfig)
		}
	}

	s3 := c.Publish.S3
	if s3.Bucket != "" && s3.Region == "" {
		return fmt.Errorf("%w: publish.s3.region is required when a bucket is set", ErrInvalidConfig)
	}
	if (s3.AccessKeyID == "") != (s3.SecretAccessKey == "") {
		return fmt.Errorf("%w: publish.s3 access_key_id and secret_access_key must be set together", ErrInvalidConfig)
	}
	if c.Output.MetricsFile != "" && strings.ContainsAny(c.Output.MetricsFile, `/\`) {
		return fmt.Errorf("%w: output.metrics_file must be a file name inside output.dir", ErrInvalidConfig)
	}

	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Report the first failure with its dotted path, e.g. Config.Layout.K
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s is required", ErrInvalidConfig, field)
		case "oneof":
			return fmt.Errorf("%w: %s must be one of [%s], got %q", ErrInvalidConfig, field, param, e.Value())
		case "gte", "min":
			return fmt.Errorf("%w: %s must be at least %s", ErrInvalidConfig, field, param)
		case "lte", "max":
			return fmt.Errorf("%w: %s must not exceed %s", ErrInvalidConfig, field, param)
		case "gt":
			return fmt.Errorf("%w: %s must be greater than %s", ErrInvalidConfig, field, param)
		default:
			return fmt.Errorf("%w: %s failed %s validation", ErrInvalidConfig, field, e.Tag())
		}
	}

	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}

// Package config provides configuration management for the application.
// This file contains validation functions for configuration values.
package config

import (
	"fmt"
	"strings"

	"github.com/verdanta/verdanta/pkg/errors"
)

// Validate checks the configuration for values the engine cannot run with.
// It returns a coded error describing every failing field.
func (c *Config) Validate() error {
	var failures []string

	if c.Report.Renderer.LoadTimeout <= 0 {
		failures = append(failures, "report.renderer.load_timeout must be positive")
	}
	if c.Report.Renderer.ExportTimeout <= 0 {
		failures = append(failures, "report.renderer.export_timeout must be positive")
	}
	if c.Report.Renderer.MaxConcurrent < 1 {
		failures = append(failures, "report.renderer.max_concurrent must be at least 1")
	}
	if c.Storage.Timeout <= 0 {
		failures = append(failures, "storage.timeout must be positive")
	}
	if c.Storage.Endpoint != "" && c.Storage.Bucket == "" {
		failures = append(failures, "storage.bucket is required when storage.endpoint is set")
	}

	if len(failures) > 0 {
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("invalid configuration: %s", strings.Join(failures, "; ")))
	}
	return nil
}

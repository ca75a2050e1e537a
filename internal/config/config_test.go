package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdanta/verdanta/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 30*time.Second, cfg.Report.Renderer.LoadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Report.Renderer.ExportTimeout)
	assert.Equal(t, 2, cfg.Report.Renderer.MaxConcurrent)
	assert.False(t, cfg.Report.StrictTokens)
	assert.Empty(t, cfg.Report.TemplateDir)

	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, 10*time.Second, cfg.Storage.Timeout)

	assert.Equal(t, "info", cfg.Logging.Level)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	content := `
report:
  strict_tokens: true
  renderer:
    load_timeout: 15s
    max_concurrent: 4
storage:
  endpoint: minio.internal:9000
  bucket: ${VERDANTA_TEST_BUCKET}
  access_key: ${VERDANTA_TEST_ACCESS_KEY:-fallback-key}
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("VERDANTA_TEST_BUCKET", "reports-bucket")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Report.StrictTokens)
	assert.Equal(t, 15*time.Second, cfg.Report.Renderer.LoadTimeout)
	assert.Equal(t, 4, cfg.Report.Renderer.MaxConcurrent)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 60*time.Second, cfg.Report.Renderer.ExportTimeout)

	assert.Equal(t, "minio.internal:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "reports-bucket", cfg.Storage.Bucket)
	assert.Equal(t, "fallback-key", cfg.Storage.AccessKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("VERDANTA_TEST_SET", "value")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "a: ${VERDANTA_TEST_SET}", "a: value"},
		{"unset variable", "a: ${VERDANTA_TEST_UNSET}", "a: "},
		{"unset with default", "a: ${VERDANTA_TEST_UNSET:-fallback}", "a: fallback"},
		{"set wins over default", "a: ${VERDANTA_TEST_SET:-fallback}", "a: value"},
		{"bare dollar untouched", "a: $VERDANTA_TEST_SET", "a: $VERDANTA_TEST_SET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnvVars(tt.in))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative load timeout",
			mutate:  func(c *Config) { c.Report.Renderer.LoadTimeout = -time.Second },
			wantErr: "load_timeout",
		},
		{
			name:    "zero export timeout",
			mutate:  func(c *Config) { c.Report.Renderer.ExportTimeout = 0 },
			wantErr: "export_timeout",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Report.Renderer.MaxConcurrent = 0 },
			wantErr: "max_concurrent",
		},
		{
			name: "endpoint without bucket",
			mutate: func(c *Config) {
				c.Storage.Endpoint = "minio.internal:9000"
				c.Storage.Bucket = ""
			},
			wantErr: "storage.bucket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, errors.ErrCodeConfigInvalid, errors.CodeOf(err))
		})
	}
}

func TestValidateReportsAllFailures(t *testing.T) {
	cfg := Default()
	cfg.Report.Renderer.LoadTimeout = 0
	cfg.Report.Renderer.MaxConcurrent = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load_timeout")
	assert.Contains(t, err.Error(), "max_concurrent")
}

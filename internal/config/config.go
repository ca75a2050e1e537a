// Package config provides configuration management for the application.
// It supports YAML configuration files with environment variable expansion.
package config

import (
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verdanta/verdanta/pkg/logger"
)

// Default configuration values
const (
	defaultLoadTimeout    = 30 * time.Second
	defaultExportTimeout  = 60 * time.Second
	defaultMaxConcurrent  = 2
	defaultStorageTimeout = 10 * time.Second
)

// Config represents the complete application configuration
type Config struct {
	Report  ReportConfig  `yaml:"report"`
	Storage StorageConfig `yaml:"storage"`
	Logging logger.Config `yaml:"logging"`
}

// ReportConfig holds report generation configuration
type ReportConfig struct {
	// TemplateDir overrides the embedded template resources when set.
	// Each variant maps to a file named <variant>.html inside this directory.
	TemplateDir string `yaml:"template_dir"`

	// StrictTokens makes the token injector fail on template tokens that
	// have no context entry, instead of leaving them literal in the output.
	StrictTokens bool `yaml:"strict_tokens"`

	Renderer RendererConfig `yaml:"renderer"`
}

// RendererConfig holds headless Chrome renderer configuration
type RendererConfig struct {
	// ChromePath overrides the Chrome binary location (empty for auto-detect)
	ChromePath string `yaml:"chrome_path"`

	// LoadTimeout bounds document load and layout settlement
	LoadTimeout time.Duration `yaml:"load_timeout"`

	// ExportTimeout bounds the PDF export, independent of LoadTimeout
	ExportTimeout time.Duration `yaml:"export_timeout"`

	// MaxConcurrent caps the number of Chrome processes running at once
	MaxConcurrent int `yaml:"max_concurrent"`
}

// StorageConfig holds object store configuration for uploaded images
type StorageConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Region    string        `yaml:"region"`
	Bucket    string        `yaml:"bucket"`
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	UseSSL    bool          `yaml:"use_ssl"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			TemplateDir:  "",
			StrictTokens: false,
			Renderer: RendererConfig{
				LoadTimeout:   defaultLoadTimeout,
				ExportTimeout: defaultExportTimeout,
				MaxConcurrent: defaultMaxConcurrent,
			},
		},
		Storage: StorageConfig{
			Region:  "us-east-1",
			Bucket:  "verdanta-uploads",
			UseSSL:  true,
			Timeout: defaultStorageTimeout,
		},
		Logging: logger.Config{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file and merges it over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables in the configuration
	expanded := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
// Only ${VAR_NAME} is matched (not $VAR_NAME), with ${VAR_NAME:-default} support.
func expandEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]

		if value := os.Getenv(varName); value != "" {
			return value
		}

		if len(parts) > 1 {
			return parts[1]
		}

		return ""
	})
}

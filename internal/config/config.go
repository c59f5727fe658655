// ABOUTME: Configuration loading and parsing for the iamessage client
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the corresponding fields are left empty.
const (
	DefaultAppName       = "iamessage-client"
	DefaultClientVersion = "1.0.0"
)

// Config holds everything needed to talk to an embedded-messaging deployment.
type Config struct {
	// BaseURL is the scheme and host of the messaging service,
	// e.g. "https://example.my.salesforce-scrt.com". Required.
	BaseURL string `yaml:"base_url"`

	// OrgID identifies the organization owning the deployment. Required.
	OrgID string `yaml:"org_id"`

	// DeveloperName is the embedded-service deployment developer name,
	// sent as esDeveloperName on every conversation request. Required.
	DeveloperName string `yaml:"developer_name"`

	// AppName and ClientVersion are reported in the token request context.
	AppName       string `yaml:"app_name"`
	ClientVersion string `yaml:"client_version"`

	// RequestTimeout bounds each individual request. Zero disables the
	// timeout entirely; the caller's context still applies.
	RequestTimeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	RequestTimeoutRaw string `yaml:"request_timeout"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration for front ends that build
// their own slog handler from it.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.RequestTimeoutRaw != "" {
		cfg.RequestTimeout, err = time.ParseDuration(cfg.RequestTimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("parsing request_timeout %q: %w", cfg.RequestTimeoutRaw, err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// ApplyDefaults fills in the optional identification fields when empty.
func (c *Config) ApplyDefaults() {
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
	if c.ClientVersion == "" {
		c.ClientVersion = DefaultClientVersion
	}
}

// Validate checks that all required configuration fields are present.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.OrgID == "" {
		return fmt.Errorf("org_id is required")
	}
	if c.DeveloperName == "" {
		return fmt.Errorf("developer_name is required")
	}
	return nil
}

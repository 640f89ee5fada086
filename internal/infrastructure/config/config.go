package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the Paycon client.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// APIConfig contains settings for talking to the remote Paycon REST service.
type APIConfig struct {
	// BaseURL is the root of the service, including scheme.
	// Example: "https://api.paycon.example.com"
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout in seconds.
	Timeout int `yaml:"timeout"`

	// UserAgent identifies this client in request headers.
	UserAgent string `yaml:"user_agent"`
}

// SessionConfig contains credential storage settings.
type SessionConfig struct {
	// TokenPath is where the bearer token is persisted between runs.
	// Supports a leading "~/" which expands to the user home directory.
	TokenPath string `yaml:"token_path"`
}

// TelemetryConfig contains sensor-reading polling and live-feed settings.
type TelemetryConfig struct {
	// PollInterval is the sensor polling interval in seconds.
	PollInterval int `yaml:"poll_interval"`

	// MQTT contains settings for the live reading feed.
	MQTT MQTTConfig `yaml:"mqtt"`
}

// MQTTConfig contains client-side MQTT tuning. Broker address and
// credentials come from each device's connection descriptor, not from here.
type MQTTConfig struct {
	QoS            int  `yaml:"qos"`
	TLS            bool `yaml:"tls"`
	ConnectTimeout int  `yaml:"connect_timeout"`

	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. A .env file in the working directory, if present
//  4. Environment variables (override file values)
//
// Environment variables follow the pattern: PAYCON_SECTION_KEY
// For example: PAYCON_API_BASE_URL, PAYCON_SESSION_TOKEN_PATH
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Populate the process environment from .env before reading overrides.
	// Missing .env is not an error; existing variables win.
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to defaults (plus
// environment overrides) when the config file does not exist. This lets the
// CLI run without any config file as long as PAYCON_API_BASE_URL is set.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := defaultConfig()
		_ = godotenv.Load() //nolint:errcheck // .env is optional
		applyEnvOverrides(cfg)
		if validateErr := cfg.Validate(); validateErr != nil {
			return nil, fmt.Errorf("validating config: %w", validateErr)
		}
		return cfg, nil
	}
	return Load(path)
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			Timeout:   15,
			UserAgent: "payconctl",
		},
		Session: SessionConfig{
			TokenPath: "~/.config/paycon/token",
		},
		Telemetry: TelemetryConfig{
			PollInterval: 60,
			MQTT: MQTTConfig{
				QoS:            1,
				ConnectTimeout: 10,
				Reconnect: MQTTReconnectConfig{
					InitialDelay: 1,
					MaxDelay:     60,
				},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides overrides config values from PAYCON_* environment variables.
func applyEnvOverrides(cfg *Config) {
	// API
	if v := os.Getenv("PAYCON_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("PAYCON_API_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.Timeout = n
		}
	}

	// Session
	if v := os.Getenv("PAYCON_SESSION_TOKEN_PATH"); v != "" {
		cfg.Session.TokenPath = v
	}

	// Telemetry
	if v := os.Getenv("PAYCON_TELEMETRY_POLL_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Telemetry.PollInterval = n
		}
	}

	// Logging
	if v := os.Getenv("PAYCON_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PAYCON_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	// API validation
	if c.API.BaseURL == "" {
		errs = append(errs, "api.base_url is required")
	} else {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, "api.base_url must be an absolute URL")
		}
	}
	if c.API.Timeout < 1 {
		errs = append(errs, "api.timeout must be at least 1 second")
	}

	// Session validation
	if c.Session.TokenPath == "" {
		errs = append(errs, "session.token_path is required")
	}

	// Telemetry validation
	if c.Telemetry.PollInterval < 1 {
		errs = append(errs, "telemetry.poll_interval must be at least 1 second")
	}
	if c.Telemetry.MQTT.QoS < 0 || c.Telemetry.MQTT.QoS > 2 {
		errs = append(errs, "telemetry.mqtt.qos must be 0, 1, or 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetRequestTimeout returns the API request timeout as a Duration.
func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

// GetPollInterval returns the telemetry poll interval as a Duration.
func (c *Config) GetPollInterval() time.Duration {
	return time.Duration(c.Telemetry.PollInterval) * time.Second
}

// ResolveTokenPath expands a leading "~/" in session.token_path to the
// current user's home directory.
func (c *Config) ResolveTokenPath() (string, error) {
	path := c.Session.TokenPath
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return path, nil
}

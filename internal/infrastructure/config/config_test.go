package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
api:
  base_url: "https://paycon.example.com"
  timeout: 30
session:
  token_path: "/tmp/paycon-token"
telemetry:
  poll_interval: 15
logging:
  level: "debug"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://paycon.example.com" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "https://paycon.example.com")
	}
	if cfg.API.Timeout != 30 {
		t.Errorf("API.Timeout = %d, want 30", cfg.API.Timeout)
	}
	if cfg.Session.TokenPath != "/tmp/paycon-token" {
		t.Errorf("Session.TokenPath = %q, want %q", cfg.Session.TokenPath, "/tmp/paycon-token")
	}
	if cfg.Telemetry.PollInterval != 15 {
		t.Errorf("Telemetry.PollInterval = %d, want 15", cfg.Telemetry.PollInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	// A minimal file keeps every defaulted section intact.
	configPath := writeConfig(t, `
api:
  base_url: "http://localhost:8000"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Timeout != 15 {
		t.Errorf("API.Timeout = %d, want default 15", cfg.API.Timeout)
	}
	if cfg.Telemetry.PollInterval != 60 {
		t.Errorf("Telemetry.PollInterval = %d, want default 60", cfg.Telemetry.PollInterval)
	}
	if cfg.Telemetry.MQTT.QoS != 1 {
		t.Errorf("Telemetry.MQTT.QoS = %d, want default 1", cfg.Telemetry.MQTT.QoS)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default %q", cfg.Logging.Level, "info")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "invalid: [yaml: content")

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoadOrDefault_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("API.BaseURL = %q, want default", cfg.API.BaseURL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	configPath := writeConfig(t, `
api:
  base_url: "http://from-file:8000"
`)

	t.Setenv("PAYCON_API_BASE_URL", "http://from-env:9000")
	t.Setenv("PAYCON_API_TIMEOUT", "5")
	t.Setenv("PAYCON_SESSION_TOKEN_PATH", "/tmp/env-token")
	t.Setenv("PAYCON_LOG_LEVEL", "error")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://from-env:9000" {
		t.Errorf("API.BaseURL = %q, want env override", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5 {
		t.Errorf("API.Timeout = %d, want 5", cfg.API.Timeout)
	}
	if cfg.Session.TokenPath != "/tmp/env-token" {
		t.Errorf("Session.TokenPath = %q, want env override", cfg.Session.TokenPath)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "api.base_url is required",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.API.BaseURL = "paycon.example.com/api" },
			wantErr: "api.base_url must be an absolute URL",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "api.timeout must be at least 1 second",
		},
		{
			name:    "empty token path",
			mutate:  func(c *Config) { c.Session.TokenPath = "" },
			wantErr: "session.token_path is required",
		},
		{
			name:    "zero poll interval",
			mutate:  func(c *Config) { c.Telemetry.PollInterval = 0 },
			wantErr: "telemetry.poll_interval must be at least 1 second",
		},
		{
			name:    "invalid qos",
			mutate:  func(c *Config) { c.Telemetry.MQTT.QoS = 3 },
			wantErr: "telemetry.mqtt.qos must be 0, 1, or 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_DurationHelpers(t *testing.T) {
	cfg := defaultConfig()
	cfg.API.Timeout = 20
	cfg.Telemetry.PollInterval = 45

	if got := cfg.GetRequestTimeout(); got != 20*time.Second {
		t.Errorf("GetRequestTimeout() = %v, want 20s", got)
	}
	if got := cfg.GetPollInterval(); got != 45*time.Second {
		t.Errorf("GetPollInterval() = %v, want 45s", got)
	}
}

func TestConfig_ResolveTokenPath(t *testing.T) {
	cfg := defaultConfig()
	cfg.Session.TokenPath = "~/.config/paycon/token"

	path, err := cfg.ResolveTokenPath()
	if err != nil {
		t.Fatalf("ResolveTokenPath() error = %v", err)
	}
	if strings.HasPrefix(path, "~") {
		t.Errorf("ResolveTokenPath() = %q, tilde not expanded", path)
	}
	if !strings.HasSuffix(path, filepath.Join(".config", "paycon", "token")) {
		t.Errorf("ResolveTokenPath() = %q, unexpected suffix", path)
	}

	cfg.Session.TokenPath = "/absolute/token"
	path, err = cfg.ResolveTokenPath()
	if err != nil {
		t.Fatalf("ResolveTokenPath() error = %v", err)
	}
	if path != "/absolute/token" {
		t.Errorf("ResolveTokenPath() = %q, want unchanged absolute path", path)
	}
}

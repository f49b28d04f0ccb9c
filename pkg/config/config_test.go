package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pushover-channel/pkg/pushover"
)

var envKeys = []string{
	"PUSHOVER_CONFIG",
	"PUSHOVER_TOKEN",
	"PUSHOVER_USER",
	"PUSHOVER_DEVICES",
	"PUSHOVER_SOUND",
	"PUSHOVER_PRIORITY",
	"PUSHOVER_RETRY",
	"PUSHOVER_EXPIRE",
	"PUSHOVER_TIMEOUT",
	"PUSHOVER_LOG_LEVEL",
	"PUSHOVER_LOG_JSON",
}

// clearEnv unsets all config variables for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected Timeout to be 10s but got %v", cfg.Timeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info but got %q", cfg.Log.Level)
	}
	if cfg.Token != "" || cfg.UserKey != "" {
		t.Error("expected no default credentials")
	}
}

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		envVars   map[string]string
		checkFunc func(*testing.T, *Config)
		wantErr   bool
	}{
		{
			name: "valid environment variables",
			envVars: map[string]string{
				"PUSHOVER_TOKEN":     "app-token",
				"PUSHOVER_USER":      "user-key",
				"PUSHOVER_SOUND":     "cosmic",
				"PUSHOVER_PRIORITY":  "high",
				"PUSHOVER_TIMEOUT":   "3s",
				"PUSHOVER_LOG_LEVEL": "debug",
				"PUSHOVER_LOG_JSON":  "yes",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Token != "app-token" {
					t.Errorf("expected Token to be app-token but got %s", cfg.Token)
				}
				if cfg.UserKey != "user-key" {
					t.Errorf("expected UserKey to be user-key but got %s", cfg.UserKey)
				}
				if cfg.Sound != "cosmic" {
					t.Errorf("expected Sound to be cosmic but got %s", cfg.Sound)
				}
				if cfg.Timeout != 3*time.Second {
					t.Errorf("expected Timeout to be 3s but got %v", cfg.Timeout)
				}
				if cfg.Log.Level != "debug" || !cfg.Log.JSON {
					t.Errorf("unexpected log config %+v", cfg.Log)
				}
				p, set, err := cfg.MessagePriority()
				if err != nil || !set || p != pushover.HighPriority {
					t.Errorf("MessagePriority() = %v, %v, %v", p, set, err)
				}
			},
		},
		{
			name: "device list parsing",
			envVars: map[string]string{
				"PUSHOVER_TOKEN":   "t",
				"PUSHOVER_USER":    "u",
				"PUSHOVER_DEVICES": " phone , ,tablet ",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				expected := []string{"phone", "tablet"}
				if len(cfg.Devices) != len(expected) {
					t.Fatalf("expected %d devices but got %v", len(expected), cfg.Devices)
				}
				for i, d := range expected {
					if cfg.Devices[i] != d {
						t.Errorf("expected device[%d] to be %q but got %q", i, d, cfg.Devices[i])
					}
				}
			},
		},
		{
			name: "invalid timeout",
			envVars: map[string]string{
				"PUSHOVER_TOKEN":   "t",
				"PUSHOVER_USER":    "u",
				"PUSHOVER_TIMEOUT": "invalid",
			},
			wantErr: true,
		},
		{
			name: "emergency with retry and expire",
			envVars: map[string]string{
				"PUSHOVER_TOKEN":    "t",
				"PUSHOVER_USER":     "u",
				"PUSHOVER_PRIORITY": "emergency",
				"PUSHOVER_RETRY":    "30s",
				"PUSHOVER_EXPIRE":   "10m",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Retry != 30*time.Second || cfg.Expire != 10*time.Minute {
					t.Errorf("expected retry 30s and expire 10m but got %v and %v", cfg.Retry, cfg.Expire)
				}
			},
		},
		{
			name: "emergency without expire",
			envVars: map[string]string{
				"PUSHOVER_TOKEN":    "t",
				"PUSHOVER_USER":     "u",
				"PUSHOVER_PRIORITY": "emergency",
				"PUSHOVER_RETRY":    "30s",
			},
			wantErr: true,
		},
		{
			name: "invalid retry",
			envVars: map[string]string{
				"PUSHOVER_TOKEN": "t",
				"PUSHOVER_USER":  "u",
				"PUSHOVER_RETRY": "soon",
			},
			wantErr: true,
		},
		{
			name: "invalid json flag",
			envVars: map[string]string{
				"PUSHOVER_TOKEN":    "t",
				"PUSHOVER_USER":     "u",
				"PUSHOVER_LOG_JSON": "maybe",
			},
			wantErr: true,
		},
		{
			name: "missing token",
			envVars: map[string]string{
				"PUSHOVER_USER": "u",
			},
			wantErr: true,
		},
		{
			name: "unknown priority",
			envVars: map[string]string{
				"PUSHOVER_TOKEN":    "t",
				"PUSHOVER_USER":     "u",
				"PUSHOVER_PRIORITY": "urgent",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			// Set a non-existent config path to prevent loading user's config
			t.Setenv("PUSHOVER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		envVars   map[string]string
		checkFunc func(*testing.T, *Config)
		wantErr   bool
	}{
		{
			name: "valid config file",
			content: `
token: "file-token"
user_key: "file-user"
devices:
  - phone
  - desktop
sound: "siren"
priority: emergency
retry: 1m
expire: 1h
timeout: 5s
log:
  level: warn
  json: true
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Token != "file-token" {
					t.Errorf("expected Token to be file-token but got %s", cfg.Token)
				}
				if cfg.UserKey != "file-user" {
					t.Errorf("expected UserKey to be file-user but got %s", cfg.UserKey)
				}
				if strings.Join(cfg.Devices, ",") != "phone,desktop" {
					t.Errorf("expected devices phone,desktop but got %v", cfg.Devices)
				}
				if cfg.Retry != time.Minute || cfg.Expire != time.Hour {
					t.Errorf("expected retry 1m and expire 1h but got %v and %v", cfg.Retry, cfg.Expire)
				}
				if cfg.Timeout != 5*time.Second {
					t.Errorf("expected Timeout to be 5s but got %v", cfg.Timeout)
				}
				if cfg.Log.Level != "warn" || !cfg.Log.JSON {
					t.Errorf("unexpected log config %+v", cfg.Log)
				}
			},
		},
		{
			name: "environment overrides file",
			content: `
token: "file-token"
user_key: "file-user"
devices: [phone]
`,
			envVars: map[string]string{
				"PUSHOVER_TOKEN":   "env-token",
				"PUSHOVER_DEVICES": "",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Token != "env-token" {
					t.Errorf("expected Token to be env-token but got %s", cfg.Token)
				}
				if cfg.UserKey != "file-user" {
					t.Errorf("expected UserKey to be file-user but got %s", cfg.UserKey)
				}
				if len(cfg.Devices) != 0 {
					t.Errorf("expected empty PUSHOVER_DEVICES to clear devices but got %v", cfg.Devices)
				}
			},
		},
		{
			name: "emergency without retry",
			content: `
token: "t"
user_key: "u"
priority: "2"
expire: 1h
`,
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			content: "invalid: yaml: content:\n  bad indentation",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0600); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}
			t.Setenv("PUSHOVER_CONFIG", configPath)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		wantErr  bool
		errorMsg string
	}{
		{
			name:    "valid config",
			cfg:     &Config{Token: "t", UserKey: "u", Timeout: time.Second},
			wantErr: false,
		},
		{
			name:     "missing token",
			cfg:      &Config{UserKey: "u"},
			wantErr:  true,
			errorMsg: "token is required",
		},
		{
			name:     "missing user key",
			cfg:      &Config{Token: "t"},
			wantErr:  true,
			errorMsg: "user_key is required",
		},
		{
			name:     "emergency without expire",
			cfg:      &Config{Token: "t", UserKey: "u", Priority: "emergency", Retry: time.Minute},
			wantErr:  true,
			errorMsg: "requires retry and expire",
		},
		{
			name:    "emergency with retry and expire",
			cfg:     &Config{Token: "t", UserKey: "u", Priority: "emergency", Retry: time.Minute, Expire: time.Hour},
			wantErr: false,
		},
		{
			name:     "sub-second retry",
			cfg:      &Config{Token: "t", UserKey: "u", Priority: "emergency", Retry: 500 * time.Millisecond, Expire: time.Hour},
			wantErr:  true,
			errorMsg: "whole seconds",
		},
		{
			name:     "fractional expire",
			cfg:      &Config{Token: "t", UserKey: "u", Retry: time.Minute, Expire: 90500 * time.Millisecond},
			wantErr:  true,
			errorMsg: "whole seconds",
		},
		{
			name:     "negative retry",
			cfg:      &Config{Token: "t", UserKey: "u", Retry: -time.Second},
			wantErr:  true,
			errorMsg: "must be non-negative",
		},
		{
			name:     "negative timeout",
			cfg:      &Config{Token: "t", UserKey: "u", Timeout: -time.Second},
			wantErr:  true,
			errorMsg: "must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				} else if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q but got %q", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		wantContain string
	}{
		{
			name: "explicit config path",
			envVars: map[string]string{
				"PUSHOVER_CONFIG": "/custom/path/config.yaml",
			},
			wantContain: "/custom/path/config.yaml",
		},
		{
			name: "XDG config path",
			envVars: map[string]string{
				"XDG_CONFIG_HOME": "/xdg/config",
			},
			wantContain: "/xdg/config/pushover-channel/config.yaml",
		},
		{
			name:        "home directory fallback",
			envVars:     map[string]string{},
			wantContain: ".config/pushover-channel/config.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PUSHOVER_CONFIG", "")
			t.Setenv("XDG_CONFIG_HOME", "")
			t.Setenv("HOME", "/home/tester")

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := getConfigPath()
			if !strings.Contains(path, tt.wantContain) {
				t.Errorf("expected path to contain %q but got %q", tt.wantContain, path)
			}
		})
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/pushover-channel/pkg/logx"
	"github.com/Veraticus/pushover-channel/pkg/pushover"
)

// Config holds all configuration for pushover-send
type Config struct {
	// Credentials
	Token   string `yaml:"token" env:"PUSHOVER_TOKEN"`
	UserKey string `yaml:"user_key" env:"PUSHOVER_USER"`

	// Default delivery options
	Devices  []string      `yaml:"devices" env:"PUSHOVER_DEVICES"`
	Sound    string        `yaml:"sound" env:"PUSHOVER_SOUND"`
	Priority string        `yaml:"priority" env:"PUSHOVER_PRIORITY"`
	Retry    time.Duration `yaml:"retry" env:"PUSHOVER_RETRY"`
	Expire   time.Duration `yaml:"expire" env:"PUSHOVER_EXPIRE"`

	// HTTP client timeout for a single request
	Timeout time.Duration `yaml:"timeout" env:"PUSHOVER_TIMEOUT"`

	Log logx.Config `yaml:"log"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Log: logx.Config{
			Level: "info",
		},
	}
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	configPath := getConfigPath()
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if path := os.Getenv("PUSHOVER_CONFIG"); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "pushover-channel", "config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "pushover-channel", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - The config file path comes from trusted sources (env var or standard locations)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if token := os.Getenv("PUSHOVER_TOKEN"); token != "" {
		cfg.Token = token
	}

	if user := os.Getenv("PUSHOVER_USER"); user != "" {
		cfg.UserKey = user
	}

	if devices, ok := os.LookupEnv("PUSHOVER_DEVICES"); ok {
		cfg.Devices = splitList(devices)
	}

	if sound := os.Getenv("PUSHOVER_SOUND"); sound != "" {
		cfg.Sound = sound
	}

	if priority := os.Getenv("PUSHOVER_PRIORITY"); priority != "" {
		cfg.Priority = priority
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"PUSHOVER_RETRY", &cfg.Retry},
		{"PUSHOVER_EXPIRE", &cfg.Expire},
		{"PUSHOVER_TIMEOUT", &cfg.Timeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if level := os.Getenv("PUSHOVER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if jsonLogs := os.Getenv("PUSHOVER_LOG_JSON"); jsonLogs != "" {
		switch jsonLogs {
		case "true", "1", "yes":
			cfg.Log.JSON = true
		case "false", "0", "no":
			cfg.Log.JSON = false
		default:
			return fmt.Errorf("invalid PUSHOVER_LOG_JSON value: %q (use true/false)", jsonLogs)
		}
	}

	return nil
}

// splitList splits a comma-separated list, dropping empty entries
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MessagePriority returns the configured priority, if any
func (c *Config) MessagePriority() (pushover.Priority, bool, error) {
	if strings.TrimSpace(c.Priority) == "" {
		return 0, false, nil
	}
	p, err := pushover.ParsePriority(c.Priority)
	if err != nil {
		return 0, false, err
	}
	return p, true, nil
}

// Validate checks the configuration for missing or inconsistent values
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("token is required")
	}

	if c.UserKey == "" {
		return fmt.Errorf("user_key is required")
	}

	p, set, err := c.MessagePriority()
	if err != nil {
		return err
	}

	if c.Retry < 0 || c.Expire < 0 {
		return fmt.Errorf("retry and expire must be non-negative")
	}

	if c.Retry%time.Second != 0 || c.Expire%time.Second != 0 {
		return fmt.Errorf("retry and expire must be whole seconds")
	}

	if set && p == pushover.EmergencyPriority && (c.Retry <= 0 || c.Expire <= 0) {
		return fmt.Errorf("emergency priority requires retry and expire")
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	SNSTopicARN       string `yaml:"sns_topic_arn,omitempty"`
	EnableAutoUpgrade *bool  `yaml:"enable_auto_upgrade,omitempty"`
	RunBudget         string `yaml:"run_budget,omitempty"`
	AWSProfile        string `yaml:"aws_profile,omitempty"`
	AWSRegion         string `yaml:"aws_region,omitempty"`
	LogLevel          string `yaml:"log_level,omitempty"`
}

// AutoUpgrade reports whether mutating calls are enabled. Unset means
// enabled; operators opt out explicitly.
func (c *Config) AutoUpgrade() bool {
	if c.EnableAutoUpgrade == nil {
		return true
	}
	return *c.EnableAutoUpgrade
}

// Budget parses the configured run budget. Unset means zero; the
// engine substitutes its default.
func (c *Config) Budget() (time.Duration, error) {
	if c.RunBudget == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RunBudget)
	if err != nil {
		return 0, fmt.Errorf("invalid run_budget %q: %w", c.RunBudget, err)
	}
	return d, nil
}

// GetConfigDir returns the config directory path (~/.nimbus)
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nimbus"
	}
	return filepath.Join(home, ".nimbus")
}

// GetConfigPath returns the config file path (~/.nimbus/config.yaml)
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// LoadConfig loads the configuration from ~/.nimbus/config.yaml
func LoadConfig() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads the configuration from an explicit path. A missing
// file is not an error; every setting has a usable default.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to ~/.nimbus/config.yaml
func SaveConfig(cfg *Config) error {
	configDir := GetConfigDir()

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ReadinessDefaults are the fallback thresholds for teams that have not
// configured their own. Monotonicity is enforced by validation: each
// threshold must exceed the previous one.
type ReadinessDefaults struct {
	InspectSoonDays    int `yaml:"inspectSoonDays" env:"BOATHOUSE_INSPECT_SOON_DAYS" validate:"min=1"`
	NeedsAttentionDays int `yaml:"needsAttentionDays" env:"BOATHOUSE_NEEDS_ATTENTION_DAYS" validate:"gtfield=InspectSoonDays"`
	OutOfServiceDays   int `yaml:"outOfServiceDays" env:"BOATHOUSE_OUT_OF_SERVICE_DAYS" validate:"gtfield=NeedsAttentionDays"`
}

// Config represents the application configuration. Values come from
// boathouse_config.yaml with environment variables taking precedence.
type Config struct {
	DatabaseURL string            `yaml:"databaseURL" env:"BOATHOUSE_DATABASE_URL" validate:"required"`
	Readiness   ReadinessDefaults `yaml:"readiness"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from boathouse_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Config{Readiness: defaultReadiness()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, including the threshold
// ordering the readiness engine depends on
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func defaultReadiness() ReadinessDefaults {
	return ReadinessDefaults{
		InspectSoonDays:    14,
		NeedsAttentionDays: 21,
		OutOfServiceDays:   30,
	}
}

// findConfigFile searches for boathouse_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "boathouse_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

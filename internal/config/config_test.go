package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/boathouse",
		Readiness: ReadinessDefaults{
			InspectSoonDays:    14,
			NeedsAttentionDays: 21,
			OutOfServiceDays:   30,
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := &Config{
		Readiness: defaultReadiness(),
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_ThresholdsMustIncrease(t *testing.T) {
	tests := []struct {
		name      string
		readiness ReadinessDefaults
	}{
		{
			name:      "needsAttention below inspectSoon",
			readiness: ReadinessDefaults{InspectSoonDays: 21, NeedsAttentionDays: 14, OutOfServiceDays: 30},
		},
		{
			name:      "outOfService equal to needsAttention",
			readiness: ReadinessDefaults{InspectSoonDays: 14, NeedsAttentionDays: 21, OutOfServiceDays: 21},
		},
		{
			name:      "zero inspectSoon",
			readiness: ReadinessDefaults{InspectSoonDays: 0, NeedsAttentionDays: 21, OutOfServiceDays: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DatabaseURL: "postgres://localhost:5432/boathouse",
				Readiness:   tt.readiness,
			}
			err := Validate(cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
databaseURL: "postgres://localhost:5432/boathouse"
readiness:
  inspectSoonDays: 7
  needsAttentionDays: 14
  outOfServiceDays: 28
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/boathouse", cfg.DatabaseURL)
	assert.Equal(t, 7, cfg.Readiness.InspectSoonDays)
	assert.Equal(t, 14, cfg.Readiness.NeedsAttentionDays)
	assert.Equal(t, 28, cfg.Readiness.OutOfServiceDays)
}

func TestLoadFromPath_DefaultThresholds(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	minimalConfig := `
databaseURL: "postgres://localhost:5432/boathouse"
`

	err := os.WriteFile(configPath, []byte(minimalConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.Readiness.InspectSoonDays)
	assert.Equal(t, 21, cfg.Readiness.NeedsAttentionDays)
	assert.Equal(t, 30, cfg.Readiness.OutOfServiceDays)
}

func TestLoadFromPath_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "env_config.yaml")

	fileConfig := `
databaseURL: "postgres://localhost:5432/boathouse"
`

	err := os.WriteFile(configPath, []byte(fileConfig), 0644)
	require.NoError(t, err)

	t.Setenv("BOATHOUSE_DATABASE_URL", "postgres://db.internal:5432/boathouse")

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://db.internal:5432/boathouse", cfg.DatabaseURL)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
databaseURL: "postgres://localhost"
  invalid indentation
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTuningConfig(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "tuning.json", `{
		"max_batch_points": 512,
		"worker_pool_size": 4,
		"cache_ttl": "45s",
		"elevation_max": 200
	}`)

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.GetMaxBatchPoints())
	assert.Equal(t, 4, cfg.GetWorkerPoolSize())
	assert.Equal(t, 45*time.Second, cfg.GetCacheTTL())
	assert.Equal(t, 200, cfg.GetElevationMax())

	// Omitted fields keep their defaults.
	assert.Equal(t, 0, cfg.GetElevationMin())
	assert.Equal(t, -30, cfg.GetTemperatureMin())
	assert.Equal(t, 100, cfg.GetTemperatureMax())
	assert.Equal(t, 5*time.Second, cfg.GetPollInterval())
}

func TestLoadTuningConfigRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"wrong extension", "tuning.yaml", `{}`},
		{"malformed json", "tuning.json", `{"max_batch_points": `},
		{"zero batch ceiling", "tuning.json", `{"max_batch_points": 0}`},
		{"negative workers", "tuning.json", `{"worker_pool_size": -2}`},
		{"bad duration", "tuning.json", `{"cache_ttl": "soon"}`},
		{"inverted elevation", "tuning.json", `{"elevation_min": 50, "elevation_max": 10}`},
		{"inverted temperature", "tuning.json", `{"temperature_min": 40, "temperature_max": -5}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, tc.file, tc.content)
			_, err := LoadTuningConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadTuningConfigMissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadTuningConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestEmptyTuningConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg := EmptyTuningConfig()
	assert.Equal(t, 1024, cfg.GetMaxBatchPoints())
	assert.Equal(t, 8, cfg.GetWorkerPoolSize())
	assert.Equal(t, 30*time.Second, cfg.GetCacheTTL())
	assert.NoError(t, cfg.Validate())
}

func TestDefaultsFileParses(t *testing.T) {
	t.Parallel()
	cfg, err := LoadTuningConfig(filepath.Join("..", "..", DefaultConfigPath))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.GetMaxBatchPoints())
}

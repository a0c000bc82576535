// Package config loads the engine tuning parameters.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for engine tuning. Fields
// omitted from the JSON file retain their defaults, so partial configs are
// safe. The schema matches the /api/config endpoint output.
type TuningConfig struct {
	// Batch evaluator params
	MaxBatchPoints *int `json:"max_batch_points,omitempty"`
	WorkerPoolSize *int `json:"worker_pool_size,omitempty"`

	// Sample cache params
	CacheTTL *string `json:"cache_ttl,omitempty"` // duration string like "30s"

	// Compositor clamp ranges
	ElevationMin   *int `json:"elevation_min,omitempty"`
	ElevationMax   *int `json:"elevation_max,omitempty"`
	TemperatureMin *int `json:"temperature_min,omitempty"`
	TemperatureMax *int `json:"temperature_max,omitempty"`

	// Geometry catalog polling
	PollInterval *string `json:"poll_interval,omitempty"` // duration string like "5s"
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file is
// validated to have a .json extension and to be under the max file size.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.MaxBatchPoints != nil && *c.MaxBatchPoints < 1 {
		return fmt.Errorf("max_batch_points must be positive, got %d", *c.MaxBatchPoints)
	}
	if c.WorkerPoolSize != nil && *c.WorkerPoolSize < 1 {
		return fmt.Errorf("worker_pool_size must be positive, got %d", *c.WorkerPoolSize)
	}
	if c.CacheTTL != nil && *c.CacheTTL != "" {
		if _, err := time.ParseDuration(*c.CacheTTL); err != nil {
			return fmt.Errorf("invalid cache_ttl '%s': %w", *c.CacheTTL, err)
		}
	}
	if c.PollInterval != nil && *c.PollInterval != "" {
		if _, err := time.ParseDuration(*c.PollInterval); err != nil {
			return fmt.Errorf("invalid poll_interval '%s': %w", *c.PollInterval, err)
		}
	}
	if c.ElevationMin != nil && c.ElevationMax != nil && *c.ElevationMin > *c.ElevationMax {
		return fmt.Errorf("elevation range inverted: min %d > max %d", *c.ElevationMin, *c.ElevationMax)
	}
	if c.TemperatureMin != nil && c.TemperatureMax != nil && *c.TemperatureMin > *c.TemperatureMax {
		return fmt.Errorf("temperature range inverted: min %d > max %d", *c.TemperatureMin, *c.TemperatureMax)
	}
	return nil
}

// GetMaxBatchPoints returns the max_batch_points value or the default.
func (c *TuningConfig) GetMaxBatchPoints() int {
	if c.MaxBatchPoints == nil {
		return 1024
	}
	return *c.MaxBatchPoints
}

// GetWorkerPoolSize returns the worker_pool_size value or the default.
func (c *TuningConfig) GetWorkerPoolSize() int {
	if c.WorkerPoolSize == nil {
		return 8
	}
	return *c.WorkerPoolSize
}

// GetCacheTTL parses and returns the CacheTTL as a time.Duration.
func (c *TuningConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == nil || *c.CacheTTL == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(*c.CacheTTL)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetPollInterval parses and returns the PollInterval as a time.Duration.
func (c *TuningConfig) GetPollInterval() time.Duration {
	if c.PollInterval == nil || *c.PollInterval == "" {
		return 5 * time.Second
	}
	d, err := time.ParseDuration(*c.PollInterval)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// GetElevationMin returns the elevation_min value or the default.
func (c *TuningConfig) GetElevationMin() int {
	if c.ElevationMin == nil {
		return 0
	}
	return *c.ElevationMin
}

// GetElevationMax returns the elevation_max value or the default.
func (c *TuningConfig) GetElevationMax() int {
	if c.ElevationMax == nil {
		return 255
	}
	return *c.ElevationMax
}

// GetTemperatureMin returns the temperature_min value or the default.
func (c *TuningConfig) GetTemperatureMin() int {
	if c.TemperatureMin == nil {
		return -30
	}
	return *c.TemperatureMin
}

// GetTemperatureMax returns the temperature_max value or the default.
func (c *TuningConfig) GetTemperatureMax() int {
	if c.TemperatureMax == nil {
		return 100
	}
	return *c.TemperatureMax
}

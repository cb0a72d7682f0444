package config

import (
	"encoding/json"
	"fmt"
	"os"

	"archipelago.dev/internal/generation"
	"archipelago.dev/internal/render"
)

const DefaultCacheSize = 64

// Config holds all application configuration
type Config struct {
	ServerAddr string
	Map        *MapConfig
}

// MapConfig holds generation and rendering defaults
type MapConfig struct {
	generation.Config
	PixelSize int `json:"pixel_size"`
	CacheSize int `json:"cache_size"`
}

// DefaultMapConfig returns the built-in defaults
func DefaultMapConfig() *MapConfig {
	return &MapConfig{
		Config:    generation.DefaultConfig(),
		PixelSize: render.DefaultPixelSize,
		CacheSize: DefaultCacheSize,
	}
}

// Validate checks the generation settings and the render settings
func (c *MapConfig) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.PixelSize < 1 || c.PixelSize > render.MaxPixelSize {
		return fmt.Errorf("%w: %d", render.ErrInvalidPixelSize, c.PixelSize)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size %d is negative", c.CacheSize)
	}
	return nil
}

// Load reads SERVER_ADDR and, when MAPGEN_CONFIG is set, the JSON file
// it points to. Fields missing from the file keep their defaults.
func Load() (*Config, error) {
	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = ":8080"
	}

	mapConfig, err := loadMapConfig(os.Getenv("MAPGEN_CONFIG"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerAddr: serverAddr,
		Map:        mapConfig,
	}, nil
}

// loadMapConfig reads the optional map config file
func loadMapConfig(path string) (*MapConfig, error) {
	mapConfig := DefaultMapConfig()
	if path == "" {
		return mapConfig, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, mapConfig); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := mapConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return mapConfig, nil
}

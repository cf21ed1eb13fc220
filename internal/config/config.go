package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the simulation configuration.
type Config struct {
	Seed        string `json:"seed"`
	ChunkSize   int    `json:"chunk_size"`
	ViewWidth   int    `json:"view_width"`  // viewport width in blocks
	ViewHeight  int    `json:"view_height"` // viewport height in blocks
	Margin      int    `json:"margin"`      // extra chunk ring around the viewport
	QueueBudget int    `json:"queue_budget"`
	SpawnRadius int    `json:"spawn_radius"`

	MinSurface      int `json:"min_surface"`
	MaxSurface      int `json:"max_surface"`
	TransitionWidth int `json:"transition_width"`

	ContentPack string `json:"content_pack"` // yaml pack path ("" = built-in content)
	DiagDir     string `json:"diag_dir"`     // diagnostics output directory ("" = disabled)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:            "1234567890",
		ChunkSize:       16,
		ViewWidth:       60,
		ViewHeight:      34,
		Margin:          2,
		QueueBudget:     2,
		SpawnRadius:     2,
		MinSurface:      48,
		MaxSurface:      80,
		TransitionWidth: 8,
	}
}

// LoadFile reads a JSON config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["chunk-size"] {
		cfg.ChunkSize = fromFile.ChunkSize
	}
	if !explicitFlags["view-width"] {
		cfg.ViewWidth = fromFile.ViewWidth
	}
	if !explicitFlags["view-height"] {
		cfg.ViewHeight = fromFile.ViewHeight
	}
	if !explicitFlags["margin"] {
		cfg.Margin = fromFile.Margin
	}
	if !explicitFlags["queue-budget"] {
		cfg.QueueBudget = fromFile.QueueBudget
	}
	if !explicitFlags["spawn-radius"] {
		cfg.SpawnRadius = fromFile.SpawnRadius
	}
	if !explicitFlags["min-surface"] {
		cfg.MinSurface = fromFile.MinSurface
	}
	if !explicitFlags["max-surface"] {
		cfg.MaxSurface = fromFile.MaxSurface
	}
	if !explicitFlags["transition-width"] {
		cfg.TransitionWidth = fromFile.TransitionWidth
	}
	if !explicitFlags["content-pack"] {
		cfg.ContentPack = fromFile.ContentPack
	}
	if !explicitFlags["diag-dir"] {
		cfg.DiagDir = fromFile.DiagDir
	}
}

// Validate rejects configurations the generation pipeline cannot run on.
func (c *Config) Validate() error {
	if c.Seed == "" {
		return fmt.Errorf("seed must not be empty")
	}
	if c.ChunkSize < 4 {
		return fmt.Errorf("chunk_size %d too small, need at least 4", c.ChunkSize)
	}
	if c.MinSurface >= c.MaxSurface {
		return fmt.Errorf("min_surface %d must be below max_surface %d", c.MinSurface, c.MaxSurface)
	}
	if c.TransitionWidth < 0 || c.TransitionWidth > c.ChunkSize {
		return fmt.Errorf("transition_width %d must be within [0, chunk_size]", c.TransitionWidth)
	}
	if c.QueueBudget < 1 {
		return fmt.Errorf("queue_budget %d must be at least 1", c.QueueBudget)
	}
	return nil
}

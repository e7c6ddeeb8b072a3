package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/l1jgo/tilecore/internal/advance"
)

type Config struct {
	Logging LoggingConfig `toml:"logging"`
	History HistoryConfig `toml:"history"`
	Advance AdvanceConfig `toml:"advance"`
	Paint   PaintConfig   `toml:"paint"`
	Path    PathConfig    `toml:"path"`
	Grid    GridConfig    `toml:"grid"`
	Codec   CodecConfig   `toml:"codec"`
	Sim     SimConfig     `toml:"sim"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"` // "json" or "console"
	File       string `toml:"file"`   // optional rotating log file
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type HistoryConfig struct {
	Duration time.Duration `toml:"duration"` // snapshot window kept per actor
}

type AdvanceConfig struct {
	MaxSubstep       time.Duration `toml:"max_substep"`
	CorrectionPasses int           `toml:"correction_passes"`
	PushMargin       float64       `toml:"push_margin"` // > 1.0
}

// Options converts the section to advancer options.
func (c AdvanceConfig) Options() advance.Options {
	return advance.Options{
		MaxSubstep:       c.MaxSubstep.Seconds(),
		CorrectionPasses: c.CorrectionPasses,
		PushMargin:       c.PushMargin,
	}
}

type PaintConfig struct {
	TileTable  string `toml:"tile_table"`  // tiles.yaml
	ScriptsDir string `toml:"scripts_dir"` // Lua case rules; empty = static rules
	Seed       int64  `toml:"seed"`        // 0 = time based
}

type PathConfig struct {
	ProbeRadius float64 `toml:"probe_radius"`
	Longest     int     `toml:"longest"` // scene units
	Partial     bool    `toml:"partial"`
}

type GridConfig struct {
	ElevationScale  float64 `toml:"elevation_scale"`
	SpaceCellSize   float64 `toml:"space_cell_size"`
	CollisionHeight float64 `toml:"collision_height"` // tiles at least this tall block movement
}

type CodecConfig struct {
	Charset string `toml:"charset"`
}

type SimConfig struct {
	TickRate           time.Duration `toml:"tick_rate"`
	InboxSize          int           `toml:"inbox_size"`
	MaxMessagesPerTick int           `toml:"max_messages_per_tick"`
	InterpolationDelay time.Duration `toml:"interpolation_delay"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		History: HistoryConfig{
			Duration: 2 * time.Second,
		},
		Advance: AdvanceConfig{
			MaxSubstep:       time.Second / 60,
			CorrectionPasses: 3,
			PushMargin:       1.05,
		},
		Paint: PaintConfig{
			TileTable:  "data/yaml/tiles.yaml",
			ScriptsDir: "data/lua",
		},
		Path: PathConfig{
			ProbeRadius: 0.4,
			Longest:     64,
		},
		Grid: GridConfig{
			ElevationScale:  0.5,
			SpaceCellSize:   4,
			CollisionHeight: 1,
		},
		Codec: CodecConfig{
			Charset: "utf-8",
		},
		Sim: SimConfig{
			TickRate:           50 * time.Millisecond,
			InboxSize:          256,
			MaxMessagesPerTick: 64,
			InterpolationDelay: 100 * time.Millisecond,
		},
	}
}

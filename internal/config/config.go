// Package config provides YAML-based game configuration loading with
// environment overrides for the match-three board.
package config

import (
	"errors"
	"time"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Match3Config contains all configuration for the match-three game.
type Match3Config struct {
	Board   BoardConfig   `yaml:"board"`
	Pieces  []PieceConfig `yaml:"pieces"`
	Timings TimingsConfig `yaml:"timings"`
	Display DisplayConfig `yaml:"display"`
}

// BoardConfig defines the grid and its placement in world space.
type BoardConfig struct {
	Width       int          `yaml:"width" env:"WIDTH"`
	Height      int          `yaml:"height" env:"HEIGHT"`
	CellSize    float64      `yaml:"cell_size" env:"CELL_SIZE"`
	Origin      OriginConfig `yaml:"origin" envPrefix:"ORIGIN_"`
	Orientation string       `yaml:"orientation" env:"ORIENTATION"` // "vertical" or "horizontal"
}

// OriginConfig is the world position of the board's (0,0) corner.
type OriginConfig struct {
	X float64 `yaml:"x" env:"X"`
	Y float64 `yaml:"y" env:"Y"`
	Z float64 `yaml:"z" env:"Z"`
}

// PieceConfig defines one piece type.
type PieceConfig struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"` // Exactly one rune
	Color string `yaml:"color"` // Color name, see core.ParseColor
}

// TimingsConfig defines the waits between resolution phases.
type TimingsConfig struct {
	Swap    time.Duration `yaml:"swap" env:"SWAP"`
	Explode time.Duration `yaml:"explode" env:"EXPLODE"` // Per removed piece
	Fall    time.Duration `yaml:"fall" env:"FALL"`       // Per falling piece
	Spawn   time.Duration `yaml:"spawn" env:"SPAWN"`     // Per spawned piece
}

// DisplayConfig defines how the board is drawn in the terminal.
type DisplayConfig struct {
	CellWidth int  `yaml:"cell_width" env:"CELL_WIDTH"` // Terminal columns per board cell
	Debug     bool `yaml:"debug" env:"DEBUG"`           // Coordinate overlay
}

// PacePreset represents a named animation speed.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceFast    PacePreset = "fast"
	PaceInstant PacePreset = "instant"
)

// PaceFactor returns the timing multiplier for a preset.
// Unknown presets leave timings unchanged.
func PaceFactor(preset PacePreset) float64 {
	switch preset {
	case PaceRelaxed:
		return 2.0
	case PaceFast:
		return 0.5
	case PaceInstant:
		return 0
	default:
		return 1.0
	}
}

// ApplyPacePreset scales all timings by the preset's factor.
func ApplyPacePreset(cfg *Match3Config, preset PacePreset) {
	f := PaceFactor(preset)
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * f)
	}

	cfg.Timings.Swap = scale(cfg.Timings.Swap)
	cfg.Timings.Explode = scale(cfg.Timings.Explode)
	cfg.Timings.Fall = scale(cfg.Timings.Fall)
	cfg.Timings.Spawn = scale(cfg.Timings.Spawn)
}

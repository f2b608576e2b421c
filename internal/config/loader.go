package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/grid"
)

// EnvPrefix prefixes every environment override, e.g. MATCH3_BOARD_WIDTH.
const EnvPrefix = "MATCH3_"

// LoadMatch3 loads match-three configuration.
// Search order: customPath -> ~/.arcade/configs/match3.yaml -> ./configs/match3.yaml -> embedded default.
// Environment overrides are applied on top, then the result is validated.
func LoadMatch3(customPath string) (Match3Config, error) {
	cfg, err := readMatch3(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readMatch3(customPath string) (Match3Config, error) {
	var cfg Match3Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("match3.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/match3.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMatch3YAML, &cfg); err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyEnv overrides board, timing and display settings from MATCH3_* variables.
// Piece types can only be set from YAML.
func ApplyEnv(cfg *Match3Config) error {
	sections := []struct {
		prefix string
		target any
	}{
		{EnvPrefix + "BOARD_", &cfg.Board},
		{EnvPrefix + "TIMINGS_", &cfg.Timings},
		{EnvPrefix + "DISPLAY_", &cfg.Display},
	}

	for _, s := range sections {
		if err := env.ParseWithOptions(s.target, env.Options{Prefix: s.prefix}); err != nil {
			return fmt.Errorf("config: parse env: %w", err)
		}
	}
	return nil
}

// Validate reports the first unusable setting, wrapped in ErrInvalidConfig.
func (c Match3Config) Validate() error {
	b := c.Board
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, b.Width, b.Height)
	}
	if b.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size must be positive, got %g", ErrInvalidConfig, b.CellSize)
	}
	if _, err := grid.ConverterFor(b.Orientation); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if len(c.Pieces) < 3 {
		return fmt.Errorf("%w: need at least 3 piece types, got %d", ErrInvalidConfig, len(c.Pieces))
	}
	names := make(map[string]bool, len(c.Pieces))
	for i, p := range c.Pieces {
		if p.Name == "" {
			return fmt.Errorf("%w: piece %d has no name", ErrInvalidConfig, i)
		}
		if names[p.Name] {
			return fmt.Errorf("%w: duplicate piece %q", ErrInvalidConfig, p.Name)
		}
		names[p.Name] = true

		if utf8.RuneCountInString(p.Glyph) != 1 {
			return fmt.Errorf("%w: piece %q glyph must be a single character, got %q", ErrInvalidConfig, p.Name, p.Glyph)
		}
		if p.Color != "" {
			if _, ok := core.ParseColor(p.Color); !ok {
				return fmt.Errorf("%w: piece %q has unknown color %q", ErrInvalidConfig, p.Name, p.Color)
			}
		}
	}

	t := c.Timings
	if t.Swap < 0 || t.Explode < 0 || t.Fall < 0 || t.Spawn < 0 {
		return fmt.Errorf("%w: timings must not be negative", ErrInvalidConfig)
	}

	if c.Display.CellWidth < 1 {
		return fmt.Errorf("%w: display cell_width must be at least 1", ErrInvalidConfig)
	}
	return nil
}

package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-three configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:       8,
			Height:      8,
			CellSize:    1.0,
			Orientation: "vertical",
		},
		Pieces: []PieceConfig{
			{Name: "ruby", Glyph: "♦", Color: "red"},
			{Name: "emerald", Glyph: "♣", Color: "green"},
			{Name: "sapphire", Glyph: "●", Color: "blue"},
			{Name: "topaz", Glyph: "▲", Color: "yellow"},
			{Name: "amethyst", Glyph: "♠", Color: "magenta"},
			{Name: "pearl", Glyph: "■", Color: "white"},
		},
		Timings: TimingsConfig{
			Swap:    250 * time.Millisecond,
			Explode: 50 * time.Millisecond,
			Fall:    40 * time.Millisecond,
			Spawn:   40 * time.Millisecond,
		},
		Display: DisplayConfig{
			CellWidth: 3,
		},
	}
}

package match3

import (
	"github.com/vovakirdan/tui-match3/internal/grid"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Orientation string
	State       string
	Cursor      grid.Coord
	Selected    grid.Coord
	Rows        []string // Piece glyphs, top row first; '.' for empty
	Stats       engine.Stats
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.eng == nil {
		return Snapshot{Tick: g.tick, Cursor: g.cursor, Selected: grid.None}
	}

	b := g.eng.Board()
	rows := make([]string, 0, b.Height())
	for y := b.Height() - 1; y >= 0; y-- {
		row := make([]rune, b.Width())
		for x := range row {
			row[x] = '.'
			if p, ok := b.Get(x, y).Value(); ok {
				row[x] = p.Type.Glyph
			}
		}
		rows = append(rows, string(row))
	}

	return Snapshot{
		Tick:        g.tick,
		Orientation: grid.OrientationOf(b.Converter()),
		State:       g.eng.State().String(),
		Cursor:      g.cursor,
		Selected:    g.eng.Selected(),
		Rows:        rows,
		Stats:       g.eng.Stats(),
	}
}

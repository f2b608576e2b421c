package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/grid"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

const (
	burstGlyph = '✶'
	emptyGlyph = '·'
)

// flash is a short-lived override of how a board cell is drawn.
type flash struct {
	glyph rune
	color core.Color
	ticks int
}

// feedback turns engine signals into flashes and a status line.
type feedback struct {
	engine.NopEffects

	tickRate int
	flashes  map[grid.Coord]flash

	status      string
	statusColor core.Color
	statusTicks int

	chain   int
	noMatch int
	matches int
}

func newFeedback(tickRate int) *feedback {
	return &feedback{
		tickRate: tickRate,
		flashes:  make(map[grid.Coord]flash),
	}
}

func (f *feedback) ticksFor(fraction float64) int {
	return max(1, int(float64(f.tickRate)*fraction))
}

func (f *feedback) SelectionChanged(c grid.Coord, selected bool) {
	f.chain = 0
}

func (f *feedback) PieceRemoved(p engine.Piece, at grid.Coord) {
	f.flashes[at] = flash{glyph: burstGlyph, color: core.ColorBrightWhite, ticks: f.ticksFor(0.3)}
}

func (f *feedback) PieceSpawned(p engine.Piece, at grid.Coord) {
	f.flashes[at] = flash{glyph: p.Type.Glyph, color: core.ColorBrightWhite, ticks: f.ticksFor(0.15)}
}

func (f *feedback) NoMatch() {
	f.noMatch++
	f.setStatus("No match", core.ColorRed)
}

func (f *feedback) MatchFound(coords []grid.Coord) {
	f.matches++
	f.chain++

	if f.chain > 1 {
		f.setStatus(fmt.Sprintf("Chain x%d! %d cleared", f.chain, len(coords)), core.ColorBrightYellow)
		return
	}
	f.setStatus(fmt.Sprintf("Match! %d cleared", len(coords)), core.ColorBrightGreen)
}

func (f *feedback) setStatus(msg string, c core.Color) {
	f.status = msg
	f.statusColor = c
	f.statusTicks = f.ticksFor(1.5)
}

// step ages flashes and the status line by one tick.
func (f *feedback) step() {
	for c, fl := range f.flashes {
		fl.ticks--
		if fl.ticks <= 0 {
			delete(f.flashes, c)
			continue
		}
		f.flashes[c] = fl
	}

	if f.statusTicks > 0 {
		f.statusTicks--
		if f.statusTicks == 0 {
			f.status = ""
		}
	}
}

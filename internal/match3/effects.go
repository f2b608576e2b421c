package match3

import (
	"time"

	"github.com/vovakirdan/tui-match3/internal/grid"
)

// Effects receives the engine's outbound signals. All calls are fire-and-forget
// and happen synchronously on the goroutine driving the engine.
type Effects interface {
	// SelectionChanged reports a new selection, or grid.None with selected=false on deselect.
	SelectionChanged(c grid.Coord, selected bool)

	// PieceMoved reports a swap or fall; d is the expected animation time.
	PieceMoved(p Piece, from, to grid.Coord, d time.Duration)

	// PieceRemoved reports a piece cleared by a match.
	PieceRemoved(p Piece, at grid.Coord)

	// PieceSpawned reports a piece created by refill.
	PieceSpawned(p Piece, at grid.Coord)

	// NoMatch fires when a player swap produced no match.
	NoMatch()

	// MatchFound fires once per scan that found matches.
	MatchFound(coords []grid.Coord)

	// CellChanged forwards every board write.
	CellChanged(x, y int, cell Slot)
}

// NopEffects ignores every signal. Embed it to implement a subset of Effects.
type NopEffects struct{}

func (NopEffects) SelectionChanged(grid.Coord, bool)                       {}
func (NopEffects) PieceMoved(Piece, grid.Coord, grid.Coord, time.Duration) {}
func (NopEffects) PieceRemoved(Piece, grid.Coord)                          {}
func (NopEffects) PieceSpawned(Piece, grid.Coord)                          {}
func (NopEffects) NoMatch()                                                {}
func (NopEffects) MatchFound([]grid.Coord)                                 {}
func (NopEffects) CellChanged(int, int, Slot)                              {}

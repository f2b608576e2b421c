// Package match3 implements the match-three rules: the match scan, gravity,
// refill and the selection/resolution state machine that drives them.
package match3

import (
	"github.com/vovakirdan/tui-match3/internal/grid"
)

// Slot is one board position holding zero or one piece.
type Slot = grid.Cell[Piece]

// Board is the grid the engine plays on.
type Board = grid.Grid[Slot]

// NewBoard creates a board of empty slots.
func NewBoard(width, height int, cellSize float64, origin grid.Vec3, conv grid.Converter) (*Board, error) {
	b, err := grid.New[Slot](width, height, cellSize, origin, conv)
	if err != nil {
		return nil, err
	}
	for _, c := range b.Coords() {
		b.Set(c.X, c.Y, grid.EmptyCell[Piece](c))
	}
	return b, nil
}

// FindMatches returns every coordinate that is part of a run of three or more
// same-type pieces. Rows are scanned first, then columns; the result holds each
// coordinate once, in discovery order.
func FindMatches(b *Board) []grid.Coord {
	var matched []grid.Coord
	seen := make(map[grid.Coord]bool)

	mark := func(cs ...grid.Coord) {
		for _, c := range cs {
			if !seen[c] {
				seen[c] = true
				matched = append(matched, c)
			}
		}
	}

	for y := 0; y < b.Height(); y++ {
		for x := 0; x+2 < b.Width(); x++ {
			a, m, z := grid.C(x, y), grid.C(x+1, y), grid.C(x+2, y)
			if sameType(b, a, m, z) {
				mark(a, m, z)
			}
		}
	}

	for x := 0; x < b.Width(); x++ {
		for y := 0; y+2 < b.Height(); y++ {
			a, m, z := grid.C(x, y), grid.C(x, y+1), grid.C(x, y+2)
			if sameType(b, a, m, z) {
				mark(a, m, z)
			}
		}
	}

	return matched
}

func sameType(b *Board, first grid.Coord, rest ...grid.Coord) bool {
	p, ok := b.Get(first.X, first.Y).Value()
	if !ok {
		return false
	}
	for _, c := range rest {
		q, ok := b.Get(c.X, c.Y).Value()
		if !ok || !p.Matches(q) {
			return false
		}
	}
	return true
}

package match3

import "github.com/vovakirdan/tui-match3/internal/grid"

// Move records one piece falling from one slot to another.
type Move struct {
	Piece    Piece
	From, To grid.Coord
}

// Collapse drops pieces into the empty slots below them, column by column.
// Each empty slot, scanned from y = 0 upward, takes the nearest piece above it,
// so pieces keep their relative order and the gaps end up at the top.
// Moves are returned in the order they were applied.
func Collapse(b *Board) []Move {
	var moves []Move

	for x := 0; x < b.Width(); x++ {
		for y := 0; y < b.Height(); y++ {
			if !b.Get(x, y).IsEmpty() {
				continue
			}

			above := y + 1
			for ; above < b.Height(); above++ {
				if !b.Get(x, above).IsEmpty() {
					break
				}
			}
			if above >= b.Height() {
				break // nothing left to drop in this column
			}

			p, _ := b.Get(x, above).Value()
			from, to := grid.C(x, above), grid.C(x, y)
			b.Set(to.X, to.Y, grid.CellOf(to, p))
			b.Set(from.X, from.Y, grid.EmptyCell[Piece](from))
			moves = append(moves, Move{Piece: p, From: from, To: to})
		}
	}

	return moves
}

// Refill puts a new piece from spawn into every empty slot,
// column by column from the bottom up, and returns the filled coordinates.
func Refill(b *Board, spawn func(at grid.Coord) Piece) []grid.Coord {
	var filled []grid.Coord

	for x := 0; x < b.Width(); x++ {
		for y := 0; y < b.Height(); y++ {
			if !b.Get(x, y).IsEmpty() {
				continue
			}
			c := grid.C(x, y)
			b.Set(x, y, grid.CellOf(c, spawn(c)))
			filled = append(filled, c)
		}
	}

	return filled
}

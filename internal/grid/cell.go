package grid

// Cell is one slot of a grid: a coordinate and an optional payload.
// The zero value is an empty slot and is what Grid.Get returns out of bounds.
type Cell[T any] struct {
	coord  Coord
	value  T
	filled bool
}

// CellOf returns a slot at c holding v.
func CellOf[T any](c Coord, v T) Cell[T] {
	return Cell[T]{coord: c, value: v, filled: true}
}

// EmptyCell returns an empty slot at c.
func EmptyCell[T any](c Coord) Cell[T] {
	return Cell[T]{coord: c}
}

// Coord returns the slot's coordinate.
func (c Cell[T]) Coord() Coord {
	return c.coord
}

// Value returns the payload and whether there is one.
func (c Cell[T]) Value() (T, bool) {
	return c.value, c.filled
}

// IsEmpty reports whether the slot holds no payload.
func (c Cell[T]) IsEmpty() bool {
	return !c.filled
}

// Set replaces the payload.
func (c *Cell[T]) Set(v T) {
	c.value = v
	c.filled = true
}

// Clear removes the payload.
func (c *Cell[T]) Clear() {
	var zero T
	c.value = zero
	c.filled = false
}

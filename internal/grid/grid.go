package grid

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidDimensions is returned when a grid is built with a non-positive
// width, height or cell size.
var ErrInvalidDimensions = errors.New("grid: dimensions and cell size must be positive")

// Grid is a fixed-size 2D array of T positioned in world space.
// Cells are stored in row-major order: index = y*width + x.
//
// Out-of-bounds access is never an error: reads return the zero value of T
// and writes are ignored.
type Grid[T any] struct {
	width     int
	height    int
	cellSize  float64
	origin    Vec3
	converter Converter
	cells     []T

	observers []*observer[T]
}

type observer[T any] struct {
	fn        func(x, y int, v T)
	cancelled bool
}

// New creates a grid of width × height zero-valued cells.
// A nil converter defaults to Vertical.
func New[T any](width, height int, cellSize float64, origin Vec3, converter Converter) (*Grid[T], error) {
	if width <= 0 || height <= 0 || cellSize <= 0 {
		return nil, fmt.Errorf("%w: %dx%d, cell size %g", ErrInvalidDimensions, width, height, cellSize)
	}
	if converter == nil {
		converter = Vertical
	}
	return &Grid[T]{
		width:     width,
		height:    height,
		cellSize:  cellSize,
		origin:    origin,
		converter: converter,
		cells:     make([]T, width*height),
	}, nil
}

// NewVertical creates a grid on the world X/Y plane.
func NewVertical[T any](width, height int, cellSize float64, origin Vec3) (*Grid[T], error) {
	return New[T](width, height, cellSize, origin, Vertical)
}

// NewHorizontal creates a grid on the world X/Z plane.
func NewHorizontal[T any](width, height int, cellSize float64, origin Vec3) (*Grid[T], error) {
	return New[T](width, height, cellSize, origin, Horizontal)
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// CellSize returns the world-space size of one cell.
func (g *Grid[T]) CellSize() float64 { return g.cellSize }

// Origin returns the world position of cell (0,0)'s corner.
func (g *Grid[T]) Origin() Vec3 { return g.origin }

// Converter returns the coordinate converter in use.
func (g *Grid[T]) Converter() Converter { return g.converter }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Set stores v at (x, y) and notifies observers.
// Out-of-bounds coordinates are silently ignored.
func (g *Grid[T]) Set(x, y int, v T) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = v

	// Observers may cancel during the loop; cancel never writes to this slice.
	for _, o := range g.observers {
		if !o.cancelled {
			o.fn(x, y, v)
		}
	}
}

// SetAt stores v in the cell containing the world position pos.
func (g *Grid[T]) SetAt(pos Vec3, v T) {
	c := g.XY(pos)
	g.Set(c.X, c.Y, v)
}

// Get returns the value at (x, y), or the zero value of T if out of bounds.
func (g *Grid[T]) Get(x, y int) T {
	if !g.InBounds(x, y) {
		var zero T
		return zero
	}
	return g.cells[y*g.width+x]
}

// GetAt returns the value of the cell containing the world position pos.
func (g *Grid[T]) GetAt(pos Vec3) T {
	c := g.XY(pos)
	return g.Get(c.X, c.Y)
}

// XY returns the indices of the cell containing pos. The result is not bounds-checked.
func (g *Grid[T]) XY(pos Vec3) Coord {
	return g.converter.WorldToGrid(pos, g.cellSize, g.origin)
}

// WorldPosition returns the world position of the corner of cell (x, y).
func (g *Grid[T]) WorldPosition(x, y int) Vec3 {
	return g.converter.GridToWorld(x, y, g.cellSize, g.origin)
}

// WorldPositionCenter returns the world position of the center of cell (x, y).
func (g *Grid[T]) WorldPositionCenter(x, y int) Vec3 {
	return g.converter.GridToWorldCenter(x, y, g.cellSize, g.origin)
}

// OnValueChange registers fn to be called after every in-bounds Set.
// The returned function removes the registration; calling it more than once is safe.
func (g *Grid[T]) OnValueChange(fn func(x, y int, v T)) (cancel func()) {
	o := &observer[T]{fn: fn}
	g.observers = append(g.observers, o)

	return func() {
		if o.cancelled {
			return
		}
		o.cancelled = true
		g.observers = slices.DeleteFunc(slices.Clone(g.observers), func(cur *observer[T]) bool {
			return cur == o
		})
	}
}

// ObserverCount returns the number of registered change observers.
func (g *Grid[T]) ObserverCount() int {
	return len(g.observers)
}

// Coords returns every coordinate of the grid, row by row from y = 0.
func (g *Grid[T]) Coords() []Coord {
	coords := make([]Coord, 0, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}

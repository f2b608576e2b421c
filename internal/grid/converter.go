package grid

import (
	"fmt"
	"math"
)

// Converter maps between grid indices and world-space positions.
// Implementations are stateless; the cell size and origin are passed on every call.
type Converter interface {
	// GridToWorld returns the world position of the cell's corner.
	GridToWorld(x, y int, cellSize float64, origin Vec3) Vec3

	// GridToWorldCenter returns the world position of the cell's center.
	GridToWorldCenter(x, y int, cellSize float64, origin Vec3) Vec3

	// WorldToGrid returns the indices of the cell containing pos.
	// The result may be out of bounds for the grid using the converter.
	WorldToGrid(pos Vec3, cellSize float64, origin Vec3) Coord

	// Forward returns the unit normal of the grid plane.
	Forward() Vec3
}

// Orientation names accepted by ConverterFor.
const (
	OrientationVertical   = "vertical"
	OrientationHorizontal = "horizontal"
)

var (
	// Vertical lays the grid on the world X/Y plane, facing +Z.
	Vertical Converter = verticalConverter{}

	// Horizontal lays the grid on the world X/Z plane, facing down.
	Horizontal Converter = horizontalConverter{}
)

// ConverterFor resolves an orientation name from configuration.
func ConverterFor(orientation string) (Converter, error) {
	switch orientation {
	case OrientationVertical, "":
		return Vertical, nil
	case OrientationHorizontal:
		return Horizontal, nil
	default:
		return nil, fmt.Errorf("grid: unknown orientation %q", orientation)
	}
}

// OrientationOf returns the orientation name of a built-in converter.
func OrientationOf(c Converter) string {
	if _, ok := c.(horizontalConverter); ok {
		return OrientationHorizontal
	}
	return OrientationVertical
}

type verticalConverter struct{}

func (verticalConverter) GridToWorld(x, y int, cellSize float64, origin Vec3) Vec3 {
	return V(float64(x), float64(y), 0).Scale(cellSize).Add(origin)
}

func (verticalConverter) GridToWorldCenter(x, y int, cellSize float64, origin Vec3) Vec3 {
	half := cellSize * 0.5
	return V(float64(x)*cellSize+half, float64(y)*cellSize+half, 0).Add(origin)
}

func (verticalConverter) WorldToGrid(pos Vec3, cellSize float64, origin Vec3) Coord {
	p := pos.Sub(origin).Div(cellSize)
	return C(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

func (verticalConverter) Forward() Vec3 {
	return V(0, 0, 1)
}

type horizontalConverter struct{}

func (horizontalConverter) GridToWorld(x, y int, cellSize float64, origin Vec3) Vec3 {
	return V(float64(x), 0, float64(y)).Scale(cellSize).Add(origin)
}

func (horizontalConverter) GridToWorldCenter(x, y int, cellSize float64, origin Vec3) Vec3 {
	half := cellSize * 0.5
	return V(float64(x)*cellSize+half, 0, float64(y)*cellSize+half).Add(origin)
}

func (horizontalConverter) WorldToGrid(pos Vec3, cellSize float64, origin Vec3) Coord {
	p := pos.Sub(origin).Div(cellSize)
	return C(int(math.Floor(p.X)), int(math.Floor(p.Z)))
}

func (horizontalConverter) Forward() Vec3 {
	return V(0, -1, 0)
}

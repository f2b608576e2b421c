package match3

import (
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/grid"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

const (
	hudHeight    = 3 // Title, counters, blank line
	footerHeight = 3 // Status, help, debug
	minBoxWidth  = 34
)

// camera maps between terminal cells and world positions.
// Row 0 of the board is drawn at the bottom of the box.
type camera struct {
	box   core.Rect // Board frame, border included
	area  core.Rect // Drawable board cells
	cellW int
	cols  int
	rows  int

	// World basis taken from the board's converter, so the same mapping
	// serves both the upright and the tabletop orientation.
	origin grid.Vec3
	stepX  grid.Vec3
	stepY  grid.Vec3
}

func newCamera(b *engine.Board, cellW, screenW, screenH int) camera {
	if cellW < 1 {
		cellW = 1
	}

	boxW := b.Width()*cellW + 2
	boxH := b.Height() + 2
	boxX := (screenW - boxW) / 2
	if boxX < 0 {
		boxX = 0
	}
	box := core.NewRect(boxX, hudHeight, boxW, boxH)

	o := b.WorldPosition(0, 0)
	return camera{
		box:    box,
		area:   core.NewRect(box.X+1, box.Y+1, b.Width()*cellW, b.Height()),
		cellW:  cellW,
		cols:   b.Width(),
		rows:   b.Height(),
		origin: o,
		stepX:  b.WorldPosition(1, 0).Sub(o),
		stepY:  b.WorldPosition(0, 1).Sub(o),
	}
}

func (c camera) minWidth() int {
	return max(c.box.W, minBoxWidth)
}

func (c camera) minHeight() int {
	return hudHeight + c.box.H + footerHeight
}

// screenToWorld returns the world position under a terminal cell, at the
// middle of the board cell's row and of the character within it.
func (c camera) screenToWorld(sx, sy int) (grid.Vec3, bool) {
	if !c.area.Contains(sx, sy) {
		return grid.Vec3{}, false
	}

	col := sx - c.area.X
	row := sy - c.area.Y
	u := (float64(col) + 0.5) / float64(c.cellW)
	v := float64(c.rows-row) - 0.5

	return c.origin.Add(c.stepX.Scale(u)).Add(c.stepY.Scale(v)), true
}

// screenOf returns the terminal position of the left edge of a board cell.
func (c camera) screenOf(cell grid.Coord) (x, y int) {
	return c.area.X + cell.X*c.cellW, c.area.Y + (c.rows - 1 - cell.Y)
}

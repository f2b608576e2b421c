package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/grid"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil || g.eng == nil {
		g.renderError(dst)
		return
	}

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)

	if g.paused {
		dst.DrawTextCentered(g.cam.box.Y+g.cam.box.H/2, " PAUSED ")
	}
}

// renderError explains why no board could be built.
func (g *Game) renderError(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Cannot start the board")
	if g.err != nil {
		dst.DrawTextCentered(y+1, g.err.Error())
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.cam.minWidth(), g.cam.minHeight()))
}

// renderHUD draws the title and session counters.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, g.title)

	st := g.eng.Stats()
	counters := fmt.Sprintf("Swaps: %d  Cleared: %d  Best chain: %d", st.Swaps, st.Cleared, st.LongestChain)
	x := g.cam.box.X
	dst.DrawText(x, 1, counters)

	info := fmt.Sprintf("%s | %s", grid.OrientationOf(g.eng.Board().Converter()), g.eng.State())
	infoX := max(x, g.cam.box.Right()-len(info))
	if infoX > x+len(counters) {
		dst.DrawTextColored(infoX, 1, info, core.ColorGray)
	}
}

// renderBoard draws the frame, the pieces, the cursor and the selection.
func (g *Game) renderBoard(dst *core.Screen) {
	dst.DrawBox(g.cam.box)

	b := g.eng.Board()
	selected := g.eng.Selected()

	for _, c := range b.Coords() {
		x, y := g.cam.screenOf(c)
		mid := x + g.cam.cellW/2

		glyph, color := cellLook(b.Get(c.X, c.Y))
		if fl, ok := g.fx.flashes[c]; ok {
			glyph, color = fl.glyph, fl.color
		}
		dst.SetColored(mid, y, glyph, color)

		switch {
		case c == selected:
			g.bracket(dst, x, y, '<', '>', core.ColorBrightYellow)
		case c == g.cursor:
			g.bracket(dst, x, y, '[', ']', core.ColorBrightCyan)
		}
	}
}

// bracket marks a cell with a pair of runes on its edges.
// Cells narrower than three columns get the left rune only.
func (g *Game) bracket(dst *core.Screen, x, y int, left, right rune, c core.Color) {
	if g.cam.cellW < 2 {
		dst.SetColored(x, y, dst.Get(x, y), c)
		return
	}
	dst.SetColored(x, y, left, c)
	if g.cam.cellW >= 3 {
		dst.SetColored(x+g.cam.cellW-1, y, right, c)
	}
}

func cellLook(s engine.Slot) (rune, core.Color) {
	p, ok := s.Value()
	if !ok || p.Type == nil {
		return emptyGlyph, core.ColorGray
	}
	return p.Type.Glyph, p.Type.Color
}

// renderFooter draws the status line, key help and the debug overlay.
func (g *Game) renderFooter(dst *core.Screen) {
	x := g.cam.box.X
	y := g.cam.box.Bottom()

	if g.fx.status != "" {
		dst.DrawTextColored(x, y, g.fx.status, g.fx.statusColor)
	}
	dst.DrawTextColored(x, y+1, "arrows move  space/click select  p pause  q quit", core.ColorGray)

	if g.cfg.Display.Debug {
		b := g.eng.Board()
		center := b.WorldPositionCenter(g.cursor.X, g.cursor.Y)
		dbg := fmt.Sprintf("%v world %v fwd %v wait %v",
			g.cursor, center, b.Converter().Forward(), g.eng.Wait())
		dst.DrawTextColored(x, y+2, dbg, core.ColorGray)
	}
}

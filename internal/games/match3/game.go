// Package match3 adapts the match-three engine to the arcade game interface:
// it owns the cursor, maps screen clicks to world positions, and draws the board.
package match3

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/grid"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

const (
	IDClassic  = "match3"
	IDTabletop = "match3_tabletop"
)

// Game implements the match-three puzzle on top of the engine.
type Game struct {
	id          string
	title       string
	description string
	orientation string // Forced orientation, empty to use the config

	cfg   config.Match3Config
	eng   *engine.Engine
	fx    *feedback
	cam   camera
	err   error
	types []*engine.PieceType

	tick uint64
	dt   time.Duration

	cursor grid.Coord
	aim    grid.Vec3
	hasAim bool

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// Package-level variables for config
var (
	configPath string
	pace       = config.PaceNormal
	logger     = log.New(io.Discard)
)

// SetConfigPath sets a custom YAML config path. Empty uses the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetPace sets the animation pace preset.
func SetPace(p config.PacePreset) {
	pace = p
}

// SetLogger sets the logger handed to new engines.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// LoadConfig loads the game config from the configured path and applies the pace preset.
func LoadConfig() (config.Match3Config, error) {
	mc, err := config.LoadMatch3(configPath)
	if err != nil {
		return mc, err
	}
	config.ApplyPacePreset(&mc, pace)
	return mc, nil
}

// New creates the classic upright variant.
func New() *Game {
	return &Game{
		id:          IDClassic,
		title:       "Match-3",
		description: "Upright board, pieces fall toward the bottom of the screen",
	}
}

// NewTabletop creates the variant whose board lies on the horizontal plane.
func NewTabletop() *Game {
	return &Game{
		id:          IDTabletop,
		title:       "Match-3 (Tabletop)",
		description: "Board lies flat and is viewed from above, pieces slide toward the near edge",
		orientation: grid.OrientationHorizontal,
	}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDTabletop, func() registry.Game {
		return NewTabletop()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Description returns a one-line summary of the variant.
func (g *Game) Description() string { return g.description }

// Reset loads configuration and starts a fresh board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.eng != nil {
		g.eng.Close()
		g.eng = nil
	}

	g.tick = 0
	g.paused = false
	g.hasAim = false
	g.err = nil
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.dt = cfg.Interval()

	mc, err := LoadConfig()
	if err != nil {
		logger.Warn("using default config", "err", err)
		mc = config.DefaultMatch3Config()
		config.ApplyPacePreset(&mc, pace)
	}
	if g.orientation != "" {
		mc.Board.Orientation = g.orientation
	}
	g.cfg = mc

	g.fx = newFeedback(tickRate)

	ec, err := EngineConfig(mc, cfg.Seed)
	if err != nil {
		g.err = err
		return
	}
	g.types = ec.Types

	g.eng, err = engine.New(ec,
		engine.WithEffects(g.fx),
		engine.WithLogger(logger.With("game", g.id)),
		engine.WithPointer(g.pointer),
	)
	if err != nil {
		logger.Error("engine setup failed", "err", err)
		g.err = err
		return
	}

	g.cursor = grid.C(mc.Board.Width/2, mc.Board.Height/2)
	g.layout()
}

// Resize follows a terminal resize without restarting the board.
func (g *Game) Resize(screenW, screenH int) {
	g.screenW = screenW
	g.screenH = screenH
	g.layout()
}

// layout places the board on screen and checks that it fits.
func (g *Game) layout() {
	if g.eng == nil {
		return
	}
	b := g.eng.Board()
	g.cam = newCamera(b, g.cfg.Display.CellWidth, g.screenW, g.screenH)
	g.tooSmall = g.screenW < g.cam.minWidth() || g.screenH < g.cam.minHeight()
}

// EngineConfig converts a validated game config into an engine config.
func EngineConfig(mc config.Match3Config, seed int64) (engine.Config, error) {
	conv, err := grid.ConverterFor(mc.Board.Orientation)
	if err != nil {
		return engine.Config{}, err
	}

	return engine.Config{
		Width:     mc.Board.Width,
		Height:    mc.Board.Height,
		CellSize:  mc.Board.CellSize,
		Origin:    grid.V(mc.Board.Origin.X, mc.Board.Origin.Y, mc.Board.Origin.Z),
		Converter: conv,
		Types:     pieceTypes(mc.Pieces),
		Seed:      seed,
		Timings: engine.Timings{
			Swap:    mc.Timings.Swap,
			Explode: mc.Timings.Explode,
			Fall:    mc.Timings.Fall,
			Spawn:   mc.Timings.Spawn,
		},
	}, nil
}

// pieceTypes builds engine types from validated config.
func pieceTypes(pcs []config.PieceConfig) []*engine.PieceType {
	types := make([]*engine.PieceType, 0, len(pcs))
	for _, p := range pcs {
		color, _ := core.ParseColor(p.Color)
		glyph := '?'
		for _, r := range p.Glyph {
			glyph = r
			break
		}
		types = append(types, &engine.PieceType{Name: p.Name, Glyph: glyph, Color: color})
	}
	return types
}

// pointer feeds the engine's Fire with the last aimed world position.
func (g *Game) pointer() (grid.Vec3, bool) {
	return g.aim, g.hasAim
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.err != nil || g.eng == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.fx.step()
	g.moveCursor(in)

	if in.Has(core.ActionSelect) {
		g.fire(in)
	}

	g.eng.Update(g.dt)

	return core.StepResult{State: g.State()}
}

// moveCursor applies arrow input. Up points to higher rows on screen, which are higher y.
func (g *Game) moveCursor(in core.InputFrame) {
	b := g.eng.Board()
	c := g.cursor

	switch {
	case in.Has(core.ActionUp):
		c.Y++
	case in.Has(core.ActionDown):
		c.Y--
	case in.Has(core.ActionLeft):
		c.X--
	case in.Has(core.ActionRight):
		c.X++
	}

	g.cursor = grid.C(core.Clamp(c.X, 0, b.Width()-1), core.Clamp(c.Y, 0, b.Height()-1))
}

// fire aims at the clicked cell, or the cursor when the input has no pointer.
func (g *Game) fire(in core.InputFrame) {
	b := g.eng.Board()

	if x, y, ok := in.Pointer(); ok {
		pos, inside := g.cam.screenToWorld(x, y)
		g.aim, g.hasAim = pos, inside
		if inside {
			g.cursor = b.XY(pos)
		}
	} else {
		g.aim, g.hasAim = b.WorldPositionCenter(g.cursor.X, g.cursor.Y), true
	}

	g.eng.Fire()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	var st engine.Stats
	resolving := false
	if g.eng != nil {
		st = g.eng.Stats()
		resolving = g.eng.Busy()
	}

	return core.GameState{
		Swaps:        st.Swaps,
		Passes:       st.Passes,
		Cleared:      st.Cleared,
		LongestChain: st.LongestChain,
		Resolving:    resolving,
		Paused:       g.paused || g.tooSmall,
	}
}

// Close releases the engine.
func (g *Game) Close() {
	if g.eng != nil {
		g.eng.Close()
	}
}

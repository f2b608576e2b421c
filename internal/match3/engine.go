package match3

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/grid"
)

// State is the engine's selection state.
type State int

const (
	StateIdle        State = iota // Nothing selected
	StateOneSelected              // One coordinate selected, waiting for the second
	StateResolving                // Swap and cascade in progress; input is ignored
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOneSelected:
		return "selected"
	case StateResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Timings are the waits between resolution phases.
type Timings struct {
	Swap    time.Duration // Once per swap
	Explode time.Duration // Per removed piece
	Fall    time.Duration // Per falling piece
	Spawn   time.Duration // Per spawned piece
}

// DefaultTimings returns the classic pacing of the game.
func DefaultTimings() Timings {
	return Timings{
		Swap:    500 * time.Millisecond,
		Explode: 100 * time.Millisecond,
		Fall:    200 * time.Millisecond,
		Spawn:   200 * time.Millisecond,
	}
}

// Config describes the board an engine plays on.
type Config struct {
	Width     int
	Height    int
	CellSize  float64
	Origin    grid.Vec3
	Converter grid.Converter // nil means grid.Vertical
	Types     []*PieceType
	Seed      int64 // Seeds the default random source
	Timings   Timings
}

// PointerFunc reports the world position an external input device points at.
type PointerFunc func() (grid.Vec3, bool)

// Stats are counters for one engine's lifetime.
type Stats struct {
	Swaps        int // Player swaps
	Passes       int // Scans that found matches
	Cleared      int // Pieces removed
	Spawned      int // Pieces created by refill
	LongestChain int // Most matching passes in a single swap
}

// Option configures an Engine.
type Option func(*Engine)

// WithEffects sets the receiver of outbound signals.
func WithEffects(fx Effects) Option {
	return func(e *Engine) {
		if fx != nil {
			e.fx = fx
		}
	}
}

// WithSource replaces the random piece source.
func WithSource(src PieceSource) Option {
	return func(e *Engine) { e.source = src }
}

// WithLogger sets the logger used for phase tracing.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithPointer binds the position used by Fire.
func WithPointer(fn PointerFunc) Option {
	return func(e *Engine) { e.pointer = fn }
}

type phase int

const (
	phaseNone phase = iota
	phaseScan
	phaseExplode
	phaseFall
	phaseRefill
)

func (p phase) String() string {
	switch p {
	case phaseScan:
		return "scan"
	case phaseExplode:
		return "explode"
	case phaseFall:
		return "fall"
	case phaseRefill:
		return "refill"
	default:
		return "none"
	}
}

// Engine owns a board and runs the select, swap and cascade cycle.
//
// A cycle runs as a sequence of phases. Each phase reports how long its
// effects take to play; Update consumes that wait before running the next
// phase, and Settle runs the remaining phases immediately. A started cycle
// always runs to completion.
type Engine struct {
	board   *Board
	source  PieceSource
	timings Timings
	fx      Effects
	log     *log.Logger
	pointer PointerFunc

	state    State
	selected grid.Coord

	next          phase
	wait          time.Duration
	pending       []grid.Coord
	userInitiated bool
	chain         int

	nextID uint64
	stats  Stats

	unsubscribe func()
	closed      bool
}

// New builds an engine and fills its board from the piece source.
// Matches present in the initial fill are left in place.
func New(cfg Config, opts ...Option) (*Engine, error) {
	board, err := NewBoard(cfg.Width, cfg.Height, cfg.CellSize, cfg.Origin, cfg.Converter)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		board:    board,
		timings:  cfg.Timings,
		fx:       NopEffects{},
		log:      log.New(io.Discard),
		selected: grid.None,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.source == nil {
		src, err := NewRandomSource(cfg.Seed, cfg.Types)
		if err != nil {
			return nil, err
		}
		e.source = src
	}

	for _, c := range board.Coords() {
		board.Set(c.X, c.Y, grid.CellOf(c, e.spawn(c)))
	}

	e.unsubscribe = board.OnValueChange(func(x, y int, s Slot) {
		e.fx.CellChanged(x, y, s)
	})

	e.log.Debug("engine ready", "width", cfg.Width, "height", cfg.Height,
		"orientation", grid.OrientationOf(board.Converter()))
	return e, nil
}

// Board returns the engine's board. Callers should treat it as read-only.
func (e *Engine) Board() *Board { return e.board }

// State returns the current selection state.
func (e *Engine) State() State { return e.state }

// Selected returns the selected coordinate, or grid.None.
func (e *Engine) Selected() grid.Coord { return e.selected }

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() Stats { return e.stats }

// Busy reports whether a swap is being resolved.
func (e *Engine) Busy() bool { return e.state == StateResolving }

// Wait returns the time left before the next phase runs.
func (e *Engine) Wait() time.Duration {
	if e.wait < 0 {
		return 0
	}
	return e.wait
}

// Select handles a selection at c.
// Input is ignored while resolving, after Close, and for coordinates that are
// outside the board or hold no piece.
func (e *Engine) Select(c grid.Coord) {
	if e.closed || e.state == StateResolving {
		return
	}
	if !e.board.InBounds(c.X, c.Y) || e.board.Get(c.X, c.Y).IsEmpty() {
		return
	}

	switch e.state {
	case StateIdle:
		e.selected = c
		e.state = StateOneSelected
		e.fx.SelectionChanged(c, true)

	case StateOneSelected:
		if c == e.selected {
			e.deselect()
			return
		}
		e.swap(e.selected, c)
	}
}

// SelectAt handles a selection at a world position.
func (e *Engine) SelectAt(pos grid.Vec3) {
	e.Select(e.board.XY(pos))
}

// Fire selects at the position reported by the bound pointer, if any.
func (e *Engine) Fire() {
	if e.pointer == nil {
		return
	}
	if pos, ok := e.pointer(); ok {
		e.SelectAt(pos)
	}
}

// Update advances a running cycle by dt. Leftover time carries into the next phase.
func (e *Engine) Update(dt time.Duration) {
	if e.closed || e.state != StateResolving {
		return
	}

	e.wait -= dt
	for e.state == StateResolving && e.wait <= 0 {
		e.wait += e.step()
	}
	if e.state != StateResolving {
		e.wait = 0
	}
}

// Settle runs the current cycle to completion without waiting.
func (e *Engine) Settle() {
	if e.closed {
		return
	}
	for e.state == StateResolving {
		e.step()
	}
	e.wait = 0
}

// Close finishes any running cycle, then unsubscribes from the board and
// drops collaborators. Calling it more than once is safe.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.Settle()
	e.closed = true
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.fx = NopEffects{}
	e.pointer = nil
	e.log.Debug("engine closed")
}

func (e *Engine) deselect() {
	e.selected = grid.None
	e.state = StateIdle
	e.fx.SelectionChanged(grid.None, false)
}

// swap exchanges the pieces at a and b and starts a resolution cycle.
func (e *Engine) swap(a, b grid.Coord) {
	pa, _ := e.board.Get(a.X, a.Y).Value()
	pb, _ := e.board.Get(b.X, b.Y).Value()

	e.state = StateResolving
	e.userInitiated = true
	e.chain = 0
	e.stats.Swaps++
	e.log.Debug("swap", "a", a, "b", b)

	e.board.Set(a.X, a.Y, grid.CellOf(a, pb))
	e.board.Set(b.X, b.Y, grid.CellOf(b, pa))
	e.fx.PieceMoved(pa, a, b, e.timings.Swap)
	e.fx.PieceMoved(pb, b, a, e.timings.Swap)

	e.next = phaseScan
	e.wait = e.timings.Swap
}

// step runs the next phase and returns how long its effects take.
func (e *Engine) step() time.Duration {
	current := e.next

	var d time.Duration
	switch current {
	case phaseScan:
		d = e.scan()
	case phaseExplode:
		d = e.explode()
	case phaseFall:
		d = e.fall()
	case phaseRefill:
		d = e.refill()
	default:
		e.finish()
	}

	e.log.Debug("phase", "name", current, "wait", d)
	return d
}

func (e *Engine) scan() time.Duration {
	matches := FindMatches(e.board)
	if len(matches) == 0 {
		if e.userInitiated {
			e.fx.NoMatch()
		}
		e.finish()
		return 0
	}

	e.chain++
	e.stats.Passes++
	e.pending = matches
	e.fx.MatchFound(matches)
	e.next = phaseExplode
	return 0
}

func (e *Engine) explode() time.Duration {
	for _, c := range e.pending {
		p, ok := e.board.Get(c.X, c.Y).Value()
		if !ok {
			continue
		}
		e.board.Set(c.X, c.Y, grid.EmptyCell[Piece](c))
		e.fx.PieceRemoved(p, c)
	}

	n := len(e.pending)
	e.stats.Cleared += n
	e.pending = nil
	e.next = phaseFall
	return time.Duration(n) * e.timings.Explode
}

func (e *Engine) fall() time.Duration {
	moves := Collapse(e.board)
	for _, m := range moves {
		e.fx.PieceMoved(m.Piece, m.From, m.To, e.timings.Fall)
	}

	e.next = phaseRefill
	return time.Duration(len(moves)) * e.timings.Fall
}

func (e *Engine) refill() time.Duration {
	spawned := Refill(e.board, e.spawn)
	for _, c := range spawned {
		p, _ := e.board.Get(c.X, c.Y).Value()
		e.fx.PieceSpawned(p, c)
	}

	e.stats.Spawned += len(spawned)
	e.userInitiated = false
	e.next = phaseScan
	return time.Duration(len(spawned)) * e.timings.Spawn
}

func (e *Engine) finish() {
	if e.chain > e.stats.LongestChain {
		e.stats.LongestChain = e.chain
	}
	e.log.Debug("cycle done", "chain", e.chain)

	e.next = phaseNone
	e.pending = nil
	e.deselect()
}

func (e *Engine) spawn(grid.Coord) Piece {
	e.nextID++
	return Piece{ID: e.nextID, Type: e.source.Next()}
}

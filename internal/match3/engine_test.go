package match3

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-match3/internal/grid"
)

// recorder captures every signal the engine sends.
type recorder struct {
	events     []string
	selections []grid.Coord
	moves      []Move
	removed    []grid.Coord
	spawned    []grid.Coord
	matches    [][]grid.Coord
	noMatch    int
	changes    int
}

func (r *recorder) SelectionChanged(c grid.Coord, selected bool) {
	r.events = append(r.events, "select")
	r.selections = append(r.selections, c)
}

func (r *recorder) PieceMoved(p Piece, from, to grid.Coord, d time.Duration) {
	r.events = append(r.events, "move")
	r.moves = append(r.moves, Move{Piece: p, From: from, To: to})
}

func (r *recorder) PieceRemoved(p Piece, at grid.Coord) {
	r.events = append(r.events, "remove")
	r.removed = append(r.removed, at)
}

func (r *recorder) PieceSpawned(p Piece, at grid.Coord) {
	r.events = append(r.events, "spawn")
	r.spawned = append(r.spawned, at)
}

func (r *recorder) NoMatch() {
	r.events = append(r.events, "nomatch")
	r.noMatch++
}

func (r *recorder) MatchFound(coords []grid.Coord) {
	r.events = append(r.events, "match")
	r.matches = append(r.matches, coords)
}

func (r *recorder) CellChanged(x, y int, cell Slot) {
	r.changes++
}

func (r *recorder) reset() { *r = recorder{} }

func newTestEngine(t *testing.T, w, h int, opts ...Option) (*Engine, *recorder) {
	t.Helper()

	rec := &recorder{}
	cfg := Config{
		Width:    w,
		Height:   h,
		CellSize: 1,
		Types:    testTypes,
		Seed:     1,
		Timings:  DefaultTimings(),
	}
	e, err := New(cfg, append([]Option{WithEffects(rec)}, opts...)...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(e.Close)
	return e, rec
}

// noMatchRows is a 3x3 layout without runs where swapping (0,0) and (1,0)
// creates none.
var noMatchRows = []string{
	"BRG",
	"GBR",
	"RGB",
}

func TestNewValidates(t *testing.T) {
	_, err := New(Config{Width: 0, Height: 3, CellSize: 1, Types: testTypes})
	if !errors.Is(err, grid.ErrInvalidDimensions) {
		t.Errorf("New(width 0) error = %v, want ErrInvalidDimensions", err)
	}

	_, err = New(Config{Width: 3, Height: 3, CellSize: 1})
	if !errors.Is(err, ErrNoPieceTypes) {
		t.Errorf("New(no types) error = %v, want ErrNoPieceTypes", err)
	}

	if _, err := New(Config{Width: 3, Height: 3, CellSize: 1}, WithSource(NewSequenceSource(red))); err != nil {
		t.Errorf("New with explicit source failed: %v", err)
	}
}

func TestNewFillsBoard(t *testing.T) {
	e, _ := newTestEngine(t, 4, 3, WithSource(NewSequenceSource(red, green, blue)))

	want := []*PieceType{red, green, blue}
	for i, c := range e.Board().Coords() {
		p, ok := e.Board().Get(c.X, c.Y).Value()
		if !ok {
			t.Fatalf("slot %v is empty after New", c)
		}
		if p.Type != want[i%3] {
			t.Errorf("slot %v = %s, want %s", c, p.Type.Name, want[i%3].Name)
		}
		if p.ID != uint64(i+1) {
			t.Errorf("slot %v has ID %d, want %d", c, p.ID, i+1)
		}
	}

	if e.State() != StateIdle || e.Selected() != grid.None {
		t.Errorf("new engine state = %v selected %v, want idle/none", e.State(), e.Selected())
	}
}

func TestSelectSameCoordinateTwiceDeselects(t *testing.T) {
	e, rec := newTestEngine(t, 3, 3)
	fill(t, e.Board(), noMatchRows...)
	before := rowsOf(e.Board())
	rec.reset()

	a := grid.C(1, 1)
	e.Select(a)
	if e.State() != StateOneSelected || e.Selected() != a {
		t.Fatalf("after first select: state %v selected %v", e.State(), e.Selected())
	}

	e.Select(a)
	if e.State() != StateIdle || e.Selected() != grid.None {
		t.Errorf("after second select: state %v selected %v, want idle/none", e.State(), e.Selected())
	}

	if len(rec.moves) != 0 || rec.changes != 0 {
		t.Errorf("deselect should not swap: %d moves, %d cell changes", len(rec.moves), rec.changes)
	}
	if len(rec.selections) != 2 || rec.selections[0] != a || rec.selections[1] != grid.None {
		t.Errorf("selection signals = %v, want [%v %v]", rec.selections, a, grid.None)
	}

	after := rowsOf(e.Board())
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("board changed: %v -> %v", before, after)
		}
	}
	if e.Stats().Swaps != 0 {
		t.Errorf("Swaps = %d, want 0", e.Stats().Swaps)
	}
}

func TestSelectIgnoresInvalidInput(t *testing.T) {
	e, rec := newTestEngine(t, 3, 3)
	fill(t, e.Board(), noMatchRows...)
	e.Board().Set(1, 1, grid.EmptyCell[Piece](grid.C(1, 1)))
	rec.reset()

	for _, c := range []grid.Coord{grid.C(-1, 0), grid.C(3, 1), grid.None, grid.C(1, 1)} {
		e.Select(c)
		if e.State() != StateIdle {
			t.Errorf("Select(%v) changed state to %v", c, e.State())
		}
	}

	// Invalid second selections keep the first one.
	e.Select(grid.C(0, 0))
	e.Select(grid.C(1, 1))
	e.Select(grid.C(9, 9))
	if e.State() != StateOneSelected || e.Selected() != grid.C(0, 0) {
		t.Errorf("state %v selected %v, want (0,0) still selected", e.State(), e.Selected())
	}
	if len(rec.selections) != 1 {
		t.Errorf("got %d selection signals, want 1", len(rec.selections))
	}
}

func TestSwapWithoutMatchSignalsOnce(t *testing.T) {
	e, rec := newTestEngine(t, 3, 3)
	fill(t, e.Board(), noMatchRows...)
	rec.reset()

	e.Select(grid.C(0, 0))
	e.Select(grid.C(1, 0))

	if e.State() != StateResolving {
		t.Fatalf("state = %v, want resolving", e.State())
	}
	if e.Wait() != DefaultTimings().Swap {
		t.Errorf("Wait() = %v, want swap duration", e.Wait())
	}

	e.Update(DefaultTimings().Swap - time.Millisecond)
	if e.State() != StateResolving || rec.noMatch != 0 {
		t.Fatalf("scan ran before the swap finished")
	}

	e.Update(time.Millisecond)
	e.Update(time.Second)
	e.Update(time.Second)

	if rec.noMatch != 1 {
		t.Errorf("NoMatch fired %d times, want 1", rec.noMatch)
	}
	if len(rec.matches) != 0 || len(rec.removed) != 0 {
		t.Errorf("unexpected match: %v", rec.matches)
	}
	if e.State() != StateIdle || e.Selected() != grid.None {
		t.Errorf("state %v selected %v, want idle/none", e.State(), e.Selected())
	}

	// The swap stays in place.
	rows := rowsOf(e.Board())
	if rows[2] != "GRB" {
		t.Errorf("bottom row = %q, want GRB", rows[2])
	}
	if len(rec.moves) != 2 {
		t.Errorf("got %d move signals, want 2", len(rec.moves))
	}
}

// lShapeEngine builds an 8x8 board with no runs where swapping (2,1) and
// (2,2) completes a horizontal and a vertical run sharing (2,2).
func lShapeEngine(t *testing.T) (*Engine, *recorder) {
	t.Helper()

	e, rec := newTestEngine(t, 8, 8)
	b := e.Board()
	for _, c := range b.Coords() {
		pt := testTypes[(c.X+3*c.Y)%len(testTypes)]
		b.Set(c.X, c.Y, grid.CellOf(c, Piece{ID: uint64(1000 + c.Y*8 + c.X), Type: pt}))
	}
	for _, c := range []grid.Coord{grid.C(2, 1), grid.C(3, 2), grid.C(4, 2), grid.C(2, 3), grid.C(2, 4)} {
		b.Set(c.X, c.Y, grid.CellOf(c, Piece{ID: uint64(2000 + c.Y*8 + c.X), Type: white}))
	}
	if m := FindMatches(b); len(m) != 0 {
		t.Fatalf("setup board already has matches: %v", m)
	}
	rec.reset()

	e.Select(grid.C(2, 1))
	e.Select(grid.C(2, 2))
	return e, rec
}

func TestLShapedMatchRemovesFive(t *testing.T) {
	e, rec := lShapeEngine(t)
	e.Settle()

	if len(rec.matches) == 0 {
		t.Fatal("no match found")
	}

	want := map[grid.Coord]bool{
		grid.C(2, 2): true, grid.C(3, 2): true, grid.C(4, 2): true,
		grid.C(2, 3): true, grid.C(2, 4): true,
	}
	first := rec.matches[0]
	if len(first) != 5 {
		t.Fatalf("first pass matched %d coords %v, want 5", len(first), first)
	}
	for _, c := range first {
		if !want[c] {
			t.Errorf("unexpected matched coord %v", c)
		}
	}

	removed := 0
	for _, ev := range rec.events {
		if ev == "spawn" {
			break
		}
		if ev == "remove" {
			removed++
		}
	}
	if removed != 5 {
		t.Errorf("removed %d pieces in the first pass, want 5", removed)
	}

	if rec.noMatch != 0 {
		t.Errorf("NoMatch fired %d times after a matching swap", rec.noMatch)
	}
	if e.State() != StateIdle {
		t.Errorf("state = %v after Settle, want idle", e.State())
	}
	if m := FindMatches(e.Board()); len(m) != 0 {
		t.Errorf("board still has matches after Settle: %v", m)
	}

	st := e.Stats()
	if st.Swaps != 1 || st.Passes != len(rec.matches) || st.LongestChain != st.Passes {
		t.Errorf("stats = %+v with %d match signals", st, len(rec.matches))
	}
	if st.Cleared != len(rec.removed) || st.Spawned != len(rec.spawned) || st.Cleared != st.Spawned {
		t.Errorf("stats = %+v, removed %d spawned %d", st, len(rec.removed), len(rec.spawned))
	}
}

func TestPhaseWaits(t *testing.T) {
	e, rec := lShapeEngine(t)
	tm := DefaultTimings()

	e.Update(tm.Swap)
	if len(rec.removed) != 5 {
		t.Fatalf("after swap wait: removed %d, want 5", len(rec.removed))
	}
	if e.Wait() != 5*tm.Explode {
		t.Errorf("explode wait = %v, want %v", e.Wait(), 5*tm.Explode)
	}

	e.Update(5 * tm.Explode)
	// Column 2 drops three pieces, columns 3 and 4 drop five each.
	if e.Wait() != 13*tm.Fall {
		t.Errorf("fall wait = %v, want %v", e.Wait(), 13*tm.Fall)
	}
	if len(rec.spawned) != 0 {
		t.Error("refill ran before the fall finished")
	}

	e.Update(13 * tm.Fall)
	if len(rec.spawned) != 5 {
		t.Errorf("spawned %d pieces, want 5", len(rec.spawned))
	}
	if e.Wait() != 5*tm.Spawn {
		t.Errorf("refill wait = %v, want %v", e.Wait(), 5*tm.Spawn)
	}

	e.Settle()
	if e.State() != StateIdle || e.Wait() != 0 {
		t.Errorf("after Settle: state %v wait %v", e.State(), e.Wait())
	}
}

func TestResolvingIgnoresInput(t *testing.T) {
	e, rec := lShapeEngine(t)

	e.Select(grid.C(5, 5))
	e.Select(grid.C(2, 1))
	if e.State() != StateResolving || e.Selected() != grid.C(2, 1) {
		t.Errorf("input changed a resolving engine: state %v selected %v", e.State(), e.Selected())
	}
	if e.Stats().Swaps != 1 {
		t.Errorf("Swaps = %d, want 1", e.Stats().Swaps)
	}

	e.Settle()
	if got := rec.selections[len(rec.selections)-1]; got != grid.None {
		t.Errorf("last selection signal = %v, want none", got)
	}
}

func TestCascadeTerminates(t *testing.T) {
	types := []*PieceType{red, green, blue}

	for seed := int64(1); seed <= 10; seed++ {
		e, err := New(Config{Width: 8, Height: 8, CellSize: 1, Types: types, Seed: seed, Timings: DefaultTimings()})
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		rng := rand.New(rand.NewSource(seed))
		for i := 0; i < 25; i++ {
			a := grid.C(rng.Intn(8), rng.Intn(8))
			b := grid.C(rng.Intn(8), rng.Intn(8))
			if a == b {
				continue
			}
			e.Select(a)
			e.Select(b)
			e.Settle()

			if e.State() != StateIdle {
				t.Fatalf("seed %d: state %v after Settle", seed, e.State())
			}
			if m := FindMatches(e.Board()); len(m) != 0 {
				t.Fatalf("seed %d: board has matches after a cycle: %v", seed, m)
			}
		}

		e.Close()
	}
}

func TestFireUsesPointer(t *testing.T) {
	origin := grid.V(10, 0, -4)
	var aim grid.Vec3
	var ok bool

	rec := &recorder{}
	e, err := New(Config{
		Width: 4, Height: 4, CellSize: 2, Origin: origin,
		Converter: grid.Horizontal, Types: testTypes,
	}, WithEffects(rec), WithPointer(func() (grid.Vec3, bool) { return aim, ok }))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer e.Close()

	e.Fire()
	if e.State() != StateIdle {
		t.Error("Fire without a pointer position should do nothing")
	}

	aim, ok = e.Board().WorldPositionCenter(3, 1), true
	e.Fire()
	if e.Selected() != grid.C(3, 1) {
		t.Errorf("Fire selected %v, want (3,1)", e.Selected())
	}

	e.SelectAt(e.Board().WorldPosition(3, 1))
	if e.State() != StateIdle {
		t.Errorf("SelectAt on the selected cell should deselect, state = %v", e.State())
	}
}

func TestCloseReleasesObservers(t *testing.T) {
	e, rec := newTestEngine(t, 3, 3)
	b := e.Board()

	if b.ObserverCount() != 1 {
		t.Fatalf("ObserverCount() = %d, want 1", b.ObserverCount())
	}

	b.Set(0, 0, grid.EmptyCell[Piece](grid.C(0, 0)))
	if rec.changes != 1 {
		t.Errorf("cell change not forwarded, got %d", rec.changes)
	}

	e.Close()
	e.Close()
	if b.ObserverCount() != 0 {
		t.Errorf("ObserverCount() = %d after Close, want 0", b.ObserverCount())
	}

	b.Set(1, 1, grid.EmptyCell[Piece](grid.C(1, 1)))
	e.Select(grid.C(2, 2))
	if rec.changes != 1 || len(rec.selections) != 0 {
		t.Error("closed engine still sends signals")
	}
}

func TestCloseMidCycleLeavesBoardSettled(t *testing.T) {
	e, rec := lShapeEngine(t)
	e.Update(DefaultTimings().Swap)
	if !e.Busy() {
		t.Fatal("engine should still be resolving")
	}

	e.Close()
	if e.State() != StateIdle || e.Busy() || e.Wait() != 0 {
		t.Errorf("after Close: state %v busy %v wait %v", e.State(), e.Busy(), e.Wait())
	}
	for _, c := range e.Board().Coords() {
		if e.Board().Get(c.X, c.Y).IsEmpty() {
			t.Errorf("slot %v left empty", c)
		}
	}
	if m := FindMatches(e.Board()); len(m) != 0 {
		t.Errorf("board has matches after Close: %v", m)
	}
	if len(rec.spawned) != len(rec.removed) {
		t.Errorf("removed %d, spawned %d", len(rec.removed), len(rec.spawned))
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateIdle, "idle"},
		{StateOneSelected, "selected"},
		{StateResolving, "resolving"},
		{State(42), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, want %q", tc.s, got, tc.want)
		}
	}
}

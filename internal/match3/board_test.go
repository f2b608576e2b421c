package match3

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/grid"
)

var (
	red    = &PieceType{Name: "red", Glyph: 'R'}
	green  = &PieceType{Name: "green", Glyph: 'G'}
	blue   = &PieceType{Name: "blue", Glyph: 'B'}
	yellow = &PieceType{Name: "yellow", Glyph: 'Y'}
	purple = &PieceType{Name: "purple", Glyph: 'P'}
	white  = &PieceType{Name: "white", Glyph: 'W'}

	testTypes = []*PieceType{red, green, blue, yellow, purple}
)

var glyphTypes = map[rune]*PieceType{
	'R': red, 'G': green, 'B': blue, 'Y': yellow, 'P': purple, 'W': white,
}

// boardFrom builds a board from rows listed top first, so rows[0] is y = height-1.
// A '.' leaves the slot empty.
func boardFrom(t *testing.T, rows ...string) *Board {
	t.Helper()

	b, err := NewBoard(len(rows[0]), len(rows), 1, grid.Vec3{}, nil)
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	fill(t, b, rows...)
	return b
}

func fill(t *testing.T, b *Board, rows ...string) {
	t.Helper()

	var id uint64
	for i, row := range rows {
		y := len(rows) - 1 - i
		for x, r := range row {
			c := grid.C(x, y)
			if r == '.' {
				b.Set(x, y, grid.EmptyCell[Piece](c))
				continue
			}
			pt, ok := glyphTypes[r]
			if !ok {
				t.Fatalf("unknown glyph %q", r)
			}
			id++
			b.Set(x, y, grid.CellOf(c, Piece{ID: id, Type: pt}))
		}
	}
}

// rowsOf renders a board in the same layout boardFrom reads.
func rowsOf(b *Board) []string {
	rows := make([]string, 0, b.Height())
	for y := b.Height() - 1; y >= 0; y-- {
		row := make([]rune, b.Width())
		for x := range row {
			p, ok := b.Get(x, y).Value()
			if !ok {
				row[x] = '.'
				continue
			}
			row[x] = p.Type.Glyph
		}
		rows = append(rows, string(row))
	}
	return rows
}

func coordSet(cs []grid.Coord) map[grid.Coord]bool {
	set := make(map[grid.Coord]bool, len(cs))
	for _, c := range cs {
		set[c] = true
	}
	return set
}

func TestFindMatchesThreeInARow(t *testing.T) {
	b := boardFrom(t, "RRR")

	got := FindMatches(b)
	want := []grid.Coord{grid.C(0, 0), grid.C(1, 0), grid.C(2, 0)}
	if len(got) != len(want) {
		t.Fatalf("FindMatches() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindMatches()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want int
	}{
		{"no match", []string{"RGB", "GBR", "BRG"}, 0},
		{"vertical run", []string{"RG", "RB", "RG"}, 3},
		{"run of four", []string{"GGGG"}, 4},
		{"run of five", []string{"BBBBB"}, 5},
		{"gap breaks run", []string{"RR.RR"}, 0},
		{"empty slots never match", []string{"...", "..."}, 0},
		{"cross", []string{".Y.", "YYY", ".Y."}, 5},
		{"two separate runs", []string{"RRRGGG"}, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FindMatches(boardFrom(t, tc.rows...))
			if len(got) != tc.want {
				t.Errorf("FindMatches() found %d coords %v, want %d", len(got), got, tc.want)
			}
			if len(coordSet(got)) != len(got) {
				t.Errorf("FindMatches() returned duplicates: %v", got)
			}
		})
	}
}

func TestFindMatchesRowsBeforeColumns(t *testing.T) {
	// Vertical run in column 0, horizontal run in the top row.
	b := boardFrom(t,
		"GBBB",
		"GRYP",
		"GYRY",
	)

	got := FindMatches(b)
	if len(got) != 6 {
		t.Fatalf("FindMatches() = %v, want 6 coords", got)
	}
	for i, c := range got[:3] {
		if c.Y != 2 {
			t.Errorf("match %d = %v, row matches should come first", i, c)
		}
	}
}

func TestFindMatchesTransposeSymmetry(t *testing.T) {
	src, err := NewRandomSource(42, []*PieceType{red, green, blue})
	if err != nil {
		t.Fatalf("NewRandomSource() failed: %v", err)
	}

	for round := 0; round < 20; round++ {
		const w, h = 7, 5
		b, _ := NewBoard(w, h, 1, grid.Vec3{}, nil)
		tr, _ := NewBoard(h, w, 1, grid.Vec3{}, nil)

		var id uint64
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				id++
				p := Piece{ID: id, Type: src.Next()}
				b.Set(x, y, grid.CellOf(grid.C(x, y), p))
				tr.Set(y, x, grid.CellOf(grid.C(y, x), p))
			}
		}

		got := coordSet(FindMatches(b))
		transposed := FindMatches(tr)
		if len(got) != len(transposed) {
			t.Fatalf("round %d: %d matches, transposed board has %d", round, len(got), len(transposed))
		}
		for _, c := range transposed {
			if !got[grid.C(c.Y, c.X)] {
				t.Errorf("round %d: transposed match %v has no counterpart", round, c)
			}
		}
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	b, err := NewBoard(3, 2, 1, grid.Vec3{}, grid.Horizontal)
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	for _, c := range b.Coords() {
		s := b.Get(c.X, c.Y)
		if !s.IsEmpty() {
			t.Errorf("slot %v should be empty", c)
		}
		if s.Coord() != c {
			t.Errorf("slot at %v carries coord %v", c, s.Coord())
		}
	}

	if _, err := NewBoard(0, 2, 1, grid.Vec3{}, nil); err == nil {
		t.Error("NewBoard should reject a zero width")
	}
}

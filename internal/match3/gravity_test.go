package match3

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/grid"
)

func TestCollapse(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		want  []string
		moves int
	}{
		{
			name:  "single gap",
			rows:  []string{"R", "G", ".", "B"},
			want:  []string{".", "R", "G", "B"},
			moves: 2,
		},
		{
			name:  "gaps at bottom",
			rows:  []string{"R", "G", ".", "."},
			want:  []string{".", ".", "R", "G"},
			moves: 2,
		},
		{
			name:  "interleaved gaps",
			rows:  []string{"R", ".", "G", ".", "B", "."},
			want:  []string{".", ".", ".", "R", "G", "B"},
			moves: 3,
		},
		{
			name:  "already compact",
			rows:  []string{".", "R", "G"},
			want:  []string{".", "R", "G"},
			moves: 0,
		},
		{
			name:  "columns are independent",
			rows:  []string{"RG", ".Y", "B."},
			want:  []string{"..", "RG", "BY"},
			moves: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := boardFrom(t, tc.rows...)
			moves := Collapse(b)

			got := rowsOf(b)
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("after Collapse: %v, want %v", got, tc.want)
				}
			}
			if len(moves) != tc.moves {
				t.Errorf("Collapse() made %d moves, want %d", len(moves), tc.moves)
			}
		})
	}
}

func TestCollapseKeepsPieceOrderAndIdentity(t *testing.T) {
	b := boardFrom(t, "R", ".", "G", ".", ".", "B", ".")

	before := make(map[uint64]*PieceType)
	var order []uint64
	for y := 0; y < b.Height(); y++ {
		if p, ok := b.Get(0, y).Value(); ok {
			before[p.ID] = p.Type
			order = append(order, p.ID)
		}
	}

	moves := Collapse(b)

	for i, id := range order {
		p, ok := b.Get(0, i).Value()
		if !ok || p.ID != id || p.Type != before[id] {
			t.Errorf("slot (0,%d) = %+v, want piece %d", i, p, id)
		}
	}
	for y := len(order); y < b.Height(); y++ {
		if !b.Get(0, y).IsEmpty() {
			t.Errorf("slot (0,%d) should be empty after collapse", y)
		}
	}

	for _, m := range moves {
		if m.From.X != m.To.X || m.From.Y <= m.To.Y {
			t.Errorf("move %v -> %v is not a fall within one column", m.From, m.To)
		}
		if got, _ := b.Get(m.To.X, m.To.Y).Value(); got.ID != m.Piece.ID {
			t.Errorf("move target %v holds piece %d, want %d", m.To, got.ID, m.Piece.ID)
		}
	}
}

func TestRefill(t *testing.T) {
	b := boardFrom(t,
		"..",
		"R.",
		"GB",
	)

	src := NewSequenceSource(yellow, purple)
	var id uint64 = 100
	filled := Refill(b, func(grid.Coord) Piece {
		id++
		return Piece{ID: id, Type: src.Next()}
	})

	want := []grid.Coord{grid.C(0, 2), grid.C(1, 1), grid.C(1, 2)}
	if len(filled) != len(want) {
		t.Fatalf("Refill() = %v, want %v", filled, want)
	}
	for i := range want {
		if filled[i] != want[i] {
			t.Errorf("Refill()[%d] = %v, want %v", i, filled[i], want[i])
		}
	}

	rows := rowsOf(b)
	if rows[0] != "YY" || rows[1] != "RP" || rows[2] != "GB" {
		t.Errorf("after Refill: %v", rows)
	}
}

func TestSequenceSourceWraps(t *testing.T) {
	src := NewSequenceSource(red, green)
	got := []*PieceType{src.Next(), src.Next(), src.Next()}
	if got[0] != red || got[1] != green || got[2] != red {
		t.Errorf("sequence = %v %v %v", got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestRandomSourceIsDeterministic(t *testing.T) {
	a, err := NewRandomSource(7, testTypes)
	if err != nil {
		t.Fatalf("NewRandomSource() failed: %v", err)
	}
	b, _ := NewRandomSource(7, testTypes)

	for i := 0; i < 50; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("draw %d differs for equal seeds", i)
		}
	}

	if _, err := NewRandomSource(1, nil); err != ErrNoPieceTypes {
		t.Errorf("NewRandomSource(nil) error = %v, want ErrNoPieceTypes", err)
	}
}

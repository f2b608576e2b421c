package match3

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// ErrNoPieceTypes is returned when an engine or source is built without piece types.
var ErrNoPieceTypes = errors.New("match3: at least one piece type is required")

// PieceType is the identity used for match equality.
// Pieces share types by pointer; two pieces match when they point at the same type.
type PieceType struct {
	Name  string
	Glyph rune
	Color core.Color
}

// Piece is one token on the board.
type Piece struct {
	ID   uint64 // Assigned by the engine in spawn order
	Type *PieceType
}

// Matches reports whether p and o are of the same type.
func (p Piece) Matches(o Piece) bool {
	return p.Type != nil && p.Type == o.Type
}

// PieceSource produces the type of the next spawned piece.
type PieceSource interface {
	Next() *PieceType
}

// RandomSource picks uniformly among a fixed set of types.
type RandomSource struct {
	rng   *rand.Rand
	types []*PieceType
}

// NewRandomSource creates a source seeded with seed.
func NewRandomSource(seed int64, types []*PieceType) (*RandomSource, error) {
	if len(types) == 0 {
		return nil, ErrNoPieceTypes
	}
	return &RandomSource{
		rng:   rand.New(rand.NewSource(seed)),
		types: append([]*PieceType(nil), types...),
	}, nil
}

// Next returns a random type.
func (s *RandomSource) Next() *PieceType {
	return s.types[s.rng.Intn(len(s.types))]
}

// SequenceSource cycles through a fixed list of types.
type SequenceSource struct {
	types []*PieceType
	next  int
}

// NewSequenceSource returns a source yielding types in order, wrapping around.
// It panics if no types are given.
func NewSequenceSource(types ...*PieceType) *SequenceSource {
	if len(types) == 0 {
		panic(ErrNoPieceTypes)
	}
	return &SequenceSource{types: types}
}

// Next returns the next type in the sequence.
func (s *SequenceSource) Next() *PieceType {
	t := s.types[s.next]
	s.next = (s.next + 1) % len(s.types)
	return t
}

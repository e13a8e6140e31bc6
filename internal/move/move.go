// Package move defines the packed Move encoding, its constructors and
// accessors, and the fixed-capacity move list used by the generator.
package move

import (
	"fmt"

	"github.com/KEY271/alex/internal/types"
)

// Kind distinguishes the five ways a move can act on a Position.
type Kind uint8

const (
	Normal Kind = iota
	Return
	Shoot
	Drop
	Supply
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "Normal"
	case Return:
		return "Return"
	case Shoot:
		return "Shoot"
	case Drop:
		return "Drop"
	case Supply:
		return "Supply"
	default:
		return "?"
	}
}

// Move packs move kind, from/to squares, captured piece type and a demise
// flag into a 20-bit integer:
//
//	bits 0..5:   destination square
//	bits 6..11:  source square (Normal/Return/Shoot) or dropped piece type (Drop)
//	bits 12..14: move kind
//	bit  15:     demise flag
//	bits 16..19: captured piece type (Normal/Shoot)
type Move uint32

const (
	toShift       = 0
	fromShift     = 6
	kindShift     = 12
	demiseShift   = 15
	capturedShift = 16

	toMask       = 0x3F
	fromMask     = 0x3F
	kindMask     = 0x7
	capturedMask = 0xF
)

// MoveDemise is the bare demise sentinel: only the demise bit is set,
// meaning "declare demise only, no piece action".
const MoveDemise Move = 1 << demiseShift

// NewNormal builds a Normal move, optionally capturing captured at to.
func NewNormal(from, to types.Square, captured types.PieceType) Move {
	return build(from, to, Normal, captured, false)
}

// NewReturn builds a Return move: consume the arrow at from, upgrade the
// archer at to.
func NewReturn(from, to types.Square) Move {
	return build(from, to, Return, types.NoPieceType, false)
}

// NewShoot builds a Shoot move, optionally capturing captured at to.
func NewShoot(from, to types.Square, captured types.PieceType) Move {
	return build(from, to, Shoot, captured, false)
}

// NewDrop builds a Drop move placing pt at to.
func NewDrop(pt types.PieceType, to types.Square) Move {
	return build(types.Square(pt), to, Drop, types.NoPieceType, false)
}

// NewSupply builds a Supply move upgrading the archer at to.
func NewSupply(to types.Square) Move {
	return build(0, to, Supply, types.NoPieceType, false)
}

// WithDemise returns m with the demise flag set (the "declare demise then
// make this move" variant).
func (m Move) WithDemise() Move {
	return m | Move(1<<demiseShift)
}

func build(from, to types.Square, kind Kind, captured types.PieceType, demise bool) Move {
	m := Move(to&toMask) |
		Move(from&fromMask)<<fromShift |
		Move(kind&kindMask)<<kindShift |
		Move(captured&capturedMask)<<capturedShift
	if demise {
		m |= 1 << demiseShift
	}
	return m
}

// To returns the destination square.
func (m Move) To() types.Square { return types.Square(m>>toShift) & toMask }

// From returns the source square (valid for Normal/Return/Shoot).
func (m Move) From() types.Square { return types.Square(m>>fromShift) & fromMask }

// DropPiece returns the piece type being dropped (valid for Drop).
func (m Move) DropPiece() types.PieceType { return types.PieceType(m>>fromShift) & fromMask }

// Kind returns the move kind.
func (m Move) Kind() Kind { return Kind(m>>kindShift) & kindMask }

// IsDemise reports whether the demise flag is set.
func (m Move) IsDemise() bool { return m&(1<<demiseShift) != 0 }

// Captured returns the captured piece type (valid for Normal/Shoot).
func (m Move) Captured() types.PieceType { return types.PieceType(m>>capturedShift) & capturedMask }

// IsBareDemise reports whether m is exactly the MoveDemise sentinel.
func (m Move) IsBareDemise() bool { return m == MoveDemise }

func (m Move) String() string {
	if m.IsBareDemise() {
		return "D"
	}
	var s string
	switch m.Kind() {
	case Drop:
		s = fmt.Sprintf("%s%c", m.To(), m.DropPiece().Letter())
	case Supply:
		letter := byte('R')
		s = fmt.Sprintf("%s%c", m.To(), letter)
	case Shoot:
		s = fmt.Sprintf("%s%sS", m.From(), m.To())
	default:
		s = fmt.Sprintf("%s%s", m.From(), m.To())
	}
	if m.IsDemise() {
		s += "D"
	}
	return s
}

// ExtMove pairs a move with a score slot used by the move picker for
// selection-sort ordering (captures scored by MVV).
type ExtMove struct {
	Move  Move
	Score int32
}

// maxMoves is a conservative upper bound on pseudo-legal moves in this
// variant: up to 8 drop targets per empty square across hand-eligible
// piece types, plus shoots, normals and returns.
const maxMoves = 520

// List is a fixed-capacity move buffer: no heap allocation in the search
// hot path.
type List struct {
	items [maxMoves]ExtMove
	n     int
}

// Push appends m with score 0.
func (l *List) Push(m Move) {
	l.items[l.n] = ExtMove{Move: m}
	l.n++
}

// PushScored appends m with the given score.
func (l *List) PushScored(m Move, score int32) {
	l.items[l.n] = ExtMove{Move: m, Score: score}
	l.n++
}

// Len returns the number of moves currently stored.
func (l *List) Len() int { return l.n }

// At returns the ExtMove at index i.
func (l *List) At(i int) ExtMove { return l.items[i] }

// Get returns the move at index i.
func (l *List) Get(i int) Move { return l.items[i].Move }

// SetScore overwrites the score at index i.
func (l *List) SetScore(i int, score int32) { l.items[i].Score = score }

// Swap exchanges the entries at i and j.
func (l *List) Swap(i, j int) { l.items[i], l.items[j] = l.items[j], l.items[i] }

// Truncate resets the list to empty, keeping the backing array.
func (l *List) Truncate() { l.n = 0 }

// Slice returns the live prefix of the backing array.
func (l *List) Slice() []ExtMove { return l.items[:l.n] }

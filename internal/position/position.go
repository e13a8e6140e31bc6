// Package position implements Position: the mutable board state, its
// incremental do_move/undo_move pair, and the queries built on top of it.
package position

import (
	"github.com/KEY271/alex/internal/geometry"
	"github.com/KEY271/alex/internal/types"
)

// StateInfo is the per-ply snapshot pushed by DoMove and popped by UndoMove.
type StateInfo struct {
	// Checkers is the set of opponent pieces giving check to the side to
	// move's current crown.
	Checkers types.Bitboard
	// BlockersKing / BlockersPrince hold pieces of either side that sit
	// alone between a sliding attacker (Archer ray or Heavy leap) and the
	// respective royal square.
	BlockersKing   types.Bitboard
	BlockersPrince types.Bitboard
	// CheckBB[pt] holds the squares from which a piece of type pt
	// belonging to the side to move would check the opponent's crown.
	CheckBB [types.PieceTypeCount]types.Bitboard
}

// Position aggregates every piece of mutable board state. Geometry is
// shared, process-wide and immutable; Position owns everything else.
type Position struct {
	SideToMove types.Side

	Grid [64]types.Piece

	// PieceBB[pt] is the occupancy of piece type pt across both sides.
	PieceBB [types.PieceTypeCount]types.Bitboard
	// SideBB[side] is the occupancy of all of side's pieces.
	SideBB [2]types.Bitboard

	Hands  [2]types.Hand
	Demise [2]int

	// Effects[side][sq] counts side's pieces whose one-step movement mask
	// includes sq, excluding arrow rays and the Heavy leap.
	Effects [2][64]int8

	PieceCount [2][types.PieceTypeCount]int8
	PieceList  [2][types.PieceTypeCount][8]types.Square
	Index      [64]int8

	states []StateInfo
}

// NewEmpty returns a Position with nothing placed on the board; the caller
// (mfen parser, typically) is responsible for populating it with AddPiece
// and then pushing the initial StateInfo via PushInitialState.
func NewEmpty() *Position {
	geometry.Init()
	p := &Position{}
	for sq := types.Square(0); sq < 64; sq++ {
		p.Grid[sq] = types.NoPiece
	}
	return p
}

// AllOccupied returns the occupancy of both sides combined.
func (p *Position) AllOccupied() types.Bitboard {
	return p.SideBB[types.Black] | p.SideBB[types.White]
}

// State returns the StateInfo on top of the undo stack.
func (p *Position) State() *StateInfo {
	return &p.states[len(p.states)-1]
}

// PushInitialState computes and pushes the StateInfo for the position as
// constructed (used once, right after parsing).
func (p *Position) PushInitialState() {
	p.states = append(p.states, p.computeStateInfo())
}

// AddPiece sets pt/side at sq: updates the grid, bitboards, piece list,
// index and effects.
func (p *Position) AddPiece(pt types.PieceType, side types.Side, sq types.Square) {
	piece := types.NewPiece(pt, side)
	p.Grid[sq] = piece
	p.PieceBB[pt] = p.PieceBB[pt].Set(sq)
	p.SideBB[side] = p.SideBB[side].Set(sq)

	slot := p.PieceCount[side][pt]
	p.PieceList[side][pt][slot] = sq
	p.Index[sq] = slot
	p.PieceCount[side][pt] = slot + 1

	p.addEffects(side, piece, sq)
}

// removePiece clears whatever piece sits at sq: inverse of AddPiece. The
// last occupied slot of the owner's piece list is swapped into the
// vacated index to keep a compact prefix.
func (p *Position) removePiece(sq types.Square) {
	piece := p.Grid[sq]
	pt := piece.Type()
	side := piece.Side()

	p.PieceBB[pt] = p.PieceBB[pt].Clear(sq)
	p.SideBB[side] = p.SideBB[side].Clear(sq)

	slot := p.Index[sq]
	last := p.PieceCount[side][pt] - 1
	lastSq := p.PieceList[side][pt][last]
	p.PieceList[side][pt][slot] = lastSq
	p.Index[lastSq] = slot
	p.PieceCount[side][pt] = last

	p.Grid[sq] = types.NoPiece
	p.removeEffects(side, piece, sq)
}

// movePiece relocates the piece at from to an empty to, without capturing.
func (p *Position) movePiece(from, to types.Square) {
	piece := p.Grid[from]
	pt := piece.Type()
	side := piece.Side()

	p.PieceBB[pt] = p.PieceBB[pt].Clear(from).Set(to)
	p.SideBB[side] = p.SideBB[side].Clear(from).Set(to)

	slot := p.Index[from]
	p.PieceList[side][pt][slot] = to
	p.Index[to] = slot

	p.Grid[to] = piece
	p.Grid[from] = types.NoPiece

	p.removeEffects(side, piece, from)
	p.addEffects(side, piece, to)
}

func (p *Position) addEffects(side types.Side, piece types.Piece, sq types.Square) {
	dests := geometry.MovableSq(piece, sq)
	for dests != 0 {
		d := dests.PopLSB()
		p.Effects[side][d]++
	}
}

func (p *Position) removeEffects(side types.Side, piece types.Piece, sq types.Square) {
	dests := geometry.MovableSq(piece, sq)
	for dests != 0 {
		d := dests.PopLSB()
		p.Effects[side][d]--
	}
}

// CrownSq returns the King square if side's demise count is even, else the
// Prince square; NoSquare if that royal has already left the board.
func (p *Position) CrownSq(side types.Side) types.Square {
	pt := types.King
	if p.Demise[side]%2 != 0 {
		pt = types.Prince
	}
	if p.PieceCount[side][pt] == 0 {
		return types.NoSquare
	}
	return p.PieceList[side][pt][0]
}

// Aligned reports whether c lies on the infinite line through a and b.
func (p *Position) Aligned(a, b, c types.Square) bool {
	return geometry.Aligned(a, b, c)
}

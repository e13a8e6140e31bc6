// Package movegen turns a Position plus the shared geometry tables into
// bounded-capacity move lists: captures, non-captures, evasions under
// check, and a legality filter over any of those. Sub-generators mirror
// the teacher's piece-type bitboard loops (see board.generateAllMoves);
// the per-piece-kind geometry and the drop/return/shoot/supply actions are
// this variant's own.
package movegen

import (
	"github.com/KEY271/alex/internal/geometry"
	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/position"
	"github.com/KEY271/alex/internal/types"
)

// Mode selects which family of moves Generate produces.
type Mode int

const (
	NonCaptures Mode = iota
	Captures
	All
	Evasion
	Legal
)

// movingPieceTypes lists every piece type with a non-empty one-step
// movement mask (everything except Arrow, which never moves on its own).
var movingPieceTypes = [...]types.PieceType{
	types.Light, types.Heavy, types.King, types.Prince,
	types.General, types.Knight, types.Archer0, types.Archer1, types.Archer2,
}

// dropTypes lists the piece types a Drop move can place directly; Archer1
// and Archer2 are also droppable (component design §4.4) but are handled
// as a special case alongside Archer0 since hand counters never track a
// loaded archer on their own slot.
var dropTypes = [...]types.PieceType{
	types.Light, types.Heavy, types.General, types.Knight, types.Arrow, types.Archer0,
}

// Generate appends moves of the requested mode to list. list is not
// truncated first; callers that want a fresh list should call list.Truncate().
func Generate(pos *position.Position, mode Mode, list *move.List) {
	switch mode {
	case NonCaptures:
		genNonCaptures(pos, list)
	case Captures:
		genCaptures(pos, list)
	case All:
		genCaptures(pos, list)
		genNonCaptures(pos, list)
	case Evasion:
		genEvasion(pos, list)
	case Legal:
		genLegal(pos, list)
	}
}

func genLegal(pos *position.Position, list *move.List) {
	var staged move.List
	if pos.InCheck() {
		genEvasion(pos, &staged)
	} else {
		genCaptures(pos, &staged)
		genNonCaptures(pos, &staged)
	}
	for i := 0; i < staged.Len(); i++ {
		m := staged.Get(i)
		if pos.IsLegal(m) {
			list.Push(m)
		}
	}
}

func genCaptures(pos *position.Position, list *move.List) {
	side := pos.SideToMove
	target := pos.SideBB[side.Other()]
	genNormalSub(pos, side, target, list)
	genShootSub(pos, side, target, list)
}

func genNonCaptures(pos *position.Position, list *move.List) {
	side := pos.SideToMove
	target := ^pos.AllOccupied()
	genNormalSub(pos, side, target, list)
	genShootSub(pos, side, target, list)
	genReturnSub(pos, side, list)
	genDropSub(pos, side, list)
	genSupplySub(pos, side, list)
}

// genNormalSub emits Normal moves for every own piece whose movable_sq
// reaches target, plus Heavy's 2-forward leap.
func genNormalSub(pos *position.Position, side types.Side, target types.Bitboard, list *move.List) {
	occ := pos.AllOccupied()
	for _, pt := range movingPieceTypes {
		piece := types.NewPiece(pt, side)
		count := int(pos.PieceCount[side][pt])
		for i := 0; i < count; i++ {
			from := pos.PieceList[side][pt][i]
			dests := geometry.MovableSq(piece, from) & target
			for dests != 0 {
				to := dests.PopLSB()
				list.Push(move.NewNormal(from, to, captureAt(pos, to)))
			}
		}
	}

	heavyBB := pos.PieceBB[types.Heavy] & pos.SideBB[side]
	for hb := heavyBB; hb != 0; {
		from := hb.PopLSB()
		leaps := geometry.HeavyAttacks(types.BitFor(from), occ, side) & target
		for leaps != 0 {
			to := leaps.PopLSB()
			list.Push(move.NewNormal(from, to, captureAt(pos, to)))
		}
	}
}

// genShootSub emits Shoot moves from every loaded Archer (rank >= 1) whose
// arrow ray reaches target.
func genShootSub(pos *position.Position, side types.Side, target types.Bitboard, list *move.List) {
	occ := pos.AllOccupied()
	for _, pt := range [...]types.PieceType{types.Archer1, types.Archer2} {
		count := int(pos.PieceCount[side][pt])
		for i := 0; i < count; i++ {
			from := pos.PieceList[side][pt][i]
			dests := geometry.ArrowAttacks(occ, from) & target
			for dests != 0 {
				to := dests.PopLSB()
				list.Push(move.NewShoot(from, to, captureAt(pos, to)))
			}
		}
	}
}

// genReturnSub emits Return moves from every own Arrow whose ray reaches
// an own Archer0 or Archer1.
func genReturnSub(pos *position.Position, side types.Side, list *move.List) {
	occ := pos.AllOccupied()
	target := (pos.PieceBB[types.Archer0] | pos.PieceBB[types.Archer1]) & pos.SideBB[side]

	arrows := pos.PieceBB[types.Arrow] & pos.SideBB[side]
	for arrows != 0 {
		from := arrows.PopLSB()
		dests := geometry.ArrowAttacks(occ, from) & target
		for dests != 0 {
			to := dests.PopLSB()
			list.Push(move.NewReturn(from, to))
		}
	}
}

// dropHalf restricts drops to the side's own half (position.OwnDropHalf):
// ranks 0..4 for Black, ranks 3..7 for White.
func dropHalf(side types.Side) types.Bitboard {
	var m types.Bitboard
	for sq := types.Square(0); sq < 64; sq++ {
		if position.OwnDropHalf(side, sq) {
			m = m.Set(sq)
		}
	}
	return m
}

var dropHalfBlack = dropHalf(types.Black)
var dropHalfWhite = dropHalf(types.White)

func genDropSub(pos *position.Position, side types.Side, list *move.List) {
	half := dropHalfBlack
	if side == types.White {
		half = dropHalfWhite
	}
	empty := ^pos.AllOccupied() & half
	hand := pos.Hands[side]

	for _, pt := range dropTypes {
		if hand.Count(pt) == 0 {
			continue
		}
		for e := empty; e != 0; {
			to := e.PopLSB()
			list.Push(move.NewDrop(pt, to))
		}
	}
	if hand.Count(types.Archer0) > 0 {
		if hand.Count(types.Arrow) >= 1 {
			for e := empty; e != 0; {
				to := e.PopLSB()
				list.Push(move.NewDrop(types.Archer1, to))
			}
		}
		if hand.Count(types.Arrow) >= 2 {
			for e := empty; e != 0; {
				to := e.PopLSB()
				list.Push(move.NewDrop(types.Archer2, to))
			}
		}
	}
}

// genSupplySub emits Supply moves upgrading an own Archer0/Archer1 when at
// least one Arrow is in hand.
func genSupplySub(pos *position.Position, side types.Side, list *move.List) {
	if pos.Hands[side].Count(types.Arrow) == 0 {
		return
	}
	for _, pt := range [...]types.PieceType{types.Archer0, types.Archer1} {
		count := int(pos.PieceCount[side][pt])
		for i := 0; i < count; i++ {
			sq := pos.PieceList[side][pt][i]
			list.Push(move.NewSupply(sq))
		}
	}
}

func captureAt(pos *position.Position, sq types.Square) types.PieceType {
	p := pos.Grid[sq]
	if p == types.NoPiece {
		return types.NoPieceType
	}
	return p.Type()
}

package movegen

import (
	"github.com/KEY271/alex/internal/geometry"
	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/position"
	"github.com/KEY271/alex/internal/types"
)

// genEvasion generates moves while the side to move's crown is in check.
// It is only meaningful when pos.InCheck(); callers that don't already
// know this should check first (genLegal does).
func genEvasion(pos *position.Position, list *move.List) {
	side := pos.SideToMove

	genDemiseVariation(pos, side, list)

	checkers := pos.State().Checkers
	crown := pos.CrownSq(side)
	if crown == types.NoSquare {
		return
	}

	attacks := opponentAttackMask(pos, side.Other(), crown)
	crownDests := geometry.MovableSq(types.NewPiece(crownPieceType(pos, side), side), crown) &^ attacks &^ pos.SideBB[side]
	for crownDests != 0 {
		to := crownDests.PopLSB()
		list.Push(move.NewNormal(crown, to, captureAt(pos, to)))
	}

	if checkers.PopCount() != 1 {
		// Double check: only the crown can move.
		return
	}

	checkerSq := checkers.LSB()
	target := types.BitFor(checkerSq)
	if isSlidingChecker(pos, checkerSq, side.Other()) {
		target |= geometry.Between(checkerSq, crown)
	}

	genNormalSub(pos, side, target, list)
	genShootSub(pos, side, target, list)
	genDropInterpose(pos, side, target, list)
}

// genDemiseVariation generates a demise-flagged duplicate of every All move
// when the side to move could instead declare demise this ply: demise[side]
// has budget left and the square the OTHER royal would occupy is not
// currently attacked. Generated before the ordinary evasion logic, matching
// the enumeration order the Rust source uses (see SPEC_FULL.md).
func genDemiseVariation(pos *position.Position, side types.Side, list *move.List) {
	if pos.Demise[side] >= 2 {
		return
	}
	otherRoyal := types.King
	if pos.Demise[side]%2 == 0 {
		otherRoyal = types.Prince
	}
	if pos.PieceCount[side][otherRoyal] == 0 {
		return
	}
	postDemiseCrown := pos.PieceList[side][otherRoyal][0]
	if pos.IsAttacked(postDemiseCrown, side.Other()) {
		return
	}

	var staged move.List
	genCaptures(pos, &staged)
	genNonCaptures(pos, &staged)
	for i := 0; i < staged.Len(); i++ {
		list.Push(staged.Get(i).WithDemise())
	}
}

func crownPieceType(pos *position.Position, side types.Side) types.PieceType {
	if pos.Demise[side]%2 != 0 {
		return types.Prince
	}
	return types.King
}

// opponentAttackMask returns every square opp attacks, treating crown as
// transparent to sliding attacks (the standard no-slide-through-the-royal
// trick, needed so the crown cannot "hide" behind itself when retreating
// along an Archer's ray).
func opponentAttackMask(pos *position.Position, opp types.Side, crown types.Square) types.Bitboard {
	occWithoutCrown := pos.AllOccupied().Clear(crown)

	var attacks types.Bitboard
	for _, pt := range movingPieceTypes {
		piece := types.NewPiece(pt, opp)
		count := int(pos.PieceCount[opp][pt])
		for i := 0; i < count; i++ {
			from := pos.PieceList[opp][pt][i]
			attacks |= geometry.MovableSq(piece, from)
		}
	}

	heavyBB := pos.PieceBB[types.Heavy] & pos.SideBB[opp]
	attacks |= geometry.HeavyAttacks(heavyBB, occWithoutCrown, opp)

	archers := (pos.PieceBB[types.Archer1] | pos.PieceBB[types.Archer2]) & pos.SideBB[opp]
	for ab := archers; ab != 0; {
		from := ab.PopLSB()
		attacks |= geometry.ArrowAttacks(occWithoutCrown, from)
	}

	return attacks
}

// isSlidingChecker reports whether the piece at sq is an Archer1/Archer2,
// whose ray check genEvasion answers with interposition as well; for any
// other checker genEvasion only generates captures of the checker and
// crown moves.
func isSlidingChecker(pos *position.Position, sq types.Square, side types.Side) bool {
	pt := pos.Grid[sq].Type()
	return pt == types.Archer1 || pt == types.Archer2
}

// genDropInterpose emits Drop moves onto target (the interposition window
// between a sliding checker and the crown) that lie in the side's own drop
// half: dropping a blocker there is a legal way to answer check.
func genDropInterpose(pos *position.Position, side types.Side, target types.Bitboard, list *move.List) {
	half := dropHalfBlack
	if side == types.White {
		half = dropHalfWhite
	}
	empty := ^pos.AllOccupied() & target & half
	if empty == 0 {
		return
	}
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
	if hand.Count(types.Archer0) > 0 && hand.Count(types.Arrow) >= 1 {
		for e := empty; e != 0; {
			to := e.PopLSB()
			list.Push(move.NewDrop(types.Archer1, to))
		}
	}
	if hand.Count(types.Archer0) > 0 && hand.Count(types.Arrow) >= 2 {
		for e := empty; e != 0; {
			to := e.PopLSB()
			list.Push(move.NewDrop(types.Archer2, to))
		}
	}
}

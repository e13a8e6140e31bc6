package geometry

import "github.com/KEY271/alex/internal/types"

// movableSq[piece][from] is the one-step destination mask for piece standing
// at from. Indexed by the packed types.Piece value (0..10 black, 16..26
// white); unused slots stay zero.
var movableSq [32][64]types.Bitboard

var knightDeltas = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingDeltas = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var orthoDeltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func inBounds(f, r int) bool { return f >= 0 && f <= 7 && r >= 0 && r <= 7 }

func addDeltas(from types.Square, deltas [][2]int) types.Bitboard {
	var m types.Bitboard
	file, rank := from.File(), from.Rank()
	for _, d := range deltas {
		f, r := file+d[0], rank+d[1]
		if inBounds(f, r) {
			m = m.Set(types.NewSquare(f, r))
		}
	}
	return m
}

func forwardDelta(side types.Side) int {
	if side == types.Black {
		return 1
	}
	return -1
}

func buildMovableSq() {
	for side := types.Black; side <= types.White; side++ {
		fwd := forwardDelta(side)

		for from := types.Square(0); from < 64; from++ {
			file, rank := from.File(), from.Rank()

			// Light / Heavy: one square forward, plus sideways from the
			// 6th relative rank.
			var lightHeavy types.Bitboard
			if inBounds(file, rank+fwd) {
				lightHeavy = lightHeavy.Set(types.NewSquare(file, rank+fwd))
			}
			if from.RelativeRank(side) == 5 {
				if inBounds(file-1, rank) {
					lightHeavy = lightHeavy.Set(types.NewSquare(file-1, rank))
				}
				if inBounds(file+1, rank) {
					lightHeavy = lightHeavy.Set(types.NewSquare(file+1, rank))
				}
			}
			movableSq[types.NewPiece(types.Light, side)][from] = lightHeavy
			movableSq[types.NewPiece(types.Heavy, side)][from] = lightHeavy

			// King: 8 surrounding squares.
			movableSq[types.NewPiece(types.King, side)][from] = addDeltas(from, kingDeltas[:])

			// Prince: one square forward (non-diagonal) OR any diagonal.
			var prince types.Bitboard
			if inBounds(file, rank+fwd) {
				prince = prince.Set(types.NewSquare(file, rank+fwd))
			}
			for _, d := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
				f, r := file+d[0], rank+d[1]
				if inBounds(f, r) {
					prince = prince.Set(types.NewSquare(f, r))
				}
			}
			movableSq[types.NewPiece(types.Prince, side)][from] = prince

			// General: 4 orthogonal neighbors plus forward-diagonals.
			general := addDeltas(from, orthoDeltas[:])
			for _, d := range [2][2]int{{1, fwd}, {-1, fwd}} {
				f, r := file+d[0], rank+d[1]
				if inBounds(f, r) {
					general = general.Set(types.NewSquare(f, r))
				}
			}
			movableSq[types.NewPiece(types.General, side)][from] = general

			// Knight: standard L-shapes.
			movableSq[types.NewPiece(types.Knight, side)][from] = addDeltas(from, knightDeltas[:])

			// Archer0/1/2: orthogonal neighbors only; arrow count does not
			// change movement geometry.
			archerMoves := addDeltas(from, orthoDeltas[:])
			movableSq[types.NewPiece(types.Archer0, side)][from] = archerMoves
			movableSq[types.NewPiece(types.Archer1, side)][from] = archerMoves
			movableSq[types.NewPiece(types.Archer2, side)][from] = archerMoves

			// Arrow never moves on its own.
			movableSq[types.NewPiece(types.Arrow, side)][from] = 0
		}
	}
}

// MovableSq returns the one-step destination mask for a piece at from.
func MovableSq(p types.Piece, from types.Square) types.Bitboard {
	return movableSq[p][from]
}

func shiftForward(b types.Bitboard, side types.Side) types.Bitboard {
	if side == types.Black {
		return b << 8
	}
	return b >> 8
}

// HeavyAttacks returns the destinations reachable by Heavy's 2-square
// forward leap: shift the heavy bitboard one rank forward, mask off
// squares whose intervening square is blocked, then shift one more rank
// forward.
func HeavyAttacks(heavyBB, occBB types.Bitboard, side types.Side) types.Bitboard {
	intervening := shiftForward(heavyBB, side) &^ occBB
	return shiftForward(intervening, side)
}

// HeavyCheckOrigin returns the single square (if any) from which a Heavy of
// side would reach target via its 2-square leap, given occ, regardless of
// whether a Heavy actually stands there. Used to test "would this square
// give check" without placing a piece.
func HeavyCheckOrigin(target types.Square, occ types.Bitboard, side types.Side) types.Bitboard {
	fwd := forwardDelta(side)
	file, rank := target.File(), target.Rank()
	originRank := rank - 2*fwd
	midRank := rank - fwd
	if originRank < 0 || originRank > 7 {
		return 0
	}
	mid := types.NewSquare(file, midRank)
	if occ.Has(mid) {
		return 0
	}
	return types.BitFor(types.NewSquare(file, originRank))
}

package geometry

import "github.com/KEY271/alex/internal/types"

// staticCheckBB[piece][target] holds the squares from which a piece of that
// kind and side would attack target using plain one-step movement. It is
// the static half of Position's per-position check_bb: Position augments
// this at do_move time with Heavy's live leap and the Archer ray, both of
// which depend on current occupancy and so cannot be precomputed here.
var staticCheckBB [32][64]types.Bitboard

func buildStaticCheckBB() {
	for side := types.Black; side <= types.White; side++ {
		for _, pt := range []types.PieceType{
			types.Light, types.Heavy, types.King, types.Prince,
			types.General, types.Knight, types.Archer0, types.Archer1, types.Archer2,
		} {
			p := types.NewPiece(pt, side)
			for from := types.Square(0); from < 64; from++ {
				dests := movableSq[p][from]
				for dests != 0 {
					to := dests.PopLSB()
					staticCheckBB[p][to] = staticCheckBB[p][to].Set(from)
				}
			}
		}
	}
}

// StaticCheckBB returns the squares from which a piece of kind p would
// attack target via its ordinary one-step movement (no Heavy leap, no
// arrow ray — see staticCheckBB's doc comment).
func StaticCheckBB(p types.Piece, target types.Square) types.Bitboard {
	return staticCheckBB[p][target]
}

// Package eval computes a side-relative static score for a Position:
// board material, hand material, a KKPEE-style (king-king-piece-effect)
// positional table, and a demise penalty. The KKPEE decomposition is kept
// as a formula evaluated per query rather than a baked-in ~6.4e7-cell
// array (see kkpeecache for its lazy-caching half), computing positional
// terms on demand the same way a pawn-structure or king-safety term would
// be computed live per call rather than precomputed into a static table.
package eval

import (
	"github.com/KEY271/alex/internal/eval/kkpeecache"
	"github.com/KEY271/alex/internal/geometry"
	"github.com/KEY271/alex/internal/position"
	"github.com/KEY271/alex/internal/types"
)

// PieceValue is the material worth of each piece type.
var PieceValue = [types.PieceTypeCount]int32{
	types.NoPieceType: 0,
	types.Light:       100,
	types.Heavy:       200,
	types.King:        800,
	types.Prince:      600,
	types.General:     400,
	types.Knight:      400,
	types.Arrow:       400,
	types.Archer0:     400,
	types.Archer1:     800,
	types.Archer2:     1200,
}

// DemisePenalty is the absolute (Black-perspective) score shift per demise:
// -400 for each Black demise, +400 for each White demise.
const DemisePenalty = 400

// Evaluator computes the static score, optionally backed by a kkpeecache
// cache so repeated cell lookups across many positions in one search (or
// across process runs) don't re-derive the same KKPEE formula value twice.
type Evaluator struct {
	cache *kkpeecache.Cache
	mem   map[uint64]int32
}

// New returns an Evaluator with no persistent cache: every cell is
// computed fresh and kept only in an in-process map for this Evaluator's
// lifetime.
func New() *Evaluator {
	return &Evaluator{mem: make(map[uint64]int32)}
}

// NewWithCache returns an Evaluator backed by an on-disk cache, so cell
// values survive across process runs.
func NewWithCache(cache *kkpeecache.Cache) *Evaluator {
	return &Evaluator{cache: cache, mem: make(map[uint64]int32)}
}

// Evaluate returns the static score of pos from the side-to-move's point
// of view: positive favors the side to move.
func (e *Evaluator) Evaluate(pos *position.Position) int32 {
	us := pos.SideToMove
	them := us.Other()

	var material int32
	for pt := types.Light; pt < types.PieceTypeCount; pt++ {
		ourCount := int32(pos.PieceCount[us][pt])
		oppCount := int32(pos.PieceCount[them][pt])
		material += PieceValue[pt] * (ourCount - oppCount)
	}

	var handMaterial int32
	for pt := types.Light; pt < types.PieceTypeCount; pt++ {
		if !pt.HandEligible() {
			continue
		}
		handMaterial += PieceValue[pt] * int32(pos.Hands[us].Count(pt)-pos.Hands[them].Count(pt))
	}

	blackRelative := e.kkpeeSum(pos) + blackRelativeDemise(pos)

	value := material + handMaterial
	if us == types.Black {
		value += blackRelative
	} else {
		value -= blackRelative
	}
	return value
}

func blackRelativeDemise(pos *position.Position) int32 {
	return -DemisePenalty*int32(pos.Demise[types.Black]) + DemisePenalty*int32(pos.Demise[types.White])
}

// kkpeeSum sums the per-square KKPEE cell value over the board, from
// Black's point of view (positive favors Black). Effects combine the
// incrementally-maintained short-range Effects array with the live arrow
// rays of Archer1/Archer2 and Heavy's leap landing square, each clamped to
// 2 per side as the table's own indexing does.
func (e *Evaluator) kkpeeSum(pos *position.Position) int32 {
	blackCrown := pos.CrownSq(types.Black)
	whiteCrown := pos.CrownSq(types.White)

	blackEff, whiteEff := augmentedEffects(pos)

	var sum int32
	for sq := types.Square(0); sq < 64; sq++ {
		be := clamp2(blackEff[sq])
		we := clamp2(whiteEff[sq])
		if be == 0 && we == 0 && pos.Grid[sq] == types.NoPiece {
			continue
		}
		sum += e.cellValue(blackCrown, whiteCrown, sq, pos.Grid[sq], be, we)
	}
	return sum
}

// augmentedEffects returns, per side, the full effect count at every
// square: the maintained short-range count plus live arrow-ray and
// Heavy-leap contributions that Position's incremental Effects array
// deliberately excludes (see the position.Position Effects field).
func augmentedEffects(pos *position.Position) (black, white [64]int) {
	occ := pos.AllOccupied()

	for sq := types.Square(0); sq < 64; sq++ {
		black[sq] = int(pos.Effects[types.Black][sq])
		white[sq] = int(pos.Effects[types.White][sq])
	}

	for _, side := range [...]types.Side{types.Black, types.White} {
		eff := &black
		if side == types.White {
			eff = &white
		}
		archers := (pos.PieceBB[types.Archer1] | pos.PieceBB[types.Archer2]) & pos.SideBB[side]
		for ab := archers; ab != 0; {
			from := ab.PopLSB()
			rays := geometry.ArrowAttacks(occ, from)
			for rays != 0 {
				to := rays.PopLSB()
				eff[to]++
			}
		}

		heavyBB := pos.PieceBB[types.Heavy] & pos.SideBB[side]
		landings := geometry.HeavyAttacks(heavyBB, occ, side)
		for landings != 0 {
			to := landings.PopLSB()
			eff[to]++
		}
	}

	return black, white
}

func clamp2(n int) int {
	if n > 2 {
		return 2
	}
	return n
}

func chebyshev(a, b types.Square) int {
	df := a.File() - b.File()
	dr := a.Rank() - b.Rank()
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// cellKey packs the KKPEE cell coordinates into one cache key.
func cellKey(blackCrown, whiteCrown, sq types.Square, piece types.Piece, be, we int) uint64 {
	return uint64(blackCrown)<<24 | uint64(whiteCrown)<<18 | uint64(sq)<<12 |
		uint64(piece&0x1F)<<4 | uint64(be)<<2 | uint64(we)
}

func (e *Evaluator) cellValue(blackCrown, whiteCrown, sq types.Square, piece types.Piece, be, we int) int32 {
	key := cellKey(blackCrown, whiteCrown, sq, piece, be, we)
	if v, ok := e.mem[key]; ok {
		return v
	}
	if e.cache != nil {
		if v, ok := e.cache.Get(key); ok {
			e.mem[key] = v
			return v
		}
	}
	v := computeCellValue(blackCrown, whiteCrown, sq, piece, be, we)
	e.mem[key] = v
	if e.cache != nil {
		e.cache.Put(key, v)
	}
	return v
}

const (
	ownEffectBase  = 70
	oppEffectBase  = 100
	multiDen       = 1024
	pieceBonus     = 30
	handPieceValue = 200
)

// multiEffect is a 3-entry table indexed by a clamped (0..2) effect count,
// applied once as a multiplier over multiDen: ×0, ×1.0, ×1800/1024 (≈
// ×1.757). The clamped count selects which multiplier to use; it is not
// itself a factor in the product.
var multiEffect = [3]int32{0, multiDen, 1800}

// computeCellValue is the pure KKPEE decomposition formula, evaluated from
// Black's point of view: positive favors Black.
func computeCellValue(blackCrown, whiteCrown, sq types.Square, piece types.Piece, be, we int) int32 {
	var blackScore, whiteScore int32

	if blackCrown != types.NoSquare && whiteCrown != types.NoSquare {
		blackOwnDist := chebyshev(sq, blackCrown)
		blackOppDist := chebyshev(sq, whiteCrown)
		whiteOwnDist := chebyshev(sq, whiteCrown)
		whiteOppDist := chebyshev(sq, blackCrown)

		blackBase := int32(ownEffectBase/(1+blackOwnDist) + oppEffectBase/(1+blackOppDist))
		whiteBase := int32(ownEffectBase/(1+whiteOwnDist) + oppEffectBase/(1+whiteOppDist))

		blackScore = blackBase * multiEffect[be] / multiDen
		whiteScore = whiteBase * multiEffect[we] / multiDen
	}

	value := blackScore - whiteScore

	if piece != types.NoPiece {
		pv := PieceValue[piece.Type()]
		s := pv * handPieceValue / multiDen
		if piece.Side() == types.Black {
			if we > 0 {
				value -= pieceBonus
			}
			if be > 0 {
				value += pieceBonus
			}
			value -= s
		} else {
			if be > 0 {
				value += pieceBonus
			}
			if we > 0 {
				value -= pieceBonus
			}
			value += s
		}
	}

	return value
}

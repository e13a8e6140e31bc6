package position_test

import (
	"testing"

	"github.com/KEY271/alex/internal/geometry"
	"github.com/KEY271/alex/internal/mfen"
	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/movegen"
	"github.com/KEY271/alex/internal/position"
	"github.com/KEY271/alex/internal/types"
)

func mustParse(t *testing.T, s string) *position.Position {
	t.Helper()
	pos, err := mfen.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return pos
}

// checkConsistency re-derives the grid, bitboards, piece lists and effects
// from first principles where possible and compares them against the
// incrementally maintained state (properties 2-4).
func checkConsistency(t *testing.T, pos *position.Position) {
	t.Helper()

	// Grid vs bitboards: every square claims the piece the bitboards say
	// occupies it, and vice versa.
	for sq := types.Square(0); sq < 64; sq++ {
		piece := pos.Grid[sq]
		occBlack := pos.SideBB[types.Black].Has(sq)
		occWhite := pos.SideBB[types.White].Has(sq)

		if piece == types.NoPiece {
			if occBlack || occWhite {
				t.Errorf("sq %v empty in grid but occupied in SideBB", sq)
			}
			continue
		}
		side := piece.Side()
		if side == types.Black && !occBlack {
			t.Errorf("sq %v holds black piece but SideBB[Black] clear", sq)
		}
		if side == types.White && !occWhite {
			t.Errorf("sq %v holds white piece but SideBB[White] clear", sq)
		}
		if !pos.PieceBB[piece.Type()].Has(sq) {
			t.Errorf("sq %v holds %v but PieceBB[%v] clear", sq, piece, piece.Type())
		}
	}

	// Piece list / index consistency: PieceList[side][pt][0:count] names
	// exactly the squares the grid shows for that side/type, and Index
	// maps each back to its slot.
	for side := types.Side(0); side < 2; side++ {
		for pt := types.PieceType(1); pt < types.PieceTypeCount; pt++ {
			count := pos.PieceCount[side][pt]
			seen := map[types.Square]bool{}
			for i := int8(0); i < count; i++ {
				sq := pos.PieceList[side][pt][i]
				if seen[sq] {
					t.Errorf("side %v pt %v: duplicate square %v in piece list", side, pt, sq)
				}
				seen[sq] = true
				if pos.Index[sq] != i {
					t.Errorf("side %v pt %v sq %v: Index = %d, want %d", side, pt, sq, pos.Index[sq], i)
				}
				got := pos.Grid[sq]
				if got.Type() != pt || got.Side() != side {
					t.Errorf("piece list says side %v pt %v at %v, grid says %v", side, pt, sq, got)
				}
			}
		}
	}

	// Effects: recompute from scratch (sum of MovableSq masks) and compare.
	var want [2][64]int8
	for sq := types.Square(0); sq < 64; sq++ {
		piece := pos.Grid[sq]
		if piece == types.NoPiece {
			continue
		}
		side := piece.Side()
		dests := geometry.MovableSq(piece, sq)
		for dests != 0 {
			d := dests.PopLSB()
			want[side][d]++
		}
	}
	for side := 0; side < 2; side++ {
		for sq := 0; sq < 64; sq++ {
			if pos.Effects[side][sq] != want[side][sq] {
				t.Errorf("Effects[%d][%d] = %d, want %d", side, sq, pos.Effects[side][sq], want[side][sq])
			}
		}
	}
}

// TestDoUndoReversibility exercises every legal move from the starting
// position, checks consistency after each DoMove, and checks that UndoMove
// restores the side to move, grid, hands and demise counts that snapshot
// records (property 1).
func TestDoUndoReversibility(t *testing.T) {
	pos := mustParse(t, mfen.StartMfen)
	checkConsistency(t, pos)

	var list move.List
	movegen.Generate(pos, movegen.Legal, &list)
	if list.Len() == 0 {
		t.Fatal("no legal moves at start")
	}

	for i := 0; i < list.Len(); i++ {
		m := list.Get(i)
		before := snapshot(pos)
		pos.DoMove(m)
		checkConsistency(t, pos)
		pos.UndoMove(m)
		after := snapshot(pos)
		if before != after {
			t.Fatalf("move %v: position not restored by UndoMove\nbefore=%+v\nafter=%+v", m, before, after)
		}
	}
}

// TestDoUndoDeeper walks three plies deep along the first legal move at
// each step, checking consistency at every node, then undoes the whole
// line and checks the starting position is restored.
func TestDoUndoDeeper(t *testing.T) {
	pos := mustParse(t, mfen.StartMfen)

	var played []move.Move
	for depth := 0; depth < 3; depth++ {
		var list move.List
		movegen.Generate(pos, movegen.Legal, &list)
		if list.Len() == 0 {
			break
		}
		m := list.Get(0)
		pos.DoMove(m)
		played = append(played, m)
		checkConsistency(t, pos)
	}

	for i := len(played) - 1; i >= 0; i-- {
		pos.UndoMove(played[i])
	}

	start := mustParse(t, mfen.StartMfen)
	if snapshot(pos) != snapshot(start) {
		t.Fatal("undoing the full line did not restore the starting position")
	}
}

// TestIsPseudoLegalRejectsDropOutsideOwnHalf pins §4.4's drop-half
// restriction (ranks 0..4 for Black, 3..7 for White) at the is_pseudo_legal
// gate an externally submitted move must pass (§6/§7): a caller proposing
// to drop a piece on the far side of the board must be rejected even
// though the square is empty and the piece is in hand.
func TestIsPseudoLegalRejectsDropOutsideOwnHalf(t *testing.T) {
	pos := mustParse(t, "8/8/8/8/8/8/8/8 b L 0 0")

	onOwnHalf := move.NewDrop(types.Light, types.NewSquare(0, 2))
	if !pos.IsPseudoLegal(onOwnHalf) {
		t.Error("drop onto own half (rank 2) should be pseudo-legal")
	}

	onOpponentHalf := move.NewDrop(types.Light, types.NewSquare(0, 6))
	if pos.IsPseudoLegal(onOpponentHalf) {
		t.Error("drop onto opponent's half (rank 6) should not be pseudo-legal for Black")
	}
}

// snapshotT is a comparable summary of a Position's externally visible
// state, used to check exact restoration after DoMove/UndoMove.
type snapshotT struct {
	side   types.Side
	grid   [64]types.Piece
	hands  [2]types.Hand
	demise [2]int
}

func snapshot(pos *position.Position) snapshotT {
	return snapshotT{
		side:   pos.SideToMove,
		grid:   pos.Grid,
		hands:  pos.Hands,
		demise: pos.Demise,
	}
}

package movegen_test

import (
	"testing"

	"github.com/KEY271/alex/internal/mfen"
	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/movegen"
)

// TestStartingPositionMoveCount pins S1: from the starting position, Black
// to move has exactly 16 legal moves — the 8 one-step Light/Heavy pushes
// from rank 1, 4 additional Heavy two-square leaps (rank 2 stands empty),
// and 2+2 single-step moves for the two Knights. Every other rank-0 piece
// (King, Prince, two Generals, two Archer1s) is boxed in by its own side
// at the start and contributes no moves.
func TestStartingPositionMoveCount(t *testing.T) {
	pos, err := mfen.Parse(mfen.StartMfen)
	if err != nil {
		t.Fatalf("parse start position: %v", err)
	}

	var list move.List
	movegen.Generate(pos, movegen.Legal, &list)
	if list.Len() != 16 {
		t.Fatalf("starting position legal move count = %d, want 16", list.Len())
	}

	if got := movegen.Perft(pos, 1); got != 16 {
		t.Errorf("Perft(1) = %d, want 16", got)
	}
}

// TestPerftMatchesLegalCount checks perft(1) always equals the legal move
// count it is defined in terms of, one ply past the starting position.
func TestPerftMatchesLegalCount(t *testing.T) {
	pos, err := mfen.Parse(mfen.StartMfen)
	if err != nil {
		t.Fatalf("parse start position: %v", err)
	}

	var list move.List
	movegen.Generate(pos, movegen.Legal, &list)
	if list.Len() == 0 {
		t.Fatal("no legal moves at start position")
	}

	m := list.Get(0)
	pos.DoMove(m)
	defer pos.UndoMove(m)

	var list2 move.List
	movegen.Generate(pos, movegen.Legal, &list2)
	if got := movegen.Perft(pos, 1); got != uint64(list2.Len()) {
		t.Errorf("Perft(1) after one move = %d, want %d", got, list2.Len())
	}
}

// TestPerftZeroIsOne checks the depth-0 base case: the position itself is
// the one leaf.
func TestPerftZeroIsOne(t *testing.T) {
	pos, err := mfen.Parse(mfen.StartMfen)
	if err != nil {
		t.Fatalf("parse start position: %v", err)
	}
	if got := movegen.Perft(pos, 0); got != 1 {
		t.Errorf("Perft(0) = %d, want 1", got)
	}
}

// TestPerftDivideSumsToTotal checks PerftDivide's per-root breakdown sums
// to the same total Perft itself reports.
func TestPerftDivideSumsToTotal(t *testing.T) {
	pos, err := mfen.Parse(mfen.StartMfen)
	if err != nil {
		t.Fatalf("parse start position: %v", err)
	}

	entries := movegen.PerftDivide(pos, 2)
	var sum uint64
	for _, e := range entries {
		sum += e.Nodes
	}
	want := movegen.Perft(pos, 2)
	if sum != want {
		t.Errorf("PerftDivide(2) sum = %d, want %d", sum, want)
	}
}

// TestPerftSmoke pins S2: perft(2) and perft(3) from the starting position
// are fixed to the values below. perft(2) is exactly 16*16: neither side's
// first move reaches past its own half of the board, so White's reply
// count at every one of Black's 16 first moves is the unperturbed starting
// count. perft(3) is NOT 256*16 = 4096, because a few of those first moves
// change what Black's own second move can do: a Heavy that leaped to rank
// 3 is not restricted to leaping from its start rank, so it gains a second
// 2-square leap toward rank 5; and an Archer1 whose own Light/Heavy
// stepped off its file gains Shoot destinations along the now-open ray.
// Both effects only add moves, which is why the true count sits above the
// naive product.
func TestPerftSmoke(t *testing.T) {
	pos, err := mfen.Parse(mfen.StartMfen)
	if err != nil {
		t.Fatalf("parse start position: %v", err)
	}

	if got := movegen.Perft(pos, 2); got != 256 {
		t.Errorf("Perft(2) = %d, want 256", got)
	}
	if got := movegen.Perft(pos, 3); got != 4918 {
		t.Errorf("Perft(3) = %d, want 4918", got)
	}
}

// TestEveryLegalMoveIsPseudoLegal pins §8 property 5: generate(Legal) is a
// subset of is_pseudo_legal.
func TestEveryLegalMoveIsPseudoLegal(t *testing.T) {
	pos, err := mfen.Parse(mfen.StartMfen)
	if err != nil {
		t.Fatalf("parse start position: %v", err)
	}

	var list move.List
	movegen.Generate(pos, movegen.Legal, &list)
	for i := 0; i < list.Len(); i++ {
		m := list.Get(i)
		if !pos.IsPseudoLegal(m) {
			t.Errorf("legal move %v is not pseudo-legal", m)
		}
	}
}

// TestLegalMovesDontSelfCheck pins §8 property 6: after executing any move
// from generate(Legal), the moving side's crown is not attacked.
func TestLegalMovesDontSelfCheck(t *testing.T) {
	pos, err := mfen.Parse(mfen.StartMfen)
	if err != nil {
		t.Fatalf("parse start position: %v", err)
	}

	var list move.List
	movegen.Generate(pos, movegen.Legal, &list)
	for i := 0; i < list.Len(); i++ {
		m := list.Get(i)
		mover := pos.SideToMove
		pos.DoMove(m)
		if pos.CrownAttacked(mover) {
			t.Errorf("move %v left mover's crown in check", m)
		}
		pos.UndoMove(m)
	}
}

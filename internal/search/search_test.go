package search_test

import (
	"testing"
	"time"

	"github.com/KEY271/alex/internal/mfen"
	"github.com/KEY271/alex/internal/search"
)

// TestSearchReturnsMoveFromStart checks that a short search from the
// starting position finds a legal move rather than resigning.
func TestSearchReturnsMoveFromStart(t *testing.T) {
	pos, err := mfen.Parse(mfen.StartMfen)
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}

	res := search.Search(pos, 200*time.Millisecond)
	if !res.Found {
		t.Fatal("Search did not find a move at the starting position")
	}
	if res.Depth < 1 {
		t.Errorf("Search reported depth %d, want at least 1", res.Depth)
	}
	if len(res.PV) == 0 || res.PV[0] != res.Move {
		t.Errorf("PV %v does not lead with the reported best move %v", res.PV, res.Move)
	}
}

// TestSearchResignsWithNoLegalMove checks the §4.7 failure path: Black to
// move with no Black piece anywhere on the board and an empty hand has no
// move to make at all, so Search must report Found == false rather than
// picking from an empty list.
func TestSearchResignsWithNoLegalMove(t *testing.T) {
	pos, err := mfen.Parse("7k/8/8/8/8/8/8/8 b - 0 0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	res := search.Search(pos, 50*time.Millisecond)
	if res.Found {
		t.Errorf("Search found a move %v in a position with none available", res.Move)
	}
}

package mfen

import (
	"testing"

	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/movegen"
	"github.com/KEY271/alex/internal/position"
)

func TestStartMfenRoundTrip(t *testing.T) {
	pos, err := Parse(StartMfen)
	if err != nil {
		t.Fatalf("Parse(StartMfen): %v", err)
	}
	got := Format(pos)
	if got != StartMfen {
		t.Errorf("Format(Parse(StartMfen)) = %q, want %q", got, StartMfen)
	}
}

func TestParseRejectsWrongFieldCount(t *testing.T) {
	_, err := Parse("bngkpgnb/llhhhhll/8/8/8/8/LLHHHHLL/BNGPKGNB b -")
	if err == nil {
		t.Fatal("expected an error for a 3-field mfen string")
	}
}

func TestParseRejectsAmbiguousHandCount(t *testing.T) {
	// "L0" and "L9" are neither a bare letter (implied count 1) nor a
	// 2..8 count digit; both must be rejected rather than guessed at.
	_, err := Parse("8/8/8/8/8/8/8/8 b L0 0 0")
	if err == nil {
		t.Fatal("expected an error for hand count digit '0'")
	}
	_, err = Parse("8/8/8/8/8/8/8/8 b L9 0 0")
	if err == nil {
		t.Fatal("expected an error for hand count digit '9'")
	}
}

func TestParseRejectsBadDemise(t *testing.T) {
	_, err := Parse("bngkpgnb/llhhhhll/8/8/8/8/LLHHHHLL/BNGPKGNB b - 3 0")
	if err == nil {
		t.Fatal("expected an error for demise count 3")
	}
}

// TestHandsRoundTrip checks a non-empty, multi-count hand field formats
// back to exactly the string it was parsed from.
func TestHandsRoundTrip(t *testing.T) {
	s := "8/8/8/8/8/8/8/8 b L2Hg3n 1 0"
	pos, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := Format(pos); got != s {
		t.Errorf("Format(Parse(%q)) = %q, want %q", s, got, s)
	}
}

func legalMoves(t *testing.T, pos *position.Position) []move.Move {
	t.Helper()
	var list move.List
	movegen.Generate(pos, movegen.Legal, &list)
	moves := make([]move.Move, list.Len())
	for i := 0; i < list.Len(); i++ {
		moves[i] = list.Get(i)
	}
	return moves
}

// TestMoveNotationRoundTrip generates every legal move from the starting
// position, formats each one, and checks that parsing the formatted
// string back reproduces the identical move.
func TestMoveNotationRoundTrip(t *testing.T) {
	pos, err := Parse(StartMfen)
	if err != nil {
		t.Fatalf("Parse(StartMfen): %v", err)
	}

	for _, m := range legalMoves(t, pos) {
		str := FormatMove(pos, m)
		got, err := ParseMove(pos, str)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", str, err)
		}
		if got != m {
			t.Errorf("round trip for %v: formatted %q, reparsed as %v", m, str, got)
		}
	}
}

// TestMoveNotationRoundTripAfterOneMove repeats the round-trip check one
// ply deeper, after playing the first generated legal move (the Light push
// a2a3), so the moves checked are White's replies.
func TestMoveNotationRoundTripAfterOneMove(t *testing.T) {
	pos, err := Parse(StartMfen)
	if err != nil {
		t.Fatalf("Parse(StartMfen): %v", err)
	}

	first := legalMoves(t, pos)
	if len(first) == 0 {
		t.Fatal("no legal moves at start")
	}
	pos.DoMove(first[0])

	for _, m := range legalMoves(t, pos) {
		str := FormatMove(pos, m)
		got, err := ParseMove(pos, str)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", str, err)
		}
		if got != m {
			t.Errorf("round trip for %v: formatted %q, reparsed as %v", m, str, got)
		}
	}
}

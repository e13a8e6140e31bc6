package movegen

import (
	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/position"
)

// Perft counts the legal leaf positions reachable in exactly depth plies
// from pos. depth 0 returns 1 (the position itself is the one leaf).
func Perft(pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var list move.List
	Generate(pos, Legal, &list)

	if depth == 1 {
		return uint64(list.Len())
	}

	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		m := list.Get(i)
		pos.DoMove(m)
		nodes += Perft(pos, depth-1)
		pos.UndoMove(m)
	}
	return nodes
}

// DivideEntry is one root move's leaf count, as produced by PerftDivide.
type DivideEntry struct {
	Move  move.Move
	Nodes uint64
}

// PerftDivide runs Perft(depth-1) from behind each root move, for the
// "perft <depth> debug" diagnostic primitive (§6): a per-root-move leaf
// count breakdown that lets a caller narrow a generator discrepancy down
// to a single root move.
func PerftDivide(pos *position.Position, depth int) []DivideEntry {
	var list move.List
	Generate(pos, Legal, &list)

	entries := make([]DivideEntry, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		m := list.Get(i)
		pos.DoMove(m)
		var n uint64
		if depth <= 1 {
			n = 1
		} else {
			n = Perft(pos, depth-1)
		}
		pos.UndoMove(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: n})
	}
	return entries
}

// Package search implements iterative-deepening alpha-beta negamax with a
// quiescence layer, time-bounded termination, and a principal-variation
// line, driven by internal/movepick's staged iterator. Structurally this
// mirrors the teacher's internal/engine/search.go negamax loop (PV table,
// deadline checks inside the tree, undo-on-the-way-back), minus everything the
// spec's Non-goals exclude: no transposition table, no multithreading.
package search

import (
	"time"

	"github.com/KEY271/alex/internal/eval"
	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/movegen"
	"github.com/KEY271/alex/internal/movepick"
	"github.com/KEY271/alex/internal/position"
)

// Score constants. ValueWin is a side-to-move-relative "I have been mated"
// score; the root/interior search negates it on propagation so a loss N
// plies away scores worse than one N+2 plies away would if mate distance
// were tracked — this port does not track mate distance (Non-goals is
// silent on it; the spec's formula is a flat −VALUE_WIN), matching the
// simpler of the two source variants.
const (
	ValueWin = 30000
	Infinity = 30001
	MaxPly   = 64
)

// PV is a principal-variation line of up to MaxPly moves.
type PV struct {
	moves [MaxPly]move.Move
	n     int
}

// Moves returns the live prefix of the line.
func (pv *PV) Moves() []move.Move { return pv.moves[:pv.n] }

func (pv *PV) set(m move.Move, child *PV) {
	pv.moves[0] = m
	n := copy(pv.moves[1:], child.moves[:child.n])
	pv.n = 1 + n
}

func (pv *PV) clear() { pv.n = 0 }

// Result is what Search returns: the best root move (or false if no legal
// move existed), its score from the side-to-move's point of view, and the
// depth actually completed.
type Result struct {
	Move  move.Move
	Found bool
	Score int32
	Depth int
	PV    []move.Move
}

// Search runs iterative deepening from pos until budget elapses, returning
// the last fully-completed depth's result. budget is the caller-supplied
// wall-clock allowance; a deadline is computed once at entry and checked at
// every node and, from depth 2 on, before every root move (§4.7/§5).
func Search(pos *position.Position, budget time.Duration) Result {
	deadline := time.Now().Add(budget)
	ev := eval.New()

	var best Result
	for depth := 1; ; depth++ {
		s := &searcher{pos: pos, eval: ev, deadline: deadline}
		res, complete := s.searchRoot(depth)
		if !complete {
			break
		}
		best = res
		if time.Now().After(deadline) {
			break
		}
	}
	return best
}

type searcher struct {
	pos      *position.Position
	eval     *eval.Evaluator
	deadline time.Time
	nodes    uint64
}

func (s *searcher) timeUp() bool {
	s.nodes++
	return time.Now().After(s.deadline)
}

// searchRoot evaluates every legal move at depth-1 under a full window,
// returning the best one found. complete is false when the deadline hit
// mid-loop, in which case the caller discards the partial result (§4.7).
func (s *searcher) searchRoot(depth int) (Result, bool) {
	var list move.List
	movegen.Generate(s.pos, movegen.Legal, &list)

	if list.Len() == 0 {
		return Result{Found: false, Depth: depth}, true
	}

	alpha, beta := int32(-Infinity), int32(Infinity)
	var bestMove move.Move
	bestScore := int32(-Infinity)
	var bestPV PV
	var childPV PV

	for i := 0; i < list.Len(); i++ {
		if time.Now().After(s.deadline) && depth > 1 {
			return Result{}, false
		}
		m := list.Get(i)
		s.pos.DoMove(m)
		childPV.clear()
		score := -s.searchNode(depth-1, 1, -beta, -alpha, &childPV)
		s.pos.UndoMove(m)

		if score > bestScore {
			bestScore = score
			bestMove = m
			bestPV.set(m, &childPV)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	if time.Now().After(s.deadline) && depth > 1 {
		return Result{}, false
	}

	return Result{
		Move:  bestMove,
		Found: true,
		Score: bestScore,
		Depth: depth,
		PV:    append([]move.Move(nil), bestPV.Moves()...),
	}, true
}

// searchNode is the interior negamax search. depth 0 falls into
// quiescence; otherwise it walks the staged Picker, skipping moves that
// turn out illegal (pin/self-check), tightening alpha and cutting off once
// alpha >= beta.
func (s *searcher) searchNode(depth, ply int, alpha, beta int32, pv *PV) int32 {
	pv.clear()
	if s.timeUp() {
		return 0
	}
	if depth <= 0 {
		return s.qsearch(ply, alpha, beta)
	}

	picker := movepick.New(s.pos)
	legalSeen := false
	var childPV PV

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if !s.pos.IsLegal(m) {
			continue
		}
		legalSeen = true

		s.pos.DoMove(m)
		childPV.clear()
		score := -s.searchNode(depth-1, ply+1, -beta, -alpha, &childPV)
		s.pos.UndoMove(m)

		if score > alpha {
			alpha = score
			pv.set(m, &childPV)
			if alpha >= beta {
				break
			}
		}
	}

	if !legalSeen {
		return -ValueWin
	}
	return alpha
}

// qsearch explores captures only, bounded by MaxPly and the deadline, to
// stabilize the evaluation at the search horizon (§4.7).
func (s *searcher) qsearch(ply int, alpha, beta int32) int32 {
	if s.timeUp() || ply >= MaxPly {
		return s.eval.Evaluate(s.pos)
	}

	standPat := s.eval.Evaluate(s.pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	picker := movepick.NewQ(s.pos)
	sawCapture := false

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if !s.pos.IsLegal(m) {
			continue
		}
		sawCapture = true

		s.pos.DoMove(m)
		score := -s.qsearch(ply+1, -beta, -alpha)
		s.pos.UndoMove(m)

		if score > alpha {
			alpha = score
			if alpha >= beta {
				break
			}
		}
	}

	if !sawCapture && s.pos.InCheck() {
		return -ValueWin
	}
	return alpha
}

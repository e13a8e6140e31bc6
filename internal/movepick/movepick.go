// Package movepick implements the staged move iterator search draws from:
// captures ordered by MVV, then non-captures in generation order, or
// evasions when the side to move is in check. A second, simpler flavor
// yields captures only for quiescence. Scores are assigned once per stage,
// then the best-remaining entry is swapped to the front on each Next call
// instead of sorting the whole stage up front.
package movepick

import (
	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/movegen"
	"github.com/KEY271/alex/internal/position"
	"github.com/KEY271/alex/internal/types"
)

// pieceValue is the MVV ranking table: victim value only, holding the same
// values as the evaluator's own material table.
var pieceValue = [types.PieceTypeCount]int32{
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

type stage int

const (
	stageCapturesInit stage = iota
	stageCaptures
	stageNonCapturesInit
	stageNonCaptures
	stageEvasionInit
	stageEvasion
	stageDone
)

// Picker is the main-search staged move iterator.
type Picker struct {
	pos    *position.Position
	stage  stage
	list   move.List
	cursor int
}

// New returns a Picker for pos, choosing the Evasion path if the side to
// move is currently in check.
func New(pos *position.Position) *Picker {
	p := &Picker{pos: pos}
	if pos.InCheck() {
		p.stage = stageEvasionInit
	} else {
		p.stage = stageCapturesInit
	}
	return p
}

// Next returns the next pseudo-legal move and true, or false once the
// picker is exhausted. Captures are yielded highest-MVV-first; non-captures
// and evasions are yielded in generation order.
func (p *Picker) Next() (move.Move, bool) {
	for {
		switch p.stage {
		case stageCapturesInit:
			p.list.Truncate()
			movegen.Generate(p.pos, movegen.Captures, &p.list)
			p.scoreCaptures()
			p.cursor = 0
			p.stage = stageCaptures
		case stageCaptures:
			if m, ok := p.selectBest(); ok {
				return m, true
			}
			p.stage = stageNonCapturesInit
		case stageNonCapturesInit:
			p.list.Truncate()
			movegen.Generate(p.pos, movegen.NonCaptures, &p.list)
			p.cursor = 0
			p.stage = stageNonCaptures
		case stageNonCaptures:
			if p.cursor >= p.list.Len() {
				p.stage = stageDone
				continue
			}
			m := p.list.Get(p.cursor)
			p.cursor++
			return m, true
		case stageEvasionInit:
			p.list.Truncate()
			movegen.Generate(p.pos, movegen.Evasion, &p.list)
			p.cursor = 0
			p.stage = stageEvasion
		case stageEvasion:
			if p.cursor >= p.list.Len() {
				p.stage = stageDone
				continue
			}
			m := p.list.Get(p.cursor)
			p.cursor++
			return m, true
		case stageDone:
			return 0, false
		}
	}
}

func (p *Picker) scoreCaptures() {
	for i := 0; i < p.list.Len(); i++ {
		m := p.list.Get(i)
		p.list.SetScore(i, pieceValue[m.Captured()])
	}
}

// selectBest swaps the highest-scoring remaining entry to the cursor and
// returns it, advancing the cursor: a selection-sort done lazily rather
// than a full sort, since most searches cut off long before exhausting
// the stage.
func (p *Picker) selectBest() (move.Move, bool) {
	if p.cursor >= p.list.Len() {
		return 0, false
	}
	best := p.cursor
	for i := p.cursor + 1; i < p.list.Len(); i++ {
		if p.list.At(i).Score > p.list.At(best).Score {
			best = i
		}
	}
	p.list.Swap(p.cursor, best)
	m := p.list.Get(p.cursor)
	p.cursor++
	return m, true
}

// QPicker yields captures only, for quiescence search.
type QPicker struct {
	pos    *position.Position
	list   move.List
	cursor int
	inited bool
}

// NewQ returns a quiescence Picker for pos.
func NewQ(pos *position.Position) *QPicker {
	return &QPicker{pos: pos}
}

// Next returns the next capture and true, or false once exhausted.
func (p *QPicker) Next() (move.Move, bool) {
	if !p.inited {
		movegen.Generate(p.pos, movegen.Captures, &p.list)
		for i := 0; i < p.list.Len(); i++ {
			p.list.SetScore(i, pieceValue[p.list.Get(i).Captured()])
		}
		p.inited = true
	}
	if p.cursor >= p.list.Len() {
		return 0, false
	}
	best := p.cursor
	for i := p.cursor + 1; i < p.list.Len(); i++ {
		if p.list.At(i).Score > p.list.At(best).Score {
			best = i
		}
	}
	p.list.Swap(p.cursor, best)
	m := p.list.Get(p.cursor)
	p.cursor++
	return m, true
}

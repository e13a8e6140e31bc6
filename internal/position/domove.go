package position

import (
	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/types"
)

// DoMove applies m, which must be pseudo-legal in the current position, and
// pushes a fresh StateInfo. The demise flag, when set on a non-bare move,
// is applied in addition to the move's own action.
func (p *Position) DoMove(m move.Move) {
	side := p.SideToMove

	if m.IsBareDemise() {
		p.Demise[side]++
		p.SideToMove = side.Other()
		p.states = append(p.states, p.computeStateInfo())
		return
	}

	if m.IsDemise() {
		p.Demise[side]++
	}

	switch m.Kind() {
	case move.Normal:
		p.doNormal(m, side)
	case move.Return:
		p.doReturn(m, side)
	case move.Shoot:
		p.doShoot(m, side)
	case move.Drop:
		p.doDrop(m, side)
	case move.Supply:
		p.doSupply(m, side)
	}

	p.SideToMove = side.Other()
	p.states = append(p.states, p.computeStateInfo())
}

// UndoMove reverses the most recent DoMove. m must be the same move that
// was just applied.
func (p *Position) UndoMove(m move.Move) {
	p.states = p.states[:len(p.states)-1]
	p.SideToMove = p.SideToMove.Other()
	side := p.SideToMove

	if m.IsBareDemise() {
		p.Demise[side]--
		return
	}

	switch m.Kind() {
	case move.Normal:
		p.undoNormal(m, side)
	case move.Return:
		p.undoReturn(m, side)
	case move.Shoot:
		p.undoShoot(m, side)
	case move.Drop:
		p.undoDrop(m, side)
	case move.Supply:
		p.undoSupply(m, side)
	}

	if m.IsDemise() {
		p.Demise[side]--
	}
}

func (p *Position) doNormal(m move.Move, side types.Side) {
	if m.Captured() != types.NoPieceType {
		p.removePiece(m.To())
		p.Hands[side] = p.Hands[side].Add(m.Captured(), 1)
	}
	p.movePiece(m.From(), m.To())
}

func (p *Position) undoNormal(m move.Move, side types.Side) {
	p.movePiece(m.To(), m.From())
	if m.Captured() != types.NoPieceType {
		p.Hands[side] = p.Hands[side].Add(m.Captured(), -1)
		p.AddPiece(m.Captured(), side.Other(), m.To())
	}
}

// doReturn consumes the arrow at from and upgrades the archer sitting at to
// by one rank (Archer0->Archer1 or Archer1->Archer2).
func (p *Position) doReturn(m move.Move, side types.Side) {
	archerPt := p.Grid[m.To()].Type()
	p.removePiece(m.From())
	p.removePiece(m.To())
	p.AddPiece(archerPt+1, side, m.To())
}

func (p *Position) undoReturn(m move.Move, side types.Side) {
	upgraded := p.Grid[m.To()].Type()
	p.removePiece(m.To())
	p.AddPiece(upgraded-1, side, m.To())
	p.AddPiece(types.Arrow, side, m.From())
}

// doShoot fires an arrow from an Archer1/Archer2 at from to to, capturing
// whatever opponent piece sits at to, demoting the firing archer by one
// rank, and planting a new Arrow at to.
func (p *Position) doShoot(m move.Move, side types.Side) {
	if m.Captured() != types.NoPieceType {
		p.removePiece(m.To())
		p.Hands[side] = p.Hands[side].Add(m.Captured(), 1)
	}
	firingPt := p.Grid[m.From()].Type()
	p.removePiece(m.From())
	p.AddPiece(firingPt-1, side, m.From())
	p.AddPiece(types.Arrow, side, m.To())
}

func (p *Position) undoShoot(m move.Move, side types.Side) {
	p.removePiece(m.To())
	if m.Captured() != types.NoPieceType {
		p.AddPiece(m.Captured(), side.Other(), m.To())
		p.Hands[side] = p.Hands[side].Add(m.Captured(), -1)
	}
	demoted := p.Grid[m.From()].Type()
	p.removePiece(m.From())
	p.AddPiece(demoted+1, side, m.From())
}

// doDrop places a piece from hand onto an empty square. Dropping an
// Archer1/Archer2 directly spends the Archer0 chassis plus one/two extra
// Arrows, since hand counters never track loaded archers.
func (p *Position) doDrop(m move.Move, side types.Side) {
	pt := m.DropPiece()
	switch pt {
	case types.Archer1:
		p.Hands[side] = p.Hands[side].Add(types.Archer0, -1)
		p.Hands[side] = p.Hands[side].Add(types.Arrow, -1)
	case types.Archer2:
		p.Hands[side] = p.Hands[side].Add(types.Archer0, -1)
		p.Hands[side] = p.Hands[side].Add(types.Arrow, -2)
	default:
		p.Hands[side] = p.Hands[side].Add(pt, -1)
	}
	p.AddPiece(pt, side, m.To())
}

func (p *Position) undoDrop(m move.Move, side types.Side) {
	pt := m.DropPiece()
	p.removePiece(m.To())
	switch pt {
	case types.Archer1:
		p.Hands[side] = p.Hands[side].Add(types.Archer0, 1)
		p.Hands[side] = p.Hands[side].Add(types.Arrow, 1)
	case types.Archer2:
		p.Hands[side] = p.Hands[side].Add(types.Archer0, 1)
		p.Hands[side] = p.Hands[side].Add(types.Arrow, 2)
	default:
		p.Hands[side] = p.Hands[side].Add(pt, 1)
	}
}

// doSupply spends one Arrow from hand to upgrade the archer at to by one
// rank, without any piece moving.
func (p *Position) doSupply(m move.Move, side types.Side) {
	p.Hands[side] = p.Hands[side].Add(types.Arrow, -1)
	pt := p.Grid[m.To()].Type()
	p.removePiece(m.To())
	p.AddPiece(pt+1, side, m.To())
}

func (p *Position) undoSupply(m move.Move, side types.Side) {
	pt := p.Grid[m.To()].Type()
	p.removePiece(m.To())
	p.AddPiece(pt-1, side, m.To())
	p.Hands[side] = p.Hands[side].Add(types.Arrow, 1)
}

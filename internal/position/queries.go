package position

import (
	"github.com/KEY271/alex/internal/geometry"
	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/types"
)

// InCheck reports whether the side to move's crown is currently attacked,
// per the last pushed StateInfo.
func (p *Position) InCheck() bool {
	return p.State().Checkers != 0
}

// IsLegal reports whether pseudo-legal move m leaves the mover's own crown
// safe. It plays the move, checks, and undoes it again; simple and always
// correct, which matters more here than shaving the extra do/undo pair.
func (p *Position) IsLegal(m move.Move) bool {
	side := p.SideToMove
	p.DoMove(m)
	legal := !p.CrownAttacked(side)
	p.UndoMove(m)
	return legal
}

// IsPseudoLegal reports whether m is a move the generator could have
// produced in the current position: right piece at the right square,
// geometrically reachable, hand/occupancy preconditions met. It does not
// check for self-check.
func (p *Position) IsPseudoLegal(m move.Move) bool {
	side := p.SideToMove

	if m.IsBareDemise() {
		return p.Demise[side] < 2
	}
	if m.IsDemise() && p.Demise[side] >= 2 {
		return false
	}

	switch m.Kind() {
	case move.Normal:
		return p.pseudoLegalNormal(m, side)
	case move.Return:
		return p.pseudoLegalReturn(m, side)
	case move.Shoot:
		return p.pseudoLegalShoot(m, side)
	case move.Drop:
		return p.pseudoLegalDrop(m, side)
	case move.Supply:
		return p.pseudoLegalSupply(m, side)
	default:
		return false
	}
}

func (p *Position) pseudoLegalNormal(m move.Move, side types.Side) bool {
	from, to := m.From(), m.To()
	piece := p.Grid[from]
	if piece == types.NoPiece || piece.Side() != side {
		return false
	}
	reachable := geometry.MovableSq(piece, from).Has(to)
	if !reachable && piece.Type() == types.Heavy {
		reachable = geometry.HeavyAttacks(types.BitFor(from), p.AllOccupied(), side).Has(to)
	}
	if !reachable {
		return false
	}
	if p.SideBB[side].Has(to) {
		return false
	}
	return m.Captured() == targetType(p.Grid[to])
}

func (p *Position) pseudoLegalReturn(m move.Move, side types.Side) bool {
	from, to := m.From(), m.To()
	if p.Grid[from] != types.NewPiece(types.Arrow, side) {
		return false
	}
	if !geometry.ArrowAttacks(p.AllOccupied(), from).Has(to) {
		return false
	}
	archer := p.Grid[to]
	return archer.Side() == side && (archer.Type() == types.Archer0 || archer.Type() == types.Archer1)
}

func (p *Position) pseudoLegalShoot(m move.Move, side types.Side) bool {
	from, to := m.From(), m.To()
	firer := p.Grid[from]
	if firer.Side() != side || (firer.Type() != types.Archer1 && firer.Type() != types.Archer2) {
		return false
	}
	if !geometry.ArrowAttacks(p.AllOccupied(), from).Has(to) {
		return false
	}
	target := p.Grid[to]
	if target != types.NoPiece && target.Side() == side {
		return false
	}
	return m.Captured() == targetType(target)
}

func (p *Position) pseudoLegalDrop(m move.Move, side types.Side) bool {
	pt := m.DropPiece()
	to := m.To()
	if p.Grid[to] != types.NoPiece {
		return false
	}
	if !OwnDropHalf(side, to) {
		return false
	}
	switch pt {
	case types.Archer1:
		return p.Hands[side].Count(types.Archer0) > 0 && p.Hands[side].Count(types.Arrow) >= 1
	case types.Archer2:
		return p.Hands[side].Count(types.Archer0) > 0 && p.Hands[side].Count(types.Arrow) >= 2
	default:
		return pt.HandEligible() && p.Hands[side].Count(pt) > 0
	}
}

func (p *Position) pseudoLegalSupply(m move.Move, side types.Side) bool {
	archer := p.Grid[m.To()]
	if archer.Side() != side || (archer.Type() != types.Archer0 && archer.Type() != types.Archer1) {
		return false
	}
	return p.Hands[side].Count(types.Arrow) > 0
}

// OwnDropHalf reports whether sq lies within side's own half of the board,
// the region Drop moves are restricted to (§4.4): ranks 0..4 for Black,
// ranks 3..7 for White.
func OwnDropHalf(side types.Side, sq types.Square) bool {
	if side == types.Black {
		return sq.Rank() <= 4
	}
	return sq.Rank() >= 3
}

func targetType(p types.Piece) types.PieceType {
	if p == types.NoPiece {
		return types.NoPieceType
	}
	return p.Type()
}

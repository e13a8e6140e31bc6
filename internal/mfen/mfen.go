// Package mfen implements the engine-side parse and format halves of the
// mfen board notation and the move notation: turning a string into a
// *position.Position / move.Move and back. It does not read from or write
// to any stream — stdin/stdout/file handling belongs to an external
// collaborator that calls into the interfaces this package offers.
//
// Parsing follows a plain strings.Fields split, a *NotationError on every
// malformed field, and no panics on bad input.
package mfen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/position"
	"github.com/KEY271/alex/internal/types"
)

// StartMfen is the starting position string.
const StartMfen = "bngkpgnb/llhhhhll/8/8/8/8/LLHHHHLL/BNGPKGNB b - 0 0"

// NotationError reports a malformed mfen or move string with a short,
// reason-carrying message: row/char/length/turn/demise.
type NotationError struct {
	Reason string
}

func (e *NotationError) Error() string { return "mfen: " + e.Reason }

func notationErrf(format string, args ...any) error {
	return &NotationError{Reason: fmt.Sprintf(format, args...)}
}

// handOrder is the fixed ordering both hand-format and hand-parse use:
// Light, Heavy, General, Knight, Arrow, Archer0.
var handOrder = [...]types.PieceType{
	types.Light, types.Heavy, types.General, types.Knight, types.Arrow, types.Archer0,
}

// Parse reads a five-field mfen string into a fresh Position.
func Parse(s string) (*position.Position, error) {
	fields := strings.Fields(s)
	if len(fields) != 5 {
		return nil, notationErrf("expected 5 fields, got %d", len(fields))
	}

	pos := position.NewEmpty()

	if err := parseBoard(pos, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "b":
		pos.SideToMove = types.Black
	case "w":
		pos.SideToMove = types.White
	default:
		return nil, notationErrf("invalid side to move %q", fields[1])
	}

	if err := parseHands(pos, fields[2]); err != nil {
		return nil, err
	}

	blackDemise, err := parseDemise(fields[3])
	if err != nil {
		return nil, err
	}
	whiteDemise, err := parseDemise(fields[4])
	if err != nil {
		return nil, err
	}
	pos.Demise[types.Black] = blackDemise
	pos.Demise[types.White] = whiteDemise

	pos.PushInitialState()
	return pos, nil
}

func parseBoard(pos *position.Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return notationErrf("board: expected 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // first field rank is White's back rank, rank 7
		file := 0
		for _, c := range []byte(rankStr) {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pt, side, ok := types.PieceTypeFromLetter(c)
			if !ok {
				return notationErrf("board: rank %d: invalid piece letter %q", rank, c)
			}
			if file > 7 {
				return notationErrf("board: rank %d: too many squares", rank)
			}
			pos.AddPiece(pt, side, types.NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return notationErrf("board: rank %d: expected 8 files, got %d", rank, file)
		}
	}
	return nil
}

func parseHands(pos *position.Position, field string) error {
	if field == "-" {
		return nil
	}
	i := 0
	for i < len(field) {
		c := field[i]
		pt, side, ok := types.PieceTypeFromLetter(c)
		if !ok || !pt.HandEligible() {
			return notationErrf("hands: invalid piece letter %q", c)
		}
		i++
		count := 1
		if i < len(field) && field[i] >= '2' && field[i] <= '8' {
			count = int(field[i] - '0')
			i++
		} else if i < len(field) && field[i] >= '0' && field[i] <= '9' {
			// A digit present but outside 2..8 has no unambiguous reading
			// (see DESIGN.md); reject rather than guess.
			return notationErrf("hands: count digit %q out of range 2..8", field[i])
		}
		pos.Hands[side] = pos.Hands[side].Add(pt, count)
	}
	return nil
}

func parseDemise(field string) (int, error) {
	switch field {
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	case "2":
		return 2, nil
	default:
		return 0, notationErrf("demise: expected 0, 1 or 2, got %q", field)
	}
}

// Format renders pos back into its five-field mfen string.
func Format(pos *position.Position) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := types.NewSquare(file, rank)
			p := pos.Grid[sq]
			if p == types.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(pos.SideToMove.String())

	sb.WriteByte(' ')
	sb.WriteString(formatHands(pos))

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.Demise[types.Black]))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.Demise[types.White]))

	return sb.String()
}

func formatHands(pos *position.Position) string {
	var sb strings.Builder
	for _, side := range [...]types.Side{types.Black, types.White} {
		for _, pt := range handOrder {
			n := pos.Hands[side].Count(pt)
			if n == 0 {
				continue
			}
			letter := pt.Letter()
			if side == types.White {
				letter += 'a' - 'A'
			}
			sb.WriteByte(letter)
			if n >= 2 {
				sb.WriteString(strconv.Itoa(n))
			}
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// ParseMove parses a move string in the side-to-move's context:
// Normal/Return "<from><to>", Shoot "<from><to>S", Drop "<to><letter>",
// Supply "<to>R"/"<to>r", the bare demise sentinel "D", and any of those
// with a trailing "D" demise-declaration suffix.
//
// The notation for Drop-of-Arrow ("<to>R") and Black Supply ("<to>R") is
// identical text; ParseMove disambiguates using board state — see
// DESIGN.md's note on this open notation ambiguity.
func ParseMove(pos *position.Position, s string) (move.Move, error) {
	if s == "" {
		return 0, notationErrf("empty move string")
	}
	if s == "D" {
		return move.MoveDemise, nil
	}

	demise := false
	body := s
	if len(body) > 1 && body[len(body)-1] == 'D' {
		demise = true
		body = body[:len(body)-1]
	}

	m, err := parseMoveBody(pos, body)
	if err != nil {
		return 0, err
	}
	if demise {
		m = m.WithDemise()
	}
	return m, nil
}

func parseMoveBody(pos *position.Position, body string) (move.Move, error) {
	side := pos.SideToMove

	if len(body) == 0 {
		return 0, notationErrf("move: empty body")
	}

	last := body[len(body)-1]

	if last == 'S' {
		from, to, err := parseFromTo(body[:len(body)-1])
		if err != nil {
			return 0, err
		}
		return move.NewShoot(from, to, targetType(pos, to)), nil
	}

	if last == 'r' {
		to, err := types.ParseSquare(body[:len(body)-1])
		if err != nil {
			return 0, notationErrf("move: invalid supply square: %v", err)
		}
		if side != types.White {
			return 0, notationErrf("move: supply letter 'r' requires White to move")
		}
		return move.NewSupply(to), nil
	}

	if len(body) == 3 {
		toStr := body[:2]
		letter := body[2]
		to, err := types.ParseSquare(toStr)
		if err == nil {
			if letter == 'R' && pos.Grid[to] != types.NoPiece {
				// Occupied target: "R" must mean Black Supply, not an
				// Arrow drop (drops always target an empty square).
				if side != types.Black {
					return 0, notationErrf("move: supply letter 'R' requires Black to move")
				}
				return move.NewSupply(to), nil
			}
			pt, _, ok := types.PieceTypeFromLetter(letter)
			if ok && pt.HandEligible() {
				return move.NewDrop(pt, to), nil
			}
			if letter == 'B' {
				return move.NewDrop(types.Archer1, to), nil
			}
			if letter == 'C' {
				return move.NewDrop(types.Archer2, to), nil
			}
		}
	}

	from, to, err := parseFromTo(body)
	if err != nil {
		return 0, err
	}
	if pos.Grid[from] == types.NewPiece(types.Arrow, side) {
		return move.NewReturn(from, to), nil
	}
	return move.NewNormal(from, to, targetType(pos, to)), nil
}

func parseFromTo(s string) (types.Square, types.Square, error) {
	if len(s) != 4 {
		return types.NoSquare, types.NoSquare, notationErrf("move: expected 4-char from/to, got %q", s)
	}
	from, err := types.ParseSquare(s[:2])
	if err != nil {
		return types.NoSquare, types.NoSquare, notationErrf("move: invalid from square: %v", err)
	}
	to, err := types.ParseSquare(s[2:])
	if err != nil {
		return types.NoSquare, types.NoSquare, notationErrf("move: invalid to square: %v", err)
	}
	return from, to, nil
}

func targetType(pos *position.Position, sq types.Square) types.PieceType {
	p := pos.Grid[sq]
	if p == types.NoPiece {
		return types.NoPieceType
	}
	return p.Type()
}

// FormatMove renders m back into its canonical string in pos's context
// (the mover is pos.SideToMove, i.e. m must not yet have been applied).
func FormatMove(pos *position.Position, m move.Move) string {
	if m.IsBareDemise() {
		return "D"
	}

	side := pos.SideToMove
	var body string
	switch m.Kind() {
	case move.Normal, move.Return:
		body = m.From().String() + m.To().String()
	case move.Shoot:
		body = m.From().String() + m.To().String() + "S"
	case move.Drop:
		body = m.To().String() + string(m.DropPiece().Letter())
	case move.Supply:
		letter := byte('R')
		if side == types.White {
			letter = 'r'
		}
		body = m.To().String() + string(letter)
	}
	if m.IsDemise() {
		body += "D"
	}
	return body
}

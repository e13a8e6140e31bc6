// Package umi exposes the CORE's primitives as plain Go methods on a
// Session type (§6): the UMI command protocol's behavior without any
// tokenizing loop or stdout formatting — that belongs to the external
// interactive frontend and the HTTP adapter, both out of CORE scope (§1).
// cmd/alex-umi is a thin stdin/stdout wrapper around this package, kept
// separate so the primitives themselves stay usable by any other
// collaborator (the HTTP adapter's three endpoints are the GetMfen, SetMfen
// and SubmitMove methods below, and its separate bestmove endpoint is the
// BestMove function).
package umi

import (
	"fmt"
	"time"

	"github.com/KEY271/alex/internal/mfen"
	"github.com/KEY271/alex/internal/move"
	"github.com/KEY271/alex/internal/movegen"
	"github.com/KEY271/alex/internal/position"
	"github.com/KEY271/alex/internal/search"
)

// Session holds the single shared Position a UMI frontend or HTTP adapter
// drives. The spec's concurrency model (§5) requires external callers to
// serialize access — Session itself does no internal locking.
type Session struct {
	pos *position.Position
}

// NewSession returns a Session set up at the starting position.
func NewSession() *Session {
	s := &Session{}
	s.NewGame()
	return s
}

// Handshake responds to the "umi" command.
func (s *Session) Handshake() string { return "umiok" }

// IsReady responds to the "isready" command.
func (s *Session) IsReady() string { return "readyok" }

// NewGame resets the session to the starting position, discarding any
// in-progress game. There is no search memoization to clear (Non-goals:
// no transposition table), so this is the whole of "uminewgame".
func (s *Session) NewGame() {
	pos, err := mfen.Parse(mfen.StartMfen)
	if err != nil {
		panic("umi: starting position failed to parse: " + err.Error())
	}
	s.pos = pos
}

// SetPositionStart sets up the starting position, then applies moves in
// order. A malformed or illegal move aborts and returns a descriptive
// error (§7); the moves are applied to a fresh position that replaces the
// session's only once all of them succeed, so on error s keeps its
// previous position.
func (s *Session) SetPositionStart(moves []string) error {
	pos, err := mfen.Parse(mfen.StartMfen)
	if err != nil {
		return err
	}
	return s.setPosition(pos, moves)
}

// SetPositionMfen parses mfenFields as a full mfen string, then applies
// moves in order.
func (s *Session) SetPositionMfen(mfenFields string, moves []string) error {
	pos, err := mfen.Parse(mfenFields)
	if err != nil {
		return err
	}
	return s.setPosition(pos, moves)
}

func (s *Session) setPosition(pos *position.Position, moves []string) error {
	for _, ms := range moves {
		m, err := mfen.ParseMove(pos, ms)
		if err != nil {
			return err
		}
		if !pos.IsPseudoLegal(m) {
			return fmt.Errorf("umi: illegal move %q", ms)
		}
		pos.DoMove(m)
	}
	s.pos = pos
	return nil
}

// GoInfo is one "info depth ... score cp ..." line's content, emitted once
// per completed iterative-deepening depth.
type GoInfo struct {
	Depth int
	Score int32
}

// GoResult is the outcome of a "go <seconds>" search: an Info line per
// depth completed, and either a best move string or "resign" when no
// legal move existed at all (§4.7 failure semantics).
type GoResult struct {
	Info    []GoInfo
	BestMfn string // "resign" or the move's mfen notation
}

// Go runs the search for seconds and reports the result. Non-goals
// excludes true concurrent depth-by-depth streaming (§1: no
// multithreading); Info is back-filled from the single completed Result
// iterative deepening returns, reporting every depth from 1 up to the one
// actually reached at the same final score — a caller driving a live
// "info depth N" stream per iteration should call search.Search directly
// and adapt its own loop, since this package only wraps the one-shot
// terminal outcome (§4.7 "Terminal reporting").
func (s *Session) Go(seconds float64) GoResult {
	res := search.Search(s.pos, time.Duration(seconds*float64(time.Second)))
	if !res.Found {
		return GoResult{BestMfn: "resign"}
	}

	info := make([]GoInfo, res.Depth)
	for d := 1; d <= res.Depth; d++ {
		info[d-1] = GoInfo{Depth: d, Score: res.Score}
	}

	return GoResult{
		Info:    info,
		BestMfn: mfen.FormatMove(s.pos, res.Move),
	}
}

// Perft counts legal leaves at depth. debug additionally returns a
// per-root-move breakdown ("perft <depth> debug", §6).
func (s *Session) Perft(depth int, debug bool) (uint64, []movegen.DivideEntry) {
	if !debug {
		return movegen.Perft(s.pos, depth), nil
	}
	entries := movegen.PerftDivide(s.pos, depth)
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	return total, entries
}

// GetMfen returns the current position's mfen string — the HTTP adapter's
// "read board state" endpoint.
func (s *Session) GetMfen() string {
	return mfen.Format(s.pos)
}

// SetMfen replaces the session's position wholesale — the HTTP adapter's
// "replace board state" endpoint.
func (s *Session) SetMfen(mfenFields string) error {
	pos, err := mfen.Parse(mfenFields)
	if err != nil {
		return err
	}
	s.pos = pos
	return nil
}

// SubmitMove applies a single move if pseudo-legal, rejecting it
// (unmodified state) otherwise — the HTTP adapter's "submit a move"
// endpoint.
func (s *Session) SubmitMove(moveStr string) error {
	m, err := mfen.ParseMove(s.pos, moveStr)
	if err != nil {
		return err
	}
	if !s.pos.IsPseudoLegal(m) {
		return fmt.Errorf("umi: illegal move %q", moveStr)
	}
	s.pos.DoMove(m)
	return nil
}

// BestMoveResponse is the HTTP adapter's "bestmove" endpoint response
// shape: { mfen: <move-or-"resign">, depth, value }.
type BestMoveResponse struct {
	Mfen  string `json:"mfen"`
	Depth int    `json:"depth"`
	Value int32  `json:"value"`
}

// BestMove runs the engine on mfenFields (a caller-supplied position, not
// the session's own) and returns the best move without mutating the
// session — the HTTP adapter's dedicated "bestmove" endpoint.
func BestMove(mfenFields string, seconds float64) (BestMoveResponse, error) {
	pos, err := mfen.Parse(mfenFields)
	if err != nil {
		return BestMoveResponse{}, err
	}
	res := search.Search(pos, time.Duration(seconds*float64(time.Second)))
	if !res.Found {
		return BestMoveResponse{Mfen: "resign", Depth: res.Depth}, nil
	}
	return BestMoveResponse{
		Mfen:  mfen.FormatMove(pos, res.Move),
		Depth: res.Depth,
		Value: res.Score,
	}, nil
}

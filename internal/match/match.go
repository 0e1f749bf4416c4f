// Package match plays one game between two SearchConfigs: alternate
// side to move, ask the side on the move for its best move, make it,
// and check for termination after every ply.
package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/wizardbeard/chessevolve/internal/board"
	"github.com/wizardbeard/chessevolve/internal/config"
	"github.com/wizardbeard/chessevolve/internal/search"
)

// Result is the outcome of a completed match from White's point of
// view.
type Result int

const (
	Draw Result = iota
	WhiteWin
	BlackWin
)

func (r Result) String() string {
	switch r {
	case WhiteWin:
		return "1-0"
	case BlackWin:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

// ErrIllegalMoveFromEngine reports the fatal condition where the
// Searcher returned a move that either isn't in the legal move list,
// or that the Board Adapter itself rejects.
var ErrIllegalMoveFromEngine = errors.New("match: illegal move returned by searcher")

// DefaultMoveCap is the default 400-ply cap on a single game.
const DefaultMoveCap = 400

// Outcome is the completed record of one game: the move list, result
// and termination reason, minus the round/individual IDs a
// Tournament Controller adds when it persists this.
type Outcome struct {
	Moves       []board.Move
	Result      Result
	Termination string
}

// Play runs one game between white and black starting from startFEN
// (board.InitialPositionFen if empty), capped at moveCap plies
// (DefaultMoveCap if zero). Any Searcher invariant violation is
// returned as an error, never silently adjudicated. ctx is passed
// through to every move's Searcher so a Tournament Controller can
// abandon a hung game without leaking its goroutine.
func Play(ctx context.Context, white, black config.SearchConfig, startFEN string, moveCap int) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("match: %w", err)
	}
	if startFEN == "" {
		startFEN = board.InitialPositionFen
	}
	if moveCap <= 0 {
		moveCap = DefaultMoveCap
	}

	startPos, err := board.NewPositionFromFEN(startFEN)
	if err != nil {
		return Outcome{}, fmt.Errorf("match: bad starting position: %w", err)
	}

	var history = []board.Position{startPos}
	var moves []board.Move
	var child board.Position

	for ply := 0; ; ply++ {
		var current = &history[len(history)-1]
		var status = board.IsGameOver(current, history)
		if status.Reason != board.Ongoing {
			return Outcome{Moves: moves, Result: resultFor(status), Termination: status.Reason.String()}, nil
		}
		if ply >= moveCap {
			return Outcome{Moves: moves, Result: Draw, Termination: "move_cap"}, nil
		}
		if err := ctx.Err(); err != nil {
			return Outcome{}, fmt.Errorf("match: %w", err)
		}

		var cfg = black
		if current.WhiteMove {
			cfg = white
		}

		var s = search.New(cfg, history)
		move, _, ok := s.BestMove(ctx, current)
		if !ok {
			return Outcome{}, fmt.Errorf("%w: searcher returned no move with legal moves available", ErrIllegalMoveFromEngine)
		}
		if !isLegal(current, move) {
			return Outcome{}, fmt.Errorf("%w: %v is not a legal move", ErrIllegalMoveFromEngine, move)
		}
		if !current.MakeMove(move, &child) {
			return Outcome{}, fmt.Errorf("%w: %v rejected by MakeMove", ErrIllegalMoveFromEngine, move)
		}

		moves = append(moves, move)
		history = append(history, child)
	}
}

func isLegal(pos *board.Position, move board.Move) bool {
	for _, m := range pos.LegalMoves() {
		if m == move {
			return true
		}
	}
	return false
}

func resultFor(status board.GameStatus) Result {
	switch status.Reason {
	case board.Checkmate:
		if status.LoserWhite {
			return BlackWin
		}
		return WhiteWin
	default:
		return Draw
	}
}

// MoveStrings renders moves as long-algebraic UCI strings, the
// wire format matches.jsonl uses.
func MoveStrings(moves []board.Move) []string {
	var out = make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

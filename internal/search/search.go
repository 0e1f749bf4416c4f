// Package search implements a fixed-depth principal-variation
// search: negamax alpha-beta with null-move pruning, late-move
// reductions, futility pruning and quiescence. Time management,
// aspiration windows, reverse futility, probcut and singular
// extensions are left out — none of those are part of this system's
// fixed-depth, single-search contract.
package search

import (
	"context"
	"errors"

	"github.com/wizardbeard/chessevolve/internal/board"
	"github.com/wizardbeard/chessevolve/internal/config"
	"github.com/wizardbeard/chessevolve/internal/eval"
	"github.com/wizardbeard/chessevolve/internal/orderer"
)

// errSearchCancelled unwinds the recursive search when ctx is done.
// BestMove recovers it at the root the same way the engine's
// recoverFromSearchTimeout unwinds on its searchTimeout sentinel.
var errSearchCancelled = errors.New("search: cancelled")

// cancelCheckNodes is how often (in visited nodes) search polls ctx
// for cancellation. Checking every node would make ctx.Err() a
// meaningful fraction of the search's own cost.
const cancelCheckNodes = 2048

// Mate and Inf are the score bounds. Mate scores are ply-adjusted on
// return so shorter mates always score higher, the way
// valueMate/winIn/lossIn work in the engine this is derived from.
const (
	Mate = 30000
	Inf  = 31000
)

func winIn(ply int) int  { return Mate - ply }
func lossIn(ply int) int { return -Mate + ply }

const maxPly = 128

// Searcher runs one fixed-depth search for one SearchConfig. It owns
// no state beyond this struct, carries nothing between calls, and is
// safe to use from exactly one goroutine at a time, matching the
// single-threaded-per-match concurrency model.
type Searcher struct {
	cfg     config.SearchConfig
	orderer *orderer.Orderer
	stack   [maxPly + 1]board.Position
	history []board.Position

	ctx   context.Context
	nodes int64
}

// New builds a Searcher for cfg. history is the repetition history of
// the game so far (oldest first); the Searcher reads it but never
// mutates it.
func New(cfg config.SearchConfig, history []board.Position) *Searcher {
	return &Searcher{
		cfg:     cfg,
		orderer: orderer.New(cfg),
		history: history,
	}
}

// BestMove implements the best_move(pos, config) contract:
// the best move found at config.SearchDepth and its score from the
// side-to-move's perspective. ok is false only when pos has no legal
// move at all (checkmate or stalemate) — callers must check
// is_game_over before calling BestMove in that case.
//
// ctx is polled every cancelCheckNodes visited nodes; when it is
// done, BestMove returns whatever move had been proven best by the
// last completed child search rather than an error, so a cancelled
// search still yields a legal move for the Match Runner to play.
func (s *Searcher) BestMove(ctx context.Context, pos *board.Position) (best board.Move, score int, ok bool) {
	s.ctx = ctx
	s.nodes = 0
	s.orderer.Reset()
	var moves = pos.LegalMoves()
	if len(moves) == 0 {
		return board.MoveEmpty, 0, false
	}
	s.orderer.Order(moves, pos, 0, board.MoveEmpty)

	best = board.MoveEmpty
	var bestScore = -Inf
	var alpha, beta = -Inf, Inf
	var child = &s.stack[0]

	defer func() {
		if r := recover(); r != nil {
			if r != errSearchCancelled {
				panic(r)
			}
			if best == board.MoveEmpty {
				best = moves[0]
			}
			score = bestScore
			ok = true
		}
	}()

	for i, move := range moves {
		if !pos.MakeMove(move, child) {
			continue
		}
		var s1 int
		if i == 0 {
			s1 = -s.search(child, s.cfg.SearchDepth-1, -beta, -alpha, 1)
		} else {
			s1 = -s.search(child, s.cfg.SearchDepth-1, -alpha-1, -alpha, 1)
			if s1 > alpha {
				s1 = -s.search(child, s.cfg.SearchDepth-1, -beta, -alpha, 1)
			}
		}
		if s1 > bestScore || best == board.MoveEmpty {
			bestScore = s1
			best = move
		}
		if s1 > alpha {
			alpha = s1
		}
	}
	return best, bestScore, true
}

// checkCancelled panics with errSearchCancelled once every
// cancelCheckNodes nodes if ctx has been cancelled, unwinding the
// whole recursive search back to BestMove's recover.
func (s *Searcher) checkCancelled() {
	s.nodes++
	if s.ctx == nil || s.nodes%cancelCheckNodes != 0 {
		return
	}
	select {
	case <-s.ctx.Done():
		panic(errSearchCancelled)
	default:
	}
}

// search implements the negamax search(pos, config, depth, α, β,
// ply) node.
func (s *Searcher) search(pos *board.Position, depth, alpha, beta, ply int) int {
	s.checkCancelled()

	if ply >= maxPly {
		return eval.Evaluate(pos, s.cfg)
	}

	var isCheck = pos.IsCheck()

	if depth <= 0 {
		if s.cfg.EnableQuiescence {
			return s.quiescence(pos, alpha, beta, ply)
		}
		return eval.Evaluate(pos, s.cfg)
	}

	if s.isRepeatOrDrawn(pos, ply) {
		return 0
	}

	// Mate-distance pruning: no sequence below ply can beat a mate
	// already found shallower, so tighten the window before doing any
	// work — mirrors the engine's winIn/lossIn checks.
	if winIn(ply+1) <= alpha {
		return alpha
	}
	if lossIn(ply+2) >= beta && !isCheck {
		return beta
	}

	var staticEval = eval.Evaluate(pos, s.cfg)

	if s.cfg.EnableNMP && !isCheck && depth >= 3 && ply > 0 && !pawnOnlyEndgame(pos) {
		var child = &s.stack[ply]
		pos.MakeNullMove(child)
		var reduced = depth - 1 - s.cfg.NullMoveReduction
		var score = -s.search(child, reduced, -beta, -beta+1, ply+1)
		if score >= beta {
			return beta
		}
	}

	var moves = pos.LegalMoves()
	if len(moves) == 0 {
		if isCheck {
			return lossIn(ply)
		}
		return 0
	}
	s.orderer.Order(moves, pos, ply, board.MoveEmpty)

	var best = -Inf
	var child = &s.stack[ply]

	for i, move := range moves {
		if !pos.MakeMove(move, child) {
			continue
		}

		var childIsCheck = child.IsCheck()

		if s.cfg.EnableFutility && depth <= 2 && !isCheck && !childIsCheck &&
			!move.IsCaptureOrPromotion() && staticEval+s.cfg.FutilityMargin*depth < alpha {
			continue
		}

		var score int
		if i == 0 {
			score = -s.search(child, depth-1, -beta, -alpha, ply+1)
		} else if s.cfg.EnableLMR && depth >= 3 && i >= s.cfg.LMRThreshold &&
			!move.IsCaptureOrPromotion() && !childIsCheck {
			score = -s.search(child, depth-2, -alpha-1, -alpha, ply+1)
			if score > alpha {
				score = -s.search(child, depth-1, -alpha-1, -alpha, ply+1)
				if score > alpha && score < beta {
					score = -s.search(child, depth-1, -beta, -alpha, ply+1)
				}
			}
		} else {
			score = -s.search(child, depth-1, -alpha-1, -alpha, ply+1)
			if score > alpha && score < beta {
				score = -s.search(child, depth-1, -beta, -alpha, ply+1)
			}
		}

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.orderer.OnCutoff(move, ply, depth, pos.WhiteMove)
			return best
		}
	}

	return best
}

// quiescence implements the stand-pat-bounded quiescence contract:
// cutoff, then SEE-pruned captures searched to exhaustion.
func (s *Searcher) quiescence(pos *board.Position, alpha, beta, ply int) int {
	s.checkCancelled()

	if ply >= maxPly {
		return eval.Evaluate(pos, s.cfg)
	}

	var isCheck = pos.IsCheck()
	var standPat = eval.Evaluate(pos, s.cfg)
	var best = standPat
	if !isCheck {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	} else {
		best = -Inf
	}

	// In check, captures alone can miss the only moves that escape
	// check (blocks, king steps to a non-capturing square), so the
	// move set widens to every legal move, the same as the engine's
	// moveIteratorQS falls back to the full move list when in check.
	var buffer [board.MaxMoves]board.Move
	var moves []board.Move
	if isCheck {
		moves = pos.LegalMoves()
		s.orderer.Order(moves, pos, ply, board.MoveEmpty)
	} else {
		moves = board.GeneratePseudoLegalCaptures(buffer[:], pos)
		if s.cfg.EnableSEEOrdering {
			s.orderer.OrderCaptures(moves, pos)
		}
	}

	var child = &s.stack[ply]
	var hasLegalMove = false
	for _, move := range moves {
		if !isCheck && s.cfg.EnableSEEOrdering && !board.SeeGE(pos, move, 0) {
			continue
		}
		if !pos.MakeMove(move, child) {
			continue
		}
		hasLegalMove = true
		var score = -s.quiescence(child, -beta, -alpha, ply+1)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			if alpha >= beta {
				return alpha
			}
		}
	}
	if isCheck && !hasLegalMove {
		return lossIn(ply)
	}
	return best
}

func pawnOnlyEndgame(pos *board.Position) bool {
	var nonPawns = (pos.Knights | pos.Bishops | pos.Rooks | pos.Queens)
	return nonPawns == 0
}

// isRepeatOrDrawn reports a fifty-move draw, insufficient material, or
// a repetition of a position from the played-game history. Threefold
// repetition proper is a Match Runner concern driven off the Board
// Adapter; within one search tree even a first repetition against the
// played-game history is treated as a forced draw, the way the
// engine's isRepeat/isDraw checks do.
func (s *Searcher) isRepeatOrDrawn(pos *board.Position, ply int) bool {
	if pos.Rule50 >= 100 {
		return true
	}
	if pos.IsInsufficientMaterial() {
		return true
	}
	for i := len(s.history) - 1; i >= 0 && i >= len(s.history)-int(pos.Rule50)-1; i-- {
		if pos.SameBoard(&s.history[i]) {
			return true
		}
	}
	return false
}

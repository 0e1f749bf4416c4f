// Package orderer ranks pseudo-legal moves for the Searcher: a hash
// move first, SEE-ordered captures next, then killers and
// history-weighted quiet moves. Everything here is plain per-search
// state — no package-level mutable tables — so two concurrent
// Searchers (different Match Runner workers) never share state.
package orderer

import (
	"sort"

	"github.com/wizardbeard/chessevolve/internal/board"
	"github.com/wizardbeard/chessevolve/internal/config"
)

const maxPly = 128

// Orderer holds the per-search killer and history tables. One
// Orderer belongs to exactly one Searcher call; Reset clears it
// between root searches.
type Orderer struct {
	cfg config.SearchConfig

	killers [maxPly][2]board.Move
	// history[side][from][to], incremented by depth^2 on a cutoff
	// caused by a quiet move.
	history [2][64][64]int
}

func New(cfg config.SearchConfig) *Orderer {
	return &Orderer{cfg: cfg}
}

// Reset clears killer and history tables between root searches.
func (o *Orderer) Reset() {
	o.killers = [maxPly][2]board.Move{}
	o.history = [2][64][64]int{}
}

func sideIndex(white bool) int {
	if white {
		return 1
	}
	return 0
}

// OnCutoff records a beta cutoff caused by move at ply, ply depth,
// side to move white. Only non-capture, non-promotion moves update
// killer/history.
func (o *Orderer) OnCutoff(move board.Move, ply, depth int, white bool) {
	if move.IsCaptureOrPromotion() {
		return
	}
	if o.cfg.EnableKiller && ply < maxPly {
		if o.killers[ply][0] != move {
			o.killers[ply][1] = o.killers[ply][0]
			o.killers[ply][0] = move
		}
	}
	if o.cfg.EnableHistory {
		o.history[sideIndex(white)][move.From()][move.To()] += depth * depth
	}
}

// Order sorts moves in place into search order: hash move first (if
// present and in the list), captures by descending captureScore (SEE,
// or MVV-LVA when enable_see_ordering is off), killers,
// history-weighted quiets, then generation-order remainder.
func (o *Orderer) Order(moves []board.Move, pos *board.Position, ply int, hashMove board.Move) {
	const (
		hashScore    = 1 << 30
		captureBase  = 1 << 28
		killerScore1 = 1 << 27
		killerScore2 = 1<<27 - 1
	)

	var killer1, killer2 board.Move
	if ply < maxPly {
		killer1, killer2 = o.killers[ply][0], o.killers[ply][1]
	}
	var side = sideIndex(pos.WhiteMove)

	var keyed = make([]board.OrderedMove, len(moves))
	for i, m := range moves {
		var key int32
		switch {
		case m == hashMove && hashMove != board.MoveEmpty:
			key = hashScore
		case m.IsCaptureOrPromotion():
			key = int32(captureBase + o.captureScore(pos, m))
		case m == killer1:
			key = killerScore1
		case m == killer2:
			key = killerScore2
		default:
			key = int32(o.history[side][m.From()][m.To()])
		}
		keyed[i] = board.OrderedMove{Move: m, Key: key}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].Key > keyed[j].Key
	})

	for i, km := range keyed {
		moves[i] = km.Move
	}
}

// OrderCaptures sorts a capture-only list (used by quiescence) by
// descending SEE.
func (o *Orderer) OrderCaptures(moves []board.Move, pos *board.Position) {
	sort.SliceStable(moves, func(i, j int) bool {
		return board.StaticExchangeEval(pos, moves[i]) > board.StaticExchangeEval(pos, moves[j])
	})
}

// captureScore scores a capture or promotion move for ordering
// purposes: the full static-exchange value when enable_see_ordering
// is set, otherwise a cheap MVV-LVA estimate (victim value minus
// attacker value) so the gene actually changes main-search move
// ordering rather than only quiescence's.
func (o *Orderer) captureScore(pos *board.Position, m board.Move) int {
	if o.cfg.EnableSEEOrdering {
		return board.StaticExchangeEval(pos, m)
	}
	return mvvLvaValue(m.CapturedPiece())*8 - mvvLvaValue(m.MovingPiece())
}

var pieceValue = [7]int{0, 100, 320, 330, 500, 900, 0}

func mvvLvaValue(piece int) int {
	if piece < 0 || piece >= len(pieceValue) {
		return 0
	}
	return pieceValue[piece]
}

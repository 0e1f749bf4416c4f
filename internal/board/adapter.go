package board

// GameOverReason enumerates is_game_over outcomes.
type GameOverReason int

const (
	Ongoing GameOverReason = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
)

func (r GameOverReason) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveRule:
		return "fifty_move_rule"
	case ThreefoldRepetition:
		return "threefold_repetition"
	case InsufficientMaterial:
		return "insufficient_material"
	default:
		return "unknown"
	}
}

// GameStatus is the result of IsGameOver: the reason and, for mate,
// which side lost.
type GameStatus struct {
	Reason     GameOverReason
	LoserWhite bool
}

// IsGameOver implements the is_game_over query against a
// position plus the repetition history required to detect
// threefold. history must contain every position played so far in
// the current game, oldest first, p included as the last entry.
func IsGameOver(p *Position, history []Position) GameStatus {
	if len(p.LegalMoves()) == 0 {
		if p.IsCheck() {
			return GameStatus{Reason: Checkmate, LoserWhite: p.WhiteMove}
		}
		return GameStatus{Reason: Stalemate}
	}
	if p.Rule50 >= 100 {
		return GameStatus{Reason: FiftyMoveRule}
	}
	if p.IsInsufficientMaterial() {
		return GameStatus{Reason: InsufficientMaterial}
	}
	if countRepetitions(p, history) >= 3 {
		return GameStatus{Reason: ThreefoldRepetition}
	}
	return GameStatus{Reason: Ongoing}
}

func countRepetitions(p *Position, history []Position) int {
	var count = 0
	for i := range history {
		if p.SameBoard(&history[i]) {
			count++
		}
	}
	return count
}

package eval

import "github.com/wizardbeard/chessevolve/internal/board"

// gamePhase computes phase = clamp((sum of
// piece_phase_values) * 256 / 24, 0, 256). 256 means full opening
// material is still on the board, 0 means bare kings.
func gamePhase(p *board.Position) int {
	var raw = piecePhaseValue[board.Knight]*board.PopCount(p.Knights) +
		piecePhaseValue[board.Bishop]*board.PopCount(p.Bishops) +
		piecePhaseValue[board.Rook]*board.PopCount(p.Rooks) +
		piecePhaseValue[board.Queen]*board.PopCount(p.Queens)
	var phase = raw * 256 / totalPhase
	if phase > 256 {
		phase = 256
	}
	if phase < 0 {
		phase = 0
	}
	return phase
}

package eval

import "github.com/wizardbeard/chessevolve/internal/board"

// pieceValue is the material component of material_value[role], in
// centipawns.
var pieceValue = [board.King + 1]int{
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   0,
}

// piecePhaseValue assigns the phase weights names
// (Pawn=0, Knight=1, Bishop=1, Rook=2, Queen=4); totalPhase (24) is
// their sum across both sides at the start of the game.
var piecePhaseValue = [board.King + 1]int{
	board.Pawn:   0,
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
	board.King:   0,
}

const totalPhase = 24

// pst[role][square] holds the Score (middlegame/endgame) bonus for a
// white piece of that role sitting on square. Black's PST is the
// same table mirrored vertically.
var pst [board.King + 1][64]Score

func init() {
	for sq := 0; sq < 64; sq++ {
		file := board.File(sq)
		rank := board.Rank(sq)
		centerFile := centerDistance(file)
		centerRank := centerDistance(rank)
		centrality := 6 - (centerFile + centerRank) // 0..6, higher = more central

		pst[board.Knight][sq] = Score{Mg: 4 * centrality, Eg: 3 * centrality}
		pst[board.Bishop][sq] = Score{Mg: 3 * centrality, Eg: 3 * centrality}
		pst[board.Queen][sq] = Score{Mg: 1 * centrality, Eg: 2 * centrality}

		// Rooks care about files, not centrality as such.
		pst[board.Rook][sq] = Score{Mg: 0, Eg: 2 * centrality}

		// Pawns: advancing is worth more in the endgame; slight
		// central bonus in the middlegame.
		pst[board.Pawn][sq] = Score{Mg: 2 * centerFileBonus(file), Eg: 6 * rank}

		// King: corners in the middlegame (castled safety), center in
		// the endgame (activity).
		kingCentrality := centrality
		pst[board.King][sq] = Score{Mg: -3 * kingCentrality, Eg: 4 * kingCentrality}
	}
}

// centerDistance returns how far coord (a file or rank index, 0..7)
// sits from the board's central edge: 0 for the d/e files or 4th/5th
// ranks, 3 for the a/h files or 1st/8th ranks.
func centerDistance(coord int) int {
	edge := coord
	if 7-coord < edge {
		edge = 7 - coord
	}
	return 3 - edge
}

func centerFileBonus(file int) int {
	return 4 - centerDistance(file)
}

// pstScore returns the PST contribution for a piece of pieceType,
// colour white, sitting on sq, as a positive bonus for that piece's own
// side; for Black pieces the caller negates it to get White's
// perspective.
func pstScore(pieceType, sq int, white bool) Score {
	if white {
		return pst[pieceType][sq]
	}
	return pst[pieceType][board.FlipSquare(sq)]
}

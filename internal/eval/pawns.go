package eval

import "github.com/wizardbeard/chessevolve/internal/board"

// fileMask and adjacentFileMask are small lookup tables built once in
// init so the pawn-structure heuristic does not recompute masks on
// every call.
var fileMask [8]uint64
var adjacentFileMask [8]uint64

func init() {
	for f := 0; f < 8; f++ {
		var m uint64
		for r := 0; r < 8; r++ {
			m |= uint64(1) << uint(board.MakeSquare(f, r))
		}
		fileMask[f] = m
	}
	for f := 0; f < 8; f++ {
		var m uint64
		if f > 0 {
			m |= fileMask[f-1]
		}
		if f < 7 {
			m |= fileMask[f+1]
		}
		adjacentFileMask[f] = m
	}
}

// aheadMask returns the squares strictly ahead of rank r (towards
// promotion) on file f, from white's point of view when white is
// true.
func aheadMask(f, r int, white bool) uint64 {
	var m uint64
	if white {
		for rr := r + 1; rr < 8; rr++ {
			m |= uint64(1) << uint(board.MakeSquare(f, rr))
		}
	} else {
		for rr := r - 1; rr >= 0; rr-- {
			m |= uint64(1) << uint(board.MakeSquare(f, rr))
		}
	}
	return m
}

// pawnStructure scores pawn structure:
// doubled, isolated, backward, passed, chains and candidate passers,
// scored per side and returned as White's score minus Black's.
func pawnStructure(p *board.Position) int {
	return pawnStructureSide(p, true) - pawnStructureSide(p, false)
}

func pawnStructureSide(p *board.Position, white bool) int {
	var own, enemy uint64
	if white {
		own = p.Pawns & p.White
		enemy = p.Pawns & p.Black
	} else {
		own = p.Pawns & p.Black
		enemy = p.Pawns & p.White
	}

	var score = 0

	var countByFile [8]int
	for x := own; x != 0; x &= x - 1 {
		countByFile[board.File(board.FirstOne(x))]++
	}

	for sq := board.SquareA1; sq <= board.SquareH8; sq++ {
		if own&(uint64(1)<<uint(sq)) == 0 {
			continue
		}
		var f = board.File(sq)
		var r = board.Rank(sq)

		if countByFile[f] > 1 {
			score -= 15
		}
		if (f == 0 || countByFile[f-1] == 0) && (f == 7 || countByFile[f+1] == 0) {
			score -= 20
		}

		var aheadAdjacentEnemy = aheadMask(f, r, white) & adjacentFileMask[f] & enemy
		var aheadFileEnemy = aheadMask(f, r, white) & fileMask[f] & enemy
		var passed = aheadFileEnemy == 0 && aheadAdjacentEnemy == 0
		if passed {
			var advance = r
			if !white {
				advance = 7 - r
			}
			score += 20 * advance
		} else if aheadFileEnemy == 0 {
			// No pawn directly ahead on this file: a candidate passer
			// if friendly support on adjacent files is not outnumbered.
			var friendlySupport = board.PopCount(adjacentFileMask[f] & own)
			var enemyBlockers = board.PopCount(aheadAdjacentEnemy)
			if friendlySupport >= enemyBlockers {
				score += 10
			}
		}

		// Chain: defended by another friendly pawn diagonally behind.
		var defenders uint64
		if white {
			defenders = board.PawnAttacks(sq, false) & own
		} else {
			defenders = board.PawnAttacks(sq, true) & own
		}
		if defenders != 0 {
			score += 6
		}

		// Backward: no friendly pawn support on adjacent files at or
		// behind this rank, and the advance square is covered by an
		// enemy pawn.
		var behindOwnAdjacent = adjacentFileMask[f] & own &^ aheadMask(f, r, white)
		var advanceSq int
		if white {
			advanceSq = sq + 8
		} else {
			advanceSq = sq - 8
		}
		if behindOwnAdjacent == 0 && advanceSq >= 0 && advanceSq < 64 &&
			board.PawnAttacks(advanceSq, !white)&enemy != 0 && !passed {
			score -= 10
		}
	}

	return score
}

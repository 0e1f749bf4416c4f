package eval

import "github.com/wizardbeard/chessevolve/internal/board"

var mobilityBonus = [board.King + 1]int{
	board.Knight: 4,
	board.Bishop: 5,
	board.Rook:   2,
	board.Queen:  1,
}

// mobility scores piece mobility: for each
// non-pawn, non-king piece sum legal destination squares, weighted by
// role, White minus Black.
func mobility(p *board.Position) int {
	return mobilitySide(p, true) - mobilitySide(p, false)
}

func mobilitySide(p *board.Position, white bool) int {
	var occ = p.White | p.Black
	var own = p.PiecesByColor(white)
	var score = 0

	for x := p.Knights & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		score += mobilityBonus[board.Knight] * board.PopCount(board.KnightAttacks[sq] &^ own)
	}
	for x := p.Bishops & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		score += mobilityBonus[board.Bishop] * board.PopCount(board.BishopAttacks(sq, occ) &^ own)
	}
	for x := p.Rooks & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		score += mobilityBonus[board.Rook] * board.PopCount(board.RookAttacks(sq, occ) &^ own)
	}
	for x := p.Queens & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		score += mobilityBonus[board.Queen] * board.PopCount(board.QueenAttacks(sq, occ) &^ own)
	}
	return score
}

var kingZoneAttackerWeight = [board.King + 1]int{
	board.Pawn:   0,
	board.Knight: 2,
	board.Bishop: 2,
	board.Rook:   3,
	board.Queen:  5,
	board.King:   0,
}

// kingSafety scores king safety: pawn
// shield bonus minus open-file penalty minus weighted king-zone
// attackers, White minus Black.
func kingSafety(p *board.Position) int {
	return kingSafetySide(p, true) - kingSafetySide(p, false)
}

func kingSafetySide(p *board.Position, white bool) int {
	var own = p.PiecesByColor(white)
	var enemy = p.PiecesByColor(!white)
	var kingSq = board.FirstOne(p.Kings & own)
	var kf = board.File(kingSq)
	var kr = board.Rank(kingSq)

	var score = 0

	var shieldRank = kr + 1
	if !white {
		shieldRank = kr - 1
	}
	if shieldRank >= 0 && shieldRank < 8 {
		for f := kf - 1; f <= kf+1; f++ {
			if f < 0 || f > 7 {
				continue
			}
			var sq = board.MakeSquare(f, shieldRank)
			if (p.Pawns&own)&(uint64(1)<<uint(sq)) != 0 {
				score += 10
			}
		}
	}

	var ownPawnsOnFile = fileMask[kf] & p.Pawns & own
	var enemyPawnsOnFile = fileMask[kf] & p.Pawns & enemy
	if ownPawnsOnFile == 0 {
		if enemyPawnsOnFile == 0 {
			score -= 50
		} else {
			score -= 25
		}
	}

	var zone = kingZone(kingSq)
	for x := zone; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var attackers = p.AttackersOf(sq, !white)
		for a := attackers; a != 0; a &= a - 1 {
			var from = board.FirstOne(a)
			var role = p.WhatPiece(from)
			score -= kingZoneAttackerWeight[role]
		}
	}
	return score
}

func kingZone(kingSq int) uint64 {
	var f = board.File(kingSq)
	var r = board.Rank(kingSq)
	var zone uint64
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			var nf, nr = f+df, r+dr
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				continue
			}
			zone |= uint64(1) << uint(board.MakeSquare(nf, nr))
		}
	}
	return zone
}

// piecePlacement scores piece placement:
// rook file/rank bonuses, bishop pair, bad bishops and knight
// outposts, White minus Black.
func piecePlacement(p *board.Position) int {
	return piecePlacementSide(p, true) - piecePlacementSide(p, false)
}

func piecePlacementSide(p *board.Position, white bool) int {
	var own = p.PiecesByColor(white)
	var enemy = p.PiecesByColor(!white)
	var ownPawns = p.Pawns & own
	var enemyPawns = p.Pawns & enemy
	var score = 0

	for x := p.Rooks & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var f = board.File(sq)
		var r = board.Rank(sq)
		var filePawns = fileMask[f] & p.Pawns
		switch {
		case filePawns == 0:
			score += 15
		case filePawns&ownPawns == 0:
			score += 10
		}
		var homeRank, seventhRank = board.Rank1, board.Rank7
		if !white {
			homeRank, seventhRank = board.Rank8, board.Rank2
		}
		if r == seventhRank || r == homeRank {
			score += 20
		}
	}

	if board.PopCount(p.Bishops&own) >= 2 {
		score += 30
	}

	for x := p.Bishops & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var dark = board.IsDarkSquare(sq)
		var fixedPawns = 0
		for y := ownPawns; y != 0; y &= y - 1 {
			var psq = board.FirstOne(y)
			if board.IsDarkSquare(psq) == dark {
				fixedPawns++
			}
		}
		score -= 10 * fixedPawns / 2
	}

	for x := p.Knights & own; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var r = board.Rank(sq)
		var inOutpostRanks bool
		if white {
			inOutpostRanks = r >= board.Rank4 && r <= board.Rank6
		} else {
			inOutpostRanks = r >= board.Rank3 && r <= board.Rank5
		}
		if !inOutpostRanks {
			continue
		}
		var defended = board.PawnAttacks(sq, !white)&ownPawns != 0
		var attackedByEnemyPawn = board.PawnAttacks(sq, white)&enemyPawns != 0
		if defended && !attackedByEnemyPawn {
			score += 20
		}
	}

	return score
}

// development scores opening development, only
// active in the opening (phase > 200): rewards developed minors,
// penalizes early queen moves before both knights are out. This
// package tracks no move history, so "before both knights developed"
// is approximated from the current position: a queen that has left
// its home square while a knight is still on its home square.
func development(p *board.Position, phase int) int {
	if phase <= 200 {
		return 0
	}
	return developmentSide(p, true) - developmentSide(p, false)
}

func developmentSide(p *board.Position, white bool) int {
	var own = p.PiecesByColor(white)
	var homeRank = board.Rank1
	if !white {
		homeRank = board.Rank8
	}
	var knightHome = [2]int{board.MakeSquare(board.FileB, homeRank), board.MakeSquare(board.FileG, homeRank)}
	var bishopHome = [2]int{board.MakeSquare(board.FileC, homeRank), board.MakeSquare(board.FileF, homeRank)}
	var queenHome = board.MakeSquare(board.FileD, homeRank)

	var score = 0
	var knightsDeveloped = 0
	for _, sq := range knightHome {
		if p.Knights&own&(uint64(1)<<uint(sq)) == 0 {
			score += 10
			knightsDeveloped++
		}
	}
	for _, sq := range bishopHome {
		if p.Bishops&own&(uint64(1)<<uint(sq)) == 0 {
			score += 10
		}
	}
	if p.Queens&own&(uint64(1)<<uint(queenHome)) == 0 && knightsDeveloped < 2 {
		score -= 20
	}
	return score
}

// threats scores hanging enemy pieces: enemy pieces
// attacked by an equal-or-lesser attacker and left undefended score
// 0.25 of their value, White minus Black.
func threats(p *board.Position) int {
	return threatsSide(p, true) - threatsSide(p, false)
}

func threatsSide(p *board.Position, white bool) int {
	var enemy = p.PiecesByColor(!white)
	var score = 0

	for x := enemy; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var targetRole = p.WhatPiece(sq)
		var attackers = p.AttackersOf(sq, white)
		if attackers == 0 {
			continue
		}
		var cheapestValue = -1
		for a := attackers; a != 0; a &= a - 1 {
			var value = pieceValue[p.WhatPiece(board.FirstOne(a))]
			if cheapestValue < 0 || value < cheapestValue {
				cheapestValue = value
			}
		}
		if cheapestValue > pieceValue[targetRole] {
			continue
		}
		var defended = p.AttackersOf(sq, !white) != 0
		if !defended {
			score += pieceValue[targetRole] / 4
		}
	}
	return score
}

// space scores space control: squares on the
// side's own far ranks attacked by own pawns but not enemy pawns,
// doubled.
func space(p *board.Position) int {
	return spaceSide(p, true) - spaceSide(p, false)
}

func spaceSide(p *board.Position, white bool) int {
	var ownPawns, enemyPawns uint64
	if white {
		ownPawns = p.Pawns & p.White
		enemyPawns = p.Pawns & p.Black
	} else {
		ownPawns = p.Pawns & p.Black
		enemyPawns = p.Pawns & p.White
	}
	var ownAttacks, enemyAttacks uint64
	if white {
		ownAttacks = board.AllWhitePawnAttacks(ownPawns)
		enemyAttacks = board.AllBlackPawnAttacks(enemyPawns)
	} else {
		ownAttacks = board.AllBlackPawnAttacks(ownPawns)
		enemyAttacks = board.AllWhitePawnAttacks(enemyPawns)
	}
	var zone uint64
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			var inZone bool
			if white {
				inZone = r >= board.Rank5
			} else {
				inZone = r <= board.Rank4
			}
			if inZone {
				zone |= uint64(1) << uint(board.MakeSquare(f, r))
			}
		}
	}
	var squares = ownAttacks &^ enemyAttacks & zone
	return 2 * board.PopCount(squares)
}

// tempo rewards the side to move: +10 for the side
// to move.
func tempo(p *board.Position) int {
	if p.WhiteMove {
		return 10
	}
	return -10
}

package board

var (
	f1g1Mask = SquareMaskConst(SquareF1) | SquareMaskConst(SquareG1)
	b1d1Mask = SquareMaskConst(SquareB1) | SquareMaskConst(SquareC1) | SquareMaskConst(SquareD1)
	f8g8Mask = SquareMaskConst(SquareF8) | SquareMaskConst(SquareG8)
	b8d8Mask = SquareMaskConst(SquareB8) | SquareMaskConst(SquareC8) | SquareMaskConst(SquareD8)
)

// SquareMaskConst is a compile-time single-bit mask, used only to
// build the castling-clearance constants above (SquareMask itself is
// populated by bitboard.go's init, so it cannot be used in a const
// expression).
func SquareMaskConst(sq int) uint64 { return uint64(1) << uint(sq) }

var (
	whiteKingSideCastle  = MakeMove(SquareE1, SquareG1, King, Empty)
	whiteQueenSideCastle = MakeMove(SquareE1, SquareC1, King, Empty)
	blackKingSideCastle  = MakeMove(SquareE8, SquareG8, King, Empty)
	blackQueenSideCastle = MakeMove(SquareE8, SquareC8, King, Empty)
)

func addPromotions(ml []Move, move Move) int {
	ml[0] = move ^ Move(Queen<<18)
	ml[1] = move ^ Move(Rook<<18)
	ml[2] = move ^ Move(Bishop<<18)
	ml[3] = move ^ Move(Knight<<18)
	return 4
}

// GeneratePseudoLegalMoves fills ml with every move for the side to
// move, without verifying that the mover's own king stays safe
// (MakeMove rejects those as pseudo-legal-only). It returns the
// populated prefix of ml.
func GeneratePseudoLegalMoves(ml []Move, p *Position) []Move {
	var count = 0
	var fromBB, toBB, ownPieces, oppPieces uint64
	var from, to int

	if p.WhiteMove {
		ownPieces, oppPieces = p.White, p.Black
	} else {
		ownPieces, oppPieces = p.Black, p.White
	}

	var target = ^ownPieces
	if p.Checkers != 0 {
		var kingSq = FirstOne(p.Kings & ownPieces)
		target = p.Checkers | betweenMask[FirstOne(p.Checkers)][kingSq]
	}

	var allPieces = p.White | p.Black

	if p.EpSquare != SquareNone {
		for fromBB = PawnAttacks(p.EpSquare, !p.WhiteMove) & p.Pawns & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			ml[count] = MakeMove(from, p.EpSquare, Pawn, Pawn)
			count++
		}
	}

	if p.WhiteMove {
		for fromBB = p.Pawns & ownPieces &^ Rank7Mask; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			if SquareMask[from+8]&allPieces == 0 {
				ml[count] = MakeMove(from, from+8, Pawn, Empty)
				count++
				if Rank(from) == Rank2 && SquareMask[from+16]&allPieces == 0 {
					ml[count] = MakeMove(from, from+16, Pawn, Empty)
					count++
				}
			}
			if File(from) > FileA && SquareMask[from+7]&oppPieces != 0 {
				ml[count] = MakeMove(from, from+7, Pawn, p.WhatPiece(from+7))
				count++
			}
			if File(from) < FileH && SquareMask[from+9]&oppPieces != 0 {
				ml[count] = MakeMove(from, from+9, Pawn, p.WhatPiece(from+9))
				count++
			}
		}
		for fromBB = p.Pawns & ownPieces & Rank7Mask; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			if SquareMask[from+8]&allPieces == 0 {
				count += addPromotions(ml[count:], MakeMove(from, from+8, Pawn, Empty))
			}
			if File(from) > FileA && SquareMask[from+7]&oppPieces != 0 {
				count += addPromotions(ml[count:], MakeMove(from, from+7, Pawn, p.WhatPiece(from+7)))
			}
			if File(from) < FileH && SquareMask[from+9]&oppPieces != 0 {
				count += addPromotions(ml[count:], MakeMove(from, from+9, Pawn, p.WhatPiece(from+9)))
			}
		}
	} else {
		for fromBB = p.Pawns & ownPieces &^ Rank2Mask; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			if SquareMask[from-8]&allPieces == 0 {
				ml[count] = MakeMove(from, from-8, Pawn, Empty)
				count++
				if Rank(from) == Rank7 && SquareMask[from-16]&allPieces == 0 {
					ml[count] = MakeMove(from, from-16, Pawn, Empty)
					count++
				}
			}
			if File(from) > FileA && SquareMask[from-9]&oppPieces != 0 {
				ml[count] = MakeMove(from, from-9, Pawn, p.WhatPiece(from-9))
				count++
			}
			if File(from) < FileH && SquareMask[from-7]&oppPieces != 0 {
				ml[count] = MakeMove(from, from-7, Pawn, p.WhatPiece(from-7))
				count++
			}
		}
		for fromBB = p.Pawns & ownPieces & Rank2Mask; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			if SquareMask[from-8]&allPieces == 0 {
				count += addPromotions(ml[count:], MakeMove(from, from-8, Pawn, Empty))
			}
			if File(from) > FileA && SquareMask[from-9]&oppPieces != 0 {
				count += addPromotions(ml[count:], MakeMove(from, from-9, Pawn, p.WhatPiece(from-9)))
			}
			if File(from) < FileH && SquareMask[from-7]&oppPieces != 0 {
				count += addPromotions(ml[count:], MakeMove(from, from-7, Pawn, p.WhatPiece(from-7)))
			}
		}
	}

	for fromBB = p.Knights & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = KnightAttacks[from] & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = MakeMove(from, to, Knight, p.WhatPiece(to))
			count++
		}
	}
	for fromBB = p.Bishops & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = BishopAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = MakeMove(from, to, Bishop, p.WhatPiece(to))
			count++
		}
	}
	for fromBB = p.Rooks & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = RookAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = MakeMove(from, to, Rook, p.WhatPiece(to))
			count++
		}
	}
	for fromBB = p.Queens & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = QueenAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = MakeMove(from, to, Queen, p.WhatPiece(to))
			count++
		}
	}

	from = FirstOne(p.Kings & ownPieces)
	for toBB = KingAttacks[from] &^ ownPieces; toBB != 0; toBB &= toBB - 1 {
		to = FirstOne(toBB)
		ml[count] = MakeMove(from, to, King, p.WhatPiece(to))
		count++
	}

	if p.WhiteMove {
		if p.CastleRights&WhiteKingSide != 0 && allPieces&f1g1Mask == 0 &&
			!p.isAttackedBySide(SquareE1, false) && !p.isAttackedBySide(SquareF1, false) {
			ml[count] = whiteKingSideCastle
			count++
		}
		if p.CastleRights&WhiteQueenSide != 0 && allPieces&b1d1Mask == 0 &&
			!p.isAttackedBySide(SquareE1, false) && !p.isAttackedBySide(SquareD1, false) {
			ml[count] = whiteQueenSideCastle
			count++
		}
	} else {
		if p.CastleRights&BlackKingSide != 0 && allPieces&f8g8Mask == 0 &&
			!p.isAttackedBySide(SquareE8, true) && !p.isAttackedBySide(SquareF8, true) {
			ml[count] = blackKingSideCastle
			count++
		}
		if p.CastleRights&BlackQueenSide != 0 && allPieces&b8d8Mask == 0 &&
			!p.isAttackedBySide(SquareE8, true) && !p.isAttackedBySide(SquareD8, true) {
			ml[count] = blackQueenSideCastle
			count++
		}
	}

	return ml[:count]
}

// GeneratePseudoLegalCaptures fills ml with captures and promotions
// only — the move set the Searcher's quiescence search iterates,
// ordered later by SEE. Check generation is not implemented: the
// tactical depth of quiescence comes from captures alone.
func GeneratePseudoLegalCaptures(ml []Move, p *Position) []Move {
	var count = 0
	var to int
	var toBB uint64
	var ownPieces, oppPieces uint64
	var from, promotion int

	if p.WhiteMove {
		ownPieces, oppPieces = p.White, p.Black
	} else {
		ownPieces, oppPieces = p.Black, p.White
	}
	var allPieces = p.White | p.Black
	var target = oppPieces

	if p.EpSquare != SquareNone {
		for fb := PawnAttacks(p.EpSquare, !p.WhiteMove) & p.Pawns & ownPieces; fb != 0; fb &= fb - 1 {
			from = FirstOne(fb)
			ml[count] = MakeMove(from, p.EpSquare, Pawn, Pawn)
			count++
		}
	}

	if p.WhiteMove {
		for fb := (AllBlackPawnAttacks(oppPieces) | Rank7Mask) & p.Pawns & p.White; fb != 0; fb &= fb - 1 {
			from = FirstOne(fb)
			promotion = let(Rank(from) == Rank7, Queen, Empty)
			if Rank(from) == Rank7 && SquareMask[from+8]&allPieces == 0 {
				ml[count] = MakePawnMove(from, from+8, Empty, promotion)
				count++
			}
			if File(from) > FileA && SquareMask[from+7]&oppPieces != 0 {
				ml[count] = MakePawnMove(from, from+7, p.WhatPiece(from+7), promotion)
				count++
			}
			if File(from) < FileH && SquareMask[from+9]&oppPieces != 0 {
				ml[count] = MakePawnMove(from, from+9, p.WhatPiece(from+9), promotion)
				count++
			}
		}
	} else {
		for fb := (AllWhitePawnAttacks(oppPieces) | Rank2Mask) & p.Pawns & p.Black; fb != 0; fb &= fb - 1 {
			from = FirstOne(fb)
			promotion = let(Rank(from) == Rank2, Queen, Empty)
			if Rank(from) == Rank2 && SquareMask[from-8]&allPieces == 0 {
				ml[count] = MakePawnMove(from, from-8, Empty, promotion)
				count++
			}
			if File(from) > FileA && SquareMask[from-9]&oppPieces != 0 {
				ml[count] = MakePawnMove(from, from-9, p.WhatPiece(from-9), promotion)
				count++
			}
			if File(from) < FileH && SquareMask[from-7]&oppPieces != 0 {
				ml[count] = MakePawnMove(from, from-7, p.WhatPiece(from-7), promotion)
				count++
			}
		}
	}

	for fb := p.Knights & ownPieces; fb != 0; fb &= fb - 1 {
		from = FirstOne(fb)
		for toBB = KnightAttacks[from] & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = MakeMove(from, to, Knight, p.WhatPiece(to))
			count++
		}
	}
	for fb := p.Bishops & ownPieces; fb != 0; fb &= fb - 1 {
		from = FirstOne(fb)
		for toBB = BishopAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = MakeMove(from, to, Bishop, p.WhatPiece(to))
			count++
		}
	}
	for fb := p.Rooks & ownPieces; fb != 0; fb &= fb - 1 {
		from = FirstOne(fb)
		for toBB = RookAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = MakeMove(from, to, Rook, p.WhatPiece(to))
			count++
		}
	}
	for fb := p.Queens & ownPieces; fb != 0; fb &= fb - 1 {
		from = FirstOne(fb)
		for toBB = QueenAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = MakeMove(from, to, Queen, p.WhatPiece(to))
			count++
		}
	}
	from = FirstOne(p.Kings & ownPieces)
	for toBB = KingAttacks[from] & target; toBB != 0; toBB &= toBB - 1 {
		to = FirstOne(toBB)
		ml[count] = MakeMove(from, to, King, p.WhatPiece(to))
		count++
	}

	return ml[:count]
}

// LegalMoves returns every fully legal move available to the side to
// move. Callers in the hot search path should prefer
// GeneratePseudoLegalMoves + MakeMove's legality check to avoid the
// extra make/unmake pass this does.
func (p *Position) LegalMoves() []Move {
	var buffer [MaxMoves]Move
	var child Position
	var result []Move
	for _, m := range GeneratePseudoLegalMoves(buffer[:], p) {
		if p.MakeMove(m, &child) {
			result = append(result, m)
		}
	}
	return result
}

package board

// Move packs from/to/moving-piece/captured-piece/promotion into a
// single int32, following a standard bit layout: bits 0-5 from,
// 6-11 to, 12-14 moving piece, 15-17 captured piece, 18-20 promotion.
type Move int32

const MoveEmpty Move = 0

// OrderedMove pairs a Move with a sort key assigned by the move
// orderer; the search and quiescence move iterators sort slices of
// this type in place rather than allocating a parallel key array.
type OrderedMove struct {
	Move Move
	Key  int32
}

func MakeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from ^ (to << 6) ^ (movingPiece << 12) ^ (capturedPiece << 15))
}

func MakePawnMove(from, to, capturedPiece, promotion int) Move {
	return Move(from ^ (to << 6) ^ (Pawn << 12) ^ (capturedPiece << 15) ^ (promotion << 18))
}

func (m Move) From() int          { return int(m & 63) }
func (m Move) To() int            { return int((m >> 6) & 63) }
func (m Move) MovingPiece() int   { return int((m >> 12) & 7) }
func (m Move) CapturedPiece() int { return int((m >> 15) & 7) }
func (m Move) Promotion() int     { return int((m >> 18) & 7) }

func (m Move) IsCaptureOrPromotion() bool {
	return m.CapturedPiece() != Empty || m.Promotion() != Empty
}

// String renders a move in long-algebraic UCI form, e.g. "e2e4",
// "e7e8q". This is the wire format requires for persisted
// matches.
func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}

// ParseMoveLAN finds the legal move in p matching a long-algebraic
// string, used when replaying a persisted move list.
func ParseMoveLAN(p *Position, lan string) (Move, bool) {
	for _, m := range p.LegalMoves() {
		if m.String() == lan {
			return m, true
		}
	}
	return MoveEmpty, false
}

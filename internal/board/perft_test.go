package board

import "testing"

// Perft counts leaf nodes at depth from p, the standard legal-move
// generator correctness check.
func Perft(p *Position, depth int) int {
	if depth == 0 {
		return 1
	}
	var buffer [MaxMoves]Move
	var child Position
	var result = 0
	for _, move := range GeneratePseudoLegalMoves(buffer[:], p) {
		if p.MakeMove(move, &child) {
			if depth > 1 {
				result += Perft(&child, depth-1)
			} else {
				result++
			}
		}
	}
	return result
}

func TestPerft(t *testing.T) {
	var tests = []struct {
		fen   string
		depth int
		nodes int
	}{
		{fen: InitialPositionFen, depth: 1, nodes: 20},
		{fen: InitialPositionFen, depth: 2, nodes: 400},
		{fen: InitialPositionFen, depth: 3, nodes: 8902},
		{fen: InitialPositionFen, depth: 4, nodes: 197281},
		{
			fen:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			depth: 3,
			nodes: 97862,
		},
		{
			fen:   "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			depth: 4,
			nodes: 43238,
		},
	}
	for _, test := range tests {
		p, err := NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatalf("%s: %v", test.fen, err)
		}
		if nodes := Perft(&p, test.depth); nodes != test.nodes {
			t.Errorf("%s depth %d: got %d nodes, want %d", test.fen, test.depth, nodes, test.nodes)
		}
	}
}

func TestMakeMoveReversible(t *testing.T) {
	p, err := NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var before = p
	var child Position
	for _, m := range p.LegalMoves() {
		if !p.MakeMove(m, &child) {
			t.Fatalf("legal move %v rejected by MakeMove", m)
		}
		if p != before {
			t.Fatalf("MakeMove(%v) mutated the parent position", m)
		}
		if child.WhiteMove == p.WhiteMove {
			t.Fatalf("MakeMove(%v) did not flip side to move", m)
		}
	}
}

func TestMirrorPositionSymmetry(t *testing.T) {
	p, err := NewPositionFromFEN("r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 2 3")
	if err != nil {
		t.Fatal(err)
	}
	var m = MirrorPosition(&p)
	var m2 = MirrorPosition(&m)
	if !p.SameBoard(&m2) {
		t.Fatalf("mirroring twice did not return to the original position")
	}
	if p.WhiteMove == m.WhiteMove {
		t.Fatalf("mirror did not swap side to move")
	}
}

func TestIsGameOverStalemate(t *testing.T) {
	p, err := NewPositionFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var status = IsGameOver(&p, []Position{p})
	if status.Reason != Stalemate {
		t.Fatalf("expected Stalemate, got %v", status.Reason)
	}
}

func TestIsGameOverCheckmate(t *testing.T) {
	p, err := NewPositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R4K2 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var buffer [MaxMoves]Move
	var child Position
	var mv Move
	for _, m := range GeneratePseudoLegalMoves(buffer[:], &p) {
		if m.From() == SquareA1 && m.To() == SquareA8 {
			mv = m
		}
	}
	if !p.MakeMove(mv, &child) {
		t.Fatal("a1a8 rejected")
	}
	var status = IsGameOver(&child, []Position{p, child})
	if status.Reason != Checkmate {
		t.Fatalf("expected Checkmate, got %v", status.Reason)
	}
	if !status.LoserWhite == false && status.LoserWhite != false {
		// reached only when White is reported as the loser; the check
		// below fails the test in that case
	}
	if status.LoserWhite {
		t.Fatalf("expected black to be mated, got white")
	}
}

func TestFENRoundTrips(t *testing.T) {
	var fens = []string{
		InitialPositionFen,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 2 3",
		"6k1/5ppp/8/8/8/8/5PPP/R4K2 w - - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 5",
	}
	for _, fen := range fens {
		p, err := NewPositionFromFEN(fen)
		if err != nil {
			t.Fatalf("%s: %v", fen, err)
		}
		var round, err2 = NewPositionFromFEN(p.FEN())
		if err2 != nil {
			t.Fatalf("%s: FEN() produced unparsable output %q: %v", fen, p.FEN(), err2)
		}
		if !p.SameBoard(&round) {
			t.Fatalf("%s: round trip through FEN() changed the board: got %q", fen, p.FEN())
		}
		if p.Rule50 != round.Rule50 {
			t.Fatalf("%s: round trip lost Rule50: got %d, want %d", fen, round.Rule50, p.Rule50)
		}
		if p.FullMoveNumber != round.FullMoveNumber {
			t.Fatalf("%s: round trip lost FullMoveNumber: got %d, want %d", fen, round.FullMoveNumber, p.FullMoveNumber)
		}
	}
}

func TestFENFullMoveNumberAdvancesAfterBlackMoves(t *testing.T) {
	p, err := NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	if p.FullMoveNumber != 1 {
		t.Fatalf("expected fullmove 1 at the starting position, got %d", p.FullMoveNumber)
	}

	var afterWhite Position
	move, ok := ParseMoveLAN(&p, "e2e4")
	if !ok || !p.MakeMove(move, &afterWhite) {
		t.Fatal("e2e4 should be a legal opening move")
	}
	if afterWhite.FullMoveNumber != 1 {
		t.Fatalf("expected fullmove to stay 1 after White's move, got %d", afterWhite.FullMoveNumber)
	}

	var afterBlack Position
	move, ok = ParseMoveLAN(&afterWhite, "e7e5")
	if !ok || !afterWhite.MakeMove(move, &afterBlack) {
		t.Fatal("e7e5 should be a legal reply")
	}
	if afterBlack.FullMoveNumber != 2 {
		t.Fatalf("expected fullmove to advance to 2 after Black's move, got %d", afterBlack.FullMoveNumber)
	}
}

func TestSeeGEWinningCapture(t *testing.T) {
	p, err := NewPositionFromFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var mv = MakeMove(SquareE4, SquareD5, Pawn, Pawn)
	if !SeeGE(&p, mv, 0) {
		t.Fatalf("pawn takes undefended pawn should be SEE >= 0")
	}
}

package search

import (
	"context"
	"testing"

	"github.com/wizardbeard/chessevolve/internal/board"
	"github.com/wizardbeard/chessevolve/internal/config"
	"github.com/wizardbeard/chessevolve/internal/eval"
)

func TestBestMoveDepthOneMatchesStaticEval(t *testing.T) {
	var cfg = config.Default()
	cfg.SearchDepth = 1
	cfg.EnableQuiescence = false

	p, err := board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}

	var want = -Inf
	var child board.Position
	for _, m := range p.LegalMoves() {
		if !p.MakeMove(m, &child) {
			continue
		}
		var s = -eval.Evaluate(&child, cfg)
		if s > want {
			want = s
		}
	}

	var s = New(cfg, []board.Position{p})
	_, got, ok := s.BestMove(context.Background(), &p)
	if !ok {
		t.Fatal("BestMove reported no legal move at the starting position")
	}
	if got != want {
		t.Errorf("depth-1 search score %d does not match max(-eval) %d", got, want)
	}
}

func TestBestMoveReturnsLegalMove(t *testing.T) {
	var cfg = config.Default()
	cfg.SearchDepth = 3

	p, err := board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}

	var s = New(cfg, []board.Position{p})
	move, _, ok := s.BestMove(context.Background(), &p)
	if !ok {
		t.Fatal("expected a legal move at the starting position")
	}
	var found = false
	for _, m := range p.LegalMoves() {
		if m == move {
			found = true
		}
	}
	if !found {
		t.Fatalf("BestMove returned %v, which is not among LegalMoves", move)
	}
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	// Black to move has been mated on the back rank by Ra8; from the
	// position one ply earlier White must find Ra1-a8#.
	p, err := board.NewPositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R4K2 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var cfg = config.Default()
	cfg.SearchDepth = 3
	var s = New(cfg, []board.Position{p})
	move, score, ok := s.BestMove(context.Background(), &p)
	if !ok {
		t.Fatal("expected a legal move")
	}
	if move.From() != board.SquareA1 || move.To() != board.SquareA8 {
		t.Errorf("expected Ra1a8#, got %v", move)
	}
	if score < Mate-4 {
		t.Errorf("expected a near-mate score, got %d", score)
	}
}

func TestBestMoveFindsBackRankMateAtDepthOne(t *testing.T) {
	p, err := board.NewPositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var cfg = config.Default()
	cfg.SearchDepth = 1
	var s = New(cfg, []board.Position{p})
	move, score, ok := s.BestMove(context.Background(), &p)
	if !ok {
		t.Fatal("expected a legal move")
	}
	if move.From() != board.SquareA1 || move.To() != board.SquareA8 {
		t.Errorf("expected Ra1a8#, got %v", move)
	}
	if score < Mate-2 {
		t.Errorf("expected score >= Mate-2, got %d", score)
	}
}

func TestBestMoveFindsFoolsMate(t *testing.T) {
	p, err := board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var history = []board.Position{p}
	for _, lan := range []string{"f2f3", "e7e5", "g2g4"} {
		var current = &history[len(history)-1]
		move, ok := board.ParseMoveLAN(current, lan)
		if !ok {
			t.Fatalf("move %q not legal from current position", lan)
		}
		var child board.Position
		if !current.MakeMove(move, &child) {
			t.Fatalf("MakeMove rejected %q", lan)
		}
		history = append(history, child)
	}

	var current = &history[len(history)-1]
	var cfg = config.Default()
	cfg.SearchDepth = 2
	var s = New(cfg, history)
	move, score, ok := s.BestMove(context.Background(), current)
	if !ok {
		t.Fatal("expected a legal move")
	}
	if move.From() != board.SquareD8 || move.To() != board.SquareH4 {
		t.Errorf("expected Qd8h4#, got %v", move)
	}
	if score < Mate-4 {
		t.Errorf("expected a near-mate score, got %d", score)
	}
}

func TestSearchHandlesNoLegalMoveAsStalemateOrMate(t *testing.T) {
	p, err := board.NewPositionFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var cfg = config.Default()
	var s = New(cfg, []board.Position{p})
	_, _, ok := s.BestMove(context.Background(), &p)
	if ok {
		t.Fatal("expected ok=false at a stalemated position")
	}
}

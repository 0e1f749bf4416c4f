package match

import (
	"context"
	"testing"

	"github.com/wizardbeard/chessevolve/internal/board"
	"github.com/wizardbeard/chessevolve/internal/config"
)

func TestPlayStalemateIsADraw(t *testing.T) {
	var cfg = config.Default()
	cfg.SearchDepth = 1

	outcome, err := Play(context.Background(), cfg, cfg, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 0)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome.Result != Draw {
		t.Fatalf("expected stalemate to be scored a draw, got %v", outcome.Result)
	}
	if outcome.Termination != board.Stalemate.String() {
		t.Fatalf("expected termination %q, got %q", board.Stalemate.String(), outcome.Termination)
	}
}

func TestPlayBackRankMateEndsInCheckmate(t *testing.T) {
	var cfg = config.Default()
	cfg.SearchDepth = 3

	outcome, err := Play(context.Background(), cfg, cfg, "6k1/5ppp/8/8/8/8/5PPP/R4K2 w - - 0 1", 10)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome.Result != WhiteWin {
		t.Fatalf("expected White to deliver mate, got %v", outcome.Result)
	}
	if len(outcome.Moves) == 0 {
		t.Fatal("expected at least one move to be played")
	}
}

func TestPlayRespectsMoveCap(t *testing.T) {
	var cfg = config.Default()
	cfg.SearchDepth = 1

	outcome, err := Play(context.Background(), cfg, cfg, board.InitialPositionFen, 4)
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if outcome.Termination != "move_cap" {
		t.Fatalf("expected move_cap termination at a 4-ply cap, got %q", outcome.Termination)
	}
	if len(outcome.Moves) != 4 {
		t.Fatalf("expected exactly 4 moves played, got %d", len(outcome.Moves))
	}
}

func TestPlayReturnsErrorOnCancelledContext(t *testing.T) {
	var cfg = config.Default()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Play(ctx, cfg, cfg, board.InitialPositionFen, 0)
	if err == nil {
		t.Fatal("expected an error from Play when ctx is already cancelled")
	}
}

func TestPlayThreefoldRepetitionIsADraw(t *testing.T) {
	pos, err := board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var history = []board.Position{pos}
	var shuffle = []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for cycle := 0; cycle < 2; cycle++ {
		for _, lan := range shuffle {
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
	}

	var current = &history[len(history)-1]
	var status = board.IsGameOver(current, history)
	if status.Reason != board.ThreefoldRepetition {
		t.Fatalf("expected threefold repetition after the knight shuffle repeats, got %v", status.Reason)
	}
	if resultFor(status) != Draw {
		t.Fatalf("expected threefold repetition to be scored a draw, got %v", resultFor(status))
	}
}

func TestMoveStringsRendersLongAlgebraic(t *testing.T) {
	p, err := board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var moves = p.LegalMoves()
	var strs = MoveStrings(moves)
	if len(strs) != len(moves) {
		t.Fatalf("expected %d strings, got %d", len(moves), len(strs))
	}
	for _, s := range strs {
		if len(s) < 4 {
			t.Errorf("expected long-algebraic move string of at least 4 chars, got %q", s)
		}
	}
}

package eval

import (
	"testing"

	"github.com/wizardbeard/chessevolve/internal/board"
	"github.com/wizardbeard/chessevolve/internal/config"
)

func TestEvaluateMirrorSymmetry(t *testing.T) {
	var cfg = config.Default()
	var fens = []string{
		board.InitialPositionFen,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 2 3",
		"8/5k2/8/3K4/8/8/4P3/8 w - - 0 1",
	}
	for _, fen := range fens {
		p, err := board.NewPositionFromFEN(fen)
		if err != nil {
			t.Fatalf("%s: %v", fen, err)
		}
		var mirrored = board.MirrorPosition(&p)
		var a = Evaluate(&p, cfg)
		var b = Evaluate(&mirrored, cfg)
		if a != b {
			t.Errorf("%s: Evaluate(pos)=%d Evaluate(mirror)=%d, expected equal under a color-symmetric chromosome", fen, a, b)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	var cfg = config.Default()
	p, err := board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var a = Evaluate(&p, cfg)
	var b = Evaluate(&p, cfg)
	if a != b {
		t.Fatalf("Evaluate is not deterministic: %d != %d", a, b)
	}
}

func TestEvaluateStartPositionIsRoughlyBalanced(t *testing.T) {
	var cfg = config.Default()
	p, err := board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var score = Evaluate(&p, cfg)
	if score < -30 || score > 30 {
		t.Errorf("expected a near-zero score for the starting position, got %d", score)
	}
}

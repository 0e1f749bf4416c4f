package orderer

import (
	"testing"

	"github.com/wizardbeard/chessevolve/internal/board"
	"github.com/wizardbeard/chessevolve/internal/config"
)

func TestOrderPutsHashMoveFirst(t *testing.T) {
	p, err := board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var moves = p.LegalMoves()
	var hashMove = moves[len(moves)-1]

	var o = New(config.Default())
	o.Order(moves, &p, 0, hashMove)

	if moves[0] != hashMove {
		t.Fatalf("expected hash move %v first, got %v", hashMove, moves[0])
	}
}

func TestOnCutoffUpdatesKillerAndHistory(t *testing.T) {
	p, err := board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var moves = p.LegalMoves()
	var quiet board.Move
	for _, m := range moves {
		if !m.IsCaptureOrPromotion() {
			quiet = m
			break
		}
	}

	var o = New(config.Default())
	o.OnCutoff(quiet, 0, 4, true)

	if o.killers[0][0] != quiet {
		t.Fatalf("expected killer slot to hold %v", quiet)
	}
	if o.history[1][quiet.From()][quiet.To()] != 16 {
		t.Fatalf("expected history bumped by depth^2=16, got %d", o.history[1][quiet.From()][quiet.To()])
	}
}

func TestResetClearsTables(t *testing.T) {
	var o = New(config.Default())
	o.OnCutoff(board.MakeMove(board.SquareE2, board.SquareE4, board.Pawn, board.Empty), 0, 3, true)
	o.Reset()
	if o.killers[0][0] != board.MoveEmpty {
		t.Fatalf("expected killers cleared after Reset")
	}
	if o.history[1][board.SquareE2][board.SquareE4] != 0 {
		t.Fatalf("expected history cleared after Reset")
	}
}

package model_test

import (
	"testing"

	"github.com/benbeisheim/variantchess-backend/internal/model"
)

func TestIsInCheck(t *testing.T) {
	b := grid(t, 2, 2, " ♛\n♔ ")
	if !model.IsInCheck(b, model.White, nil) {
		t.Fatal("white king next to the queen should be in check")
	}

	bothKings := grid(t, 3, 2, " ♛♚\n♔  ")
	if !model.IsInCheck(bothKings, model.White, nil) {
		t.Fatal("white king next to the queen should be in check")
	}
	if model.IsInCheck(bothKings, model.Black, nil) {
		t.Fatal("black king is out of reach")
	}

	mirrored := grid(t, 2, 2, " ♕\n♚ ")
	if !model.IsInCheck(mirrored, model.Black, nil) {
		t.Fatal("colors swapped: black should be in check")
	}
}

func TestIsInCheckBlockedLine(t *testing.T) {
	b := grid(t, 1, 4, "♜\n♘\n \n♔")
	if model.IsInCheck(b, model.White, nil) {
		t.Fatal("knight blocks the rook")
	}
	b.Remove(0, 2)
	if !model.IsInCheck(b, model.White, nil) {
		t.Fatal("open file should give check")
	}
}

func TestIsInCheckMissingKingPanics(t *testing.T) {
	b := grid(t, 2, 1, "♔ ")
	expectPanic(t, model.ErrMissingKing, func() { model.IsInCheck(b, model.Black, nil) })
}

func TestPinnedPieceStaysOnLine(t *testing.T) {
	game := fen(t, "4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1")
	moves := model.LegalMovesFrom(game.Board(), model.White, pos(4, 1), nil)
	if len(moves) != 5 {
		t.Fatalf("got %d moves, want 5: %v", len(moves), moves)
	}
	for _, m := range moves {
		if m.To.Col != 4 {
			t.Fatalf("pinned rook left the file: %v", m)
		}
	}
}

func TestKingCannotStepIntoCheck(t *testing.T) {
	game := fen(t, "3rk3/8/8/8/8/8/8/4K3 w - - 0 1")
	moves := model.LegalMovesFrom(game.Board(), model.White, pos(4, 0), nil)
	for _, m := range moves {
		if m.To.Col == 3 {
			t.Fatalf("king walked onto the d-file: %v", m)
		}
	}
	if len(moves) != 3 {
		t.Fatalf("got %d moves, want 3: %v", len(moves), moves)
	}
}

func TestLegalFilterLeavesBoardUntouched(t *testing.T) {
	game := fen(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := game.Board().Clone()
	model.DefaultAnalyzer.LegalMoves(game)
	if !game.Board().Equal(before) {
		t.Fatal("move generation mutated the board")
	}
}

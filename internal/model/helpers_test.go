package model_test

import (
	"errors"
	"testing"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
)

func grid(t *testing.T, width, height int, s string) *model.Board {
	t.Helper()
	board, err := notation.ParseGrid(width, height, s)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	return board
}

func fen(t *testing.T, s string) *model.Game {
	t.Helper()
	game, err := notation.DecodeFEN(s)
	if err != nil {
		t.Fatalf("DecodeFEN(%q): %v", s, err)
	}
	return game
}

func pos(col, row int) model.Position {
	return model.Position{Col: col, Row: row}
}

func expectPanic(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic wrapping %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want one wrapping %v", r, target)
		}
	}()
	f()
}

func findMove(moves []model.Move, from, to model.Position) (model.Move, bool) {
	for _, m := range moves {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return model.Move{}, false
}

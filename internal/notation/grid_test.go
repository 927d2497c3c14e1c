package notation

import (
	"errors"
	"testing"

	"github.com/benbeisheim/variantchess-backend/internal/model"
)

func TestGridRoundTrip(t *testing.T) {
	s := "" +
		"♜♞♝♛♚♝♞♜\n" +
		"♟♟♟♟♟♟♟♟\n" +
		"        \n" +
		"        \n" +
		"        \n" +
		"        \n" +
		"♙♙♙♙♙♙♙♙\n" +
		"♖♘♗♕♔♗♘♖\n"
	board, err := ParseGrid(8, 8, s)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if !board.Equal(model.NewStandardBoard()) {
		t.Fatal("parsed board differs from the standard layout")
	}
	if got := FormatGrid(board); got != s {
		t.Fatalf("FormatGrid =\n%s\nwant\n%s", got, s)
	}
}

func TestParseGridOrientation(t *testing.T) {
	board, err := ParseGrid(3, 2, "♚..\n..♔")
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if p, _ := board.Get(0, 1); p != model.NewPiece(model.Black, model.King) {
		t.Fatalf("top left holds %v", p)
	}
	if p, _ := board.Get(2, 0); p != model.NewPiece(model.White, model.King) {
		t.Fatalf("bottom right holds %v", p)
	}
	if got := FormatGrid(board); got != "♚  \n  ♔\n" {
		t.Fatalf("FormatGrid = %q", got)
	}
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		s             string
	}{
		{"too short", 2, 2, "♔ \n"},
		{"too long", 2, 1, "♔♚ "},
		{"unknown symbol", 2, 1, "♔x"},
		{"zero width", 0, 1, ""},
		{"width overflows", 1<<62 + 1, 4, "♔♚  "},
		{"too tall", 1, MaxBoardSize + 1, "♔♚"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGrid(tt.width, tt.height, tt.s); !errors.Is(err, ErrInvalidGrid) {
				t.Fatalf("err = %v, want ErrInvalidGrid", err)
			}
		})
	}
}

func TestValidatePosition(t *testing.T) {
	for s, ok := range map[string]bool{
		"♔♚ ": true,
		"♔  ": false,
		"♔♔♚": false,
		"♚♚♔": false,
	} {
		board, err := ParseGrid(3, 1, s)
		if err != nil {
			t.Fatalf("ParseGrid(%q): %v", s, err)
		}
		err = ValidatePosition(board)
		if ok && err != nil {
			t.Fatalf("%q: unexpected error %v", s, err)
		}
		if !ok && !errors.Is(err, ErrInvalidPosition) {
			t.Fatalf("%q: err = %v, want ErrInvalidPosition", s, err)
		}
	}
}

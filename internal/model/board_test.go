package model_test

import (
	"testing"

	"github.com/benbeisheim/variantchess-backend/internal/model"
)

func TestStandardBoardLayout(t *testing.T) {
	b := model.NewStandardBoard()
	if b.Width() != 8 || b.Height() != 8 {
		t.Fatalf("size = %dx%d, want 8x8", b.Width(), b.Height())
	}

	tests := []struct {
		col, row int
		want     model.Piece
	}{
		{0, 0, model.NewPiece(model.White, model.Rook)},
		{3, 0, model.NewPiece(model.White, model.Queen)},
		{4, 0, model.NewPiece(model.White, model.King)},
		{6, 1, model.NewPiece(model.White, model.Pawn)},
		{4, 7, model.NewPiece(model.Black, model.King)},
		{1, 7, model.NewPiece(model.Black, model.Knight)},
		{5, 6, model.NewPiece(model.Black, model.Pawn)},
	}
	for _, tt := range tests {
		got, ok := b.Get(tt.col, tt.row)
		if !ok || got != tt.want {
			t.Fatalf("Get(%d,%d) = %v, %v; want %v", tt.col, tt.row, got, ok, tt.want)
		}
	}
	if _, ok := b.Get(4, 4); ok {
		t.Fatal("e5 should be empty")
	}
	if n := len(b.Pieces(model.White)) + len(b.Pieces(model.Black)); n != 32 {
		t.Fatalf("piece count = %d, want 32", n)
	}
}

func TestSquareColors(t *testing.T) {
	b := model.NewBoard(3, 2)
	if c := b.Square(0, 0).Color; c != model.DarkSquare {
		t.Fatalf("a1 = %s, want dark", c)
	}
	if c := b.Square(1, 0).Color; c != model.LightSquare {
		t.Fatalf("b1 = %s, want light", c)
	}
	if c := b.Square(0, 1).Color; c != model.LightSquare {
		t.Fatalf("a2 = %s, want light", c)
	}
}

func TestSquaresOrder(t *testing.T) {
	b := model.NewBoard(3, 2)
	b.Place(model.NewPiece(model.White, model.King), 2, 1)
	squares := b.Squares()
	if len(squares) != 6 {
		t.Fatalf("len = %d, want 6", len(squares))
	}
	for i, sq := range squares {
		want := pos(i%3, i/3)
		if sq.Position != want {
			t.Fatalf("squares[%d] at %v, want %v", i, sq.Position, want)
		}
	}
	if squares[5].Piece == nil || squares[5].Piece.Type != model.King {
		t.Fatalf("last square = %+v, want the king", squares[5])
	}
	if squares[0].Piece != nil {
		t.Fatal("first square should be empty")
	}
}

func TestPlaceRemove(t *testing.T) {
	b := model.NewBoard(4, 3)
	knight := model.NewPiece(model.Black, model.Knight)
	b.Place(knight, 3, 2)

	if got, ok := b.Get(3, 2); !ok || got != knight {
		t.Fatalf("Get = %v, %v", got, ok)
	}
	removed, ok := b.Remove(3, 2)
	if !ok || removed != knight {
		t.Fatalf("Remove = %v, %v", removed, ok)
	}
	if _, ok := b.Remove(3, 2); ok {
		t.Fatal("second Remove should report an empty square")
	}
}

func TestOutOfBoundsPanics(t *testing.T) {
	b := model.NewBoard(2, 3)
	if b.InBounds(2, 0) || b.InBounds(0, 3) || b.InBounds(-1, 0) {
		t.Fatal("InBounds accepted an outside square")
	}
	expectPanic(t, model.ErrOutOfBounds, func() { b.Get(2, 0) })
	expectPanic(t, model.ErrOutOfBounds, func() { b.Place(model.NewPiece(model.White, model.Pawn), 0, -1) })
	expectPanic(t, model.ErrOutOfBounds, func() { b.Remove(0, 3) })
}

func TestCloneIsIndependent(t *testing.T) {
	b := model.NewStandardBoard()
	clone := b.Clone()
	if !clone.Equal(b) {
		t.Fatal("clone differs from original")
	}
	clone.Remove(4, 1)
	if clone.Equal(b) {
		t.Fatal("clone shares storage with original")
	}
	if _, ok := b.Get(4, 1); !ok {
		t.Fatal("original lost its pawn")
	}
}

func TestKingPosition(t *testing.T) {
	b := grid(t, 3, 3, "  ♚\n   \n♔  ")
	if p, ok := b.KingPosition(model.Black); !ok || p != pos(2, 2) {
		t.Fatalf("black king at %v, %v", p, ok)
	}
	if p, ok := b.KingPosition(model.White); !ok || p != pos(0, 0) {
		t.Fatalf("white king at %v, %v", p, ok)
	}
	b.Remove(0, 0)
	if _, ok := b.KingPosition(model.White); ok {
		t.Fatal("found a removed king")
	}
}

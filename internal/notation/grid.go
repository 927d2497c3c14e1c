package notation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/benbeisheim/variantchess-backend/internal/model"
)

var (
	ErrInvalidGrid     = errors.New("invalid board grid")
	ErrInvalidPosition = errors.New("invalid position")
)

// MaxBoardSize bounds the width and height of imported boards.
const MaxBoardSize = 1024

var symbolPieces = map[rune]model.Piece{
	'♙': model.NewPiece(model.White, model.Pawn),
	'♘': model.NewPiece(model.White, model.Knight),
	'♗': model.NewPiece(model.White, model.Bishop),
	'♖': model.NewPiece(model.White, model.Rook),
	'♕': model.NewPiece(model.White, model.Queen),
	'♔': model.NewPiece(model.White, model.King),
	'♟': model.NewPiece(model.Black, model.Pawn),
	'♞': model.NewPiece(model.Black, model.Knight),
	'♝': model.NewPiece(model.Black, model.Bishop),
	'♜': model.NewPiece(model.Black, model.Rook),
	'♛': model.NewPiece(model.Black, model.Queen),
	'♚': model.NewPiece(model.Black, model.King),
}

var pieceSymbols = func() map[model.Piece]rune {
	m := make(map[model.Piece]rune, len(symbolPieces))
	for r, p := range symbolPieces {
		m[p] = r
	}
	return m
}()

// Symbol is the unicode chess glyph for piece.
func Symbol(piece model.Piece) rune {
	return pieceSymbols[piece]
}

// ParseGrid reads a board drawn with unicode chess glyphs, one line per row
// with the highest row first. Spaces and dots are empty squares. Line breaks
// are optional; the glyph count must equal width*height.
func ParseGrid(width, height int, s string) (*model.Board, error) {
	if width <= 0 || height <= 0 || width > MaxBoardSize || height > MaxBoardSize {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGrid, width, height)
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	if n := utf8.RuneCountInString(s); n != width*height {
		return nil, fmt.Errorf("%w: expected %d squares for a %dx%d board, got %d", ErrInvalidGrid, width*height, width, height, n)
	}

	board := model.NewBoard(width, height)
	index := 0
	for _, r := range s {
		col := index % width
		row := height - 1 - index/width
		index++
		if r == ' ' || r == '.' {
			continue
		}
		piece, ok := symbolPieces[r]
		if !ok {
			return nil, fmt.Errorf("%w: unknown symbol %q at %s", ErrInvalidGrid, r, SquareName(col, row))
		}
		board.Place(piece, col, row)
	}
	return board, nil
}

// FormatGrid is the inverse of ParseGrid; every line ends in a newline.
func FormatGrid(board *model.Board) string {
	var sb strings.Builder
	for row := board.Height() - 1; row >= 0; row-- {
		for col := 0; col < board.Width(); col++ {
			if piece, ok := board.Get(col, row); ok {
				sb.WriteRune(Symbol(piece))
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ValidatePosition checks the invariant the rules engine relies on: exactly
// one king of each color.
func ValidatePosition(board *model.Board) error {
	for _, color := range []model.Color{model.White, model.Black} {
		kings := 0
		for _, placed := range board.Pieces(color) {
			if placed.Piece.Type == model.King {
				kings++
			}
		}
		if kings != 1 {
			return fmt.Errorf("%w: %s has %d kings", ErrInvalidPosition, color, kings)
		}
	}
	return nil
}

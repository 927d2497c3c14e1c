package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// PromotionTypes are the piece types a pawn may become on the farthest rank.
var PromotionTypes = []PieceType{Knight, Bishop, Rook, Queen}

func (p PieceType) Valid() bool {
	switch p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// pawnDirection is the row delta of a forward pawn step.
func (c Color) pawnDirection() int {
	if c == White {
		return 1
	}
	return -1
}

type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func NewPiece(color Color, pieceType PieceType) Piece {
	return Piece{Type: pieceType, Color: color}
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

func (p Piece) isEmpty() bool {
	return p.Type == ""
}

type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (p Position) offset(dCol, dRow int) Position {
	return Position{Col: p.Col + dCol, Row: p.Row + dRow}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

type SquareColor string

const (
	LightSquare SquareColor = "light"
	DarkSquare  SquareColor = "dark"
)

// Square is a read-only view of one board cell.
type Square struct {
	Position Position    `json:"position"`
	Color    SquareColor `json:"color"`
	Piece    *Piece      `json:"piece"`
}

func squareColorAt(col, row int) SquareColor {
	if (col+row)%2 == 1 {
		return LightSquare
	}
	return DarkSquare
}

// Board is a width x height grid stored row-major; row 0 is White's back rank.
type Board struct {
	width  int
	height int
	cells  []Piece
}

func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Errorf("invalid board dimensions %dx%d", width, height))
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Piece, width*height),
	}
}

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardBoard returns the 8x8 starting layout.
func NewStandardBoard() *Board {
	board := NewBoard(8, 8)
	for col, pieceType := range backRank {
		board.Place(NewPiece(White, pieceType), col, 0)
		board.Place(NewPiece(Black, pieceType), col, 7)
		board.Place(NewPiece(White, Pawn), col, 1)
		board.Place(NewPiece(Black, Pawn), col, 6)
	}
	return board
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) InBounds(col, row int) bool {
	return col >= 0 && col < b.width && row >= 0 && row < b.height
}

func (b *Board) index(col, row int) int {
	if !b.InBounds(col, row) {
		panic(fmt.Errorf("%w: (%d,%d) on a %dx%d board", ErrOutOfBounds, col, row, b.width, b.height))
	}
	return row*b.width + col
}

// Place puts piece on (col, row), replacing any occupant.
func (b *Board) Place(piece Piece, col, row int) {
	b.cells[b.index(col, row)] = piece
}

func (b *Board) Remove(col, row int) (Piece, bool) {
	i := b.index(col, row)
	piece := b.cells[i]
	b.cells[i] = Piece{}
	return piece, !piece.isEmpty()
}

func (b *Board) Get(col, row int) (Piece, bool) {
	piece := b.cells[b.index(col, row)]
	return piece, !piece.isEmpty()
}

func (b *Board) at(p Position) (Piece, bool) {
	return b.Get(p.Col, p.Row)
}

func (b *Board) Clone() *Board {
	cells := make([]Piece, len(b.cells))
	copy(cells, b.cells)
	return &Board{width: b.width, height: b.height, cells: cells}
}

func (b *Board) Equal(other *Board) bool {
	if other == nil || b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (b *Board) Square(col, row int) Square {
	sq := Square{
		Position: Position{Col: col, Row: row},
		Color:    squareColorAt(col, row),
	}
	if piece, ok := b.Get(col, row); ok {
		sq.Piece = &piece
	}
	return sq
}

// Squares lists every square in row-major order, row 0 first.
func (b *Board) Squares() []Square {
	squares := make([]Square, 0, len(b.cells))
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			squares = append(squares, b.Square(col, row))
		}
	}
	return squares
}

type PlacedPiece struct {
	Piece    Piece    `json:"piece"`
	Position Position `json:"position"`
}

// Pieces lists the pieces of color in row-major order.
func (b *Board) Pieces(color Color) []PlacedPiece {
	var pieces []PlacedPiece
	for i, piece := range b.cells {
		if piece.isEmpty() || piece.Color != color {
			continue
		}
		pieces = append(pieces, PlacedPiece{
			Piece:    piece,
			Position: Position{Col: i % b.width, Row: i / b.width},
		})
	}
	return pieces
}

// KingPosition reports where the king of color stands.
func (b *Board) KingPosition(color Color) (Position, bool) {
	king := NewPiece(color, King)
	for i, piece := range b.cells {
		if piece == king {
			return Position{Col: i % b.width, Row: i / b.width}, true
		}
	}
	return Position{}, false
}

func (b *Board) mustFindKing(color Color) Position {
	pos, ok := b.KingPosition(color)
	if !ok {
		panic(fmt.Errorf("%w: no %s king on the board", ErrMissingKing, color))
	}
	return pos
}

// backRankRow is the row a color's pieces start on.
func (b *Board) backRankRow(color Color) int {
	if color == White {
		return 0
	}
	return b.height - 1
}

func (b *Board) pawnStartRow(color Color) int {
	if color == White {
		return 1
	}
	return b.height - 2
}

func (b *Board) promotionRow(color Color) int {
	if color == White {
		return b.height - 1
	}
	return 0
}

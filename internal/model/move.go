package model

import "fmt"

type MoveKind string

const (
	KindMove      MoveKind = "move"
	KindTake      MoveKind = "take"
	KindCastle    MoveKind = "castle"
	KindEnPassant MoveKind = "enPassant"
)

type CastleSide string

const (
	KingSide  CastleSide = "kingSide"
	QueenSide CastleSide = "queenSide"
)

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Move is one of four variants selected by Kind:
//   - move: a quiet step, or a promotion (Captured is set when the promotion
//     also captures on To)
//   - take: a capture on To; Captured is always set
//   - castle: Piece is the king, Rook and Side describe the rook's hop
//   - enPassant: Captured is the pawn removed from CapturedAt
type Move struct {
	Kind       MoveKind        `json:"kind"`
	From       Position        `json:"from"`
	To         Position        `json:"to"`
	Piece      Piece           `json:"piece"`
	Captured   *Piece          `json:"captured,omitempty"`
	Promotion  PieceType       `json:"promotion,omitempty"`
	Rook       *CastleRookMove `json:"rook,omitempty"`
	Side       CastleSide      `json:"side,omitempty"`
	CapturedAt *Position       `json:"capturedAt,omitempty"`
}

func NewMove(piece Piece, from, to Position) Move {
	return Move{Kind: KindMove, From: from, To: to, Piece: piece}
}

func NewTake(piece Piece, from, to Position, captured Piece) Move {
	return Move{Kind: KindTake, From: from, To: to, Piece: piece, Captured: &captured}
}

// NewPromotion builds a pawn move onto the last rank. captured may be nil.
func NewPromotion(piece Piece, from, to Position, promotion PieceType, captured *Piece) Move {
	m := Move{Kind: KindMove, From: from, To: to, Piece: piece, Promotion: promotion}
	if captured != nil {
		c := *captured
		m.Captured = &c
	}
	return m
}

func NewEnPassant(piece Piece, from, to, capturedAt Position) Move {
	captured := NewPiece(piece.Color.Opposite(), Pawn)
	return Move{
		Kind:       KindEnPassant,
		From:       from,
		To:         to,
		Piece:      piece,
		Captured:   &captured,
		CapturedAt: &capturedAt,
	}
}

func NewCastle(color Color, side CastleSide, kingFrom, kingTo, rookFrom, rookTo Position) Move {
	return Move{
		Kind:  KindCastle,
		From:  kingFrom,
		To:    kingTo,
		Piece: NewPiece(color, King),
		Rook:  &CastleRookMove{From: rookFrom, To: rookTo},
		Side:  side,
	}
}

func (m Move) IsCapture() bool {
	return m.Captured != nil
}

func (m Move) IsPromotion() bool {
	return m.Promotion != ""
}

// CapturedSquare is where the captured piece stood, if anything is captured.
func (m Move) CapturedSquare() (Position, bool) {
	switch {
	case m.Captured == nil:
		return Position{}, false
	case m.CapturedAt != nil:
		return *m.CapturedAt, true
	default:
		return m.To, true
	}
}

// Apply performs the move on board. The board must hold the position the move
// was generated from.
func (m Move) Apply(board *Board) {
	switch m.Kind {
	case KindMove, KindTake:
		board.Remove(m.From.Col, m.From.Row)
		placed := m.Piece
		if m.IsPromotion() {
			placed = NewPiece(m.Piece.Color, m.Promotion)
		}
		board.Place(placed, m.To.Col, m.To.Row)
	case KindEnPassant:
		board.Remove(m.From.Col, m.From.Row)
		board.Remove(m.CapturedAt.Col, m.CapturedAt.Row)
		board.Place(m.Piece, m.To.Col, m.To.Row)
	case KindCastle:
		// lift both before placing; on small boards the squares can overlap
		king, _ := board.Remove(m.From.Col, m.From.Row)
		rook, _ := board.Remove(m.Rook.From.Col, m.Rook.From.Row)
		board.Place(king, m.To.Col, m.To.Row)
		board.Place(rook, m.Rook.To.Col, m.Rook.To.Row)
	default:
		panic(fmt.Errorf("unknown move kind %q", m.Kind))
	}
}

// Undo reverses Apply on the board Apply produced.
func (m Move) Undo(board *Board) {
	switch m.Kind {
	case KindMove, KindTake:
		board.Remove(m.To.Col, m.To.Row)
		if m.Captured != nil {
			board.Place(*m.Captured, m.To.Col, m.To.Row)
		}
		board.Place(m.Piece, m.From.Col, m.From.Row)
	case KindEnPassant:
		board.Remove(m.To.Col, m.To.Row)
		board.Place(*m.Captured, m.CapturedAt.Col, m.CapturedAt.Row)
		board.Place(m.Piece, m.From.Col, m.From.Row)
	case KindCastle:
		king, _ := board.Remove(m.To.Col, m.To.Row)
		rook, _ := board.Remove(m.Rook.To.Col, m.Rook.To.Row)
		board.Place(king, m.From.Col, m.From.Row)
		board.Place(rook, m.Rook.From.Col, m.Rook.From.Row)
	default:
		panic(fmt.Errorf("unknown move kind %q", m.Kind))
	}
}

func (m Move) String() string {
	switch m.Kind {
	case KindCastle:
		return fmt.Sprintf("%s castles %s %s->%s", m.Piece.Color, m.Side, m.From, m.To)
	case KindEnPassant:
		return fmt.Sprintf("%s %s->%s takes en passant at %s", m.Piece, m.From, m.To, *m.CapturedAt)
	}
	s := fmt.Sprintf("%s %s->%s", m.Piece, m.From, m.To)
	if m.Captured != nil {
		s += fmt.Sprintf(" takes %s", m.Captured.Type)
	}
	if m.IsPromotion() {
		s += fmt.Sprintf(" promotes to %s", m.Promotion)
	}
	return s
}

// MoveRequest is a move as submitted by a player: two squares and an
// optional promotion choice.
type MoveRequest struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Promotion PieceType `json:"promotion"`
}

func (m Move) Matches(req MoveRequest) bool {
	if m.From != req.From || m.To != req.To {
		return false
	}
	return m.Promotion == req.Promotion
}

package model

import "fmt"

// FiftyMoveHalfMoves is the half-move clock value at which the fifty-move
// rule can be claimed.
const FiftyMoveHalfMoves = 100

type CastlingRights struct {
	WhiteKingSide  bool `json:"whiteKingSide"`
	WhiteQueenSide bool `json:"whiteQueenSide"`
	BlackKingSide  bool `json:"blackKingSide"`
	BlackQueenSide bool `json:"blackQueenSide"`
}

// AllCastlingRights grants every castle.
func AllCastlingRights() CastlingRights {
	return CastlingRights{WhiteKingSide: true, WhiteQueenSide: true, BlackKingSide: true, BlackQueenSide: true}
}

func (r CastlingRights) Has(color Color, side CastleSide) bool {
	switch {
	case color == White && side == KingSide:
		return r.WhiteKingSide
	case color == White && side == QueenSide:
		return r.WhiteQueenSide
	case color == Black && side == KingSide:
		return r.BlackKingSide
	default:
		return r.BlackQueenSide
	}
}

func (r *CastlingRights) revoke(color Color, side CastleSide) {
	switch {
	case color == White && side == KingSide:
		r.WhiteKingSide = false
	case color == White && side == QueenSide:
		r.WhiteQueenSide = false
	case color == Black && side == KingSide:
		r.BlackKingSide = false
	default:
		r.BlackQueenSide = false
	}
}

// Game is a board plus the bookkeeping the rules need: side to move, turn
// counter, move history, castling rights and the half-move clock.
type Game struct {
	board         *Board
	toMove        Color
	turn          int
	history       []Move
	castling      CastlingRights
	halfMoveClock int
	// seed is a move played before the position was set up (for example the
	// double step implied by a FEN en passant square).
	seed *Move
}

type GameOption func(*Game)

func WithCastlingRights(rights CastlingRights) GameOption {
	return func(g *Game) {
		g.castling = rights
	}
}

func WithHalfMoveClock(plies int) GameOption {
	return func(g *Game) {
		g.halfMoveClock = plies
	}
}

func WithTurn(turn int) GameOption {
	return func(g *Game) {
		g.turn = turn
	}
}

// WithLastMove records m as the move played just before the position, so en
// passant is available against it.
func WithLastMove(m Move) GameOption {
	return func(g *Game) {
		g.seed = &m
	}
}

// NewStandardGame starts a game from the 8x8 starting layout.
func NewStandardGame() *Game {
	return NewGame(NewStandardBoard(), White, WithCastlingRights(AllCastlingRights()))
}

// NewGame starts a game from an arbitrary position. Castling rights default
// to none. It panics with ErrMissingKing when either king is absent.
func NewGame(board *Board, toMove Color, opts ...GameOption) *Game {
	board.mustFindKing(White)
	board.mustFindKing(Black)
	g := &Game{
		board:  board,
		toMove: toMove,
		turn:   1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Board returns the live board. Callers must not mutate it.
func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) ToMove() Color {
	return g.toMove
}

func (g *Game) Turn() int {
	return g.turn
}

// FullMoveNumber counts moves the way FEN does: it starts at 1 and grows
// after every Black move.
func (g *Game) FullMoveNumber() int {
	return (g.turn + 1) / 2
}

func (g *Game) History() []Move {
	history := make([]Move, len(g.history))
	copy(history, g.history)
	return history
}

func (g *Game) CastlingRights() CastlingRights {
	return g.castling
}

func (g *Game) HalfMoveClock() int {
	return g.halfMoveClock
}

// LastMove is the most recently applied move, or nil at the start.
func (g *Game) LastMove() *Move {
	if len(g.history) == 0 {
		if g.seed != nil {
			m := *g.seed
			return &m
		}
		return nil
	}
	m := g.history[len(g.history)-1]
	return &m
}

func (g *Game) CanTriggerFiftyMoveRule() bool {
	return g.halfMoveClock >= FiftyMoveHalfMoves
}

func (g *Game) Clone() *Game {
	clone := *g
	clone.board = g.board.Clone()
	clone.history = g.History()
	return &clone
}

// Apply plays m without checking legality: the board changes, castling
// rights and half-move clock are updated, the turn passes and m joins the
// history. Use Play for moves that come from a player.
func (g *Game) Apply(m Move) {
	if m.Piece.Color != g.toMove {
		panic(fmt.Errorf("%s moved out of turn", m.Piece))
	}
	m.Apply(g.board)
	g.updateCastlingRights(m)
	if m.Piece.Type == Pawn || m.IsCapture() {
		g.halfMoveClock = 0
	} else {
		g.halfMoveClock++
	}
	g.history = append(g.history, m)
	g.toMove = g.toMove.Opposite()
	g.turn++
}

func (g *Game) updateCastlingRights(m Move) {
	if m.Piece.Type == King {
		g.castling.revoke(m.Piece.Color, KingSide)
		g.castling.revoke(m.Piece.Color, QueenSide)
	}
	if m.Piece.Type == Rook {
		if side, ok := g.rookHomeSide(m.Piece.Color, m.From); ok {
			g.castling.revoke(m.Piece.Color, side)
		}
	}
	if m.Captured != nil && m.Captured.Type == Rook {
		at, _ := m.CapturedSquare()
		if side, ok := g.rookHomeSide(m.Captured.Color, at); ok {
			g.castling.revoke(m.Captured.Color, side)
		}
	}
}

// rookHomeSide reports which castle the rook starting on p belongs to.
func (g *Game) rookHomeSide(color Color, p Position) (CastleSide, bool) {
	if p.Row != g.board.backRankRow(color) {
		return "", false
	}
	switch p.Col {
	case 0:
		return QueenSide, true
	case g.board.width - 1:
		return KingSide, true
	}
	return "", false
}

// State classifies the position with the default analyzer.
func (g *Game) State() (Status, []Move) {
	return DefaultAnalyzer.Analyze(g)
}

// FindMove returns the legal move matching req.
func (g *Game) FindMove(req MoveRequest) (Move, error) {
	_, moves := g.State()
	for _, m := range moves {
		if m.Matches(req) {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %s->%s", ErrIllegalMove, req.From, req.To)
}

// Play applies m if it is legal in the current position and returns the
// resulting status and legal replies.
func (g *Game) Play(m Move) (Status, []Move, error) {
	status, moves := g.State()
	if status.IsOver() {
		return status, moves, ErrGameOver
	}
	legal := false
	for _, candidate := range moves {
		if movesEqual(candidate, m) {
			legal = true
			break
		}
	}
	if !legal {
		return status, moves, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	g.Apply(m)
	status, moves = g.State()
	return status, moves, nil
}

func movesEqual(a, b Move) bool {
	if a.Kind != b.Kind || a.From != b.From || a.To != b.To || a.Piece != b.Piece || a.Promotion != b.Promotion {
		return false
	}
	if (a.Captured == nil) != (b.Captured == nil) {
		return false
	}
	return a.Captured == nil || *a.Captured == *b.Captured
}

package model

import "golang.org/x/sync/errgroup"

type Status string

const (
	InProgress           Status = "inProgress"
	Check                Status = "check"
	Checkmate            Status = "checkmate"
	Stalemate            Status = "stalemate"
	InsufficientMaterial Status = "insufficientMaterial"
	FiftyMoveRule        Status = "fiftyMoveRule"
)

// IsOver reports whether the status ends the game.
func (s Status) IsOver() bool {
	switch s {
	case Checkmate, Stalemate, InsufficientMaterial, FiftyMoveRule:
		return true
	}
	return false
}

// Analyzer classifies positions. With more than one worker the per-square
// generation and filtering run concurrently; the result is the same list in
// the same order as the sequential path.
type Analyzer struct {
	workers int
}

type AnalyzerOption func(*Analyzer)

func WithWorkers(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.workers = n
	}
}

var DefaultAnalyzer = NewAnalyzer()

func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{workers: 1}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns the status of the side to move together with its legal
// moves; callers never need to regenerate the moves.
func (a *Analyzer) Analyze(g *Game) (Status, []Move) {
	lastMove := g.LastMove()
	inCheck := IsInCheck(g.board, g.toMove, lastMove)
	moves := a.LegalMoves(g)

	if len(moves) == 0 {
		if inCheck {
			return Checkmate, moves
		}
		return Stalemate, moves
	}
	if inCheck {
		return Check, moves
	}
	if isInsufficientMaterial(g.board.Pieces(White)) && isInsufficientMaterial(g.board.Pieces(Black)) {
		return InsufficientMaterial, moves
	}
	if g.CanTriggerFiftyMoveRule() {
		return FiftyMoveRule, moves
	}
	return InProgress, moves
}

// LegalMoves lists every fully legal move of the side to move, castles last.
// It panics with ErrMissingKing unless both kings are on the board.
func (a *Analyzer) LegalMoves(g *Game) []Move {
	g.board.mustFindKing(White)
	g.board.mustFindKing(Black)
	lastMove := g.LastMove()
	pieces := g.board.Pieces(g.toMove)

	var moves []Move
	if a.workers <= 1 {
		for _, placed := range pieces {
			moves = append(moves, LegalMovesFrom(g.board, g.toMove, placed.Position, lastMove)...)
		}
	} else {
		perSquare := make([][]Move, len(pieces))
		var group errgroup.Group
		group.SetLimit(a.workers)
		for i, placed := range pieces {
			i, placed := i, placed
			group.Go(func() error {
				perSquare[i] = LegalMovesFrom(g.board, g.toMove, placed.Position, lastMove)
				return nil
			})
		}
		_ = group.Wait()
		for _, squareMoves := range perSquare {
			moves = append(moves, squareMoves...)
		}
	}

	moves = append(moves, CastleMoves(g)...)
	if moves == nil {
		moves = []Move{}
	}
	return moves
}

// isInsufficientMaterial reports whether one side's pieces can never force
// mate on their own: a lone king, or a king with a single bishop or knight.
// Two minor pieces, including two knights, count as sufficient.
func isInsufficientMaterial(pieces []PlacedPiece) bool {
	kings, minors, others := 0, 0, 0
	for _, placed := range pieces {
		switch placed.Piece.Type {
		case King:
			kings++
		case Bishop, Knight:
			minors++
		default:
			others++
		}
	}
	if kings == 0 {
		panic(ErrMissingKing)
	}
	return others == 0 && minors <= 1
}

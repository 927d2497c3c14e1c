package model

// CanCastle reports whether color may castle on side right now: the right is
// still held, king and rook stand on their home squares with only empty
// squares between them, and the king is neither in check nor crosses or
// lands on an attacked square.
func CanCastle(g *Game, color Color, side CastleSide) bool {
	_, ok := castleMove(g, color, side)
	return ok
}

// CastleMoves lists the castles available to the side to move.
func CastleMoves(g *Game) []Move {
	var moves []Move
	for _, side := range []CastleSide{KingSide, QueenSide} {
		if m, ok := castleMove(g, g.toMove, side); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func castleMove(g *Game, color Color, side CastleSide) (Move, bool) {
	if !g.castling.Has(color, side) {
		return Move{}, false
	}
	board := g.board
	row := board.backRankRow(color)
	kingFrom := board.mustFindKing(color)
	if kingFrom.Row != row {
		return Move{}, false
	}

	rookCol, step := board.width-1, 1
	if side == QueenSide {
		rookCol, step = 0, -1
	}
	rookFrom := Position{Col: rookCol, Row: row}
	if rook, ok := board.at(rookFrom); !ok || rook != NewPiece(color, Rook) {
		return Move{}, false
	}
	// the king needs two squares to travel and the rook must stay beyond them
	if abs(rookCol-kingFrom.Col) < 3 {
		return Move{}, false
	}
	for col := kingFrom.Col + step; col != rookCol; col += step {
		if _, occupied := board.Get(col, row); occupied {
			return Move{}, false
		}
	}

	lastMove := g.LastMove()
	if IsInCheck(board, color, lastMove) {
		return Move{}, false
	}
	crossed := kingFrom.offset(step, 0)
	kingTo := kingFrom.offset(2*step, 0)
	for _, square := range []Position{crossed, kingTo} {
		if kingAttackedOn(board, color, kingFrom, square, lastMove) {
			return Move{}, false
		}
	}
	return NewCastle(color, side, kingFrom, kingTo, rookFrom, crossed), true
}

// kingAttackedOn moves the king from kingFrom to square on a clone and tests
// for check there.
func kingAttackedOn(board *Board, color Color, kingFrom, square Position, lastMove *Move) bool {
	scratch := board.Clone()
	king, _ := scratch.Remove(kingFrom.Col, kingFrom.Row)
	scratch.Place(king, square.Col, square.Row)
	return IsInCheck(scratch, color, lastMove)
}

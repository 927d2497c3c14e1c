package model

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	rookDirs   = []Position{{Col: 1, Row: 0}, {Col: -1, Row: 0}, {Col: 0, Row: 1}, {Col: 0, Row: -1}}
	bishopDirs = []Position{{Col: 1, Row: 1}, {Col: 1, Row: -1}, {Col: -1, Row: 1}, {Col: -1, Row: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	kingDirs   = queenDirs
	knightDirs = []Position{
		{Col: 2, Row: 1}, {Col: 2, Row: -1}, {Col: -2, Row: 1}, {Col: -2, Row: -1},
		{Col: 1, Row: 2}, {Col: 1, Row: -2}, {Col: -1, Row: 2}, {Col: -1, Row: -2},
	}
)

// PseudoLegalMoves lists the moves of the piece of color standing on origin,
// obeying geometry and occupancy but ignoring whether the mover's king is
// left attacked. lastMove is the previous move of the game, or nil.
// Castling is produced by CastleMoves, not here.
func PseudoLegalMoves(board *Board, color Color, origin Position, lastMove *Move) []Move {
	piece, ok := board.at(origin)
	if !ok {
		return nil
	}
	if piece.Color != color {
		panic(fmt.Errorf("%s on %s does not belong to %s", piece, origin, color))
	}
	switch piece.Type {
	case Pawn:
		return pawnMoves(board, piece, origin, lastMove)
	case Knight:
		return stepMoves(board, piece, origin, knightDirs)
	case Bishop:
		return slideMoves(board, piece, origin, bishopDirs)
	case Rook:
		return slideMoves(board, piece, origin, rookDirs)
	case Queen:
		return slideMoves(board, piece, origin, queenDirs)
	case King:
		return stepMoves(board, piece, origin, kingDirs)
	default:
		panic(fmt.Errorf("unknown piece type %q", piece.Type))
	}
}

// slideMoves walks each direction until the edge, a capture or a friendly piece.
func slideMoves(board *Board, piece Piece, origin Position, dirs []Position) []Move {
	var moves []Move
	for _, dir := range dirs {
		target := origin.offset(dir.Col, dir.Row)
		for board.InBounds(target.Col, target.Row) {
			occupant, occupied := board.at(target)
			if !occupied {
				moves = append(moves, NewMove(piece, origin, target))
			} else if occupant.Color != piece.Color {
				moves = append(moves, NewTake(piece, origin, target, occupant))
				break
			} else {
				break
			}
			target = target.offset(dir.Col, dir.Row)
		}
	}
	return moves
}

func stepMoves(board *Board, piece Piece, origin Position, dirs []Position) []Move {
	var moves []Move
	for _, dir := range dirs {
		target := origin.offset(dir.Col, dir.Row)
		if !board.InBounds(target.Col, target.Row) {
			continue
		}
		occupant, occupied := board.at(target)
		switch {
		case !occupied:
			moves = append(moves, NewMove(piece, origin, target))
		case occupant.Color != piece.Color:
			moves = append(moves, NewTake(piece, origin, target, occupant))
		}
	}
	return moves
}

func pawnMoves(board *Board, piece Piece, origin Position, lastMove *Move) []Move {
	var moves []Move
	dir := piece.Color.pawnDirection()

	// forward one, then two from the starting rank
	one := origin.offset(0, dir)
	if board.InBounds(one.Col, one.Row) {
		if _, occupied := board.at(one); !occupied {
			moves = appendPawnMove(moves, board, piece, origin, one, nil)
			two := origin.offset(0, 2*dir)
			if origin.Row == board.pawnStartRow(piece.Color) && board.InBounds(two.Col, two.Row) {
				if _, occupied := board.at(two); !occupied {
					moves = appendPawnMove(moves, board, piece, origin, two, nil)
				}
			}
		}
	}

	for _, dCol := range []int{-1, 1} {
		target := origin.offset(dCol, dir)
		if !board.InBounds(target.Col, target.Row) {
			continue
		}
		if occupant, occupied := board.at(target); occupied && occupant.Color != piece.Color {
			moves = appendPawnMove(moves, board, piece, origin, target, &occupant)
		}
	}

	if ep, ok := enPassantMove(board, piece, origin, lastMove); ok {
		moves = append(moves, ep)
	}
	return moves
}

// appendPawnMove adds a pawn move to target, expanding it into one move per
// promotion type when target is on the farthest rank.
func appendPawnMove(moves []Move, board *Board, piece Piece, origin, target Position, captured *Piece) []Move {
	if target.Row == board.promotionRow(piece.Color) {
		for _, promotion := range PromotionTypes {
			moves = append(moves, NewPromotion(piece, origin, target, promotion, captured))
		}
		return moves
	}
	if captured != nil {
		return append(moves, NewTake(piece, origin, target, *captured))
	}
	return append(moves, NewMove(piece, origin, target))
}

// enPassantMove is available only right after an opponent pawn advanced two
// squares to land beside origin.
func enPassantMove(board *Board, piece Piece, origin Position, lastMove *Move) (Move, bool) {
	if lastMove == nil || lastMove.Kind != KindMove {
		return Move{}, false
	}
	if lastMove.Piece != NewPiece(piece.Color.Opposite(), Pawn) {
		return Move{}, false
	}
	if lastMove.From.Col != lastMove.To.Col || abs(lastMove.To.Row-lastMove.From.Row) != 2 {
		return Move{}, false
	}
	if lastMove.To.Row != origin.Row || abs(lastMove.To.Col-origin.Col) != 1 {
		return Move{}, false
	}
	if occupant, ok := board.at(lastMove.To); !ok || occupant != lastMove.Piece {
		return Move{}, false
	}
	target := Position{Col: lastMove.To.Col, Row: origin.Row + piece.Color.pawnDirection()}
	if !board.InBounds(target.Col, target.Row) {
		return Move{}, false
	}
	if _, occupied := board.at(target); occupied {
		return Move{}, false
	}
	return NewEnPassant(piece, origin, target, lastMove.To), true
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

package model

// IsInCheck reports whether the king of color is attacked: some opposing
// piece has a pseudo-legal move capturing it. It panics with ErrMissingKing
// when color has no king on board.
func IsInCheck(board *Board, color Color, lastMove *Move) bool {
	board.mustFindKing(color)
	king := NewPiece(color, King)
	opponent := color.Opposite()
	for _, placed := range board.Pieces(opponent) {
		for _, m := range PseudoLegalMoves(board, opponent, placed.Position, lastMove) {
			if m.Captured != nil && *m.Captured == king {
				return true
			}
		}
	}
	return false
}

// leavesKingSafe simulates m on a clone and reports whether the mover's king
// survives it.
func leavesKingSafe(board *Board, m Move, lastMove *Move) bool {
	scratch := board.Clone()
	m.Apply(scratch)
	return !IsInCheck(scratch, m.Piece.Color, lastMove)
}

// LegalMovesFrom lists the fully legal non-castling moves of the piece on
// origin.
func LegalMovesFrom(board *Board, color Color, origin Position, lastMove *Move) []Move {
	var legal []Move
	for _, m := range PseudoLegalMoves(board, color, origin, lastMove) {
		if leavesKingSafe(board, m, lastMove) {
			legal = append(legal, m)
		}
	}
	return legal
}

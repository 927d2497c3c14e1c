package model

import "errors"

var (
	// ErrOutOfBounds is wrapped by the panic raised on access outside the board.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrMissingKing is wrapped by the panic raised when a color has no king.
	ErrMissingKing = errors.New("missing king")

	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

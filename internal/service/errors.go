package service

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/variantchess-backend/internal/model"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrNotInGame    = errors.New("player is not in this game")
	ErrNotQueued    = errors.New("player is not in the matchmaking queue")
)

func illegalMove(req model.MoveRequest) error {
	if req.Promotion != "" {
		return fmt.Errorf("%w: %s->%s=%s", model.ErrIllegalMove, req.From, req.To, req.Promotion)
	}
	return fmt.Errorf("%w: %s->%s", model.ErrIllegalMove, req.From, req.To)
}

package service

import (
	"fmt"
	"log"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
)

// Setup describes the starting position of a new game. With neither FEN nor
// Grid set the standard 8x8 layout is used.
type Setup struct {
	FEN    string      `json:"fen"`
	Grid   string      `json:"grid"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	ToMove model.Color `json:"toMove"`
	// Castling applies to grid setups only; FEN carries its own rights.
	Castling *model.CastlingRights `json:"castling"`
}

func (s Setup) Game() (*model.Game, error) {
	switch {
	case s.FEN != "":
		return notation.DecodeFEN(s.FEN)
	case s.Grid != "":
		board, err := notation.ParseGrid(s.Width, s.Height, s.Grid)
		if err != nil {
			return nil, err
		}
		if err := notation.ValidatePosition(board); err != nil {
			return nil, err
		}
		toMove := s.ToMove
		switch toMove {
		case "":
			toMove = model.White
		case model.White, model.Black:
		default:
			return nil, fmt.Errorf("%w: unknown color %q", notation.ErrInvalidPosition, toMove)
		}
		var opts []model.GameOption
		if s.Castling != nil {
			opts = append(opts, model.WithCastlingRights(*s.Castling))
		}
		return model.NewGame(board, toMove, opts...), nil
	default:
		return model.NewStandardGame(), nil
	}
}

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(setup Setup) (string, error) {
	game, err := setup.Game()
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	gameID := gs.gameManager.CreateGame(game)
	log.Printf("Created game %s (%dx%d)", gameID, game.Board().Width(), game.Board().Height())
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) error {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) MatchStatus(playerID string) (MatchFoundEvent, bool) {
	return gs.gameManager.MatchStatus(playerID)
}

func (gs *GameService) GetGameState(gameID string) (GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) GetBoard(gameID string) (*model.Board, *model.Move, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return nil, nil, err
	}
	board, last := session.Snapshot()
	return board, last, nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.MoveRequest) (GameState, error) {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}

package controller

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
	"github.com/benbeisheim/variantchess-backend/internal/render"
	"github.com/benbeisheim/variantchess-backend/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// errorStatus maps service and rules errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotInGame), errors.Is(err, service.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, service.ErrNotQueued):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, notation.ErrInvalidFEN),
		errors.Is(err, notation.ErrInvalidGrid),
		errors.Is(err, notation.ErrInvalidPosition),
		errors.Is(err, notation.ErrInvalidSquareName):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var setup service.Setup
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&setup); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(setup)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

// moveBody accepts squares either as coordinates or by name ("e2").
type moveBody struct {
	model.MoveRequest
	FromName string `json:"fromSquare"`
	ToName   string `json:"toSquare"`
}

func (b moveBody) request() (model.MoveRequest, error) {
	req := b.MoveRequest
	if b.FromName != "" {
		from, err := notation.ParsePosition(b.FromName)
		if err != nil {
			return req, err
		}
		req.From = from
	}
	if b.ToName != "" {
		to, err := notation.ParsePosition(b.ToName)
		if err != nil {
			return req, err
		}
		req.To = to
	}
	return req, nil
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var body moveBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	req, err := body.request()
	if err != nil {
		return sendError(c, err)
	}

	state, err := gc.gameService.HandleMove(c.Params("gameId"), c.Locals("playerID").(string), req)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) BoardSVG(c *fiber.Ctx) error {
	board, last, err := gc.gameService.GetBoard(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}

	opts := render.DefaultSVGOptions()
	if size := c.QueryInt("size"); size > 0 {
		opts.SquareSize = size
	}
	if last != nil {
		opts.Highlight = []model.Position{last.From, last.To}
	}

	var buf bytes.Buffer
	render.SVG(&buf, board, opts)
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.LeaveMatchmaking(c.Locals("playerID").(string)); err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "left",
	})
}

func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	event, ok := gc.gameService.MatchStatus(c.Locals("playerID").(string))
	if !ok {
		return c.JSON(fiber.Map{
			"status": "waiting",
		})
	}
	return c.JSON(fiber.Map{
		"status":  "matched",
		"game_id": event.GameID,
		"color":   event.Color,
	})
}

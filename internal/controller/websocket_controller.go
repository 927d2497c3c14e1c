package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/service"
	"github.com/benbeisheim/variantchess-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("Failed to register connection: %v", err)
		wsc.sendError(c, err)
		closeConn(c)
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			wsc.sendError(c, err)
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendError(c, err)
		}
	}
}

// handleMessage dispatches one client message. The resulting state reaches
// the client through the session broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking waits on a websocket for the player's match and sends it
// as a single matchFound message.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	// A read error means the client went away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		// a closed channel means a newer connection took over
		if ok {
			if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeMatch, Payload: json.RawMessage(event)}); err != nil {
				log.Printf("Failed to send match to player %s: %v", playerID, err)
			}
		}
	case <-closed:
	}
	closeConn(c)
	<-closed
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, err error) {
	if werr := c.WriteJSON(ws.NewMessage(ws.MessageTypeError, errorPayload{Error: err.Error()})); werr != nil {
		log.Printf("Failed to send error %q: %v", err, werr)
	}
}

func closeConn(c *websocket.Conn) {
	if err := c.Close(); err != nil {
		log.Printf("Failed to close websocket: %v", err)
	}
}

type errorPayload struct {
	Error string `json:"error"`
}

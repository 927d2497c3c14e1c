package service

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
	"github.com/benbeisheim/variantchess-backend/internal/ws"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// GameState is the snapshot sent to clients after every change.
type GameState struct {
	ID             string               `json:"id"`
	FEN            string               `json:"fen"`
	Grid           string               `json:"grid"`
	Width          int                  `json:"width"`
	Height         int                  `json:"height"`
	Squares        []model.Square       `json:"squares"`
	ToMove         model.Color          `json:"toMove"`
	Turn           int                  `json:"turn"`
	Status         model.Status         `json:"status"`
	LegalMoves     []model.Move         `json:"legalMoves"`
	LastMove       *model.Move          `json:"lastMove"`
	CastlingRights model.CastlingRights `json:"castlingRights"`
	HalfMoveClock  int                  `json:"halfMoveClock"`
	Players        model.Seats          `json:"players"`
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Session is one hosted game: the rules state, who sits where, and the
// sockets watching it. The analysis of the current position is cached so
// state reads and move validation never regenerate it.
type Session struct {
	ID          string
	game        *model.Game
	seats       model.Seats
	analyzer    *model.Analyzer
	status      model.Status
	moves       []model.Move
	connections *GameConnections
	mu          sync.Mutex
}

func NewSession(id string, game *model.Game, analyzer *model.Analyzer) *Session {
	s := &Session{
		ID:          id,
		game:        game,
		analyzer:    analyzer,
		connections: NewGameConnections(),
	}
	s.status, s.moves = analyzer.Analyze(game)
	return s
}

func (s *Session) AddPlayer(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seats.Take(playerID)
}

func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() GameState {
	board := s.game.Board()
	return GameState{
		ID:             s.ID,
		FEN:            notation.EncodeFEN(s.game),
		Grid:           notation.FormatGrid(board),
		Width:          board.Width(),
		Height:         board.Height(),
		Squares:        board.Squares(),
		ToMove:         s.game.ToMove(),
		Turn:           s.game.Turn(),
		Status:         s.status,
		LegalMoves:     append([]model.Move{}, s.moves...),
		LastMove:       s.game.LastMove(),
		CastlingRights: s.game.CastlingRights(),
		HalfMoveClock:  s.game.HalfMoveClock(),
		Players:        s.seats,
	}
}

// Snapshot returns a copy of the current board and the move that led to it.
func (s *Session) Snapshot() (*model.Board, *model.Move) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Board().Clone(), s.game.LastMove()
}

// MakeMove plays req for playerID and broadcasts the new state.
func (s *Session) MakeMove(playerID string, req model.MoveRequest) (GameState, error) {
	s.mu.Lock()
	color, ok := s.seats.ColorOf(playerID)
	if !ok {
		s.mu.Unlock()
		return GameState{}, ErrNotInGame
	}
	if s.status.IsOver() {
		s.mu.Unlock()
		return GameState{}, model.ErrGameOver
	}
	if color != s.game.ToMove() {
		s.mu.Unlock()
		return GameState{}, ErrNotYourTurn
	}

	var chosen *model.Move
	for i := range s.moves {
		if s.moves[i].Matches(req) {
			chosen = &s.moves[i]
			break
		}
	}
	if chosen == nil {
		s.mu.Unlock()
		return GameState{}, illegalMove(req)
	}

	s.game.Apply(*chosen)
	s.status, s.moves = s.analyzer.Analyze(s.game)
	state := s.stateLocked()
	s.mu.Unlock()

	log.Printf("game %s: %s played %s, status %s", s.ID, playerID, state.LastMove, state.Status)
	s.broadcast(state)
	return state, nil
}

// RegisterConnection attaches conn for playerID and sends it the current
// state. A player already holding a live connection keeps it and the new one
// is closed.
func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.connections.mu.Lock()
	if _, exists := s.connections.connections[playerID]; exists {
		s.connections.mu.Unlock()
		if err := conn.WriteJSON(ws.NewMessage(ws.MessageTypeError, "connection already exists")); err != nil {
			log.Printf("game %s: failed to reject duplicate connection for player %s: %v", s.ID, playerID, err)
		}
		if err := conn.Close(); err != nil {
			log.Printf("game %s: failed to close duplicate connection for player %s: %v", s.ID, playerID, err)
		}
		return nil
	}
	s.connections.connections[playerID] = conn
	s.connections.mu.Unlock()
	log.Printf("game %s: registered connection for player %s", s.ID, playerID)

	s.broadcast(s.State())
	return nil
}

func (s *Session) UnregisterConnection(playerID string) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	delete(s.connections.connections, playerID)
}

func (s *Session) ConnectionCount() int {
	s.connections.mu.RLock()
	defer s.connections.mu.RUnlock()
	return len(s.connections.connections)
}

func (s *Session) broadcast(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", s.ID, err)
		return
	}

	s.connections.mu.RLock()
	active := make(map[string]Conn, len(s.connections.connections))
	for playerID, conn := range s.connections.connections {
		active[playerID] = conn
	}
	s.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeGameState, Payload: payload}); err != nil {
			log.Printf("game %s: failed to send state to player %s: %v", s.ID, playerID, err)
			s.connections.mu.Lock()
			if s.connections.connections[playerID] == conn {
				delete(s.connections.connections, playerID)
			}
			s.connections.mu.Unlock()
		}
	}
}

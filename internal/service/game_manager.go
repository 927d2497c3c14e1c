package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benbeisheim/variantchess-backend/internal/model"
)

type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  model.Color `json:"color"`
}

type GameManager struct {
	games            map[string]*Session
	queue            *model.Queue
	matchingChannels map[string]chan string
	// matches keeps found matches until the player asks for them.
	matches  map[string]MatchFoundEvent
	analyzer *model.Analyzer
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	mu       sync.RWMutex
}

type ManagerOption func(*GameManager)

func WithAnalyzer(a *model.Analyzer) ManagerOption {
	return func(gm *GameManager) {
		gm.analyzer = a
	}
}

// WithMatchmakingInterval sets how often the queue is paired. Zero disables
// the background matcher; MatchPlayers can still be called directly.
func WithMatchmakingInterval(d time.Duration) ManagerOption {
	return func(gm *GameManager) {
		gm.interval = d
	}
}

func NewGameManager(opts ...ManagerOption) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*Session),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		matches:          make(map[string]MatchFoundEvent),
		analyzer:         model.DefaultAnalyzer,
		interval:         time.Second,
		stop:             make(chan struct{}),
	}
	for _, opt := range opts {
		opt(gm)
	}

	if gm.interval > 0 {
		go gm.processMatchmaking()
	}
	return gm
}

// Close stops the background matcher.
func (gm *GameManager) Close() {
	gm.stopOnce.Do(func() { close(gm.stop) })
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(gm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.stop:
			return
		case <-ticker.C:
			gm.MatchPlayers()
		}
	}
}

// MatchPlayers pairs queued players into new games, longest waiting first,
// and returns how many games were created.
func (gm *GameManager) MatchPlayers() int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	created := 0
	for {
		player1, player2, ok := gm.queue.NextPair()
		if !ok {
			return created
		}

		session := gm.newSessionLocked(model.NewStandardGame())
		p1Color, err := session.AddPlayer(player1.PlayerID)
		if err != nil {
			log.Printf("Error adding player to game: %v", err)
			continue
		}
		p2Color, err := session.AddPlayer(player2.PlayerID)
		if err != nil {
			log.Printf("Error adding player to game: %v", err)
			continue
		}
		created++
		log.Printf("Matched %s (%s) and %s (%s) in game %s",
			player1.PlayerID, p1Color, player2.PlayerID, p2Color, session.ID)

		gm.notifyMatchLocked(player1.PlayerID, MatchFoundEvent{GameID: session.ID, Color: p1Color})
		gm.notifyMatchLocked(player2.PlayerID, MatchFoundEvent{GameID: session.ID, Color: p2Color})
	}
}

// notifyMatchLocked records event and pushes it to the player's channel if
// one is registered.
func (gm *GameManager) notifyMatchLocked(playerID string, event MatchFoundEvent) {
	gm.matches[playerID] = event
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	select {
	case ch <- mustJSON(event):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Printf("Failed to send match event to player %s", playerID)
	}
}

// RegisterMatchmakingChannel sends the player's match on ch and closes it.
// ch should be buffered; a match found earlier is delivered at once.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}
	gm.matchingChannels[playerID] = ch
	if event, ok := gm.matches[playerID]; ok {
		gm.notifyMatchLocked(playerID, event)
	}
}

// UnregisterMatchmakingChannel forgets ch without closing it; its creator
// owns it. A channel registered later for the same player is left alone.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if gm.matchingChannels[playerID] == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

func (gm *GameManager) newSessionLocked(game *model.Game) *Session {
	id := uuid.New().String()
	session := NewSession(id, game, gm.analyzer)
	gm.games[id] = session
	return session
}

// CreateGame hosts game under a fresh id.
func (gm *GameManager) CreateGame(game *model.Game) string {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.newSessionLocked(game).ID
}

func (gm *GameManager) GetSession(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return session, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return "", err
	}
	return session.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.matches, playerID)
	return gm.queue.AddPlayer(playerID)
}

func (gm *GameManager) LeaveMatchmaking(playerID string) error {
	if !gm.queue.RemovePlayer(playerID) {
		return ErrNotQueued
	}
	return nil
}

// MatchStatus reports the match found for playerID, if any. ok is false while
// the player is still waiting.
func (gm *GameManager) MatchStatus(playerID string) (MatchFoundEvent, bool) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	event, ok := gm.matches[playerID]
	return event, ok
}

func (gm *GameManager) QueueSize() int {
	return gm.queue.Size()
}

func (gm *GameManager) GetGameState(gameID string) (GameState, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return GameState{}, err
	}
	return session.State(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.MoveRequest) (GameState, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return GameState{}, err
	}
	return session.MakeMove(playerID, move)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn Conn) error {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID)
}

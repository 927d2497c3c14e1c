package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	gm := service.NewGameManager(service.WithMatchmakingInterval(0))
	t.Cleanup(gm.Close)
	app := fiber.New()
	RegisterRoutes(app, service.NewGameService(gm), websocket.Config{})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, player, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode, out
}

func createGame(t *testing.T, app *fiber.App, body string) string {
	t.Helper()
	code, out := do(t, app, http.MethodPost, "/api/game/create", "alice", body)
	if code != fiber.StatusOK {
		t.Fatalf("create: %d %v", code, out)
	}
	return out["game_id"].(string)
}

func TestPlayerIDRequired(t *testing.T) {
	app := newTestApp(t)
	code, out := do(t, app, http.MethodPost, "/api/game/create", "", "")
	if code != fiber.StatusUnauthorized {
		t.Fatalf("code = %d, body %v", code, out)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/game/create?playerId=zoe", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("query player id: code = %d", resp.StatusCode)
	}
}

func TestGameFlow(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app, "")

	if code, out := do(t, app, http.MethodPost, "/api/game/join/"+id, "alice", ""); code != fiber.StatusOK || out["color"] != "white" {
		t.Fatalf("alice join: %d %v", code, out)
	}
	if code, out := do(t, app, http.MethodPost, "/api/game/join/"+id, "bob", ""); code != fiber.StatusOK || out["color"] != "black" {
		t.Fatalf("bob join: %d %v", code, out)
	}
	if code, _ := do(t, app, http.MethodPost, "/api/game/join/"+id, "carol", ""); code != fiber.StatusConflict {
		t.Fatalf("carol join: %d", code)
	}

	code, out := do(t, app, http.MethodPost, "/api/game/"+id+"/move", "bob", `{"fromSquare":"e7","toSquare":"e5"}`)
	if code != fiber.StatusForbidden {
		t.Fatalf("out of turn: %d %v", code, out)
	}
	code, out = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "alice", `{"fromSquare":"e2","toSquare":"e5"}`)
	if code != fiber.StatusUnprocessableEntity {
		t.Fatalf("illegal: %d %v", code, out)
	}
	code, out = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "alice", `{"fromSquare":"E2","toSquare":"e4"}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("bad square: %d %v", code, out)
	}

	code, out = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "alice", `{"from":{"col":4,"row":1},"to":{"col":4,"row":3}}`)
	if code != fiber.StatusOK {
		t.Fatalf("e2e4: %d %v", code, out)
	}
	if out["toMove"] != "black" || out["status"] != string(model.InProgress) {
		t.Fatalf("state after e4: %v", out)
	}

	code, out = do(t, app, http.MethodGet, "/api/game/"+id, "carol", "")
	if code != fiber.StatusOK {
		t.Fatalf("get state: %d", code)
	}
	if out["fen"] != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1" {
		t.Fatalf("fen = %v", out["fen"])
	}
	if moves := out["legalMoves"].([]interface{}); len(moves) != 20 {
		t.Fatalf("got %d legal moves", len(moves))
	}
}

func TestCreateFromSetups(t *testing.T) {
	app := newTestApp(t)

	id := createGame(t, app, `{"grid":"♚ \n♟ \n  \n ♙\n ♔","width":2,"height":5}`)
	code, out := do(t, app, http.MethodGet, "/api/game/"+id, "alice", "")
	if code != fiber.StatusOK || out["width"].(float64) != 2 || out["height"].(float64) != 5 {
		t.Fatalf("grid game: %d %v", code, out)
	}

	id = createGame(t, app, `{"fen":"k11/12/12/11K w - - 0 1"}`)
	_, out = do(t, app, http.MethodGet, "/api/game/"+id, "alice", "")
	if out["fen"] != "k11/12/12/11K w - - 0 1" {
		t.Fatalf("fen game: %v", out["fen"])
	}

	code, _ = do(t, app, http.MethodPost, "/api/game/create", "alice", `{"fen":"not a fen"}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("bad fen: %d", code)
	}
	code, _ = do(t, app, http.MethodPost, "/api/game/create", "alice", `{"fen":`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("bad body: %d", code)
	}

	for _, body := range []string{
		`{"fen":"k99999999999999/K99999999999999 w - -"}`,
		`{"grid":"♔♚  ","width":4611686018427387905,"height":4}`,
	} {
		if code, out := do(t, app, http.MethodPost, "/api/game/create", "alice", body); code != fiber.StatusBadRequest {
			t.Fatalf("oversized board %s: %d %v", body, code, out)
		}
	}
}

func TestSeatsSurviveLaterRequests(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app, "")
	do(t, app, http.MethodPost, "/api/game/join/"+id, "alice", "")
	do(t, app, http.MethodPost, "/api/game/join/"+id, "bob", "")

	code, out := do(t, app, http.MethodGet, "/api/game/"+id, "mallory", "")
	if code != fiber.StatusOK {
		t.Fatalf("get state: %d", code)
	}
	players := out["players"].(map[string]interface{})
	white := players["white"].(map[string]interface{})
	black := players["black"].(map[string]interface{})
	if white["id"] != "alice" || black["id"] != "bob" {
		t.Fatalf("players = %v", players)
	}

	code, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "mallory", `{"fromSquare":"e2","toSquare":"e4"}`)
	if code != fiber.StatusForbidden {
		t.Fatalf("mallory move: %d", code)
	}
}

func TestUnknownGame(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/game/nope", "/api/game/nope/board.svg"} {
		if code, _ := do(t, app, http.MethodGet, path, "alice", ""); code != fiber.StatusNotFound {
			t.Fatalf("%s: %d", path, code)
		}
	}
}

func TestBoardSVG(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app, "")

	req := httptest.NewRequest(http.MethodGet, "/api/game/"+id+"/board.svg?size=20", nil)
	req.Header.Set("X-Player-ID", "alice")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("code %d, content type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `width="160"`) {
		t.Fatalf("unexpected svg: %.200s", body)
	}
}

func TestMatchmakingRoutes(t *testing.T) {
	gm := service.NewGameManager(service.WithMatchmakingInterval(0))
	defer gm.Close()
	app := fiber.New()
	RegisterRoutes(app, service.NewGameService(gm), websocket.Config{})

	for _, player := range []string{"alice", "bob"} {
		if code, out := do(t, app, http.MethodPost, "/api/game/matchmaking/join", player, ""); code != fiber.StatusOK || out["status"] != "queued" {
			t.Fatalf("%s join: %d %v", player, code, out)
		}
	}
	if code, _ := do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", ""); code != fiber.StatusConflict {
		t.Fatalf("double join: %d", code)
	}
	if _, out := do(t, app, http.MethodGet, "/api/game/matchmaking/status", "alice", ""); out["status"] != "waiting" {
		t.Fatalf("before matching: %v", out)
	}

	gm.MatchPlayers()
	_, alice := do(t, app, http.MethodGet, "/api/game/matchmaking/status", "alice", "")
	_, bob := do(t, app, http.MethodGet, "/api/game/matchmaking/status", "bob", "")
	if alice["status"] != "matched" || alice["game_id"] != bob["game_id"] || alice["color"] == bob["color"] {
		t.Fatalf("alice %v, bob %v", alice, bob)
	}

	if code, _ := do(t, app, http.MethodPost, "/api/game/matchmaking/leave", "alice", ""); code != fiber.StatusConflict {
		t.Fatalf("leave after match: %d", code)
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app := newTestApp(t)
	code, _ := do(t, app, http.MethodGet, "/ws/game/abc", "alice", "")
	if code != fiber.StatusUpgradeRequired {
		t.Fatalf("code = %d, want 426", code)
	}
}

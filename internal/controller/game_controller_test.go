package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NavyAnt24/Chess/internal/engine"
	"github.com/NavyAnt24/Chess/internal/middleware"
	"github.com/NavyAnt24/Chess/internal/model"
	"github.com/NavyAnt24/Chess/internal/service"
	"github.com/NavyAnt24/Chess/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*fiber.App, *service.GameService) {
	gameService := service.NewGameService(service.NewGameManager())
	app := fiber.New()
	RegisterRoutes(app, gameService, websocket.Config{})
	return app, gameService
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]json.RawMessage{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func createGame(t *testing.T, app *fiber.App, setup interface{}) string {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/game/create", setup)
	require.Equal(t, fiber.StatusCreated, status)
	var id string
	require.NoError(t, json.Unmarshal(body["game_id"], &id))
	return id
}

func TestCreateAndFetchGame(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app, nil)

	status, body := do(t, app, http.MethodGet, "/api/game/"+id, nil)
	require.Equal(t, fiber.StatusOK, status)
	var moves []engine.Move
	require.NoError(t, json.Unmarshal(body["legalMoves"], &moves))
	assert.Len(t, moves, 20)
	assert.JSONEq(t, `"white"`, string(body["toMove"]))

	status, _ = do(t, app, http.MethodGet, "/api/game/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestClientIDHeaderIsAssigned(t *testing.T) {
	app, _ := newTestApp()
	req := httptest.NewRequest(http.MethodPost, "/api/game/create", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(middleware.ClientIDHeader))

	req = httptest.NewRequest(http.MethodPost, "/api/game/create", nil)
	req.Header.Set(middleware.ClientIDHeader, "me")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "me", resp.Header.Get(middleware.ClientIDHeader))
}

func TestMoveEndpoint(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app, nil)
	path := "/api/game/" + id + "/move"

	status, body := do(t, app, http.MethodPost, path, model.WSMove{From: engine.Sq(6, 4), To: engine.Sq(4, 4)})
	require.Equal(t, fiber.StatusOK, status, string(body["error"]))
	assert.JSONEq(t, `"black"`, string(body["toMove"]))

	tests := []struct {
		name   string
		move   interface{}
		status int
	}{
		{"wrong side", model.WSMove{From: engine.Sq(6, 3), To: engine.Sq(4, 3)}, fiber.StatusConflict},
		{"blocked", model.WSMove{From: engine.Sq(0, 0), To: engine.Sq(3, 0)}, fiber.StatusUnprocessableEntity},
		{"empty source", model.WSMove{From: engine.Sq(4, 0), To: engine.Sq(3, 0)}, fiber.StatusUnprocessableEntity},
		{"malformed", map[string]string{"from": "e2"}, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, path, tt.move)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}

	status, _ = do(t, app, http.MethodPost, "/api/game/missing/move", model.WSMove{})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCheckmateThroughAPI(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app, nil)
	path := "/api/game/" + id + "/move"
	var body map[string]json.RawMessage
	for _, m := range []model.WSMove{
		{From: engine.Sq(6, 5), To: engine.Sq(5, 5)},
		{From: engine.Sq(1, 4), To: engine.Sq(3, 4)},
		{From: engine.Sq(6, 6), To: engine.Sq(4, 6)},
		{From: engine.Sq(0, 3), To: engine.Sq(4, 7)},
	} {
		var status int
		status, body = do(t, app, http.MethodPost, path, m)
		require.Equal(t, fiber.StatusOK, status)
	}
	assert.JSONEq(t, `{"status":"checkmate","color":"white"}`, string(body["result"]))

	status, _ := do(t, app, http.MethodPost, path, model.WSMove{From: engine.Sq(6, 0), To: engine.Sq(5, 0)})
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestCustomSetup(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app, service.Setup{
		Pieces: []engine.Piece{
			{Type: engine.King, Color: engine.Black, Square: engine.Sq(0, 7)},
			{Type: engine.Queen, Color: engine.White, Square: engine.Sq(1, 5)},
			{Type: engine.King, Color: engine.White, Square: engine.Sq(2, 6)},
		},
		ToMove: engine.Black,
	})
	status, body := do(t, app, http.MethodGet, "/api/game/"+id, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"stalemate"}`, string(body["result"]))

	status, _ = do(t, app, http.MethodPost, "/api/game/create", service.Setup{ToMove: engine.White})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestLegalMovesEndpoint(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app, nil)

	status, body := do(t, app, http.MethodGet, "/api/game/"+id+"/moves?rank=7&file=1", nil)
	require.Equal(t, fiber.StatusOK, status)
	var moves []engine.Move
	require.NoError(t, json.Unmarshal(body["moves"], &moves))
	assert.ElementsMatch(t, []engine.Move{
		{From: engine.Sq(7, 1), To: engine.Sq(5, 0)},
		{From: engine.Sq(7, 1), To: engine.Sq(5, 2)},
	}, moves)

	status, _ = do(t, app, http.MethodGet, "/api/game/"+id+"/moves?rank=9&file=1", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestEndGameEndpoint(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app, nil)

	status, _ := do(t, app, http.MethodDelete, "/api/game/"+id, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = do(t, app, http.MethodDelete, "/api/game/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app, nil)
	req := httptest.NewRequest(http.MethodGet, "/ws/game/"+id, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestHandleMessage(t *testing.T) {
	_, gameService := newTestApp()
	id, err := gameService.CreateGame(nil)
	require.NoError(t, err)
	wsc := NewWebSocketController(gameService)

	msg, err := ws.NewMessage(ws.MessageTypeMove, model.WSMove{From: engine.Sq(6, 4), To: engine.Sq(4, 4)})
	require.NoError(t, err)
	require.NoError(t, wsc.handleMessage(id, msg))
	state, err := gameService.GetGameState(id)
	require.NoError(t, err)
	assert.Equal(t, engine.Black, state.ToMove)

	assert.ErrorIs(t, wsc.handleMessage(id, msg), engine.ErrNoPieceAtSource)
	assert.Error(t, wsc.handleMessage(id, ws.Message{Type: "resign"}))
	assert.Error(t, wsc.handleMessage(id, ws.Message{Type: ws.MessageTypeMove, Payload: json.RawMessage(`"e2e4"`)}))
}

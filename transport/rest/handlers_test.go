package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t      *testing.T
	server *httptest.Server
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, entity.DefaultBoardSize, 10)

	server := httptest.NewServer(New(logger, manager).Handler())
	t.Cleanup(server.Close)

	return &testAPI{t: t, server: server}
}

func (that *testAPI) do(method, path, body string) (*http.Response, []byte) {
	that.t.Helper()

	req, err := http.NewRequest(method, that.server.URL+path, strings.NewReader(body))
	require.NoError(that.t, err)

	resp, err := that.server.Client().Do(req)
	require.NoError(that.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(that.t, err)

	return resp, data
}

func (that *testAPI) createGame(body string) entity.GameSnapshot {
	that.t.Helper()

	resp, data := that.do(http.MethodPost, "/games", body)
	require.Equal(that.t, http.StatusCreated, resp.StatusCode, string(data))

	var game entity.GameSnapshot
	require.NoError(that.t, json.Unmarshal(data, &game))

	return game
}

func errorOf(t *testing.T, data []byte) string {
	t.Helper()

	var resp errorResponse
	require.NoError(t, json.Unmarshal(data, &resp))

	return resp.Error
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)

	resp, data := api.do(http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(data))
}

func TestCreateGame(t *testing.T) {
	t.Run("Empty body creates a default game", func(t *testing.T) {
		// Given: a running API
		api := newTestAPI(t)

		// When: posting without a body
		game := api.createGame("")

		// Then: a 15x15 game is created
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.DefaultBoardSize, game.State.Size)
		assert.Len(t, game.Board, entity.DefaultBoardSize)
	})

	t.Run("Size in the body", func(t *testing.T) {
		api := newTestAPI(t)

		game := api.createGame(`{"size": 3}`)

		assert.Equal(t, []string{"000", "000", "000"}, game.Board)
	})

	t.Run("Invalid size", func(t *testing.T) {
		// Given: a running API
		api := newTestAPI(t)

		// When: asking for a negative size
		resp, data := api.do(http.MethodPost, "/games", `{"size": -1}`)

		// Then: the request is rejected
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid_board_size", errorOf(t, data))
	})

	t.Run("Size above the maximum", func(t *testing.T) {
		// Given: a running API
		api := newTestAPI(t)

		// When: asking for a 20000x20000 board
		resp, data := api.do(http.MethodPost, "/games", `{"size": 20000}`)

		// Then: the request is rejected without creating a game
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid_board_size", errorOf(t, data))
	})

	t.Run("Reset to a size above the maximum", func(t *testing.T) {
		// Given: an existing game
		api := newTestAPI(t)
		game := api.createGame("")

		// When: resetting it to a board one row above the cap
		resp, data := api.do(http.MethodPost, "/games/"+game.ID+"/reset", `{"size": 101}`)

		// Then: the request is rejected
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid_board_size", errorOf(t, data))
	})

	t.Run("Malformed body", func(t *testing.T) {
		api := newTestAPI(t)

		resp, data := api.do(http.MethodPost, "/games", `{"size":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid_body", errorOf(t, data))
	})
}

func TestMakeTurn(t *testing.T) {
	t.Run("Accepted move returns the result and the game", func(t *testing.T) {
		// Given: a new game
		api := newTestAPI(t)
		game := api.createGame("")

		// When: black plays (7, 7)
		resp, data := api.do(http.MethodPost, "/games/"+game.ID+"/moves", `{"x": 7, "y": 7}`)

		// Then: the game continues with white to move
		require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
		assert.JSONEq(t, `{"placed":{"x":7,"y":7},"player":"black","outcome":"continue","next_player":"white"}`,
			extract(t, data, "result"))

		var body struct {
			Game struct {
				State struct {
					CurrentPlayer string `json:"current_player"`
					MovesPlayed   int    `json:"moves_played"`
				} `json:"state"`
			} `json:"game"`
		}
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, "white", body.Game.State.CurrentPlayer)
		assert.Equal(t, 1, body.Game.State.MovesPlayed)
	})

	t.Run("Error kinds map to status codes", func(t *testing.T) {
		// Given: a game with a stone at (0, 0)
		api := newTestAPI(t)
		game := api.createGame("")
		resp, _ := api.do(http.MethodPost, "/games/"+game.ID+"/moves", `{"x": 0, "y": 0}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		cases := []struct {
			path, body string
			status     int
			code       string
		}{
			{"/games/" + game.ID + "/moves", `{"x": -1, "y": 0}`, http.StatusBadRequest, "out_of_bounds"},
			{"/games/" + game.ID + "/moves", `{"x": 0, "y": 0}`, http.StatusConflict, "cell_occupied"},
			{"/games/" + game.ID + "/moves", `{"x": 1}`, http.StatusBadRequest, "invalid_body"},
			{"/games/missing/moves", `{"x": 1, "y": 1}`, http.StatusNotFound, "game_not_found"},
		}

		for _, c := range cases {
			// When: the faulty move is posted
			resp, data := api.do(http.MethodPost, c.path, c.body)

			// Then: the matching status and code are returned
			assert.Equal(t, c.status, resp.StatusCode, c.body)
			assert.Equal(t, c.code, errorOf(t, data), c.body)
		}
	})

	t.Run("Move after game over", func(t *testing.T) {
		// Given: a finished 1x1 game
		api := newTestAPI(t)
		game := api.createGame(`{"size": 1}`)
		resp, data := api.do(http.MethodPost, "/games/"+game.ID+"/moves", `{"x": 0, "y": 0}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, extract(t, data, "result"), `"outcome":"draw"`)

		// When: another move is posted
		resp, data = api.do(http.MethodPost, "/games/"+game.ID+"/moves", `{"x": 0, "y": 0}`)

		// Then: it conflicts with the finished game
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "game_already_over", errorOf(t, data))
	})
}

func TestGameLifecycle(t *testing.T) {
	// Given: a game with one stone
	api := newTestAPI(t)
	game := api.createGame("")
	resp, _ := api.do(http.MethodPost, "/games/"+game.ID+"/moves", `{"x": 2, "y": 2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// When: fetching it
	resp, data := api.do(http.MethodGet, "/games/"+game.ID, "")

	// Then: the stone is on the board
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched entity.GameSnapshot
	require.NoError(t, json.Unmarshal(data, &fetched))
	assert.Equal(t, "001000000000000", fetched.Board[2])

	// When: resetting it to 5x5
	resp, data = api.do(http.MethodPost, "/games/"+game.ID+"/reset", `{"size": 5}`)

	// Then: the board is empty and smaller
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reset entity.GameSnapshot
	require.NoError(t, json.Unmarshal(data, &reset))
	assert.Equal(t, []string{"00000", "00000", "00000", "00000", "00000"}, reset.Board)

	// When: deleting it
	resp, _ = api.do(http.MethodDelete, "/games/"+game.ID, "")

	// Then: it is gone
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = api.do(http.MethodGet, "/games/"+game.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func extract(t *testing.T, data []byte, key string) string {
	t.Helper()

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &body))

	return string(body[key])
}

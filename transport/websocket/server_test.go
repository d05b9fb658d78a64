package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/bot"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGameService struct {
	mock.Mock
}

func (that *mockGameService) GetGame(ctx context.Context, id string) (*entity.Match, error) {
	args := that.Called(ctx, id)
	match, _ := args.Get(0).(*entity.Match)
	return match, args.Error(1)
}

func (that *mockGameService) MakeTurn(ctx context.Context, id string, cell int) (*entity.Match, error) {
	args := that.Called(ctx, id, cell)
	match, _ := args.Get(0).(*entity.Match)
	return match, args.Error(1)
}

func newTestMatch(t *testing.T, moves ...int) *entity.Match {
	t.Helper()

	game, err := entity.NewGame(entity.NewHumanPlayer("X", "Player"), bot.NewSmartPlayer("O", ""))
	require.NoError(t, err)

	for _, move := range moves {
		require.NoError(t, game.CheckCell(move))
	}

	return &entity.Match{ID: "game-1", Game: game}
}

func newTestServer(t *testing.T, gameService *mockGameService, allowedOrigins ...string) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	router.Handle("/games/{id}/ws", New(logger, gameService, allowedOrigins))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/games/game-1/ws"
}

func dial(t *testing.T, gameService *mockGameService) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(newTestServer(t, gameService), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action, payload string) Message {
	t.Helper()

	message := Message{Action: action}
	if payload != "" {
		message.Payload = json.RawMessage(payload)
	}
	require.NoError(t, conn.WriteJSON(message))

	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))

	return reply
}

func TestServer_State(t *testing.T) {
	// Given: a stored game where X opened and O answered
	gameService := &mockGameService{}
	gameService.On("GetGame", mock.Anything, "game-1").Return(newTestMatch(t, 0, 4), nil).Once()
	conn := dial(t, gameService)

	// When: the client asks for the state
	reply := send(t, conn, actionState, "")

	// Then: the board comes back
	require.Equal(t, actionState, reply.Action)
	var view response.Game
	require.NoError(t, json.Unmarshal(reply.Payload, &view))
	assert.Equal(t, "game-1", view.ID)
	assert.Equal(t, "O", view.Board[4])
	gameService.AssertExpectations(t)
}

func TestServer_Turn(t *testing.T) {
	t.Run("Returns the state after the turn", func(t *testing.T) {
		gameService := &mockGameService{}
		gameService.On("MakeTurn", mock.Anything, "game-1", 0).Return(newTestMatch(t, 0, 4), nil).Once()
		conn := dial(t, gameService)

		reply := send(t, conn, actionTurn, `{"cell":0}`)

		require.Equal(t, actionState, reply.Action)
		var view response.Game
		require.NoError(t, json.Unmarshal(reply.Payload, &view))
		assert.Equal(t, "X", view.Board[0])
		gameService.AssertExpectations(t)
	})

	t.Run("Reports service errors and keeps the connection", func(t *testing.T) {
		// Given: the cell is taken
		gameService := &mockGameService{}
		gameService.On("MakeTurn", mock.Anything, "game-1", 4).Return(nil, apperror.ErrCellOccupied).Once()
		gameService.On("GetGame", mock.Anything, "game-1").Return(newTestMatch(t, 0, 4), nil).Once()
		conn := dial(t, gameService)

		// When: the client plays it
		reply := send(t, conn, actionTurn, `{"cell":4}`)

		// Then: an error message is sent and the next request still works
		require.Equal(t, actionError, reply.Action)
		var payload response.Error
		require.NoError(t, json.Unmarshal(reply.Payload, &payload))
		assert.Contains(t, payload.Message, apperror.ErrCellOccupied.Error())

		assert.Equal(t, actionState, send(t, conn, actionState, "").Action)
		gameService.AssertExpectations(t)
	})

	t.Run("Requires a cell", func(t *testing.T) {
		conn := dial(t, &mockGameService{})

		reply := send(t, conn, actionTurn, `{}`)

		assert.Equal(t, actionError, reply.Action)
	})
}

func TestServer_UnknownAction(t *testing.T) {
	conn := dial(t, &mockGameService{})

	reply := send(t, conn, "game:leave", "")

	assert.Equal(t, actionError, reply.Action)
}

func TestServer_CheckOrigin(t *testing.T) {
	origin := func(value string) http.Header {
		return http.Header{"Origin": []string{value}}
	}

	t.Run("Rejects an origin that is not allowed", func(t *testing.T) {
		// Given: a server that only trusts its own front end
		url := newTestServer(t, &mockGameService{}, "https://play.example.org")

		// When: another site opens a socket
		conn, resp, err := websocket.DefaultDialer.Dial(url, origin("https://evil.example.com"))

		// Then: the handshake is refused
		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		assert.Nil(t, conn)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Accepts an allowed origin", func(t *testing.T) {
		url := newTestServer(t, &mockGameService{}, "https://play.example.org/")

		conn, _, err := websocket.DefaultDialer.Dial(url, origin("https://play.example.org"))

		require.NoError(t, err)
		_ = conn.Close()
	})

	t.Run("Accepts any origin with a wildcard", func(t *testing.T) {
		url := newTestServer(t, &mockGameService{}, "*")

		conn, _, err := websocket.DefaultDialer.Dial(url, origin("https://anywhere.example.net"))

		require.NoError(t, err)
		_ = conn.Close()
	})

	t.Run("Rejects a foreign origin when none are configured", func(t *testing.T) {
		url := newTestServer(t, &mockGameService{})

		_, resp, err := websocket.DefaultDialer.Dial(url, origin("https://evil.example.com"))

		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/response"
)

type gameService interface {
	GetGame(ctx context.Context, id string) (*entity.Match, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Match, error)
}

type handlerFunc func(ctx context.Context, gameID string, message *Message) (*entity.Match, error)

const maxMessageSize = 1 << 10

// Server serves one game per connection: the game id comes from the URL.
type Server struct {
	logger      *slog.Logger
	gameService gameService
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

// New - allowedOrigins lists the web origins that may open a socket besides the server's own host.
// "*" allows any origin.
func New(logger *slog.Logger, gameService gameService, allowedOrigins []string) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameService: gameService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}

	server.handlers = map[string]handlerFunc{
		actionState: server.handleState,
		actionTurn:  server.handleTurn,
	}

	return server
}

// ServeHTTP - upgrades the connection and processes messages until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	log := that.logger.With("method", "ServeHTTP", "gameID", gameID)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established")

	if err = that.handleMessages(r.Context(), conn, gameID); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, gameID string) error {
	log := that.logger.With("method", "handleMessages", "gameID", gameID)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := that.sendError(conn, "unknown action "+message.Action); err != nil {
				return err
			}
			continue
		}

		match, err := handler(ctx, gameID, &message)
		if err != nil {
			log.Info("action failed", "action", message.Action, "error", err)
			if err = that.sendError(conn, err.Error()); err != nil {
				return err
			}
			continue
		}

		if err = that.sendMessage(conn, actionState, response.NewGame(match)); err != nil {
			return err
		}
	}
}

func (that *Server) handleState(ctx context.Context, gameID string, _ *Message) (*entity.Match, error) {
	return that.gameService.GetGame(ctx, gameID)
}

var errCellRequired = errors.New("cell is required")

func (that *Server) handleTurn(ctx context.Context, gameID string, message *Message) (*entity.Match, error) {
	var payload TurnPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Cell == nil {
		return nil, errCellRequired
	}

	return that.gameService.MakeTurn(ctx, gameID, *payload.Cell)
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload any) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, message string) error {
	return that.sendMessage(conn, actionError, response.Error{Message: message})
}

// checkOrigin - accepts requests without an Origin header (non-browser clients), the same host
// and the listed origins.
func checkOrigin(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSuffix(origin, "/")] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		if _, ok := allowed["*"]; ok {
			return true
		}

		if _, ok := allowed[origin]; ok {
			return true
		}

		originURL, err := url.Parse(origin)
		if err != nil {
			return false
		}

		return strings.EqualFold(originURL.Host, r.Host)
	}
}

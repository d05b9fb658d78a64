package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/response"
)

type gameService interface {
	CreateGame(ctx context.Context, req service.CreateGameRequest) (*entity.Match, error)
	GetGame(ctx context.Context, id string) (*entity.Match, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Match, error)
	DeleteGame(ctx context.Context, id string) error
}

type createGameRequest struct {
	Marker         string `json:"marker"`
	Name           string `json:"name"`
	OpponentMarker string `json:"opponent_marker"`
	OpponentName   string `json:"opponent_name"`
	OpponentFirst  bool   `json:"opponent_first"`
	HotSeat        bool   `json:"hot_seat"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type handlers struct {
	logger      *slog.Logger
	gameService gameService
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBodyError(w, err, "invalid request body")
		return
	}

	match, err := that.gameService.CreateGame(r.Context(), service.CreateGameRequest{
		Marker:         req.Marker,
		Name:           req.Name,
		OpponentMarker: req.OpponentMarker,
		OpponentName:   req.OpponentName,
		OpponentFirst:  req.OpponentFirst,
		HotSeat:        req.HotSeat,
	})
	if err != nil {
		that.writeServiceError(w, "createGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, response.NewGame(match))
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	match, err := that.gameService.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeServiceError(w, "getGame", err)
		return
	}

	writeJSON(w, http.StatusOK, response.NewGame(match))
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err, "invalid request body")
		return
	}

	if req.Cell == nil {
		writeError(w, http.StatusBadRequest, "cell is required")
		return
	}

	match, err := that.gameService.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeServiceError(w, "makeTurn", err)
		return
	}

	writeJSON(w, http.StatusOK, response.NewGame(match))
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeServiceError(w, "deleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeServiceError(w http.ResponseWriter, method string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		writeError(w, status, "internal error")
		return
	}

	writeError(w, status, err.Error())
}

// StatusFor - maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrDuplicateMarker),
		errors.Is(err, apperror.ErrInvalidMarker):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, repository.ErrGameChanged):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeBodyError - 413 when the body went over maxBodySize, 400 for anything else.
func writeBodyError(w http.ResponseWriter, err error, message string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	writeError(w, http.StatusBadRequest, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response.Error{Message: message})
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/bot"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const defaultOpponentName = "Player 2"

type GameService interface {
	CreateGame(ctx context.Context, req CreateGameRequest) (*entity.Match, error)
	GetGame(ctx context.Context, id string) (*entity.Match, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Match, error)
	DeleteGame(ctx context.Context, id string) error
}

// CreateGameRequest describes a new game. Empty fields fall back to the configured defaults.
type CreateGameRequest struct {
	Marker         string
	Name           string
	OpponentMarker string
	OpponentName   string
	// OpponentFirst gives the first turn to the opponent.
	OpponentFirst bool
	// HotSeat makes the opponent a second human instead of the computer.
	HotSeat bool
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateByID(ctx context.Context, id string, update func(session *entity.Session) error) error
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger   *slog.Logger
	defaults config.Game

	gameRepo   gameRepo
	botService BotService
}

func NewGameService(logger *slog.Logger, defaults config.Game, gameRepo gameRepo, botService BotService) GameService {
	return &gameService{
		logger:     logger,
		defaults:   defaults,
		gameRepo:   gameRepo,
		botService: botService,
	}
}

func (that *gameService) CreateGame(ctx context.Context, req CreateGameRequest) (*entity.Match, error) {
	log := that.logger.With("method", "CreateGame")

	player, opponent := that.newPlayers(req)

	first, second := player, opponent
	if req.OpponentFirst {
		first, second = opponent, player
	}

	game, err := entity.NewGame(first, second)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.botService.MakeTurn(game); err != nil {
		return nil, fmt.Errorf("bot failed to make first turn: %w", err)
	}

	match := &entity.Match{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Game:      game,
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, toSession(match)); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	log.Info("game created", "gameID", match.ID, "hotSeat", req.HotSeat, "first", first.Marker())

	return match, nil
}

func (that *gameService) newPlayers(req CreateGameRequest) (entity.Player, entity.Player) {
	marker := valueOr(req.Marker, that.defaults.HumanMarker)
	name := valueOr(req.Name, that.defaults.HumanName)
	opponentMarker := valueOr(req.OpponentMarker, that.defaults.ComputerMarker)

	player := entity.NewHumanPlayer(marker, name)

	if req.HotSeat {
		return player, entity.NewHumanPlayer(opponentMarker, valueOr(req.OpponentName, defaultOpponentName))
	}

	return player, bot.NewSmartPlayer(opponentMarker, valueOr(req.OpponentName, that.defaults.ComputerName))
}

func (that *gameService) GetGame(ctx context.Context, id string) (*entity.Match, error) {
	session, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	match, err := fromSession(session)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return match, nil
}

// MakeTurn - plays cell for the human whose turn it is, then lets the computer answer.
// A turn racing another turn on the same game fails with repository.ErrGameChanged.
func (that *gameService) MakeTurn(ctx context.Context, id string, cell int) (*entity.Match, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	var match *entity.Match

	err := that.gameRepo.UpdateByID(ctx, id, func(session *entity.Session) error {
		restored, err := fromSession(session)
		if err != nil {
			return fmt.Errorf("failed to restore game: %w", err)
		}

		match = restored

		if err = that.playTurn(match.Game, cell); err != nil {
			return err
		}

		*session = *toSession(match)

		return nil
	})
	if err != nil {
		return match, err
	}

	if match.Game.IsOver() {
		log.Info("game finished", "winner", winnerMarker(match.Game), "draw", match.Game.State().Draw)
	}

	return match, nil
}

func (that *gameService) playTurn(game *entity.Game, cell int) error {
	if game.IsOver() {
		return apperror.ErrGameFinished
	}

	if isComputer(game.CurrentPlayer()) {
		return apperror.ErrNotYourTurn
	}

	if cell >= 0 && cell < entity.BoardSize && game.Board().Cell(cell).IsOccupied() {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	if err := game.CheckCell(cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	if err := that.botService.MakeTurn(game); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func isComputer(player entity.Player) bool {
	_, ok := player.(*bot.SmartPlayer)
	return ok
}

func winnerMarker(game *entity.Game) string {
	if winner := game.Winner(); winner != nil {
		return winner.Marker()
	}

	return ""
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

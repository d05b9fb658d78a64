package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger,
	}
}

// MakeTurn - lets computer players move until the game ends or a player without its own move source is up.
func (that *botService) MakeTurn(game *entity.Game) error {
	log := that.logger.With("method", "MakeTurn")

	for !game.IsOver() {
		player := game.CurrentPlayer()

		cell, err := player.MakeMove(game)
		if errors.Is(err, apperror.ErrNotImplemented) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("bot failed to choose a cell: %w", err)
		}

		if err = game.CheckCell(cell); err != nil {
			return fmt.Errorf("bot failed to make turn: %w", err)
		}

		log.Debug("bot made turn", "player", player.Name(), "marker", player.Marker(), "cell", cell)
	}

	return nil
}

package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/bot"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func toSession(match *entity.Match) *entity.Session {
	game := match.Game

	return &entity.Session{
		ID:            match.ID,
		Board:         game.Board().Markers(),
		CurrentMarker: game.CurrentMarker(),
		Players:       [2]entity.Seat{SeatOf(game.FirstPlayer()), SeatOf(game.SecondPlayer())},
		CreatedAt:     match.CreatedAt,
	}
}

// SeatOf - describes a player the way it is stored.
func SeatOf(player entity.Player) entity.Seat {
	kind := entity.KindHuman
	if isComputer(player) {
		kind = entity.KindComputer
	}

	return entity.Seat{
		Marker: player.Marker(),
		Name:   player.Name(),
		Kind:   kind,
	}
}

func fromSession(session *entity.Session) (*entity.Match, error) {
	first, err := fromSeat(session.Players[0])
	if err != nil {
		return nil, err
	}

	second, err := fromSeat(session.Players[1])
	if err != nil {
		return nil, err
	}

	if err = checkMarkers(session); err != nil {
		return nil, err
	}

	game, err := entity.RestoreGame(first, second, entity.BoardFromMarkers(session.Board), session.CurrentMarker)
	if err != nil {
		return nil, err
	}

	return &entity.Match{
		ID:        session.ID,
		CreatedAt: session.CreatedAt,
		Game:      game,
	}, nil
}

func fromSeat(seat entity.Seat) (entity.Player, error) {
	switch seat.Kind {
	case entity.KindHuman:
		return entity.NewHumanPlayer(seat.Marker, seat.Name), nil
	case entity.KindComputer:
		return bot.NewSmartPlayer(seat.Marker, seat.Name), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownPlayer, seat.Kind)
	}
}

// checkMarkers - every marker on a stored board must belong to one of its players.
func checkMarkers(session *entity.Session) error {
	for i, marker := range session.Board {
		if marker == entity.EmptyCell {
			continue
		}

		if marker != session.Players[0].Marker && marker != session.Players[1].Marker {
			return fmt.Errorf("%w: cell %d holds %q", apperror.ErrForeignMarker, i, marker)
		}
	}

	return nil
}

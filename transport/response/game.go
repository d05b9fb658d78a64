package response

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

// Player is a seat as shown to clients.
type Player struct {
	Marker string `json:"marker"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
}

// Game is the state of a match as shown to clients.
type Game struct {
	ID            string                   `json:"id"`
	Board         [entity.BoardSize]string `json:"board"`
	WinningCells  []int                    `json:"winning_cells"`
	CurrentMarker string                   `json:"current_marker"`
	Winner        string                   `json:"winner"`
	Draw          bool                     `json:"draw"`
	Status        string                   `json:"status"`
	Players       []Player                 `json:"players"`
}

type Error struct {
	Message string `json:"message"`
}

// NewGame - builds the client view. Reading the state flags the winning line, so it is read first.
func NewGame(match *entity.Match) Game {
	game := match.Game
	state := game.State()

	view := Game{
		ID:            match.ID,
		Board:         game.Board().Markers(),
		WinningCells:  []int{},
		CurrentMarker: state.CurrentMarker,
		Draw:          state.Draw,
		Status:        entity.StatusOngoing,
	}

	for _, row := range state.Rows {
		for _, cell := range row {
			if cell.IsWinningCell() {
				view.WinningCells = append(view.WinningCells, cell.Index())
			}
		}
	}

	if state.Winner != nil {
		view.Winner = state.Winner.Marker()
	}

	if state.Winner != nil || state.Draw {
		view.Status = entity.StatusFinished
		view.CurrentMarker = ""
	}

	for _, player := range []entity.Player{game.FirstPlayer(), game.SecondPlayer()} {
		seat := service.SeatOf(player)
		view.Players = append(view.Players, Player{
			Marker: seat.Marker,
			Name:   seat.Name,
			Kind:   seat.Kind,
		})
	}

	return view
}

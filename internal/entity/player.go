package entity

import "github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"

// Player is anything that can take a seat in a game.
type Player interface {
	Marker() string
	Name() string
	MakeMove(game *Game) (int, error)
}

// HumanPlayer is driven from outside: the caller collects its move and calls Game.CheckCell directly.
type HumanPlayer struct {
	marker string
	name   string
}

func NewHumanPlayer(marker, name string) *HumanPlayer {
	return &HumanPlayer{
		marker: marker,
		name:   name,
	}
}

func (that *HumanPlayer) Marker() string {
	return that.marker
}

func (that *HumanPlayer) Name() string {
	return that.name
}

// MakeMove - always fails with apperror.ErrNotImplemented, a human has no move source of its own.
func (that *HumanPlayer) MakeMove(_ *Game) (int, error) {
	return -1, apperror.ErrNotImplemented
}

package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// minCheckedForWinner is the number of occupied cells below which Winner does not look for a line.
const minCheckedForWinner = 4

// GameState is a read-only snapshot of a game, rebuilt on every call to Game.State.
type GameState struct {
	Winner         Player
	Draw           bool
	Rows           [][3]Cell
	CurrentMarker  string
	UncheckedCells []Cell
}

type Game struct {
	board         *Board
	firstPlayer   Player
	secondPlayer  Player
	currentMarker string
}

// NewGame - starts a game on an empty board, the first player moves first.
func NewGame(firstPlayer, secondPlayer Player) (*Game, error) {
	return RestoreGame(firstPlayer, secondPlayer, NewBoard(), "")
}

// RestoreGame - builds a game around an existing board. An empty currentMarker gives the turn to the first player.
func RestoreGame(firstPlayer, secondPlayer Player, board *Board, currentMarker string) (*Game, error) {
	if strings.TrimSpace(firstPlayer.Marker()) == strings.TrimSpace(secondPlayer.Marker()) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrDuplicateMarker, firstPlayer.Marker())
	}

	if currentMarker != "" && currentMarker != firstPlayer.Marker() && currentMarker != secondPlayer.Marker() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMarker, currentMarker)
	}

	if currentMarker == "" {
		currentMarker = firstPlayer.Marker()
	}

	return &Game{
		board:         board,
		firstPlayer:   firstPlayer,
		secondPlayer:  secondPlayer,
		currentMarker: currentMarker,
	}, nil
}

func (that *Game) Board() *Board {
	return that.board
}

func (that *Game) FirstPlayer() Player {
	return that.firstPlayer
}

func (that *Game) SecondPlayer() Player {
	return that.secondPlayer
}

func (that *Game) CurrentMarker() string {
	return that.currentMarker
}

func (that *Game) CurrentPlayer() Player {
	return that.playerByMarker(that.currentMarker)
}

func (that *Game) UncheckedCells() []Cell {
	return that.board.UncheckedCells()
}

func (that *Game) CheckedCells() []Cell {
	return that.board.CheckedCells()
}

// CheckCell - occupies index with the current marker and passes the turn.
// Occupied cells and moves after a win are ignored.
func (that *Game) CheckCell(index int) error {
	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	if that.board.Cell(index).IsOccupied() || that.Winner() != nil {
		return nil
	}

	that.board.CheckCell(index, that.currentMarker)
	that.currentMarker = that.opponentMarker(that.currentMarker)

	return nil
}

// Winner - detects and marks the winning line.
// Lines are scanned rows, then columns, then diagonals; the first complete one has its cells
// flagged on the board and its owner returned. Nothing is reported while fewer than
// minCheckedForWinner cells are occupied.
func (that *Game) Winner() Player {
	if len(that.board.CheckedCells()) < minCheckedForWinner {
		return nil
	}

	for _, lines := range [][][3]Cell{that.board.Rows(), that.board.Columns(), that.board.Diagonals()} {
		if marker, ok := that.markWinningLine(lines); ok {
			return that.playerByMarker(marker)
		}
	}

	return nil
}

func (that *Game) markWinningLine(lines [][3]Cell) (string, bool) {
	for _, line := range lines {
		if !isComplete(line) {
			continue
		}

		for _, cell := range line {
			that.board.MarkWinningCells(cell.Index())
		}

		return line[1].Marker(), true
	}

	return "", false
}

func isComplete(line [3]Cell) bool {
	if !line[0].IsOccupied() || !line[1].IsOccupied() || !line[2].IsOccupied() {
		return false
	}

	return line[0].Marker() == line[1].Marker() && line[1].Marker() == line[2].Marker()
}

func (that *Game) State() GameState {
	winner := that.Winner()
	uncheckedCells := that.board.UncheckedCells()

	return GameState{
		Winner:         winner,
		Draw:           len(uncheckedCells) == 0 && winner == nil,
		Rows:           that.board.Rows(),
		CurrentMarker:  that.currentMarker,
		UncheckedCells: uncheckedCells,
	}
}

// IsOver - reports whether the game has a winner or no free cells left.
func (that *Game) IsOver() bool {
	state := that.State()
	return state.Winner != nil || state.Draw
}

// Clone - copies occupied cells onto a fresh board. Winning flags are not copied, players are shared.
func (that *Game) Clone() *Game {
	board := NewBoard()
	for _, cell := range that.board.CheckedCells() {
		board.CheckCell(cell.Index(), cell.Marker())
	}

	return &Game{
		board:         board,
		firstPlayer:   that.firstPlayer,
		secondPlayer:  that.secondPlayer,
		currentMarker: that.currentMarker,
	}
}

func (that *Game) opponentMarker(marker string) string {
	if marker == that.firstPlayer.Marker() {
		return that.secondPlayer.Marker()
	}

	return that.firstPlayer.Marker()
}

func (that *Game) playerByMarker(marker string) Player {
	if marker == that.firstPlayer.Marker() {
		return that.firstPlayer
	}

	return that.secondPlayer
}

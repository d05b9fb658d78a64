package bot

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	DefaultName = "Computer"

	winScore = 100
	infinity = 1 << 30
)

type cellScore struct {
	index int
	score int
}

// SmartPlayer picks moves with a full minimax search with alpha-beta pruning.
type SmartPlayer struct {
	marker string
	name   string
}

func NewSmartPlayer(marker, name string) *SmartPlayer {
	if name == "" {
		name = DefaultName
	}

	return &SmartPlayer{
		marker: marker,
		name:   name,
	}
}

func (that *SmartPlayer) Marker() string {
	return that.marker
}

func (that *SmartPlayer) Name() string {
	return that.name
}

// MakeMove - returns the cell index that is best for this player against a perfect opponent.
func (that *SmartPlayer) MakeMove(game *entity.Game) (int, error) {
	state := game.State()
	if state.Winner != nil || state.Draw {
		return -1, apperror.ErrGameFinished
	}

	if len(state.UncheckedCells) == 1 {
		return state.UncheckedCells[0].Index(), nil
	}

	return that.minimax(game, -infinity, infinity).index, nil
}

func (that *SmartPlayer) minimax(game *entity.Game, alpha, beta int) cellScore {
	state := game.State()
	if state.Winner != nil || state.Draw {
		return cellScore{index: -1, score: that.score(state)}
	}

	maximizing := state.CurrentMarker == that.marker

	best := cellScore{index: -1, score: infinity}
	if maximizing {
		best.score = -infinity
	}

	for _, cell := range state.UncheckedCells {
		next := game.Clone()
		// index comes from the board itself
		_ = next.CheckCell(cell.Index())

		result := that.minimax(next, alpha, beta)

		if maximizing {
			if result.score > best.score {
				best = cellScore{index: cell.Index(), score: result.score}
			}
			alpha = max(alpha, best.score)
		} else {
			if result.score < best.score {
				best = cellScore{index: cell.Index(), score: result.score}
			}
			beta = min(beta, best.score)
		}

		if beta <= alpha {
			break
		}
	}

	return best
}

// score - 0 for a draw, otherwise the free cells left plus winScore, negative when the opponent won.
// Faster wins and slower losses score better.
func (that *SmartPlayer) score(state entity.GameState) int {
	if state.Draw || state.Winner == nil {
		return 0
	}

	score := len(state.UncheckedCells) + winScore
	if state.Winner.Marker() != that.marker {
		return -score
	}

	return score
}

package apperror

import "errors"

var (
	ErrDuplicateMarker = errors.New("both players cannot have the same marker")
	ErrInvalidMarker   = errors.New("invalid marker")
	ErrNotImplemented  = errors.New("not implemented")

	ErrInvalidCell   = errors.New("invalid cell index")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrGameFinished  = errors.New("game is already finished")
	ErrUnknownPlayer = errors.New("unknown player kind")
	ErrForeignMarker = errors.New("board holds a marker of no player")
)

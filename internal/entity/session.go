package entity

import "time"

const (
	KindHuman    = "human"
	KindComputer = "computer"

	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// Seat describes one player of a stored session.
type Seat struct {
	Marker string `json:"marker"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
}

// Session is the stored form of an active game.
type Session struct {
	ID            string            `json:"id"`
	Board         [BoardSize]string `json:"board"`
	CurrentMarker string            `json:"current_marker"`
	Players       [2]Seat           `json:"players"`
	CreatedAt     time.Time         `json:"created_at"`
}

// BoardFromMarkers - replays stored markers onto a fresh board.
func BoardFromMarkers(markers [BoardSize]string) *Board {
	board := NewBoard()
	for i, marker := range markers {
		if marker != EmptyCell {
			board.CheckCell(i, marker)
		}
	}

	return board
}

// Match is a game together with the identity it is stored under.
type Match struct {
	ID        string
	CreatedAt time.Time
	Game      *Game
}

package websocket

import "encoding/json"

const (
	actionState = "game:state"
	actionTurn  = "game:turn"
	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type TurnPayload struct {
	Cell *int `json:"cell"`
}

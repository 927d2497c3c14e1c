package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeMatch     MessageType = "matchFound"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage wraps payload, which must marshal cleanly.
func NewMessage(t MessageType, payload interface{}) Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return Message{Type: t, Payload: raw}
}

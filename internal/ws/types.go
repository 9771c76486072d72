package ws

import (
	"encoding/json"
)

// MessageType is the kind of a websocket frame exchanged with a game client.
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeResign     MessageType = "resign"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeError      MessageType = "error"
)

// Message is the envelope of every websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload is sent back with MessageTypeError.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into an envelope.
func NewMessage(messageType MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: messageType, Payload: raw}, nil
}

package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeClick MessageType = "click"
	MessageTypeMove  MessageType = "move"
	MessageTypeUndo  MessageType = "undo"
	MessageTypeReset MessageType = "reset"
	MessageTypeFrame MessageType = "frame"
	MessageTypeError MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload is the body of an error message.
type ErrorPayload struct {
	Error string `json:"error"`
}

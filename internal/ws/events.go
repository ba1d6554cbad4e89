package ws

import (
	"encoding/json"

	"match-service/internal/models"
)

// Inbound is the client-to-server envelope. Type selects which of the payload
// fields apply. Seen receipts carry either a single message_id or a
// message_ids batch.
type Inbound struct {
	Type        string   `json:"type"`
	Content     string   `json:"content,omitempty"`
	MessageType string   `json:"message_type,omitempty"`
	MediaURL    string   `json:"media_url,omitempty"`
	Typing      bool     `json:"is_typing,omitempty"`
	MessageID   string   `json:"message_id,omitempty"`
	MessageIDs  []string `json:"message_ids,omitempty"`
}

func (e Inbound) seenIDs() []string {
	ids := e.MessageIDs
	if e.MessageID != "" {
		ids = append(ids, e.MessageID)
	}
	return ids
}

// Inbound envelope types.
const (
	EventMessage = "message"
	EventTyping  = "typing"
	EventSeen    = "seen"
)

// MessageEvent carries a stored message to room members.
type MessageEvent struct {
	Type    string             `json:"type"`
	Message models.ChatMessage `json:"message"`
}

// TypingEvent tells the other member that a user started or stopped typing.
type TypingEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	Typing bool   `json:"is_typing"`
}

// SeenEvent tells the other member which messages were seen.
type SeenEvent struct {
	Type       string   `json:"type"`
	UserID     string   `json:"user_id"`
	MessageIDs []string `json:"message_ids"`
}

// PresenceEvent announces a member joining or leaving the room session.
type PresenceEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

// ErrorEvent is sent to the offending sender only.
type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func newErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: "error", Error: message}
}

func marshalEvent(event any) []byte {
	payload, _ := json.Marshal(event)
	return payload
}

package models

import "time"

// Chat message types.
const (
	MessageText    = "text"
	MessageImage   = "image"
	MessageVoice   = "voice"
	MessageSticker = "sticker"
	MessageGift    = "gift"
)

// ValidMessageType reports whether t is one of the known message types.
func ValidMessageType(t string) bool {
	switch t {
	case MessageText, MessageImage, MessageVoice, MessageSticker, MessageGift:
		return true
	}
	return false
}

// ChatMessage is an append-only, soft-deletable room message.
type ChatMessage struct {
	ID          string     `db:"id" json:"id"`
	RoomID      string     `db:"room_id" json:"room_id"`
	SenderID    string     `db:"sender_id" json:"sender_id"`
	MessageType string     `db:"message_type" json:"message_type"`
	Content     string     `db:"content" json:"content"`
	MediaURL    string     `db:"media_url" json:"media_url,omitempty"`
	IsSeen      bool       `db:"is_seen" json:"is_seen"`
	SeenAt      *time.Time `db:"seen_at" json:"seen_at,omitempty"`
	IsDeleted   bool       `db:"is_deleted" json:"-"`
	DeletedAt   *time.Time `db:"deleted_at" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

package models

import "time"

// Gift is a purchasable catalog item paid for with tokens.
type Gift struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	TokenCost   int       `db:"token_cost" json:"token_cost"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// SentGift records a gift delivered inside a room.
type SentGift struct {
	ID          string    `db:"id" json:"id"`
	GiftID      string    `db:"gift_id" json:"gift_id"`
	SenderID    string    `db:"sender_id" json:"sender_id"`
	RecipientID string    `db:"recipient_id" json:"recipient_id"`
	ChatRoomID  string    `db:"chat_room_id" json:"chat_room_id"`
	Message     string    `db:"message" json:"message,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

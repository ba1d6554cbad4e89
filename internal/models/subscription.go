package models

import "time"

// Subscription payment states.
const (
	SubscriptionPending   = "pending"
	SubscriptionSuccess   = "success"
	SubscriptionFailed    = "failed"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// Subscription ties a user and a room to a paid extension.
type Subscription struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	ChatRoomID  string    `db:"chat_room_id" json:"chat_room_id"`
	PaymentID   string    `db:"payment_id" json:"payment_id"`
	AmountPaise int       `db:"amount_paise" json:"amount_paise"`
	Currency    string    `db:"currency" json:"currency"`
	Status      string    `db:"status" json:"status"`
	StartedAt   time.Time `db:"started_at" json:"started_at"`
	ExpiresAt   time.Time `db:"expires_at" json:"expires_at"`
}

// IsActive reports whether the subscription currently grants access.
func (s Subscription) IsActive(now time.Time) bool {
	return s.Status == SubscriptionSuccess && now.Before(s.ExpiresAt)
}

// TokenTransaction is a ledger entry for token spends and credits.
type TokenTransaction struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	TransactionType string    `db:"transaction_type" json:"transaction_type"`
	Amount          int       `db:"amount" json:"amount"`
	BalanceBefore   int       `db:"balance_before" json:"balance_before"`
	BalanceAfter    int       `db:"balance_after" json:"balance_after"`
	Description     string    `db:"description" json:"description,omitempty"`
	RelatedObjectID string    `db:"related_object_id" json:"related_object_id,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

package models

import "time"

// Notification types.
const (
	NotificationMatch           = "match"
	NotificationMessage         = "message"
	NotificationPaymentReminder = "payment_reminder"
	NotificationChatExpiring    = "chat_expiring"
	NotificationAdminAlert      = "admin_alert"
)

// Notification is a user-addressed event record. Read and dismissed flags are
// independent. Dispatched tracks whether the outbound event left the service;
// undispatched rows are retried by a sweep.
type Notification struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"user_id"`
	NotificationType string     `db:"notification_type" json:"notification_type"`
	Title            string     `db:"title" json:"title"`
	Body             string     `db:"body" json:"body"`
	RelatedRoomID    *string    `db:"related_room_id" json:"related_room_id,omitempty"`
	IsRead           bool       `db:"is_read" json:"is_read"`
	ReadAt           *time.Time `db:"read_at" json:"read_at,omitempty"`
	IsDismissed      bool       `db:"is_dismissed" json:"is_dismissed"`
	DismissedAt      *time.Time `db:"dismissed_at" json:"dismissed_at,omitempty"`
	Dispatched       bool       `db:"dispatched" json:"-"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

package models

import "time"

// ChatRoom is the paywalled two-person room mirroring a match. Pair columns use
// the same canonical order as Match.
type ChatRoom struct {
	ID           string     `db:"id" json:"id"`
	UserAID      string     `db:"user_a_id" json:"user_a_id"`
	UserBID      string     `db:"user_b_id" json:"user_b_id"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt    time.Time  `db:"expires_at" json:"expires_at"`
	IsLocked     bool       `db:"is_locked" json:"is_locked"`
	LockedAt     *time.Time `db:"locked_at" json:"locked_at,omitempty"`
	IsDeleted    bool       `db:"is_deleted" json:"-"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`
	LastActivity time.Time  `db:"last_activity" json:"last_activity"`
}

// Involves reports whether the user is one of the room's two participants.
func (r ChatRoom) Involves(userID string) bool {
	return r.UserAID == userID || r.UserBID == userID
}

// OtherUser returns the participant that is not userID.
func (r ChatRoom) OtherUser(userID string) string {
	if r.UserAID == userID {
		return r.UserBID
	}
	return r.UserAID
}

package models

import "time"

// Match profile scopes, widest last.
const (
	ScopeSameInstitute = "same_institute"
	ScopeCity          = "city"
	ScopeState         = "state"
	ScopeNational      = "national"
	ScopeGlobal        = "global"
)

// Relationship modes.
const (
	ModeFriend = "friend"
	ModeHookup = "hookup"
)

// ValidScope reports whether s is a known profile scope.
func ValidScope(s string) bool {
	switch s {
	case ScopeSameInstitute, ScopeCity, ScopeState, ScopeNational, ScopeGlobal:
		return true
	}
	return false
}

// ValidMode reports whether m is a known relationship mode.
func ValidMode(m string) bool {
	return m == ModeFriend || m == ModeHookup
}

// MatchProfile holds a user's matching preferences. One per user, mutated only
// by its owner.
type MatchProfile struct {
	UserID           string    `db:"user_id" json:"user_id"`
	PreferredMode    string    `db:"preferred_mode" json:"preferred_mode"`
	Scope            string    `db:"scope" json:"scope"`
	AgeRangeMin      int       `db:"age_range_min" json:"age_range_min"`
	AgeRangeMax      int       `db:"age_range_max" json:"age_range_max"`
	HeightRangeMinCm *int      `db:"height_range_min_cm" json:"height_range_min_cm,omitempty"`
	HeightRangeMaxCm *int      `db:"height_range_max_cm" json:"height_range_max_cm,omitempty"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Match pairs two users. UserAID/UserBID are stored in canonical order (lexical
// by id) so the unique constraint covers the unordered pair.
type Match struct {
	ID         string    `db:"id" json:"id"`
	UserAID    string    `db:"user_a_id" json:"user_a_id"`
	UserBID    string    `db:"user_b_id" json:"user_b_id"`
	Mode       string    `db:"mode" json:"mode"`
	MatchScore float64   `db:"match_score" json:"match_score"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	ExpiresAt  time.Time `db:"expires_at" json:"expires_at"`
	ChatRoomID *string   `db:"chat_room_id" json:"chat_room_id,omitempty"`
}

// Involves reports whether the user is one of the pair.
func (m Match) Involves(userID string) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// CanonicalPair orders two user ids deterministically.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

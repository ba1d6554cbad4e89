package models

import (
	"time"

	"github.com/lib/pq"
)

// Gender values recognized by mode validation. Anything else is treated as
// undisclosed for matching purposes.
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// User is the account-subsystem record as seen by matching and chat. This
// service reads it; only ban/verification cleanup mutates it here.
type User struct {
	ID              string         `db:"id" json:"id"`
	Handle          string         `db:"handle" json:"handle"`
	Email           string         `db:"email" json:"-"`
	IsVerified      bool           `db:"is_verified" json:"is_verified"`
	IsInstitutional bool           `db:"is_institutional" json:"is_institutional"`
	IsBanned        bool           `db:"is_banned" json:"-"`
	BannedAt        *time.Time     `db:"banned_at" json:"-"`
	BanReason       string         `db:"ban_reason" json:"-"`
	Gender          string         `db:"gender" json:"gender"`
	Age             *int           `db:"age" json:"age,omitempty"`
	HeightCm        *int           `db:"height_cm" json:"height_cm,omitempty"`
	Degree          string         `db:"degree" json:"degree,omitempty"`
	Profession      string         `db:"profession" json:"profession,omitempty"`
	City            string         `db:"city" json:"city,omitempty"`
	State           string         `db:"state" json:"state,omitempty"`
	Country         string         `db:"country" json:"country,omitempty"`
	Interests       pq.StringArray `db:"interests" json:"interests"`
	TokensBalance   int            `db:"tokens_balance" json:"tokens_balance"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// InstitutionDomain is an approved email domain. Accounts outside an approved
// domain never enter the candidate pool.
type InstitutionDomain struct {
	Domain          string    `db:"domain" json:"domain"`
	InstitutionName string    `db:"institution_name" json:"institution_name"`
	Country         string    `db:"country" json:"country"`
	IsApproved      bool      `db:"is_approved" json:"is_approved"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

package service

import "errors"

var (
	// ErrForbidden marks access attempts by non-participants.
	ErrForbidden = errors.New("access denied")
	// ErrRoomLocked marks operations on a locked room by a user without an
	// active subscription.
	ErrRoomLocked = errors.New("chat room is locked")
	// ErrInvalidMode marks a match request whose mode the pair cannot satisfy.
	ErrInvalidMode = errors.New("invalid match mode for pair")
	// ErrInvalidMessage marks an empty or unknown-typed message.
	ErrInvalidMessage = errors.New("invalid message")
	// ErrSelfMatch marks an attempt to match a user with themselves.
	ErrSelfMatch = errors.New("cannot match with self")
	// ErrInvalidSubscriptionStatus marks a payment confirmation with an
	// unknown outcome.
	ErrInvalidSubscriptionStatus = errors.New("invalid subscription status")
)

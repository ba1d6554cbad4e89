package service

import (
	"context"
	"errors"
	"time"

	"match-service/internal/matching"
	"match-service/internal/models"
	"match-service/internal/repositories"
)

// Notifier dispatches user-addressed notifications. Dispatch is
// fire-and-forget; implementations log failures instead of returning them to
// business flows.
type Notifier interface {
	Notify(ctx context.Context, userID, notificationType, title, body string, relatedRoomID *string)
}

// Lifetimes driving the match and room state machines.
const (
	MatchTTL = 30 * 24 * time.Hour
	RoomTTL  = 7 * 24 * time.Hour
)

// MatchService is the match/room state machine: it creates matches with their
// paired rooms and owns the lock/expire/delete transitions.
type MatchService struct {
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
	matches  repositories.MatchRepository
	rooms    repositories.RoomRepository
	notifier Notifier
}

// NewMatchService constructs a MatchService.
func NewMatchService(
	users repositories.UserRepository,
	profiles repositories.ProfileRepository,
	matches repositories.MatchRepository,
	rooms repositories.RoomRepository,
	notifier Notifier,
) *MatchService {
	return &MatchService{
		users:    users,
		profiles: profiles,
		matches:  matches,
		rooms:    rooms,
		notifier: notifier,
	}
}

// CreateMatch validates the pair and mode, then creates the match and its room
// atomically. Idempotent on the unordered pair: an existing match is returned
// with created=false and no side effects. The non-initiating user is notified
// on creation.
func (s *MatchService) CreateMatch(ctx context.Context, userID, targetID, mode string) (models.Match, bool, error) {
	if userID == targetID {
		return models.Match{}, false, ErrSelfMatch
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.Match{}, false, err
	}
	target, err := s.users.GetUser(ctx, targetID)
	if err != nil {
		return models.Match{}, false, err
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return models.Match{}, false, matching.ErrProfileNotConfigured
	}
	if err != nil {
		return models.Match{}, false, err
	}
	if !profile.IsActive {
		return models.Match{}, false, matching.ErrProfileNotConfigured
	}

	if !matching.ValidateMode(user, target, mode) {
		return models.Match{}, false, ErrInvalidMode
	}

	match := models.Match{
		UserAID:    user.ID,
		UserBID:    target.ID,
		Mode:       mode,
		MatchScore: matching.Score(user, target),
		ExpiresAt:  time.Now().Add(MatchTTL),
	}
	stored, created, err := s.matches.CreateOrGetMatch(ctx, match, RoomTTL)
	if err != nil {
		return models.Match{}, false, err
	}

	if created {
		s.notifier.Notify(ctx, target.ID, models.NotificationMatch,
			"New Match!", "You have a new match!", stored.ChatRoomID)
	}
	return stored, created, nil
}

// DeleteMatch removes a match on behalf of one of its participants. The
// repository soft-deletes the room in the same transaction when no other match
// references it.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID, callerID string) error {
	match, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.Involves(callerID) {
		return ErrForbidden
	}
	return s.matches.DeleteMatch(ctx, matchID)
}

// LockRoom locks a room. Idempotent.
func (s *MatchService) LockRoom(ctx context.Context, roomID string) error {
	return s.rooms.SetLocked(ctx, roomID, true)
}

// UnlockRoom unlocks a room. Idempotent.
func (s *MatchService) UnlockRoom(ctx context.Context, roomID string) error {
	return s.rooms.SetLocked(ctx, roomID, false)
}

// ExtendRoom pushes the room expiry forward by whole days.
func (s *MatchService) ExtendRoom(ctx context.Context, roomID string, days int) error {
	return s.rooms.ExtendExpiry(ctx, roomID, days)
}

// DeleteRoom soft-deletes a room.
func (s *MatchService) DeleteRoom(ctx context.Context, roomID string) error {
	return s.rooms.SoftDeleteRoom(ctx, roomID)
}

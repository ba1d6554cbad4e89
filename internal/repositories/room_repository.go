package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"match-service/internal/models"
)

var ErrRoomNotFound = errors.New("chat room not found")

const roomColumns = `id, user_a_id, user_b_id, created_at, expires_at, is_locked, locked_at,
    is_deleted, deleted_at, last_activity`

// RoomRepository manages chat room lifecycle state.
type RoomRepository interface {
	GetRoom(ctx context.Context, roomID string) (models.ChatRoom, error)
	ListRoomsForUser(ctx context.Context, userID string, limit, offset int) ([]models.ChatRoom, error)
	SetLocked(ctx context.Context, roomID string, locked bool) error
	ClaimLock(ctx context.Context, roomID string) (bool, error)
	ExtendExpiry(ctx context.Context, roomID string, days int) error
	SoftDeleteRoom(ctx context.Context, roomID string) error
	TouchActivity(ctx context.Context, roomID string) error
	ListExpiredUnlocked(ctx context.Context, now time.Time, limit int) ([]models.ChatRoom, error)
	ListExpiringWithoutReminder(ctx context.Context, now time.Time, window time.Duration, limit int) ([]models.ChatRoom, error)
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RoomRepo is a sqlx implementation of RoomRepository.
type RoomRepo struct {
	db *sqlx.DB
}

// NewRoomRepo constructs a RoomRepo.
func NewRoomRepo(db *sqlx.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// GetRoom fetches an undeleted room by id.
func (r *RoomRepo) GetRoom(ctx context.Context, roomID string) (models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.GetContext(ctx, &room,
		`SELECT `+roomColumns+` FROM chat_rooms WHERE id=$1 AND is_deleted=FALSE`, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatRoom{}, ErrRoomNotFound
	}
	return room, err
}

// ListRoomsForUser returns the caller's undeleted rooms, most recently active first.
func (r *RoomRepo) ListRoomsForUser(ctx context.Context, userID string, limit, offset int) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.SelectContext(ctx, &rooms,
		`SELECT `+roomColumns+` FROM chat_rooms
         WHERE (user_a_id=$1 OR user_b_id=$1) AND is_deleted=FALSE
         ORDER BY last_activity DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	return rooms, err
}

// SetLocked locks or unlocks a room. Idempotent: locking an already locked
// room keeps the original locked_at.
func (r *RoomRepo) SetLocked(ctx context.Context, roomID string, locked bool) error {
	var res sql.Result
	var err error
	if locked {
		res, err = r.db.ExecContext(ctx,
			`UPDATE chat_rooms SET is_locked=TRUE, locked_at=COALESCE(locked_at, NOW())
             WHERE id=$1 AND is_deleted=FALSE`, roomID)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE chat_rooms SET is_locked=FALSE, locked_at=NULL
             WHERE id=$1 AND is_deleted=FALSE`, roomID)
	}
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// ClaimLock locks an unlocked room and reports whether this caller won the
// claim. A false return means another writer locked it first, so the sweep
// that claims the room owns the one-shot side effects tied to locking.
func (r *RoomRepo) ClaimLock(ctx context.Context, roomID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chat_rooms SET is_locked=TRUE, locked_at=NOW()
         WHERE id=$1 AND is_locked=FALSE AND is_deleted=FALSE`, roomID)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExtendExpiry pushes the room expiry forward by whole days. A room already
// past its expiry is extended from now rather than from the stale deadline.
func (r *RoomRepo) ExtendExpiry(ctx context.Context, roomID string, days int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chat_rooms
         SET expires_at = GREATEST(expires_at, NOW()) + make_interval(days => $2)
         WHERE id=$1 AND is_deleted=FALSE`, roomID, days)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// SoftDeleteRoom marks the room deleted; the purge sweep removes it later.
func (r *RoomRepo) SoftDeleteRoom(ctx context.Context, roomID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chat_rooms SET is_deleted=TRUE, deleted_at=NOW() WHERE id=$1 AND is_deleted=FALSE`, roomID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// TouchActivity bumps last_activity to now.
func (r *RoomRepo) TouchActivity(ctx context.Context, roomID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE chat_rooms SET last_activity=NOW() WHERE id=$1`, roomID)
	return err
}

// ListExpiredUnlocked returns rooms past expiry that the expiry sweep has not
// locked yet.
func (r *RoomRepo) ListExpiredUnlocked(ctx context.Context, now time.Time, limit int) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.SelectContext(ctx, &rooms,
		`SELECT `+roomColumns+` FROM chat_rooms
         WHERE expires_at <= $1 AND is_locked=FALSE AND is_deleted=FALSE
         ORDER BY expires_at LIMIT $2`, now, limit)
	return rooms, err
}

// ListExpiringWithoutReminder returns unlocked rooms expiring inside the window
// that have no payment_reminder notification yet. The anti-join is the
// double-notification guard for concurrent sweep runs.
func (r *RoomRepo) ListExpiringWithoutReminder(ctx context.Context, now time.Time, window time.Duration, limit int) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.SelectContext(ctx, &rooms,
		`SELECT `+roomColumns+` FROM chat_rooms c
         WHERE c.expires_at > $1 AND c.expires_at <= $2
           AND c.is_locked=FALSE AND c.is_deleted=FALSE
           AND NOT EXISTS (
               SELECT 1 FROM notifications n
               WHERE n.related_room_id = c.id AND n.notification_type = 'payment_reminder'
           )
         ORDER BY c.expires_at LIMIT $3`, now, now.Add(window), limit)
	return rooms, err
}

// PurgeDeletedBefore hard-deletes rooms soft-deleted before the cutoff.
func (r *RoomRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_rooms WHERE is_deleted=TRUE AND deleted_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

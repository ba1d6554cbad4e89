package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"match-service/internal/models"
)

var ErrMatchNotFound = errors.New("match not found")

const matchColumns = `id, user_a_id, user_b_id, mode, match_score, created_at, expires_at, chat_room_id`

// MatchRepository manages match rows and the pair-uniqueness invariant.
type MatchRepository interface {
	// CreateOrGetMatch atomically inserts the match for its canonical pair,
	// creating and linking a chat room when the match is new. Under contention
	// on the pair it returns the winning row with created=false, never an error.
	CreateOrGetMatch(ctx context.Context, match models.Match, roomTTL time.Duration) (models.Match, bool, error)
	GetMatch(ctx context.Context, matchID string) (models.Match, error)
	// DeleteMatch removes the match and, in the same transaction, soft-deletes
	// its room when no other match still references it.
	DeleteMatch(ctx context.Context, matchID string) error
	ListExpired(ctx context.Context, now time.Time, limit int) ([]models.Match, error)
}

// MatchRepo is a sqlx implementation of MatchRepository.
type MatchRepo struct {
	db *sqlx.DB
}

// NewMatchRepo constructs a MatchRepo.
func NewMatchRepo(db *sqlx.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

func (r *MatchRepo) CreateOrGetMatch(ctx context.Context, match models.Match, roomTTL time.Duration) (models.Match, bool, error) {
	userA, userB := models.CanonicalPair(match.UserAID, match.UserBID)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Match{}, false, err
	}
	defer tx.Rollback()

	var stored models.Match
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO matches (id, user_a_id, user_b_id, mode, match_score, expires_at)
         VALUES ($1, $2, $3, $4, $5, $6)
         ON CONFLICT (user_a_id, user_b_id) DO NOTHING
         RETURNING `+matchColumns,
		uuid.NewString(), userA, userB, match.Mode, match.MatchScore, match.ExpiresAt).
		StructScan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the race or the match already existed; hand back the winner.
		if err := tx.GetContext(ctx, &stored,
			`SELECT `+matchColumns+` FROM matches WHERE user_a_id=$1 AND user_b_id=$2`,
			userA, userB); err != nil {
			return models.Match{}, false, err
		}
		return stored, false, tx.Commit()
	}
	if err != nil {
		return models.Match{}, false, err
	}

	var roomID string
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO chat_rooms (id, user_a_id, user_b_id, expires_at)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (user_a_id, user_b_id) DO NOTHING
         RETURNING id`,
		uuid.NewString(), userA, userB, time.Now().Add(roomTTL)).Scan(&roomID)
	if errors.Is(err, sql.ErrNoRows) {
		if err := tx.GetContext(ctx, &roomID,
			`SELECT id FROM chat_rooms WHERE user_a_id=$1 AND user_b_id=$2`, userA, userB); err != nil {
			return models.Match{}, false, err
		}
	} else if err != nil {
		return models.Match{}, false, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE matches SET chat_room_id=$2 WHERE id=$1`, stored.ID, roomID); err != nil {
		return models.Match{}, false, err
	}
	stored.ChatRoomID = &roomID

	return stored, true, tx.Commit()
}

// GetMatch fetches a match by id.
func (r *MatchRepo) GetMatch(ctx context.Context, matchID string) (models.Match, error) {
	var match models.Match
	err := r.db.GetContext(ctx, &match, `SELECT `+matchColumns+` FROM matches WHERE id=$1`, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Match{}, ErrMatchNotFound
	}
	return match, err
}

func (r *MatchRepo) DeleteMatch(ctx context.Context, matchID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var roomID sql.NullString
	err = tx.QueryRowxContext(ctx,
		`DELETE FROM matches WHERE id=$1 RETURNING chat_room_id`, matchID).Scan(&roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMatchNotFound
	}
	if err != nil {
		return err
	}

	if roomID.Valid {
		// Soft-delete the room only when it is now orphaned.
		if _, err := tx.ExecContext(ctx,
			`UPDATE chat_rooms SET is_deleted=TRUE, deleted_at=NOW()
             WHERE id=$1 AND is_deleted=FALSE
               AND NOT EXISTS (SELECT 1 FROM matches WHERE chat_room_id=$1)`,
			roomID.String); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListExpired returns matches whose expiry has passed.
func (r *MatchRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.SelectContext(ctx, &matches,
		`SELECT `+matchColumns+` FROM matches WHERE expires_at < $1 ORDER BY expires_at LIMIT $2`,
		now, limit)
	return matches, err
}

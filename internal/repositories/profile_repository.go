package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"match-service/internal/models"
)

var ErrProfileNotFound = errors.New("match profile not found")

// ProfileRepository manages per-user match preferences.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (models.MatchProfile, error)
	UpsertProfile(ctx context.Context, profile models.MatchProfile) (models.MatchProfile, error)
}

// ProfileRepo is a sqlx implementation of ProfileRepository.
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo constructs a ProfileRepo.
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// GetProfile fetches the profile owned by userID.
func (r *ProfileRepo) GetProfile(ctx context.Context, userID string) (models.MatchProfile, error) {
	var profile models.MatchProfile
	err := r.db.GetContext(ctx, &profile,
		`SELECT user_id, preferred_mode, scope, age_range_min, age_range_max,
                height_range_min_cm, height_range_max_cm, is_active, created_at, updated_at
         FROM match_profiles WHERE user_id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MatchProfile{}, ErrProfileNotFound
	}
	return profile, err
}

// UpsertProfile creates or replaces the caller's preferences.
func (r *ProfileRepo) UpsertProfile(ctx context.Context, profile models.MatchProfile) (models.MatchProfile, error) {
	var stored models.MatchProfile
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO match_profiles
            (user_id, preferred_mode, scope, age_range_min, age_range_max,
             height_range_min_cm, height_range_max_cm, is_active)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         ON CONFLICT (user_id) DO UPDATE SET
            preferred_mode=EXCLUDED.preferred_mode,
            scope=EXCLUDED.scope,
            age_range_min=EXCLUDED.age_range_min,
            age_range_max=EXCLUDED.age_range_max,
            height_range_min_cm=EXCLUDED.height_range_min_cm,
            height_range_max_cm=EXCLUDED.height_range_max_cm,
            is_active=EXCLUDED.is_active,
            updated_at=NOW()
         RETURNING user_id, preferred_mode, scope, age_range_min, age_range_max,
            height_range_min_cm, height_range_max_cm, is_active, created_at, updated_at`,
		profile.UserID, profile.PreferredMode, profile.Scope,
		profile.AgeRangeMin, profile.AgeRangeMax,
		profile.HeightRangeMinCm, profile.HeightRangeMaxCm, profile.IsActive).
		StructScan(&stored)
	return stored, err
}

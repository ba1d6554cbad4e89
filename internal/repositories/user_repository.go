package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"match-service/internal/models"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient token balance")
)

const userColumns = `id, handle, email, is_verified, is_institutional, is_banned, banned_at, ban_reason,
    gender, age, height_cm, degree, profession, city, state, country, interests, tokens_balance, created_at`

// UserRepository abstracts account reads plus the few mutations this service owns.
type UserRepository interface {
	GetUser(ctx context.Context, userID string) (models.User, error)
	GetUsers(ctx context.Context, userIDs []string) ([]models.User, error)
	FindCandidatePool(ctx context.Context, user models.User, profile models.MatchProfile, poolSize int) ([]models.User, error)
	DebitTokens(ctx context.Context, userID string, amount int) (before int, after int, err error)
	SetBanned(ctx context.Context, userID string, banned bool, reason string) error
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ApproveDomain(ctx context.Context, domain models.InstitutionDomain) error
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetUser fetches a user by id.
func (r *UserRepo) GetUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUsers fetches multiple users by id; missing ids are silently skipped.
func (r *UserRepo) GetUsers(ctx context.Context, userIDs []string) ([]models.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?)`, userIDs)
	if err != nil {
		return nil, err
	}
	var users []models.User
	err = r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...)
	return users, err
}

// FindCandidatePool returns up to poolSize randomly ordered users eligible for
// the requester under the profile's scope and range filters. Users already
// paired with the requester through a non-expired match are excluded, as are
// the requester, unverified, banned and non-institutional accounts.
func (r *UserRepo) FindCandidatePool(ctx context.Context, user models.User, profile models.MatchProfile, poolSize int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u
        WHERE u.is_verified = TRUE
          AND u.is_banned = FALSE
          AND u.is_institutional = TRUE
          AND u.id <> $1
          AND u.age IS NOT NULL AND u.age BETWEEN $2 AND $3
          AND NOT EXISTS (
              SELECT 1 FROM matches m
              WHERE m.expires_at > NOW()
                AND ((m.user_a_id = $1 AND m.user_b_id = u.id)
                  OR (m.user_b_id = $1 AND m.user_a_id = u.id))
          )`
	args := []interface{}{user.ID, profile.AgeRangeMin, profile.AgeRangeMax}

	switch profile.Scope {
	case models.ScopeSameInstitute:
		domain := emailDomain(user.Email)
		if domain == "" {
			return nil, nil
		}
		args = append(args, "%@"+domain)
		query += ` AND LOWER(u.email) LIKE LOWER($` + itoa(len(args)) + `)`
	case models.ScopeCity:
		args = append(args, user.City)
		query += ` AND u.city = $` + itoa(len(args))
	case models.ScopeState:
		args = append(args, user.State)
		query += ` AND u.state = $` + itoa(len(args))
	case models.ScopeNational:
		args = append(args, user.Country)
		query += ` AND u.country = $` + itoa(len(args))
	}

	if profile.HeightRangeMinCm != nil && profile.HeightRangeMaxCm != nil && user.HeightCm != nil {
		args = append(args, *profile.HeightRangeMinCm)
		query += ` AND u.height_cm >= $` + itoa(len(args))
		args = append(args, *profile.HeightRangeMaxCm)
		query += ` AND u.height_cm <= $` + itoa(len(args))
	}

	args = append(args, poolSize)
	query += ` ORDER BY RANDOM() LIMIT $` + itoa(len(args))

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, args...)
	return users, err
}

// DebitTokens decrements the balance only when it covers the amount. Returns
// ErrInsufficientBalance without mutating otherwise.
func (r *UserRepo) DebitTokens(ctx context.Context, userID string, amount int) (int, int, error) {
	var after int
	err := r.db.QueryRowxContext(ctx,
		`UPDATE users SET tokens_balance = tokens_balance - $2
         WHERE id=$1 AND tokens_balance >= $2
         RETURNING tokens_balance`, userID, amount).Scan(&after)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the user is missing or the balance is short; disambiguate.
		if _, getErr := r.GetUser(ctx, userID); getErr != nil {
			return 0, 0, getErr
		}
		return 0, 0, ErrInsufficientBalance
	}
	if err != nil {
		return 0, 0, err
	}
	return after + amount, after, nil
}

// SetBanned flips the ban flag; banning records the reason and timestamp.
func (r *UserRepo) SetBanned(ctx context.Context, userID string, banned bool, reason string) error {
	var res sql.Result
	var err error
	if banned {
		res, err = r.db.ExecContext(ctx,
			`UPDATE users SET is_banned=TRUE, banned_at=NOW(), ban_reason=$2 WHERE id=$1`, userID, reason)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE users SET is_banned=FALSE, banned_at=NULL, ban_reason='' WHERE id=$1`, userID)
	}
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUnverifiedBefore removes accounts that never completed verification.
func (r *UserRepo) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE is_verified=FALSE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ApproveDomain upserts an approved institution domain.
func (r *UserRepo) ApproveDomain(ctx context.Context, domain models.InstitutionDomain) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO institution_domains (domain, institution_name, country, is_approved)
         VALUES (LOWER($1), $2, $3, TRUE)
         ON CONFLICT (domain) DO UPDATE SET institution_name=EXCLUDED.institution_name, is_approved=TRUE`,
		domain.Domain, domain.InstitutionName, domain.Country)
	return err
}

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

var ErrSubscriptionNotFound = errors.New("subscription not found")

const subscriptionColumns = `id, user_id, chat_room_id, payment_id, amount_paise, currency,
    status, started_at, expires_at`

// SubscriptionRepository manages paid room extensions.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (models.Subscription, error)
	GetSubscription(ctx context.Context, subID string) (models.Subscription, error)
	SetStatus(ctx context.Context, subID, status string, expiresAt time.Time) error
	HasActiveSubscription(ctx context.Context, roomID, userID string, now time.Time) (bool, error)
	ListExpiredSuccess(ctx context.Context, now time.Time, limit int) ([]models.Subscription, error)
	MarkExpired(ctx context.Context, subID string) error
}

// SubscriptionRepo is a sqlx implementation of SubscriptionRepository.
type SubscriptionRepo struct {
	db *sqlx.DB
}

// NewSubscriptionRepo constructs a SubscriptionRepo.
func NewSubscriptionRepo(db *sqlx.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// CreateSubscription stores a pending payment record.
func (r *SubscriptionRepo) CreateSubscription(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	var stored models.Subscription
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO subscriptions (id, user_id, chat_room_id, payment_id, amount_paise, currency, status, expires_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING `+subscriptionColumns,
		uuid.NewString(), sub.UserID, sub.ChatRoomID, sub.PaymentID,
		sub.AmountPaise, sub.Currency, models.SubscriptionPending, sub.ExpiresAt).
		StructScan(&stored)
	return stored, err
}

// GetSubscription fetches a subscription by id.
func (r *SubscriptionRepo) GetSubscription(ctx context.Context, subID string) (models.Subscription, error) {
	var sub models.Subscription
	err := r.db.GetContext(ctx, &sub,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id=$1`, subID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subscription{}, ErrSubscriptionNotFound
	}
	return sub, err
}

// SetStatus records the gateway outcome and the resulting expiry.
func (r *SubscriptionRepo) SetStatus(ctx context.Context, subID, status string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET status=$2, expires_at=$3 WHERE id=$1`, subID, status, expiresAt)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// HasActiveSubscription reports whether the user holds a success-status,
// unexpired subscription for the room.
func (r *SubscriptionRepo) HasActiveSubscription(ctx context.Context, roomID, userID string, now time.Time) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(
            SELECT 1 FROM subscriptions
            WHERE chat_room_id=$1 AND user_id=$2 AND status=$3 AND expires_at > $4
        )`, roomID, userID, models.SubscriptionSuccess, now)
	return exists, err
}

// ListExpiredSuccess returns success subscriptions past their expiry.
func (r *SubscriptionRepo) ListExpiredSuccess(ctx context.Context, now time.Time, limit int) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.SelectContext(ctx, &subs,
		`SELECT `+subscriptionColumns+` FROM subscriptions
         WHERE status=$1 AND expires_at < $2 ORDER BY expires_at LIMIT $3`,
		models.SubscriptionSuccess, now, limit)
	return subs, err
}

// MarkExpired transitions a lapsed success subscription to expired.
func (r *SubscriptionRepo) MarkExpired(ctx context.Context, subID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET status=$2 WHERE id=$1 AND status=$3`,
		subID, models.SubscriptionExpired, models.SubscriptionSuccess)
	return err
}

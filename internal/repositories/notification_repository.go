package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"match-service/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

const notificationColumns = `id, user_id, notification_type, title, body, related_room_id,
    is_read, read_at, is_dismissed, dismissed_at, dispatched, created_at`

// NotificationRepository manages user-addressed event records.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error)
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	Dismiss(ctx context.Context, notificationID, userID string) error
	MarkDispatched(ctx context.Context, notificationID string) error
	ListUndispatched(ctx context.Context, limit int) ([]models.Notification, error)
}

// NotificationRepo is a sqlx implementation of NotificationRepository.
type NotificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo constructs a NotificationRepo.
func NewNotificationRepo(db *sqlx.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// CreateNotification stores a new notification row, undispatched.
func (r *NotificationRepo) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	var stored models.Notification
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO notifications (id, user_id, notification_type, title, body, related_room_id)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING `+notificationColumns,
		uuid.NewString(), n.UserID, n.NotificationType, n.Title, n.Body, n.RelatedRoomID).
		StructScan(&stored)
	return stored, err
}

// ListForUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.SelectContext(ctx, &notifications,
		`SELECT `+notificationColumns+` FROM notifications
         WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	return notifications, err
}

// MarkRead stamps the read flag for the owner.
func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID, userID string) error {
	return r.flag(ctx, `UPDATE notifications SET is_read=TRUE, read_at=COALESCE(read_at, NOW())
        WHERE id=$1 AND user_id=$2`, notificationID, userID)
}

// Dismiss stamps the dismissed flag for the owner. Independent of read.
func (r *NotificationRepo) Dismiss(ctx context.Context, notificationID, userID string) error {
	return r.flag(ctx, `UPDATE notifications SET is_dismissed=TRUE, dismissed_at=COALESCE(dismissed_at, NOW())
        WHERE id=$1 AND user_id=$2`, notificationID, userID)
}

func (r *NotificationRepo) flag(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkDispatched records a successful outbound publish.
func (r *NotificationRepo) MarkDispatched(ctx context.Context, notificationID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET dispatched=TRUE WHERE id=$1`, notificationID)
	return err
}

// ListUndispatched returns rows the redelivery sweep should republish.
func (r *NotificationRepo) ListUndispatched(ctx context.Context, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.SelectContext(ctx, &notifications,
		`SELECT `+notificationColumns+` FROM notifications
         WHERE dispatched=FALSE ORDER BY created_at LIMIT $1`, limit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return notifications, err
}

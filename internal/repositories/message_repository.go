package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"match-service/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

const messageColumns = `id, room_id, sender_id, message_type, content, media_url,
    is_seen, seen_at, is_deleted, deleted_at, created_at`

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, roomID, senderID, messageType, content, mediaURL string) (models.ChatMessage, error)
	GetMessage(ctx context.Context, messageID string) (models.ChatMessage, error)
	ListRoomMessages(ctx context.Context, roomID string, limit, offset int) ([]models.ChatMessage, error)
	MarkSeen(ctx context.Context, messageID string) error
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage appends a message to the room.
func (r *MessageRepo) CreateMessage(ctx context.Context, roomID, senderID, messageType, content, mediaURL string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO chat_messages (id, room_id, sender_id, message_type, content, media_url)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING `+messageColumns,
		uuid.NewString(), roomID, senderID, messageType, content, mediaURL).
		StructScan(&msg)
	return msg, err
}

// GetMessage retrieves a single message.
func (r *MessageRepo) GetMessage(ctx context.Context, messageID string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.GetContext(ctx, &msg,
		`SELECT `+messageColumns+` FROM chat_messages WHERE id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatMessage{}, ErrMessageNotFound
	}
	return msg, err
}

// ListRoomMessages returns undeleted messages, newest first.
func (r *MessageRepo) ListRoomMessages(ctx context.Context, roomID string, limit, offset int) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT `+messageColumns+` FROM chat_messages
         WHERE room_id=$1 AND is_deleted=FALSE
         ORDER BY created_at DESC LIMIT $2 OFFSET $3`, roomID, limit, offset)
	return msgs, err
}

// MarkSeen stamps the seen flag. Already-seen messages keep their original
// seen_at.
func (r *MessageRepo) MarkSeen(ctx context.Context, messageID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chat_messages SET is_seen=TRUE, seen_at=COALESCE(seen_at, NOW()) WHERE id=$1`, messageID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrMessageNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"match-service/internal/models"
)

var ErrGiftNotFound = errors.New("gift not found")

// GiftRepository reads the gift catalog and records deliveries and the token
// ledger entries that pay for them.
type GiftRepository interface {
	GetActiveGift(ctx context.Context, giftID string) (models.Gift, error)
	ListActiveGifts(ctx context.Context) ([]models.Gift, error)
	CreateSentGift(ctx context.Context, sent models.SentGift) (models.SentGift, error)
	CreateTokenTransaction(ctx context.Context, txn models.TokenTransaction) error
}

// GiftRepo is a sqlx implementation of GiftRepository.
type GiftRepo struct {
	db *sqlx.DB
}

// NewGiftRepo constructs a GiftRepo.
func NewGiftRepo(db *sqlx.DB) *GiftRepo {
	return &GiftRepo{db: db}
}

// GetActiveGift fetches an active catalog gift.
func (r *GiftRepo) GetActiveGift(ctx context.Context, giftID string) (models.Gift, error) {
	var gift models.Gift
	err := r.db.GetContext(ctx, &gift,
		`SELECT id, name, description, image_url, token_cost, is_active, created_at
         FROM gifts WHERE id=$1 AND is_active=TRUE`, giftID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Gift{}, ErrGiftNotFound
	}
	return gift, err
}

// ListActiveGifts returns the purchasable catalog, cheapest first.
func (r *GiftRepo) ListActiveGifts(ctx context.Context) ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.SelectContext(ctx, &gifts,
		`SELECT id, name, description, image_url, token_cost, is_active, created_at
         FROM gifts WHERE is_active=TRUE ORDER BY token_cost`)
	return gifts, err
}

// CreateSentGift records a delivered gift.
func (r *GiftRepo) CreateSentGift(ctx context.Context, sent models.SentGift) (models.SentGift, error) {
	var stored models.SentGift
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO sent_gifts (id, gift_id, sender_id, recipient_id, chat_room_id, message)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id, gift_id, sender_id, recipient_id, chat_room_id, message, created_at`,
		uuid.NewString(), sent.GiftID, sent.SenderID, sent.RecipientID, sent.ChatRoomID, sent.Message).
		StructScan(&stored)
	return stored, err
}

// CreateTokenTransaction appends a ledger entry.
func (r *GiftRepo) CreateTokenTransaction(ctx context.Context, txn models.TokenTransaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO token_transactions
            (id, user_id, transaction_type, amount, balance_before, balance_after, description, related_object_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.NewString(), txn.UserID, txn.TransactionType, txn.Amount,
		txn.BalanceBefore, txn.BalanceAfter, txn.Description, txn.RelatedObjectID)
	return err
}

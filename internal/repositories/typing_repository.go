package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const typingKeyPrefix = "typing:"

// TypingRepository tracks ephemeral per-room typing indicators. Backed by
// Redis: the indicator has no value beyond its existence and creation time,
// and a stale sweep removes entries older than the cutoff.
type TypingRepository interface {
	SetTyping(ctx context.Context, roomID, userID string) error
	ClearTyping(ctx context.Context, roomID, userID string) error
	IsTyping(ctx context.Context, roomID, userID string) (bool, error)
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// TypingRepo is a go-redis implementation of TypingRepository.
type TypingRepo struct {
	rdb *redis.Client
}

// NewTypingRepo constructs a TypingRepo.
func NewTypingRepo(rdb *redis.Client) *TypingRepo {
	return &TypingRepo{rdb: rdb}
}

func typingKey(roomID, userID string) string {
	return fmt.Sprintf("%s%s:%s", typingKeyPrefix, roomID, userID)
}

// SetTyping upserts the indicator, refreshing its creation time.
func (r *TypingRepo) SetTyping(ctx context.Context, roomID, userID string) error {
	return r.rdb.Set(ctx, typingKey(roomID, userID), time.Now().UTC().Format(time.RFC3339Nano), 0).Err()
}

// ClearTyping removes the indicator; clearing an absent one is a no-op.
func (r *TypingRepo) ClearTyping(ctx context.Context, roomID, userID string) error {
	return r.rdb.Del(ctx, typingKey(roomID, userID)).Err()
}

// IsTyping reports whether the indicator exists.
func (r *TypingRepo) IsTyping(ctx context.Context, roomID, userID string) (bool, error) {
	count, err := r.rdb.Exists(ctx, typingKey(roomID, userID)).Result()
	return count > 0, err
}

// DeleteStale removes indicators created before the cutoff.
func (r *TypingRepo) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	iter := r.rdb.Scan(ctx, 0, typingKeyPrefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := r.rdb.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return removed, err
		}
		createdAt, err := time.Parse(time.RFC3339Nano, val)
		if err != nil || createdAt.Before(cutoff) {
			if err := r.rdb.Del(ctx, key).Err(); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, iter.Err()
}

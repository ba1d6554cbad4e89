package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"match-service/internal/models"
	"match-service/internal/repositories"
)

// SubscriptionDuration is how long a confirmed payment keeps a room open.
const SubscriptionDuration = 30 * 24 * time.Hour

// SubscriptionService runs the paid-unlock flow for locked rooms.
type SubscriptionService struct {
	subs     repositories.SubscriptionRepository
	rooms    repositories.RoomRepository
	notifier Notifier
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(
	subs repositories.SubscriptionRepository,
	rooms repositories.RoomRepository,
	notifier Notifier,
) *SubscriptionService {
	return &SubscriptionService{subs: subs, rooms: rooms, notifier: notifier}
}

// CreateSubscription opens a pending payment for the room on behalf of a
// participant. The payment id is handed to the gateway and echoed back on
// confirmation.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, roomID, userID string, amountPaise int, currency string) (models.Subscription, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return models.Subscription{}, err
	}
	if !room.Involves(userID) {
		return models.Subscription{}, ErrForbidden
	}
	if currency == "" {
		currency = "INR"
	}
	return s.subs.CreateSubscription(ctx, models.Subscription{
		UserID:      userID,
		ChatRoomID:  roomID,
		PaymentID:   uuid.NewString(),
		AmountPaise: amountPaise,
		Currency:    currency,
		ExpiresAt:   time.Now().Add(SubscriptionDuration),
	})
}

// ConfirmSubscription records the gateway outcome. A successful payment
// unlocks the room and pushes its expiry out by the subscription duration;
// failed and cancelled outcomes are recorded and change nothing else.
func (s *SubscriptionService) ConfirmSubscription(ctx context.Context, subID, userID, status string) (models.Subscription, error) {
	sub, err := s.subs.GetSubscription(ctx, subID)
	if err != nil {
		return models.Subscription{}, err
	}
	if sub.UserID != userID {
		return models.Subscription{}, ErrForbidden
	}

	switch status {
	case models.SubscriptionSuccess:
		expiresAt := time.Now().Add(SubscriptionDuration)
		if err := s.subs.SetStatus(ctx, subID, models.SubscriptionSuccess, expiresAt); err != nil {
			return models.Subscription{}, err
		}
		if err := s.rooms.SetLocked(ctx, sub.ChatRoomID, false); err != nil {
			log.Printf("unlock room %s after payment %s: %v", sub.ChatRoomID, sub.PaymentID, err)
		}
		days := int(SubscriptionDuration / (24 * time.Hour))
		if err := s.rooms.ExtendExpiry(ctx, sub.ChatRoomID, days); err != nil {
			log.Printf("extend room %s after payment %s: %v", sub.ChatRoomID, sub.PaymentID, err)
		}
		sub.Status = models.SubscriptionSuccess
		sub.ExpiresAt = expiresAt
	case models.SubscriptionFailed, models.SubscriptionCancelled:
		if err := s.subs.SetStatus(ctx, subID, status, sub.ExpiresAt); err != nil {
			return models.Subscription{}, err
		}
		sub.Status = status
	default:
		return models.Subscription{}, ErrInvalidSubscriptionStatus
	}
	return sub, nil
}

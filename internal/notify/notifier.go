package notify

import (
	"context"
	"log"
	"time"

	"match-service/internal/models"
	"match-service/internal/observability"
	"match-service/internal/rabbitmq"
	"match-service/internal/repositories"
)

// Event is the outbound notification envelope.
type Event struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	RelatedRoomID  *string   `json:"related_room_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Service persists notifications and publishes them as events. The row is the
// source of truth: publish failures leave it undispatched for the redelivery
// sweep to retry.
type Service struct {
	notifications repositories.NotificationRepository
	publisher     rabbitmq.Publisher
	routingKey    string
}

// NewService constructs a Service.
func NewService(notifications repositories.NotificationRepository, publisher rabbitmq.Publisher, routingKey string) *Service {
	return &Service{notifications: notifications, publisher: publisher, routingKey: routingKey}
}

// Notify stores a notification for the user and publishes it. Fire-and-forget:
// failures are logged and counted, never surfaced to the calling flow.
func (s *Service) Notify(ctx context.Context, userID, notificationType, title, body string, relatedRoomID *string) {
	stored, err := s.notifications.CreateNotification(ctx, models.Notification{
		UserID:           userID,
		NotificationType: notificationType,
		Title:            title,
		Body:             body,
		RelatedRoomID:    relatedRoomID,
	})
	if err != nil {
		log.Printf("store notification for user %s: %v", userID, err)
		return
	}
	s.publish(ctx, stored)
}

// Redeliver republishes undispatched notifications. Returns how many were
// attempted.
func (s *Service) Redeliver(ctx context.Context, limit int) (int, error) {
	pending, err := s.notifications.ListUndispatched(ctx, limit)
	if err != nil {
		return 0, err
	}
	for _, n := range pending {
		s.publish(ctx, n)
	}
	return len(pending), nil
}

func (s *Service) publish(ctx context.Context, n models.Notification) {
	event := Event{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Type:           n.NotificationType,
		Title:          n.Title,
		Body:           n.Body,
		RelatedRoomID:  n.RelatedRoomID,
		OccurredAt:     n.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, s.routingKey, event); err != nil {
		observability.IncNotificationPublish("error")
		log.Printf("publish notification %s: %v", n.ID, err)
		return
	}
	observability.IncNotificationPublish("ok")
	if err := s.notifications.MarkDispatched(ctx, n.ID); err != nil {
		log.Printf("mark notification %s dispatched: %v", n.ID, err)
	}
}

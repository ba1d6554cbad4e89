package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"match-service/internal/models"
	"match-service/internal/repositories"
)

// ChatService enforces room access and carries out message, seen, typing and
// gift operations on behalf of a participant.
type ChatService struct {
	rooms    repositories.RoomRepository
	messages repositories.MessageRepository
	subs     repositories.SubscriptionRepository
	users    repositories.UserRepository
	gifts    repositories.GiftRepository
	typing   repositories.TypingRepository
	notifier Notifier
}

// NewChatService constructs a ChatService.
func NewChatService(
	rooms repositories.RoomRepository,
	messages repositories.MessageRepository,
	subs repositories.SubscriptionRepository,
	users repositories.UserRepository,
	gifts repositories.GiftRepository,
	typing repositories.TypingRepository,
	notifier Notifier,
) *ChatService {
	return &ChatService{
		rooms:    rooms,
		messages: messages,
		subs:     subs,
		users:    users,
		gifts:    gifts,
		typing:   typing,
		notifier: notifier,
	}
}

// RoomAccess loads the room and checks that userID may operate in it right
// now. A locked room stays accessible to a participant holding an active
// subscription for it.
func (s *ChatService) RoomAccess(ctx context.Context, roomID, userID string) (models.ChatRoom, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return models.ChatRoom{}, err
	}
	if !room.Involves(userID) {
		return models.ChatRoom{}, ErrForbidden
	}
	if room.IsLocked {
		active, err := s.subs.HasActiveSubscription(ctx, roomID, userID, time.Now())
		if err != nil {
			return models.ChatRoom{}, err
		}
		if !active {
			return models.ChatRoom{}, ErrRoomLocked
		}
	}
	return room, nil
}

// SendMessage appends a message to the room. The lock state is re-checked on
// every send, so a sweep locking the room mid-conversation takes effect on the
// next message, not the next connection.
func (s *ChatService) SendMessage(ctx context.Context, roomID, senderID, messageType, content, mediaURL string) (models.ChatMessage, error) {
	if !models.ValidMessageType(messageType) {
		return models.ChatMessage{}, ErrInvalidMessage
	}
	if strings.TrimSpace(content) == "" && mediaURL == "" {
		return models.ChatMessage{}, ErrInvalidMessage
	}

	room, err := s.RoomAccess(ctx, roomID, senderID)
	if err != nil {
		return models.ChatMessage{}, err
	}

	msg, err := s.messages.CreateMessage(ctx, roomID, senderID, messageType, content, mediaURL)
	if err != nil {
		return models.ChatMessage{}, err
	}
	if err := s.rooms.TouchActivity(ctx, roomID); err != nil {
		log.Printf("touch activity for room %s: %v", roomID, err)
	}
	// Sending implies the sender stopped typing.
	if err := s.typing.ClearTyping(ctx, roomID, senderID); err != nil {
		log.Printf("clear typing for room %s user %s: %v", roomID, senderID, err)
	}

	s.notifier.Notify(ctx, room.OtherUser(senderID), models.NotificationMessage,
		"New Message", "You have a new message", &room.ID)
	return msg, nil
}

// ListMessages returns the room's messages for a participant, newest first.
func (s *ChatService) ListMessages(ctx context.Context, roomID, userID string, limit, offset int) ([]models.ChatMessage, error) {
	if _, err := s.RoomAccess(ctx, roomID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.messages.ListRoomMessages(ctx, roomID, limit, offset)
}

// MarkSeen marks the given messages seen by userID. Messages the user sent
// themselves, messages from other rooms and unknown ids are skipped silently.
func (s *ChatService) MarkSeen(ctx context.Context, roomID, userID string, messageIDs []string) error {
	if _, err := s.RoomAccess(ctx, roomID, userID); err != nil {
		return err
	}
	for _, id := range messageIDs {
		msg, err := s.messages.GetMessage(ctx, id)
		if errors.Is(err, repositories.ErrMessageNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if msg.RoomID != roomID || msg.SenderID == userID {
			continue
		}
		if err := s.messages.MarkSeen(ctx, id); err != nil && !errors.Is(err, repositories.ErrMessageNotFound) {
			return err
		}
	}
	return nil
}

// SetTyping sets or clears the caller's typing indicator in the room.
func (s *ChatService) SetTyping(ctx context.Context, roomID, userID string, typing bool) error {
	if _, err := s.RoomAccess(ctx, roomID, userID); err != nil {
		return err
	}
	if typing {
		return s.typing.SetTyping(ctx, roomID, userID)
	}
	return s.typing.ClearTyping(ctx, roomID, userID)
}

// Disconnect clears session-scoped state after a websocket closes. No access
// check: the room may have locked or expired while the session was open, and
// the indicator must go away regardless.
func (s *ChatService) Disconnect(ctx context.Context, roomID, userID string) {
	if err := s.typing.ClearTyping(ctx, roomID, userID); err != nil {
		log.Printf("clear typing on disconnect room %s user %s: %v", roomID, userID, err)
	}
}

// SendGift debits the sender, records the delivery and the ledger entry, and
// appends a gift message to the room. The lock check runs before any tokens
// move, so a locked room never costs the sender anything.
func (s *ChatService) SendGift(ctx context.Context, roomID, senderID, giftID, message string) (models.SentGift, error) {
	room, err := s.RoomAccess(ctx, roomID, senderID)
	if err != nil {
		return models.SentGift{}, err
	}

	gift, err := s.gifts.GetActiveGift(ctx, giftID)
	if err != nil {
		return models.SentGift{}, err
	}

	before, after, err := s.users.DebitTokens(ctx, senderID, gift.TokenCost)
	if err != nil {
		return models.SentGift{}, err
	}

	recipientID := room.OtherUser(senderID)
	sent, err := s.gifts.CreateSentGift(ctx, models.SentGift{
		GiftID:      gift.ID,
		SenderID:    senderID,
		RecipientID: recipientID,
		ChatRoomID:  roomID,
		Message:     message,
	})
	if err != nil {
		return models.SentGift{}, err
	}

	txn := models.TokenTransaction{
		UserID:          senderID,
		TransactionType: "gift_sent",
		Amount:          -gift.TokenCost,
		BalanceBefore:   before,
		BalanceAfter:    after,
		Description:     fmt.Sprintf("Sent gift: %s", gift.Name),
		RelatedObjectID: sent.ID,
	}
	if err := s.gifts.CreateTokenTransaction(ctx, txn); err != nil {
		log.Printf("record token transaction for gift %s: %v", sent.ID, err)
	}

	content := message
	if content == "" {
		content = gift.Name
	}
	if _, err := s.messages.CreateMessage(ctx, roomID, senderID, models.MessageGift, content, gift.ImageURL); err != nil {
		log.Printf("append gift message to room %s: %v", roomID, err)
	}
	if err := s.rooms.TouchActivity(ctx, roomID); err != nil {
		log.Printf("touch activity for room %s: %v", roomID, err)
	}

	s.notifier.Notify(ctx, recipientID, models.NotificationMessage,
		"Gift Received", fmt.Sprintf("You received a gift: %s", gift.Name), &room.ID)
	return sent, nil
}

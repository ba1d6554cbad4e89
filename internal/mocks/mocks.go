package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"match-service/internal/models"
	"match-service/internal/repositories"
)

var (
	_ repositories.UserRepository         = (*UserRepositoryMock)(nil)
	_ repositories.ProfileRepository      = (*ProfileRepositoryMock)(nil)
	_ repositories.MatchRepository        = (*MatchRepositoryMock)(nil)
	_ repositories.RoomRepository         = (*RoomRepositoryMock)(nil)
	_ repositories.MessageRepository      = (*MessageRepositoryMock)(nil)
	_ repositories.SubscriptionRepository = (*SubscriptionRepositoryMock)(nil)
	_ repositories.NotificationRepository = (*NotificationRepositoryMock)(nil)
	_ repositories.GiftRepository         = (*GiftRepositoryMock)(nil)
	_ repositories.TypingRepository       = (*TypingRepositoryMock)(nil)
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, userID string) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUsers(ctx context.Context, userIDs []string) ([]models.User, error) {
	args := m.Called(ctx, userIDs)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) FindCandidatePool(ctx context.Context, user models.User, profile models.MatchProfile, poolSize int) ([]models.User, error) {
	args := m.Called(ctx, user, profile, poolSize)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) DebitTokens(ctx context.Context, userID string, amount int) (int, int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *UserRepositoryMock) SetBanned(ctx context.Context, userID string, banned bool, reason string) error {
	args := m.Called(ctx, userID, banned, reason)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepositoryMock) ApproveDomain(ctx context.Context, domain models.InstitutionDomain) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}

type ProfileRepositoryMock struct {
	mock.Mock
}

func (m *ProfileRepositoryMock) GetProfile(ctx context.Context, userID string) (models.MatchProfile, error) {
	args := m.Called(ctx, userID)
	var profile models.MatchProfile
	if val := args.Get(0); val != nil {
		profile = val.(models.MatchProfile)
	}
	return profile, args.Error(1)
}

func (m *ProfileRepositoryMock) UpsertProfile(ctx context.Context, profile models.MatchProfile) (models.MatchProfile, error) {
	args := m.Called(ctx, profile)
	var stored models.MatchProfile
	if val := args.Get(0); val != nil {
		stored = val.(models.MatchProfile)
	}
	return stored, args.Error(1)
}

type MatchRepositoryMock struct {
	mock.Mock
}

func (m *MatchRepositoryMock) CreateOrGetMatch(ctx context.Context, match models.Match, roomTTL time.Duration) (models.Match, bool, error) {
	args := m.Called(ctx, match, roomTTL)
	var stored models.Match
	if val := args.Get(0); val != nil {
		stored = val.(models.Match)
	}
	return stored, args.Bool(1), args.Error(2)
}

func (m *MatchRepositoryMock) GetMatch(ctx context.Context, matchID string) (models.Match, error) {
	args := m.Called(ctx, matchID)
	var match models.Match
	if val := args.Get(0); val != nil {
		match = val.(models.Match)
	}
	return match, args.Error(1)
}

func (m *MatchRepositoryMock) DeleteMatch(ctx context.Context, matchID string) error {
	args := m.Called(ctx, matchID)
	return args.Error(0)
}

func (m *MatchRepositoryMock) ListExpired(ctx context.Context, now time.Time, limit int) ([]models.Match, error) {
	args := m.Called(ctx, now, limit)
	var matches []models.Match
	if val := args.Get(0); val != nil {
		matches = val.([]models.Match)
	}
	return matches, args.Error(1)
}

type RoomRepositoryMock struct {
	mock.Mock
}

func (m *RoomRepositoryMock) GetRoom(ctx context.Context, roomID string) (models.ChatRoom, error) {
	args := m.Called(ctx, roomID)
	var room models.ChatRoom
	if val := args.Get(0); val != nil {
		room = val.(models.ChatRoom)
	}
	return room, args.Error(1)
}

func (m *RoomRepositoryMock) ListRoomsForUser(ctx context.Context, userID string, limit, offset int) ([]models.ChatRoom, error) {
	args := m.Called(ctx, userID, limit, offset)
	var rooms []models.ChatRoom
	if val := args.Get(0); val != nil {
		rooms = val.([]models.ChatRoom)
	}
	return rooms, args.Error(1)
}

func (m *RoomRepositoryMock) SetLocked(ctx context.Context, roomID string, locked bool) error {
	args := m.Called(ctx, roomID, locked)
	return args.Error(0)
}

func (m *RoomRepositoryMock) ClaimLock(ctx context.Context, roomID string) (bool, error) {
	args := m.Called(ctx, roomID)
	return args.Bool(0), args.Error(1)
}

func (m *RoomRepositoryMock) ExtendExpiry(ctx context.Context, roomID string, days int) error {
	args := m.Called(ctx, roomID, days)
	return args.Error(0)
}

func (m *RoomRepositoryMock) SoftDeleteRoom(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *RoomRepositoryMock) TouchActivity(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *RoomRepositoryMock) ListExpiredUnlocked(ctx context.Context, now time.Time, limit int) ([]models.ChatRoom, error) {
	args := m.Called(ctx, now, limit)
	var rooms []models.ChatRoom
	if val := args.Get(0); val != nil {
		rooms = val.([]models.ChatRoom)
	}
	return rooms, args.Error(1)
}

func (m *RoomRepositoryMock) ListExpiringWithoutReminder(ctx context.Context, now time.Time, window time.Duration, limit int) ([]models.ChatRoom, error) {
	args := m.Called(ctx, now, window, limit)
	var rooms []models.ChatRoom
	if val := args.Get(0); val != nil {
		rooms = val.([]models.ChatRoom)
	}
	return rooms, args.Error(1)
}

func (m *RoomRepositoryMock) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, roomID, senderID, messageType, content, mediaURL string) (models.ChatMessage, error) {
	args := m.Called(ctx, roomID, senderID, messageType, content, mediaURL)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) GetMessage(ctx context.Context, messageID string) (models.ChatMessage, error) {
	args := m.Called(ctx, messageID)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListRoomMessages(ctx context.Context, roomID string, limit, offset int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, roomID, limit, offset)
	var msgs []models.ChatMessage
	if val := args.Get(0); val != nil {
		msgs = val.([]models.ChatMessage)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) MarkSeen(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

type SubscriptionRepositoryMock struct {
	mock.Mock
}

func (m *SubscriptionRepositoryMock) CreateSubscription(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	args := m.Called(ctx, sub)
	var stored models.Subscription
	if val := args.Get(0); val != nil {
		stored = val.(models.Subscription)
	}
	return stored, args.Error(1)
}

func (m *SubscriptionRepositoryMock) GetSubscription(ctx context.Context, subID string) (models.Subscription, error) {
	args := m.Called(ctx, subID)
	var sub models.Subscription
	if val := args.Get(0); val != nil {
		sub = val.(models.Subscription)
	}
	return sub, args.Error(1)
}

func (m *SubscriptionRepositoryMock) SetStatus(ctx context.Context, subID, status string, expiresAt time.Time) error {
	args := m.Called(ctx, subID, status, expiresAt)
	return args.Error(0)
}

func (m *SubscriptionRepositoryMock) HasActiveSubscription(ctx context.Context, roomID, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, roomID, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *SubscriptionRepositoryMock) ListExpiredSuccess(ctx context.Context, now time.Time, limit int) ([]models.Subscription, error) {
	args := m.Called(ctx, now, limit)
	var subs []models.Subscription
	if val := args.Get(0); val != nil {
		subs = val.([]models.Subscription)
	}
	return subs, args.Error(1)
}

func (m *SubscriptionRepositoryMock) MarkExpired(ctx context.Context, subID string) error {
	args := m.Called(ctx, subID)
	return args.Error(0)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	args := m.Called(ctx, n)
	var stored models.Notification
	if val := args.Get(0); val != nil {
		stored = val.(models.Notification)
	}
	return stored, args.Error(1)
}

func (m *NotificationRepositoryMock) ListForUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	var notifications []models.Notification
	if val := args.Get(0); val != nil {
		notifications = val.([]models.Notification)
	}
	return notifications, args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, notificationID, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) Dismiss(ctx context.Context, notificationID, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) MarkDispatched(ctx context.Context, notificationID string) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) ListUndispatched(ctx context.Context, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, limit)
	var notifications []models.Notification
	if val := args.Get(0); val != nil {
		notifications = val.([]models.Notification)
	}
	return notifications, args.Error(1)
}

type GiftRepositoryMock struct {
	mock.Mock
}

func (m *GiftRepositoryMock) GetActiveGift(ctx context.Context, giftID string) (models.Gift, error) {
	args := m.Called(ctx, giftID)
	var gift models.Gift
	if val := args.Get(0); val != nil {
		gift = val.(models.Gift)
	}
	return gift, args.Error(1)
}

func (m *GiftRepositoryMock) ListActiveGifts(ctx context.Context) ([]models.Gift, error) {
	args := m.Called(ctx)
	var gifts []models.Gift
	if val := args.Get(0); val != nil {
		gifts = val.([]models.Gift)
	}
	return gifts, args.Error(1)
}

func (m *GiftRepositoryMock) CreateSentGift(ctx context.Context, sent models.SentGift) (models.SentGift, error) {
	args := m.Called(ctx, sent)
	var stored models.SentGift
	if val := args.Get(0); val != nil {
		stored = val.(models.SentGift)
	}
	return stored, args.Error(1)
}

func (m *GiftRepositoryMock) CreateTokenTransaction(ctx context.Context, txn models.TokenTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

type TypingRepositoryMock struct {
	mock.Mock
}

func (m *TypingRepositoryMock) SetTyping(ctx context.Context, roomID, userID string) error {
	args := m.Called(ctx, roomID, userID)
	return args.Error(0)
}

func (m *TypingRepositoryMock) ClearTyping(ctx context.Context, roomID, userID string) error {
	args := m.Called(ctx, roomID, userID)
	return args.Error(0)
}

func (m *TypingRepositoryMock) IsTyping(ctx context.Context, roomID, userID string) (bool, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *TypingRepositoryMock) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"match-service/internal/mocks"
	"match-service/internal/models"
	"match-service/internal/repositories"
)

type chatServiceFixture struct {
	rooms    *mocks.RoomRepositoryMock
	messages *mocks.MessageRepositoryMock
	subs     *mocks.SubscriptionRepositoryMock
	users    *mocks.UserRepositoryMock
	gifts    *mocks.GiftRepositoryMock
	typing   *mocks.TypingRepositoryMock
	notifier *mocks.NotifierMock
	svc      *ChatService
}

func newChatServiceFixture() *chatServiceFixture {
	f := &chatServiceFixture{
		rooms:    new(mocks.RoomRepositoryMock),
		messages: new(mocks.MessageRepositoryMock),
		subs:     new(mocks.SubscriptionRepositoryMock),
		users:    new(mocks.UserRepositoryMock),
		gifts:    new(mocks.GiftRepositoryMock),
		typing:   new(mocks.TypingRepositoryMock),
		notifier: new(mocks.NotifierMock),
	}
	f.svc = NewChatService(f.rooms, f.messages, f.subs, f.users, f.gifts, f.typing, f.notifier)
	return f
}

func openRoom() models.ChatRoom {
	return models.ChatRoom{ID: "r1", UserAID: "u1", UserBID: "u2"}
}

func lockedRoom() models.ChatRoom {
	room := openRoom()
	room.IsLocked = true
	return room
}

func TestRoomAccessNonParticipant(t *testing.T) {
	f := newChatServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").Return(openRoom(), nil).Once()

	_, err := f.svc.RoomAccess(context.Background(), "r1", "intruder")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRoomAccessLockedWithoutSubscription(t *testing.T) {
	f := newChatServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").Return(lockedRoom(), nil).Once()
	f.subs.On("HasActiveSubscription", mock.Anything, "r1", "u1", mock.Anything).Return(false, nil).Once()

	_, err := f.svc.RoomAccess(context.Background(), "r1", "u1")
	require.ErrorIs(t, err, ErrRoomLocked)
}

func TestRoomAccessLockedWithSubscription(t *testing.T) {
	f := newChatServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").Return(lockedRoom(), nil).Once()
	f.subs.On("HasActiveSubscription", mock.Anything, "r1", "u1", mock.Anything).Return(true, nil).Once()

	room, err := f.svc.RoomAccess(context.Background(), "r1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "r1", room.ID)
}

func TestSendMessageInvalidType(t *testing.T) {
	f := newChatServiceFixture()

	_, err := f.svc.SendMessage(context.Background(), "r1", "u1", "carrier-pigeon", "hi", "")
	require.ErrorIs(t, err, ErrInvalidMessage)
	f.rooms.AssertNotCalled(t, "GetRoom", mock.Anything, mock.Anything)
}

func TestSendMessageEmptyContent(t *testing.T) {
	f := newChatServiceFixture()

	_, err := f.svc.SendMessage(context.Background(), "r1", "u1", models.MessageText, "   ", "")
	require.ErrorIs(t, err, ErrInvalidMessage)
}

func TestSendMessageLockedRoomRejected(t *testing.T) {
	f := newChatServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").Return(lockedRoom(), nil).Once()
	f.subs.On("HasActiveSubscription", mock.Anything, "r1", "u1", mock.Anything).Return(false, nil).Once()

	_, err := f.svc.SendMessage(context.Background(), "r1", "u1", models.MessageText, "hi", "")
	require.ErrorIs(t, err, ErrRoomLocked)
	f.messages.AssertNotCalled(t, "CreateMessage",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessageTouchesRoomAndClearsTyping(t *testing.T) {
	f := newChatServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").Return(openRoom(), nil).Once()
	f.messages.On("CreateMessage", mock.Anything, "r1", "u1", models.MessageText, "hi", "").
		Return(models.ChatMessage{ID: "msg1", RoomID: "r1", SenderID: "u1", Content: "hi"}, nil).Once()
	f.rooms.On("TouchActivity", mock.Anything, "r1").Return(nil).Once()
	f.typing.On("ClearTyping", mock.Anything, "r1", "u1").Return(nil).Once()
	f.notifier.On("Notify", mock.Anything, "u2", models.NotificationMessage,
		mock.Anything, mock.Anything, mock.Anything).Once()

	msg, err := f.svc.SendMessage(context.Background(), "r1", "u1", models.MessageText, "hi", "")
	require.NoError(t, err)
	assert.Equal(t, "msg1", msg.ID)
	f.rooms.AssertExpectations(t)
	f.typing.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestMarkSeenSkipsOwnForeignAndUnknown(t *testing.T) {
	f := newChatServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").Return(openRoom(), nil).Once()

	f.messages.On("GetMessage", mock.Anything, "own").
		Return(models.ChatMessage{ID: "own", RoomID: "r1", SenderID: "u1"}, nil).Once()
	f.messages.On("GetMessage", mock.Anything, "foreign").
		Return(models.ChatMessage{ID: "foreign", RoomID: "other", SenderID: "u2"}, nil).Once()
	f.messages.On("GetMessage", mock.Anything, "ghost").
		Return(models.ChatMessage{}, repositories.ErrMessageNotFound).Once()
	f.messages.On("GetMessage", mock.Anything, "theirs").
		Return(models.ChatMessage{ID: "theirs", RoomID: "r1", SenderID: "u2"}, nil).Once()
	f.messages.On("MarkSeen", mock.Anything, "theirs").Return(nil).Once()

	err := f.svc.MarkSeen(context.Background(), "r1", "u1", []string{"own", "foreign", "ghost", "theirs"})
	require.NoError(t, err)
	f.messages.AssertExpectations(t)
	f.messages.AssertNumberOfCalls(t, "MarkSeen", 1)
}

func TestSetTypingTrueAndFalse(t *testing.T) {
	f := newChatServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").Return(openRoom(), nil).Twice()
	f.typing.On("SetTyping", mock.Anything, "r1", "u1").Return(nil).Once()
	f.typing.On("ClearTyping", mock.Anything, "r1", "u1").Return(nil).Once()

	require.NoError(t, f.svc.SetTyping(context.Background(), "r1", "u1", true))
	require.NoError(t, f.svc.SetTyping(context.Background(), "r1", "u1", false))
	f.typing.AssertExpectations(t)
}

func TestSendGiftInsufficientBalance(t *testing.T) {
	f := newChatServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").Return(openRoom(), nil).Once()
	f.gifts.On("GetActiveGift", mock.Anything, "g1").
		Return(models.Gift{ID: "g1", Name: "Rose", TokenCost: 500}, nil).Once()
	f.users.On("DebitTokens", mock.Anything, "u1", 500).
		Return(0, 0, repositories.ErrInsufficientBalance).Once()

	_, err := f.svc.SendGift(context.Background(), "r1", "u1", "g1", "")
	require.ErrorIs(t, err, repositories.ErrInsufficientBalance)
	f.gifts.AssertNotCalled(t, "CreateSentGift", mock.Anything, mock.Anything)
}

func TestSendGiftLockedRoomCostsNothing(t *testing.T) {
	f := newChatServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").Return(lockedRoom(), nil).Once()
	f.subs.On("HasActiveSubscription", mock.Anything, "r1", "u1", mock.Anything).Return(false, nil).Once()

	_, err := f.svc.SendGift(context.Background(), "r1", "u1", "g1", "")
	require.ErrorIs(t, err, ErrRoomLocked)
	f.users.AssertNotCalled(t, "DebitTokens", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendGiftSuccess(t *testing.T) {
	f := newChatServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").Return(openRoom(), nil).Once()
	f.gifts.On("GetActiveGift", mock.Anything, "g1").
		Return(models.Gift{ID: "g1", Name: "Rose", TokenCost: 50, ImageURL: "http://img/rose.png"}, nil).Once()
	f.users.On("DebitTokens", mock.Anything, "u1", 50).Return(200, 150, nil).Once()
	f.gifts.On("CreateSentGift", mock.Anything, mock.MatchedBy(func(sent models.SentGift) bool {
		return sent.GiftID == "g1" && sent.SenderID == "u1" && sent.RecipientID == "u2" && sent.ChatRoomID == "r1"
	})).Return(models.SentGift{ID: "sg1", GiftID: "g1", SenderID: "u1", RecipientID: "u2", ChatRoomID: "r1"}, nil).Once()
	f.gifts.On("CreateTokenTransaction", mock.Anything, mock.MatchedBy(func(txn models.TokenTransaction) bool {
		return txn.Amount == -50 && txn.BalanceBefore == 200 && txn.BalanceAfter == 150 && txn.RelatedObjectID == "sg1"
	})).Return(nil).Once()
	f.messages.On("CreateMessage", mock.Anything, "r1", "u1", models.MessageGift, "Rose", "http://img/rose.png").
		Return(models.ChatMessage{ID: "msg1"}, nil).Once()
	f.rooms.On("TouchActivity", mock.Anything, "r1").Return(nil).Once()
	f.notifier.On("Notify", mock.Anything, "u2", models.NotificationMessage,
		mock.Anything, mock.Anything, mock.Anything).Once()

	sent, err := f.svc.SendGift(context.Background(), "r1", "u1", "g1", "")
	require.NoError(t, err)
	assert.Equal(t, "sg1", sent.ID)
	f.gifts.AssertExpectations(t)
	f.messages.AssertExpectations(t)
}

func TestDisconnectClearsTyping(t *testing.T) {
	f := newChatServiceFixture()
	f.typing.On("ClearTyping", mock.Anything, "r1", "u1").Return(nil).Once()

	f.svc.Disconnect(context.Background(), "r1", "u1")
	f.typing.AssertExpectations(t)
}

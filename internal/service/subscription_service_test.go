package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"match-service/internal/mocks"
	"match-service/internal/models"
)

type subscriptionServiceFixture struct {
	subs     *mocks.SubscriptionRepositoryMock
	rooms    *mocks.RoomRepositoryMock
	notifier *mocks.NotifierMock
	svc      *SubscriptionService
}

func newSubscriptionServiceFixture() *subscriptionServiceFixture {
	f := &subscriptionServiceFixture{
		subs:     new(mocks.SubscriptionRepositoryMock),
		rooms:    new(mocks.RoomRepositoryMock),
		notifier: new(mocks.NotifierMock),
	}
	f.svc = NewSubscriptionService(f.subs, f.rooms, f.notifier)
	return f
}

func TestCreateSubscriptionNonParticipant(t *testing.T) {
	f := newSubscriptionServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").
		Return(models.ChatRoom{ID: "r1", UserAID: "u1", UserBID: "u2"}, nil).Once()

	_, err := f.svc.CreateSubscription(context.Background(), "r1", "intruder", 9900, "INR")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCreateSubscriptionPendingWithPaymentID(t *testing.T) {
	f := newSubscriptionServiceFixture()
	f.rooms.On("GetRoom", mock.Anything, "r1").
		Return(models.ChatRoom{ID: "r1", UserAID: "u1", UserBID: "u2"}, nil).Once()
	f.subs.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(sub models.Subscription) bool {
		return sub.UserID == "u1" && sub.ChatRoomID == "r1" &&
			sub.AmountPaise == 9900 && sub.Currency == "INR" && sub.PaymentID != ""
	})).Return(models.Subscription{ID: "s1", Status: models.SubscriptionPending}, nil).Once()

	sub, err := f.svc.CreateSubscription(context.Background(), "r1", "u1", 9900, "")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPending, sub.Status)
	f.subs.AssertExpectations(t)
}

func TestConfirmSubscriptionSuccessUnlocksAndExtends(t *testing.T) {
	f := newSubscriptionServiceFixture()
	f.subs.On("GetSubscription", mock.Anything, "s1").
		Return(models.Subscription{ID: "s1", UserID: "u1", ChatRoomID: "r1", Status: models.SubscriptionPending}, nil).Once()
	f.subs.On("SetStatus", mock.Anything, "s1", models.SubscriptionSuccess, mock.Anything).Return(nil).Once()
	f.rooms.On("SetLocked", mock.Anything, "r1", false).Return(nil).Once()
	f.rooms.On("ExtendExpiry", mock.Anything, "r1", 30).Return(nil).Once()

	sub, err := f.svc.ConfirmSubscription(context.Background(), "s1", "u1", models.SubscriptionSuccess)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionSuccess, sub.Status)
	assert.WithinDuration(t, time.Now().Add(SubscriptionDuration), sub.ExpiresAt, time.Minute)
	f.rooms.AssertExpectations(t)
}

func TestConfirmSubscriptionFailedLeavesRoomAlone(t *testing.T) {
	f := newSubscriptionServiceFixture()
	f.subs.On("GetSubscription", mock.Anything, "s1").
		Return(models.Subscription{ID: "s1", UserID: "u1", ChatRoomID: "r1", Status: models.SubscriptionPending}, nil).Once()
	f.subs.On("SetStatus", mock.Anything, "s1", models.SubscriptionFailed, mock.Anything).Return(nil).Once()

	sub, err := f.svc.ConfirmSubscription(context.Background(), "s1", "u1", models.SubscriptionFailed)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionFailed, sub.Status)
	f.rooms.AssertNotCalled(t, "SetLocked", mock.Anything, mock.Anything, mock.Anything)
	f.rooms.AssertNotCalled(t, "ExtendExpiry", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmSubscriptionWrongUser(t *testing.T) {
	f := newSubscriptionServiceFixture()
	f.subs.On("GetSubscription", mock.Anything, "s1").
		Return(models.Subscription{ID: "s1", UserID: "u1"}, nil).Once()

	_, err := f.svc.ConfirmSubscription(context.Background(), "s1", "u2", models.SubscriptionSuccess)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestConfirmSubscriptionUnknownStatus(t *testing.T) {
	f := newSubscriptionServiceFixture()
	f.subs.On("GetSubscription", mock.Anything, "s1").
		Return(models.Subscription{ID: "s1", UserID: "u1"}, nil).Once()

	_, err := f.svc.ConfirmSubscription(context.Background(), "s1", "u1", "maybe")
	require.ErrorIs(t, err, ErrInvalidSubscriptionStatus)
}

package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"match-service/internal/mocks"
	"match-service/internal/models"
)

type redelivererMock struct {
	mock.Mock
}

func (m *redelivererMock) Redeliver(ctx context.Context, limit int) (int, error) {
	args := m.Called(ctx, limit)
	return args.Int(0), args.Error(1)
}

type schedulerFixture struct {
	users       *mocks.UserRepositoryMock
	matches     *mocks.MatchRepositoryMock
	rooms       *mocks.RoomRepositoryMock
	subs        *mocks.SubscriptionRepositoryMock
	typing      *mocks.TypingRepositoryMock
	notifier    *mocks.NotifierMock
	redeliverer *redelivererMock
	sched       *Scheduler
}

func newSchedulerFixture() *schedulerFixture {
	f := &schedulerFixture{
		users:       new(mocks.UserRepositoryMock),
		matches:     new(mocks.MatchRepositoryMock),
		rooms:       new(mocks.RoomRepositoryMock),
		subs:        new(mocks.SubscriptionRepositoryMock),
		typing:      new(mocks.TypingRepositoryMock),
		notifier:    new(mocks.NotifierMock),
		redeliverer: new(redelivererMock),
	}
	f.sched = New(f.users, f.matches, f.rooms, f.subs, f.typing, f.notifier, f.redeliverer)
	return f
}

func TestExpireChatsLocksAndNotifiesBoth(t *testing.T) {
	f := newSchedulerFixture()
	room := models.ChatRoom{ID: "r1", UserAID: "u1", UserBID: "u2"}

	f.rooms.On("ListExpiredUnlocked", mock.Anything, mock.Anything, sweepBatchSize).
		Return([]models.ChatRoom{room}, nil).Once()
	f.rooms.On("ClaimLock", mock.Anything, "r1").Return(true, nil).Once()
	f.notifier.On("Notify", mock.Anything, "u1", models.NotificationChatExpiring,
		mock.Anything, mock.Anything, mock.Anything).Once()
	f.notifier.On("Notify", mock.Anything, "u2", models.NotificationChatExpiring,
		mock.Anything, mock.Anything, mock.Anything).Once()

	count, err := f.sched.ExpireChats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	f.notifier.AssertExpectations(t)
}

func TestExpireChatsSkipsNotifyOnLockError(t *testing.T) {
	f := newSchedulerFixture()
	room := models.ChatRoom{ID: "r1", UserAID: "u1", UserBID: "u2"}

	f.rooms.On("ListExpiredUnlocked", mock.Anything, mock.Anything, sweepBatchSize).
		Return([]models.ChatRoom{room}, nil).Once()
	f.rooms.On("ClaimLock", mock.Anything, "r1").Return(false, assert.AnError).Once()

	count, err := f.sched.ExpireChats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	f.notifier.AssertNotCalled(t, "Notify",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExpireChatsSkipsNotifyWhenAnotherRunClaimedFirst(t *testing.T) {
	f := newSchedulerFixture()
	room := models.ChatRoom{ID: "r1", UserAID: "u1", UserBID: "u2"}

	f.rooms.On("ListExpiredUnlocked", mock.Anything, mock.Anything, sweepBatchSize).
		Return([]models.ChatRoom{room}, nil).Once()
	f.rooms.On("ClaimLock", mock.Anything, "r1").Return(false, nil).Once()

	count, err := f.sched.ExpireChats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	f.notifier.AssertNotCalled(t, "Notify",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendPaymentRemindersNotifiesBothOnce(t *testing.T) {
	f := newSchedulerFixture()
	room := models.ChatRoom{ID: "r1", UserAID: "u1", UserBID: "u2"}

	f.rooms.On("ListExpiringWithoutReminder", mock.Anything, mock.Anything, reminderWindow, sweepBatchSize).
		Return([]models.ChatRoom{room}, nil).Once()
	f.notifier.On("Notify", mock.Anything, "u1", models.NotificationPaymentReminder,
		mock.Anything, mock.Anything, mock.Anything).Once()
	f.notifier.On("Notify", mock.Anything, "u2", models.NotificationPaymentReminder,
		mock.Anything, mock.Anything, mock.Anything).Once()

	count, err := f.sched.SendPaymentReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	f.notifier.AssertExpectations(t)
}

func TestVerifySubscriptionsExpiresAndLocks(t *testing.T) {
	f := newSchedulerFixture()
	sub := models.Subscription{ID: "s1", ChatRoomID: "r1", Status: models.SubscriptionSuccess}

	f.subs.On("ListExpiredSuccess", mock.Anything, mock.Anything, sweepBatchSize).
		Return([]models.Subscription{sub}, nil).Once()
	f.subs.On("MarkExpired", mock.Anything, "s1").Return(nil).Once()
	f.rooms.On("SetLocked", mock.Anything, "r1", true).Return(nil).Once()

	count, err := f.sched.VerifySubscriptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	f.rooms.AssertExpectations(t)
}

func TestCleanupSweepsAllRetention(t *testing.T) {
	f := newSchedulerFixture()

	f.users.On("DeleteUnverifiedBefore", mock.Anything, mock.Anything).Return(int64(2), nil).Once()
	f.matches.On("ListExpired", mock.Anything, mock.Anything, sweepBatchSize).
		Return([]models.Match{{ID: "m1"}}, nil).Once()
	f.matches.On("DeleteMatch", mock.Anything, "m1").Return(nil).Once()
	f.rooms.On("PurgeDeletedBefore", mock.Anything, mock.Anything).Return(int64(3), nil).Once()
	f.typing.On("DeleteStale", mock.Anything, mock.Anything).Return(int64(4), nil).Once()

	count, err := f.sched.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, count)
	f.matches.AssertExpectations(t)
}

func TestRedeliverNotificationsDelegates(t *testing.T) {
	f := newSchedulerFixture()
	f.redeliverer.On("Redeliver", mock.Anything, sweepBatchSize).Return(7, nil).Once()

	count, err := f.sched.RedeliverNotifications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	f.redeliverer.AssertExpectations(t)
}

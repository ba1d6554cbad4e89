package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"match-service/internal/mocks"
	"match-service/internal/models"
)

func TestNotifyStoresPublishesAndMarksDispatched(t *testing.T) {
	notifications := new(mocks.NotificationRepositoryMock)
	publisher := new(mocks.PublisherMock)
	svc := NewService(notifications, publisher, "notifications.user")

	stored := models.Notification{ID: "n1", UserID: "u1", NotificationType: models.NotificationMatch}
	notifications.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.UserID == "u1" && n.NotificationType == models.NotificationMatch
	})).Return(stored, nil).Once()
	publisher.On("Publish", mock.Anything, "notifications.user", mock.MatchedBy(func(event any) bool {
		e, ok := event.(Event)
		return ok && e.NotificationID == "n1" && e.UserID == "u1"
	})).Return(nil).Once()
	notifications.On("MarkDispatched", mock.Anything, "n1").Return(nil).Once()

	svc.Notify(context.Background(), "u1", models.NotificationMatch, "New Match!", "body", nil)
	notifications.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestNotifyPublishFailureLeavesUndispatched(t *testing.T) {
	notifications := new(mocks.NotificationRepositoryMock)
	publisher := new(mocks.PublisherMock)
	svc := NewService(notifications, publisher, "notifications.user")

	notifications.On("CreateNotification", mock.Anything, mock.Anything).
		Return(models.Notification{ID: "n1"}, nil).Once()
	publisher.On("Publish", mock.Anything, "notifications.user", mock.Anything).
		Return(assert.AnError).Once()

	svc.Notify(context.Background(), "u1", models.NotificationMessage, "t", "b", nil)
	notifications.AssertNotCalled(t, "MarkDispatched", mock.Anything, mock.Anything)
}

func TestRedeliverRepublishesPending(t *testing.T) {
	notifications := new(mocks.NotificationRepositoryMock)
	publisher := new(mocks.PublisherMock)
	svc := NewService(notifications, publisher, "notifications.user")

	pending := []models.Notification{{ID: "n1"}, {ID: "n2"}}
	notifications.On("ListUndispatched", mock.Anything, 100).Return(pending, nil).Once()
	publisher.On("Publish", mock.Anything, "notifications.user", mock.Anything).Return(nil).Twice()
	notifications.On("MarkDispatched", mock.Anything, "n1").Return(nil).Once()
	notifications.On("MarkDispatched", mock.Anything, "n2").Return(nil).Once()

	count, err := svc.Redeliver(context.Background(), 100)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	notifications.AssertExpectations(t)
}

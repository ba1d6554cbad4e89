package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/middleware"
	"match-service/internal/repositories"
)

// NotificationHandler exposes the caller's notification feed.
type NotificationHandler struct {
	notifications repositories.NotificationRepository
}

// NewNotificationHandler builds a NotificationHandler.
func NewNotificationHandler(notifications repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListNotifications returns the caller's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := middleware.UserID(c)
	limit, offset := pagination(c)

	notifications, err := h.notifications.ListForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead flags a notification as read. Owner only.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.notifications.MarkRead(c.Request.Context(), c.Param("notification_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

// Dismiss flags a notification as dismissed. Owner only, independent of read.
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.notifications.Dismiss(c.Request.Context(), c.Param("notification_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dismissed": true})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/matching"
	"match-service/internal/repositories"
	"match-service/internal/service"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrRoomNotFound),
		errors.Is(err, repositories.ErrMatchNotFound),
		errors.Is(err, repositories.ErrMessageNotFound),
		errors.Is(err, repositories.ErrGiftNotFound),
		errors.Is(err, repositories.ErrSubscriptionNotFound),
		errors.Is(err, repositories.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRoomLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrInsufficientBalance):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, matching.ErrProfileNotConfigured),
		errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrInvalidMessage),
		errors.Is(err, service.ErrSelfMatch),
		errors.Is(err, service.ErrInvalidSubscriptionStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = intQuery(c, "limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset = intQuery(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

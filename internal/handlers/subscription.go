package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/middleware"
	"match-service/internal/service"
)

// SubscriptionHandler runs the paid-unlock flow over HTTP.
type SubscriptionHandler struct {
	subs *service.SubscriptionService
}

// NewSubscriptionHandler builds a SubscriptionHandler.
func NewSubscriptionHandler(subs *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

// CreateSubscription opens a pending payment for a room.
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req struct {
		RoomID      string `json:"room_id" binding:"required"`
		AmountPaise int    `json:"amount_paise" binding:"required"`
		Currency    string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	sub, err := h.subs.CreateSubscription(c.Request.Context(), req.RoomID, userID, req.AmountPaise, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subscription": sub})
}

// ConfirmSubscription records the payment gateway outcome.
func (h *SubscriptionHandler) ConfirmSubscription(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	sub, err := h.subs.ConfirmSubscription(c.Request.Context(), c.Param("subscription_id"), userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/middleware"
	"match-service/internal/repositories"
	"match-service/internal/service"
)

// GiftHandler exposes the gift catalog and delivery endpoints.
type GiftHandler struct {
	gifts repositories.GiftRepository
	chat  *service.ChatService
}

// NewGiftHandler builds a GiftHandler.
func NewGiftHandler(gifts repositories.GiftRepository, chat *service.ChatService) *GiftHandler {
	return &GiftHandler{gifts: gifts, chat: chat}
}

// ListGifts returns the purchasable catalog.
func (h *GiftHandler) ListGifts(c *gin.Context) {
	gifts, err := h.gifts.ListActiveGifts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load gifts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gifts": gifts})
}

// SendGift delivers a gift inside a room, debiting the sender's tokens.
func (h *GiftHandler) SendGift(c *gin.Context) {
	var req struct {
		GiftID  string `json:"gift_id" binding:"required"`
		RoomID  string `json:"room_id" binding:"required"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	sent, err := h.chat.SendGift(c.Request.Context(), req.RoomID, userID, req.GiftID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sent_gift": sent})
}

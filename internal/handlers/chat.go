package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/middleware"
	"match-service/internal/repositories"
	"match-service/internal/service"
	"match-service/internal/ws"
)

// ChatHandler manages room and message endpoints.
type ChatHandler struct {
	rooms repositories.RoomRepository
	chat  *service.ChatService
	hub   *ws.Hub
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(rooms repositories.RoomRepository, chat *service.ChatService, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{rooms: rooms, chat: chat, hub: hub}
}

// ListRooms returns the caller's rooms, most recently active first.
func (h *ChatHandler) ListRooms(c *gin.Context) {
	userID := middleware.UserID(c)
	limit, offset := pagination(c)

	rooms, err := h.rooms.ListRoomsForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GetRoom returns one room under the access rules: participant only, and a
// locked room requires an active subscription.
func (h *ChatHandler) GetRoom(c *gin.Context) {
	userID := middleware.UserID(c)
	room, err := h.chat.RoomAccess(c.Request.Context(), c.Param("room_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// GetRoomMessages returns the room's messages, newest first.
func (h *ChatHandler) GetRoomMessages(c *gin.Context) {
	userID := middleware.UserID(c)
	limit, offset := pagination(c)

	msgs, err := h.chat.ListMessages(c.Request.Context(), c.Param("room_id"), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PostRoomMessage stores a message and broadcasts it to the room session.
func (h *ChatHandler) PostRoomMessage(c *gin.Context) {
	var req struct {
		MessageType string `json:"message_type"`
		Content     string `json:"content"`
		MediaURL    string `json:"media_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MessageType == "" {
		req.MessageType = "text"
	}

	userID := middleware.UserID(c)
	roomID := c.Param("room_id")
	msg, err := h.chat.SendMessage(c.Request.Context(), roomID, userID, req.MessageType, req.Content, req.MediaURL)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.BroadcastAll(roomID, ws.MessageEvent{Type: "message", Message: msg})
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

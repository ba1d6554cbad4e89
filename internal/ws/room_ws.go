package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"match-service/internal/middleware"
	"match-service/internal/observability"
	"match-service/internal/repositories"
	"match-service/internal/service"
)

// RoomWebSocketHandler handles room session websocket connections.
type RoomWebSocketHandler struct {
	hub      *Hub
	chat     *service.ChatService
	verifier *middleware.TokenVerifier
}

// NewRoomWebSocketHandler constructs a RoomWebSocketHandler.
func NewRoomWebSocketHandler(hub *Hub, chat *service.ChatService, verifier *middleware.TokenVerifier) *RoomWebSocketHandler {
	return &RoomWebSocketHandler{hub: hub, chat: chat, verifier: verifier}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle authenticates and authorizes the caller, upgrades the connection and
// runs the session read loop. Events from one connection are processed
// serially in arrival order.
func (h *RoomWebSocketHandler) Handle(c *gin.Context) {
	roomID := c.Param("room_id")

	ctx, span := otel.Tracer("match-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	token := c.GetHeader("Authorization")
	if token != "" && len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	} else {
		token = c.Query("token")
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	userID, err := h.verifier.Parse(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if _, err := h.chat.RoomAccess(ctx, roomID, userID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "chat room not found"})
		case errors.Is(err, service.ErrRoomLocked):
			c.JSON(http.StatusForbidden, gin.H{"error": "chat room is locked"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for room"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	info := ConnInfo{
		ConnID:      newConnID(),
		UserID:      userID,
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	h.hub.Join(roomID, conn, info)

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	h.hub.BroadcastOthers(roomID, conn, PresenceEvent{Type: "user_joined", UserID: userID})

	go h.readLoop(roomID, userID, conn)
}

func (h *RoomWebSocketHandler) readLoop(roomID, userID string, conn *websocket.Conn) {
	ctx := context.Background()
	defer func() {
		h.hub.Leave(roomID, conn)
		h.chat.Disconnect(ctx, roomID, userID)
		h.hub.BroadcastOthers(roomID, conn, PresenceEvent{Type: "user_left", UserID: userID})
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
			}
			return
		}

		var event Inbound
		if err := json.Unmarshal(raw, &event); err != nil {
			h.hub.SendTo(conn, newErrorEvent("Invalid JSON"))
			continue
		}
		h.dispatch(ctx, roomID, userID, conn, event)
	}
}

// dispatch routes one inbound envelope. Errors go back to the sender only;
// successful events reach the room per their fan-out rules.
func (h *RoomWebSocketHandler) dispatch(ctx context.Context, roomID, userID string, conn *websocket.Conn, event Inbound) {
	observability.IncWSEvent(event.Type)
	switch event.Type {
	case EventMessage:
		messageType := event.MessageType
		if messageType == "" {
			messageType = "text"
		}
		msg, err := h.chat.SendMessage(ctx, roomID, userID, messageType, event.Content, event.MediaURL)
		if err != nil {
			h.hub.SendTo(conn, newErrorEvent(errorText(err)))
			return
		}
		h.hub.BroadcastAll(roomID, MessageEvent{Type: "message", Message: msg})
	case EventTyping:
		if err := h.chat.SetTyping(ctx, roomID, userID, event.Typing); err != nil {
			h.hub.SendTo(conn, newErrorEvent(errorText(err)))
			return
		}
		h.hub.BroadcastOthers(roomID, conn, TypingEvent{Type: "typing", UserID: userID, Typing: event.Typing})
	case EventSeen:
		ids := event.seenIDs()
		if err := h.chat.MarkSeen(ctx, roomID, userID, ids); err != nil {
			h.hub.SendTo(conn, newErrorEvent(errorText(err)))
			return
		}
		// The receipt echoes back to the originator too, confirming the
		// server accepted it.
		h.hub.BroadcastAll(roomID, SeenEvent{Type: "seen", UserID: userID, MessageIDs: ids})
	default:
		h.hub.SendTo(conn, newErrorEvent("Unknown event type"))
	}
}

func errorText(err error) string {
	switch {
	case errors.Is(err, service.ErrRoomLocked):
		return "chat room is locked"
	case errors.Is(err, service.ErrForbidden):
		return "access denied"
	case errors.Is(err, service.ErrInvalidMessage):
		return "invalid message"
	case errors.Is(err, repositories.ErrRoomNotFound):
		return "chat room not found"
	default:
		return "internal error"
	}
}

package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"match-service/internal/observability"
)

// Hub maintains active websocket room sessions.
type Hub struct {
	rooms    map[string]map[*websocket.Conn]bool
	connInfo map[string]map[*websocket.Conn]ConnInfo
	writeMu  map[*websocket.Conn]*sync.Mutex
	mu       sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[string]map[*websocket.Conn]bool),
		connInfo: make(map[string]map[*websocket.Conn]ConnInfo),
		writeMu:  make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Join registers a websocket connection to a room session.
func (h *Hub) Join(roomID string, conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[roomID][conn] = true
	if _, ok := h.connInfo[roomID]; !ok {
		h.connInfo[roomID] = make(map[*websocket.Conn]ConnInfo)
	}
	h.connInfo[roomID][conn] = info
	h.writeMu[conn] = &sync.Mutex{}
}

// Leave removes a websocket connection from its room session. Empty sessions
// are dropped from the registry.
func (h *Hub) Leave(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[roomID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, roomID)
		}
	}
	if infos, ok := h.connInfo[roomID]; ok {
		delete(infos, conn)
		if len(infos) == 0 {
			delete(h.connInfo, roomID)
		}
	}
	delete(h.writeMu, conn)
}

// write serializes writes per connection; gorilla allows a single concurrent
// writer, and broadcasts from different read loops race otherwise.
func (h *Hub) write(conn *websocket.Conn, payload []byte) error {
	h.mu.RLock()
	mu := h.writeMu[conn]
	h.mu.RUnlock()
	if mu == nil {
		return conn.WriteMessage(websocket.TextMessage, payload)
	}
	mu.Lock()
	defer mu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// BroadcastAll sends the event to every connection in the room.
func (h *Hub) BroadcastAll(roomID string, event any) {
	h.broadcast(roomID, nil, event)
}

// BroadcastOthers sends the event to every connection in the room except the
// sender's.
func (h *Hub) BroadcastOthers(roomID string, sender *websocket.Conn, event any) {
	h.broadcast(roomID, sender, event)
}

func (h *Hub) broadcast(roomID string, skip *websocket.Conn, event any) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[roomID]))
	for conn := range h.rooms[roomID] {
		if conn != skip {
			conns = append(conns, conn)
		}
	}
	h.mu.RUnlock()

	payload := marshalEvent(event)
	for _, conn := range conns {
		if err := h.write(conn, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.Leave(roomID, conn)
			observability.IncWSEvent("ws_error")
		}
	}
}

// SendTo writes the event to one connection.
func (h *Hub) SendTo(conn *websocket.Conn, event any) {
	if err := h.write(conn, marshalEvent(event)); err != nil {
		log.Printf("websocket write error: %v", err)
	}
}

// RoomSessionCount reports how many connections a room session holds.
func (h *Hub) RoomSessionCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

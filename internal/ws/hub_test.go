package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/repositories"
	"match-service/internal/service"
)

func TestHubJoinAndLeave(t *testing.T) {
	hub := NewHub()

	hub.Join("r1", nil, ConnInfo{ConnID: "c1", UserID: "u1"})
	if len(hub.rooms) != 1 {
		t.Fatalf("expected room session to be created")
	}
	assert.Equal(t, 1, hub.RoomSessionCount("r1"))

	hub.Leave("r1", nil)
	if len(hub.rooms) != 0 {
		t.Fatalf("expected empty room session to be dropped")
	}
	assert.Zero(t, hub.RoomSessionCount("r1"))
}

func TestHubLeaveUnknownRoomIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Leave("missing", nil)
	assert.Zero(t, hub.RoomSessionCount("missing"))
}

func TestErrorEventShape(t *testing.T) {
	payload := marshalEvent(newErrorEvent("Invalid JSON"))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "error", decoded["type"])
	assert.Equal(t, "Invalid JSON", decoded["error"])
}

func TestInboundEnvelopeDecoding(t *testing.T) {
	var event Inbound
	require.NoError(t, json.Unmarshal([]byte(`{"type":"seen","message_ids":["m1","m2"]}`), &event))
	assert.Equal(t, EventSeen, event.Type)
	assert.Equal(t, []string{"m1", "m2"}, event.seenIDs())

	event = Inbound{}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"seen","message_id":"m3"}`), &event))
	assert.Equal(t, []string{"m3"}, event.seenIDs())

	event = Inbound{}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"typing","is_typing":true}`), &event))
	assert.True(t, event.Typing)
}

func TestErrorTextMapping(t *testing.T) {
	assert.Equal(t, "chat room is locked", errorText(service.ErrRoomLocked))
	assert.Equal(t, "access denied", errorText(service.ErrForbidden))
	assert.Equal(t, "invalid message", errorText(service.ErrInvalidMessage))
	assert.Equal(t, "chat room not found", errorText(repositories.ErrRoomNotFound))
	assert.Equal(t, "internal error", errorText(assert.AnError))
}

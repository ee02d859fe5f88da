package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamInfoWireShape(t *testing.T) {
	stream := &Stream{
		BroadcasterID:   "c1",
		BroadcasterName: "alice",
		Source:          SourceWebRTC,
		Title:           "hi",
		Live:            true,
		StartedAt:       time.UnixMilli(1700000000000),
	}

	data, err := json.Marshal(stream.Info())
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	// The envelope key is "event"; the payload's own "type" field is
	// the source kind, as the clients expect.
	assert.Equal(t, "stream-info", raw["event"])
	assert.Equal(t, "webrtc", raw["type"])
	assert.Equal(t, "alice", raw["streamerName"])
	assert.Equal(t, true, raw["isLive"])
	assert.Equal(t, float64(1700000000000), raw["startedAt"])
	_, hasAddress := raw["streamerAddress"]
	assert.False(t, hasAddress)
}

func TestRoomStatusNullsWhenAbsent(t *testing.T) {
	data, err := json.Marshal(RoomStatus{RoomID: "99"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"roomId":"99","isLive":false,"viewerCount":0,"title":null,"startedAt":null}`, string(data))
}

func TestChatMessageIDs(t *testing.T) {
	now := time.Now()
	a := NewChatMessage("42", "alice", "hi", now)
	b := NewChatMessage("42", "alice", "hi", now)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, now.UnixMilli(), a.At)
	assert.Equal(t, MsgTypeChat, a.Event)
}

func TestSystemMessageAuthor(t *testing.T) {
	msg := NewSystemMessage("42", "alice joined the room 42", time.Now())
	assert.Equal(t, SystemAuthor, msg.Author)
}

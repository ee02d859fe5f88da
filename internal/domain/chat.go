package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultRoom is where connections land when no room id is given.
const DefaultRoom = "lobby"

// SystemAuthor labels server-generated chat lines.
const SystemAuthor = "system"

// AnonymousAuthor is the fallback display name.
const AnonymousAuthor = "anonymous"

// ChatMessage is an ephemeral chat line. It is never stored; the id is
// a ULID, a time+random composite with negligible collision odds at
// this scale.
type ChatMessage struct {
	Event  string `json:"event"`
	ID     string `json:"id"`
	RoomID string `json:"roomId"`
	Author string `json:"author"`
	Text   string `json:"text"`
	At     int64  `json:"at"`
}

// NewChatMessage builds a chat frame stamped with the given time.
func NewChatMessage(roomID, author, text string, at time.Time) *ChatMessage {
	return &ChatMessage{
		Event:  MsgTypeChat,
		ID:     ulid.Make().String(),
		RoomID: roomID,
		Author: author,
		Text:   text,
		At:     at.UnixMilli(),
	}
}

// NewSystemMessage builds a server-authored chat frame.
func NewSystemMessage(roomID, text string, at time.Time) *ChatMessage {
	return NewChatMessage(roomID, SystemAuthor, text, at)
}

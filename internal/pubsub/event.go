// Package pubsub bridges external market events into the dispatcher.
// The marketplace and agent processes publish on a Redis channel; the
// server relays what it receives into the matching room without
// retaining any state.
package pubsub

import (
	"encoding/json"
	"time"
)

// Event types published by the marketplace.
const (
	EventMarketCreated  = "market-created"
	EventMarketResolved = "market-resolved"
)

// Event is the envelope on the market channel.
type Event struct {
	Type      string          `json:"type"`
	RoomID    string          `json:"room_id"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// UnmarshalPayload unmarshals the event payload into the given struct.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// MarketCreatedPayload announces a new market for a room.
type MarketCreatedPayload struct {
	MarketID string `json:"market_id"`
	Question string `json:"question"`
}

// MarketResolvedPayload announces a market outcome for a room.
type MarketResolvedPayload struct {
	MarketID string `json:"market_id"`
	Outcome  string `json:"outcome"`
}

package domain

import "encoding/json"

// WebSocket event names from client. Each frame is a flat JSON object
// with an "event" field naming the event; the remaining fields are the
// payload and keep the camelCase names the browser client uses. The
// envelope key is "event" rather than "type" because stream payloads
// carry their own "type" field (the source kind).
const (
	MsgTypeJoin            = "join"
	MsgTypeChat            = "message"
	MsgTypeStartStream     = "start-stream"
	MsgTypeStartYoutube    = "start-youtube"
	MsgTypeStopStream      = "stop-stream"
	MsgTypeWebRTCOffer     = "webrtc-offer"
	MsgTypeWebRTCAnswer    = "webrtc-answer"
	MsgTypeWebRTCCandidate = "webrtc-ice-candidate"
	MsgTypeStreamStatus    = "get-stream-status"
	MsgTypeMarketCreated   = "market-created"
	MsgTypeMarketResolved  = "market-resolved"
)

// WebSocket event names to client.
const (
	MsgTypeViewerCount        = "viewer-count"
	MsgTypeStreamInfo         = "stream-info"
	MsgTypeStreamStarted      = "stream-started"
	MsgTypeStreamStopped      = "stream-stopped"
	MsgTypeViewerJoined       = "viewer-joined"
	MsgTypeViewerLeft         = "viewer-left"
	MsgTypeStreamStatusResult = "stream-status"
)

// BaseMessage is the base structure for all WebSocket frames.
type BaseMessage struct {
	Event string `json:"event"`
}

// Client -> Server messages

// JoinMessage is sent by a client to enter a room.
type JoinMessage struct {
	Event       string `json:"event"`
	RoomID      string `json:"roomId"`
	Author      string `json:"author"`
	UserAddress string `json:"userAddress,omitempty"`
}

// ChatSendMessage is sent by a client to post a chat line.
type ChatSendMessage struct {
	Event  string `json:"event"`
	RoomID string `json:"roomId,omitempty"`
	Author string `json:"author,omitempty"`
	Text   string `json:"text"`
}

// StartStreamMessage is sent by a broadcaster to go live over WebRTC.
type StartStreamMessage struct {
	Event  string `json:"event"`
	RoomID string `json:"roomId,omitempty"`
	Title  string `json:"title,omitempty"`
}

// StartYoutubeMessage is sent by a broadcaster to share a YouTube source.
type StartYoutubeMessage struct {
	Event     string `json:"event"`
	RoomID    string `json:"roomId,omitempty"`
	YoutubeID string `json:"youtubeId"`
	Title     string `json:"title,omitempty"`
}

// StopStreamMessage is sent by the broadcaster to end the stream.
type StopStreamMessage struct {
	Event  string `json:"event"`
	RoomID string `json:"roomId,omitempty"`
}

// WebRTCOfferMessage carries an SDP offer. The payload is opaque to the
// server; validating SDP is the clients' business.
type WebRTCOfferMessage struct {
	Event  string          `json:"event"`
	RoomID string          `json:"roomId,omitempty"`
	Offer  json.RawMessage `json:"offer"`
	Target string          `json:"target,omitempty"`
}

// WebRTCAnswerMessage carries an SDP answer.
type WebRTCAnswerMessage struct {
	Event  string          `json:"event"`
	RoomID string          `json:"roomId,omitempty"`
	Answer json.RawMessage `json:"answer"`
	Target string          `json:"target,omitempty"`
}

// WebRTCCandidateMessage carries an ICE candidate.
type WebRTCCandidateMessage struct {
	Event     string          `json:"event"`
	RoomID    string          `json:"roomId,omitempty"`
	Candidate json.RawMessage `json:"candidate"`
	Target    string          `json:"target,omitempty"`
}

// StreamStatusRequest asks for the live state of a set of rooms. Unlike
// every other inbound event it has reply semantics: the response echoes
// RequestID back to the caller.
type StreamStatusRequest struct {
	Event     string   `json:"event"`
	RequestID string   `json:"requestId,omitempty"`
	RoomIDs   []string `json:"roomIds"`
}

// MarketCreatedMessage announces a new prediction market for a room.
type MarketCreatedMessage struct {
	Event    string `json:"event"`
	RoomID   string `json:"roomId,omitempty"`
	MarketID string `json:"marketId"`
	Question string `json:"question"`
}

// MarketResolvedMessage announces a market outcome for a room.
type MarketResolvedMessage struct {
	Event    string `json:"event"`
	RoomID   string `json:"roomId,omitempty"`
	MarketID string `json:"marketId"`
	Outcome  string `json:"outcome"`
}

// Server -> Client messages

// ViewerCountMessage is sent to a room whenever its member count changes.
type ViewerCountMessage struct {
	Event string `json:"event"`
	Count int    `json:"count"`
}

// StreamInfoMessage is the full stream descriptor for a room.
type StreamInfoMessage struct {
	Event           string `json:"event"`
	StreamerID      string `json:"streamerId"`
	StreamerAddress string `json:"streamerAddress,omitempty"`
	StreamerName    string `json:"streamerName"`
	IsLive          bool   `json:"isLive"`
	SourceType      string `json:"type"`
	YoutubeID       string `json:"youtubeId,omitempty"`
	Title           string `json:"title"`
	StartedAt       int64  `json:"startedAt"`
}

// StreamStartedMessage is sent to viewers when a broadcast begins.
type StreamStartedMessage struct {
	Event        string `json:"event"`
	StreamerName string `json:"streamerName"`
	Title        string `json:"title"`
	SourceType   string `json:"type,omitempty"`
	YoutubeID    string `json:"youtubeId,omitempty"`
}

// StreamStoppedMessage is sent to viewers when a broadcast ends.
type StreamStoppedMessage struct {
	Event string `json:"event"`
}

// ViewerJoinedMessage is sent only to the broadcaster so it can open a
// targeted offer toward the new viewer.
type ViewerJoinedMessage struct {
	Event    string `json:"event"`
	ViewerID string `json:"viewerId"`
}

// ViewerLeftMessage is sent only to the broadcaster.
type ViewerLeftMessage struct {
	Event    string `json:"event"`
	ViewerID string `json:"viewerId"`
}

// WebRTCOfferForward relays an offer with the sender's connection id.
type WebRTCOfferForward struct {
	Event string          `json:"event"`
	Offer json.RawMessage `json:"offer"`
	From  string          `json:"from"`
}

// WebRTCAnswerForward relays an answer with the sender's connection id.
type WebRTCAnswerForward struct {
	Event  string          `json:"event"`
	Answer json.RawMessage `json:"answer"`
	From   string          `json:"from"`
}

// WebRTCCandidateForward relays an ICE candidate with the sender's
// connection id.
type WebRTCCandidateForward struct {
	Event     string          `json:"event"`
	Candidate json.RawMessage `json:"candidate"`
	From      string          `json:"from"`
}

// MarketCreatedBroadcast relays a market creation to a room.
type MarketCreatedBroadcast struct {
	Event    string `json:"event"`
	MarketID string `json:"marketId"`
	Question string `json:"question"`
}

// MarketResolvedBroadcast relays a market resolution to a room.
type MarketResolvedBroadcast struct {
	Event    string `json:"event"`
	MarketID string `json:"marketId"`
	Outcome  string `json:"outcome"`
}

// RoomStatus is one row of a stream-status reply. Title and StartedAt
// are pointers so rooms without a descriptor serialize as null.
type RoomStatus struct {
	RoomID      string  `json:"roomId"`
	IsLive      bool    `json:"isLive"`
	ViewerCount int     `json:"viewerCount"`
	Title       *string `json:"title"`
	StartedAt   *int64  `json:"startedAt"`
}

// StreamStatusResult is the reply to a StreamStatusRequest.
type StreamStatusResult struct {
	Event     string       `json:"event"`
	RequestID string       `json:"requestId,omitempty"`
	OK        bool         `json:"ok"`
	Data      []RoomStatus `json:"data,omitempty"`
	Error     string       `json:"error,omitempty"`
}

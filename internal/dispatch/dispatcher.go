// Package dispatch is the signaling state machine. One goroutine owns
// the connection registry, the room membership index, and the stream
// state store; every inbound event — client frame, disconnect, external
// market event, reaper tick — is serialized through one queue and runs
// to completion before the next. That ordering is the whole
// synchronization story: the stores need no locks.
package dispatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/PritamP20/Streamer.fun/internal/config"
	"github.com/PritamP20/Streamer.fun/internal/domain"
	"github.com/PritamP20/Streamer.fun/internal/log"
	"github.com/PritamP20/Streamer.fun/internal/store"
)

// Sender delivers a frame to one connection. Delivery is fire-and-forget;
// sending to a connection that just went away is a no-op.
type Sender interface {
	SendTo(connID string, message interface{}) error
}

// AuditProducer receives every chat line (user and system) for the
// external moderation pipeline. May be nil.
type AuditProducer interface {
	ProduceChatMessage(ctx context.Context, msg *domain.ChatMessage) error
}

type event struct {
	connID     string
	data       []byte
	disconnect bool
}

// Dispatcher processes inbound events one at a time and emits outbound
// frames through the Sender.
type Dispatcher struct {
	sender   Sender
	audit    AuditProducer
	registry *store.Registry
	rooms    *store.Rooms
	streams  *store.Streams

	retention    time.Duration
	reapInterval time.Duration

	events chan event
	now    func() time.Time
}

// New creates a Dispatcher. audit may be nil.
func New(sender Sender, cfg config.StreamConfig, audit AuditProducer) *Dispatcher {
	return &Dispatcher{
		sender:       sender,
		audit:        audit,
		registry:     store.NewRegistry(),
		rooms:        store.NewRooms(),
		streams:      store.NewStreams(),
		retention:    cfg.Retention,
		reapInterval: cfg.ReapInterval,
		events:       make(chan event, 256),
		now:          time.Now,
	}
}

// Run consumes the event queue until ctx is cancelled. It must be the
// only goroutine calling any handler.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.events:
			d.process(ev)
		case <-ticker.C:
			d.reap()
		}
	}
}

// Enqueue queues a raw client frame for processing.
func (d *Dispatcher) Enqueue(connID string, data []byte) {
	d.events <- event{connID: connID, data: data}
}

// EnqueueDisconnect queues a transport-level disconnect.
func (d *Dispatcher) EnqueueDisconnect(connID string) {
	d.events <- event{connID: connID, disconnect: true}
}

// EnqueueExternal queues a frame originating outside any connection,
// e.g. a market event from the pub/sub bridge. Only market events are
// honored on this path.
func (d *Dispatcher) EnqueueExternal(data []byte) {
	d.events <- event{data: data}
}

// process runs one event to completion. The recover is the handler
// boundary: a panic in one event must not take down the server.
func (d *Dispatcher) process(ev event) {
	defer func() {
		if r := recover(); r != nil {
			l := log.L()
			l.Error().
				Interface("panic", r).
				Str(log.FieldConnID, ev.connID).
				Msg("event handler panicked")
		}
	}()

	if ev.disconnect {
		d.handleDisconnect(ev.connID)
		return
	}
	d.handleFrame(ev.connID, ev.data)
}

// handleFrame parses the envelope and routes to the right handler.
// Malformed frames are dropped; the protocol has no error channel for
// them.
func (d *Dispatcher) handleFrame(connID string, data []byte) {
	l := log.L()

	var base domain.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		l.Debug().Str(log.FieldConnID, connID).Msg("dropping unparseable frame")
		return
	}

	if connID == "" {
		// External source: only the market relay is reachable.
		switch base.Event {
		case domain.MsgTypeMarketCreated, domain.MsgTypeMarketResolved:
		default:
			l.Warn().Str(log.FieldEvent, base.Event).Msg("ignoring external event")
			return
		}
	}

	switch base.Event {
	case domain.MsgTypeJoin:
		var msg domain.JoinMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.handleJoin(connID, &msg)

	case domain.MsgTypeChat:
		var msg domain.ChatSendMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.handleChat(connID, &msg)

	case domain.MsgTypeStartStream:
		var msg domain.StartStreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.handleStartStream(connID, &msg)

	case domain.MsgTypeStartYoutube:
		var msg domain.StartYoutubeMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.handleStartYoutube(connID, &msg)

	case domain.MsgTypeStopStream:
		var msg domain.StopStreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.handleStopStream(connID, &msg)

	case domain.MsgTypeWebRTCOffer:
		var msg domain.WebRTCOfferMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.relay(connID, msg.RoomID, msg.Target, &domain.WebRTCOfferForward{
			Event: domain.MsgTypeWebRTCOffer,
			Offer: msg.Offer,
			From:  connID,
		})

	case domain.MsgTypeWebRTCAnswer:
		var msg domain.WebRTCAnswerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.relay(connID, msg.RoomID, msg.Target, &domain.WebRTCAnswerForward{
			Event:  domain.MsgTypeWebRTCAnswer,
			Answer: msg.Answer,
			From:   connID,
		})

	case domain.MsgTypeWebRTCCandidate:
		var msg domain.WebRTCCandidateMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.relay(connID, msg.RoomID, msg.Target, &domain.WebRTCCandidateForward{
			Event:     domain.MsgTypeWebRTCCandidate,
			Candidate: msg.Candidate,
			From:      connID,
		})

	case domain.MsgTypeStreamStatus:
		var msg domain.StreamStatusRequest
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.handleStreamStatus(connID, &msg)

	case domain.MsgTypeMarketCreated:
		var msg domain.MarketCreatedMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.handleMarketCreated(connID, &msg)

	case domain.MsgTypeMarketResolved:
		var msg domain.MarketResolvedMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		d.handleMarketResolved(connID, &msg)

	default:
		l.Debug().
			Str(log.FieldConnID, connID).
			Str(log.FieldEvent, base.Event).
			Msg("unknown event")
	}
}

// resolveRoom picks the effective room for an event: explicit id, else
// the connection's current room, else the lobby.
func (d *Dispatcher) resolveRoom(connID, roomID string) string {
	if roomID != "" {
		return roomID
	}
	if current := d.rooms.RoomOf(connID); current != "" {
		return current
	}
	return domain.DefaultRoom
}

func (d *Dispatcher) broadcastRoom(roomID string, message interface{}, exclude string) {
	for _, id := range d.rooms.MembersOf(roomID) {
		if id == exclude {
			continue
		}
		d.sender.SendTo(id, message)
	}
}

func (d *Dispatcher) broadcastViewerCount(roomID string) {
	d.broadcastRoom(roomID, &domain.ViewerCountMessage{
		Event: domain.MsgTypeViewerCount,
		Count: d.rooms.SizeOf(roomID),
	}, "")
}

// systemMessage broadcasts a server-authored chat line to the room and
// feeds it to the audit pipeline like any other chat line.
func (d *Dispatcher) systemMessage(roomID, text string) {
	msg := domain.NewSystemMessage(roomID, text, d.now())
	d.broadcastRoom(roomID, msg, "")
	d.auditChat(msg)
}

func (d *Dispatcher) auditChat(msg *domain.ChatMessage) {
	if d.audit == nil {
		return
	}
	if err := d.audit.ProduceChatMessage(context.Background(), msg); err != nil {
		l := log.L()
		l.Warn().Err(err).Str(log.FieldRoomID, msg.RoomID).Msg("chat audit produce failed")
	}
}

// reap evicts descriptors stopped longer than the retention window.
func (d *Dispatcher) reap() {
	evicted := d.streams.Reap(d.now(), d.retention)
	if len(evicted) > 0 {
		l := log.L()
		l.Info().Strs("rooms", evicted).Msg("reaped stopped stream descriptors")
	}
}

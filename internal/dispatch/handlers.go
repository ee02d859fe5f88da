package dispatch

import (
	"fmt"

	"github.com/PritamP20/Streamer.fun/internal/audit"
	"github.com/PritamP20/Streamer.fun/internal/domain"
	"github.com/PritamP20/Streamer.fun/internal/log"
)

func (d *Dispatcher) handleJoin(connID string, msg *domain.JoinMessage) {
	roomID := msg.RoomID
	if roomID == "" {
		roomID = domain.DefaultRoom
	}

	author := msg.Author
	announce := author
	if author == "" {
		author = domain.AnonymousAuthor
		announce = "someone"
	}

	// Leaving the previous room changes its viewer count too.
	if previous := d.rooms.Join(connID, roomID); previous != "" {
		d.broadcastViewerCount(previous)
	}
	d.registry.SetIdentity(connID, &domain.Identity{Author: author, Address: msg.UserAddress})

	if stream := d.streams.Get(roomID); stream != nil {
		// Late joiners get the descriptor privately; the broadcaster
		// learns about them so it can open a targeted offer.
		d.sender.SendTo(connID, stream.Info())
		if stream.Live && stream.BroadcasterID != connID {
			d.sender.SendTo(stream.BroadcasterID, &domain.ViewerJoinedMessage{
				Event:    domain.MsgTypeViewerJoined,
				ViewerID: connID,
			})
		}
	}

	d.broadcastViewerCount(roomID)
	d.systemMessage(roomID, fmt.Sprintf("%s joined the room %s", announce, roomID))

	audit.Log(audit.ActionJoinRoom, connID, roomID, author)
}

func (d *Dispatcher) handleChat(connID string, msg *domain.ChatSendMessage) {
	roomID := d.resolveRoom(connID, msg.RoomID)

	author := msg.Author
	if author == "" {
		author = domain.AnonymousAuthor
	}

	chat := domain.NewChatMessage(roomID, author, msg.Text, d.now())
	d.broadcastRoom(roomID, chat, "")
	d.auditChat(chat)
}

func (d *Dispatcher) handleStartStream(connID string, msg *domain.StartStreamMessage) {
	identity := d.registry.Identity(connID)
	if identity == nil {
		l := log.L()
		l.Debug().Str(log.FieldConnID, connID).Msg("start-stream from unidentified connection")
		return
	}

	roomID := d.resolveRoom(connID, msg.RoomID)
	stream := &domain.Stream{
		BroadcasterID:      connID,
		BroadcasterName:    identity.Author,
		BroadcasterAddress: identity.Address,
		Source:             domain.SourceWebRTC,
		Title:              msg.Title,
		Live:               true,
		StartedAt:          d.now(),
	}
	d.streams.Set(roomID, stream)

	d.broadcastRoom(roomID, &domain.StreamStartedMessage{
		Event:        domain.MsgTypeStreamStarted,
		StreamerName: identity.Author,
		Title:        msg.Title,
		SourceType:   string(domain.SourceWebRTC),
	}, connID)
	d.broadcastRoom(roomID, stream.Info(), "")

	// Seed the broadcaster's offer fan-out with every viewer already in
	// the room.
	for _, member := range d.rooms.MembersOf(roomID) {
		if member == connID {
			continue
		}
		d.sender.SendTo(connID, &domain.ViewerJoinedMessage{
			Event:    domain.MsgTypeViewerJoined,
			ViewerID: member,
		})
	}

	d.systemMessage(roomID, startedStreamingText(identity.Author, msg.Title))
	audit.Log(audit.ActionStartStream, connID, roomID, identity.Author)
}

func (d *Dispatcher) handleStartYoutube(connID string, msg *domain.StartYoutubeMessage) {
	identity := d.registry.Identity(connID)
	if identity == nil || msg.YoutubeID == "" {
		l := log.L()
		l.Debug().Str(log.FieldConnID, connID).Msg("dropping start-youtube")
		return
	}

	roomID := d.resolveRoom(connID, msg.RoomID)
	stream := &domain.Stream{
		BroadcasterID:      connID,
		BroadcasterName:    identity.Author,
		BroadcasterAddress: identity.Address,
		Source:             domain.SourceYouTube,
		YoutubeID:          msg.YoutubeID,
		Title:              msg.Title,
		Live:               true,
		StartedAt:          d.now(),
	}
	d.streams.Set(roomID, stream)

	d.broadcastRoom(roomID, &domain.StreamStartedMessage{
		Event:        domain.MsgTypeStreamStarted,
		StreamerName: identity.Author,
		Title:        msg.Title,
		SourceType:   string(domain.SourceYouTube),
		YoutubeID:    msg.YoutubeID,
	}, connID)
	d.broadcastRoom(roomID, stream.Info(), "")

	// No viewer-joined seeding: a YouTube source has no WebRTC
	// negotiation.

	d.systemMessage(roomID, startedStreamingText(identity.Author, msg.Title))
	audit.Log(audit.ActionStartStream, connID, roomID, identity.Author)
}

func (d *Dispatcher) handleStopStream(connID string, msg *domain.StopStreamMessage) {
	roomID := d.resolveRoom(connID, msg.RoomID)

	stream := d.streams.Get(roomID)
	if stream == nil || stream.BroadcasterID != connID || !stream.Live {
		// Only the broadcaster may stop its own live stream; anything
		// else is dropped without a reply.
		return
	}

	stream.Stop(d.now())

	d.broadcastRoom(roomID, &domain.StreamStoppedMessage{Event: domain.MsgTypeStreamStopped}, connID)
	d.broadcastRoom(roomID, stream.Info(), "")
	d.systemMessage(roomID, fmt.Sprintf("%s stopped streaming", stream.BroadcasterName))

	audit.Log(audit.ActionStopStream, connID, roomID, stream.BroadcasterName)
}

func (d *Dispatcher) handleStreamStatus(connID string, msg *domain.StreamStatusRequest) {
	d.sender.SendTo(connID, d.buildStreamStatus(msg))
}

// buildStreamStatus is the one place a structured error is surfaced to
// the caller: any panic while assembling the rows becomes {ok:false}.
func (d *Dispatcher) buildStreamStatus(msg *domain.StreamStatusRequest) (result *domain.StreamStatusResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &domain.StreamStatusResult{
				Event:     domain.MsgTypeStreamStatusResult,
				RequestID: msg.RequestID,
				OK:        false,
				Error:     fmt.Sprint(r),
			}
		}
	}()

	rows := make([]domain.RoomStatus, 0, len(msg.RoomIDs))
	for _, roomID := range msg.RoomIDs {
		row := domain.RoomStatus{
			RoomID:      roomID,
			ViewerCount: d.rooms.SizeOf(roomID),
		}
		if stream := d.streams.Get(roomID); stream != nil {
			row.IsLive = stream.Live
			title := stream.Title
			row.Title = &title
			startedAt := stream.StartedAt.UnixMilli()
			row.StartedAt = &startedAt
		}
		rows = append(rows, row)
	}

	return &domain.StreamStatusResult{
		Event:     domain.MsgTypeStreamStatusResult,
		RequestID: msg.RequestID,
		OK:        true,
		Data:      rows,
	}
}

func (d *Dispatcher) handleMarketCreated(connID string, msg *domain.MarketCreatedMessage) {
	roomID := d.resolveRoom(connID, msg.RoomID)

	d.broadcastRoom(roomID, &domain.MarketCreatedBroadcast{
		Event:    domain.MsgTypeMarketCreated,
		MarketID: msg.MarketID,
		Question: msg.Question,
	}, "")
	d.systemMessage(roomID, fmt.Sprintf("Market created: %s", msg.Question))
}

func (d *Dispatcher) handleMarketResolved(connID string, msg *domain.MarketResolvedMessage) {
	roomID := d.resolveRoom(connID, msg.RoomID)

	d.broadcastRoom(roomID, &domain.MarketResolvedBroadcast{
		Event:    domain.MsgTypeMarketResolved,
		MarketID: msg.MarketID,
		Outcome:  msg.Outcome,
	}, "")
	d.systemMessage(roomID, fmt.Sprintf("Market resolved: %s", msg.Outcome))
}

func (d *Dispatcher) handleDisconnect(connID string) {
	identity := d.registry.Identity(connID)

	roomID := d.rooms.Leave(connID)
	if roomID != "" {
		d.broadcastViewerCount(roomID)

		if stream := d.streams.Get(roomID); stream != nil && stream.Live {
			if stream.BroadcasterID == connID {
				stream.Stop(d.now())
				d.broadcastRoom(roomID, &domain.StreamStoppedMessage{Event: domain.MsgTypeStreamStopped}, "")
				d.broadcastRoom(roomID, stream.Info(), "")
				d.systemMessage(roomID, fmt.Sprintf("%s left the stream", stream.BroadcasterName))
			} else {
				d.sender.SendTo(stream.BroadcasterID, &domain.ViewerLeftMessage{
					Event:    domain.MsgTypeViewerLeft,
					ViewerID: connID,
				})
			}
		}

		if identity != nil {
			d.systemMessage(roomID, fmt.Sprintf("%s left the room", identity.Author))
		}
	}

	// Registry cleanup happens last so the handlers above can still see
	// who this was.
	d.registry.Remove(connID)
	audit.Log(audit.ActionDisconnect, connID, roomID, "")
}

// relay forwards an opaque WebRTC payload: to one target if given,
// otherwise to the whole room minus the sender. The payload is never
// inspected.
func (d *Dispatcher) relay(connID, roomID, target string, forward interface{}) {
	if target != "" {
		d.sender.SendTo(target, forward)
		return
	}
	d.broadcastRoom(d.resolveRoom(connID, roomID), forward, connID)
}

func startedStreamingText(author, title string) string {
	if title == "" {
		return fmt.Sprintf("%s started streaming", author)
	}
	return fmt.Sprintf("%s started streaming: %s", author, title)
}

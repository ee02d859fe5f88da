package domain

import "time"

// StreamSource is the kind of media behind a room's stream.
type StreamSource string

const (
	SourceWebRTC  StreamSource = "webrtc"
	SourceYouTube StreamSource = "youtube"
)

// Stream is a room's broadcast descriptor. A room has at most one; a
// missing descriptor means the room has never streamed (or the reaper
// already evicted it). Live false with a descriptor still present is the
// grace window where late joiners can see "stream just ended" metadata.
type Stream struct {
	BroadcasterID      string
	BroadcasterName    string
	BroadcasterAddress string
	Source             StreamSource
	YoutubeID          string
	Title              string
	Live               bool
	StartedAt          time.Time
	StoppedAt          time.Time // zero while live
}

// Stop flips the descriptor to the stopped state, recording when. The
// stop time, not the start time, is the reaper's eviction clock.
func (s *Stream) Stop(now time.Time) {
	s.Live = false
	s.StoppedAt = now
}

// Info renders the descriptor as a wire stream-info frame.
func (s *Stream) Info() *StreamInfoMessage {
	return &StreamInfoMessage{
		Event:           MsgTypeStreamInfo,
		StreamerID:      s.BroadcasterID,
		StreamerAddress: s.BroadcasterAddress,
		StreamerName:    s.BroadcasterName,
		IsLive:          s.Live,
		SourceType:      string(s.Source),
		YoutubeID:       s.YoutubeID,
		Title:           s.Title,
		StartedAt:       s.StartedAt.UnixMilli(),
	}
}

package store

import (
	"time"

	"github.com/PritamP20/Streamer.fun/internal/domain"
)

// Streams maps room ids to their single stream descriptor.
type Streams struct {
	streams map[string]*domain.Stream
}

// NewStreams creates an empty stream state store.
func NewStreams() *Streams {
	return &Streams{streams: make(map[string]*domain.Stream)}
}

// Set records the room's descriptor, replacing any prior one.
func (s *Streams) Set(roomID string, stream *domain.Stream) {
	s.streams[roomID] = stream
}

// Get returns the room's descriptor, or nil.
func (s *Streams) Get(roomID string) *domain.Stream {
	return s.streams[roomID]
}

// Delete drops the room's descriptor. No-op if absent.
func (s *Streams) Delete(roomID string) {
	delete(s.streams, roomID)
}

// Len returns the number of rooms with a descriptor.
func (s *Streams) Len() int {
	return len(s.streams)
}

// Reap deletes every descriptor that has been stopped for longer than
// retention, measured from when it stopped, and returns the affected
// room ids. Live descriptors are never touched.
func (s *Streams) Reap(now time.Time, retention time.Duration) []string {
	var evicted []string
	for roomID, stream := range s.streams {
		if stream.Live {
			continue
		}
		if now.Sub(stream.StoppedAt) > retention {
			delete(s.streams, roomID)
			evicted = append(evicted, roomID)
		}
	}
	return evicted
}

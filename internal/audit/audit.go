package audit

import (
	"github.com/PritamP20/Streamer.fun/internal/log"
)

// Audit actions for the signaling server.
const (
	ActionJoinRoom    = "room.join"
	ActionDisconnect  = "room.disconnect"
	ActionStartStream = "stream.start"
	ActionStopStream  = "stream.stop"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldAuthor = "author"
)

// Log emits a structured audit log entry via the global logger.
func Log(action, connID, roomID, author string) {
	l := log.L()
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldConnID, connID).
		Str(log.FieldRoomID, roomID).
		Str(FieldAuthor, author).
		Msg(action)
}

package kafka

import (
	"context"

	"github.com/PritamP20/Streamer.fun/internal/domain"
)

// ChatAuditProducer publishes chat lines for the external moderation
// agents. The server never reads the topic back.
type ChatAuditProducer interface {
	ProduceChatMessage(ctx context.Context, msg *domain.ChatMessage) error
	Close() error
}

package pubsub

import (
	"context"
	"encoding/json"

	"github.com/PritamP20/Streamer.fun/internal/dispatch"
	"github.com/PritamP20/Streamer.fun/internal/domain"
	"github.com/PritamP20/Streamer.fun/internal/log"
)

// MarketBridge forwards market events from Redis into the dispatcher
// queue, where they are relayed to rooms like client-issued ones.
type MarketBridge struct {
	subscriber *RedisSubscriber
	dispatcher *dispatch.Dispatcher
	channel    string
	cancel     context.CancelFunc
}

// NewMarketBridge creates a bridge over an open subscriber.
func NewMarketBridge(sub *RedisSubscriber, d *dispatch.Dispatcher, channel string) *MarketBridge {
	return &MarketBridge{subscriber: sub, dispatcher: d, channel: channel}
}

// Start subscribes and consumes until Stop or ctx cancellation.
func (b *MarketBridge) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	eventCh, err := b.subscriber.Subscribe(ctx, b.channel)
	if err != nil {
		cancel()
		return err
	}

	go b.consume(ctx, eventCh)
	return nil
}

// Stop ends the subscription.
func (b *MarketBridge) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

func (b *MarketBridge) consume(ctx context.Context, eventCh <-chan *Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			b.inject(event)
		}
	}
}

// inject translates a market event into a wire frame and hands it to
// the dispatcher. Unknown event types are dropped.
func (b *MarketBridge) inject(event *Event) {
	l := log.L()

	var frame interface{}
	switch event.Type {
	case EventMarketCreated:
		var payload MarketCreatedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			l.Warn().Err(err).Msg("bad market-created payload")
			return
		}
		frame = &domain.MarketCreatedMessage{
			Event:    domain.MsgTypeMarketCreated,
			RoomID:   event.RoomID,
			MarketID: payload.MarketID,
			Question: payload.Question,
		}

	case EventMarketResolved:
		var payload MarketResolvedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			l.Warn().Err(err).Msg("bad market-resolved payload")
			return
		}
		frame = &domain.MarketResolvedMessage{
			Event:    domain.MsgTypeMarketResolved,
			RoomID:   event.RoomID,
			MarketID: payload.MarketID,
			Outcome:  payload.Outcome,
		}

	default:
		l.Debug().Str("event_type", event.Type).Msg("ignoring market event")
		return
	}

	data, err := json.Marshal(frame)
	if err != nil {
		l.Warn().Err(err).Msg("failed to marshal market frame")
		return
	}
	b.dispatcher.EnqueueExternal(data)
}

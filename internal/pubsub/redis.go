package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/PritamP20/Streamer.fun/internal/config"
)

// RedisSubscriber consumes market events from a Redis channel.
type RedisSubscriber struct {
	client *redis.Client
	pubsub *redis.PubSub
}

// NewRedisSubscriber connects to Redis and verifies the connection.
func NewRedisSubscriber(cfg config.RedisConfig) (*RedisSubscriber, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisSubscriber{client: client}, nil
}

// Subscribe starts consuming the channel and returns the event stream.
// The channel is closed when ctx is cancelled.
func (r *RedisSubscriber) Subscribe(ctx context.Context, channel string) (<-chan *Event, error) {
	r.pubsub = r.client.Subscribe(ctx, channel)

	eventCh := make(chan *Event, 100)
	go r.processMessages(ctx, eventCh)

	return eventCh, nil
}

// Close closes the subscription and the Redis client.
func (r *RedisSubscriber) Close() error {
	if r.pubsub != nil {
		r.pubsub.Close()
	}
	return r.client.Close()
}

func (r *RedisSubscriber) processMessages(ctx context.Context, eventCh chan<- *Event) {
	defer close(eventCh)

	ch := r.pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}

			select {
			case eventCh <- &event:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message
			}
		}
	}
}

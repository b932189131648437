package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// EventBus is the pub/sub transport between intake and the scoring
// dispatcher.
type EventBus interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan Message, error)
	Close() error
}

// Message is one received pub/sub message.
type Message struct {
	Channel string
	Payload []byte
	Time    time.Time
}

type redisBus struct {
	client *redis.Client
}

// NewRedisBus connects to Redis and verifies the connection.
func NewRedisBus(addr, password string, db int) (EventBus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisBus{client: client}, nil
}

// Publish marshals the message as JSON and publishes it on the channel.
func (r *redisBus) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return r.client.Publish(ctx, channel, payload).Err()
}

// Subscribe returns a channel of messages; it closes when ctx is done.
func (r *redisBus) Subscribe(ctx context.Context, channel string) (<-chan Message, error) {
	pubsub := r.client.Subscribe(ctx, channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	messageCh := make(chan Message)
	go func() {
		defer close(messageCh)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				messageCh <- Message{
					Channel: msg.Channel,
					Payload: []byte(msg.Payload),
					Time:    time.Now(),
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return messageCh, nil
}

// Close shuts down the underlying client.
func (r *redisBus) Close() error {
	return r.client.Close()
}

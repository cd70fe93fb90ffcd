package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/models"
)

// RedisBus fans reward events out through Redis pub/sub so every API
// instance can serve websocket clients.
type RedisBus struct {
	client *redis.Client
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

func (b *RedisBus) PublishReward(ctx context.Context, ev models.RewardEvent) error {
	payload, err := Encode(ev)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, ChannelForChild(ev.ChildID), payload).Err(); err != nil {
		return fmt.Errorf("publish reward for child %s: %w", ev.ChildID, err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context, childID docstore.ID) (<-chan []byte, func()) {
	ctx, cancel := context.WithCancel(ctx)
	pubsub := b.client.Subscribe(ctx, ChannelForChild(childID))
	out := make(chan []byte, 16)

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, cancel
}

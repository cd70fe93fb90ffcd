package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/models"
)

func TestLocal_DeliversToSubscribersOfChild(t *testing.T) {
	ctx := context.Background()
	bus := NewLocal()
	child, other := docstore.NewID(), docstore.NewID()

	ch, cancel := bus.Subscribe(ctx, child)
	defer cancel()
	otherCh, otherCancel := bus.Subscribe(ctx, other)
	defer otherCancel()

	require.NoError(t, bus.PublishReward(ctx, models.RewardEvent{ChildID: child, XPGained: 20, Level: 2, LeveledUp: true}))

	select {
	case payload := <-ch:
		var msg struct {
			Type    string             `json:"type"`
			Payload models.RewardEvent `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.Equal(t, models.WSTypeReward, msg.Type)
		assert.Equal(t, child, msg.Payload.ChildID)
		assert.Equal(t, 20, msg.Payload.XPGained)
		assert.True(t, msg.Payload.LeveledUp)
	case <-time.After(time.Second):
		t.Fatal("expected a reward message")
	}

	select {
	case <-otherCh:
		t.Fatal("other child must not receive the event")
	default:
	}
}

func TestLocal_CancelClosesChannel(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	bus := NewLocal()
	child := docstore.NewID()

	ch, _ := bus.Subscribe(ctx, child)
	stop()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel was not closed")
	}
	require.NoError(t, bus.PublishReward(context.Background(), models.RewardEvent{ChildID: child}))
}

func TestChannelForChild(t *testing.T) {
	id := docstore.MustParseID("5f0c7e1e-2b8a-4c3e-9d6f-0a1b2c3d4e5f")
	assert.Equal(t, "child_updates:5f0c7e1e-2b8a-4c3e-9d6f-0a1b2c3d4e5f", ChannelForChild(id))
}

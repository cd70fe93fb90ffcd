// Package events carries reward notifications from the progress service to
// websocket clients watching a child.
package events

import (
	"context"
	"encoding/json"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/models"
)

type Publisher interface {
	PublishReward(ctx context.Context, ev models.RewardEvent) error
}

// Subscriber streams encoded messages for one child until ctx is done or the
// returned cancel func is called.
type Subscriber interface {
	Subscribe(ctx context.Context, childID docstore.ID) (<-chan []byte, func())
}

func ChannelForChild(childID docstore.ID) string {
	return "child_updates:" + childID.String()
}

// Encode wraps ev in the websocket message envelope.
func Encode(ev models.RewardEvent) ([]byte, error) {
	return json.Marshal(models.WSMessage{Type: models.WSTypeReward, Payload: ev})
}

type Nop struct{}

func (Nop) PublishReward(context.Context, models.RewardEvent) error { return nil }

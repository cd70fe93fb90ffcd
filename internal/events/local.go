package events

import (
	"context"
	"sync"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/models"
)

// Local is the single-process bus used when Redis is not configured.
// Slow subscribers miss messages rather than block publishers.
type Local struct {
	mu     sync.RWMutex
	nextID int
	subs   map[docstore.ID]map[int]chan []byte
}

func NewLocal() *Local {
	return &Local{subs: make(map[docstore.ID]map[int]chan []byte)}
}

func (l *Local) PublishReward(_ context.Context, ev models.RewardEvent) error {
	payload, err := Encode(ev)
	if err != nil {
		return err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, ch := range l.subs[ev.ChildID] {
		select {
		case ch <- payload:
		default:
		}
	}
	return nil
}

func (l *Local) Subscribe(ctx context.Context, childID docstore.ID) (<-chan []byte, func()) {
	ch := make(chan []byte, 16)

	l.mu.Lock()
	id := l.nextID
	l.nextID++
	if l.subs[childID] == nil {
		l.subs[childID] = make(map[int]chan []byte)
	}
	l.subs[childID][id] = ch
	l.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			l.mu.Lock()
			delete(l.subs[childID], id)
			if len(l.subs[childID]) == 0 {
				delete(l.subs, childID)
			}
			l.mu.Unlock()
			close(ch)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel
}

package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/logger"
	"literasi-backend/internal/models"
	"literasi-backend/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.RewardEvent
}

func (p *recordingPublisher) PublishReward(_ context.Context, ev models.RewardEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

// interferingStore lets a test run a concurrent write just before a
// compare-and-set reaches the real store.
type interferingStore struct {
	docstore.Store
	beforeCAS func(call int)
	casCalls  int
}

func (s *interferingStore) CompareAndSet(ctx context.Context, collection string, id docstore.ID, expect docstore.Filter, set map[string]any) error {
	s.casCalls++
	if s.beforeCAS != nil {
		s.beforeCAS(s.casCalls)
	}
	return s.Store.CompareAndSet(ctx, collection, id, expect, set)
}

type fixture struct {
	store     docstore.Store
	children  *repository.ChildRepo
	progress  *repository.ProgressRepo
	publisher *recordingPublisher
	service   *ProgressService
}

func newFixture(t *testing.T, store docstore.Store) *fixture {
	t.Helper()
	if store == nil {
		store = docstore.NewMemory()
	}
	f := &fixture{
		store:     store,
		children:  repository.NewChildRepo(store),
		progress:  repository.NewProgressRepo(store),
		publisher: &recordingPublisher{},
	}
	f.service = NewProgressService(f.progress, f.children, f.publisher, logger.Nop())
	return f
}

func (f *fixture) addChild(t *testing.T, xp, level int) *models.Child {
	t.Helper()
	child := models.NewChild("Budi", 6, nil)
	child.XP = xp
	child.Level = level
	require.NoError(t, f.children.Create(context.Background(), child))
	return child
}

func submission(childID docstore.ID, accuracy float64) models.SubmitProgressRequest {
	return models.SubmitProgressRequest{
		ChildID:     childID.String(),
		ActivityID:  docstore.NewID().String(),
		Accuracy:    ptr(accuracy),
		DurationSec: ptr(45),
	}
}

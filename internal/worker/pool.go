package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"literasi-backend/internal/events"
	"literasi-backend/internal/logger"
	"literasi-backend/internal/models"
)

const publishTimeout = 5 * time.Second

var (
	ErrQueueFull = errors.New("reward event queue is full")
	ErrStopped   = errors.New("reward event pool is stopped")
)

// Pool publishes reward events off the request path. It implements
// events.Publisher; the wrapped publisher does the actual delivery.
type Pool struct {
	publisher   events.Publisher
	queue       chan models.RewardEvent
	workerCount int
	log         *logger.Logger

	mu       sync.RWMutex
	stopped  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewPool(publisher events.Publisher, workerCount, queueSize int, log *logger.Logger) *Pool {
	if workerCount <= 0 {
		workerCount = 1
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Pool{
		publisher:   publisher,
		queue:       make(chan models.RewardEvent, queueSize),
		workerCount: workerCount,
		log:         log,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.log.Info("started reward event workers", "count", p.workerCount)
}

// Stop rejects new events, delivers what is already queued and waits for the
// workers to exit.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.stopChan)
	p.mu.Unlock()

	p.wg.Wait()
}

// PublishReward enqueues ev without blocking.
func (p *Pool) PublishReward(_ context.Context, ev models.RewardEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}

	select {
	case p.queue <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case ev := <-p.queue:
			p.deliver(id, ev)
		case <-p.stopChan:
			// drain
			for {
				select {
				case ev := <-p.queue:
					p.deliver(id, ev)
				default:
					p.log.Debug("reward worker shutting down", "worker", id)
					return
				}
			}
		}
	}
}

func (p *Pool) deliver(id int, ev models.RewardEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.publisher.PublishReward(ctx, ev); err != nil {
		p.log.Warn("reward event delivery failed", "worker", id, "child_id", ev.ChildID, "error", err)
	}
}

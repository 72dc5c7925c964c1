package spawn

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// WorkerSetup runs at the start of each worker goroutine, before it begins
// draining tasks. It returns a teardown function invoked when the worker's
// run loop exits. The runtime bootstrap uses this hook to activate the
// runtime handle for the lifetime of the loop.
type WorkerSetup func(workerID uuid.UUID) (teardown func())

// Pool is a fixed-size worker pool implementing Spawner. Tasks are queued on
// a bounded channel and drained by long-lived worker goroutines.
type Pool struct {
	concurrency int
	queueDepth  int
	limiter     *rate.Limiter
	setup       WorkerSetup
	logger      *zap.Logger

	tasks  chan func()
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithConcurrency sets the number of worker goroutines.
func WithConcurrency(n int) PoolOption {
	return func(p *Pool) { p.concurrency = n }
}

// WithQueueDepth sets the capacity of the task queue.
func WithQueueDepth(n int) PoolOption {
	return func(p *Pool) { p.queueDepth = n }
}

// WithSpawnRate limits how many tasks per second may be submitted. A zero
// rate disables throttling.
func WithSpawnRate(perSecond float64, burst int) PoolOption {
	return func(p *Pool) {
		if perSecond > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithWorkerSetup installs a per-worker setup/teardown hook.
func WithWorkerSetup(setup WorkerSetup) PoolOption {
	return func(p *Pool) { p.setup = setup }
}

// NewPool creates a worker pool. The pool does not execute tasks until Start
// is called.
func NewPool(logger *zap.Logger, opts ...PoolOption) *Pool {
	p := &Pool{
		concurrency: 4,
		queueDepth:  256,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tasks = make(chan func(), p.queueDepth)
	return p
}

// Start launches the worker goroutines. It returns immediately and is a
// no-op if the pool is already running.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})

	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.runWorker()
	}
	p.logger.Info("worker pool started",
		zap.Int("concurrency", p.concurrency),
		zap.Int("queue_depth", p.queueDepth))
}

// Stop signals the workers to exit and waits for them, respecting ctx for a
// shutdown deadline. Queued tasks that have not started are dropped.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Spawn enqueues a task. It fails fast rather than blocking: ErrNotRunning
// if the pool is stopped, ErrThrottled if the rate limiter rejects the task,
// ErrQueueFull if the queue is at capacity.
func (p *Pool) Spawn(task func()) error {
	p.mu.Lock()
	running := p.running
	stopCh := p.stopCh
	p.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	if p.limiter != nil && !p.limiter.Allow() {
		return ErrThrottled
	}

	select {
	case p.tasks <- task:
		return nil
	case <-stopCh:
		return ErrNotRunning
	default:
		return ErrQueueFull
	}
}

// runWorker is the per-goroutine run loop. The setup hook's teardown is
// deferred so it runs even if a task panics through the recover below.
func (p *Pool) runWorker() {
	defer p.wg.Done()

	workerID := uuid.New()
	if p.setup != nil {
		teardown := p.setup(workerID)
		if teardown != nil {
			defer teardown()
		}
	}

	for {
		select {
		case <-p.stopCh:
			return
		case task := <-p.tasks:
			p.execute(workerID, task)
		}
	}
}

// execute runs one task, containing panics so a failing task does not take
// down the worker.
func (p *Pool) execute(workerID uuid.UUID, task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked",
				zap.String("worker_id", workerID.String()),
				zap.Any("panic", r))
		}
	}()
	task()
}

// Package runtime wires the executor and drivers into a capability handle
// and keeps that handle ambiently active on every worker goroutine for the
// lifetime of its run loop.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/taskrt/clock"
	"github.com/upb/taskrt/config"
	"github.com/upb/taskrt/driver"
	"github.com/upb/taskrt/internal/observability"
	"github.com/upb/taskrt/rtcontext"
	"github.com/upb/taskrt/spawn"
)

// ErrNotStarted indicates an operation on a runtime that is not running.
var ErrNotStarted = errors.New("runtime: not started")

// Runtime owns one executor pool and its driver subsystems. Code running
// inside its workers reaches these through the rtcontext accessors; nothing
// is passed down the call stack.
type Runtime struct {
	id     uuid.UUID
	cfg    *config.Config
	logger *zap.Logger

	counters   observability.Counters
	pool       *spawn.Pool
	ioDriver   *driver.Poll
	timeDriver *driver.Timer
	handle     *rtcontext.Handle

	mu      sync.Mutex
	started bool
}

// New creates a runtime from configuration. Drivers disabled in cfg are left
// off the handle entirely, so ambient lookups for them report absence.
func New(cfg *config.Config, logger *zap.Logger) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runtime config: %w", err)
	}

	r := &Runtime{
		id:     uuid.New(),
		cfg:    cfg,
		logger: logger,
	}

	r.pool = spawn.NewPool(logger,
		spawn.WithConcurrency(cfg.Executor.Workers),
		spawn.WithQueueDepth(cfg.Executor.QueueDepth),
		spawn.WithSpawnRate(cfg.Executor.SpawnRate, cfg.Executor.SpawnBurst),
		spawn.WithWorkerSetup(r.activateWorker),
	)

	opts := []rtcontext.HandleOption{rtcontext.WithSpawner(r.pool)}
	if cfg.Drivers.IOEnabled {
		r.ioDriver = driver.NewPoll(logger)
		opts = append(opts, rtcontext.WithIODriver(r.ioDriver))
	}
	if cfg.Drivers.TimeEnabled {
		r.timeDriver = driver.NewTimer(clock.System(), logger)
		opts = append(opts, rtcontext.WithTimeDriver(r.timeDriver))
	}
	r.handle = rtcontext.NewHandle(opts...)

	rtcontext.SetLogger(logger)
	return r, nil
}

// activateWorker installs the runtime handle on a worker goroutine before it
// enters its run loop. The returned teardown releases the guard when the
// loop exits, including when it unwinds on a panic.
func (r *Runtime) activateWorker(workerID uuid.UUID) func() {
	guard := rtcontext.Activate(r.handle)
	r.logger.Debug("runtime context activated on worker",
		zap.String("runtime_id", r.id.String()),
		zap.String("worker_id", workerID.String()))
	return guard.Release
}

// Start launches the worker pool.
func (r *Runtime) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	r.started = true
	r.pool.Start()
	r.logger.Info("runtime started",
		zap.String("runtime_id", r.id.String()),
		zap.Int("workers", r.cfg.Executor.Workers),
		zap.Bool("io_driver", r.ioDriver != nil),
		zap.Bool("time_driver", r.timeDriver != nil))
	return nil
}

// Shutdown stops the worker pool and closes the drivers. The configured
// shutdown timeout applies when ctx carries no deadline of its own.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = false
	r.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.ShutdownTimeout)
		defer cancel()
	}

	if err := r.pool.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop worker pool: %w", err)
	}
	if r.ioDriver != nil {
		if err := r.ioDriver.Close(); err != nil {
			return fmt.Errorf("failed to close io driver: %w", err)
		}
	}
	if r.timeDriver != nil {
		if err := r.timeDriver.Close(); err != nil {
			return fmt.Errorf("failed to close time driver: %w", err)
		}
	}
	r.logger.Info("runtime stopped", zap.String("runtime_id", r.id.String()))
	return nil
}

// Spawn submits a task to the runtime's executor.
func (r *Runtime) Spawn(task func()) error {
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if !started {
		r.counters.TaskRejected()
		return ErrNotStarted
	}
	if err := r.pool.Spawn(task); err != nil {
		r.counters.TaskRejected()
		return err
	}
	r.counters.TaskSpawned()
	return nil
}

// Handle returns the runtime's capability bundle, for callers that need to
// activate it on goroutines the runtime does not manage.
func (r *Runtime) Handle() *rtcontext.Handle { return r.handle }

// ID returns the runtime's unique identifier.
func (r *Runtime) ID() uuid.UUID { return r.id }

// Stats returns a snapshot of the runtime's task counters.
func (r *Runtime) Stats() observability.Snapshot {
	return r.counters.Snapshot()
}

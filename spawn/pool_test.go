package spawn

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNoopSpawnerAlwaysFails(t *testing.T) {
	err := NewNoop().Spawn(func() {})
	assert.ErrorIs(t, err, ErrNoExecutor)
}

func TestPoolExecutesTasks(t *testing.T) {
	p := NewPool(zaptest.NewLogger(t), WithConcurrency(2))
	p.Start()
	defer func() { require.NoError(t, p.Stop(context.Background())) }()

	var ran atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, p.Spawn(func() {
			defer wg.Done()
			ran.Add(1)
		}))
	}
	wg.Wait()
	assert.Equal(t, int64(10), ran.Load())
}

func TestPoolSpawnBeforeStart(t *testing.T) {
	p := NewPool(zaptest.NewLogger(t))
	assert.ErrorIs(t, p.Spawn(func() {}), ErrNotRunning)
}

func TestPoolSpawnAfterStop(t *testing.T) {
	p := NewPool(zaptest.NewLogger(t), WithConcurrency(1))
	p.Start()
	require.NoError(t, p.Stop(context.Background()))
	assert.ErrorIs(t, p.Spawn(func() {}), ErrNotRunning)
}

func TestPoolQueueFull(t *testing.T) {
	p := NewPool(zaptest.NewLogger(t), WithConcurrency(1), WithQueueDepth(1))
	p.Start()
	defer func() { _ = p.Stop(context.Background()) }()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Spawn(func() {
		close(started)
		<-block
	}))
	<-started

	// The single worker is blocked; one task fits in the queue, the next
	// must be rejected rather than block the caller.
	require.NoError(t, p.Spawn(func() {}))
	assert.ErrorIs(t, p.Spawn(func() {}), ErrQueueFull)

	close(block)
}

func TestPoolSpawnThrottled(t *testing.T) {
	p := NewPool(zaptest.NewLogger(t), WithConcurrency(1), WithSpawnRate(1, 1))
	p.Start()
	defer func() { _ = p.Stop(context.Background()) }()

	require.NoError(t, p.Spawn(func() {}))
	assert.ErrorIs(t, p.Spawn(func() {}), ErrThrottled)
}

func TestPoolWorkerSetupAndTeardown(t *testing.T) {
	var setups, teardowns atomic.Int64
	var idsMu sync.Mutex
	ids := make(map[uuid.UUID]bool)

	p := NewPool(zaptest.NewLogger(t),
		WithConcurrency(3),
		WithWorkerSetup(func(workerID uuid.UUID) func() {
			setups.Add(1)
			idsMu.Lock()
			ids[workerID] = true
			idsMu.Unlock()
			return func() { teardowns.Add(1) }
		}),
	)
	p.Start()
	require.NoError(t, p.Stop(context.Background()))

	assert.Equal(t, int64(3), setups.Load())
	assert.Equal(t, int64(3), teardowns.Load(), "teardown must run when the worker loop exits")
	assert.Len(t, ids, 3, "each worker gets its own identity")
}

func TestPoolContainsTaskPanics(t *testing.T) {
	p := NewPool(zaptest.NewLogger(t), WithConcurrency(1))
	p.Start()
	defer func() { _ = p.Stop(context.Background()) }()

	require.NoError(t, p.Spawn(func() { panic("boom") }))

	// The worker must survive and keep draining the queue.
	done := make(chan struct{})
	require.Eventually(t, func() bool {
		err := p.Spawn(func() { close(done) })
		return err == nil
	}, time.Second, 10*time.Millisecond)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not recover from task panic")
	}
}

func TestPoolStopHonorsContext(t *testing.T) {
	p := NewPool(zaptest.NewLogger(t), WithConcurrency(1))
	p.Start()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Spawn(func() {
		close(started)
		<-block
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Stop(ctx), context.DeadlineExceeded)

	close(block)
}

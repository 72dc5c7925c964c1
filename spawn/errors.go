package spawn

import "errors"

var (
	// ErrNoExecutor indicates the handle's spawner is the placeholder and no
	// executor is attached to the current runtime.
	ErrNoExecutor = errors.New("spawn: no executor attached")

	// ErrNotRunning indicates the pool has not been started or has been
	// stopped.
	ErrNotRunning = errors.New("spawn: pool is not running")

	// ErrQueueFull indicates the pool's task queue is at capacity.
	ErrQueueFull = errors.New("spawn: task queue is full")

	// ErrThrottled indicates the spawn rate limiter rejected the task.
	ErrThrottled = errors.New("spawn: rate limit exceeded")
)

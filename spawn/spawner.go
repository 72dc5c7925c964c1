// Package spawn provides the executor capability consumed by the runtime
// context: an interface for scheduling work, a placeholder implementation for
// handles with no executor attached, and a fixed-size worker pool.
package spawn

// Spawner schedules a task for execution. Implementations must be safe for
// concurrent use; Spawn never blocks on task completion.
type Spawner interface {
	Spawn(task func()) error
}

// Noop is the placeholder spawner used when a handle has no executor
// attached. Every Spawn attempt fails with ErrNoExecutor.
type Noop struct{}

// NewNoop returns the placeholder spawner.
func NewNoop() Noop { return Noop{} }

// Spawn always returns ErrNoExecutor.
func (Noop) Spawn(func()) error { return ErrNoExecutor }

package observability

import "sync/atomic"

// Counters tracks runtime activity. All methods are safe for concurrent use.
type Counters struct {
	tasksSpawned  atomic.Int64
	tasksRejected atomic.Int64
}

// TaskSpawned records a successful task submission.
func (c *Counters) TaskSpawned() { c.tasksSpawned.Add(1) }

// TaskRejected records a submission the executor refused.
func (c *Counters) TaskRejected() { c.tasksRejected.Add(1) }

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	TasksSpawned  int64
	TasksRejected int64
}

// Snapshot returns the current counter values.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		TasksSpawned:  c.tasksSpawned.Load(),
		TasksRejected: c.tasksRejected.Load(),
	}
}

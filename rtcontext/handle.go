package rtcontext

import (
	"github.com/google/uuid"

	"github.com/upb/taskrt/clock"
	"github.com/upb/taskrt/driver"
	"github.com/upb/taskrt/spawn"
)

// Handle is the capability bundle representing one runtime instance: how to
// schedule work plus optional references to the I/O and timer drivers and a
// clock override. A Handle is immutable once constructed; derived handles are
// built on a detached copy, never by mutating an installed one. Copies are
// shallow: capability references are shared, the subsystems behind them are
// owned elsewhere.
type Handle struct {
	id      uuid.UUID
	spawner spawn.Spawner
	io      driver.IODriver
	time    driver.TimeDriver
	clock   clock.Clock
}

// HandleOption configures a Handle during construction.
type HandleOption func(*Handle)

// WithSpawner attaches an executor. Handles built without one fall back to
// the placeholder spawner, whose Spawn fails with spawn.ErrNoExecutor.
func WithSpawner(s spawn.Spawner) HandleOption {
	return func(h *Handle) { h.spawner = s }
}

// WithIODriver attaches an I/O readiness driver.
func WithIODriver(d driver.IODriver) HandleOption {
	return func(h *Handle) { h.io = d }
}

// WithTimeDriver attaches a timer driver.
func WithTimeDriver(d driver.TimeDriver) HandleOption {
	return func(h *Handle) { h.time = d }
}

// WithClock attaches a clock override. Production handles normally leave this
// unset; tests install one through WithTimeOverride.
func WithClock(c clock.Clock) HandleOption {
	return func(h *Handle) { h.clock = c }
}

// NewHandle builds a capability bundle. All capabilities are optional; the
// spawner defaults to the placeholder.
func NewHandle(opts ...HandleOption) *Handle {
	h := &Handle{
		id:      uuid.New(),
		spawner: spawn.NewNoop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.spawner == nil {
		h.spawner = spawn.NewNoop()
	}
	return h
}

// ID returns the handle's identity, used in misuse diagnostics.
func (h *Handle) ID() uuid.UUID { return h.id }

// Spawner returns the handle's executor capability. Never nil.
func (h *Handle) Spawner() spawn.Spawner { return h.spawner }

// IODriver returns the handle's I/O driver capability, or nil.
func (h *Handle) IODriver() driver.IODriver { return h.io }

// TimeDriver returns the handle's timer driver capability, or nil.
func (h *Handle) TimeDriver() driver.TimeDriver { return h.time }

// Clock returns the handle's clock override, or nil.
func (h *Handle) Clock() clock.Clock { return h.clock }

// clone returns a detached shallow copy under a fresh identity. Overlay
// construction mutates the copy before it is ever installed.
func (h *Handle) clone() *Handle {
	dup := *h
	dup.id = uuid.New()
	return &dup
}

// Package rtcontext implements the ambient runtime context: a per-goroutine
// slot holding the capability handle of the currently active runtime, so code
// deep inside a worker's call stack can reach the executor, the I/O driver,
// or the timer driver without those references being threaded through every
// call.
//
// The slot is strictly goroutine-local. Activations on one goroutine are
// never visible on another, and a goroutine spawned from inside an activation
// does not inherit it. Activations nest LIFO: each one remembers only the
// value it displaced and restores exactly that on the way out.
package rtcontext

import (
	"sync"

	"github.com/petermattis/goid"

	"github.com/upb/taskrt/clock"
	"github.com/upb/taskrt/driver"
	"github.com/upb/taskrt/spawn"
)

// slots maps goroutine ID to the active handle. An entry exists only while a
// handle is installed; restoring an empty predecessor deletes the entry, so
// goroutines that never activate (or that have fully unwound) cost nothing.
var slots sync.Map

// current returns the handle active on the calling goroutine, or nil.
func current() *Handle {
	v, ok := slots.Load(goid.Get())
	if !ok {
		return nil
	}
	return v.(*Handle)
}

// install replaces the calling goroutine's slot content with h (nil empties
// the slot) and returns the displaced content. Only activation and
// restoration paths call it; the LIFO discipline lives in those callers.
func install(h *Handle) (prev *Handle) {
	gid := goid.Get()
	if v, ok := slots.Load(gid); ok {
		prev = v.(*Handle)
	}
	if h == nil {
		slots.Delete(gid)
	} else {
		slots.Store(gid, h)
	}
	return prev
}

// Current returns the handle active on the calling goroutine. It is safe to
// call from any goroutine at any time; ok is false when no runtime is active.
func Current() (*Handle, bool) {
	h := current()
	return h, h != nil
}

// CurrentSpawner returns the active runtime's spawner. The spawner is never
// nil on an active handle (a placeholder stands in when no executor is
// attached); ok is false only when no runtime is active at all.
func CurrentSpawner() (spawn.Spawner, bool) {
	h := current()
	if h == nil {
		return nil, false
	}
	return h.spawner, true
}

// CurrentIODriver returns the active runtime's I/O readiness driver, if the
// runtime has one.
func CurrentIODriver() (driver.IODriver, bool) {
	h := current()
	if h == nil || h.io == nil {
		return nil, false
	}
	return h.io, true
}

// CurrentTimeDriver returns the active runtime's timer driver, if the
// runtime has one.
func CurrentTimeDriver() (driver.TimeDriver, bool) {
	h := current()
	if h == nil || h.time == nil {
		return nil, false
	}
	return h.time, true
}

// CurrentClock returns the active clock override. Outside of test
// configurations installed via WithTimeOverride or WithClock, handles carry
// no override and ok is false.
func CurrentClock() (clock.Clock, bool) {
	h := current()
	if h == nil || h.clock == nil {
		return nil, false
	}
	return h.clock, true
}

package rtcontext

import (
	"github.com/upb/taskrt/clock"
	"github.com/upb/taskrt/driver"
)

// WithTimeOverride runs fn with the active handle's time driver and clock
// replaced, restoring the previous slot content afterward with the same
// unwind guarantee as Enter. The replacement happens on a detached copy of
// the active handle; if no handle is active, a placeholder bundle is
// synthesized carrying only the time capabilities and the no-op spawner.
//
// This is a test-harness facility: it lets a test substitute a controllable
// time source without touching the executor or I/O capabilities. Production
// activation always replaces the whole bundle.
func WithTimeOverride[R any](td driver.TimeDriver, clk clock.Clock, fn func() R) R {
	var next *Handle
	if base := current(); base != nil {
		next = base.clone()
	} else {
		next = NewHandle()
	}
	next.time = td
	next.clock = clk

	prev := install(next)
	defer install(prev)
	return fn()
}

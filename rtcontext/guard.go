package rtcontext

import (
	"sync/atomic"

	"github.com/petermattis/goid"
	"go.uber.org/zap"
)

// guardLogger receives misuse diagnostics. Defaults to a nop logger; the
// runtime bootstrap replaces it via SetLogger.
var guardLogger atomic.Pointer[zap.Logger]

func init() {
	guardLogger.Store(zap.NewNop())
}

// SetLogger routes activation misuse warnings to the given logger.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	guardLogger.Store(logger)
}

// Guard represents an open activation whose lifetime is not a single
// function call, typically a worker's run loop. Releasing the guard
// restores the handle it displaced. Guards must be released on the goroutine
// that created them, in reverse creation order; violating that does not
// crash, but the slot stops reflecting a coherent activation history and a
// warning is logged.
type Guard struct {
	goroutineID int64
	installed   *Handle
	prev        *Handle
	released    bool
}

// Activate installs h on the calling goroutine and returns a guard that
// restores the displaced content when released. Use Enter instead when the
// activation spans exactly one call.
func Activate(h *Handle) *Guard {
	prev := install(h)
	return &Guard{
		goroutineID: goid.Get(),
		installed:   h,
		prev:        prev,
	}
}

// Release restores the handle the activation displaced. Only the first call
// has an effect; further calls are no-ops. Callers typically defer Release at
// the top of the scope the activation covers, so restoration also happens
// when that scope unwinds on a panic.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true

	logger := guardLogger.Load()
	if gid := goid.Get(); gid != g.goroutineID {
		logger.Warn("activation guard released on a different goroutine",
			zap.Int64("created_on", g.goroutineID),
			zap.Int64("released_on", gid))
	}
	if cur := current(); cur != g.installed {
		fields := []zap.Field{zap.String("installed_handle", g.installed.ID().String())}
		if cur != nil {
			fields = append(fields, zap.String("current_handle", cur.ID().String()))
		}
		logger.Warn("activation guard released out of order", fields...)
	}

	install(g.prev)
}

package driver

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/upb/taskrt/clock"
)

// Timer is a clock-backed timer driver. Scheduling delegates to the
// configured clock, so substituting a test clock makes every timer
// deterministic without touching the driver.
type Timer struct {
	clk    clock.Clock
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

// NewTimer creates a timer driver on the given clock.
func NewTimer(clk clock.Clock, logger *zap.Logger) *Timer {
	return &Timer{clk: clk, logger: logger}
}

// Schedule arranges for fn to run after d. The returned cancel stops the
// timer and reports whether it was stopped before firing.
func (t *Timer) Schedule(d time.Duration, fn func()) (cancel func() bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrDriverClosed
	}
	stop := t.clk.AfterFunc(d, fn)
	return stop, nil
}

// Close rejects further scheduling. Timers already scheduled are unaffected;
// callers cancel those through the handles Schedule returned.
func (t *Timer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.logger.Debug("time driver closed")
	return nil
}

package driver

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrDriverClosed indicates an operation on a closed driver.
var ErrDriverClosed = errors.New("driver: closed")

// Poll is a minimal I/O readiness driver. It exposes the wakeup half of a
// reactor: a worker blocks in Wait and Wakeup unblocks it. Readiness event
// dispatch beyond the wakeup mechanism is outside this module's scope.
type Poll struct {
	wakeCh chan struct{}
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

// NewPoll creates an I/O readiness driver.
func NewPoll(logger *zap.Logger) *Poll {
	return &Poll{
		wakeCh: make(chan struct{}, 1),
		logger: logger,
	}
}

// Wakeup unblocks a pending Wait. Multiple wakeups before a Wait coalesce
// into one.
func (p *Poll) Wakeup() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrDriverClosed
	}
	select {
	case p.wakeCh <- struct{}{}:
	default:
	}
	return nil
}

// Wait blocks until the next wakeup, the context is cancelled, or the driver
// is closed. It returns nil only when woken.
func (p *Poll) Wait(ctx context.Context) error {
	select {
	case _, ok := <-p.wakeCh:
		if !ok {
			return ErrDriverClosed
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the driver down. Pending and future Waits fail with
// ErrDriverClosed.
func (p *Poll) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.wakeCh)
	p.logger.Debug("io driver closed")
	return nil
}

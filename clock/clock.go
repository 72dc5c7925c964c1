// Package clock abstracts the time source handed to the runtime as a
// capability. Production code uses the system clock; tests substitute a
// controllable one through the runtime context's time override.
package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
)

// Clock is the time source capability stored in a runtime handle.
// Implementations must be safe for concurrent use.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
	AfterFunc(d time.Duration, f func()) (stop func() bool)
	Sleep(d time.Duration)
}

// systemClock delegates to the real wall clock.
type systemClock struct {
	inner bclock.Clock
}

// System returns a Clock backed by the real wall clock.
func System() Clock {
	return &systemClock{inner: bclock.New()}
}

func (c *systemClock) Now() time.Time { return c.inner.Now() }

func (c *systemClock) After(d time.Duration) <-chan time.Time { return c.inner.After(d) }

func (c *systemClock) Sleep(d time.Duration) { c.inner.Sleep(d) }

func (c *systemClock) AfterFunc(d time.Duration, f func()) (stop func() bool) {
	t := c.inner.AfterFunc(d, f)
	return t.Stop
}

// Test is a manually driven Clock for deterministic tests. Time only moves
// when Advance or Set is called.
type Test struct {
	mock *bclock.Mock
}

// NewTest creates a Test clock frozen at the mock epoch.
func NewTest() *Test {
	return &Test{mock: bclock.NewMock()}
}

func (c *Test) Now() time.Time { return c.mock.Now() }

func (c *Test) After(d time.Duration) <-chan time.Time { return c.mock.After(d) }

func (c *Test) Sleep(d time.Duration) { c.mock.Sleep(d) }

func (c *Test) AfterFunc(d time.Duration, f func()) (stop func() bool) {
	t := c.mock.AfterFunc(d, f)
	return t.Stop
}

// Advance moves the test clock forward, firing any timers that come due.
func (c *Test) Advance(d time.Duration) {
	c.mock.Add(d)
}

// Set jumps the test clock to an absolute instant.
func (c *Test) Set(t time.Time) {
	c.mock.Set(t)
}

// Package driver defines the I/O readiness and timer capabilities a runtime
// handle points at, together with minimal in-process implementations. The
// runtime context only stores and hands out these capabilities; it never
// drives them.
package driver

import "time"

// IODriver is the capability reference to an I/O readiness driver. Wakeup
// interrupts a blocked poll so the driver re-examines its registrations.
type IODriver interface {
	Wakeup() error
}

// TimeDriver is the capability reference to a timer driver. Schedule arranges
// for fn to run after d on the driver's goroutine of choice; the returned
// cancel stops the timer and reports whether it was stopped before firing.
type TimeDriver interface {
	Schedule(d time.Duration, fn func()) (cancel func() bool, err error)
}

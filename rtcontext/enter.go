package rtcontext

// Enter activates h on the calling goroutine for the duration of fn and
// returns fn's result. The previously active handle (or empty slot) is
// restored when fn returns. Restoration rides on a defer, so it also runs
// before a panic in fn propagates past Enter.
//
// Enter is re-entrant: fn may itself call Enter or Activate, and each nested
// activation restores only the value it displaced.
func Enter[R any](h *Handle, fn func() R) R {
	prev := install(h)
	defer install(prev)
	return fn()
}

package rtcontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGuardOutOfOrderReleaseIsDetected(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)
	defer install(nil) // the slot is incoherent after deliberate misuse

	g1 := Activate(NewHandle())
	g2 := Activate(NewHandle())

	// Dropping guards out of creation order is a usage error: it must be
	// detected and must not panic, but the slot no longer reflects a
	// coherent history.
	assert.NotPanics(t, func() {
		g1.Release()
		g2.Release()
	})

	entries := logs.FilterMessage("activation guard released out of order").All()
	require.NotEmpty(t, entries)
}

func TestGuardReleaseOnWrongGoroutineIsDetected(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)
	defer install(nil)

	guard := Activate(NewHandle())

	done := make(chan struct{})
	go func() {
		defer close(done)
		guard.Release()
	}()
	<-done

	entries := logs.FilterMessage("activation guard released on a different goroutine").All()
	require.Len(t, entries, 1)
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	SetLogger(nil)
	guard := Activate(NewHandle())
	assert.NotPanics(t, guard.Release)
}

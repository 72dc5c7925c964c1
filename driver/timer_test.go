package driver

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/upb/taskrt/clock"
)

func TestTimerFiresOnClockAdvance(t *testing.T) {
	clk := clock.NewTest()
	tm := NewTimer(clk, zaptest.NewLogger(t))
	defer func() { _ = tm.Close() }()

	var fired atomic.Bool
	_, err := tm.Schedule(5*time.Second, func() { fired.Store(true) })
	require.NoError(t, err)

	clk.Advance(4 * time.Second)
	assert.False(t, fired.Load())

	clk.Advance(time.Second)
	assert.True(t, fired.Load())
}

func TestTimerCancelBeforeFire(t *testing.T) {
	clk := clock.NewTest()
	tm := NewTimer(clk, zaptest.NewLogger(t))
	defer func() { _ = tm.Close() }()

	var fired atomic.Bool
	cancel, err := tm.Schedule(time.Minute, func() { fired.Store(true) })
	require.NoError(t, err)

	assert.True(t, cancel(), "cancel must report the timer was stopped in time")
	clk.Advance(2 * time.Minute)
	assert.False(t, fired.Load())
}

func TestTimerScheduleAfterClose(t *testing.T) {
	tm := NewTimer(clock.NewTest(), zaptest.NewLogger(t))
	require.NoError(t, tm.Close())

	_, err := tm.Schedule(time.Second, func() {})
	assert.ErrorIs(t, err, ErrDriverClosed)
	assert.NoError(t, tm.Close())
}

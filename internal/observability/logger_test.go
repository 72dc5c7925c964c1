package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		wantErr     bool
	}{
		{name: "production json", environment: "production", level: "info"},
		{name: "development console", environment: "development", level: "debug"},
		{name: "warn level", environment: "staging", level: "warn"},
		{name: "invalid level", environment: "production", level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.environment, tt.level)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestCountersSnapshot(t *testing.T) {
	var c Counters
	c.TaskSpawned()
	c.TaskSpawned()
	c.TaskRejected()

	snap := c.Snapshot()
	assert.Equal(t, int64(2), snap.TasksSpawned)
	assert.Equal(t, int64(1), snap.TasksRejected)
}

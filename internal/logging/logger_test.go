package logging

import (
	"testing"

	"github.com/rustyeddy/tradelog/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		l, err := New(config.LogConfig{Level: tt.level})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(tt.want), tt.level)
		if tt.want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(tt.want-1), tt.level)
		}
	}
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	l, err := New(config.LogConfig{Level: "info", Encoding: "json"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewBadEncoding(t *testing.T) {
	t.Parallel()

	_, err := New(config.LogConfig{Encoding: "xml"})
	assert.Error(t, err)
}

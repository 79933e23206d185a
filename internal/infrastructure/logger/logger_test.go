package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, parseLevel(tc.input), "input %q", tc.input)
	}
}

func TestNew(t *testing.T) {
	t.Run("console config", func(t *testing.T) {
		l, err := New(DefaultConfig())
		require.NoError(t, err)
		require.NotNil(t, l)
	})

	t.Run("json config", func(t *testing.T) {
		l, err := New(ProductionConfig())
		require.NoError(t, err)
		require.NotNil(t, l)
	})
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", ""} {
		l, err := NewForEnvironment(env)
		require.NoError(t, err)
		assert.NotNil(t, l, "env %q", env)
	}
}

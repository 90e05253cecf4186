package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"TRACE", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetLevel(slog.LevelInfo)
		Disable()
	})

	SetLevel(slog.LevelInfo)
	Debug("hidden message")
	assert.NotContains(t, buf.String(), "hidden message")

	SetLevel(slog.LevelDebug)
	Debug("visible message", "key", "value")
	assert.Contains(t, buf.String(), "visible message")
	assert.Contains(t, buf.String(), "key=value")
}

func TestSetupFromEnv(t *testing.T) {
	t.Cleanup(func() { SetLevel(slog.LevelInfo) })

	t.Setenv(EnvLevel, "error")
	require.NoError(t, SetupFromEnv())
	assert.Equal(t, slog.LevelError, Level())

	t.Setenv(EnvLevel, "nonsense")
	assert.Error(t, SetupFromEnv())
}

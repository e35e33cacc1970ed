package logs

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetLogger restores the package defaults after a test.
func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { _ = Init(os.Stderr, "INFO", false) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		hasError bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"Warning", LevelWarn, false},
		{"WARN", LevelWarn, false},
		{"critical", LevelError, false},
		{"trace", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInit_FiltersByLevel(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	require.NoError(t, Init(&buf, "WARN", false))

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warn("warn %d", 3)
	Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARN ] warn 3")
	assert.Contains(t, out, "[ERROR] error 4")
}

func TestInit_VerboseForcesDebug(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	require.NoError(t, Init(&buf, "ERROR", true))
	assert.Equal(t, LevelDebug, CurrentLevel())

	Debug("tags: %v", []string{"v1.0.0"})
	assert.Contains(t, buf.String(), "[DEBUG] tags: [v1.0.0]")
}

func TestInit_Environment(t *testing.T) {
	resetLogger(t)
	t.Setenv(EnvLevel, "debug")

	require.NoError(t, Init(&bytes.Buffer{}, "", false))
	assert.Equal(t, LevelDebug, CurrentLevel())

	// An explicit level wins over the environment.
	require.NoError(t, Init(&bytes.Buffer{}, "error", false))
	assert.Equal(t, LevelError, CurrentLevel())
}

func TestInit_InvalidLevel(t *testing.T) {
	resetLogger(t)
	assert.Error(t, Init(&bytes.Buffer{}, "loud", false))
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "LEVEL(9)", Level(9).String())
}

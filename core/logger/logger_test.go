package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"ConsoleInfo", Config{Level: "info", Format: "console"}},
		{"JSONDebug", Config{Level: "debug", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, l)
			_ = l.Sync()
		})
	}
}

func TestNew_FileTruncation(t *testing.T) {
	file := filepath.Join(t.TempDir(), "build.log")
	require.NoError(t, os.WriteFile(file, []byte("previous run output\n"), 0o644))

	l, err := New(&Config{Level: "info", Format: "json", File: file})
	require.NoError(t, err)

	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "previous run output")
	assert.Contains(t, string(data), "hello")
}

func TestNew_FileAppend(t *testing.T) {
	file := filepath.Join(t.TempDir(), "build.log")
	require.NoError(t, os.WriteFile(file, []byte("previous run output\n"), 0o644))

	l, err := New(&Config{Level: "info", Format: "json", File: file, Append: true})
	require.NoError(t, err)

	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "previous run output")
	assert.Contains(t, string(data), "hello")
}

func TestQuiet(t *testing.T) {
	l, err := Quiet(&Config{Level: "debug", Format: "json"})
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}

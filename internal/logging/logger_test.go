package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_StderrText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: slog.LevelWarn, Stderr: &buf, Service: "test"})
	require.NoError(t, err)
	defer l.Close()

	l.Info("hidden")
	l.Warn("shown", "face", "R")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "face=R")
	assert.Contains(t, out, "service=test")
}

func TestNew_FileAndStderr(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "cubesim.log")

	l, err := New(Config{Level: slog.LevelDebug, File: path, Stderr: &buf})
	require.NoError(t, err)
	l.Debug("turn", "move", "U'")
	require.NoError(t, l.Close())

	assert.Contains(t, buf.String(), "turn")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "turn", rec["msg"])
	assert.Equal(t, "U'", rec["move"])
}

func TestNew_QuietWithoutFile(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Quiet: true, Stderr: &buf})
	require.NoError(t, err)
	l.Error("nowhere")
	assert.Empty(t, buf.String())
	assert.NoError(t, l.Close())
}

func TestNew_BadFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	_, err := New(Config{File: filepath.Join(blocker, "sub", "x.log")})
	assert.Error(t, err)
}

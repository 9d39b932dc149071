package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCreatesWritableJSONLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pipebard.jsonl")

	runtime, err := New(Options{Path: path, Level: "info"})
	require.NoError(t, err)

	runtime.Logger.Info("unit-test-log", "component", "logging")
	runtime.Logger.Debug("hidden-at-info")
	require.NoError(t, runtime.Close())

	contents, err := os.ReadFile(runtime.Path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `"msg":"unit-test-log"`)
	require.Contains(t, string(contents), `"component":"logging"`)
	require.NotContains(t, string(contents), "hidden-at-info")

	stat, err := os.Stat(runtime.Path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
}

func TestNewEchoesRecords(t *testing.T) {
	var echo bytes.Buffer

	runtime, err := New(Options{Path: filepath.Join(t.TempDir(), "log.jsonl"), Level: "debug", Echo: &echo})
	require.NoError(t, err)
	t.Cleanup(func() { _ = runtime.Close() })

	runtime.Logger.Debug("echoed")
	require.Contains(t, echo.String(), `"msg":"echoed"`)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, level)

	level, err = ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Path: filepath.Join(t.TempDir(), "log.jsonl"), Level: "loud"})
	require.Error(t, err)
}

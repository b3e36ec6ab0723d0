package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpersBeforeInit(t *testing.T) {
	prev := Logger
	Logger = nil
	t.Cleanup(func() { Logger = prev })

	assert.NotPanics(t, func() {
		Debug("debug")
		Info("info")
		Warn("warn")
		Error("error")
	})
}

func TestInit_WritesLogFile(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	dir := t.TempDir()
	require.NoError(t, Init(Config{ConfigDir: dir}))
	require.NotNil(t, Logger)

	Warn("history migrated", "entries", 3)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "mixcheck.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "history migrated")
}

func TestInit_Level(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	dir := t.TempDir()
	require.NoError(t, Init(Config{ConfigDir: dir, Level: "error"}))
	Warn("should be filtered")
	Error("should be written")

	data, err := os.ReadFile(filepath.Join(dir, "logs", "mixcheck.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should be filtered")
	assert.Contains(t, string(data), "should be written")
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	assert.Error(t, Init(Config{ConfigDir: t.TempDir(), Level: "loud"}))
}

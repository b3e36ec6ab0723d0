// Package clitest builds command contexts for tests.
package clitest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mixcheck/internal/cli"
	"github.com/julianstephens/mixcheck/internal/config"
	"github.com/julianstephens/mixcheck/internal/storage"
	"github.com/julianstephens/mixcheck/internal/storage/sqlite"
)

// Now is the fixed clock every harness context uses.
var Now = time.Date(2026, time.February, 20, 12, 0, 0, 0, time.Local)

type Harness struct {
	Ctx *cli.Context
	Out *bytes.Buffer
	Dir string
}

func newHarness(t testing.TB, store storage.Provider, conf *config.Config, input string) *Harness {
	t.Helper()
	out := &bytes.Buffer{}
	ctx := cli.NewContext(store, conf)
	ctx.Out = out
	ctx.In = strings.NewReader(input)
	ctx.Now = func() time.Time { return Now }
	return &Harness{Ctx: ctx, Out: out}
}

// New returns a harness over a loaded in-memory store. input is what the
// command reads from stdin.
func New(t testing.TB, input string) *Harness {
	t.Helper()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Init())
	return newHarness(t, store, nil, input)
}

// NewSQLite returns a harness over an initialized SQLite store in a temp
// directory, with the config (and so the lockfile) in the same directory.
func NewSQLite(t testing.TB, input string) *Harness {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "mixcheck.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	conf := &config.Config{
		Path:   filepath.Join(dir, config.FileName),
		Store:  store.GetConfigPath(),
		Log:    config.LogConfig{Level: "info"},
		Backup: config.BackupConfig{Auto: true},
	}
	h := newHarness(t, store, conf, input)
	h.Dir = dir
	return h
}

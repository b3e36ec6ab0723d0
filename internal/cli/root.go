package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/mixcheck/internal/backup"
	"github.com/julianstephens/mixcheck/internal/config"
	"github.com/julianstephens/mixcheck/internal/history"
	"github.com/julianstephens/mixcheck/internal/lock"
	"github.com/julianstephens/mixcheck/internal/logger"
	"github.com/julianstephens/mixcheck/internal/settings"
	"github.com/julianstephens/mixcheck/internal/storage"
	"github.com/julianstephens/mixcheck/internal/storage/sqlite"
)

// Context is handed to every command's Run method.
type Context struct {
	Store    storage.Provider
	History  *history.Store
	Settings *settings.Store
	Config   *config.Config

	Out io.Writer
	In  io.Reader
	Now func() time.Time
}

func NewContext(store storage.Provider, conf *config.Config) *Context {
	return &Context{
		Store:    store,
		History:  history.New(store),
		Settings: settings.New(store),
		Config:   conf,
		Out:      os.Stdout,
		In:       os.Stdin,
		Now:      time.Now,
	}
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// IsFileStore reports whether the store is a local file that can be backed up.
func (c *Context) IsFileStore() bool {
	switch c.Store.(type) {
	case *storage.JSONStore, *sqlite.Store:
		return true
	default:
		return false
	}
}

// PerformAutomaticBackup snapshots a file store when auto backups are enabled.
// Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if c.Config != nil && !c.Config.Backup.Auto {
		return
	}
	if !c.IsFileStore() {
		return
	}

	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// lockDir is where the single-writer lockfile lives.
func (c *Context) lockDir() string {
	if c.Config != nil {
		return c.Config.Dir()
	}
	if c.IsFileStore() {
		return filepath.Dir(c.Store.GetConfigPath())
	}
	return ""
}

// WithWriteLock runs fn while holding the store lock.
func (c *Context) WithWriteLock(fn func() error) error {
	dir := c.lockDir()
	if dir == "" {
		return fn()
	}

	l, err := lock.Acquire(dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	return fn()
}

// Confirm asks a yes/no question on In, defaulting to no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)

	reader := bufio.NewReader(c.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Package lock provides an advisory lockfile so only one mixcheck process
// writes to the store at a time.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/logger"
)

var ErrLocked = errors.New("another mixcheck process is using the store")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	nowFunc         = time.Now
)

// Lock is a held lockfile. The file holds "pid|executable".
type Lock struct {
	path string
	pid  int
}

type holder struct {
	pid        int
	executable string
}

// Acquire takes the lock in dir. A lockfile left by a process that is no
// longer running is reclaimed; a live holder yields ErrLocked.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockfileName)

	for attempt := 0; attempt < 2; attempt++ {
		l, err := create(path)
		if err == nil {
			return l, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		if !isStale(path) {
			return nil, ErrLocked
		}
		logger.Warn("Removing stale lockfile", "path", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}

	return nil, ErrLocked
}

func create(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pid := getpidFunc()
	if _, err := fmt.Fprintf(f, "%d|%s", pid, selfExecutable(pid)); err != nil {
		os.Remove(path)
		return nil, err
	}

	return &Lock{path: path, pid: pid}, nil
}

func selfExecutable(pid int) string {
	p, err := findProcessFunc(pid)
	if err != nil || p == nil {
		return filepath.Base(os.Args[0])
	}
	return p.Executable()
}

func parseHolder(content string) (holder, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 2 {
		return holder{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return holder{}, errors.New("invalid process ID in lockfile")
	}
	return holder{pid: pid, executable: parts[1]}, nil
}

// isStale reports whether the lockfile can be reclaimed. Unreadable content
// is only trusted as stale once it is older than LockStaleAfter, since a
// competing process may be between creating and writing the file.
func isStale(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return os.IsNotExist(err)
	}

	h, err := parseHolder(string(content))
	if err != nil {
		info, statErr := os.Stat(path)
		return statErr == nil && nowFunc().Sub(info.ModTime()) > constants.LockStaleAfter
	}

	process, err := findProcessFunc(h.pid)
	if err != nil || process == nil {
		return true
	}
	// A reused pid belongs to a different program
	return h.executable != "" && process.Executable() != h.executable
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}

	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	h, err := parseHolder(string(content))
	if err != nil || h.pid != l.pid {
		return nil
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Package lockfile enforces a single gateway instance per sandbox root.
// The lock is a small file keyed by the root path, holding the owning PID
// and an acquisition timestamp so crashed instances can be recovered from.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ErrLocked is returned when another live gateway already serves the root.
var ErrLocked = errors.New("another instance is serving this root")

// staleAfter bounds how long a lock from a still-running PID is honored.
// A reused PID on a rebooted machine would otherwise block forever.
const staleAfter = time.Hour

// Lockfile is a file-based instance lock.
type Lockfile struct {
	path   string
	file   *os.File
	locked bool
}

// PathForRoot derives the lock location for a sandbox root inside dir.
// Distinct roots get distinct locks; the same root always maps to the
// same file.
func PathForRoot(dir, root string) string {
	return filepath.Join(dir, fmt.Sprintf("%016x.lock", xxhash.Sum64String(root)))
}

// New creates a lock at the given path without acquiring it.
func New(path string) *Lockfile {
	return &Lockfile{path: path}
}

// TryAcquire takes the lock or fails with ErrLocked when a live instance
// holds it. Locks left behind by dead or expired processes are reclaimed.
func (l *Lockfile) TryAcquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if os.IsExist(err) {
		stale, holder := l.isStale()
		if !stale {
			return fmt.Errorf("%w: %s", ErrLocked, holder)
		}
		if err := os.Remove(l.path); err != nil {
			return fmt.Errorf("failed to remove stale lock: %w", err)
		}
		file, err = os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
		if err != nil {
			return fmt.Errorf("failed to recreate lock: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to create lock: %w", err)
	}

	content := fmt.Sprintf("%d\n%s\n", os.Getpid(), time.Now().Format(time.RFC3339))
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(l.path)
		return fmt.Errorf("failed to sync lock: %w", err)
	}

	l.file = file
	l.locked = true
	return nil
}

// isStale reports whether the existing lock can be reclaimed, and if not,
// who holds it.
func (l *Lockfile) isStale() (bool, string) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return true, ""
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return true, ""
	}

	if !isProcessRunning(pid) {
		return true, ""
	}

	if len(lines) >= 2 {
		if acquired, err := time.Parse(time.RFC3339, strings.TrimSpace(lines[1])); err == nil {
			if time.Since(acquired) > staleAfter {
				return true, ""
			}
		}
	}

	return false, fmt.Sprintf("pid %d", pid)
}

// Release drops the lock and removes its file. Releasing an unheld lock
// is a no-op.
func (l *Lockfile) Release() error {
	if !l.locked {
		return nil
	}
	l.locked = false

	var err error
	if l.file != nil {
		err = l.file.Close()
		l.file = nil
	}
	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) && err == nil {
		err = removeErr
	}
	return err
}

// Path returns the lock file location.
func (l *Lockfile) Path() string {
	return l.path
}

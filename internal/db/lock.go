package db

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to the database path to form the lock file path.
const LockSuffix = ".lock"

// ErrLocked is returned when another process holds the run lock.
var ErrLocked = errors.New("database is locked by another reconciliation run")

// RunLock holds an exclusive file lock for the duration of a run. The
// engine assumes exclusive access to the database file; the lock turns
// that precondition into an enforced one.
type RunLock struct {
	fl *flock.Flock
}

// AcquireLock takes the exclusive lock for the given database file
// without blocking. ErrLocked is returned when it is already held.
func AcquireLock(dbPath string) (*RunLock, error) {
	fl := flock.New(dbPath + LockSuffix)

	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, fl.Path())
	}

	return &RunLock{fl: fl}, nil
}

// Release drops the lock. The lock file itself is left in place.
func (l *RunLock) Release() error {
	return l.fl.Unlock()
}

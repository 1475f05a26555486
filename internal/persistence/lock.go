package persistence

import (
	"fmt"

	"github.com/gofrs/flock"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
)

// Lock is an advisory lock held on a sibling of the store file.
type Lock struct {
	path string
	lock *flock.Flock
}

// LockPath returns the lock file used for path.
func LockPath(path string) string {
	return path + constants.LockSuffix
}

// Acquire takes the lock for path without blocking. It fails with an error
// matching errors.ErrLocked when another process holds it.
func Acquire(path string) (*Lock, error) {
	lockPath := LockPath(path)
	l := &Lock{path: lockPath, lock: flock.New(lockPath)}

	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, errors.WrapIO("lock", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s is held by another process: %w", lockPath, errors.ErrLocked)
	}
	return l, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. It is safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return errors.WrapIO("unlock", l.path, err)
	}
	return nil
}

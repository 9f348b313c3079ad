package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	freckleerrors "freckle.dev/freckle/internal/errors"
)

// lockRetryDelay is how often a held lock is retried while waiting
const lockRetryDelay = 100 * time.Millisecond

// StoreLock is an advisory lock that serializes freckle processes working on
// the same metadata store. It lives next to the store so it can be taken
// before the store exists.
type StoreLock struct {
	fl *flock.Flock
}

// LockPath returns the lock file used for the store at storeDir
func LockPath(storeDir string) string {
	return filepath.Clean(storeDir) + ".lock"
}

// AcquireStoreLock takes the lock for storeDir, waiting up to wait for
// another process to release it. It returns ErrLocked when the wait expires.
func AcquireStoreLock(ctx context.Context, storeDir string, wait time.Duration) (*StoreLock, error) {
	path := LockPath(storeDir)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(path)
	if wait <= 0 {
		locked, err := fl.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquiring store lock %s: %w", path, err)
		}
		if !locked {
			return nil, freckleerrors.ErrLocked
		}
		return &StoreLock{fl: fl}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("acquiring store lock %s: %w", path, err)
	}
	if !locked {
		return nil, freckleerrors.ErrLocked
	}
	return &StoreLock{fl: fl}, nil
}

// Release gives the lock up
func (l *StoreLock) Release() error {
	return l.fl.Unlock()
}

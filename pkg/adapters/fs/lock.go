package fs

import (
	"context"
	"fmt"
	"os"
	"time"
)

// LockFileName is created next to the data files while a write is in flight.
const LockFileName = ".scribe.lock"

// lockRetry is the spin interval while another process holds the lock.
const lockRetry = 10 * time.Millisecond

// acquireLock takes the cross-process write lock for the data directory.
// It blocks until the lock is free or ctx is done, and returns the unlock func.
func (s *Store) acquireLock(ctx context.Context) (func(), error) {
	for {
		f, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0666)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() {
				os.Remove(s.lockPath)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		if s.breakStaleLock() {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock %s: %w", s.lockPath, ctx.Err())
		case <-time.After(lockRetry):
		}
	}
}

// breakStaleLock removes a lock file older than the configured timeout,
// left behind by a crashed writer.
func (s *Store) breakStaleLock() bool {
	if s.config.StaleLockAfter <= 0 {
		return false
	}
	info, err := os.Stat(s.lockPath)
	if err != nil {
		return os.IsNotExist(err)
	}
	if time.Since(info.ModTime()) < s.config.StaleLockAfter {
		return false
	}
	s.logger.Warn("breaking stale lock", "path", s.lockPath, "age", time.Since(info.ModTime()))
	return os.Remove(s.lockPath) == nil
}

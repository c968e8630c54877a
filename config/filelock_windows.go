//go:build windows

package config

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// Lock acquires an exclusive lock on the file.
// This blocks until the lock is available.
func (l *FileLock) Lock() error {
	return l.acquire(os.O_CREATE|os.O_RDWR, windows.LOCKFILE_EXCLUSIVE_LOCK, "exclusive")
}

// RLock acquires a shared (read) lock on the file.
// Multiple processes can hold a shared lock simultaneously.
// This blocks until the lock is available.
func (l *FileLock) RLock() error {
	// No flags = shared lock
	return l.acquire(os.O_CREATE|os.O_RDONLY, 0, "shared")
}

func (l *FileLock) acquire(flag int, lockFlags uint32, kind string) error {
	if l.file != nil {
		return fmt.Errorf("lock already held")
	}

	f, err := os.OpenFile(l.path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(windows.Handle(f.Fd()), lockFlags, 0, 1, 0, ol); err != nil {
		f.Close()
		return fmt.Errorf("failed to acquire %s lock: %w", kind, err)
	}

	l.file = f
	return nil
}

// Unlock releases the lock on the file.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	ol := new(windows.Overlapped)
	if err := windows.UnlockFileEx(windows.Handle(l.file.Fd()), 0, 1, 0, ol); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}

	l.file = nil
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"strings"
)

// FileLock provides file-based locking for cross-process synchronization.
// It uses a separate lock file rather than locking the data file directly,
// because the data file is replaced by rename on every save.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a new FileLock for the given path.
// The lock file sits next to the data file: state.json locks state.lock.
func NewFileLock(path string) *FileLock {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &FileLock{
		path: filepath.Join(filepath.Dir(path), base+".lock"),
	}
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

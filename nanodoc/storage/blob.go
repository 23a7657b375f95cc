package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Constants for file locking
const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// FileBlob stores a blob as a JSON file guarded by a sibling .lock file
type FileBlob struct {
	path        string
	fs          FileSystem
	lockFactory FileLockFactory
	fileLock    FileLock
}

// BlobOption is a function that modifies FileBlob configuration
type BlobOption func(*FileBlob)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) BlobOption {
	return func(b *FileBlob) {
		b.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) BlobOption {
	return func(b *FileBlob) {
		b.lockFactory = factory
	}
}

// NewFileBlob creates a blob backed by the file at path
func NewFileBlob(path string, opts ...BlobOption) *FileBlob {
	b := &FileBlob{path: path}
	for _, opt := range opts {
		opt(b)
	}

	if b.fs == nil {
		b.fs = OSFileSystem{}
	}
	if b.lockFactory == nil {
		b.lockFactory = FlockFactory{}
	}
	b.fileLock = b.lockFactory.New(path + ".lock")

	return b
}

// Name implements Blob.Name
func (b *FileBlob) Name() string {
	return b.path
}

// Path returns the file backing the blob
func (b *FileBlob) Path() string {
	return b.path
}

// Load implements Blob.Load
func (b *FileBlob) Load() ([]byte, error) {
	var data []byte
	err := b.withLock(func() error {
		if _, err := b.fs.Stat(b.path); errors.Is(err, os.ErrNotExist) {
			return nil
		}

		raw, err := b.fs.ReadFile(b.path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", b.path, err)
		}
		data = raw
		return nil
	})
	return data, err
}

// Save implements Blob.Save. The data is written to a temp file which is
// then renamed over the target.
func (b *FileBlob) Save(data []byte) error {
	return b.withLock(func() error {
		tmpFile := b.path + ".tmp"
		if err := b.fs.WriteFile(tmpFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write temp file: %w", err)
		}

		if err := b.fs.Rename(tmpFile, b.path); err != nil {
			_ = b.fs.Remove(tmpFile)
			return fmt.Errorf("failed to rename file: %w", err)
		}
		return nil
	})
}

// Remove implements Blob.Remove
func (b *FileBlob) Remove() error {
	return b.withLock(func() error {
		if err := b.fs.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", b.path, err)
		}
		return nil
	})
}

// withLock runs fn while holding the cross-process file lock.
// The lock file lives next to the blob, so the directory is created first.
func (b *FileBlob) withLock(fn func() error) error {
	if dir := filepath.Dir(b.path); dir != "." && dir != "" {
		if err := b.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := b.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = b.fileLock.Unlock() }()

	return fn()
}

// acquireLock attempts to acquire an exclusive file lock with retry logic
func (b *FileBlob) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := b.fileLock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	return fmt.Errorf("failed to acquire lock on %s after %d attempts", b.path, lockMaxRetries)
}

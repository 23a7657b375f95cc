package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func newMockBlob(path string) (*FileBlob, *MockFileSystem, *MockFileLockFactory) {
	mockFS := NewMockFileSystem()
	locks := NewMockFileLockFactory()
	blob := NewFileBlob(path, WithFileSystem(mockFS), WithFileLockFactory(locks))
	return blob, mockFS, locks
}

func TestFileBlobWithMockFS(t *testing.T) {
	t.Run("missing blob loads as nil", func(t *testing.T) {
		blob, _, _ := newMockBlob("data/documents.json")

		data, err := blob.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if data != nil {
			t.Errorf("expected nil data, got %q", data)
		}
	})

	t.Run("save then load round trips", func(t *testing.T) {
		blob, mockFS, locks := newMockBlob("data/documents.json")

		if err := blob.Save([]byte(`{"a":1}`)); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		data, err := blob.Load()
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if string(data) != `{"a":1}` {
			t.Errorf("unexpected content %q", data)
		}

		if mockFS.FileExists("data/documents.json.tmp") {
			t.Error("temp file should not exist after successful write")
		}
		if !mockFS.DirExists("data") {
			t.Error("expected parent directory to be created")
		}

		lock := locks.GetLock("data/documents.json.lock")
		if lock == nil {
			t.Fatal("expected lock to be created")
		}
		if lock.IsLocked() {
			t.Error("lock should be released after operations")
		}
		if lock.LockAttempts != 2 || lock.UnlockAttempts != 2 {
			t.Errorf("expected 2 lock/unlock pairs, got %d/%d", lock.LockAttempts, lock.UnlockAttempts)
		}
	})

	t.Run("rename failure removes temp file", func(t *testing.T) {
		blob, mockFS, _ := newMockBlob("documents.json")
		mockFS.RenameError = errors.New("rename failed")

		err := blob.Save([]byte("x"))
		if !errors.Is(err, mockFS.RenameError) {
			t.Fatalf("expected rename error, got %v", err)
		}
		if mockFS.FileExists("documents.json.tmp") {
			t.Error("temp file should be cleaned up")
		}
		if mockFS.FileExists("documents.json") {
			t.Error("target should not exist")
		}
	})

	t.Run("read errors propagate", func(t *testing.T) {
		blob, mockFS, _ := newMockBlob("documents.json")
		mockFS.SetFileContent("documents.json", []byte("x"))
		mockFS.ReadFileError = errors.New("disk read error")

		_, err := blob.Load()
		if !errors.Is(err, mockFS.ReadFileError) {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("lock held elsewhere fails after retries", func(t *testing.T) {
		blob, _, locks := newMockBlob("documents.json")
		lock := locks.GetLock("documents.json.lock")
		lock.Hold()

		if err := blob.Save([]byte("x")); err == nil {
			t.Fatal("expected lock acquisition error")
		}
		if lock.LockAttempts != lockMaxRetries {
			t.Errorf("expected %d attempts, got %d", lockMaxRetries, lock.LockAttempts)
		}
	})

	t.Run("lock errors propagate", func(t *testing.T) {
		blob, _, locks := newMockBlob("documents.json")
		lockErr := errors.New("no locks today")
		locks.GetLock("documents.json.lock").SetLockError(lockErr)

		if _, err := blob.Load(); !errors.Is(err, lockErr) {
			t.Errorf("expected lock error, got %v", err)
		}
	})

	t.Run("remove tolerates missing blob", func(t *testing.T) {
		blob, mockFS, _ := newMockBlob("settings.json")
		if err := blob.Remove(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mockFS.SetFileContent("settings.json", []byte("{}"))
		if err := blob.Remove(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mockFS.FileExists("settings.json") {
			t.Error("expected blob to be removed")
		}
	})
}

func TestFileBlobOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "documents.json")
	blob := NewFileBlob(path)

	if blob.Name() != path || blob.Path() != path {
		t.Errorf("unexpected name %q", blob.Name())
	}

	if err := blob.Save([]byte("[]")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	data, err := blob.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("unexpected content %q", data)
	}

	if err := blob.Remove(); err != nil {
		t.Fatalf("failed to remove: %v", err)
	}
	data, err = blob.Load()
	if err != nil || data != nil {
		t.Errorf("expected missing blob after remove, got %q, %v", data, err)
	}
}

// Package testutil loads a shared document library into an in-memory store
// for tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/nanodoc/store"
	"github.com/arthur-debert/nanodoc/types"
)

// LibraryBlobPath is where the fixture lives on the mock file system
const LibraryBlobPath = "data/documents.json"

// Library provides typed access to the fixture documents
type Library struct {
	Welcome    types.Document // Heading and paragraph
	WeeklySync types.Document // List content, modified after creation
	Budget     types.Document // Inline markup
	Untitled   types.Document // Default title, empty content
	Recipes    types.Document // Non-ASCII title and content

	// All documents in stored order, newest-created first
	All  []types.Document
	ByID map[string]types.Document

	FS *storage.MockFileSystem
}

// fixturePath locates testdata/library.json relative to this file, so tests
// in any package can load it
func fixturePath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate fixture directory")
	}
	return filepath.Join(filepath.Dir(file), "..", "testdata", "library.json")
}

// LoadLibrary returns a store opened over the fixture, backed by a mock
// file system
func LoadLibrary(t *testing.T, opts ...store.Option) (*store.JSONStore, *Library) {
	t.Helper()

	raw, err := os.ReadFile(fixturePath(t))
	if err != nil {
		t.Fatalf("failed to read fixture file: %v", err)
	}
	data, err := storage.DecodeStoreData(raw)
	if err != nil {
		t.Fatalf("failed to decode fixture file: %v", err)
	}

	fs := storage.NewMockFileSystem()
	fs.SetFileContent(LibraryBlobPath, raw)
	blob := storage.NewFileBlob(LibraryBlobPath,
		storage.WithFileSystem(fs),
		storage.WithFileLockFactory(storage.NewMockFileLockFactory()))

	s, err := store.New(blob, opts...)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	lib := &Library{
		All:  data.Documents,
		ByID: make(map[string]types.Document, len(data.Documents)),
		FS:   fs,
	}
	for _, doc := range data.Documents {
		lib.ByID[doc.ID] = doc
	}
	if len(data.Documents) != 5 {
		t.Fatalf("fixture should hold 5 documents, got %d", len(data.Documents))
	}
	lib.Welcome = data.Documents[0]
	lib.WeeklySync = data.Documents[1]
	lib.Budget = data.Documents[2]
	lib.Untitled = data.Documents[3]
	lib.Recipes = data.Documents[4]

	return s, lib
}

// AssertDocumentCount checks the number of documents
func AssertDocumentCount(t *testing.T, docs []types.Document, want int, context string) {
	t.Helper()
	if len(docs) != want {
		t.Errorf("expected %d documents %s, got %d", want, context, len(docs))
	}
}

// AssertDocumentExists checks that id is among docs
func AssertDocumentExists(t *testing.T, docs []types.Document, id string) {
	t.Helper()
	for _, doc := range docs {
		if doc.ID == id {
			return
		}
	}
	t.Errorf("expected document %s to be present", id)
}

// AssertDocumentNotExists checks that id is absent from docs
func AssertDocumentNotExists(t *testing.T, docs []types.Document, id string) {
	t.Helper()
	for _, doc := range docs {
		if doc.ID == id {
			t.Errorf("expected document %s to be absent", id)
			return
		}
	}
}

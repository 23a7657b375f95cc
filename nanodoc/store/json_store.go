package store

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/types"
	"github.com/google/uuid"
)

// JSONStore implements Store on top of a storage.Blob holding the whole
// collection as JSON. Every mutating operation rewrites the blob before
// returning. When that write fails the in-memory change has already been
// applied and the error is returned to the caller.
type JSONStore struct {
	blob        storage.Blob
	lockManager *storage.LockManager
	logger      *slog.Logger
	timeFunc    func() time.Time
	idFunc      func() string

	documents []types.Document
	currentID string // empty when no document is current
}

var _ Store = (*JSONStore)(nil)

// New creates a store and loads the collection from blob. A missing or
// corrupt blob starts an empty collection; only read failures are returned.
func New(blob storage.Blob, opts ...Option) (*JSONStore, error) {
	s := &JSONStore{
		blob:        blob,
		lockManager: storage.NewLockManager(),
		logger:      slog.Default(),
		timeFunc:    time.Now,
		idFunc:      uuid.NewString,
		documents:   []types.Document{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	return s, nil
}

// load reads the blob into memory. Caller must not hold the lock.
func (s *JSONStore) load() error {
	raw, err := s.blob.Load()
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	data, err := storage.DecodeStoreData(raw)
	if err != nil {
		s.logger.Warn("corrupt documents blob, starting with an empty collection",
			"blob", s.blob.Name(),
			"error", err)
		return nil
	}

	seen := make(map[string]bool, len(data.Documents))
	for _, doc := range data.Documents {
		if doc.ID == "" || seen[doc.ID] {
			s.logger.Warn("skipping document with missing or duplicate id",
				"blob", s.blob.Name(),
				"id", doc.ID,
				"title", doc.Title)
			continue
		}
		seen[doc.ID] = true
		s.documents = append(s.documents, doc)
	}

	s.logger.Debug("documents loaded", "blob", s.blob.Name(), "count", len(s.documents))
	return nil
}

// persist writes the whole collection. Caller must hold the write lock.
func (s *JSONStore) persist() error {
	raw, err := storage.EncodeStoreData(&storage.StoreData{
		Documents: s.documents,
		Metadata: storage.Metadata{
			Version:   storage.FormatVersion,
			UpdatedAt: s.timeFunc(),
		},
	})
	if err != nil {
		return err
	}

	if err := s.blob.Save(raw); err != nil {
		return fmt.Errorf("failed to persist documents: %w", err)
	}
	return nil
}

// CreateDocument implements Store.CreateDocument
func (s *JSONStore) CreateDocument(title string) (types.Document, error) {
	return storage.ExecuteWithResult(s.lockManager, storage.WriteOperation, func() (types.Document, error) {
		doc := s.insertNew(title)
		s.logger.Debug("document created", "id", doc.ID, "title", doc.Title)
		return doc, s.persist()
	})
}

// insertNew allocates a document at the front and makes it current.
// Caller must hold the write lock.
func (s *JSONStore) insertNew(title string) types.Document {
	if title == "" {
		title = types.DefaultTitle
	}

	now := s.timeFunc()
	doc := types.Document{
		ID:           s.nextID(),
		Title:        title,
		Content:      "",
		Created:      now,
		LastModified: now,
	}

	s.documents = slices.Insert(s.documents, 0, doc)
	s.currentID = doc.ID
	return doc
}

// nextID returns an id not yet present in the collection
func (s *JSONStore) nextID() string {
	for {
		id := s.idFunc()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// OpenDocument implements Store.OpenDocument
func (s *JSONStore) OpenDocument(id string) (types.Document, error) {
	return storage.ExecuteWithResult(s.lockManager, storage.WriteOperation, func() (types.Document, error) {
		idx := s.indexOf(id)
		if idx < 0 {
			return types.Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		s.currentID = id
		return s.documents[idx], nil
	})
}

// SaveCurrentDocument implements Store.SaveCurrentDocument
func (s *JSONStore) SaveCurrentDocument(content string) (types.Document, error) {
	return storage.ExecuteWithResult(s.lockManager, storage.WriteOperation, func() (types.Document, error) {
		idx := s.indexOf(s.currentID)
		if idx < 0 {
			created := s.insertNew("")
			s.logger.Debug("document created on save", "id", created.ID)
			idx = 0
		}

		doc := &s.documents[idx]
		doc.Content = content
		doc.LastModified = s.stamp(doc.LastModified)

		return *doc, s.persist()
	})
}

// RenameDocument implements Store.RenameDocument
func (s *JSONStore) RenameDocument(id, title string) error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		idx := s.indexOf(id)
		if idx < 0 {
			return nil
		}

		doc := &s.documents[idx]
		doc.Title = title
		doc.LastModified = s.stamp(doc.LastModified)

		return s.persist()
	})
}

// DeleteDocument implements Store.DeleteDocument
func (s *JSONStore) DeleteDocument(id string) error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		idx := s.indexOf(id)
		if idx < 0 {
			return nil
		}

		s.documents = slices.Delete(s.documents, idx, idx+1)
		if s.currentID == id {
			s.currentID = ""
		}
		s.logger.Debug("document deleted", "id", id)

		return s.persist()
	})
}

// CurrentDocument implements Store.CurrentDocument
func (s *JSONStore) CurrentDocument() (types.Document, bool) {
	var (
		doc types.Document
		ok  bool
	)
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		if idx := s.indexOf(s.currentID); idx >= 0 {
			doc, ok = s.documents[idx], true
		}
		return nil
	})
	return doc, ok
}

// AllDocuments implements Store.AllDocuments
func (s *JSONStore) AllDocuments() []types.Document {
	var docs []types.Document
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		docs = slices.Clone(s.documents)
		return nil
	})
	if docs == nil {
		docs = []types.Document{}
	}
	return docs
}

// Document implements Store.Document
func (s *JSONStore) Document(id string) (types.Document, error) {
	return storage.ExecuteWithResult(s.lockManager, storage.ReadOperation, func() (types.Document, error) {
		idx := s.indexOf(id)
		if idx < 0 {
			return types.Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return s.documents[idx], nil
	})
}

// indexOf returns the position of id, or -1
func (s *JSONStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.documents, func(d types.Document) bool {
		return d.ID == id
	})
}

// stamp returns the modification time for a mutation, never earlier than prev
func (s *JSONStore) stamp(prev time.Time) time.Time {
	now := s.timeFunc()
	if now.Before(prev) {
		return prev
	}
	return now
}

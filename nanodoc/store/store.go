// Package store owns the document collection, the current-document pointer
// and their persistence to a single blob.
package store

import (
	"errors"

	"github.com/arthur-debert/nanodoc/types"
)

// ErrNotFound is returned when an id is absent from the collection
var ErrNotFound = errors.New("document not found")

// Store defines the document lifecycle operations.
// Every returned Document is a copy; mutating it does not affect the store.
type Store interface {
	// CreateDocument inserts a new empty document at the front of the
	// collection and makes it current. An empty title uses types.DefaultTitle.
	CreateDocument(title string) (types.Document, error)

	// OpenDocument makes the document with id current. A missing id returns
	// ErrNotFound and leaves the current document unchanged.
	OpenDocument(id string) (types.Document, error)

	// SaveCurrentDocument replaces the content of the current document,
	// creating one first when none is current.
	SaveCurrentDocument(content string) (types.Document, error)

	// RenameDocument sets the title of id. A missing id is a no-op.
	RenameDocument(id, title string) error

	// DeleteDocument removes id from the collection. Deleting the current
	// document leaves no document current; a missing id is a no-op.
	DeleteDocument(id string) error

	// CurrentDocument returns the current document, if any
	CurrentDocument() (types.Document, bool)

	// AllDocuments returns the collection, newest-created first
	AllDocuments() []types.Document

	// Document looks up id without changing the current document
	Document(id string) (types.Document, error)
}

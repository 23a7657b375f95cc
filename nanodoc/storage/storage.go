// Package storage provides the persistence layer for nanodoc.
// Every durable record is a named Blob that is read and rewritten whole;
// there is no incremental persistence.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arthur-debert/nanodoc/types"
)

// FormatVersion is written into the metadata of every documents blob
const FormatVersion = "1.0"

// Blob is a single named durable record.
type Blob interface {
	// Name identifies the blob in logs and errors
	Name() string

	// Load returns the stored bytes. A blob that was never written
	// returns nil data and a nil error.
	Load() ([]byte, error)

	// Save replaces the stored bytes
	Save(data []byte) error

	// Remove deletes the record. Removing a missing blob is not an error.
	Remove() error
}

// StoreData is the envelope written to the documents blob
type StoreData struct {
	Documents []types.Document `json:"documents"`
	Metadata  Metadata         `json:"metadata"`
}

// Metadata contains storage metadata
type Metadata struct {
	Version   string    `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EncodeStoreData marshals the envelope with indentation
func EncodeStoreData(data *StoreData) ([]byte, error) {
	if data.Documents == nil {
		data.Documents = []types.Document{}
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal documents: %w", err)
	}
	return out, nil
}

// DecodeStoreData parses a documents blob. Besides the envelope it accepts a
// bare JSON array of documents, the layout earlier versions wrote.
func DecodeStoreData(raw []byte) (*StoreData, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &StoreData{Documents: []types.Document{}}, nil
	}

	if trimmed[0] == '[' {
		var docs []types.Document
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("failed to parse document list: %w", err)
		}
		return &StoreData{Documents: docs}, nil
	}

	var data StoreData
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return nil, fmt.Errorf("failed to parse documents: %w", err)
	}
	if data.Documents == nil {
		data.Documents = []types.Document{}
	}
	return &data, nil
}

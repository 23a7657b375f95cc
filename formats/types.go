// Package formats converts documents to and from portable text files.
//
// A format writes an optional metadata header, the title, and the content.
// Content is carried verbatim; no format interprets the engine's markup.
package formats

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrEmptyDocument is returned when a file has neither a title nor content
var ErrEmptyDocument = errors.New("empty document: both title and content are empty")

// Metadata is the header block of a serialized document
type Metadata map[string]any

// DocumentFormat defines how documents are serialized and deserialized
type DocumentFormat struct {
	// Name is the format identifier (lowercase alphanumeric, dashes, underscores)
	Name string

	// Extension is the file extension including the dot (e.g., ".txt", ".md")
	Extension string

	// Serialize renders title, content and an optional metadata header
	Serialize func(title, content string, metadata Metadata) string

	// Deserialize splits a file back into its parts. The title is empty when
	// none is found; metadata is nil when the file has no header.
	Deserialize func(document string) (title, content string, metadata Metadata, err error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*DocumentFormat)
)

// Register adds a document format to the registry
func Register(format *DocumentFormat) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}
	if format.Serialize == nil || format.Deserialize == nil {
		return fmt.Errorf("format %q must define Serialize and Deserialize", format.Name)
	}

	if !strings.HasPrefix(format.Extension, ".") {
		format.Extension = "." + format.Extension
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}
	registry[format.Name] = format
	return nil
}

// Get returns a document format by name
func Get(name string) (*DocumentFormat, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(listLocked(), ", "))
	}
	return format, nil
}

// ForExtension returns the format registered for ext, e.g. ".md"
func ForExtension(ext string) (*DocumentFormat, error) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range listLocked() {
		if registry[name].Extension == ext {
			return registry[name], nil
		}
	}
	return nil, fmt.Errorf("no format for extension %q", ext)
}

// List returns all registered format names in sorted order
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return listLocked()
}

func listLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

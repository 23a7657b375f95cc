package formats

import (
	"fmt"
	"time"

	"github.com/arthur-debert/nanodoc/types"
)

// Header keys written by Export
const (
	MetaID           = "id"
	MetaCreated      = "created"
	MetaLastModified = "lastModified"
)

// Export renders doc in the named format with an id/created/lastModified
// header
func Export(doc types.Document, formatName string) (string, error) {
	format, err := Get(formatName)
	if err != nil {
		return "", err
	}

	metadata := Metadata{MetaID: doc.ID}
	if !doc.Created.IsZero() {
		metadata[MetaCreated] = doc.Created.UTC().Format(time.RFC3339)
	}
	if !doc.LastModified.IsZero() {
		metadata[MetaLastModified] = doc.LastModified.UTC().Format(time.RFC3339)
	}
	return format.Serialize(doc.Title, doc.Content, metadata), nil
}

// Import parses text in the named format. A missing title becomes
// types.DefaultTitle; header values that are present are carried over.
func Import(text, formatName string) (types.Document, error) {
	format, err := Get(formatName)
	if err != nil {
		return types.Document{}, err
	}

	title, content, metadata, err := format.Deserialize(text)
	if err != nil {
		return types.Document{}, err
	}
	if title == "" {
		title = types.DefaultTitle
	}

	doc := types.Document{Title: title, Content: content}
	if id, ok := metadata[MetaID]; ok {
		doc.ID = fmt.Sprint(id)
	}
	if doc.Created, err = metaTime(metadata, MetaCreated); err != nil {
		return types.Document{}, err
	}
	if doc.LastModified, err = metaTime(metadata, MetaLastModified); err != nil {
		return types.Document{}, err
	}
	return doc, nil
}

// metaTime reads key as a time. Headers may hold either a parsed time or
// the RFC3339 string, depending on the format.
func metaTime(metadata Metadata, key string) (time.Time, error) {
	switch v := metadata[key].(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid %s header %q: %w", key, v, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("invalid %s header %v", key, v)
	}
}

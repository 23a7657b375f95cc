package types

import (
	"strings"
	"time"
)

// DefaultTitle is the title given to documents created without one
const DefaultTitle = "Untitled Document"

// Document is a titled, timestamped unit of rich-text content.
// Content is the engine's serialized form and is never parsed by the store.
type Document struct {
	ID           string    `json:"id" yaml:"id"`                     // Stable identifier, set once at creation
	Title        string    `json:"title" yaml:"title"`               // Human-readable title
	Content      string    `json:"content" yaml:"content"`           // Serialized rich text
	Created      time.Time `json:"created" yaml:"created"`           // Creation timestamp
	LastModified time.Time `json:"lastModified" yaml:"lastModified"` // Last content or title change
}

// Summary returns a one-line preview of the content with markup removed,
// truncated to max runes. A max of zero or less returns the full text.
func (d Document) Summary(max int) string {
	text := d.PlainText()
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}

// PlainText returns the content with markup removed and whitespace collapsed
func (d Document) PlainText() string {
	return strings.Join(strings.Fields(stripTags(d.Content)), " ")
}

// stripTags removes anything between angle brackets
func stripTags(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
			b.WriteRune(' ')
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

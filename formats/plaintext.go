package formats

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// PlainText format
//
//	key: value     (optional header, one pair per line)
//	---
//
//	Title
//
//	content
var PlainText = &DocumentFormat{
	Name:      "plaintext",
	Extension: ".txt",
	Serialize: func(title, content string, metadata Metadata) string {
		var b strings.Builder

		if len(metadata) > 0 {
			for _, key := range sortedKeys(metadata) {
				b.WriteString(key)
				b.WriteString(": ")
				b.WriteString(formatValue(metadata[key]))
				b.WriteString("\n")
			}
			b.WriteString("---\n\n")
		}

		if title != "" {
			b.WriteString(title)
			b.WriteString("\n\n")
		}
		b.WriteString(content)
		return b.String()
	},
	Deserialize: func(document string) (string, string, Metadata, error) {
		if strings.TrimSpace(document) == "" {
			return "", "", nil, ErrEmptyDocument
		}

		lines := strings.Split(document, "\n")
		var metadata Metadata
		if hasHeader(lines) {
			var start int
			metadata, start = parseHeader(lines)
			lines = lines[start:]
		}

		// exactly one blank line separates the title; the rest is
		// content, kept verbatim
		if len(lines) >= 2 && isBlankLine(lines[1]) {
			title := strings.TrimSpace(lines[0])
			content := strings.Join(lines[2:], "\n")

			if title == "" && content == "" {
				return "", "", nil, ErrEmptyDocument
			}
			return title, content, metadata, nil
		}

		return "", strings.Join(lines, "\n"), metadata, nil
	},
}

func init() {
	if err := Register(PlainText); err != nil {
		panic(fmt.Sprintf("failed to register PlainText format: %v", err))
	}
}

// hasHeader reports whether the document opens with "key: value" lines
// followed by a --- separator
func hasHeader(lines []string) bool {
	if len(lines) < 2 || !strings.Contains(lines[0], ": ") {
		return false
	}
	for i := 1; i < len(lines) && i < 20; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "---" {
			return true
		}
		if !strings.Contains(line, ": ") {
			return false
		}
	}
	return false
}

// parseHeader reads the header and returns the index where the body starts
func parseHeader(lines []string) (Metadata, int) {
	metadata := make(Metadata)
	i := 0
	for ; i < len(lines) && strings.TrimSpace(lines[i]) != "---"; i++ {
		key, value, ok := strings.Cut(lines[i], ": ")
		if ok {
			metadata[strings.TrimSpace(key)] = parseValue(strings.TrimSpace(value))
		}
	}

	start := i + 1
	for start < len(lines) && isBlankLine(lines[start]) {
		start++
	}
	return metadata, start
}

func sortedKeys(m Metadata) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func formatValue(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseValue recovers times, bools and numbers from header values
func parseValue(s string) any {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// isBlankLine checks if a line contains only whitespace
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

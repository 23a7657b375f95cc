package formats

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// markdownTitleRegex matches an h1 at the very start of a line
var markdownTitleRegex = regexp.MustCompile(`^#\s+(.+?)\s*$`)

// Markdown format: optional YAML front matter, then "# Title", a blank
// line and the content.
var Markdown = &DocumentFormat{
	Name:      "markdown",
	Extension: ".md",
	Serialize: func(title, content string, metadata Metadata) string {
		var b strings.Builder

		if len(metadata) > 0 {
			front, err := yaml.Marshal(map[string]any(metadata))
			if err == nil {
				b.WriteString("---\n")
				b.Write(front)
				b.WriteString("---\n\n")
			}
		}

		if title != "" {
			b.WriteString("# ")
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

		metadata, body, err := splitFrontMatter(document)
		if err != nil {
			return "", "", nil, err
		}

		lines := strings.Split(body, "\n")
		matches := markdownTitleRegex.FindStringSubmatch(lines[0])
		if len(matches) < 2 {
			return "", body, metadata, nil
		}

		title := strings.TrimSpace(matches[1])
		start := 1
		if len(lines) > 1 && isBlankLine(lines[1]) {
			start = 2
		}
		return title, strings.Join(lines[start:], "\n"), metadata, nil
	},
}

func init() {
	if err := Register(Markdown); err != nil {
		panic(fmt.Sprintf("failed to register Markdown format: %v", err))
	}
}

// splitFrontMatter separates a leading ---/--- YAML block from the body
func splitFrontMatter(document string) (Metadata, string, error) {
	if !strings.HasPrefix(document, "---\n") {
		return nil, document, nil
	}

	rest := document[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, document, nil
	}

	var metadata Metadata
	if err := yaml.Unmarshal([]byte(rest[:end]), &metadata); err != nil {
		return nil, "", fmt.Errorf("invalid front matter: %w", err)
	}

	body := rest[end+len("\n---"):]
	body = strings.TrimLeft(strings.TrimPrefix(body, "\n"), "\n")
	return metadata, body, nil
}

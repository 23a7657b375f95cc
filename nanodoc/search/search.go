// Package search finds documents whose title or text contains a query and
// ranks them by where and how well they match.
package search

import (
	"fmt"
	"slices"
	"unicode"

	"github.com/arthur-debert/nanodoc/types"
)

// Searchable fields
const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// MatchType describes where the best match was found
type MatchType string

const (
	MatchExactTitle     MatchType = "exact_title"
	MatchPartialTitle   MatchType = "partial_title"
	MatchExactContent   MatchType = "exact_content"
	MatchPartialContent MatchType = "partial_content"
)

// Options configures a search
type Options struct {
	// Query is the text to look for; an empty query matches nothing
	Query string

	// Fields limits the search to FieldTitle and/or FieldContent.
	// Empty searches both.
	Fields []string

	CaseSensitive bool

	// ExactMatch requires the whole field to equal the query
	ExactMatch bool

	// Highlight wraps each match in StartMarker/EndMarker ("**" by default)
	Highlight   bool
	StartMarker string
	EndMarker   string

	// MaxResults limits the result count when positive
	MaxResults int
}

// Result is one matching document
type Result struct {
	Document      types.Document    `json:"document" yaml:"document"`
	Score         float64           `json:"score" yaml:"score"`
	MatchType     MatchType         `json:"matchType" yaml:"matchType"`
	MatchedFields []string          `json:"matchedFields" yaml:"matchedFields"`
	Highlights    map[string]string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// DocumentProvider supplies the documents to search. store.Store satisfies it.
type DocumentProvider interface {
	AllDocuments() []types.Document
}

// Engine searches the documents of a provider
type Engine struct {
	provider DocumentProvider
}

// NewEngine creates a search engine over provider
func NewEngine(provider DocumentProvider) *Engine {
	return &Engine{provider: provider}
}

// Search returns matching documents, best first. Ties keep the provider's
// order.
func (e *Engine) Search(opts Options) ([]Result, error) {
	if opts.Query == "" {
		return []Result{}, nil
	}

	fields := opts.Fields
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldContent}
	}
	for _, f := range fields {
		if f != FieldTitle && f != FieldContent {
			return nil, fmt.Errorf("unknown search field %q (expected %s or %s)", f, FieldTitle, FieldContent)
		}
	}
	if opts.StartMarker == "" {
		opts.StartMarker = "**"
	}
	if opts.EndMarker == "" {
		opts.EndMarker = "**"
	}

	results := []Result{}
	for _, doc := range e.provider.AllDocuments() {
		if r, ok := searchDocument(doc, fields, opts); ok {
			results = append(results, r)
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results, nil
}

func searchDocument(doc types.Document, fields []string, opts Options) (Result, bool) {
	result := Result{Document: doc}
	if opts.Highlight {
		result.Highlights = make(map[string]string)
	}

	for _, field := range fields {
		text := doc.Title
		if field == FieldContent {
			text = doc.PlainText()
		}

		positions := findMatches(text, opts.Query, opts.CaseSensitive, opts.ExactMatch)
		if len(positions) == 0 {
			continue
		}

		score, matchType := scoreField(field, text, opts)
		if score > result.Score {
			result.Score = score
			result.MatchType = matchType
		}
		result.MatchedFields = append(result.MatchedFields, field)
		if opts.Highlight {
			result.Highlights[field] = highlight(text, positions, len([]rune(opts.Query)), opts.StartMarker, opts.EndMarker)
		}
	}

	return result, len(result.MatchedFields) > 0
}

// scoreField rates a field that is known to match
func scoreField(field, text string, opts Options) (float64, MatchType) {
	if opts.ExactMatch {
		if field == FieldTitle {
			return 1.0, MatchExactTitle
		}
		return 1.0, MatchExactContent
	}

	score := 0.5
	matchType := MatchPartialContent
	if field == FieldTitle {
		score = 0.8
		matchType = MatchPartialTitle
	}

	haystack, needle := []rune(text), []rune(opts.Query)
	if !opts.CaseSensitive {
		haystack, needle = lower(haystack), lower(needle)
	}
	if hasPrefix(haystack, needle) {
		score += 0.2
	}
	if float64(len(needle))/float64(len(haystack)) > 0.5 {
		score += 0.1
	}
	return min(score, 1.0), matchType
}

// findMatches returns the rune offsets of non-overlapping occurrences
func findMatches(text, query string, caseSensitive, exact bool) []int {
	haystack, needle := []rune(text), []rune(query)
	if !caseSensitive {
		haystack, needle = lower(haystack), lower(needle)
	}

	if exact {
		if slices.Equal(haystack, needle) {
			return []int{0}
		}
		return nil
	}

	var positions []int
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			positions = append(positions, i)
			i += len(needle) - 1
		}
	}
	return positions
}

func highlight(text string, positions []int, length int, start, end string) string {
	runes := []rune(text)
	var out []rune
	last := 0
	for _, p := range positions {
		out = append(out, runes[last:p]...)
		out = append(out, []rune(start)...)
		out = append(out, runes[p:p+length]...)
		out = append(out, []rune(end)...)
		last = p + length
	}
	out = append(out, runes[last:]...)
	return string(out)
}

// lower maps each rune to lower case, keeping offsets aligned with the input
func lower(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func hasPrefix(s, prefix []rune) bool {
	return len(s) >= len(prefix) && slices.Equal(s[:len(prefix)], prefix)
}

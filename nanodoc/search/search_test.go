package search

import (
	"testing"
	"time"

	"github.com/arthur-debert/nanodoc/types"
	"github.com/google/go-cmp/cmp"
)

type staticProvider []types.Document

func (p staticProvider) AllDocuments() []types.Document { return p }

func sampleDocuments() staticProvider {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return staticProvider{
		{ID: "1", Title: "Important Meeting", Content: "<p>Discuss quarterly <b>budget</b></p>", Created: base},
		{ID: "2", Title: "Budget Review", Content: "<p>Review the meeting notes</p>", Created: base},
		{ID: "3", Title: "Team Standup", Content: "<p>Daily standup meeting</p>", Created: base},
		{ID: "4", Title: "MEETING", Content: "<p>All caps title</p>", Created: base},
		{ID: "5", Title: "Café notes", Content: "<p>Crème brûlée</p>", Created: base},
	}
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Document.ID
	}
	return out
}

func TestSearchEmptyQuery(t *testing.T) {
	results, err := NewEngine(sampleDocuments()).Search(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearchUnknownField(t *testing.T) {
	_, err := NewEngine(sampleDocuments()).Search(Options{Query: "x", Fields: []string{"body"}})
	if err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "case insensitive ranks exact title first",
			opts: Options{Query: "meeting"},
			want: []string{"4", "1", "2", "3"},
		},
		{
			name: "case sensitive",
			opts: Options{Query: "meeting", CaseSensitive: true},
			want: []string{"2", "3"},
		},
		{
			name: "title only",
			opts: Options{Query: "budget", Fields: []string{FieldTitle}},
			want: []string{"2"},
		},
		{
			name: "content ignores markup",
			opts: Options{Query: "quarterly budget", Fields: []string{FieldContent}},
			want: []string{"1"},
		},
		{
			name: "tags are not searchable",
			opts: Options{Query: "<b>"},
			want: []string{},
		},
		{
			name: "exact",
			opts: Options{Query: "team standup", ExactMatch: true},
			want: []string{"3"},
		},
		{
			name: "max results",
			opts: Options{Query: "meeting", MaxResults: 2},
			want: []string{"4", "1"},
		},
		{
			name: "unicode",
			opts: Options{Query: "CRÈME"},
			want: []string{"5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := NewEngine(sampleDocuments()).Search(tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, ids(results)); diff != "" {
				t.Errorf("result ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearchMatchDetails(t *testing.T) {
	results, err := NewEngine(sampleDocuments()).Search(Options{Query: "budget", Highlight: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	top := results[0]
	if top.Document.ID != "2" || top.MatchType != MatchPartialTitle {
		t.Errorf("expected title match on doc 2 first, got %s/%s", top.Document.ID, top.MatchType)
	}
	if top.Score != 1.0 {
		t.Errorf("prefix title match should score 1.0, got %v", top.Score)
	}
	if got := top.Highlights[FieldTitle]; got != "**Budget** Review" {
		t.Errorf("title highlight = %q", got)
	}

	second := results[1]
	if diff := cmp.Diff([]string{FieldContent}, second.MatchedFields); diff != "" {
		t.Errorf("matched fields mismatch (-want +got):\n%s", diff)
	}
	if got := second.Highlights[FieldContent]; got != "Discuss quarterly **budget**" {
		t.Errorf("content highlight = %q", got)
	}
}

func TestHighlightMarkersAndUnicode(t *testing.T) {
	results, err := NewEngine(sampleDocuments()).Search(Options{
		Query:       "brûlée",
		Highlight:   true,
		StartMarker: "[",
		EndMarker:   "]",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if got := results[0].Highlights[FieldContent]; got != "Crème [brûlée]" {
		t.Errorf("highlight = %q", got)
	}
}

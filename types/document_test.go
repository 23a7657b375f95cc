package types

import "testing"

func TestDocumentSummary(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    string
	}{
		{"empty", "", 10, ""},
		{"plain text", "hello world", 0, "hello world"},
		{"strips markup", "<p>hi</p><p>there</p>", 0, "hi there"},
		{"collapses whitespace", "<h1>Title</h1>\n\n<p>  body </p>", 0, "Title body"},
		{"truncates", "<p>abcdefgh</p>", 3, "abc…"},
		{"exact length not truncated", "abc", 3, "abc"},
		{"unicode", "<p>héllo wörld</p>", 5, "héllo…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{Content: tt.content}
			if got := doc.Summary(tt.max); got != tt.want {
				t.Errorf("Summary(%d) = %q, want %q", tt.max, got, tt.want)
			}
		})
	}
}

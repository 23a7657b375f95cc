package search_test

import (
	"testing"

	"github.com/arthur-debert/nanodoc/nanodoc/search"
	"github.com/arthur-debert/nanodoc/testutil"
	"github.com/arthur-debert/nanodoc/types"
)

func TestSearchStore(t *testing.T) {
	s, lib := testutil.LoadLibrary(t)
	engine := search.NewEngine(s)

	results, err := engine.Search(search.Options{Query: "budget"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs := make([]types.Document, len(results))
	for i, r := range results {
		docs[i] = r.Document
	}
	testutil.AssertDocumentCount(t, docs, 2, "matching budget")
	if results[0].Document.ID != lib.Budget.ID {
		t.Errorf("title match should rank first, got %q", results[0].Document.Title)
	}
	testutil.AssertDocumentExists(t, docs, lib.WeeklySync.ID)
	testutil.AssertDocumentNotExists(t, docs, lib.Welcome.ID)

	t.Run("reflects store changes", func(t *testing.T) {
		if err := s.DeleteDocument(lib.Budget.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		results, _ := engine.Search(search.Options{Query: "budget"})
		if len(results) != 1 || results[0].Document.ID != lib.WeeklySync.ID {
			t.Errorf("unexpected results after delete: %+v", results)
		}
	})
}

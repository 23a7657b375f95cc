package testutil

import (
	"testing"

	"github.com/arthur-debert/nanodoc/types"
	"github.com/google/go-cmp/cmp"
)

func TestLoadLibrary(t *testing.T) {
	s, lib := LoadLibrary(t)

	docs := s.AllDocuments()
	AssertDocumentCount(t, docs, 5, "in the library")
	if diff := cmp.Diff(lib.All, docs); diff != "" {
		t.Errorf("store does not match fixture (-fixture +store):\n%s", diff)
	}

	if lib.Untitled.Title != types.DefaultTitle || lib.Untitled.Content != "" {
		t.Errorf("unexpected untitled fixture %+v", lib.Untitled)
	}
	if !lib.WeeklySync.LastModified.After(lib.WeeklySync.Created) {
		t.Error("weekly sync should have been modified after creation")
	}
	if _, ok := s.CurrentDocument(); ok {
		t.Error("loading must not set a current document")
	}

	AssertDocumentExists(t, docs, lib.Recipes.ID)
	AssertDocumentNotExists(t, docs, "missing")
}

func TestLibraryIsIsolated(t *testing.T) {
	s1, lib := LoadLibrary(t)
	if err := s1.DeleteDocument(lib.Welcome.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	s2, _ := LoadLibrary(t)
	AssertDocumentExists(t, s2.AllDocuments(), lib.Welcome.ID)
}

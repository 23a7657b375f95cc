package storage

import (
	"testing"
	"time"

	"github.com/arthur-debert/nanodoc/types"
	"github.com/google/go-cmp/cmp"
)

func TestDecodeStoreData(t *testing.T) {
	t.Run("empty input is an empty collection", func(t *testing.T) {
		data, err := DecodeStoreData([]byte("  \n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if data.Documents == nil || len(data.Documents) != 0 {
			t.Errorf("expected empty non-nil documents, got %#v", data.Documents)
		}
	})

	t.Run("legacy array layout", func(t *testing.T) {
		raw := `[{"id":"a","title":"A","content":"<p>x</p>","created":"2024-01-02T03:04:05.000Z","lastModified":"2024-01-02T03:04:06.000Z"}]`
		data, err := DecodeStoreData([]byte(raw))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []types.Document{{
			ID:           "a",
			Title:        "A",
			Content:      "<p>x</p>",
			Created:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			LastModified: time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC),
		}}
		if diff := cmp.Diff(want, data.Documents); diff != "" {
			t.Errorf("documents mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("envelope layout round trips", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		in := &StoreData{
			Documents: []types.Document{
				{ID: "b", Title: "B", Created: now, LastModified: now},
				{ID: "a", Title: "A", Content: "<p>hi</p>", Created: now, LastModified: now.Add(time.Second)},
			},
			Metadata: Metadata{Version: FormatVersion, UpdatedAt: now},
		}

		raw, err := EncodeStoreData(in)
		if err != nil {
			t.Fatalf("failed to encode: %v", err)
		}
		out, err := DecodeStoreData(raw)
		if err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if diff := cmp.Diff(in, out); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil documents encode as empty list", func(t *testing.T) {
		raw, err := EncodeStoreData(&StoreData{})
		if err != nil {
			t.Fatalf("failed to encode: %v", err)
		}
		out, err := DecodeStoreData(raw)
		if err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if out.Documents == nil {
			t.Error("expected non-nil documents")
		}
	})

	t.Run("corrupt input errors", func(t *testing.T) {
		for _, raw := range []string{"{not json", "[1,2", `{"documents":"nope"}`, `[{"created":"yesterday"}]`} {
			if _, err := DecodeStoreData([]byte(raw)); err == nil {
				t.Errorf("expected error for %q", raw)
			}
		}
	})
}

func TestLockManager(t *testing.T) {
	lm := NewLockManager()

	got, err := ExecuteWithResult(lm, ReadOperation, func() (int, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Errorf("expected 42, got %d (%v)", got, err)
	}

	counter := 0
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			_ = lm.Execute(WriteOperation, func() error {
				counter++
				return nil
			})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if counter != 10 {
		t.Errorf("expected 10 increments, got %d", counter)
	}
}

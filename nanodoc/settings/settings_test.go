package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/google/go-cmp/cmp"
)

const blobPath = "editor-config.json"

func newTestStore(t *testing.T) (*Store, *storage.MockFileSystem, *bytes.Buffer) {
	t.Helper()
	mockFS := storage.NewMockFileSystem()
	blob := storage.NewFileBlob(blobPath,
		storage.WithFileSystem(mockFS),
		storage.WithFileLockFactory(storage.NewMockFileLockFactory()),
	)
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	return New(blob, WithLogger(logger)), mockFS, logs
}

func ptr[T any](v T) *T { return &v }

func TestGet(t *testing.T) {
	t.Run("defaults when nothing persisted", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		if diff := cmp.Diff(Defaults(), s.Get()); diff != "" {
			t.Errorf("unexpected config (-want +got):\n%s", diff)
		}
	})

	t.Run("partial overrides merge onto defaults", func(t *testing.T) {
		s, mockFS, _ := newTestStore(t)
		mockFS.SetFileContent(blobPath, []byte(`{"fontSize": 14, "autoSave": false, "theme": "dark"}`))

		want := Defaults()
		want.FontSize = 14
		want.AutoSave = false
		if diff := cmp.Diff(want, s.Get()); diff != "" {
			t.Errorf("unexpected config (-want +got):\n%s", diff)
		}
	})

	t.Run("malformed data falls back to defaults", func(t *testing.T) {
		for _, raw := range []string{"{oops", `{"fontSize": "big"}`, `[1, 2]`} {
			s, mockFS, logs := newTestStore(t)
			mockFS.SetFileContent(blobPath, []byte(raw))

			if diff := cmp.Diff(Defaults(), s.Get()); diff != "" {
				t.Errorf("%q: unexpected config (-want +got):\n%s", raw, diff)
			}
			if !strings.Contains(logs.String(), "corrupt settings blob") {
				t.Errorf("%q: expected corruption to be logged", raw)
			}
		}
	})

	t.Run("invalid individual values are ignored", func(t *testing.T) {
		s, mockFS, logs := newTestStore(t)
		mockFS.SetFileContent(blobPath, []byte(`{"fontSize": -3, "lineHeight": 2, "autoSaveInterval": 0, "fontFamily": " "}`))

		want := Defaults()
		want.LineHeight = 2
		if diff := cmp.Diff(want, s.Get()); diff != "" {
			t.Errorf("unexpected config (-want +got):\n%s", diff)
		}
		if strings.Count(logs.String(), "ignoring invalid persisted setting") != 3 {
			t.Errorf("expected three warnings, got %q", logs.String())
		}
	})

	t.Run("oversized interval falls back to the default", func(t *testing.T) {
		s, mockFS, logs := newTestStore(t)
		mockFS.SetFileContent(blobPath, []byte(`{"autoSaveInterval": 10000000000000, "fontSize": 12}`))

		got := s.Get()
		if got.AutoSaveInterval != DefaultAutoSaveInterval || got.FontSize != 12 {
			t.Errorf("unexpected config: %+v", got)
		}
		if got.AutoSaveEvery() <= 0 {
			t.Errorf("expected a positive autosave cadence, got %v", got.AutoSaveEvery())
		}
		if !strings.Contains(logs.String(), "ignoring invalid persisted setting") {
			t.Errorf("expected a warning, got %q", logs.String())
		}
	})

	t.Run("read failures fall back to defaults", func(t *testing.T) {
		s, mockFS, _ := newTestStore(t)
		mockFS.SetFileContent(blobPath, []byte(`{"fontSize": 20}`))
		mockFS.ReadFileError = errors.New("io error")

		if got := s.Get(); got.FontSize != DefaultFontSize {
			t.Errorf("expected default font size, got %v", got.FontSize)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("merges and persists", func(t *testing.T) {
		s, mockFS, _ := newTestStore(t)

		if err := s.Update(Patch{FontSize: ptr(16.0)}); err != nil {
			t.Fatal(err)
		}
		if err := s.Update(Patch{FontFamily: ptr("Georgia, serif")}); err != nil {
			t.Fatal(err)
		}

		want := Defaults()
		want.FontSize = 16
		want.FontFamily = "Georgia, serif"
		if diff := cmp.Diff(want, s.Get()); diff != "" {
			t.Errorf("unexpected config (-want +got):\n%s", diff)
		}

		raw, ok := mockFS.GetFileContent(blobPath)
		if !ok {
			t.Fatal("expected settings blob")
		}
		var persisted Config
		if err := json.Unmarshal(raw, &persisted); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, persisted); diff != "" {
			t.Errorf("unexpected persisted config (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects invalid values without changes", func(t *testing.T) {
		s, mockFS, _ := newTestStore(t)

		err := s.Update(Patch{FontSize: ptr(0.0), AutoSaveInterval: ptr(-1)})
		if !errors.Is(err, ErrInvalidSetting) {
			t.Fatalf("expected ErrInvalidSetting, got %v", err)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "fontSize" {
			t.Errorf("expected fontSize validation error, got %v", err)
		}
		if mockFS.FileExists(blobPath) {
			t.Error("invalid update must not persist")
		}
	})

	t.Run("persist failures are returned", func(t *testing.T) {
		s, mockFS, _ := newTestStore(t)
		mockFS.WriteFileError = errors.New("disk full")

		if err := s.Update(Patch{AutoSave: ptr(false)}); !errors.Is(err, mockFS.WriteFileError) {
			t.Errorf("expected write error, got %v", err)
		}
	})
}

func TestReset(t *testing.T) {
	s, mockFS, _ := newTestStore(t)
	if err := s.Update(Patch{LineHeight: ptr(2.0)}); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if mockFS.FileExists(blobPath) {
		t.Error("expected overrides to be removed")
	}
	if diff := cmp.Diff(Defaults(), s.Get()); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}

	if err := s.Reset(); err != nil {
		t.Errorf("reset without overrides should succeed: %v", err)
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := Defaults()
	if got := cfg.AutoSaveEvery(); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}
	if got := (Config{AutoSaveInterval: math.MaxInt}).AutoSaveEvery(); got <= 0 {
		t.Errorf("expected a clamped positive cadence, got %v", got)
	}
	if got := cfg.Style(); got != "font-family: Arial, sans-serif; font-size: 11pt; line-height: 1.5;" {
		t.Errorf("unexpected style %q", got)
	}

	for key, want := range map[string]any{
		"fontFamily":         DefaultFontFamily,
		"font-size":          float64(DefaultFontSize),
		"line_height":        DefaultLineHeight,
		"autosave":           DefaultAutoSave,
		"auto-save-interval": DefaultAutoSaveInterval,
	} {
		got, err := cfg.Value(key)
		if err != nil {
			t.Errorf("Value(%q): %v", key, err)
			continue
		}
		if got != want {
			t.Errorf("Value(%q) = %v, want %v", key, got, want)
		}
	}
	if _, err := cfg.Value("theme"); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("expected ErrInvalidSetting for unknown key, got %v", err)
	}
}

func TestParsePatch(t *testing.T) {
	tests := []struct {
		key, value string
		want       Patch
		wantErr    bool
	}{
		{key: "fontFamily", value: "Inter", want: Patch{FontFamily: ptr("Inter")}},
		{key: "font-size", value: "12.5", want: Patch{FontSize: ptr(12.5)}},
		{key: "lineHeight", value: "1.2", want: Patch{LineHeight: ptr(1.2)}},
		{key: "auto_save", value: "false", want: Patch{AutoSave: ptr(false)}},
		{key: "autoSaveInterval", value: "5000", want: Patch{AutoSaveInterval: ptr(5000)}},
		{key: "fontSize", value: "big", wantErr: true},
		{key: "fontSize", value: "-1", wantErr: true},
		{key: "autoSave", value: "maybe", wantErr: true},
		{key: "autoSaveInterval", value: "1.5", wantErr: true},
		{key: "autoSaveInterval", value: "10000000000000", wantErr: true},
		{key: "autoSaveInterval", value: "9223372036854775807", wantErr: true},
		{key: "theme", value: "dark", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := ParsePatch(tt.key, tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSetting) {
					t.Errorf("expected ErrInvalidSetting, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected patch (-want +got):\n%s", diff)
			}
		})
	}
}

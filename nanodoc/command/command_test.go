package command

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefinitionsComplete(t *testing.T) {
	seen := make(map[string]bool)
	for _, cmd := range All() {
		def := definitions[cmd]
		if def.name == "" || def.label == "" || def.kind == 0 {
			t.Errorf("command %d has an incomplete definition: %+v", int(cmd), def)
		}
		if seen[def.name] {
			t.Errorf("duplicate command name %q", def.name)
		}
		seen[def.name] = true
	}
	if len(All()) != 14 {
		t.Errorf("expected 14 commands, got %d", len(All()))
	}
}

func TestParseCommand(t *testing.T) {
	for _, cmd := range All() {
		t.Run(cmd.String(), func(t *testing.T) {
			got, err := ParseCommand(cmd.String())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != cmd {
				t.Errorf("ParseCommand(%q) = %v, want %v", cmd.String(), got, cmd)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseCommand("blink")
		if !errors.Is(err, ErrInvalidCommand) {
			t.Errorf("expected ErrInvalidCommand, got %v", err)
		}
	})
}

func TestCommandStrings(t *testing.T) {
	tests := []struct {
		cmd       Command
		wantName  string
		wantLabel string
	}{
		{Bold, "bold", "Bold"},
		{Heading2, "heading2", "Heading 2"},
		{OrderedList, "orderedList", "Ordered List"},
		{AlignCenter, "alignCenter", "Align Center"},
		{Redo, "redo", "Redo"},
		{Command(99), "Command(99)", "Command(99)"},
		{Command(-1), "Command(-1)", "Command(-1)"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.wantName {
				t.Errorf("String() = %q, want %q", got, tt.wantName)
			}
			if got := tt.cmd.Label(); got != tt.wantLabel {
				t.Errorf("Label() = %q, want %q", got, tt.wantLabel)
			}
		})
	}
}

func TestCommandJSON(t *testing.T) {
	data, err := json.Marshal([]Command{Bold, Undo})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `["bold","undo"]` {
		t.Errorf("unexpected encoding: %s", data)
	}

	var decoded []Command
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if diff := cmp.Diff([]Command{Bold, Undo}, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := json.Marshal(Command(42)); err == nil {
		t.Error("expected error marshaling an invalid command")
	}
	if err := json.Unmarshal([]byte(`"sparkle"`), new(Command)); err == nil {
		t.Error("expected error unmarshaling an unknown name")
	}
}

func TestToolbar(t *testing.T) {
	groups := Toolbar()

	var names []string
	var titles []string
	count := make(map[Command]int)
	for _, g := range groups {
		names = append(names, g.Name)
		titles = append(titles, g.Title)
		for _, cmd := range g.Commands {
			count[cmd]++
		}
	}

	wantNames := []string{"history", "formatting", "headings", "lists", "alignment"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("group names mismatch (-want +got):\n%s", diff)
	}
	wantTitles := []string{"History", "Formatting", "Headings", "Lists", "Alignment"}
	if diff := cmp.Diff(wantTitles, titles); diff != "" {
		t.Errorf("group titles mismatch (-want +got):\n%s", diff)
	}

	for _, cmd := range All() {
		if count[cmd] != 1 {
			t.Errorf("command %s appears %d times in the toolbar", cmd, count[cmd])
		}
	}

	// callers must not be able to corrupt the layout
	groups[0].Commands[0] = Bold
	if Toolbar()[0].Commands[0] != Undo {
		t.Error("Toolbar returned shared slices")
	}
}

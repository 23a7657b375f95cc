// Package command maps the closed vocabulary of toolbar commands onto an
// attached rich-text editing engine.
//
// Each Command has exactly one engine operation and, apart from Undo and
// Redo, exactly one active-state query. Undo and Redo are never active;
// their availability is reported by CanExecute instead.
package command

import (
	"errors"
	"fmt"
)

// ErrInvalidCommand is returned for values outside the vocabulary
var ErrInvalidCommand = errors.New("invalid command")

// Command is one semantic editing action
type Command int

const (
	Bold Command = iota
	Italic
	Underline
	Strike
	Heading1
	Heading2
	Heading3
	BulletList
	OrderedList
	AlignLeft
	AlignCenter
	AlignRight
	Undo
	Redo

	numCommands
)

// ListKind names a list block type
type ListKind string

const (
	BulletListKind  ListKind = "bulletList"
	OrderedListKind ListKind = "orderedList"
)

// Alignment is a paragraph alignment value
type Alignment string

const (
	AlignmentLeft   Alignment = "left"
	AlignmentCenter Alignment = "center"
	AlignmentRight  Alignment = "right"
)

// Names used in active-state queries
const (
	HeadingNode   = "heading"
	LevelAttr     = "level"
	TextAlignAttr = "textAlign"
)

type actionKind int

const (
	markAction actionKind = iota + 1
	headingAction
	listAction
	alignAction
	undoAction
	redoAction
)

// definition is the mapping row for one command
type definition struct {
	name  string
	label string
	kind  actionKind
	mark  string
	level int
	list  ListKind
	align Alignment
}

// definitions is indexed by Command; every value below numCommands has a row
var definitions = [numCommands]definition{
	Bold:        {name: "bold", label: "Bold", kind: markAction, mark: "bold"},
	Italic:      {name: "italic", label: "Italic", kind: markAction, mark: "italic"},
	Underline:   {name: "underline", label: "Underline", kind: markAction, mark: "underline"},
	Strike:      {name: "strike", label: "Strike", kind: markAction, mark: "strike"},
	Heading1:    {name: "heading1", label: "Heading 1", kind: headingAction, level: 1},
	Heading2:    {name: "heading2", label: "Heading 2", kind: headingAction, level: 2},
	Heading3:    {name: "heading3", label: "Heading 3", kind: headingAction, level: 3},
	BulletList:  {name: "bulletList", label: "Bullet List", kind: listAction, list: BulletListKind},
	OrderedList: {name: "orderedList", label: "Ordered List", kind: listAction, list: OrderedListKind},
	AlignLeft:   {name: "alignLeft", label: "Align Left", kind: alignAction, align: AlignmentLeft},
	AlignCenter: {name: "alignCenter", label: "Align Center", kind: alignAction, align: AlignmentCenter},
	AlignRight:  {name: "alignRight", label: "Align Right", kind: alignAction, align: AlignmentRight},
	Undo:        {name: "undo", label: "Undo", kind: undoAction},
	Redo:        {name: "redo", label: "Redo", kind: redoAction},
}

// All returns every command in declaration order
func All() []Command {
	cmds := make([]Command, numCommands)
	for i := range cmds {
		cmds[i] = Command(i)
	}
	return cmds
}

// Valid reports whether c is part of the vocabulary
func (c Command) Valid() bool {
	return c >= 0 && c < numCommands
}

// String returns the wire name, e.g. "heading1"
func (c Command) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return definitions[c].name
}

// Label returns the human-readable toolbar label
func (c Command) Label() string {
	if !c.Valid() {
		return c.String()
	}
	return definitions[c].label
}

// MarshalText implements encoding.TextMarshaler
func (c Command) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, invalid(c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Command) UnmarshalText(text []byte) error {
	parsed, err := ParseCommand(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCommand maps a wire name to its Command
func ParseCommand(name string) (Command, error) {
	for i, def := range definitions {
		if def.name == name {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCommand, name)
}

// lookup returns the mapping row for c
func lookup(c Command) (definition, error) {
	if !c.Valid() {
		return definition{}, invalid(c)
	}
	return definitions[c], nil
}

func invalid(c Command) error {
	return fmt.Errorf("%w: %d", ErrInvalidCommand, int(c))
}

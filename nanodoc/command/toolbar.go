package command

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Group is a run of related toolbar buttons
type Group struct {
	Name     string    `json:"name" yaml:"name"`
	Title    string    `json:"title" yaml:"title"`
	Commands []Command `json:"commands" yaml:"commands"`
}

var toolbarLayout = []struct {
	name     string
	commands []Command
}{
	{"history", []Command{Undo, Redo}},
	{"formatting", []Command{Bold, Italic, Underline, Strike}},
	{"headings", []Command{Heading1, Heading2, Heading3}},
	{"lists", []Command{BulletList, OrderedList}},
	{"alignment", []Command{AlignLeft, AlignCenter, AlignRight}},
}

// Toolbar returns the toolbar groups in display order. Every command
// appears in exactly one group.
func Toolbar() []Group {
	caser := cases.Title(language.English)
	groups := make([]Group, len(toolbarLayout))
	for i, g := range toolbarLayout {
		groups[i] = Group{
			Name:     g.name,
			Title:    caser.String(g.name),
			Commands: append([]Command(nil), g.commands...),
		}
	}
	return groups
}

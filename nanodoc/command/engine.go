package command

// Attrs are the parameters of an active-state query
type Attrs map[string]any

// Engine is the capability surface of a rich-text editing engine.
// The operations that change formatting report whether they were applied.
type Engine interface {
	// Focus gives the engine input focus
	Focus()

	ToggleMark(name string) bool
	ToggleHeading(level int) bool
	ToggleList(kind ListKind) bool
	SetAlignment(align Alignment) bool

	// IsActive reports whether the mark, block or attribute set is active
	// at the current selection. name may be empty when only attrs matter.
	IsActive(name string, attrs Attrs) bool

	CanUndo() bool
	CanRedo() bool
	Undo() bool
	Redo() bool

	// Content returns the serialized document
	Content() string

	// SetContent replaces the document wholesale
	SetContent(content string)
}

package command

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// MockEngine is an in-memory Engine for tests. It records every call and
// answers active-state queries from a table set with SetActive.
type MockEngine struct {
	mu      sync.Mutex
	calls   []string
	active  map[string]bool
	content string

	UndoAvailable bool
	RedoAvailable bool

	// Reject makes every formatting operation report not applied
	Reject bool

	// OnUpdate, when set, runs after every operation that changes the
	// document, like an editor's update listener. It is called without
	// the mock's lock held so it may query the engine.
	OnUpdate func()
}

// NewMockEngine creates a mock engine holding content
func NewMockEngine(content string) *MockEngine {
	return &MockEngine{
		active:  make(map[string]bool),
		content: content,
	}
}

// SetActive sets the answer IsActive gives for name and attrs
func (m *MockEngine) SetActive(name string, attrs Attrs, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[activeKey(name, attrs)] = active
}

// SetUndo sets whether undo is available
func (m *MockEngine) SetUndo(available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UndoAvailable = available
}

// Calls returns the recorded calls, e.g. "focus", "toggleMark(bold)"
func (m *MockEngine) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// ResetCalls clears the call log
func (m *MockEngine) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MockEngine) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

// update records a document-changing call and then fires OnUpdate
func (m *MockEngine) update(applied bool, format string, args ...any) bool {
	m.mu.Lock()
	m.record(format, args...)
	onUpdate := m.OnUpdate
	m.mu.Unlock()

	if applied && onUpdate != nil {
		onUpdate()
	}
	return applied
}

// Focus implements Engine.Focus
func (m *MockEngine) Focus() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("focus")
}

// ToggleMark implements Engine.ToggleMark
func (m *MockEngine) ToggleMark(name string) bool {
	return m.update(!m.rejects(), "toggleMark(%s)", name)
}

// ToggleHeading implements Engine.ToggleHeading
func (m *MockEngine) ToggleHeading(level int) bool {
	return m.update(!m.rejects(), "toggleHeading(%d)", level)
}

// ToggleList implements Engine.ToggleList
func (m *MockEngine) ToggleList(kind ListKind) bool {
	return m.update(!m.rejects(), "toggleList(%s)", kind)
}

// SetAlignment implements Engine.SetAlignment
func (m *MockEngine) SetAlignment(align Alignment) bool {
	return m.update(!m.rejects(), "setAlignment(%s)", align)
}

// IsActive implements Engine.IsActive
func (m *MockEngine) IsActive(name string, attrs Attrs) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("isActive(%s)", activeKey(name, attrs))
	return m.active[activeKey(name, attrs)]
}

// CanUndo implements Engine.CanUndo
func (m *MockEngine) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.UndoAvailable
}

// CanRedo implements Engine.CanRedo
func (m *MockEngine) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RedoAvailable
}

// Undo implements Engine.Undo
func (m *MockEngine) Undo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("undo")
	return m.UndoAvailable
}

// Redo implements Engine.Redo
func (m *MockEngine) Redo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("redo")
	return m.RedoAvailable
}

// Content implements Engine.Content
func (m *MockEngine) Content() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// SetContent implements Engine.SetContent
func (m *MockEngine) SetContent(content string) {
	m.mu.Lock()
	m.content = content
	m.mu.Unlock()
	m.update(true, "setContent")
}

func (m *MockEngine) rejects() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Reject
}

// activeKey renders name and attrs as "name{k=v,...}" with sorted keys
func activeKey(name string, attrs Attrs) string {
	if len(attrs) == 0 {
		return name
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, attrs[k])
	}
	return name + "{" + strings.Join(parts, ",") + "}"
}

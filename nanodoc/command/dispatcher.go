package command

import (
	"log/slog"
	"sync"
)

// Dispatcher holds at most one attached Engine and routes commands to it.
// With no engine attached every query answers false and Execute does
// nothing. Out-of-vocabulary commands return ErrInvalidCommand whether or
// not an engine is attached.
type Dispatcher struct {
	mu     sync.RWMutex
	engine Engine
	logger *slog.Logger
}

// State is the toolbar-facing view of one command
type State struct {
	Command Command `json:"command" yaml:"command"`
	Label   string  `json:"label" yaml:"label"`
	Active  bool    `json:"active" yaml:"active"`
	Enabled bool    `json:"enabled" yaml:"enabled"`
}

// Option is a function that modifies Dispatcher configuration
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a dispatcher with no engine attached
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Attach replaces the held engine. Passing nil detaches.
func (d *Dispatcher) Attach(engine Engine) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine = engine
	d.logger.Debug("engine attached", "attached", engine != nil)
}

// Detach drops the held engine
func (d *Dispatcher) Detach() {
	d.Attach(nil)
}

// Attached reports whether an engine is held
func (d *Dispatcher) Attached() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine != nil
}

// current returns the attached engine. Engine calls are made after mu is
// released, so an engine may call back into the dispatcher while it runs.
func (d *Dispatcher) current() Engine {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine
}

// Execute focuses the engine and applies the operation mapped to cmd.
// It reports whether the engine applied it.
func (d *Dispatcher) Execute(cmd Command) (bool, error) {
	def, err := lookup(cmd)
	if err != nil {
		return false, err
	}

	engine := d.current()
	if engine == nil {
		return false, nil
	}

	engine.Focus()

	var applied bool
	switch def.kind {
	case markAction:
		applied = engine.ToggleMark(def.mark)
	case headingAction:
		applied = engine.ToggleHeading(def.level)
	case listAction:
		applied = engine.ToggleList(def.list)
	case alignAction:
		applied = engine.SetAlignment(def.align)
	case undoAction:
		applied = engine.Undo()
	case redoAction:
		applied = engine.Redo()
	}

	d.logger.Debug("command executed", "command", cmd.String(), "applied", applied)
	return applied, nil
}

// IsActive reports whether cmd applies at the current selection.
// Undo and Redo are never active.
func (d *Dispatcher) IsActive(cmd Command) (bool, error) {
	def, err := lookup(cmd)
	if err != nil {
		return false, err
	}
	return isActive(d.current(), def), nil
}

// isActive runs the active-state query for def against engine
func isActive(engine Engine, def definition) bool {
	if engine == nil {
		return false
	}

	switch def.kind {
	case markAction:
		return engine.IsActive(def.mark, nil)
	case headingAction:
		return engine.IsActive(HeadingNode, Attrs{LevelAttr: def.level})
	case listAction:
		return engine.IsActive(string(def.list), nil)
	case alignAction:
		return engine.IsActive("", Attrs{TextAlignAttr: string(def.align)})
	default:
		return false
	}
}

// CanExecute reports whether invoking cmd is meaningful now. Formatting
// commands are always available once an engine is attached; Undo and Redo
// follow the engine's history.
func (d *Dispatcher) CanExecute(cmd Command) (bool, error) {
	def, err := lookup(cmd)
	if err != nil {
		return false, err
	}
	return canExecute(d.current(), def), nil
}

// canExecute runs the enabled-state query for def against engine
func canExecute(engine Engine, def definition) bool {
	if engine == nil {
		return false
	}

	switch def.kind {
	case undoAction:
		return engine.CanUndo()
	case redoAction:
		return engine.CanRedo()
	default:
		return true
	}
}

// State returns the active and enabled state of cmd
func (d *Dispatcher) State(cmd Command) (State, error) {
	def, err := lookup(cmd)
	if err != nil {
		return State{}, err
	}

	engine := d.current()
	return State{
		Command: cmd,
		Label:   def.label,
		Active:  isActive(engine, def),
		Enabled: canExecute(engine, def),
	}, nil
}

// States returns the state of every command, all queried against the
// same engine
func (d *Dispatcher) States() []State {
	engine := d.current()

	states := make([]State, 0, numCommands)
	for _, cmd := range All() {
		def := definitions[cmd]
		states = append(states, State{
			Command: cmd,
			Label:   def.label,
			Active:  isActive(engine, def),
			Enabled: canExecute(engine, def),
		})
	}
	return states
}

// Content returns the engine's serialized content, if an engine is attached
func (d *Dispatcher) Content() (string, bool) {
	engine := d.current()
	if engine == nil {
		return "", false
	}
	return engine.Content(), true
}

// Reconcile pushes content into the engine when it differs from what the
// engine holds, and reports whether it did.
func (d *Dispatcher) Reconcile(content string) bool {
	engine := d.current()
	if engine == nil || engine.Content() == content {
		return false
	}
	engine.SetContent(content)
	return true
}

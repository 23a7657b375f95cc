// Package editor coordinates the document store with the command dispatcher
// and reports what happened through events rather than presenting anything
// itself.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/arthur-debert/nanodoc/nanodoc/command"
	"github.com/arthur-debert/nanodoc/nanodoc/store"
	"github.com/arthur-debert/nanodoc/types"
)

// ErrEmptyTitle is returned when a rename is attempted with a blank title
var ErrEmptyTitle = errors.New("title cannot be empty")

// Controller drives the document lifecycle on behalf of a user interface.
// Engine calls and listeners run after mu is released, so an engine whose
// updates feed back into ContentChanged is safe.
type Controller struct {
	mu         sync.Mutex
	store      store.Store
	dispatcher *command.Dispatcher
	logger     *slog.Logger

	listenersMu sync.RWMutex
	listeners   []Listener
}

// Option is a function that modifies Controller configuration
type Option func(*Controller)

// WithLogger sets the controller logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller over s and d
func NewController(s store.Store, d *command.Dispatcher, opts ...Option) *Controller {
	c := &Controller{
		store:      s,
		dispatcher: d,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers l to receive every subsequent event
func (c *Controller) Subscribe(l Listener) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Controller) emit(ev Event) {
	c.listenersMu.RLock()
	listeners := append([]Listener(nil), c.listeners...)
	c.listenersMu.RUnlock()

	for _, l := range listeners {
		l(ev)
	}
}

func (c *Controller) fail(op string, err error) error {
	c.logger.Error("editor operation failed", "op", op, "error", err)
	c.emit(Event{Kind: OperationFailed, Message: fmt.Sprintf("Could not %s", op), Err: err})
	return err
}

// Dispatcher returns the dispatcher engines are attached to
func (c *Controller) Dispatcher() *command.Dispatcher {
	return c.dispatcher
}

// Start returns the current document, creating an untitled one when none
// is current.
func (c *Controller) Start() (types.Document, error) {
	c.mu.Lock()
	doc, ok := c.store.CurrentDocument()
	var err error
	if !ok {
		doc, err = c.store.CreateDocument(types.DefaultTitle)
	}
	c.mu.Unlock()

	if err != nil {
		return doc, c.fail("create document", err)
	}
	c.dispatcher.Reconcile(doc.Content)
	if !ok {
		c.emit(Event{Kind: DocumentCreated, Document: doc})
	}
	return doc, nil
}

// AttachEngine attaches e and loads the current document's content into it
func (c *Controller) AttachEngine(e command.Engine) {
	c.mu.Lock()
	c.dispatcher.Attach(e)
	doc, ok := c.store.CurrentDocument()
	c.mu.Unlock()

	if ok {
		c.dispatcher.Reconcile(doc.Content)
	}
}

// ContentChanged saves content into the current document. With no document
// current, or when content is already stored, it does nothing.
func (c *Controller) ContentChanged(content string) error {
	c.mu.Lock()
	doc, saved, err := c.saveIfChanged(content)
	c.mu.Unlock()

	if err != nil {
		return c.fail("save document", err)
	}
	if saved {
		c.emit(Event{Kind: DocumentSaved, Document: doc})
	}
	return nil
}

// Flush saves the attached engine's content into the current document when
// it differs from what is stored.
func (c *Controller) Flush() error {
	content, ok := c.dispatcher.Content()
	if !ok {
		return nil
	}

	c.mu.Lock()
	doc, saved, err := c.saveIfChanged(content)
	c.mu.Unlock()

	if err != nil {
		return c.fail("save document", err)
	}
	if saved {
		c.emit(Event{Kind: DocumentSaved, Document: doc, Message: "Document saved"})
	}
	return nil
}

// saveIfChanged writes content to the current document unless it already
// holds it. Caller must hold mu.
func (c *Controller) saveIfChanged(content string) (types.Document, bool, error) {
	current, ok := c.store.CurrentDocument()
	if !ok || current.Content == content {
		return current, false, nil
	}
	doc, err := c.store.SaveCurrentDocument(content)
	return doc, err == nil, err
}

// NewDocument creates an untitled document, makes it current and clears
// the engine.
func (c *Controller) NewDocument() (types.Document, error) {
	c.mu.Lock()
	doc, err := c.store.CreateDocument(types.DefaultTitle)
	c.mu.Unlock()

	if err != nil {
		return doc, c.fail("create document", err)
	}
	c.dispatcher.Reconcile(doc.Content)
	c.emit(Event{Kind: DocumentCreated, Document: doc, Message: "New document created"})
	return doc, nil
}

// OpenDocument makes id current and loads its content into the engine
func (c *Controller) OpenDocument(id string) (types.Document, error) {
	c.mu.Lock()
	doc, err := c.store.OpenDocument(id)
	c.mu.Unlock()

	if err != nil {
		return doc, c.fail("open document", err)
	}
	c.dispatcher.Reconcile(doc.Content)
	c.emit(Event{Kind: DocumentOpened, Document: doc, Message: fmt.Sprintf("Opened %q", doc.Title)})
	return doc, nil
}

// RenameCurrent sets the title of the current document. Surrounding
// whitespace is trimmed; a blank title returns ErrEmptyTitle and leaves the
// title unchanged.
func (c *Controller) RenameCurrent(title string) (types.Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return types.Document{}, c.fail("rename document", ErrEmptyTitle)
	}

	c.mu.Lock()
	doc, err := c.renameCurrent(title)
	c.mu.Unlock()

	if err != nil {
		return doc, c.fail("rename document", err)
	}
	c.emit(Event{Kind: DocumentRenamed, Document: doc, Message: "Document renamed"})
	return doc, nil
}

// renameCurrent applies a validated title. Caller must hold mu.
func (c *Controller) renameCurrent(title string) (types.Document, error) {
	current, ok := c.store.CurrentDocument()
	if !ok {
		return types.Document{}, store.ErrNotFound
	}
	if err := c.store.RenameDocument(current.ID, title); err != nil {
		return current, err
	}
	return c.store.Document(current.ID)
}

// DeleteDocument removes id. When it was the current document a fresh
// untitled document replaces it, so one is always current afterwards.
func (c *Controller) DeleteDocument(id string) error {
	c.mu.Lock()
	current, hadCurrent := c.store.CurrentDocument()
	deleted, lookupErr := c.store.Document(id)
	err := c.store.DeleteDocument(id)
	c.mu.Unlock()

	if err != nil {
		return c.fail("delete document", err)
	}
	if lookupErr == nil {
		c.emit(Event{Kind: DocumentDeleted, Document: deleted, Message: "Document deleted"})
	}

	if !hadCurrent || current.ID != id {
		return nil
	}

	c.mu.Lock()
	doc, err := c.store.CreateDocument(types.DefaultTitle)
	c.mu.Unlock()

	if err != nil {
		return c.fail("create document", err)
	}
	c.dispatcher.Reconcile(doc.Content)
	c.emit(Event{Kind: DocumentCreated, Document: doc})
	return nil
}

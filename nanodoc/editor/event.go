package editor

import "github.com/arthur-debert/nanodoc/types"

// EventKind classifies what a Controller operation did
type EventKind string

const (
	DocumentCreated EventKind = "created"
	DocumentOpened  EventKind = "opened"
	DocumentSaved   EventKind = "saved"
	DocumentRenamed EventKind = "renamed"
	DocumentDeleted EventKind = "deleted"
	OperationFailed EventKind = "failed"
)

// Event reports the outcome of a Controller operation. Message is suitable
// for showing to the user; whether to show it is up to the listener.
type Event struct {
	Kind     EventKind
	Document types.Document
	Message  string
	Err      error
}

// Listener receives events synchronously, after the emitting Controller has
// released its lock.
type Listener func(Event)

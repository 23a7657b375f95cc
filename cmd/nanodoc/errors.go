package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/nanodoc/nanodoc/editor"
	"github.com/arthur-debert/nanodoc/nanodoc/settings"
	"github.com/arthur-debert/nanodoc/nanodoc/store"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "rename document")
	Cause       string   // The underlying cause (e.g., "document not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for validation failures
func NewValidationError(operation string, underlying error, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       "invalid input",
		Details:     underlying.Error(),
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewNotFoundError creates an error for missing documents
func NewNotFoundError(operation, id string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("document with ID %q not found", id),
		Suggestions: suggestions,
		Underlying:  store.ErrNotFound,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewStoreError creates an error for persistence failures
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "store operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		errStr := strings.ToLower(underlying.Error())
		switch {
		case strings.Contains(errStr, "permission denied"):
			cause = "insufficient permissions to access the data directory"
		case strings.Contains(errStr, "lock"):
			cause = "data file is currently locked by another process"
		case strings.Contains(errStr, "no such file"):
			cause = "file not found"
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context, choosing the
// constructor from the error's sentinel
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	switch {
	case errors.Is(err, settings.ErrInvalidSetting), errors.Is(err, editor.ErrEmptyTitle):
		return NewValidationError(operation, err, suggestions...)
	case errors.Is(err, store.ErrNotFound):
		return &CLIError{
			Operation:   operation,
			Cause:       "document not found",
			Details:     err.Error(),
			Suggestions: suggestions,
			Underlying:  err,
		}
	}
	return NewStoreError(operation, err, suggestions...)
}

// Common suggestions
var CommonSuggestions = struct {
	CheckID      string
	CheckDataDir string
	CheckConfig  string
	CheckFormat  string
	CheckKey     string
	RunHelp      string
	CheckPerms   string
}{
	CheckID:      "Verify the document ID exists (try 'list' command first)",
	CheckDataDir: "Verify --data-dir points to a writable directory",
	CheckConfig:  "Check your configuration file or environment variables",
	CheckFormat:  "Run 'nanodoc export --help' to see available formats",
	CheckKey:     "Valid settings: " + strings.Join(settings.Keys, ", "),
	RunHelp:      "Run command with --help for usage information",
	CheckPerms:   "Check file permissions and directory access",
}

package store

import (
	"log/slog"
	"time"
)

// Option is a function that modifies JSONStore configuration
type Option func(*JSONStore)

// WithTimeFunc sets a custom time function for deterministic timestamps
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *JSONStore) {
		s.timeFunc = fn
	}
}

// WithIDFunc sets a custom id generator
func WithIDFunc(fn func() string) Option {
	return func(s *JSONStore) {
		s.idFunc = fn
	}
}

// WithLogger sets the logger used for load diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *JSONStore) {
		s.logger = logger
	}
}

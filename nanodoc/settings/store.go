package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/arthur-debert/nanodoc/nanodoc/storage"
)

// Store persists Config overrides in a blob
type Store struct {
	blob        storage.Blob
	lockManager *storage.LockManager
	logger      *slog.Logger
}

// Option is a function that modifies Store configuration
type Option func(*Store)

// WithLogger sets the logger used for load diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a settings store over blob
func New(blob storage.Blob, opts ...Option) *Store {
	s := &Store{
		blob:        blob,
		lockManager: storage.NewLockManager(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the persisted overrides merged onto Defaults. Unreadable or
// malformed data yields the defaults; invalid individual values are ignored.
func (s *Store) Get() Config {
	var cfg Config
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		cfg = s.load()
		return nil
	})
	return cfg
}

// Update validates p, merges it into the current configuration and persists
// the result. An invalid patch changes nothing.
func (s *Store) Update(p Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return s.lockManager.Execute(storage.WriteOperation, func() error {
		cfg := s.load().Apply(p)

		raw, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		if err := s.blob.Save(raw); err != nil {
			return fmt.Errorf("failed to persist settings: %w", err)
		}
		return nil
	})
}

// Reset restores the defaults by removing the persisted overrides
func (s *Store) Reset() error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		if err := s.blob.Remove(); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}
		return nil
	})
}

// load reads the overrides. Caller must hold the lock.
func (s *Store) load() Config {
	cfg := Defaults()

	raw, err := s.blob.Load()
	if err != nil {
		s.logger.Warn("failed to read settings, using defaults", "blob", s.blob.Name(), "error", err)
		return cfg
	}
	if len(raw) == 0 {
		return cfg
	}

	var p Patch
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn("corrupt settings blob, using defaults", "blob", s.blob.Name(), "error", err)
		return cfg
	}

	p, invalid := p.withoutInvalid()
	for _, err := range invalid {
		s.logger.Warn("ignoring invalid persisted setting", "blob", s.blob.Name(), "error", err)
	}

	return cfg.Apply(p)
}

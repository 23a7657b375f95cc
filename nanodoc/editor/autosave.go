package editor

import (
	"context"
	"log/slog"
	"time"

	"github.com/arthur-debert/nanodoc/nanodoc/settings"
)

// ConfigSource supplies the current settings
type ConfigSource interface {
	Get() settings.Config
}

// Flusher saves pending engine content
type Flusher interface {
	Flush() error
}

// Autosaver periodically flushes editor content while auto-save is on.
// Settings are re-read every tick, so interval changes and toggles take
// effect without a restart.
type Autosaver struct {
	flusher Flusher
	config  ConfigSource
	logger  *slog.Logger
}

// NewAutosaver creates an autosaver that flushes f according to cfg
func NewAutosaver(f Flusher, cfg ConfigSource, logger *slog.Logger) *Autosaver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Autosaver{flusher: f, config: cfg, logger: logger}
}

// Run blocks until ctx is done, then returns ctx.Err()
func (a *Autosaver) Run(ctx context.Context) error {
	cfg := a.config.Get()
	timer := time.NewTimer(cfg.AutoSaveEvery())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		cfg = a.config.Get()
		if cfg.AutoSave {
			if err := a.flusher.Flush(); err != nil {
				a.logger.Warn("autosave failed", "error", err)
			}
		}
		timer.Reset(cfg.AutoSaveEvery())
	}
}

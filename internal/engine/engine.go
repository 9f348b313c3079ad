package engine

import (
	"log/slog"
	"time"

	"freckle.dev/freckle/internal/config"
)

// Engine runs sync operations for one set of repository coordinates
type Engine struct {
	gw     Gateway
	coords config.Coordinates
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes an Engine
type Option func(*Engine)

// WithLogger sets the logger used for non-fatal warnings
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock sets the clock used to name backup directories
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine over gw for coords
func New(gw Gateway, coords config.Coordinates, opts ...Option) *Engine {
	e := &Engine{
		gw:     gw,
		coords: coords,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Coordinates returns the coordinates the engine was created with
func (e *Engine) Coordinates() config.Coordinates {
	return e.coords
}

// IsInitialized reports whether the metadata store exists
func (e *Engine) IsInitialized() bool {
	return e.gw.Exists()
}

// ResolveBranch resolves the configured branch against the store's current refs
func (e *Engine) ResolveBranch() BranchResolution {
	return ResolveBranch(e.coords.Branch, e.gw.AvailableBranches, e.gw.HeadBranch)
}

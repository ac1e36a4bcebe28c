package app

import (
	"io"
	"log/slog"

	"github.com/vk/sc2ta/internal/config"
	"github.com/vk/sc2ta/internal/hcl"
	"github.com/vk/sc2ta/internal/scheduler"
	"github.com/vk/sc2ta/internal/transform"
	"github.com/vk/sc2ta/internal/unfold"
	"github.com/vk/sc2ta/internal/validate"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW        io.Writer
	logger      *slog.Logger
	config      *Config
	store       config.Store
	unfolder    *unfold.Unfolder
	validator   *validate.Validator
	transformer *transform.Transformer
	written     []string
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger. A nil store selects the
// HCL format.
func NewApp(outW io.Writer, cfg *Config, store config.Store) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if store == nil {
		store = hcl.NewStore()
	}
	policy, err := scheduler.ParsePolicy(cfg.Scheduler)
	if err != nil {
		// Only a Config built without NewConfig gets here.
		logger.Warn("Unknown scheduler, falling back to fixed.", "scheduler", cfg.Scheduler, "error", err)
		policy = scheduler.Fixed
	}

	return &App{
		outW:        outW,
		logger:      logger,
		config:      cfg,
		store:       store,
		unfolder:    unfold.New(),
		validator:   validate.New(),
		transformer: transform.New(policy),
	}
}

// Written returns the artifact paths written by the last Run, in the order
// they were written.
func (a *App) Written() []string {
	return append([]string(nil), a.written...)
}

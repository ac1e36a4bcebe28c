package app

import (
	"errors"
	"fmt"

	"github.com/vk/sc2ta/internal/scheduler"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath string // a .hcl file, or a directory holding exactly one
	OutputDir string // defaults to the model file's directory

	// Scheduler is the scheduling policy name: "fixed" or "random".
	Scheduler string
	// KeepIntermediate persists the flattened model, the network and the
	// trace next to the final artifacts.
	KeepIntermediate bool

	LogFormat string
	LogLevel  string
}

// DefaultConfig returns the configuration used when no flag overrides it.
func DefaultConfig() Config {
	return Config{
		Scheduler:        scheduler.Fixed.String(),
		KeepIntermediate: true,
		LogFormat:        "text",
		LogLevel:         "info",
	}
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	if cfg.Scheduler == "" {
		cfg.Scheduler = scheduler.Fixed.String()
	}
	if _, err := scheduler.ParsePolicy(cfg.Scheduler); err != nil {
		return nil, err
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("unknown log format %q (expected text or json)", cfg.LogFormat)
	}
	return &cfg, nil
}

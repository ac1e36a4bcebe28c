package config

import (
	"context"

	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/trace"
	"github.com/vk/sc2ta/internal/uppaal"
)

// Loader is the interface for a format-specific model loader.
type Loader interface {
	// Load reads the model file at path and returns its package with every
	// component and interface reference resolved.
	Load(ctx context.Context, path string) (*model.Package, error)
}

// Persister writes the intermediate artifacts of a run.
type Persister interface {
	// SaveModel writes pkg so that Load on the same path yields a
	// structurally equal package.
	SaveModel(ctx context.Context, path string, pkg *model.Package) error
	SaveNetwork(ctx context.Context, path string, net *uppaal.Network) error
	SaveTrace(ctx context.Context, path string, tr *trace.Trace) error
}

// Store is a Loader and Persister backed by the same format.
type Store interface {
	Loader
	Persister
}

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/sc2ta/internal/ctxlog"
	"github.com/vk/sc2ta/internal/fsutil"
	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/serialize"
	"github.com/vk/sc2ta/internal/unfold"
)

const artifactMode = 0o644

// Run executes the transformation pipeline: load, validate the hierarchical
// model, unfold, optionally persist and reload the flattened model, validate
// the flat model, transform and write the artifacts. Artifacts written
// before a failing step are left in place. A failure is logged before it is
// returned.
func (a *App) Run(ctx context.Context) error {
	err := a.run(ctx)
	if err != nil {
		a.logger.Error("Transformation failed.", "model", a.config.ModelPath, "error", err)
	}
	return err
}

func (a *App) run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "model", a.config.ModelPath, "scheduler", a.config.Scheduler)
	a.written = nil

	loadCtx := ctxlog.Stage(ctx, "load")
	pkg, err := a.store.Load(loadCtx, a.config.ModelPath)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	if pkg.FSInfo == nil || pkg.FSInfo.FilePath == "" {
		return fmt.Errorf("loaded package %q has no source file", pkg.Name)
	}

	// Nested composites are checked here; flattening erases them.
	validateCtx := ctxlog.Stage(ctx, "validate")
	root, err := model.SelectRoot(pkg)
	if err != nil {
		return fmt.Errorf("failed to select root component: %w", err)
	}
	if err := a.validator.CheckModel(validateCtx, root); err != nil {
		return err
	}

	unfoldCtx := ctxlog.Stage(ctx, "unfold")
	flat, top, err := a.unfolder.Unfold(unfoldCtx, pkg)
	if err != nil {
		return fmt.Errorf("failed to unfold model: %w", err)
	}

	outDir := a.config.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(pkg.FSInfo.FilePath)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}
	paths := fsutil.ArtifactPaths(outDir, pkg.FSInfo.BaseName())

	if a.config.KeepIntermediate {
		persistCtx := ctxlog.Stage(ctx, "persist")
		top, err = a.roundTrip(persistCtx, paths.Flattened, flat, top)
		if err != nil {
			return err
		}
	}

	// Composed bindings only exist in the flat model.
	if err := a.validator.CheckModel(validateCtx, top); err != nil {
		return err
	}

	transformCtx := ctxlog.Stage(ctx, "transform")
	net, tr, err := a.transformer.Execute(transformCtx, top)
	if err != nil {
		return fmt.Errorf("failed to transform %q: %w", top.Name, err)
	}

	if a.config.KeepIntermediate {
		if err := a.store.SaveNetwork(ctx, paths.Network, net); err != nil {
			return fmt.Errorf("failed to save network: %w", err)
		}
		a.written = append(a.written, paths.Network)
		if err := a.store.SaveTrace(ctx, paths.Trace, tr); err != nil {
			return fmt.Errorf("failed to save trace: %w", err)
		}
		a.written = append(a.written, paths.Trace)
	}

	doc, err := serialize.EncodeXML(net)
	if err != nil {
		return err
	}
	if err := a.write(paths.XML, doc); err != nil {
		return err
	}
	if err := a.write(paths.Queries, serialize.EncodeQueries(a.transformer.TemplateLocations())); err != nil {
		return err
	}

	a.logger.Info("Transformation finished.",
		"component", top.Name,
		"templates", len(net.Templates),
		"channels", len(net.Channels),
		"xml", paths.XML,
		"queries", paths.Queries)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// roundTrip saves the flattened package, loads it back and returns the
// reloaded component equal to top.
func (a *App) roundTrip(ctx context.Context, path string, flat *model.Package, top *model.Component) (*model.Component, error) {
	if err := a.store.SaveModel(ctx, path, flat); err != nil {
		return nil, fmt.Errorf("failed to save flattened model: %w", err)
	}
	a.written = append(a.written, path)

	reloaded, err := a.store.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to reload flattened model: %w", err)
	}
	resolved, err := unfold.ResolveEquivalent(reloaded, top)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Flattened model reloaded.", "path", path, "component", resolved.Name)
	return resolved, nil
}

func (a *App) write(path string, b []byte) error {
	if err := fsutil.WriteFile(path, b, artifactMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.written = append(a.written, path)
	a.logger.Debug("Artifact written.", "path", path, "bytes", len(b))
	return nil
}

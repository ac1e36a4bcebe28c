package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/sc2ta/internal/ctxlog"
	"github.com/vk/sc2ta/internal/fsutil"
	"github.com/vk/sc2ta/internal/model"
)

// Store is the HCL-specific implementation of the config.Store interface.
type Store struct{}

// NewStore creates a new HCL store.
func NewStore() *Store {
	return &Store{}
}

// Load parses the model file at path. A directory is accepted when it
// contains exactly one .hcl file.
func (s *Store) Load(ctx context.Context, path string) (*model.Package, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	file, err := resolveModelFile(path)
	if err != nil {
		return nil, err
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}
	if len(root.Packages) != 1 {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid package count",
			Detail:   fmt.Sprintf("A model file must contain exactly one \"package\" block, found %d.", len(root.Packages)),
			Subject:  hclFile.Body.MissingItemRange().Ptr(),
		}})
	}

	pkg, err := translatePackage(ctx, root.Packages[0])
	if err != nil {
		return nil, fmt.Errorf("invalid model in %s: %w", file, err)
	}
	pkg.FSInfo = model.NewFSInfo(file)

	logger.Debug("HCL loading complete.", "package", pkg.Name, "interfaces", len(pkg.Interfaces), "components", len(pkg.Components))
	return pkg, nil
}

func resolveModelFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return "", fmt.Errorf("error searching %s for model files: %w", path, err)
	}
	if len(files) != 1 {
		return "", fmt.Errorf("directory %s must contain exactly one .hcl model file, found %d", path, len(files))
	}
	return files[0], nil
}

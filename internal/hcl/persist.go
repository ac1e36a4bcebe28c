package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/sc2ta/internal/ctxlog"
	"github.com/vk/sc2ta/internal/fsutil"
	"github.com/vk/sc2ta/internal/model"
)

const artifactMode = 0o644

// SaveModel writes pkg in the model schema. Loading the written file yields
// a package structurally equal to pkg.
func (s *Store) SaveModel(ctx context.Context, path string, pkg *model.Package) error {
	ctxlog.FromContext(ctx).Debug("Saving model.", "path", path, "package", pkg.Name)
	if err := fsutil.WriteFile(path, EncodeModel(pkg), artifactMode); err != nil {
		return fmt.Errorf("failed to save model to %s: %w", path, err)
	}
	return nil
}

// encodeSchema renders a gohcl-tagged value as a formatted HCL document.
func encodeSchema(v any) []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(v, f.Body())
	return hclwrite.Format(f.Bytes())
}

// decodeSchemaFile parses path and decodes it into v.
func decodeSchemaFile(path string, v any) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	if diags := gohcl.DecodeBody(file.Body, nil, v); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return nil
}

func diagError(summary, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{Severity: hcl.DiagError, Summary: summary, Detail: detail}}
}

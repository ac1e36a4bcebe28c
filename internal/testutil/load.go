package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/sc2ta/internal/hcl"
	"github.com/vk/sc2ta/internal/model"
)

// WriteModel writes src to <dir>/<name>.hcl in a fresh temporary directory
// and returns the file path.
func WriteModel(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".hcl")
	require.NoError(t, os.WriteFile(path, []byte(Unindent(src)), 0o644))
	return path
}

// LoadPackage writes src to a temporary file and loads it with the HCL
// store, failing the test on any error.
func LoadPackage(t *testing.T, src string) *model.Package {
	t.Helper()
	pkg, err := hcl.NewStore().Load(context.Background(), WriteModel(t, "model", src))
	require.NoError(t, err)
	return pkg
}

// Unindent removes the common leading whitespace of every non-blank line.
func Unindent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.Join(lines, "\n") + "\n"
	}
	for i, l := range lines {
		if len(l) >= indent {
			lines[i] = l[indent:]
		} else {
			lines[i] = strings.TrimLeft(l, " \t")
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

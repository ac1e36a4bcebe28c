package integration_tests

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/sc2ta/internal/app"
	"github.com/vk/sc2ta/internal/testutil"
	"github.com/vk/sc2ta/internal/validate"
)

// Test for: a directory must hold exactly one model file
func TestErrorHandling_AmbiguousModelDirectory(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"a.hcl": testutil.ScenarioHCL,
		"b.hcl": testutil.CrossroadHCL,
	}

	// --- Act ---
	res := testutil.RunPipeline(t, files, app.DefaultConfig())

	// --- Assert ---
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "exactly one .hcl model file, found 2")
	assert.Empty(t, res.App.Written())
}

// Test for: hidden files are not model candidates
func TestErrorHandling_HiddenFilesAreIgnored(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"scenario.hcl":     testutil.ScenarioHCL,
		".backup.hcl":      `package "broken" {`,
		".cache/stale.hcl": `package "broken" {`,
	}

	// --- Act ---
	res := testutil.RunPipeline(t, files, app.DefaultConfig())

	// --- Assert ---
	require.NoError(t, res.Err)
	assert.FileExists(t, filepath.Join(res.Dir, "scenario.xml"))
}

// Test for: every violation is reported and no artifact is written
func TestErrorHandling_ValidationReportsEveryViolation(t *testing.T) {
	// --- Arrange ---
	src := strings.Replace(testutil.ScenarioHCL, `target = "Running"`, `target = "Nowhere"`, 1)
	src = strings.Replace(src, `target  = "On"`, `target  = "Elsewhere"`, 1)

	// --- Act ---
	res := testutil.RunPipeline(t, map[string]string{"scenario.hcl": src}, app.DefaultConfig())

	// --- Assert ---
	var verr *validate.ValidationError
	require.True(t, errors.As(res.Err, &verr), "got %v", res.Err)
	var components []string
	for _, v := range verr.Violations {
		components = append(components, v.Component)
	}
	assert.Contains(t, components, "A")
	assert.Contains(t, components, "B")
	assert.Contains(t, res.Err.Error(), "Nowhere")
	assert.Contains(t, res.Err.Error(), "Elsewhere")

	assert.NoFileExists(t, filepath.Join(res.Dir, ".scenario.gsm"), "the hierarchical model is checked before unfolding")
	assert.NoFileExists(t, filepath.Join(res.Dir, "scenario.xml"))
	assert.Empty(t, res.App.Written())
}

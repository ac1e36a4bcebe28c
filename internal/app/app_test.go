package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/sc2ta/internal/app"
	"github.com/vk/sc2ta/internal/fsutil"
	"github.com/vk/sc2ta/internal/hcl"
	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/testutil"
	"github.com/vk/sc2ta/internal/trace"
	"github.com/vk/sc2ta/internal/validate"
)

func newApp(t *testing.T, cfg app.Config) (*app.App, *testutil.SafeBuffer) {
	t.Helper()
	c, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logs := &testutil.SafeBuffer{}
	t.Cleanup(func() { testutil.DumpLogs(t, logs) })
	return app.NewApp(logs, c, nil), logs
}

func TestRun_FixedWithIntermediates(t *testing.T) {
	// --- Arrange ---
	modelPath := testutil.WriteModel(t, "scenario", testutil.ScenarioHCL)
	cfg := app.DefaultConfig()
	cfg.ModelPath = modelPath
	cfg.LogLevel = "debug"
	a, logs := newApp(t, cfg)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	paths := fsutil.ArtifactPaths(filepath.Dir(modelPath), "scenario")
	assert.Equal(t, paths.All(), a.Written())
	for _, p := range paths.All() {
		assert.FileExists(t, p)
	}

	queries, err := os.ReadFile(paths.Queries)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"E<> a.Idle && isStable",
		"E<> a.Running && isStable",
		"E<> b.Off && isStable",
		"E<> b.On && isStable",
	}, "\n")+"\n", string(queries))

	doc, err := os.ReadFile(paths.XML)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<name>Scheduler</name>")
	assert.Contains(t, string(doc), "system a, b, Scheduler;")

	store := hcl.NewStore()
	net, err := store.LoadNetwork(context.Background(), paths.Network)
	require.NoError(t, err)
	tr, err := store.LoadTrace(context.Background(), paths.Trace)
	require.NoError(t, err)
	require.NoError(t, tr.Verify(net), "persisted trace resolves against persisted network")
	assert.Equal(t, 4, tr.Count(trace.KindState))

	assert.Contains(t, logs.String(), "Transformation finished.")
	assert.Contains(t, logs.String(), "stage=validate")
	assert.Contains(t, logs.String(), "stage=unfold")
	assert.Contains(t, logs.String(), "stage=transform")
	assert.NotContains(t, logs.String(), "level=ERROR")
}

func TestRun_WithoutIntermediates(t *testing.T) {
	// --- Arrange ---
	modelPath := testutil.WriteModel(t, "crossroad", testutil.CrossroadHCL)
	outDir := filepath.Join(t.TempDir(), "out", "nested")
	cfg := app.DefaultConfig()
	cfg.ModelPath = filepath.Dir(modelPath)
	cfg.OutputDir = outDir
	cfg.KeepIntermediate = false
	cfg.Scheduler = "random"
	a, _ := newApp(t, cfg)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	paths := fsutil.ArtifactPaths(outDir, "crossroad")
	assert.Equal(t, []string{paths.XML, paths.Queries}, a.Written())
	assert.NoFileExists(t, paths.Flattened)
	assert.NoFileExists(t, paths.Network)
	assert.NoFileExists(t, paths.Trace)

	doc, err := os.ReadFile(paths.XML)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "<name>Scheduler</name>")
	assert.Contains(t, string(doc), "<name>Environment</name>")
}

func TestRun_Errors(t *testing.T) {
	twoRoots := strings.Replace(testutil.ScenarioHCL, `composite "System" {`, `composite "Other" {
    instance "x" {
      component = "A"
    }
  }

  composite "System" {`, 1)
	noRoot := testutil.ScenarioHCL[:strings.Index(testutil.ScenarioHCL, `composite "System"`)] + "}\n"
	badTarget := strings.Replace(testutil.ScenarioHCL, `target = "Running"`, `target = "Nowhere"`, 1)
	hollow := strings.Replace(testutil.ScenarioHCL, `composite "System" {`, `composite "Hollow" {}

  composite "System" {
    instance "h" {
      component = "Hollow"
    }`, 1)
	hollow = strings.Replace(hollow, `execution = ["a", "b"]`, `execution = ["a", "b", "h"]`, 1)
	nestedWrongDirection := strings.Replace(testutil.CrossroadHCL, `from = "control.toggle"`, `from = "control.done"`, 1)

	selectionError := func(wantCandidates []string) func(t *testing.T, err error) {
		return func(t *testing.T, err error) {
			var sel *model.SelectionError
			require.True(t, errors.As(err, &sel), "got %v", err)
			assert.Equal(t, wantCandidates, sel.Candidates)
		}
	}
	validationError := func(component, message string) func(t *testing.T, err error) {
		return func(t *testing.T, err error) {
			var verr *validate.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			var components []string
			for _, v := range verr.Violations {
				components = append(components, v.Component)
			}
			assert.Contains(t, components, component)
			assert.Contains(t, err.Error(), message)
		}
	}

	testCases := []struct {
		name  string
		src   string
		check func(t *testing.T, err error)
	}{
		{
			name:  "two roots",
			src:   twoRoots,
			check: selectionError([]string{"Other", "System"}),
		},
		{
			name:  "no root",
			src:   noRoot,
			check: selectionError([]string{}),
		},
		{
			name:  "invalid transition target",
			src:   badTarget,
			check: validationError("A", "Nowhere"),
		},
		{
			name:  "nested composite without instances",
			src:   hollow,
			check: validationError("Hollow", "composite has no instances"),
		},
		{
			name:  "nested binding against the signal direction",
			src:   nestedWrongDirection,
			check: validationError("Pair", "cannot be a source"),
		},
		{
			name: "unparsable model",
			src:  `package "broken" {`,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "failed to load model")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			modelPath := testutil.WriteModel(t, "broken", tc.src)
			cfg := app.DefaultConfig()
			cfg.ModelPath = modelPath
			a, logs := newApp(t, cfg)

			// --- Act ---
			err := a.Run(context.Background())

			// --- Assert ---
			require.Error(t, err)
			tc.check(t, err)
			assert.Empty(t, a.Written())
			paths := fsutil.ArtifactPaths(filepath.Dir(modelPath), "broken")
			for _, p := range paths.All() {
				assert.NoFileExists(t, p)
			}
			assert.Contains(t, logs.String(), "level=ERROR")
			assert.Contains(t, logs.String(), `msg="Transformation failed."`)
		})
	}
}

func TestRun_MissingModel(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.ModelPath = filepath.Join(t.TempDir(), "absent.hcl")
	a, _ := newApp(t, cfg)

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.hcl")
	assert.Empty(t, a.Written())
}

func TestRun_JSONLogs(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.ModelPath = testutil.WriteModel(t, "scenario", testutil.ScenarioHCL)
	cfg.LogFormat = "json"
	cfg.LogLevel = "info"
	a, logs := newApp(t, cfg)

	require.NoError(t, a.Run(context.Background()))

	out := logs.String()
	assert.Contains(t, out, `"msg":"Transformation finished."`)
	assert.NotContains(t, out, "App.Run method started.", "debug records are filtered at info level")
}

func TestNewApp_UnknownSchedulerFallsBackToFixed(t *testing.T) {
	// --- Arrange ---
	cfg := app.DefaultConfig()
	cfg.ModelPath = testutil.WriteModel(t, "scenario", testutil.ScenarioHCL)
	cfg.Scheduler = "round-robin"
	logs := &testutil.SafeBuffer{}

	// --- Act ---
	a := app.NewApp(logs, &cfg, nil)
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	out := logs.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `scheduler=round-robin`)

	doc, err := os.ReadFile(fsutil.ArtifactPaths(filepath.Dir(cfg.ModelPath), "scenario").XML)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<name>Scheduler</name>", "the fixed policy generates a coordinator")
}

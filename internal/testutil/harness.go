package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/sc2ta/internal/app"
)

// logsEnv enables dumping captured logs of every harness run.
const logsEnv = "SC2TA_TEST_LOGS"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// DumpLogs writes the captured logs to the test log when SC2TA_TEST_LOGS
// is "true".
func DumpLogs(t *testing.T, logs *SafeBuffer) {
	t.Helper()
	if os.Getenv(logsEnv) == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}
}

// HarnessResult holds the outcomes of a pipeline run.
type HarnessResult struct {
	Dir       string
	LogOutput string
	Err       error
	App       *app.App
}

// Artifact reads a file the run wrote into Dir.
func (r *HarnessResult) Artifact(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(r.Dir, name))
	require.NoError(t, err)
	return string(b)
}

// RunPipeline writes files into a fresh directory, points cfg.ModelPath at
// the directory (relative paths in files are kept) and runs the full
// pipeline with debug logging. Artifacts land next to the model unless
// cfg.OutputDir is set.
func RunPipeline(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(Unindent(content)), 0o644))
	}

	if cfg.ModelPath == "" {
		cfg.ModelPath = dir
	} else if !filepath.IsAbs(cfg.ModelPath) {
		cfg.ModelPath = filepath.Join(dir, cfg.ModelPath)
	}
	cfg.LogLevel = "debug"
	c, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logs := &SafeBuffer{}
	a := app.NewApp(logs, c, nil)
	runErr := a.Run(context.Background())
	DumpLogs(t, logs)

	return &HarnessResult{
		Dir:       dir,
		LogOutput: logs.String(),
		Err:       runErr,
		App:       a,
	}
}

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/unfold"
	"github.com/vk/sc2ta/internal/validate"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		args      []string
		wantExit  bool
		wantCode  int
		wantError string
		check     func(t *testing.T, out string, cfgPath, scheduler, outDir string, keep bool)
	}{
		{
			name:     "no arguments prints usage",
			args:     nil,
			wantExit: true,
			check: func(t *testing.T, out string, _, _, _ string, _ bool) {
				assert.Contains(t, out, "Usage:")
				assert.Contains(t, out, "MODEL_PATH")
			},
		},
		{
			name:     "help flag",
			args:     []string{"-h"},
			wantExit: true,
			check: func(t *testing.T, out string, _, _, _ string, _ bool) {
				assert.Contains(t, out, "--scheduler")
			},
		},
		{
			name: "defaults",
			args: []string{"model.hcl"},
			check: func(t *testing.T, _ string, path, scheduler, outDir string, keep bool) {
				assert.Equal(t, "model.hcl", path)
				assert.Equal(t, "fixed", scheduler)
				assert.Empty(t, outDir)
				assert.True(t, keep)
			},
		},
		{
			name: "all flags",
			args: []string{"--scheduler", "random", "--keep-intermediate=false", "-o", "out", "--log-level", "DEBUG", "--log-format", "json", "models/"},
			check: func(t *testing.T, _ string, path, scheduler, outDir string, keep bool) {
				assert.Equal(t, "models/", path)
				assert.Equal(t, "random", scheduler)
				assert.Equal(t, "out", outDir)
				assert.False(t, keep)
			},
		},
		{name: "unknown flag", args: []string{"--bogus", "m.hcl"}, wantCode: ExitUsage, wantError: "unknown flag: --bogus"},
		{name: "two paths", args: []string{"a.hcl", "b.hcl"}, wantCode: ExitUsage, wantError: "single MODEL_PATH"},
		{name: "bad scheduler", args: []string{"-s", "lottery", "m.hcl"}, wantCode: ExitUsage, wantError: "lottery"},
		{name: "bad log level", args: []string{"--log-level", "loud", "m.hcl"}, wantCode: ExitUsage, wantError: "log level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.wantError != "" {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr), "got %v", err)
				assert.Equal(t, tc.wantCode, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, shouldExit)
			if tc.wantExit {
				assert.Nil(t, cfg)
				tc.check(t, out.String(), "", "", "", false)
				return
			}
			require.NotNil(t, cfg)
			tc.check(t, out.String(), cfg.ModelPath, cfg.Scheduler, cfg.OutputDir, cfg.KeepIntermediate)
		})
	}
}

func TestExitFor(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "selection", err: fmt.Errorf("failed to unfold model: %w", &model.SelectionError{Package: "p"}), want: ExitSelection},
		{name: "validation", err: &validate.ValidationError{Violations: []validate.Violation{{Component: "S", Message: "bad"}}}, want: ExitValidation},
		{name: "identity", err: &unfold.IdentityError{Component: "Top"}, want: ExitIdentity},
		{name: "usage", err: &ExitError{Code: ExitUsage, Message: "x"}, want: ExitUsage},
		{name: "other", err: errors.New("disk full"), want: ExitFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExitFor(tc.err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Code)
			assert.Equal(t, tc.err.Error(), got.Message)
		})
	}

	assert.Nil(t, ExitFor(nil))
}

package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/sc2ta/internal/app"
)

// Process exit codes.
const (
	ExitFailure    = 1
	ExitUsage      = 2
	ExitSelection  = 3
	ExitValidation = 4
	ExitIdentity   = 5
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `sc2ta - Statechart composition to timed automata.

Flattens the root composite of MODEL_PATH, validates it and writes a
network of timed automata ({name}.xml) with one reachability query per
stable location ({name}.q). With --keep-intermediate the flattened model,
the network and the trace are kept as hidden files next to them.

MODEL_PATH is a .hcl file or a directory containing exactly one.`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}

	cfg := app.DefaultConfig()
	var parsed *app.Config

	cmd := &cobra.Command{
		Use:           "sc2ta [flags] MODEL_PATH",
		Short:         "Transform a statechart composition into timed automata",
		Long:          longHelp,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return &ExitError{Code: ExitUsage, Message: "expected a single MODEL_PATH, got " + strings.Join(args, " ")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				slog.Debug("No model path provided, printing usage and exiting.")
				return cmd.Help()
			}
			cfg.ModelPath = args[0]
			cfg.LogFormat = strings.ToLower(cfg.LogFormat)
			cfg.LogLevel = strings.ToLower(cfg.LogLevel)

			c, err := app.NewConfig(cfg)
			if err != nil {
				return &ExitError{Code: ExitUsage, Message: err.Error()}
			}
			parsed = c
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Scheduler, "scheduler", "s", cfg.Scheduler, "Scheduling policy. Options: 'fixed' or 'random'.")
	flags.BoolVar(&cfg.KeepIntermediate, "keep-intermediate", cfg.KeepIntermediate, "Keep the flattened model, network and trace artifacts.")
	flags.StringVarP(&cfg.OutputDir, "output-dir", "o", "", "Directory for the artifacts (default: the model file's directory).")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	})
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if parsed == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", parsed)
	return parsed, false, nil
}

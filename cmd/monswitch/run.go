// Package main switches a two-monitor desktop between the game and work layouts.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/frudas24/monswitch/internal/config"
	"github.com/frudas24/monswitch/internal/display"
	"github.com/frudas24/monswitch/internal/layout"
	"github.com/frudas24/monswitch/internal/switcher"
)

const usageLine = "USAGE: monswitch [game | work]"

// dependencies holds the platform hooks used by a run.
type dependencies struct {
	newAPI func() (display.API, error)
	lister switcher.Lister
}

// invalidModeError reports a positional argument that is not a preset.
type invalidModeError struct {
	mode string
	err  error
}

// Error returns the underlying parse error.
func (e *invalidModeError) Error() string {
	return e.err.Error()
}

// Unwrap returns the underlying parse error.
func (e *invalidModeError) Unwrap() error {
	return e.err
}

// execute runs the CLI with args and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer, deps dependencies) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(stdout, stderr, deps)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// -h/--help is not a preset: print usage to stderr and fail like any other bad argument.
	helpShown := false
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		helpShown = true
		fmt.Fprintf(stderr, "%s\n\nFlags:\n%s", usageLine, c.Flags().FlagUsages())
	})

	err := cmd.Execute()
	if err == nil && !helpShown {
		return 0
	}
	if err == nil {
		return 1
	}
	var modeErr *invalidModeError
	switch {
	case errors.As(err, &modeErr):
		fmt.Fprintf(stderr, "Invalid mode: %s\n\n%s\n", modeErr.mode, usageLine)
	case errors.Is(err, config.ErrUsage):
		fmt.Fprintln(stderr, usageLine)
	default:
		fmt.Fprintf(stderr, "%v\n", err)
	}
	return 1
}

// newRootCmd builds the root command; errors are reported by execute.
func newRootCmd(stdout, stderr io.Writer, deps dependencies) *cobra.Command {
	var debug, dryRun bool

	cmd := &cobra.Command{
		Use:           "monswitch [game | work]",
		Short:         "Switch the two-monitor desktop between the game and work layouts",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.FromArgs(args, debug, dryRun)
			if errors.Is(err, layout.ErrUnknownPreset) {
				return &invalidModeError{mode: args[0], err: err}
			}
			if err != nil {
				return err
			}
			return run(opts, stdout, stderr, deps)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable verbose debug logging")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the planned layout without changing anything")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", config.ErrUsage, err)
	})
	return cmd
}

// run performs one preset switch and reports the outcome on stdout.
func run(opts config.Options, stdout, stderr io.Writer, deps dependencies) error {
	log.SetOutput(stderr)
	log.SetFlags(0)
	switcher.SetDebugLogging(opts.Debug)
	if opts.Debug {
		log.Printf("debug: enabled preset=%s dry-run=%v", opts.Preset, opts.DryRun)
	}

	api, err := deps.newAPI()
	if err != nil {
		return err
	}

	sw := switcher.New(api, switcher.Options{DryRun: opts.DryRun, Lister: deps.lister})
	res, err := sw.Run(opts.Preset)
	if err != nil {
		return err
	}

	if opts.DryRun {
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(res.Plan); err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprintln(stdout, "OK")
	return nil
}

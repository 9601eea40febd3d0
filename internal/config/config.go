// Package config validates the command-line options for a preset switch.
package config

import (
	"errors"
	"fmt"

	"github.com/frudas24/monswitch/internal/layout"
)

// ErrUsage indicates the positional arguments do not name exactly one preset.
var ErrUsage = errors.New("expected exactly one preset argument")

// Options holds runtime options for a single switch.
type Options struct {
	Preset layout.Preset
	Debug  bool
	DryRun bool
}

// FromArgs builds options from positional arguments and flag values.
func FromArgs(args []string, debug, dryRun bool) (Options, error) {
	if len(args) != 1 {
		return Options{}, ErrUsage
	}
	preset, err := layout.ParsePreset(args[0])
	if err != nil {
		return Options{}, fmt.Errorf("invalid mode: %w", err)
	}
	return Options{Preset: preset, Debug: debug, DryRun: dryRun}, nil
}

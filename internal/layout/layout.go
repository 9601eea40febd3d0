// Package layout computes target display modes for the game and work presets.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/frudas24/monswitch/internal/display"
)

// AnchorWidth identifies the anchor monitor by its native width.
const AnchorWidth = 2560

// ErrUnknownPreset indicates a preset name other than game or work.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset selects a fixed two-monitor layout.
type Preset int

const (
	// Game puts the rotating monitor in landscape as the primary display.
	Game Preset = iota
	// Work puts the rotating monitor in portrait to the right of the anchor.
	Work
)

// ParsePreset returns the preset named by s, ignoring case.
func ParsePreset(s string) (Preset, error) {
	switch strings.ToLower(s) {
	case "game":
		return Game, nil
	case "work":
		return Work, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownPreset, s)
	}
}

// String returns the preset name.
func (p Preset) String() string {
	switch p {
	case Game:
		return "game"
	case Work:
		return "work"
	default:
		return fmt.Sprintf("preset(%d)", int(p))
	}
}

// MarshalYAML renders the preset by name.
func (p Preset) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// Role names the part a monitor plays in a layout.
type Role int

const (
	// Rotating is the monitor whose resolution and orientation change.
	Rotating Role = iota
	// Anchor is the 2560-wide monitor that only moves.
	Anchor
)

// String returns the monitor label for the role.
func (r Role) String() string {
	if r == Anchor {
		return "Dell"
	}
	return "HP"
}

// MarshalYAML renders the role by label.
func (r Role) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// Screen pairs a device name with its current mode.
type Screen struct {
	Device string
	Mode   display.Mode
}

// Target is the mode a monitor should be moved to.
type Target struct {
	Role    Role         `yaml:"role"`
	Device  string       `yaml:"device"`
	Mode    display.Mode `yaml:"mode"`
	Primary bool         `yaml:"primary"`
}

// Plan holds the targets for both monitors under a preset.
type Plan struct {
	Preset   Preset `yaml:"preset"`
	Rotating Target `yaml:"rotating"`
	Anchor   Target `yaml:"anchor"`
	// Ambiguous is set when both monitors report the anchor width.
	Ambiguous bool `yaml:"ambiguous,omitempty"`
}

// StageFlags returns the change flags used to stage t.
func (t Target) StageFlags() display.ChangeFlags {
	flags := display.UpdateRegistry | display.NoReset
	if t.Primary {
		flags |= display.SetPrimary
	}
	return flags
}

// Primary returns the target that becomes the primary display.
func (p Plan) Primary() Target {
	if p.Rotating.Primary {
		return p.Rotating
	}
	return p.Anchor
}

// Identify splits the two screens into the rotating and anchor monitors.
// A primary that is not AnchorWidth wide is the rotating monitor.
func Identify(primary, secondary Screen) (Screen, Screen) {
	if primary.Mode.Width != AnchorWidth {
		return primary, secondary
	}
	return secondary, primary
}

// Build computes the plan for preset from the current primary and secondary screens.
func Build(preset Preset, primary, secondary Screen) (Plan, error) {
	rotating, anchor := Identify(primary, secondary)

	rot := rotating.Mode
	anc := anchor.Mode
	var rotPrimary bool

	switch preset {
	case Work:
		rot.Width, rot.Height = 1080, 1920
		rot.X, rot.Y = 2560, -263
		rot.Orientation = display.Orientation90
		anc.X, anc.Y = 0, 0
		rotPrimary = false
	case Game:
		rot.Width, rot.Height = 1920, 1080
		rot.X, rot.Y = 0, 0
		rot.Orientation = display.OrientationDefault
		anc.X, anc.Y = -2560, -155
		rotPrimary = true
	default:
		return Plan{}, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}

	rot.Fields = display.FieldWidth | display.FieldHeight | display.FieldOrientation | display.FieldPosition
	anc.Fields = display.FieldPosition

	return Plan{
		Preset:    preset,
		Rotating:  Target{Role: Rotating, Device: rotating.Device, Mode: rot, Primary: rotPrimary},
		Anchor:    Target{Role: Anchor, Device: anchor.Device, Mode: anc, Primary: !rotPrimary},
		Ambiguous: primary.Mode.Width == AnchorWidth && secondary.Mode.Width == AnchorWidth,
	}, nil
}

// Package display enumerates attached displays and reads or changes their modes.
package display

import (
	"errors"
	"fmt"
)

// MaxNameLen bounds a device name in UTF-16 units, matching the OS device name buffer.
const MaxNameLen = 32

// StateFlags describes the state bits reported for a display device.
type StateFlags uint32

const (
	// StateAttachedToDesktop marks a device that is part of the desktop.
	StateAttachedToDesktop StateFlags = 0x00000001
	// StatePrimary marks the primary desktop device.
	StatePrimary StateFlags = 0x00000004
)

// Device identifies a display device by name and state.
type Device struct {
	Name       string
	StateFlags StateFlags
}

// AttachedToDesktop reports whether the device is part of the desktop.
func (d Device) AttachedToDesktop() bool {
	return d.StateFlags&StateAttachedToDesktop != 0
}

// Primary reports whether the device is flagged as the primary display.
func (d Device) Primary() bool {
	return d.StateFlags&StatePrimary != 0
}

// Orientation is the rotation of a display mode.
type Orientation uint32

const (
	// OrientationDefault is the natural landscape orientation.
	OrientationDefault Orientation = 0
	// Orientation90 rotates the output by 90 degrees.
	Orientation90 Orientation = 1
	// Orientation180 rotates the output by 180 degrees.
	Orientation180 Orientation = 2
	// Orientation270 rotates the output by 270 degrees.
	Orientation270 Orientation = 3
)

// String returns the rotation in degrees.
func (o Orientation) String() string {
	switch o {
	case OrientationDefault:
		return "0"
	case Orientation90:
		return "90"
	case Orientation180:
		return "180"
	case Orientation270:
		return "270"
	default:
		return fmt.Sprintf("orientation(%d)", uint32(o))
	}
}

// MarshalYAML renders the orientation in degrees.
func (o Orientation) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}

// Fields marks which members of a Mode are meaningful in a change request.
type Fields uint32

// Field bits share their values with the DM_* constants of DEVMODEW.
const (
	// FieldPosition marks X and Y.
	FieldPosition Fields = 0x00000020
	// FieldOrientation marks Orientation.
	FieldOrientation Fields = 0x00000080
	// FieldWidth marks Width.
	FieldWidth Fields = 0x00080000
	// FieldHeight marks Height.
	FieldHeight Fields = 0x00100000
)

// Has reports whether every bit in f is set.
func (fs Fields) Has(f Fields) bool {
	return fs&f == f
}

// Names lists the set fields in a stable order.
func (fs Fields) Names() []string {
	var names []string
	for _, f := range []struct {
		bit  Fields
		name string
	}{
		{FieldWidth, "width"},
		{FieldHeight, "height"},
		{FieldOrientation, "orientation"},
		{FieldPosition, "position"},
	} {
		if fs.Has(f.bit) {
			names = append(names, f.name)
		}
	}
	return names
}

// MarshalYAML renders the mask as a list of field names.
func (fs Fields) MarshalYAML() (interface{}, error) {
	return fs.Names(), nil
}

// Mode is the resolution, position and orientation of a display.
type Mode struct {
	Width       uint32      `yaml:"width"`
	Height      uint32      `yaml:"height"`
	X           int32       `yaml:"x"`
	Y           int32       `yaml:"y"`
	Orientation Orientation `yaml:"orientation"`
	Fields      Fields      `yaml:"fields"`
}

// String renders the mode as WxH@X,Y/deg.
func (m Mode) String() string {
	return fmt.Sprintf("%dx%d@%d,%d/%s", m.Width, m.Height, m.X, m.Y, m.Orientation)
}

// ChangeFlags controls how a mode change request is handled by the OS.
type ChangeFlags uint32

const (
	// UpdateRegistry persists the mode in the registry.
	UpdateRegistry ChangeFlags = 0x00000001
	// SetPrimary makes the device the primary display.
	SetPrimary ChangeFlags = 0x00000010
	// NoReset stages the change without applying it.
	NoReset ChangeFlags = 0x10000000
)

// API is the OS display-configuration service.
type API interface {
	// Device returns the device at index, or false past the end of the list.
	Device(index int) (Device, bool)
	// CurrentMode reads the active mode of the named device.
	CurrentMode(name string) (Mode, error)
	// Stage requests a mode change for the named device.
	Stage(name string, mode Mode, flags ChangeFlags) Status
	// Commit applies all staged changes.
	Commit() Status
}

// ErrUnsupported indicates the display API is not available on this platform.
var ErrUnsupported = errors.New("display configuration is only supported on Windows")

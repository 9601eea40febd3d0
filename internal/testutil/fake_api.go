// Package testutil provides test doubles for the display API.
package testutil

import (
	"errors"

	"github.com/frudas24/monswitch/internal/display"
)

// ErrNoSuchDevice is returned by FakeAPI for unknown device names.
var ErrNoSuchDevice = errors.New("no such device")

// Call records a single request made against the fake.
type Call struct {
	Name   string
	Device string
	Mode   display.Mode
	Flags  display.ChangeFlags
}

// FakeDevice is a simulated display device and its live mode.
type FakeDevice struct {
	Name     string
	Attached bool
	Primary  bool
	Mode     display.Mode
}

type staged struct {
	device string
	mode   display.Mode
	flags  display.ChangeFlags
}

// FakeAPI implements display.API over in-memory devices and records calls.
// Staged changes take effect on Commit, including primary reassignment.
type FakeAPI struct {
	Devices    []FakeDevice
	Calls      []Call
	ReadErr    map[string]error
	StageCodes map[string]display.Status
	CommitCode display.Status

	pending []staged
}

// Ensure FakeAPI implements the interface.
var _ display.API = (*FakeAPI)(nil)

// NewTwoMonitorAPI returns a fake with an HP primary at 1920x1080 and a Dell secondary at 2560x1440.
func NewTwoMonitorAPI() *FakeAPI {
	return &FakeAPI{
		Devices: []FakeDevice{
			{
				Name:     `\\.\DISPLAY1`,
				Attached: true,
				Primary:  true,
				Mode:     display.Mode{Width: 1920, Height: 1080},
			},
			{
				Name:     `\\.\DISPLAY2`,
				Attached: true,
				Mode:     display.Mode{Width: 2560, Height: 1440, X: -2560, Y: -155},
			},
		},
	}
}

// Device returns the device at index.
func (f *FakeAPI) Device(index int) (display.Device, bool) {
	f.Calls = append(f.Calls, Call{Name: "Device"})
	if index < 0 || index >= len(f.Devices) {
		return display.Device{}, false
	}
	d := f.Devices[index]
	var flags display.StateFlags
	if d.Attached {
		flags |= display.StateAttachedToDesktop
	}
	if d.Primary {
		flags |= display.StatePrimary
	}
	return display.Device{Name: d.Name, StateFlags: flags}, true
}

// CurrentMode returns the live mode of the named device.
func (f *FakeAPI) CurrentMode(name string) (display.Mode, error) {
	f.Calls = append(f.Calls, Call{Name: "CurrentMode", Device: name})
	if err := f.ReadErr[name]; err != nil {
		return display.Mode{}, err
	}
	d := f.find(name)
	if d == nil {
		return display.Mode{}, ErrNoSuchDevice
	}
	return d.Mode, nil
}

// Stage records a change and queues it for Commit unless a failure code is configured.
func (f *FakeAPI) Stage(name string, mode display.Mode, flags display.ChangeFlags) display.Status {
	f.Calls = append(f.Calls, Call{Name: "Stage", Device: name, Mode: mode, Flags: flags})
	if code, ok := f.StageCodes[name]; ok && !code.OK() {
		return code
	}
	if f.find(name) == nil {
		return display.BadParam
	}
	f.pending = append(f.pending, staged{device: name, mode: mode, flags: flags})
	return display.Successful
}

// Commit applies queued changes unless a failure code is configured.
func (f *FakeAPI) Commit() display.Status {
	f.Calls = append(f.Calls, Call{Name: "Commit"})
	if !f.CommitCode.OK() {
		return f.CommitCode
	}
	for _, p := range f.pending {
		d := f.find(p.device)
		applyFields(&d.Mode, p.mode)
		if p.flags&display.SetPrimary != 0 {
			for i := range f.Devices {
				f.Devices[i].Primary = f.Devices[i].Name == p.device
			}
		}
	}
	f.pending = nil
	return display.Successful
}

// Count returns how many calls with the given name were recorded.
func (f *FakeAPI) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Stages returns the recorded Stage calls in order.
func (f *FakeAPI) Stages() []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Name == "Stage" {
			out = append(out, c)
		}
	}
	return out
}

// find returns the device with the given name.
func (f *FakeAPI) find(name string) *FakeDevice {
	for i := range f.Devices {
		if f.Devices[i].Name == name {
			return &f.Devices[i]
		}
	}
	return nil
}

// applyFields copies the members of src selected by src.Fields into dst.
func applyFields(dst *display.Mode, src display.Mode) {
	if src.Fields.Has(display.FieldWidth) {
		dst.Width = src.Width
	}
	if src.Fields.Has(display.FieldHeight) {
		dst.Height = src.Height
	}
	if src.Fields.Has(display.FieldPosition) {
		dst.X = src.X
		dst.Y = src.Y
	}
	if src.Fields.Has(display.FieldOrientation) {
		dst.Orientation = src.Orientation
	}
}

// Package monitor lists the live desktop monitors and their bounds.
package monitor

import "fmt"

// Monitor describes a desktop monitor and its bounds.
type Monitor struct {
	Index   int
	Device  string
	X       int
	Y       int
	W       int
	H       int
	Primary bool
}

// String renders the device and bounds.
func (m Monitor) String() string {
	primary := ""
	if m.Primary {
		primary = " [primary]"
	}
	return fmt.Sprintf("[%d] %s %dx%d@%d,%d%s", m.Index, m.Device, m.W, m.H, m.X, m.Y, primary)
}

// FindPrimary returns the monitor flagged as primary.
func FindPrimary(list []Monitor) (Monitor, bool) {
	for _, m := range list {
		if m.Primary {
			return m, true
		}
	}
	return Monitor{}, false
}

// FindByDevice returns the monitor attached to the named display device.
func FindByDevice(list []Monitor, device string) (Monitor, bool) {
	for _, m := range list {
		if m.Device == device {
			return m, true
		}
	}
	return Monitor{}, false
}

// Matches reports whether the monitor has the given origin and size.
func Matches(m Monitor, x, y, w, h int) bool {
	return m.X == x && m.Y == y && m.W == w && m.H == h
}

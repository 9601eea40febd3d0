//go:build !windows

// Package monitor lists the live desktop monitors and their bounds.
package monitor

import "fmt"

// ListMonitors returns an error on non-Windows platforms.
func ListMonitors() ([]Monitor, error) {
	return nil, fmt.Errorf("ListMonitors is only supported on Windows")
}

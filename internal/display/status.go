// Package display enumerates attached displays and reads or changes their modes.
package display

import "fmt"

// Status is the result code of a mode change request.
type Status int32

// Status values match the DISP_CHANGE_* return codes.
const (
	// Successful means the request was accepted.
	Successful Status = 0
	// Restart means a reboot is needed for the mode to take effect.
	Restart Status = 1
	// Failed means the display driver rejected the mode.
	Failed Status = -1
	// BadMode means the graphics mode is not supported.
	BadMode Status = -2
	// NotUpdated means the settings could not be written to the registry.
	NotUpdated Status = -3
	// BadFlags means an invalid set of change flags was passed.
	BadFlags Status = -4
	// BadParam means a parameter was invalid.
	BadParam Status = -5
	// BadDualView means the system is DualView capable and the request conflicts with it.
	BadDualView Status = -6
)

// OK reports whether the request succeeded.
func (s Status) OK() bool {
	return s == Successful
}

// Reason returns the human-readable message for a failure code.
func (s Status) Reason() string {
	switch s {
	case BadFlags:
		return "Invalid flags"
	case BadMode:
		return "Graphics mode not supported"
	case BadParam:
		return "Invalid parameter(s)"
	case Failed:
		return "Display driver failed specified mode"
	case NotUpdated:
		return "Unable to write settings to registry"
	default:
		return "Unknown error"
	}
}

// String returns the code and its reason.
func (s Status) String() string {
	if s.OK() {
		return "success"
	}
	return fmt.Sprintf("%s (%d)", s.Reason(), int32(s))
}

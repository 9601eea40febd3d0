//go:build !windows

// Package display enumerates attached displays and reads or changes their modes.
package display

// NoopAPI is a placeholder display API for non-Windows builds.
type NoopAPI struct{}

// NewAPI returns a non-functional API on non-Windows platforms.
func NewAPI() (API, error) {
	return &NoopAPI{}, ErrUnsupported
}

// Device reports an empty device list.
func (n *NoopAPI) Device(index int) (Device, bool) {
	_ = index
	return Device{}, false
}

// CurrentMode returns ErrUnsupported.
func (n *NoopAPI) CurrentMode(name string) (Mode, error) {
	_ = name
	return Mode{}, ErrUnsupported
}

// Stage reports a failed request.
func (n *NoopAPI) Stage(name string, mode Mode, flags ChangeFlags) Status {
	_ = name
	_ = mode
	_ = flags
	return Failed
}

// Commit reports a failed request.
func (n *NoopAPI) Commit() Status {
	return Failed
}

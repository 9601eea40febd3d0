// Package display enumerates attached displays and reads or changes their modes.
package display

import (
	"errors"
	"fmt"
	"unicode/utf16"
)

var (
	// ErrNamesUnresolved indicates a primary or secondary display was not found.
	ErrNamesUnresolved = errors.New("could not determine display names")
	// ErrTooManyDisplays indicates more than two displays are attached to the desktop.
	ErrTooManyDisplays = errors.New("more than two displays attached to desktop")
)

// ResolveNames returns the names of the primary and secondary desktop displays.
func ResolveNames(api API) (string, string, error) {
	var primary, secondary string
	attached := 0
	for i := 0; ; i++ {
		dev, ok := api.Device(i)
		if !ok {
			break
		}
		if !dev.AttachedToDesktop() {
			continue
		}
		attached++
		if dev.Primary() {
			primary = boundName(dev.Name)
		} else {
			secondary = boundName(dev.Name)
		}
	}

	if attached > 2 {
		return "", "", fmt.Errorf("%w: found %d", ErrTooManyDisplays, attached)
	}
	if primary == "" || secondary == "" {
		return "", "", ErrNamesUnresolved
	}
	return primary, secondary, nil
}

// ReadModes reads the current modes of the primary and secondary displays.
func ReadModes(api API, primary, secondary string) (Mode, Mode, error) {
	primaryMode, err := api.CurrentMode(primary)
	if err != nil {
		return Mode{}, Mode{}, fmt.Errorf("failed to enumerate primary display mode (%s): %w", primary, err)
	}
	secondaryMode, err := api.CurrentMode(secondary)
	if err != nil {
		return Mode{}, Mode{}, fmt.Errorf("failed to enumerate secondary display mode (%s): %w", secondary, err)
	}
	return primaryMode, secondaryMode, nil
}

// boundName truncates a name to fit the UTF-16 device name buffer, leaving room for a terminator.
// A surrogate pair is never split.
func boundName(name string) string {
	units := utf16.Encode([]rune(name))
	if len(units) < MaxNameLen {
		return name
	}
	units = units[:MaxNameLen-1]
	if last := units[len(units)-1]; last >= 0xD800 && last < 0xDC00 {
		units = units[:len(units)-1]
	}
	return string(utf16.Decode(units))
}

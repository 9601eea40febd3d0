//go:build windows

// Package display enumerates attached displays and reads or changes their modes.
package display

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	eddGetDeviceInterfaceName = 0x00000001
	enumCurrentSettings       = 0xFFFFFFFF
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayDevicesW      = user32.NewProc("EnumDisplayDevicesW")
	procEnumDisplaySettingsW     = user32.NewProc("EnumDisplaySettingsW")
	procChangeDisplaySettingsExW = user32.NewProc("ChangeDisplaySettingsExW")
)

// displayDevice mirrors DISPLAY_DEVICEW.
type displayDevice struct {
	Cb           uint32
	DeviceName   [32]uint16
	DeviceString [128]uint16
	StateFlags   uint32
	DeviceID     [128]uint16
	DeviceKey    [128]uint16
}

// devMode mirrors DEVMODEW with the display member of the union.
type devMode struct {
	DeviceName         [32]uint16
	SpecVersion        uint16
	DriverVersion      uint16
	Size               uint16
	DriverExtra        uint16
	Fields             uint32
	PositionX          int32
	PositionY          int32
	DisplayOrientation uint32
	DisplayFixedOutput uint32
	Color              int16
	Duplex             int16
	YResolution        int16
	TTOption           int16
	Collate            int16
	FormName           [32]uint16
	LogPixels          uint16
	BitsPerPel         uint32
	PelsWidth          uint32
	PelsHeight         uint32
	DisplayFlags       uint32
	DisplayFrequency   uint32
	ICMMethod          uint32
	ICMIntent          uint32
	MediaType          uint32
	DitherType         uint32
	Reserved1          uint32
	Reserved2          uint32
	PanningWidth       uint32
	PanningHeight      uint32
}

// WinAPI reads and changes display modes using user32.
type WinAPI struct{}

// NewAPI returns the user32-backed display API.
func NewAPI() (API, error) {
	for _, proc := range []*windows.LazyProc{procEnumDisplayDevicesW, procEnumDisplaySettingsW, procChangeDisplaySettingsExW} {
		if err := proc.Find(); err != nil {
			return nil, fmt.Errorf("load %s: %w", proc.Name, err)
		}
	}
	return &WinAPI{}, nil
}

// Device returns the display device at index.
func (w *WinAPI) Device(index int) (Device, bool) {
	var dev displayDevice
	dev.Cb = uint32(unsafe.Sizeof(dev))
	ret, _, _ := procEnumDisplayDevicesW.Call(
		0,
		uintptr(index),
		uintptr(unsafe.Pointer(&dev)),
		eddGetDeviceInterfaceName,
	)
	if ret == 0 {
		return Device{}, false
	}
	return Device{
		Name:       windows.UTF16ToString(dev.DeviceName[:]),
		StateFlags: StateFlags(dev.StateFlags),
	}, true
}

// CurrentMode reads the active mode of the named device.
func (w *WinAPI) CurrentMode(name string) (Mode, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return Mode{}, fmt.Errorf("invalid device name %q: %w", name, err)
	}

	var dm devMode
	dm.Size = uint16(unsafe.Sizeof(dm))
	ret, _, callErr := procEnumDisplaySettingsW.Call(
		uintptr(unsafe.Pointer(namePtr)),
		enumCurrentSettings,
		uintptr(unsafe.Pointer(&dm)),
	)
	if ret == 0 {
		return Mode{}, fmt.Errorf("EnumDisplaySettingsW failed: %w", callErr)
	}
	return Mode{
		Width:       dm.PelsWidth,
		Height:      dm.PelsHeight,
		X:           dm.PositionX,
		Y:           dm.PositionY,
		Orientation: Orientation(dm.DisplayOrientation),
		Fields:      Fields(dm.Fields),
	}, nil
}

// Stage requests a mode change for the named device.
func (w *WinAPI) Stage(name string, mode Mode, flags ChangeFlags) Status {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return BadParam
	}

	var dm devMode
	dm.Size = uint16(unsafe.Sizeof(dm))
	dm.Fields = uint32(mode.Fields)
	dm.PelsWidth = mode.Width
	dm.PelsHeight = mode.Height
	dm.PositionX = mode.X
	dm.PositionY = mode.Y
	dm.DisplayOrientation = uint32(mode.Orientation)

	ret, _, _ := procChangeDisplaySettingsExW.Call(
		uintptr(unsafe.Pointer(namePtr)),
		uintptr(unsafe.Pointer(&dm)),
		0,
		uintptr(flags),
		0,
	)
	return Status(int32(ret))
}

// Commit applies all staged changes.
func (w *WinAPI) Commit() Status {
	ret, _, _ := procChangeDisplaySettingsExW.Call(0, 0, 0, 0, 0)
	return Status(int32(ret))
}

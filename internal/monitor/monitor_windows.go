//go:build windows

// Package monitor lists the live desktop monitors and their bounds.
package monitor

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const monitorInfoFPrimary = 0x00000001

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
)

// monitorInfoEx mirrors MONITORINFOEXW.
type monitorInfoEx struct {
	win.MONITORINFO
	Device [32]uint16
}

// ListMonitors returns the desktop monitors in enumeration order.
func ListMonitors() ([]Monitor, error) {
	state := &enumState{}
	callback := syscall.NewCallback(state.enumProc)

	ret, _, callErr := procEnumDisplayMonitors.Call(0, 0, callback, 0)
	if ret == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %w", callErr)
	}
	if len(state.list) == 0 {
		return nil, fmt.Errorf("no monitors detected")
	}
	return state.list, nil
}

type enumState struct {
	list []Monitor
}

// enumProc appends one monitor per callback and keeps enumerating.
func (s *enumState) enumProc(hMonitor, hdc, rect, lparam uintptr) uintptr {
	var info monitorInfoEx
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(win.HMONITOR(hMonitor), &info.MONITORINFO) {
		return 1
	}

	r := info.RcMonitor
	s.list = append(s.list, Monitor{
		Index:   len(s.list) + 1,
		Device:  windows.UTF16ToString(info.Device[:]),
		X:       int(r.Left),
		Y:       int(r.Top),
		W:       int(r.Right - r.Left),
		H:       int(r.Bottom - r.Top),
		Primary: info.DwFlags&monitorInfoFPrimary != 0,
	})
	return 1
}

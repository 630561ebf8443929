//go:build windows

package main

import "golang.org/x/sys/windows"

// enableDPIAwareness opts the process into per-monitor DPI awareness so the
// overlay covers the full virtual screen on scaled displays. Falls back to
// the Vista-era system-wide call on older Windows.
func enableDPIAwareness() {
	const processPerMonitorDPIAware = 2

	shcore := windows.NewLazySystemDLL("Shcore.dll")
	setProcessDpiAwareness := shcore.NewProc("SetProcessDpiAwareness")
	if err := setProcessDpiAwareness.Find(); err == nil {
		_, _, _ = setProcessDpiAwareness.Call(uintptr(processPerMonitorDPIAware))
		return
	}

	user32 := windows.NewLazySystemDLL("user32.dll")
	setProcessDPIAware := user32.NewProc("SetProcessDPIAware")
	if err := setProcessDPIAware.Find(); err == nil {
		_, _, _ = setProcessDPIAware.Call()
	}
}

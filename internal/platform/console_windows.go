//go:build windows

package platform

import "syscall"

// ReleaseConsole hides the console window the process was started with, so
// builds without -H windowsgui start cleanly.
func ReleaseConsole() {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	user32 := syscall.NewLazyDLL("user32.dll")

	hwnd, _, _ := kernel32.NewProc("GetConsoleWindow").Call()
	if hwnd == 0 {
		return
	}
	const swHide = 0
	user32.NewProc("ShowWindow").Call(hwnd, swHide)
}

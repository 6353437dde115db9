//go:build windows

package platform

import (
	"fmt"
	"syscall"
	"unsafe"
)

var procShellExecuteW = syscall.NewLazyDLL("shell32.dll").NewProc("ShellExecuteW")

// OpenURL hands url to the default browser through ShellExecuteW.
func OpenURL(url string) error {
	verb, err := syscall.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := syscall.UTF16PtrFromString(url)
	if err != nil {
		return fmt.Errorf("platform: open %q: %w", url, err)
	}
	const swShowNormal = 1
	ret, _, callErr := procShellExecuteW.Call(0,
		uintptr(unsafe.Pointer(verb)),
		uintptr(unsafe.Pointer(file)),
		0, 0, swShowNormal)
	// Values above 32 mean success.
	if ret <= 32 {
		if callErr != nil && callErr != syscall.Errno(0) {
			return fmt.Errorf("platform: open %q: %w", url, callErr)
		}
		return fmt.Errorf("platform: open %q: ShellExecuteW returned %d", url, ret)
	}
	return nil
}

//go:build windows

package platform

import (
	"errors"
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"organix/internal/logging"
)

var (
	user32               = syscall.NewLazyDLL("user32.dll")
	procFindWindowW      = user32.NewProc("FindWindowW")
	procSetParent        = user32.NewProc("SetParent")
	procGetWindowLongPtr = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtr = user32.NewProc("SetWindowLongPtrW")
	procGetClientRect    = user32.NewProc("GetClientRect")
	procMoveWindow       = user32.NewProc("MoveWindow")
	procSetWindowPos     = user32.NewProc("SetWindowPos")
	procShowWindow       = user32.NewProc("ShowWindow")
)

const (
	swShow = 5

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
	swpHideWindow = 0x0080

	wsChild       = 0x40000000
	wsVisible     = 0x10000000
	wsPopup       = 0x80000000
	wsCaption     = 0x00C00000
	wsBorder      = 0x00800000
	wsDlgFrame    = 0x00400000
	wsSysMenu     = 0x00080000
	wsThickFrame  = 0x00040000
	wsMinimizeBox = 0x00020000
	wsMaximizeBox = 0x00010000
)

// gwlStyle is GWL_STYLE; a variable so the negative index converts to uintptr.
var gwlStyle int32 = -16

type rect struct {
	Left, Top, Right, Bottom int32
}

// findWindow looks a top-level window up by title. GLFW does not expose the
// HWND without cgo, and a new window may take a moment to register.
func findWindow(title string) (uintptr, error) {
	p, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	for range 20 {
		hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(p)))
		if hwnd != 0 {
			return hwnd, nil
		}
		time.Sleep(time.Millisecond)
	}
	return 0, fmt.Errorf("platform: window %q not found", title)
}

func clientSize(hwnd uintptr) (int32, int32, bool) {
	var r rect
	ok, _, _ := procGetClientRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	return r.Right - r.Left, r.Bottom - r.Top, ok != 0
}

// HideWindow hides the window titled title immediately, before GLFW would
// flash it on screen.
func HideWindow(title string) {
	hwnd, err := findWindow(title)
	if err != nil {
		logging.L().Debug("hide window", "err", err)
		return
	}
	procSetWindowPos.Call(hwnd, 0, 0, 0, 0, 0, swpHideWindow|swpNoMove|swpNoSize|swpNoZOrder)
}

// EmbedWindow reparents win into parent as an undecorated child filling the
// parent's client area, and returns that size.
func EmbedWindow(win *glfw.Window, parent uintptr, title string) (int, int, error) {
	if parent == 0 {
		return PreviewWidth, PreviewHeight, errors.New("platform: no parent window")
	}
	hwnd, err := findWindow(title)
	if err != nil {
		return PreviewWidth, PreviewHeight, err
	}
	width, height, ok := clientSize(parent)
	if !ok {
		return PreviewWidth, PreviewHeight, fmt.Errorf("platform: GetClientRect failed for parent %#x", parent)
	}

	// Reparent before switching to WS_CHILD; the reverse order is unreliable
	// on some hosts.
	procSetParent.Call(hwnd, parent)
	style, _, _ := procGetWindowLongPtr.Call(hwnd, uintptr(gwlStyle))
	style &^= wsPopup | wsBorder | wsCaption | wsDlgFrame | wsThickFrame | wsSysMenu | wsMinimizeBox | wsMaximizeBox
	style |= wsChild | wsVisible
	procSetWindowLongPtr.Call(hwnd, uintptr(gwlStyle), style)

	// The client area can change once the style is applied.
	if w, h, ok := clientSize(parent); ok {
		width, height = w, h
	}
	if ret, _, _ := procMoveWindow.Call(hwnd, 0, 0, uintptr(width), uintptr(height), 1); ret == 0 {
		logging.L().Debug("MoveWindow failed", "hwnd", hwnd)
	}
	if ret, _, _ := procSetWindowPos.Call(hwnd, 0, 0, 0, uintptr(width), uintptr(height), swpNoZOrder|swpNoActivate); ret == 0 {
		logging.L().Debug("SetWindowPos failed", "hwnd", hwnd)
	}
	procShowWindow.Call(hwnd, swShow)

	win.SetSize(int(width), int(height))
	logging.L().Debug("preview embedded", "hwnd", hwnd, "parent", parent, "width", width, "height", height)
	return int(width), int(height), nil
}

//go:build !windows

package platform

import "github.com/go-gl/glfw/v3.3/glfw"

// HideWindow is a no-op outside Windows.
func HideWindow(string) {}

// EmbedWindow is only implemented on Windows; elsewhere the preview runs in
// its own window of the default size.
func EmbedWindow(*glfw.Window, uintptr, string) (int, int, error) {
	return PreviewWidth, PreviewHeight, ErrUnsupported
}

//go:build !windows

package platform

import (
	"fmt"
	"os/exec"
	"runtime"
)

// opener returns the command that opens URLs on goos.
func opener(goos string) (string, error) {
	switch goos {
	case "darwin":
		return "open", nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", nil
	default:
		return "", ErrUnsupported
	}
}

// OpenURL hands url to the desktop's default browser.
func OpenURL(url string) error {
	name, err := opener(runtime.GOOS)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("platform: %s %q: %w", name, url, err)
	}
	// Reap the child without blocking the UI.
	go func() { _ = cmd.Wait() }()
	return nil
}

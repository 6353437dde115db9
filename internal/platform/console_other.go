//go:build !windows && !darwin

package platform

// ReleaseConsole is a no-op: desktop launchers start the process without a
// terminal.
func ReleaseConsole() {}

//go:build darwin

package platform

import (
	"os"
	"os/exec"
	"syscall"

	"organix/internal/logging"
)

const detachedEnv = "ORGANIX_DETACHED"

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// ReleaseConsole relaunches the process in its own session, detached from
// the terminal it was started from, and exits. It does nothing when no
// terminal is attached or when the process is already the relaunched copy.
func ReleaseConsole() {
	if os.Getenv(detachedEnv) == "1" {
		return
	}
	if !isTerminal(os.Stdin) && !isTerminal(os.Stdout) && !isTerminal(os.Stderr) {
		return
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer devNull.Close()

	cmd := exec.Command(os.Args[0], os.Args[1:]...)
	cmd.Env = append(os.Environ(), detachedEnv+"=1")
	cmd.Stdin, cmd.Stdout, cmd.Stderr = devNull, devNull, devNull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		logging.L().Warn("detach from terminal failed", "err", err)
		return
	}
	os.Exit(0)
}

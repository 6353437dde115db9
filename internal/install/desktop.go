package install

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"organix/internal/locale"
	"organix/internal/logging"
)

// StandaloneEnv is set by the installed launcher. Its presence means the app
// runs in standalone mode.
const StandaloneEnv = "ORGANIX_STANDALONE"

const entryName = "organix.desktop"

// Platform selects the fallback instructions.
type Platform int

const (
	PlatformOther Platform = iota
	PlatformLinux
	PlatformWindows
	PlatformMacOS
)

// PlatformOf maps a GOOS value to a Platform.
func PlatformOf(goos string) Platform {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformMacOS
	default:
		return PlatformOther
	}
}

// InstructionsID returns the message id of the platform's instructions.
func (p Platform) InstructionsID() string {
	switch p {
	case PlatformLinux:
		return locale.InstructionsLinux
	case PlatformWindows:
		return locale.InstructionsWindows
	case PlatformMacOS:
		return locale.InstructionsMacOS
	default:
		return locale.InstructionsOther
	}
}

// Desktop is the desktop Prober. On Linux it installs an XDG desktop entry
// whose launcher marks the process as standalone.
type Desktop struct {
	GOOS       string
	Getenv     func(string) string
	DataDir    string
	Executable string
}

// NewDesktop fills a Desktop from the running process.
func NewDesktop() *Desktop {
	d := &Desktop{GOOS: runtime.GOOS, Getenv: os.Getenv}
	if exe, err := os.Executable(); err == nil {
		d.Executable = exe
	}
	d.DataDir = os.Getenv("XDG_DATA_HOME")
	if d.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			d.DataDir = filepath.Join(home, ".local", "share")
		}
	}
	return d
}

// Platform returns the platform the prober runs on.
func (d *Desktop) Platform() Platform {
	return PlatformOf(d.GOOS)
}

// Probe implements Prober.
func (d *Desktop) Probe() Capability {
	if d.Getenv != nil && d.Getenv(StandaloneEnv) == "1" {
		return Standalone
	}
	if d.Platform() != PlatformLinux || d.DataDir == "" || d.Executable == "" {
		return Unsupported
	}
	return Installable
}

// EntryPath is where Install writes the desktop entry.
func (d *Desktop) EntryPath() string {
	return filepath.Join(d.DataDir, "applications", entryName)
}

// Install writes the desktop entry.
func (d *Desktop) Install() error {
	if d.Probe() != Installable {
		return fmt.Errorf("install: not installable on %s", d.GOOS)
	}
	path := d.EntryPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("install: %w", err)
	}
	if err := os.WriteFile(path, []byte(DesktopEntry(d.Executable)), 0o644); err != nil {
		return fmt.Errorf("install: %w", err)
	}
	logging.L().Info("desktop entry installed", "path", path)
	return nil
}

// DesktopEntry renders the launcher for executable.
func DesktopEntry(executable string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=Organix\n")
	b.WriteString("Comment=Neon Japanese Experience\n")
	fmt.Fprintf(&b, "Exec=env %s=1 %s /s\n", StandaloneEnv, quoteExec(executable))
	b.WriteString("Terminal=false\n")
	b.WriteString("Categories=Graphics;\n")
	return b.String()
}

// quoteExec quotes an Exec argument per the desktop entry specification.
func quoteExec(arg string) string {
	if !strings.ContainsAny(arg, " \t\n\"'\\><~|&;$*?#()`") {
		return arg
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(arg) + `"`
}

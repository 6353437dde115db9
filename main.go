// Organix animated shader showcase.
//
// The executable follows the screensaver argument convention:
//   - /s (or no args): the showcase window
//   - /c: the settings window
//   - /p <HWND>: embedded preview in the Windows screensaver control panel
//
// Rendering pipeline:
//  1. Compile the organic fragment program and draw it on a fullscreen quad.
//  2. Rasterize the glyph and leaf overlay plus the HUD on the CPU.
//  3. Upload the overlay as a texture and blend it over the background.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"organix/internal/config"
	"organix/internal/locale"
	"organix/internal/logging"
	"organix/internal/platform"
	"organix/internal/showcase"
)

const (
	appName    = "Organix"
	appID      = "io.organix.showcase"
	websiteURL = "https://organix.dev"
)

// Mode is the way the executable was launched.
type Mode int

const (
	ModeShowcase Mode = iota
	ModeSettings
	ModePreview
)

func (m Mode) String() string {
	switch m {
	case ModeSettings:
		return "settings"
	case ModePreview:
		return "preview"
	}
	return "showcase"
}

func init() {
	// GLFW and GL must be called from the main thread.
	runtime.LockOSThread()
}

// detectMode determines the mode from command line arguments:
//   - /s or no arguments = showcase
//   - /c or /c:<HWND> = settings
//   - /p <HWND> or /p:<HWND> = preview
func detectMode(args []string) (Mode, uintptr) {
	for i, arg := range args {
		a := strings.ToLower(arg)
		switch {
		case a == "/s":
			return ModeShowcase, 0
		case a == "/c" || strings.HasPrefix(a, "/c:"):
			return ModeSettings, 0
		case a == "/p" || strings.HasPrefix(a, "/p:"):
			raw := ""
			if strings.HasPrefix(a, "/p:") {
				raw = a[3:]
			} else if i+1 < len(args) {
				raw = args[i+1]
			}
			if hwnd, err := strconv.ParseUint(raw, 10, 64); err == nil {
				return ModePreview, uintptr(hwnd)
			}
			return ModePreview, 0
		}
	}
	return ModeShowcase, 0
}

// keyAction maps a GLFW key onto a showcase action.
func keyAction(key glfw.Key) showcase.Key {
	switch key {
	case glfw.KeyUp, glfw.KeyEqual, glfw.KeyKPAdd:
		return showcase.KeyBrightnessUp
	case glfw.KeyDown, glfw.KeyMinus, glfw.KeyKPSubtract:
		return showcase.KeyBrightnessDown
	case glfw.KeyT:
		return showcase.KeyToggleTheme
	case glfw.KeyS:
		return showcase.KeyToggleSettings
	case glfw.KeyI:
		return showcase.KeyInstall
	case glfw.KeyY, glfw.KeyEnter, glfw.KeyKPEnter:
		return showcase.KeyAccept
	case glfw.KeyN:
		return showcase.KeyDismiss
	case glfw.KeyX:
		return showcase.KeyCloseInstructions
	case glfw.KeyHome:
		return showcase.KeyScrollTop
	}
	return showcase.KeyNone
}

// paths locates the configuration and state files.
type paths struct {
	config string
	state  string
}

func resolvePaths() (paths, error) {
	dir, err := config.Dir()
	if err != nil {
		return paths{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return paths{}, fmt.Errorf("create config dir: %w", err)
	}
	return paths{config: config.Path(dir), state: config.StatePath(dir)}, nil
}

func main() {
	p, err := resolvePaths()
	if err != nil {
		fmt.Fprintln(os.Stderr, "organix:", err)
		os.Exit(1)
	}
	cfg, cfgErr := config.Load(p.config)
	logging.Set(logging.New(os.Stderr, cfg.Debug))
	if cfgErr != nil {
		logging.L().Warn("using default configuration", "err", cfgErr)
	}
	if !cfg.Debug {
		platform.ReleaseConsole()
	}

	lang := locale.Detect(cfg.Language)
	mode, parent := detectMode(os.Args[1:])
	logging.L().Debug("starting", "mode", mode, "lang", lang, "config", p.config)

	switch mode {
	case ModeSettings:
		err = runSettingsMode(cfg, p, lang)
	case ModePreview:
		err = runPreviewMode(cfg, parent)
	default:
		err = runShowcaseMode(cfg, p)
	}
	if err != nil {
		logging.L().Error("organix stopped", "err", err)
		os.Exit(1)
	}
}

// Package showcase is the root composer. It owns the tracker, the settings,
// the install controller and the visit count, maps window input onto them,
// and hands the render loop immutable per-frame snapshots.
package showcase

import (
	"fmt"
	"image"
	"time"

	"organix/internal/config"
	"organix/internal/install"
	"organix/internal/locale"
	"organix/internal/logging"
	"organix/internal/overlay"
	"organix/internal/settings"
	"organix/internal/shader"
	"organix/internal/tracker"
	"organix/internal/visits"
)

// Key is a user action, already decoupled from the window system's key codes.
type Key int

const (
	KeyNone Key = iota
	KeyBrightnessUp
	KeyBrightnessDown
	KeyToggleTheme
	KeyToggleSettings
	KeyInstall
	KeyAccept
	KeyDismiss
	KeyCloseInstructions
	KeyScrollTop
)

// Installer performs the native install after the user accepts.
type Installer interface {
	Install() error
}

// Options configures a Composer.
type Options struct {
	Width, Height int
	Config        config.Config
	// Localizer renders the HUD. The HUD font covers ASCII only.
	Localizer *locale.Localizer
	Prober    install.Prober
	Installer Installer
	Platform  install.Platform
	// Seed fixes the leaf field randomness.
	Seed uint64
	// Preview drops the HUD, for the small embedded preview.
	Preview bool
}

// Composer is the top-level state of one showcase window. It is used from
// the render thread only.
type Composer struct {
	tracker  *tracker.Tracker
	settings *settings.Controller
	install  *install.Controller

	loc       *locale.Localizer
	prober    install.Prober
	installer Installer
	platform  install.Platform

	seed            uint64
	overlayMaxWidth int
	field           *overlay.Field
	canvas          overlay.Canvas

	visits       int
	counted      bool
	settingsOpen bool
	preview      bool
}

// New builds a composer from opts.
func New(opts Options) *Composer {
	cfg := opts.Config.Normalize()
	loc := opts.Localizer
	if loc == nil {
		loc = locale.New(locale.English)
	}
	c := &Composer{
		tracker:         tracker.New(opts.Width, opts.Height),
		settings:        settings.NewController(cfg.Settings()),
		install:         install.NewController(),
		loc:             loc,
		prober:          opts.Prober,
		installer:       opts.Installer,
		platform:        opts.Platform,
		seed:            opts.Seed,
		overlayMaxWidth: cfg.OverlayMaxWidth,
		preview:         opts.Preview,
	}
	c.rebuildField()
	c.settings.OnChange(func(s settings.Snapshot) {
		logging.L().Debug("settings changed", "brightness", s.Brightness, "dark", s.Dark)
	})
	return c
}

// Start counts this visit against store and probes install support. It
// returns the window title. A nil store skips counting, as in preview mode.
func (c *Composer) Start(store visits.Store) string {
	if c.prober != nil {
		c.install.Signal(c.prober.Probe())
	}
	if store == nil {
		return visits.Title(0)
	}
	n, err := visits.Load(store)
	if err != nil {
		logging.L().Warn("visit count not saved", "err", err)
	}
	c.visits = n
	c.counted = true
	logging.L().Info("visit counted", "count", n)
	return visits.Title(n)
}

// Visits returns the loaded visit count.
func (c *Composer) Visits() int {
	return c.visits
}

// Settings returns the current display settings.
func (c *Composer) Settings() settings.Snapshot {
	return c.settings.Snapshot()
}

// Tracker returns the current pointer and viewport state.
func (c *Composer) Tracker() tracker.Snapshot {
	return c.tracker.Snapshot()
}

// InstallState returns the install controller state.
func (c *Composer) InstallState() install.State {
	return c.install.State()
}

// SettingsOpen reports whether the settings panel is shown.
func (c *Composer) SettingsOpen() bool {
	return c.settingsOpen
}

// Resize records a new logical window size.
func (c *Composer) Resize(width, height int) {
	c.tracker.Resize(width, height)
	c.rebuildField()
}

func (c *Composer) rebuildField() {
	snap := c.tracker.Snapshot()
	if c.field != nil && c.field.Fits(snap.Width, snap.Narrow) {
		return
	}
	c.field = overlay.NewField(c.seed, snap.Width, snap.Narrow)
	logging.L().Debug("leaf field rebuilt", "width", snap.Width, "narrow", snap.Narrow, "leaves", len(c.field.Leaves()))
}

// PointerMoved records a cursor position in logical window coordinates.
func (c *Composer) PointerMoved(x, y float64) {
	c.tracker.Move(x, y)
}

// Scrolled applies a wheel delta. Positive dy scrolls toward the top, as
// GLFW reports it.
func (c *Composer) Scrolled(dy float64) {
	c.tracker.Scroll(-dy * scrollLine)
}

const scrollLine = 40

// Key applies a user action.
func (c *Composer) Key(k Key) {
	switch k {
	case KeyBrightnessUp:
		c.settings.StepBrightness(1)
	case KeyBrightnessDown:
		c.settings.StepBrightness(-1)
	case KeyToggleTheme:
		c.settings.ToggleTheme()
	case KeyToggleSettings:
		c.settingsOpen = !c.settingsOpen
	case KeyInstall:
		if c.install.Trigger() {
			logging.L().Debug("install prompt shown")
		}
	case KeyAccept:
		c.accept()
	case KeyDismiss:
		c.install.Resolve(install.OutcomeDismissed)
	case KeyCloseInstructions:
		c.install.CloseInstructions()
	case KeyScrollTop:
		c.tracker.ScrollTop()
	}
}

func (c *Composer) accept() {
	if c.install.State() != install.Prompted {
		return
	}
	if c.installer == nil {
		c.install.Resolve(install.OutcomeDismissed)
		return
	}
	if err := c.installer.Install(); err != nil {
		logging.L().Error("install failed", "err", err)
		c.install.Resolve(install.OutcomeDismissed)
		return
	}
	c.install.Resolve(install.OutcomeAccepted)
}

// ApplyConfig takes over settings from a reloaded configuration file.
func (c *Composer) ApplyConfig(cfg config.Config) {
	cfg = cfg.Normalize()
	if err := c.settings.Apply(cfg.Settings()); err != nil {
		logging.L().Warn("config reload ignored", "err", err)
		return
	}
	c.overlayMaxWidth = cfg.OverlayMaxWidth
}

// Inputs samples the shader uniforms for a frame. The pointer is flipped to
// GL orientation.
func (c *Composer) Inputs(elapsed time.Duration) shader.Inputs {
	p := c.tracker.Snapshot().Pointer
	return shader.Inputs{
		Time:       float32(elapsed.Seconds()),
		Pointer:    [2]float32{p.X, -p.Y},
		Brightness: c.settings.Snapshot().Brightness,
	}
}

// Overlay draws the glyphs, the leaves at wall time now and the HUD into a
// w x h image. The image is reused across calls.
func (c *Composer) Overlay(now time.Time, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("showcase: invalid overlay size %dx%d", w, h)
	}
	snap := c.tracker.Snapshot()
	s := c.settings.Snapshot()
	t := float64(now.UnixMilli()) / 1000

	img := c.canvas.Clear(w, h)
	leaves := c.field.Frame(t, snap.Pointer, s.Dark)
	if err := c.canvas.DrawScene(overlay.Region(w, h, c.overlayMaxWidth), leaves, snap.Pointer, s.Dark); err != nil {
		return nil, err
	}
	if err := c.canvas.DrawBlocks(c.HUD()...); err != nil {
		return nil, err
	}
	return img, nil
}

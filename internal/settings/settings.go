// Package settings holds the user-adjustable display settings: brightness and
// the light/dark theme flag.
package settings

import (
	"errors"
	"math"
)

const (
	MinBrightness     = 0.1
	MaxBrightness     = 2.0
	BrightnessStep    = 0.1
	DefaultBrightness = 1.0
)

// ErrInvalidBrightness is returned for NaN brightness values.
var ErrInvalidBrightness = errors.New("settings: brightness is not a number")

// Snapshot is an immutable copy of the settings.
type Snapshot struct {
	Brightness float32
	Dark       bool
}

// Default returns brightness 1.0 with the dark theme.
func Default() Snapshot {
	return Snapshot{Brightness: DefaultBrightness, Dark: true}
}

// ClampBrightness snaps v to the 0.1 grid inside [MinBrightness, MaxBrightness].
// Infinities clamp to the nearest bound. NaN is rejected.
func ClampBrightness(v float64) (float32, error) {
	if math.IsNaN(v) {
		return 0, ErrInvalidBrightness
	}
	v = math.Min(math.Max(v, MinBrightness), MaxBrightness)
	steps := math.Round(v / BrightnessStep)
	return float32(steps / 10), nil
}

// Controller owns the settings and notifies listeners on change.
type Controller struct {
	snap      Snapshot
	listeners []func(Snapshot)
}

// NewController starts from initial, normalizing its brightness.
func NewController(initial Snapshot) *Controller {
	c := &Controller{snap: initial}
	b, err := ClampBrightness(float64(initial.Brightness))
	if err != nil {
		b = DefaultBrightness
	}
	c.snap.Brightness = b
	return c
}

// Snapshot returns the current settings.
func (c *Controller) Snapshot() Snapshot {
	return c.snap
}

// OnChange registers fn to be called after every effective change.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.listeners = append(c.listeners, fn)
}

// SetBrightness stores v clamped to range. The stored value is never out of
// range; NaN leaves the current value untouched.
func (c *Controller) SetBrightness(v float64) error {
	b, err := ClampBrightness(v)
	if err != nil {
		return err
	}
	if b == c.snap.Brightness {
		return nil
	}
	c.snap.Brightness = b
	c.notify()
	return nil
}

// StepBrightness moves the brightness by n steps of 0.1.
func (c *Controller) StepBrightness(n int) {
	_ = c.SetBrightness(float64(c.snap.Brightness) + float64(n)*BrightnessStep)
}

// SetDark sets the theme flag.
func (c *Controller) SetDark(dark bool) {
	if c.snap.Dark == dark {
		return
	}
	c.snap.Dark = dark
	c.notify()
}

// ToggleTheme flips between dark and light.
func (c *Controller) ToggleTheme() {
	c.SetDark(!c.snap.Dark)
}

// Apply replaces both settings at once, as when a config file is reloaded.
func (c *Controller) Apply(s Snapshot) error {
	b, err := ClampBrightness(float64(s.Brightness))
	if err != nil {
		return err
	}
	if b == c.snap.Brightness && s.Dark == c.snap.Dark {
		return nil
	}
	c.snap = Snapshot{Brightness: b, Dark: s.Dark}
	c.notify()
	return nil
}

func (c *Controller) notify() {
	for _, fn := range c.listeners {
		fn(c.snap)
	}
}

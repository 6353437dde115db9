// Package config loads and saves organix.toml and watches it for changes made
// by the settings window while the showcase is running.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"organix/internal/settings"
)

const (
	appDir    = "organix"
	fileName  = "organix.toml"
	stateName = "state.toml"

	minOverlayWidth     = 320
	maxOverlayWidth     = 3840
	defaultOverlayWidth = 1280
)

// Config is the persisted configuration.
type Config struct {
	Brightness float64 `toml:"brightness"`
	DarkMode   bool    `toml:"dark_mode"`
	Fullscreen bool    `toml:"fullscreen"`
	// Language overrides locale detection when set ("en", "ja").
	Language string `toml:"language"`
	Debug    bool   `toml:"debug"`
	// OverlayMaxWidth caps the logical width of the glyph and leaf region.
	OverlayMaxWidth int `toml:"overlay_max_width"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	s := settings.Default()
	return Config{
		Brightness:      float64(s.Brightness),
		DarkMode:        s.Dark,
		OverlayMaxWidth: defaultOverlayWidth,
	}
}

// Settings extracts the display settings.
func (c Config) Settings() settings.Snapshot {
	return settings.Snapshot{Brightness: float32(c.Brightness), Dark: c.DarkMode}
}

// WithSettings returns c with the display settings replaced by s.
func (c Config) WithSettings(s settings.Snapshot) Config {
	c.Brightness = float64(s.Brightness)
	c.DarkMode = s.Dark
	return c
}

// Normalize brings every field into its valid range.
func (c Config) Normalize() Config {
	b, err := settings.ClampBrightness(c.Brightness)
	if err != nil {
		b = settings.DefaultBrightness
	}
	c.Brightness = float64(b)
	if c.OverlayMaxWidth == 0 {
		c.OverlayMaxWidth = defaultOverlayWidth
	}
	c.OverlayMaxWidth = min(max(c.OverlayMaxWidth, minOverlayWidth), maxOverlayWidth)
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	return c
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user config dir: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// Path returns the config file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, fileName)
}

// StatePath returns the visit state file inside dir.
func StatePath(dir string) string {
	return filepath.Join(dir, stateName)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg.Normalize(), nil
}

// Save writes cfg to path atomically.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg.Normalize()); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

package showcase

import (
	"fmt"
	"image/color"
	"strings"

	"organix/internal/install"
	"organix/internal/locale"
	"organix/internal/overlay"
	"organix/internal/visits"
)

var (
	panelFill   = color.RGBA{A: 0x4d}
	dialogFill  = color.RGBA{A: 0x66}
	cyan        = color.RGBA{R: 0x06, G: 0xb6, B: 0xd4, A: 0xff}
	textColor   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xe6}
	accentColor = color.RGBA{R: 0xd9, G: 0x46, B: 0xef, A: 0xff}
)

// HUD returns the text blocks for the current state.
func (c *Composer) HUD() []overlay.Block {
	if c.preview {
		return nil
	}
	l := c.loc
	blocks := []overlay.Block{{
		Anchor: overlay.TopLeft,
		Lines:  []string{l.T(locale.SettingsHint)},
		Text:   textColor,
		Fill:   panelFill,
	}}

	if c.counted {
		blocks = append(blocks, overlay.Block{
			Anchor: overlay.TopRight,
			Lines: []string{
				l.T(locale.VisitLabel),
				l.Count(locale.VisitCount, c.visits),
				l.Count(locale.VisitTooltip, c.visits),
			},
			Numerals: visits.Numerals(c.visits) + overlay.CounterSymbol,
			Text:     cyan,
			Fill:     panelFill,
		})
	}

	if c.settingsOpen {
		s := c.settings.Snapshot()
		theme := l.T(locale.LightMode)
		if !s.Dark {
			theme = l.T(locale.DarkMode)
		}
		blocks = append(blocks, overlay.Block{
			Anchor: overlay.BottomLeft,
			Lines: []string{
				l.T(locale.SettingsTitle),
				fmt.Sprintf("%s: %.1f  [Up/Down]", l.T(locale.BrightnessLabel), s.Brightness),
				fmt.Sprintf("[T] %s", theme),
			},
			Text: textColor,
			Fill: panelFill,
		})
	}

	if b, ok := c.installBlock(); ok {
		blocks = append(blocks, b)
	}

	if c.tracker.Snapshot().ShowScrollTop() {
		blocks = append(blocks, overlay.Block{
			Anchor: overlay.BottomRight,
			Lines:  []string{l.T(locale.ScrollTop)},
			Text:   textColor,
			Fill:   panelFill,
		})
	}
	return blocks
}

func (c *Composer) installBlock() (overlay.Block, bool) {
	l := c.loc
	b := overlay.Block{Anchor: overlay.BottomCenter, Text: textColor, Fill: dialogFill}
	switch {
	case c.install.ShowingInstructions():
		b.Lines = append([]string{l.T(locale.InstructionsTitle)}, strings.Split(l.T(c.platform.InstructionsID()), "\n")...)
		b.Lines = append(b.Lines, l.T(locale.InstructionsClose))
	case c.install.State() == install.Prompted:
		b.Lines = []string{l.T(locale.InstallConfirm), "[Y] / [N]"}
		b.Text = accentColor
	case c.install.ButtonVisible():
		b.Lines = []string{l.T(locale.InstallHint)}
	default:
		return b, false
	}
	return b, true
}

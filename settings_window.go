package main

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"image/png"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"organix/internal/config"
	"organix/internal/install"
	"organix/internal/locale"
	"organix/internal/logging"
	"organix/internal/overlay"
	"organix/internal/platform"
	"organix/internal/settings"
	"organix/internal/shader"
	"organix/internal/tracker"
	"organix/internal/visits"
)

const (
	settingsWidth  = 420
	settingsHeight = 560

	previewRasterWidth  = 320
	previewRasterHeight = 160
	previewFrameRate    = 10
)

// runSettingsMode shows the settings window. Changes are written to the
// configuration file on Save, and a running showcase picks them up.
func runSettingsMode(cfg config.Config, p paths, lang string) error {
	l := locale.New(lang)
	ctrl := settings.NewController(cfg.Settings())

	a := app.NewWithID(appID)
	a.Settings().SetTheme(newVariantTheme(ctrl.Snapshot().Dark))
	icon, err := appIcon()
	if err != nil {
		logging.L().Warn("app icon unavailable", "err", err)
	} else {
		a.SetIcon(icon)
	}

	w := a.NewWindow(fmt.Sprintf("%s %s", appName, l.T(locale.SettingsTitle)))
	w.Resize(fyne.NewSize(settingsWidth, settingsHeight))
	w.SetFixedSize(true)
	w.CenterOnScreen()

	title := canvas.NewText(appName, overlay.Primary(ctrl.Snapshot().Dark))
	title.Alignment = fyne.TextAlignCenter
	title.TextSize = 24
	title.TextStyle = fyne.TextStyle{Bold: true}

	// Live CPU rendition of the background program.
	start := time.Now()
	var elapsed float32
	raster := canvas.NewRasterWithPixels(func(x, y, width, height int) color.Color {
		in := shader.Inputs{
			Time:       elapsed,
			Brightness: ctrl.Snapshot().Brightness,
		}
		return toNRGBA(shader.Shade(float64(x)+0.5, float64(height-y)-0.5, float64(width), float64(height), in))
	})
	preview := container.New(&fixedSizeLayout{width: previewRasterWidth, height: previewRasterHeight}, raster)

	brightnessValue := widget.NewLabel("")
	showBrightness := func(s settings.Snapshot) {
		brightnessValue.SetText(fmt.Sprintf("%s: %.1f", l.T(locale.BrightnessLabel), s.Brightness))
	}
	slider := widget.NewSlider(settings.MinBrightness, settings.MaxBrightness)
	slider.Step = settings.BrightnessStep
	slider.SetValue(float64(ctrl.Snapshot().Brightness))
	slider.OnChanged = func(v float64) {
		if err := ctrl.SetBrightness(v); err != nil {
			logging.L().Debug("brightness rejected", "value", v, "err", err)
		}
	}

	themeButton := widget.NewButton("", nil)
	showTheme := func(s settings.Snapshot) {
		if s.Dark {
			themeButton.SetText(l.T(locale.LightMode))
		} else {
			themeButton.SetText(l.T(locale.DarkMode))
		}
	}
	themeButton.OnTapped = ctrl.ToggleTheme

	ctrl.OnChange(func(s settings.Snapshot) {
		showBrightness(s)
		showTheme(s)
		title.Color = overlay.Primary(s.Dark)
		title.Refresh()
		a.Settings().SetTheme(newVariantTheme(s.Dark))
	})
	showBrightness(ctrl.Snapshot())
	showTheme(ctrl.Snapshot())

	visitLabel, visitDetail := visitLabels(l, visits.NewFileStore(p.state))

	desktop := install.NewDesktop()
	installBox := newInstallSection(w, l, desktop)

	websiteButton := widget.NewButton(l.T(locale.VisitWebsite), func() {
		if err := platform.OpenURL(websiteURL); err != nil {
			logging.L().Error("open website failed", "url", websiteURL, "err", err)
		}
	})
	saveButton := widget.NewButton(l.T(locale.Save), func() {
		next := cfg.WithSettings(ctrl.Snapshot())
		if err := config.Save(p.config, next); err != nil {
			dialog.ShowError(err, w)
			return
		}
		cfg = next
		logging.L().Info("settings saved", "path", p.config)
	})
	saveButton.Importance = widget.HighImportance

	content := container.NewVBox(
		container.NewCenter(title),
		container.NewCenter(preview),
		widget.NewSeparator(),
		brightnessValue,
		slider,
		themeButton,
		widget.NewSeparator(),
		visitLabel,
		visitDetail,
		installBox,
		widget.NewSeparator(),
		container.NewGridWithColumns(2, websiteButton, saveButton),
	)
	w.SetContent(container.NewPadded(content))

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(cancel)
	go animate(ctx, func() {
		elapsed = float32(time.Since(start).Seconds())
		raster.Refresh()
	})

	w.ShowAndRun()
	cancel()
	return nil
}

// animate runs frame on the UI goroutine at the preview rate until ctx is
// done.
func animate(ctx context.Context, frame func()) {
	t := time.NewTicker(time.Second / previewFrameRate)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fyne.Do(frame)
		}
	}
}

func toNRGBA(c shader.RGB) color.NRGBA {
	ch := func(v float64) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: 0xff}
}

// visitLabels reads the visit count without counting this window as a visit.
func visitLabels(l *locale.Localizer, store visits.Store) (*widget.Label, *widget.Label) {
	n, err := store.Read()
	if err != nil {
		logging.L().Warn("visit count unreadable", "err", err)
	}
	n = max(n, 0)
	label := widget.NewLabel(visitCountText(l, n))
	label.TextStyle = fyne.TextStyle{Bold: true}
	detail := widget.NewLabel(l.Count(locale.VisitTooltip, n))
	return label, detail
}

// visitCountText shows n in counter numerals, followed by the localized
// count.
func visitCountText(l *locale.Localizer, n int) string {
	return fmt.Sprintf("%s: %s%s (%s)", l.T(locale.VisitLabel), visits.Numerals(n), overlay.CounterSymbol, l.Count(locale.VisitCount, n))
}

// newInstallSection drives the install controller from the install button
// and its dialogs.
func newInstallSection(w fyne.Window, l *locale.Localizer, desktop *install.Desktop) fyne.CanvasObject {
	ctrl := install.NewController()
	ctrl.Signal(desktop.Probe())

	var button *styledButton
	refresh := func() {
		if ctrl.Visible() {
			button.Show()
		} else {
			button.Hide()
		}
	}
	resolve := func(ok bool) {
		if !ok {
			ctrl.Resolve(install.OutcomeDismissed)
			refresh()
			return
		}
		if err := desktop.Install(); err != nil {
			logging.L().Error("install failed", "err", err)
			ctrl.Resolve(install.OutcomeDismissed)
			dialog.ShowError(err, w)
			refresh()
			return
		}
		ctrl.Resolve(install.OutcomeAccepted)
		dialog.ShowInformation(l.T(locale.InstallButton), l.T(locale.InstallDone), w)
		refresh()
	}
	button = newStyledButton(l.T(locale.InstallButton), color.White, overlay.Secondary(true), func() {
		ctrl.Trigger()
		switch {
		case ctrl.State() == install.Prompted:
			dialog.NewConfirm(l.T(locale.InstallButton), l.T(locale.InstallConfirm), resolve, w).Show()
		case ctrl.ShowingInstructions():
			d := dialog.NewInformation(l.T(locale.InstructionsTitle), l.T(desktop.Platform().InstructionsID()), w)
			d.SetOnClosed(func() {
				ctrl.CloseInstructions()
				refresh()
			})
			d.Show()
		}
	})
	refresh()
	return container.NewCenter(button)
}

// appIcon renders the glyphs into a PNG resource.
func appIcon() (fyne.Resource, error) {
	var c overlay.Canvas
	img, err := c.Rasterize(overlay.Scene(nil, tracker.Pointer{}, true), 256, 256)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	return fyne.NewStaticResource("organix.png", buf.Bytes()), nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"organix/internal/config"
	"organix/internal/glview"
	"organix/internal/install"
	"organix/internal/locale"
	"organix/internal/logging"
	"organix/internal/shader"
	"organix/internal/showcase"
	"organix/internal/visits"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720

	// The overlay is redrawn at this rate; the background keeps the display
	// rate.
	overlayRefresh = time.Second / 30
)

// runShowcaseMode opens the showcase window and runs the frame loop until the
// window closes or the process is interrupted. Settings changed from the
// keyboard are written back on exit.
func runShowcaseMode(cfg config.Config, p paths) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	win, err := glview.NewWindow(glview.WindowOptions{
		Title:      visits.Title(0),
		Width:      defaultWidth,
		Height:     defaultHeight,
		Fullscreen: cfg.Fullscreen,
		Resizable:  true,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	backend, err := win.MakeCurrent()
	if err != nil {
		return err
	}

	desktop := install.NewDesktop()
	w, h := win.Size()
	comp := showcase.New(showcase.Options{
		Width:     w,
		Height:    h,
		Config:    cfg,
		Localizer: locale.New(locale.English),
		Prober:    desktop,
		Installer: desktop,
		Platform:  desktop.Platform(),
		Seed:      uint64(time.Now().UnixNano()),
	})
	win.SetTitle(comp.Start(visits.NewFileStore(p.state)))

	var layers []shader.Layer
	prog, err := shader.New(backend)
	if err != nil {
		// The overlay still runs on a black background.
		logging.L().Error("background program unavailable", "err", err)
	} else {
		layers = append(layers, shader.NewBackground(prog, comp.Inputs))
	}

	overlayLayer, err := glview.NewTextureLayer(backend, func(time.Duration) *image.RGBA {
		w, h := win.Size()
		img, err := comp.Overlay(time.Now(), w, h)
		if err != nil {
			logging.L().Debug("overlay skipped", "err", err)
			return nil
		}
		return img
	})
	if err != nil {
		logging.L().Error("overlay unavailable", "err", err)
	} else {
		overlayLayer.SetRefreshInterval(overlayRefresh)
		layers = append(layers, overlayLayer)
	}

	win.OnResize(resizer(comp, prog))
	win.OnPointer(comp.PointerMoved)
	win.OnScroll(comp.Scrolled)
	win.OnKey(func(key glfw.Key, _ glfw.ModifierKey) {
		if k := keyAction(key); k != showcase.KeyNone {
			comp.Key(k)
		}
	})
	win.EmitResize()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reloads := make(chan config.Config, 1)
	if err := config.Watch(ctx, p.config, reloads); err != nil {
		logging.L().Warn("config reload disabled", "err", err)
	}

	loop := shader.NewLoop(win, layers...)
	loop.BeforeFrame(func() {
		select {
		case next := <-reloads:
			cfg = next
			comp.ApplyConfig(next)
			logging.L().Info("config reloaded", "brightness", next.Brightness, "dark", next.DarkMode)
		default:
		}
	})
	runErr := loop.Run(ctx)

	if err := config.Save(p.config, cfg.WithSettings(comp.Settings())); err != nil {
		logging.L().Warn("settings not saved", "err", err)
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// resizer forwards window size changes to the composer and, when the
// background program is available, to its viewport.
func resizer(comp *showcase.Composer, prog *shader.Program) func(width, height int, ratio float64) {
	return func(width, height int, ratio float64) {
		comp.Resize(width, height)
		if prog == nil {
			return
		}
		prog.Resize(width, height, ratio)
		pw, ph := prog.Resolution()
		logging.L().Debug("surface resized", "width", width, "height", height, "physical_width", pw, "physical_height", ph)
	}
}

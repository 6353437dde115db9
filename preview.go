package main

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"organix/internal/config"
	"organix/internal/glview"
	"organix/internal/logging"
	"organix/internal/platform"
	"organix/internal/shader"
	"organix/internal/showcase"
)

const previewTitle = appName + " Preview"

// runPreviewMode draws the showcase without its HUD into a small window,
// embedded into parent when one is given on Windows.
func runPreviewMode(cfg config.Config, parent uintptr) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	embed := parent != 0 && runtime.GOOS == "windows"
	win, err := glview.NewWindow(glview.WindowOptions{
		Title:  previewTitle,
		Width:  platform.PreviewWidth,
		Height: platform.PreviewHeight,
		// Shown once it is reparented, to avoid a flash on the desktop.
		Hidden: embed,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	width, height := platform.PreviewWidth, platform.PreviewHeight
	if embed {
		platform.HideWindow(previewTitle)
		glfw.PollEvents()
		time.Sleep(5 * time.Millisecond)
		width, height, err = platform.EmbedWindow(win.GLFW(), parent, previewTitle)
		if err != nil {
			logging.L().Warn("preview not embedded", "parent", parent, "err", err)
		}
	}

	backend, err := win.MakeCurrent()
	if err != nil {
		return err
	}

	comp := showcase.New(showcase.Options{
		Width:   width,
		Height:  height,
		Config:  cfg,
		Seed:    uint64(time.Now().UnixNano()),
		Preview: true,
	})
	comp.Start(nil)

	var layers []shader.Layer
	prog, err := shader.New(backend)
	if err != nil {
		logging.L().Error("background program unavailable", "err", err)
	} else {
		layers = append(layers, shader.NewBackground(prog, comp.Inputs))
	}
	overlayLayer, err := glview.NewTextureLayer(backend, func(time.Duration) *image.RGBA {
		w, h := win.Size()
		img, err := comp.Overlay(time.Now(), w, h)
		if err != nil {
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
	win.EmitResize()

	return shader.NewLoop(win, layers...).Run(context.Background())
}

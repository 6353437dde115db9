// Package overlay draws the decorative layer above the shader background:
// seven neon glyph outlines and a field of floating leaves, both composed as
// an SVG document in a 400x200 view box and rasterized on the CPU, plus the
// HUD text blocks.
package overlay

import (
	"fmt"
	"image/color"
)

// View box of every overlay document.
const (
	ViewWidth  = 400
	ViewHeight = 200
)

// GlyphCount is the number of neon glyphs.
const GlyphCount = 7

// glyphPaths are the neon glyph outlines in view box units.
var glyphPaths = [GlyphCount]string{
	"M 50 75 L 75 75 L 75 125 L 50 125 L 50 75",
	"M 90 75 L 90 125 L 115 125 L 115 100 L 90 100 L 115 75",
	"M 165 75 L 140 75 L 140 125 L 165 125 L 190 100 L 190 87 L 165 87",
	"M 200 125 L 225 75 L 250 125 M 212 100 L 237 100",
	"M 260 125 L 260 75 L 285 125 L 285 75",
	"M 295 75 L 320 75 M 307 75 L 307 125 M 295 125 L 320 125",
	"M 330 75 L 355 125 M 330 125 L 355 75",
}

// leafPath is the leaf outline centred on its stem.
const leafPath = "M 0,0 C -1,-3 -3,-3 -4,-1 C -5,1 -5,4 -4,5 C -3,6 -1,6 0,5 " +
	"C 1,6 3,6 4,5 C 5,4 5,1 4,-1 C 3,-3 1,-3 0,0 M 0,0 L 0,2"

var (
	// Green is the dark theme's primary colour.
	Green = color.RGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xff}
	// Purple is the light theme's primary colour.
	Purple = color.RGBA{R: 0x93, G: 0x33, B: 0xea, A: 0xff}
)

// Primary returns the theme's primary colour.
func Primary(dark bool) color.RGBA {
	if dark {
		return Green
	}
	return Purple
}

// Secondary returns the other palette colour.
func Secondary(dark bool) color.RGBA {
	return Primary(!dark)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

package overlay

import (
	"fmt"
	"image"
	"strings"

	"organix/internal/tracker"
)

const (
	glyphStroke = 3
	glowStroke  = 7
	glowOpacity = 0.35
)

// Scene returns the SVG document for one frame: glyphs translated by the
// pointer, then the leaves.
func Scene(leaves []LeafFrame, p tracker.Pointer, dark bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`,
		ViewWidth, ViewHeight, ViewWidth, ViewHeight)
	b.WriteByte('\n')

	stroke := hex(Primary(dark))
	dx, dy := GlyphOffset(p)
	fmt.Fprintf(&b, `<g transform="translate(%.3f %.3f)">`, dx, dy)
	b.WriteByte('\n')
	for _, d := range glyphPaths {
		// A wide translucent pass under the core stroke stands in for the blur.
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="%d" stroke-opacity="%.2f" stroke-linecap="round" stroke-linejoin="round"/>`,
			d, stroke, glowStroke, glowOpacity)
		b.WriteByte('\n')
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="%d" stroke-linecap="round" stroke-linejoin="round"/>`,
			d, stroke, glyphStroke)
		b.WriteByte('\n')
	}
	b.WriteString("</g>\n")

	for _, l := range leaves {
		fmt.Fprintf(&b, `<path d="%s" transform="translate(%.3f %.3f) rotate(%.3f) scale(%.4f)" fill="%s" fill-opacity="%.3f" stroke="none"/>`,
			leafPath, l.X, l.Y, l.Rotate, l.Scale, hex(l.Color), l.Opacity)
		b.WriteByte('\n')
	}
	b.WriteString("</svg>\n")
	return b.String()
}

// Fit places the view box inside a w x h surface, centred and scaled to fit
// without distortion.
func Fit(w, h int) (x, y, fw, fh float64) {
	scale := min(float64(w)/ViewWidth, float64(h)/ViewHeight)
	fw, fh = ViewWidth*scale, ViewHeight*scale
	return (float64(w) - fw) / 2, (float64(h) - fh) / 2, fw, fh
}

// Region is the centred box the scene occupies on a w x h surface: at most
// maxWidth wide, with the view box aspect ratio. A non-positive maxWidth
// means no limit.
func Region(w, h, maxWidth int) image.Rectangle {
	rw := w
	if maxWidth > 0 {
		rw = min(rw, maxWidth)
	}
	rh := min(h, rw*ViewHeight/ViewWidth)
	x, y := (w-rw)/2, (h-rh)/2
	return image.Rect(x, y, x+rw, y+rh)
}

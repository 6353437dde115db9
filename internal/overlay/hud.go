package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Anchor is the corner a HUD block is pinned to.
type Anchor int

const (
	TopLeft Anchor = iota
	TopRight
	BottomLeft
	BottomRight
	BottomCenter
)

const (
	hudMargin  = 12
	hudPadding = 6
	hudLeading = 2

	bottomCenterLift = 80
)

// Block is a panel of text lines.
type Block struct {
	Anchor Anchor
	Lines  []string
	// Numerals is drawn as a row of counter symbols under the first line.
	// Runes without an outline are skipped.
	Numerals string
	Text     color.Color
	Fill     color.Color
}

func (b Block) empty() bool {
	return len(b.Lines) == 0 && numeralCount(b.Numerals) == 0
}

func numeralCount(s string) int {
	n := 0
	for _, r := range s {
		if _, ok := numeralPaths[r]; ok {
			n++
		}
	}
	return n
}

var face = basicfont.Face7x13

func lineHeight() int {
	return face.Metrics().Height.Ceil() + hudLeading
}

// BlockSize returns the size of a block including its padding.
func BlockSize(b Block) (w, h int) {
	for _, l := range b.Lines {
		w = max(w, font.MeasureString(face, l).Ceil())
	}
	if len(b.Lines) > 0 {
		h = len(b.Lines)*lineHeight() - hudLeading
	}
	if n := numeralCount(b.Numerals); n > 0 {
		w = max(w, numeralRowWidth(n))
		if h > 0 {
			h += hudLeading
		}
		h += numeralHeight
	}
	return w + 2*hudPadding, h + 2*hudPadding
}

// BlockRect returns where b lands on a w x h surface.
func BlockRect(b Block, w, h int) image.Rectangle {
	bw, bh := BlockSize(b)
	var x, y int
	switch b.Anchor {
	case TopLeft:
		x, y = hudMargin, hudMargin
	case TopRight:
		x, y = w-hudMargin-bw, hudMargin
	case BottomLeft:
		x, y = hudMargin, h-hudMargin-bh
	case BottomRight:
		x, y = w-hudMargin-bw, h-hudMargin-bh
	default:
		x, y = (w-bw)/2, h-bottomCenterLift-bh
	}
	return image.Rect(x, y, x+bw, y+bh)
}

// drawBlock draws b into r. numerals is the coverage of its numeral row, or
// nil.
func drawBlock(dst *image.RGBA, r image.Rectangle, b Block, numerals *image.Alpha) {
	if b.Fill != nil {
		draw.Draw(dst, r, image.NewUniform(b.Fill), image.Point{}, draw.Over)
	}
	text := b.Text
	if text == nil {
		text = color.White
	}
	src := image.NewUniform(text)
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	x, y := r.Min.X+hudPadding, r.Min.Y+hudPadding
	for i, line := range b.Lines {
		d.Dot = fixed.P(x, y+ascent)
		d.DrawString(line)
		y += lineHeight()
		if i == 0 && numerals != nil {
			y = drawNumerals(dst, src, numerals, x, y)
		}
	}
	if len(b.Lines) == 0 && numerals != nil {
		drawNumerals(dst, src, numerals, x, y)
	}
}

// drawNumerals composites the numeral row at (x, y) and returns the top of
// the next line.
func drawNumerals(dst *image.RGBA, src image.Image, mask *image.Alpha, x, y int) int {
	r := mask.Bounds().Sub(mask.Bounds().Min).Add(image.Pt(x, y))
	draw.DrawMask(dst, r, src, image.Point{}, mask, mask.Bounds().Min, draw.Over)
	return y + numeralHeight + hudLeading
}

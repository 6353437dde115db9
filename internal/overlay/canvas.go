package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"organix/internal/tracker"
)

// The glyph layer covers this band of the view box: every glyph with its
// glow stroke and the largest pointer offset.
const (
	glyphBandMinX = 40
	glyphBandMinY = 65
	glyphBandMaxX = 365
	glyphBandMaxY = 135
)

// leafRadius bounds the leaf outline's distance from its origin.
const leafRadius = 7

const maxNumeralRows = 16

var errNotCleared = errors.New("overlay: canvas not cleared")

// Canvas rasterizes the overlay into a reused RGBA buffer.
//
// The glyph layer is rasterized once per scale and theme and then blitted at
// the pointer offset. Each leaf is rasterized into a small mask around
// itself. Clear only wipes what the previous frame drew.
type Canvas struct {
	img   *image.RGBA
	dirty []image.Rectangle

	glyphs      *image.RGBA
	glyphScale  float64
	glyphDark   bool
	glyphBuilds int

	leaf     *oksvg.SvgIcon
	leafMask *image.Alpha
	leafDash *rasterx.Dasher

	numerals map[string]*image.Alpha
}

// Clear resizes the buffer to w x h and makes it fully transparent.
func (c *Canvas) Clear(w, h int) *image.RGBA {
	if c.img == nil || c.img.Bounds().Dx() != w || c.img.Bounds().Dy() != h {
		c.img = image.NewRGBA(image.Rect(0, 0, w, h))
		c.dirty = c.dirty[:0]
		return c.img
	}
	for _, r := range c.dirty {
		draw.Draw(c.img, r, image.Transparent, image.Point{}, draw.Src)
	}
	c.dirty = c.dirty[:0]
	return c.img
}

func (c *Canvas) mark(r image.Rectangle) {
	r = r.Intersect(c.img.Bounds())
	if !r.Empty() {
		c.dirty = append(c.dirty, r)
	}
}

// Rasterize clears the buffer to w x h and draws doc fitted to the whole
// buffer.
func (c *Canvas) Rasterize(doc string, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("overlay: invalid canvas size %dx%d", w, h)
	}
	img := c.Clear(w, h)
	if err := drawDocument(img, doc, img.Bounds()); err != nil {
		return nil, err
	}
	c.mark(img.Bounds())
	return img, nil
}

// drawDocument parses doc and draws it over img, fitted inside r.
func drawDocument(img *image.RGBA, doc string, r image.Rectangle) error {
	icon, err := oksvg.ReadIconStream(strings.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("overlay: parse scene: %w", err)
	}
	x, y, fw, fh := Fit(r.Dx(), r.Dy())
	icon.SetTarget(float64(r.Min.X)+x, float64(r.Min.Y)+y, fw, fh)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return nil
}

// DrawScene draws the glyphs translated by the pointer and then the leaves,
// with the view box fitted inside r. Clear must have been called first.
func (c *Canvas) DrawScene(r image.Rectangle, leaves []LeafFrame, p tracker.Pointer, dark bool) error {
	if c.img == nil {
		return errNotCleared
	}
	x, y, fw, _ := Fit(r.Dx(), r.Dy())
	k := fw / ViewWidth
	if k <= 0 {
		return nil
	}
	ox, oy := float64(r.Min.X)+x, float64(r.Min.Y)+y

	glyphs, err := c.glyphLayer(k, dark)
	if err != nil {
		return err
	}
	dx, dy := GlyphOffset(p)
	at := image.Pt(int(math.Round(ox+(glyphBandMinX+dx)*k)), int(math.Round(oy+(glyphBandMinY+dy)*k)))
	dst := glyphs.Bounds().Add(at)
	draw.Draw(c.img, dst, glyphs, image.Point{}, draw.Over)
	c.mark(dst)

	for _, l := range leaves {
		if err := c.drawLeaf(l, ox, oy, k); err != nil {
			return err
		}
	}
	return nil
}

// glyphLayer returns the glyph band rasterized at k pixels per view unit.
func (c *Canvas) glyphLayer(k float64, dark bool) (*image.RGBA, error) {
	if c.glyphs != nil && c.glyphScale == k && c.glyphDark == dark {
		return c.glyphs, nil
	}
	w := int(math.Ceil((glyphBandMaxX - glyphBandMinX) * k))
	h := int(math.Ceil((glyphBandMaxY - glyphBandMinY) * k))
	icon, err := oksvg.ReadIconStream(strings.NewReader(Scene(nil, tracker.Pointer{}, dark)), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("overlay: parse glyphs: %w", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(-glyphBandMinX*k, -glyphBandMinY*k, ViewWidth*k, ViewHeight*k)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	c.glyphs, c.glyphScale, c.glyphDark = img, k, dark
	c.glyphBuilds++
	return img, nil
}

func (c *Canvas) drawLeaf(l LeafFrame, ox, oy, k float64) error {
	if l.Opacity <= 0 || l.Scale <= 0 {
		return nil
	}
	side := 2*int(math.Ceil(leafRadius*l.Scale*k)) + 2
	if err := c.ensureLeafMask(side); err != nil {
		return err
	}
	mask := c.leafMask
	clear(mask.Pix)
	ms := mask.Bounds().Dx()

	px, py := ox+l.X*k, oy+l.Y*k
	mx, my := int(math.Floor(px))-ms/2, int(math.Floor(py))-ms/2
	c.leaf.Transform = rasterx.Identity.
		Translate(px-float64(mx), py-float64(my)).
		Scale(k, k).
		Rotate(l.Rotate*math.Pi/180).
		Scale(l.Scale, l.Scale)
	c.leaf.Draw(c.leafDash, 1)

	a := uint8(min(l.Opacity, 1)*255 + 0.5)
	src := image.NewUniform(color.NRGBA{R: l.Color.R, G: l.Color.G, B: l.Color.B, A: a})
	dst := image.Rect(mx, my, mx+ms, my+ms)
	draw.DrawMask(c.img, dst, src, image.Point{}, mask, image.Point{}, draw.Over)
	c.mark(dst)
	return nil
}

// ensureLeafMask makes the leaf mask at least side pixels square.
func (c *Canvas) ensureLeafMask(side int) error {
	if c.leaf == nil {
		doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-8 -8 16 16">` +
			`<path d="` + leafPath + `" fill="#ffffff"/></svg>`
		icon, err := oksvg.ReadIconStream(strings.NewReader(doc), oksvg.IgnoreErrorMode)
		if err != nil {
			return fmt.Errorf("overlay: parse leaf: %w", err)
		}
		c.leaf = icon
	}
	if c.leafMask != nil && c.leafMask.Bounds().Dx() >= side {
		return nil
	}
	c.leafMask = image.NewAlpha(image.Rect(0, 0, side, side))
	scanner := rasterx.NewScannerGV(side, side, c.leafMask, c.leafMask.Bounds())
	c.leafDash = rasterx.NewDasher(side, side, scanner)
	return nil
}

// numeralMask returns the coverage mask of a numeral row, rasterized on
// first use.
func (c *Canvas) numeralMask(s string) (*image.Alpha, error) {
	if m, ok := c.numerals[s]; ok {
		return m, nil
	}
	n, doc := numeralRow(s)
	if n == 0 {
		return nil, nil
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("overlay: parse numerals: %w", err)
	}
	w := numeralRowWidth(n)
	m := image.NewAlpha(image.Rect(0, 0, w, numeralHeight))
	icon.SetTarget(0, 0, float64(w), numeralHeight)
	scanner := rasterx.NewScannerGV(w, numeralHeight, m, m.Bounds())
	icon.Draw(rasterx.NewDasher(w, numeralHeight, scanner), 1)

	if c.numerals == nil || len(c.numerals) >= maxNumeralRows {
		c.numerals = make(map[string]*image.Alpha)
	}
	c.numerals[s] = m
	return m, nil
}

// DrawBlocks draws each non-empty block. Clear must have been called first.
func (c *Canvas) DrawBlocks(blocks ...Block) error {
	if c.img == nil {
		return errNotCleared
	}
	w, h := c.img.Bounds().Dx(), c.img.Bounds().Dy()
	for _, b := range blocks {
		if b.empty() {
			continue
		}
		r := BlockRect(b, w, h)
		var numerals *image.Alpha
		if b.Numerals != "" {
			m, err := c.numeralMask(b.Numerals)
			if err != nil {
				return err
			}
			numerals = m
		}
		drawBlock(c.img, r, b, numerals)
		c.mark(r)
	}
	return nil
}

package overlay

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"organix/internal/tracker"
)

const (
	wideLeafBase   = 20
	narrowLeafBase = 10
	referenceWidth = 1920

	leafOrbit        = 15
	leafPointerGain  = 10
	glyphPointerGain = 5
)

// Leaf is one floating leaf. Its phase and scale are drawn once when the
// field is built.
type Leaf struct {
	ID     string
	Glyph  int
	BaseX  float64
	BaseY  float64
	Offset float64
	Phase  float64
	Scale  float64
}

// LeafFrame is a leaf's drawing parameters at one instant.
type LeafFrame struct {
	ID      string
	X, Y    float64
	Rotate  float64 // degrees
	Scale   float64
	Opacity float64
	Color   color.RGBA
}

// LeavesPerGlyph returns floor(base*width/1920) with base 20, or 10 when
// narrow.
func LeavesPerGlyph(width int, narrow bool) int {
	base := wideLeafBase
	if narrow {
		base = narrowLeafBase
	}
	if width <= 0 {
		return 0
	}
	return int(math.Floor(float64(base) * float64(width) / referenceWidth))
}

// Field is the set of leaves for one layout.
type Field struct {
	leaves  []Leaf
	perLeaf int
	narrow  bool
}

// NewField builds the leaves for a layout of the given logical width. seed
// fixes the per-leaf randomness.
func NewField(seed uint64, width int, narrow bool) *Field {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	n := LeavesPerGlyph(width, narrow)
	scaleRange := 0.1
	if narrow {
		scaleRange *= 0.8
	}

	f := &Field{perLeaf: n, narrow: narrow, leaves: make([]Leaf, 0, n*GlyphCount)}
	for g := range GlyphCount {
		for i := range n {
			f.leaves = append(f.leaves, Leaf{
				ID:     fmt.Sprintf("leaf-%d-%d", g, i),
				Glyph:  g,
				BaseX:  float64(50 + g*50),
				BaseY:  75,
				Offset: float64(i) / float64(n),
				Phase:  rng.Float64() * 2 * math.Pi,
				Scale:  0.1 + rng.Float64()*scaleRange,
			})
		}
	}
	return f
}

// Leaves returns the leaves. The slice must not be modified.
func (f *Field) Leaves() []Leaf {
	return f.leaves
}

// Fits reports whether the field already matches a layout, so it need not be
// rebuilt.
func (f *Field) Fits(width int, narrow bool) bool {
	return f.narrow == narrow && f.perLeaf == LeavesPerGlyph(width, narrow)
}

// Frame computes every leaf's parameters at wall time t seconds. It does not
// mutate the field.
func (f *Field) Frame(t float64, p tracker.Pointer, dark bool) []LeafFrame {
	frames := make([]LeafFrame, len(f.leaves))
	px, py := float64(p.X), float64(p.Y)
	rotate := math.Mod(t*50, 360)
	if rotate < 0 {
		rotate += 360
	}
	for i, l := range f.leaves {
		c := Secondary(dark)
		if l.Offset > 0.5 {
			c = Primary(dark)
		}
		frames[i] = LeafFrame{
			ID:      l.ID,
			X:       l.BaseX + math.Cos(l.Phase+t)*leafOrbit + px*leafPointerGain,
			Y:       l.BaseY + math.Sin(l.Phase+t)*leafOrbit + py*leafPointerGain,
			Rotate:  rotate,
			Scale:   l.Scale,
			Opacity: 0.6 + 0.4*math.Sin(t+l.Phase),
			Color:   c,
		}
	}
	return frames
}

// GlyphOffset is the translation applied to every glyph for pointer p.
func GlyphOffset(p tracker.Pointer) (dx, dy float64) {
	return float64(p.X) * glyphPointerGain, float64(p.Y) * glyphPointerGain
}

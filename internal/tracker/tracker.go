// Package tracker keeps the normalized pointer position, the narrow-layout
// flag and the scroll offset, updated from raw window events.
package tracker

const (
	// NarrowWidth is the logical width below which the layout is narrow.
	NarrowWidth = 768
	// ScrollTopThreshold is the offset past which the back-to-top hint shows.
	ScrollTopThreshold = 200
)

// Pointer is a position normalized to [-1, 1] per axis for in-window
// coordinates. Y grows downward, as window coordinates do.
type Pointer struct {
	X, Y float32
}

// Snapshot is an immutable copy of the tracker state.
type Snapshot struct {
	Width, Height int
	Pointer       Pointer
	Narrow        bool
	ScrollY       float64
}

// ShowScrollTop reports whether the back-to-top hint should be visible.
func (s Snapshot) ShowScrollTop() bool {
	return s.ScrollY > ScrollTopThreshold
}

// Normalize maps window coordinates to [-1, 1] with 2*(coord/dimension)-1.
// Out-of-window coordinates are mapped linearly and not clamped. A zero
// dimension maps to 0 on that axis.
func Normalize(x, y float64, width, height int) Pointer {
	var p Pointer
	if width > 0 {
		p.X = float32(2*(x/float64(width)) - 1)
	}
	if height > 0 {
		p.Y = float32(2*(y/float64(height)) - 1)
	}
	return p
}

// IsNarrow reports whether a logical width uses the narrow layout.
func IsNarrow(width int) bool {
	return width < NarrowWidth
}

// Tracker accumulates window events. It is driven from the UI thread only.
type Tracker struct {
	snap Snapshot
}

// New returns a tracker for a window of the given logical size.
func New(width, height int) *Tracker {
	t := &Tracker{}
	t.Resize(width, height)
	return t
}

// Resize records a new logical size and recomputes the narrow flag.
func (t *Tracker) Resize(width, height int) {
	t.snap.Width = width
	t.snap.Height = height
	t.snap.Narrow = IsNarrow(width)
}

// Move records a pointer event in window coordinates.
func (t *Tracker) Move(x, y float64) {
	t.snap.Pointer = Normalize(x, y, t.snap.Width, t.snap.Height)
}

// Scroll applies a wheel delta in pixels; positive scrolls down.
func (t *Tracker) Scroll(dy float64) {
	t.snap.ScrollY = max(t.snap.ScrollY+dy, 0)
}

// ScrollTop resets the scroll offset.
func (t *Tracker) ScrollTop() {
	t.snap.ScrollY = 0
}

// Snapshot returns the current state by value.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}

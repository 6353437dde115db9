package shader

import (
	"context"
	"io"
	"time"

	"organix/internal/logging"
)

// Host is the drawing surface that owns the frame cadence.
type Host interface {
	ShouldClose() bool
	// BeginFrame clears the surface.
	BeginFrame()
	// EndFrame presents the frame and dispatches pending input events.
	EndFrame()
}

// Layer is drawn once per frame, in order.
type Layer interface {
	DrawFrame(elapsed time.Duration)
}

// Background is the layer that draws a Program with the latest inputs.
type Background struct {
	program *Program
	inputs  func(elapsed time.Duration) Inputs
	failed  bool
}

// NewBackground wraps p. inputs is called on every frame to sample the
// current snapshot.
func NewBackground(p *Program, inputs func(elapsed time.Duration) Inputs) *Background {
	return &Background{program: p, inputs: inputs}
}

// DrawFrame implements Layer.
func (b *Background) DrawFrame(elapsed time.Duration) {
	if b.failed {
		return
	}
	if err := b.program.Draw(b.inputs(elapsed)); err != nil {
		logging.L().Warn("background draw failed", "err", err)
		b.failed = true
	}
}

// Close releases the program.
func (b *Background) Close() error {
	b.program.Release()
	return nil
}

// Throttle limits how often a layer redoes expensive work. The zero value is
// due on every frame.
type Throttle struct {
	Interval time.Duration
	last     time.Duration
	primed   bool
}

// Due reports whether Interval has passed since the last due frame, and
// records elapsed as the last due frame when it has.
func (t *Throttle) Due(elapsed time.Duration) bool {
	if t.primed && elapsed-t.last < t.Interval {
		return false
	}
	t.primed, t.last = true, elapsed
	return true
}

// Loop runs the self-rescheduling frame chain: draw every layer, present,
// repeat, until the host closes or the context is cancelled.
type Loop struct {
	host   Host
	layers []Layer
	now    func() time.Time
	before []func()
}

// NewLoop creates a loop drawing layers on host.
func NewLoop(host Host, layers ...Layer) *Loop {
	return &Loop{host: host, layers: layers, now: time.Now}
}

// BeforeFrame registers fn to run at the start of every frame, before any
// layer draws.
func (l *Loop) BeforeFrame(fn func()) {
	l.before = append(l.before, fn)
}

// Run blocks until the host asks to close (nil) or ctx is cancelled
// (ctx.Err()). Layers implementing io.Closer are closed on return.
func (l *Loop) Run(ctx context.Context) error {
	defer l.teardown()

	start := l.now()
	frames := 0
	for !l.host.ShouldClose() {
		select {
		case <-ctx.Done():
			logging.L().Debug("frame loop cancelled", "frames", frames)
			return ctx.Err()
		default:
		}

		for _, fn := range l.before {
			fn()
		}
		elapsed := l.now().Sub(start)
		l.host.BeginFrame()
		for _, layer := range l.layers {
			layer.DrawFrame(elapsed)
		}
		l.host.EndFrame()
		frames++
	}
	logging.L().Debug("frame loop finished", "frames", frames)
	return nil
}

func (l *Loop) teardown() {
	for _, layer := range l.layers {
		if c, ok := layer.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logging.L().Warn("layer teardown failed", "err", err)
			}
		}
	}
}

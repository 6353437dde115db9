// Package shader owns the background GPU program: compiling and linking it
// once, pushing the four per-frame uniforms, and releasing it on teardown.
//
// The package talks to the GPU only through Backend so the lifecycle can be
// driven by a fake context in tests. The go-gl implementation lives in
// internal/glview.
package shader

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"organix/internal/logging"
)

// Stage identifies a shader stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

var (
	// ErrNoContext is returned when no rendering context could be acquired.
	ErrNoContext = errors.New("shader: rendering context unavailable")
	// ErrReleased is returned when drawing with a released program.
	ErrReleased = errors.New("shader: program released")
)

// CompileError carries the driver's info log for a failed stage.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: compile %s stage: %s", e.Stage, strings.TrimSpace(e.Log))
}

// LinkError carries the driver's info log for a failed link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "shader: link program: " + strings.TrimSpace(e.Log)
}

// Quad is the vertex array and buffer holding the fullscreen quad.
type Quad struct {
	VAO uint32
	VBO uint32
}

// Backend is the subset of a GPU context the program needs.
type Backend interface {
	CompileStage(stage Stage, source string) (id uint32, infoLog string, ok bool)
	DeleteStage(id uint32)
	LinkProgram(vertex, fragment uint32) (id uint32, infoLog string, ok bool)
	DeleteProgram(id uint32)
	UniformLocation(program uint32, name string) int32
	CreateQuad(vertices []float32) (Quad, error)
	DeleteQuad(q Quad)
	UseProgram(id uint32)
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, x, y float32)
	Viewport(width, height int32)
	DrawQuad(q Quad)
}

// Inputs are the values sampled from the composer on every frame.
type Inputs struct {
	// Time is the elapsed time since the program started, in seconds.
	Time float32
	// Pointer is the normalized pointer in GL orientation (y grows upward).
	Pointer [2]float32
	// Brightness scales the final colour.
	Brightness float32
}

// unitQuad is drawn as a 4-vertex triangle strip.
var unitQuad = []float32{
	0, 0,
	1, 0,
	0, 1,
	1, 1,
}

type uniformLocations struct {
	time       int32
	resolution int32
	mouse      int32
	brightness int32
}

// Program is one linked background program and its quad.
type Program struct {
	backend  Backend
	id       uint32
	quad     Quad
	loc      uniformLocations
	width    int32
	height   int32
	released bool
}

// New compiles and links the background program. Every resource created
// before a failure is released before returning.
func New(backend Backend) (*Program, error) {
	if backend == nil {
		return nil, ErrNoContext
	}

	vs, infoLog, ok := backend.CompileStage(VertexStage, VertexSource)
	if !ok {
		backend.DeleteStage(vs)
		return nil, &CompileError{Stage: VertexStage, Log: infoLog}
	}
	fs, infoLog, ok := backend.CompileStage(FragmentStage, FragmentSource)
	if !ok {
		backend.DeleteStage(vs)
		backend.DeleteStage(fs)
		return nil, &CompileError{Stage: FragmentStage, Log: infoLog}
	}

	id, infoLog, ok := backend.LinkProgram(vs, fs)
	// Stages are no longer needed once linked, or once linking failed.
	backend.DeleteStage(vs)
	backend.DeleteStage(fs)
	if !ok {
		backend.DeleteProgram(id)
		return nil, &LinkError{Log: infoLog}
	}

	quad, err := backend.CreateQuad(unitQuad)
	if err != nil {
		backend.DeleteProgram(id)
		return nil, fmt.Errorf("shader: upload quad: %w", err)
	}

	p := &Program{
		backend: backend,
		id:      id,
		quad:    quad,
		loc: uniformLocations{
			time:       backend.UniformLocation(id, uniformTime),
			resolution: backend.UniformLocation(id, uniformResolution),
			mouse:      backend.UniformLocation(id, uniformMouse),
			brightness: backend.UniformLocation(id, uniformBrightness),
		},
	}
	logging.L().Debug("background program linked",
		"program", id,
		"u_time", p.loc.time,
		"u_resolution", p.loc.resolution,
		"u_mouse", p.loc.mouse,
		"u_brightness", p.loc.brightness)
	return p, nil
}

// PhysicalSize converts a logical surface size to physical pixels.
// A non-positive ratio is treated as 1.
func PhysicalSize(logicalW, logicalH int, ratio float64) (int32, int32) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	w := int32(math.Round(float64(logicalW) * ratio))
	h := int32(math.Round(float64(logicalH) * ratio))
	return max(w, 0), max(h, 0)
}

// Resize recomputes the physical buffer size and updates the viewport so the
// next Draw uses the new resolution.
func (p *Program) Resize(logicalW, logicalH int, ratio float64) {
	if p.released {
		return
	}
	p.width, p.height = PhysicalSize(logicalW, logicalH, ratio)
	p.backend.Viewport(p.width, p.height)
}

// Resolution returns the physical size used for u_resolution.
func (p *Program) Resolution() (int32, int32) {
	return p.width, p.height
}

// Draw pushes the uniforms and draws the quad once.
func (p *Program) Draw(in Inputs) error {
	if p.released {
		return ErrReleased
	}
	b := p.backend
	b.UseProgram(p.id)
	if p.loc.time >= 0 {
		b.Uniform1f(p.loc.time, in.Time)
	}
	if p.loc.resolution >= 0 {
		b.Uniform2f(p.loc.resolution, float32(p.width), float32(p.height))
	}
	if p.loc.mouse >= 0 {
		b.Uniform2f(p.loc.mouse, in.Pointer[0], in.Pointer[1])
	}
	if p.loc.brightness >= 0 {
		b.Uniform1f(p.loc.brightness, in.Brightness)
	}
	b.DrawQuad(p.quad)
	return nil
}

// Release deletes the program and its quad. It is safe to call more than once.
func (p *Program) Release() {
	if p.released {
		return
	}
	p.released = true
	p.backend.DeleteQuad(p.quad)
	p.backend.DeleteProgram(p.id)
	logging.L().Debug("background program released", "program", p.id)
}

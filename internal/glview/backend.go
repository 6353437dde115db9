// Package glview binds the shader lifecycle and the overlay to OpenGL 3.3
// core through go-gl, and wraps the GLFW window that hosts the frame loop.
//
// Every function here must run on the thread that owns the GL context.
package glview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"organix/internal/shader"
)

// Backend implements shader.Backend on the current GL context.
type Backend struct{}

var _ shader.Backend = Backend{}

// Init loads the GL function pointers for the current context.
func Init() (Backend, error) {
	if err := gl.Init(); err != nil {
		return Backend{}, fmt.Errorf("%w: %v", shader.ErrNoContext, err)
	}
	return Backend{}, nil
}

// Version returns the driver's GL version string.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func glStage(s shader.Stage) uint32 {
	if s == shader.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// CompileStage implements shader.Backend.
func (Backend) CompileStage(stage shader.Stage, source string) (uint32, string, bool) {
	id := gl.CreateShader(glStage(stage))
	if id == 0 {
		return 0, "glCreateShader returned 0", false
	}
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
		return id, infoLog(logLength, func(buf *uint8) { gl.GetShaderInfoLog(id, logLength, nil, buf) }), false
	}
	return id, "", true
}

// DeleteStage implements shader.Backend.
func (Backend) DeleteStage(id uint32) {
	if id != 0 {
		gl.DeleteShader(id)
	}
}

// LinkProgram implements shader.Backend.
func (Backend) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, "glCreateProgram returned 0", false
	}
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		return program, infoLog(logLength, func(buf *uint8) { gl.GetProgramInfoLog(program, logLength, nil, buf) }), false
	}
	gl.DetachShader(program, vertex)
	gl.DetachShader(program, fragment)
	return program, "", true
}

func infoLog(length int32, read func(*uint8)) string {
	if length <= 0 {
		return "(no info log)"
	}
	buf := make([]byte, length)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

// DeleteProgram implements shader.Backend.
func (Backend) DeleteProgram(id uint32) {
	if id != 0 {
		gl.DeleteProgram(id)
	}
}

// UniformLocation implements shader.Backend.
func (Backend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// CreateQuad uploads vertices as tightly packed vec2 positions at location 0.
func (Backend) CreateQuad(vertices []float32) (shader.Quad, error) {
	if len(vertices) == 0 {
		return shader.Quad{}, errors.New("glview: empty vertex data")
	}
	var q shader.Quad
	gl.GenVertexArrays(1, &q.VAO)
	gl.GenBuffers(1, &q.VBO)
	if q.VAO == 0 || q.VBO == 0 {
		return shader.Quad{}, errors.New("glview: could not allocate vertex buffers")
	}

	gl.BindVertexArray(q.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return q, nil
}

// DeleteQuad implements shader.Backend.
func (Backend) DeleteQuad(q shader.Quad) {
	if q.VBO != 0 {
		gl.DeleteBuffers(1, &q.VBO)
	}
	if q.VAO != 0 {
		gl.DeleteVertexArrays(1, &q.VAO)
	}
}

// UseProgram implements shader.Backend.
func (Backend) UseProgram(id uint32) {
	gl.UseProgram(id)
}

// Uniform1f implements shader.Backend.
func (Backend) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

// Uniform2f implements shader.Backend.
func (Backend) Uniform2f(loc int32, x, y float32) {
	gl.Uniform2f(loc, x, y)
}

// Viewport implements shader.Backend.
func (Backend) Viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

// DrawQuad draws q as a 4-vertex triangle strip.
func (Backend) DrawQuad(q shader.Quad) {
	gl.BindVertexArray(q.VAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

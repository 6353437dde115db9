package glview

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"

	"organix/internal/logging"
	"organix/internal/shader"
)

const textureVertexSource = `#version 330 core
layout(location = 0) in vec2 aPos;
out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos * 2.0 - 1.0, 0.0, 1.0);
    // Image rows start at the top.
    TexCoord = vec2(aPos.x, 1.0 - aPos.y);
}`

const textureFragmentSource = `#version 330 core
in vec2 TexCoord;
out vec4 FragColor;
uniform sampler2D overlayTexture;

void main() {
    FragColor = texture(overlayTexture, TexCoord);
}`

var textureQuad = []float32{
	0, 0,
	1, 0,
	0, 1,
	1, 1,
}

// TextureLayer stretches an RGBA image over the whole surface, blended over
// what is already drawn. The image is produced by source at most once per
// refresh interval; in between, and when source returns nil, the last
// uploaded image is drawn again.
type TextureLayer struct {
	backend Backend
	refresh shader.Throttle
	program uint32
	sampler int32
	quad    shader.Quad
	texture uint32
	width   int
	height  int
	source  func(elapsed time.Duration) *image.RGBA
}

// NewTextureLayer compiles the blit program and allocates the texture.
func NewTextureLayer(b Backend, source func(elapsed time.Duration) *image.RGBA) (*TextureLayer, error) {
	vs, infoLog, ok := b.CompileStage(shader.VertexStage, textureVertexSource)
	if !ok {
		b.DeleteStage(vs)
		return nil, &shader.CompileError{Stage: shader.VertexStage, Log: infoLog}
	}
	fs, infoLog, ok := b.CompileStage(shader.FragmentStage, textureFragmentSource)
	if !ok {
		b.DeleteStage(vs)
		b.DeleteStage(fs)
		return nil, &shader.CompileError{Stage: shader.FragmentStage, Log: infoLog}
	}
	program, infoLog, ok := b.LinkProgram(vs, fs)
	b.DeleteStage(vs)
	b.DeleteStage(fs)
	if !ok {
		b.DeleteProgram(program)
		return nil, &shader.LinkError{Log: infoLog}
	}
	quad, err := b.CreateQuad(textureQuad)
	if err != nil {
		b.DeleteProgram(program)
		return nil, fmt.Errorf("glview: overlay quad: %w", err)
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &TextureLayer{
		backend: b,
		program: program,
		sampler: b.UniformLocation(program, "overlayTexture"),
		quad:    quad,
		texture: texture,
		source:  source,
	}, nil
}

// SetRefreshInterval limits how often source is called. Zero refreshes on
// every frame.
func (l *TextureLayer) SetRefreshInterval(d time.Duration) {
	l.refresh.Interval = d
}

// DrawFrame implements shader.Layer.
func (l *TextureLayer) DrawFrame(elapsed time.Duration) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, l.texture)
	if l.width == 0 || l.refresh.Due(elapsed) {
		l.upload(l.source(elapsed))
	}
	if l.width == 0 {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	// image.RGBA is alpha-premultiplied.
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	l.backend.UseProgram(l.program)
	if l.sampler >= 0 {
		gl.Uniform1i(l.sampler, 0)
	}
	l.backend.DrawQuad(l.quad)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.BLEND)
}

// upload replaces the bound texture's contents with img. A nil or empty
// image keeps the previous contents.
func (l *TextureLayer) upload(img *image.RGBA) {
	if img == nil {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if w != l.width || h != l.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		l.width, l.height = w, h
		logging.L().Debug("overlay texture allocated", "width", w, "height", h)
		return
	}
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}

// Close releases the texture, quad and program.
func (l *TextureLayer) Close() error {
	if l.texture != 0 {
		gl.DeleteTextures(1, &l.texture)
		l.texture = 0
	}
	l.backend.DeleteQuad(l.quad)
	l.quad = shader.Quad{}
	l.backend.DeleteProgram(l.program)
	l.program = 0
	return nil
}

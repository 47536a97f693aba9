package gfx

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexArrayObject points to a vertex buffer that has already been
// loaded into graphics memory.
type VertexArrayObject struct {
	vaoID      uint32
	length     int32
	glDrawType uint32
	onDraw     func(ctx *Context) bool
}

// VAOConfig represents a configuration for creating a new VAO. Vertices are
// interleaved: Size position floats followed by two texture coordinates,
// Stride floats per vertex. OnDraw returns false to skip the draw and may be
// used to set uniforms.
type VAOConfig struct {
	Vertices   []float32
	VertAttr   string
	TexAttr    string
	Stride     int32
	Size       int
	GLDrawType uint32
	OnDraw     func(ctx *Context) bool
}

// NewVertexArrayObject uploads the vertices and describes their layout.
func (c *Context) NewVertexArrayObject(cfg *VAOConfig) (*VertexArrayObject, error) {
	if cfg.Stride <= 0 || len(cfg.Vertices)%int(cfg.Stride) != 0 {
		return nil, errors.New("invalid length for vertices must be multiple of stride")
	}
	vattr, err := c.GetAttributeLocation(cfg.VertAttr)
	if err != nil {
		return nil, err
	}
	tattr, err := c.GetAttributeLocation(cfg.TexAttr)
	if err != nil {
		return nil, err
	}
	stride := 4 * cfg.Stride

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(cfg.Vertices), gl.Ptr(cfg.Vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(vattr)
	gl.VertexAttribPointer(vattr, int32(cfg.Size), gl.FLOAT, false, stride, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(tattr)
	gl.VertexAttribPointer(tattr, 2, gl.FLOAT, false, stride, gl.PtrOffset(cfg.Size*4))

	gl.BindVertexArray(0)

	return &VertexArrayObject{
		vaoID:      vao,
		length:     int32(len(cfg.Vertices)) / cfg.Stride,
		glDrawType: cfg.GLDrawType,
		onDraw:     cfg.OnDraw,
	}, nil
}

// Draw draws a VertexArrayObject to the current frame buffer
func (v *VertexArrayObject) Draw(ctx *Context) {
	gl.BindVertexArray(v.vaoID)
	if v.onDraw != nil {
		if !v.onDraw(ctx) {
			return
		}
	}
	gl.DrawArrays(v.glDrawType, 0, v.length)
}

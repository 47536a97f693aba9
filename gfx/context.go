// Package gfx wraps the OpenGL and GLFW plumbing used to put the oscilloscope
// screen in a window.
package gfx

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"
)

// Context is a context for doing opengl graphics
type Context struct {
	Window  *Window
	Program *Program

	uniforms   map[string]int32
	attributes map[string]uint32
	vaos       []*VertexArrayObject
	textures   []*TextureObject

	ctx context.Context
}

// NewContext opens a window, compiles and links the shaders and makes the
// program current. It must be called from the main OS thread.
func NewContext(ctx context.Context,
	windowConfig *WindowConfig, shaderConfigs []*ShaderConfig) (*Context, error) {
	window, err := NewWindow(windowConfig)
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("initializing gl: %w", err)
	}
	glog.Infof("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	program, err := NewProgram()
	if err != nil {
		return nil, err
	}
	for _, cfg := range shaderConfigs {
		if err := program.AttachShader(cfg); err != nil {
			return nil, err
		}
	}
	if err := program.Link(); err != nil {
		return nil, err
	}
	gl.UseProgram(program.ProgramID)

	uniforms := make(map[string]int32)
	attributes := make(map[string]uint32)
	for _, sh := range program.Shaders {
		for uname, uloc := range sh.UniformLocations {
			uniforms[uname] = uloc
		}
		for aname, aloc := range sh.AttributeLocations {
			attributes[aname] = uint32(aloc)
		}
	}

	return &Context{
		Window:     window,
		Program:    program,
		uniforms:   uniforms,
		attributes: attributes,
		ctx:        ctx,
	}, nil
}

// EventLoop clears the framebuffer and executes render in a loop until the
// window is closed or the context is done. It locks the calling goroutine to
// its OS thread, which must be the one NewContext ran on.
func (c *Context) EventLoop(render func(*Context)) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for !c.Window.GlfwWindow.ShouldClose() {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		gl.UseProgram(c.Program.ProgramID)

		render(c)

		c.Draw()

		c.Window.GlfwWindow.SwapBuffers()
		glfw.PollEvents()
	}
}

// Draw draws every VAO that's attached to the context.
func (c *Context) Draw() {
	for _, v := range c.vaos {
		v.Draw(c)
	}
}

// Terminate ends the glfw session
func (c *Context) Terminate() {
	glfw.Terminate()
}

// AddVertexArrayObject creates a VAO and draws it on every frame.
func (c *Context) AddVertexArrayObject(cfg *VAOConfig) error {
	vao, err := c.NewVertexArrayObject(cfg)
	if err != nil {
		return err
	}
	c.vaos = append(c.vaos, vao)
	return nil
}

// GetUniformLocation returns the location of a uniform within the context's program.
func (c *Context) GetUniformLocation(uname string) (int32, error) {
	uloc, ok := c.uniforms[uname]
	if !ok {
		return -1, fmt.Errorf("unknown uniform %q", uname)
	}
	return uloc, nil
}

// GetAttributeLocation returns the location of a vertex attribute.
func (c *Context) GetAttributeLocation(aname string) (uint32, error) {
	aloc, ok := c.attributes[aname]
	if !ok {
		return 0, fmt.Errorf("unknown attribute %q", aname)
	}
	return aloc, nil
}

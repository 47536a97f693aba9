package gfx

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	openglVersionMajor = 4
	openglVersionMinor = 1
)

// Window represents a wrapped glfw window object.
type Window struct {
	Config     *WindowConfig
	GlfwWindow *glfw.Window
}

// KeyFunc receives key presses and repeats.
type KeyFunc func(key glfw.Key, mods glfw.ModifierKey)

// WindowConfig contains a new window configuration
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	// VSync swaps once per display refresh.
	VSync bool
	OnKey KeyFunc
}

// NewWindow initializes glfw and opens a window with a current GL 4.1 core context.
func NewWindow(cfg *WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, openglVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, openglVersionMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	}

	if cfg.OnKey != nil {
		window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int,
			action glfw.Action, mods glfw.ModifierKey) {
			if action == glfw.Press || action == glfw.Repeat {
				cfg.OnKey(key, mods)
			}
		})
	}

	return &Window{Config: cfg, GlfwWindow: window}, nil
}

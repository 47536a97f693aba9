// Package screen shows an RGBA frame in a window as a full-window texture.
package screen

import (
	"context"
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	ml "github.com/go-gl/mathgl/mgl32"
	"github.com/golang/glog"

	"github.com/peragwin/vuzicscope/gfx"
	"github.com/peragwin/vuzicscope/gfx/frame"
)

const (
	vertexShaderSource = `
	#version 410
	in vec3 vertPos;
	in vec2 texPos;
	out vec2 fragTexPos;
	void main() {
		fragTexPos = texPos;
		gl_Position = vec4(vertPos, 1.0);
	}`

	fragmentShaderSource = `
	#version 410
	uniform sampler2D tex;
	in vec2 fragTexPos;
	out vec4 frag_color;
	void main() {
		frag_color = texture(tex, fragTexPos);
	}`
)

var (
	square = [6]ml.Vec2{
		{-1, 1},
		{-1, -1},
		{1, -1},

		{-1, 1},
		{1, 1},
		{1, -1},
	}
	uvCord = [6]ml.Vec2{
		{0, 0},
		{0, 1},
		{1, 1},

		{0, 0},
		{1, 0},
		{1, 1},
	}
)

// Config is a configuration for creating a new Screen.
type Config struct {
	// Width and Height size the window.
	Width  int
	Height int
	// Columns and Rows size the frame; every presented image must match.
	Columns     int
	Rows        int
	Title       string
	TextureMode int32

	OnKey gfx.KeyFunc
}

// Screen is a window showing one image per display refresh.
type Screen struct {
	image   *image.RGBA
	texture *gfx.TextureObject
	failed  bool

	Gfx *gfx.Context
}

// New opens the window. It must be called on the main OS thread.
func New(ctx context.Context, cfg *Config) (*Screen, error) {
	g, err := gfx.NewContext(ctx, &gfx.WindowConfig{
		Width: cfg.Width, Height: cfg.Height, Title: cfg.Title,
		VSync: true,
		OnKey: cfg.OnKey,
	}, []*gfx.ShaderConfig{
		{
			Typ:            gfx.VertexShaderType,
			Source:         vertexShaderSource,
			AttributeNames: []string{"vertPos", "texPos"},
		},
		{
			Typ:          gfx.FragmentShaderType,
			Source:       fragmentShaderSource,
			UniformNames: []string{"tex"},
		},
	})
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Columns, cfg.Rows))
	tex, err := g.AddTextureObject(&gfx.TextureConfig{
		Image:       img,
		UniformName: "tex",
		Mode:        cfg.TextureMode,
	})
	if err != nil {
		g.Terminate()
		return nil, err
	}

	s := &Screen{image: img, texture: tex, Gfx: g}
	if err := s.createQuad(); err != nil {
		g.Terminate()
		return nil, err
	}
	return s, nil
}

// SetImage sets the frame shown on the next refresh.
func (s *Screen) SetImage(img *image.RGBA) {
	s.image = img
}

// Run runs q once per refresh, shows whatever present returns and blocks
// until the window closes or the context is done. It terminates glfw on
// return.
func (s *Screen) Run(q *frame.Queue, present func() *image.RGBA) {
	defer s.Gfx.Terminate()

	s.Gfx.EventLoop(func(*gfx.Context) {
		q.Run(time.Now())
		if img := present(); img != nil {
			s.SetImage(img)
		}
	})
}

func (s *Screen) createQuad() error {
	verts := make([]float32, 5*len(square))
	for i := range square {
		// xyz coord
		verts[5*i] = square[i][0]
		verts[5*i+1] = square[i][1]
		verts[5*i+2] = 0

		// uv coord
		verts[5*i+3] = uvCord[i][0]
		verts[5*i+4] = uvCord[i][1]
	}

	return s.Gfx.AddVertexArrayObject(&gfx.VAOConfig{
		Vertices:   verts,
		Size:       3,
		GLDrawType: gl.TRIANGLES,
		VertAttr:   "vertPos",
		TexAttr:    "texPos",
		Stride:     5,
		OnDraw:     s.drawTexture,
	})
}

func (s *Screen) drawTexture(*gfx.Context) bool {
	if err := s.texture.Update(s.image); err != nil {
		if !s.failed {
			glog.Errorf("screen: %v", err)
			s.failed = true
		}
		return false
	}
	return true
}

// Package canvas is a software scope.Surface. Grid and traces are stroked
// into separate vgimg layers and screen-blended over the background when
// the frame is presented.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/phrozen/blend"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/peragwin/vuzicscope/scope"
)

// Caption is one line of text drawn over the composed frame.
type Caption struct {
	Text  string
	Color color.RGBA
}

const (
	captionX       = 6
	captionTop     = 14
	captionLeading = 14
)

// Canvas implements scope.Surface.
type Canvas struct {
	width, height int
	background    color.RGBA

	layers   [2]*vgimg.Canvas
	out      *image.RGBA
	captions []Caption
}

// New returns a transparent canvas of w x h pixels.
func New(w, h int, background color.RGBA) *Canvas {
	c := &Canvas{
		width:      w,
		height:     h,
		background: background,
		out:        image.NewRGBA(image.Rect(0, 0, w, h)),
	}
	for i := range c.layers {
		// 72 dpi makes one vg.Point one pixel.
		c.layers[i] = vgimg.NewWith(
			vgimg.UseWH(vg.Length(w), vg.Length(h)),
			vgimg.UseDPI(72),
			vgimg.UseBackgroundColor(color.Transparent),
		)
	}
	return c
}

// Size implements scope.Surface.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// ClearRect implements scope.Surface. Both layers are cleared.
func (c *Canvas) ClearRect(r image.Rectangle) {
	for _, l := range c.layers {
		draw.Draw(l.Image(), r, image.Transparent, image.Point{}, draw.Src)
	}
}

// Line implements scope.Surface.
func (c *Canvas) Line(a, b scope.Point, s scope.Style) {
	var p vg.Path
	p.Move(c.pt(a))
	p.Line(c.pt(b))
	c.stroke(p, s)
}

// Polyline implements scope.Surface.
func (c *Canvas) Polyline(pts []scope.Point, s scope.Style) {
	if len(pts) < 2 {
		return
	}
	var p vg.Path
	p.Move(c.pt(pts[0]))
	for _, q := range pts[1:] {
		p.Line(c.pt(q))
	}
	c.stroke(p, s)
}

func (c *Canvas) stroke(p vg.Path, s scope.Style) {
	l := c.layer(s.Layer)
	l.SetLineWidth(vg.Length(s.Width))
	l.SetColor(s.Color)
	l.Stroke(p)
}

func (c *Canvas) layer(l scope.Layer) *vgimg.Canvas {
	if l == scope.LayerTrace {
		return c.layers[1]
	}
	return c.layers[0]
}

// vg has its origin bottom-left.
func (c *Canvas) pt(p scope.Point) vg.Point {
	return vg.Point{X: vg.Length(p.X), Y: vg.Length(float64(c.height) - p.Y)}
}

// SetCaptions replaces the overlay text drawn by the next Image call.
func (c *Canvas) SetCaptions(captions []Caption) {
	c.captions = append(c.captions[:0], captions...)
}

// Image composes the frame: background, grid, traces and captions. The
// returned image is reused by the next call.
func (c *Canvas) Image() *image.RGBA {
	b := c.out.Bounds()
	draw.Draw(c.out, b, image.NewUniform(c.background), image.Point{}, draw.Src)
	draw.Draw(c.out, b, c.layers[0].Image(), image.Point{}, draw.Over)
	blend.BlendImage(c.out, c.layers[1].Image(), blend.Screen)

	d := font.Drawer{Dst: c.out, Face: basicfont.Face7x13}
	for i, cp := range c.captions {
		d.Src = image.NewUniform(cp.Color)
		d.Dot = fixed.P(captionX, captionTop+i*captionLeading)
		d.DrawString(cp.Text)
	}
	return c.out
}

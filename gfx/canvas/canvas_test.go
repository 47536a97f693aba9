package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/peragwin/vuzicscope/scope"
)

var yellow = scope.Style{Color: color.RGBA{255, 255, 0, 255}, Width: 2, Layer: scope.LayerTrace}

func TestLineOrientation(t *testing.T) {
	c := New(100, 100, color.RGBA{0, 0, 0, 255})
	c.Line(scope.Point{X: 0, Y: 10}, scope.Point{X: 100, Y: 10}, yellow)
	img := c.Image()

	if px := img.RGBAAt(50, 10); px.R < 128 || px.G < 128 {
		t.Errorf("pixel on the line = %v", px)
	}
	if px := img.RGBAAt(50, 90); px.R != 0 || px.G != 0 {
		t.Errorf("mirrored pixel lit = %v", px)
	}
}

func TestClearRect(t *testing.T) {
	c := New(100, 100, color.RGBA{0, 0, 0, 255})
	c.Line(scope.Point{X: 0, Y: 10}, scope.Point{X: 100, Y: 10}, yellow)
	c.ClearRect(image.Rect(0, 0, 100, 50))
	if px := c.Image().RGBAAt(50, 10); px.R != 0 || px.G != 0 {
		t.Errorf("pixel survived clear = %v", px)
	}
}

func TestPolylineTooShort(t *testing.T) {
	c := New(20, 20, color.RGBA{0, 0, 0, 255})
	c.Polyline([]scope.Point{{X: 10, Y: 10}}, yellow)
	img := c.Image()
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if px := img.RGBAAt(x, y); px != (color.RGBA{0, 0, 0, 255}) {
				t.Fatalf("pixel (%d,%d) = %v", x, y, px)
			}
		}
	}
}

func TestImageIsBackground(t *testing.T) {
	bg := color.RGBA{5, 10, 10, 255}
	c := New(10, 10, bg)
	if px := c.Image().RGBAAt(3, 3); px != bg {
		t.Errorf("background = %v", px)
	}
}

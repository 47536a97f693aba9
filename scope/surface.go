package scope

import (
	"image"
	"image/color"
)

// Point is a position in surface pixels, origin top-left, y down.
type Point struct {
	X, Y float64
}

// Layer lets a surface keep the grid and the traces apart for compositing.
type Layer int

// Layers
const (
	LayerGrid Layer = iota
	LayerTrace
)

// Style is the stroke used for a draw call.
type Style struct {
	Color color.RGBA
	Width float64
	Layer Layer
}

// Surface is a 2D raster target. The caller presents it after a frame.
type Surface interface {
	Size() (width, height int)
	ClearRect(r image.Rectangle)
	Line(a, b Point, s Style)
	// Polyline strokes one connected path. Paths with fewer than two points
	// draw nothing. Implementations must not retain pts.
	Polyline(pts []Point, s Style)
}

// SampleSource hands out the latest sample window of a channel.
//
// The returned slice is borrowed: it is only valid until the next call for
// the same channel and must not be modified. Samples fails, typically with
// ErrNotReady, when the channel has no data; it must never block.
type SampleSource interface {
	Samples(ch Channel) ([]float64, error)
	SampleRate() float64
}

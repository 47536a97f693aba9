// Package palette picks the colours of the oscilloscope screen.
package palette

import (
	"image/color"

	"github.com/hsluv/hsluv-go"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/peragwin/vuzicscope/scope"
)

// Palette is the full set of screen colours.
type Palette struct {
	Background color.RGBA
	Text       color.RGBA
	Traces     [scope.NumChannels]scope.Style
	Grid       scope.GridStyle
}

const (
	ch1Hex   = "#ffff00"
	ch2Hex   = "#00ffcc"
	gridHex  = "#00ffcc"
	bgHex    = "#050a0a"
	textHex  = "#c8fff2"
	subAxisL = 45 // HSLuv lightness of the band centre lines
)

// Default is a dark screen with a cyan graticule, CH1 yellow and CH2 cyan.
func Default() Palette {
	grid := mustParseHex(gridHex)
	return Palette{
		Background: Opaque(mustParseHex(bgHex)),
		Text:       Opaque(mustParseHex(textHex)),
		Traces: [scope.NumChannels]scope.Style{
			{Color: Opaque(mustParseHex(ch1Hex)), Width: 2, Layer: scope.LayerTrace},
			{Color: Opaque(mustParseHex(ch2Hex)), Width: 2, Layer: scope.LayerTrace},
		},
		Grid: scope.GridStyle{
			Line:    scope.Style{Color: WithAlpha(grid, 0.1), Width: 1, Layer: scope.LayerGrid},
			Axis:    scope.Style{Color: WithAlpha(grid, 0.4), Width: 2, Layer: scope.LayerGrid},
			Divider: scope.Style{Color: WithAlpha(grid, 0.6), Width: 2, Layer: scope.LayerGrid},
			SubAxis: scope.Style{Color: WithAlpha(Dim(gridHex, subAxisL), 0.3), Width: 1, Layer: scope.LayerGrid},
		},
	}
}

// Opaque converts c to a fully opaque color.RGBA.
func Opaque(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// WithAlpha converts c to a premultiplied color.RGBA with opacity a.
func WithAlpha(c colorful.Color, a float64) color.RGBA {
	c = c.Clamped()
	return color.RGBA{
		R: uint8(c.R*a*255 + 0.5),
		G: uint8(c.G*a*255 + 0.5),
		B: uint8(c.B*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Dim keeps the HSLuv hue and saturation of hex and sets its lightness (0-100).
func Dim(hex string, lightness float64) colorful.Color {
	h, s, _ := hsluv.HsluvFromHex(hex)
	return mustParseHex(hsluv.HsluvToHex(h, s, lightness))
}

// Mix blends a toward b in HCL space, t in [0, 1].
func Mix(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	return Opaque(ca.BlendHcl(cb, t))
}

func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("mustParseHex: " + err.Error())
	}
	return c
}

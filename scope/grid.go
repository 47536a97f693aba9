package scope

import "image/color"

// GridStyle holds the strokes of the graticule.
type GridStyle struct {
	Line    Style // division lines
	Axis    Style // centre axes
	Divider Style // split layout band boundary
	SubAxis Style // split layout band centres
}

// DefaultGridStyle is a cyan graticule with emphasised centre axes.
func DefaultGridStyle() GridStyle {
	return GridStyle{
		Line:    Style{Color: color.RGBA{0, 26, 20, 26}, Width: 1, Layer: LayerGrid},
		Axis:    Style{Color: color.RGBA{0, 102, 82, 102}, Width: 2, Layer: LayerGrid},
		Divider: Style{Color: color.RGBA{0, 153, 122, 153}, Width: 2, Layer: LayerGrid},
		SubAxis: Style{Color: color.RGBA{0, 51, 41, 51}, Width: 1, Layer: LayerGrid},
	}
}

// DrawGrid strokes the 10x8 graticule onto s. In split layout the horizontal
// centre axis becomes the band divider and each band gets its own centre line.
func DrawGrid(s Surface, layout LayoutMode, gs GridStyle) {
	w, h := s.Size()
	fw, fh := float64(w), float64(h)

	dx := fw / HorizontalDivisions
	for i := 1; i < HorizontalDivisions; i++ {
		x := float64(i) * dx
		s.Line(Point{x, 0}, Point{x, fh}, gs.Line)
	}
	dy := fh / VerticalDivisions
	for j := 1; j < VerticalDivisions; j++ {
		y := float64(j) * dy
		s.Line(Point{0, y}, Point{fw, y}, gs.Line)
	}

	s.Line(Point{fw / 2, 0}, Point{fw / 2, fh}, gs.Axis)
	if layout != Split {
		s.Line(Point{0, fh / 2}, Point{fw, fh / 2}, gs.Axis)
		return
	}
	s.Line(Point{0, fh / 2}, Point{fw, fh / 2}, gs.Divider)
	for _, ch := range []Channel{CH1, CH2} {
		y := BandFor(Split, ch, h).ZeroY
		s.Line(Point{0, y}, Point{fw, y}, gs.SubAxis)
	}
}

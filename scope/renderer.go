package scope

import (
	"image"
	"image/color"
	"time"

	"github.com/golang/glog"
)

// RendererConfig wires a Renderer to its collaborators.
type RendererConfig struct {
	Source  SampleSource
	Surface Surface

	Grid   GridStyle
	Traces [NumChannels]Style

	// PeakInterval throttles OnPeak; zero means DefaultPeakInterval.
	PeakInterval time.Duration
	OnPeak       PublishFunc
}

// DefaultTraceStyles draws CH1 yellow and CH2 cyan.
func DefaultTraceStyles() [NumChannels]Style {
	return [NumChannels]Style{
		{Color: color.RGBA{255, 255, 0, 255}, Width: 2, Layer: LayerTrace},
		{Color: color.RGBA{0, 255, 204, 255}, Width: 2, Layer: LayerTrace},
	}
}

// Renderer draws one oscilloscope frame at a time.
type Renderer struct {
	source  SampleSource
	surface Surface
	grid    GridStyle
	traces  [NumChannels]Style
	peaks   *PeakMeter

	points []Point
}

// NewRenderer creates a renderer. Zero styles are replaced with the defaults.
func NewRenderer(cfg *RendererConfig) *Renderer {
	r := &Renderer{
		source:  cfg.Source,
		surface: cfg.Surface,
		grid:    cfg.Grid,
		traces:  cfg.Traces,
		peaks:   NewPeakMeter(cfg.PeakInterval, cfg.OnPeak),
	}
	if r.grid == (GridStyle{}) {
		r.grid = DefaultGridStyle()
	}
	defaults := DefaultTraceStyles()
	for i := range r.traces {
		if r.traces[i] == (Style{}) {
			r.traces[i] = defaults[i]
		}
	}
	return r
}

// Peaks exposes the renderer's peak meter.
func (r *Renderer) Peaks() *PeakMeter { return r.peaks }

// trace describes how one channel is drawn.
type trace struct {
	ch    Channel
	view  ChannelViewParams
	band  Band
	style Style
}

// DrawIdle clears the surface and draws the grid without any trace.
func (r *Renderer) DrawIdle(p *Params) {
	w, h := r.surface.Size()
	r.surface.ClearRect(image.Rect(0, 0, w, h))
	DrawGrid(r.surface, p.Layout, r.grid)
}

// Render draws a full frame: grid, then a trace and a peak measurement for
// every visible channel that has data. Source failures only drop the channel
// for this frame.
func (r *Renderer) Render(p *Params, now time.Time) {
	r.DrawIdle(p)

	var (
		bufs    [NumChannels][]float64
		hasData [NumChannels]bool
	)
	for i := range bufs {
		ch := Channel(i)
		if !p.Visible[i] {
			continue
		}
		buf, err := r.source.Samples(ch)
		if err != nil {
			if glog.V(3) {
				glog.Infof("%v: no samples: %v", ch, err)
			}
			continue
		}
		if len(buf) == 0 {
			continue
		}
		bufs[i], hasData[i] = buf, true
	}

	trigger := 0
	if tb := triggerBuffer(p.TriggerSource, &bufs, &hasData); tb != nil {
		if i, ok := Locate(tb, p.Trigger); ok {
			trigger = i
		} else if glog.V(3) {
			glog.Infof("no %v edge at %.2f", p.Trigger.Slope, p.Trigger.Level)
		}
	}

	rate := r.source.SampleRate()
	w, h := r.surface.Size()
	for i := range bufs {
		if !hasData[i] {
			continue
		}
		ch := Channel(i)
		t := trace{
			ch:    ch,
			view:  p.Channels[i],
			band:  BandFor(p.Layout, ch, h),
			style: r.traces[i],
		}
		if rate > 0 && t.view.Validate() == nil {
			r.drawTrace(bufs[i], t, trigger, rate, w)
		}
		r.peaks.Update(ch, bufs[i], now)
	}
}

// triggerBuffer prefers the designated source and falls back to the first
// channel with data.
func triggerBuffer(src Channel, bufs *[NumChannels][]float64, hasData *[NumChannels]bool) []float64 {
	if src.Valid() && hasData[src] {
		return bufs[src]
	}
	for i := range bufs {
		if hasData[i] {
			return bufs[i]
		}
	}
	return nil
}

// drawTrace connects one point per column. Columns before the buffer are
// skipped and the path ends at the first column past the end of the buffer.
func (r *Renderer) drawTrace(buf []float64, t trace, trigger int, rate float64, width int) {
	tb := NewTimebase(t.view.TimePerDiv, rate, width)
	start := tb.StartIndex(trigger, t.view.HorizontalOffsetDiv)

	pts := r.points[:0]
	for x := 0; x < width; x++ {
		idx := tb.SampleIndex(start, x)
		if idx < 0 {
			continue
		}
		if idx >= len(buf) {
			break
		}
		pts = append(pts, Point{X: float64(x), Y: t.band.Y(buf[idx], t.view)})
	}
	r.points = pts
	if len(pts) > 1 {
		r.surface.Polyline(pts, t.style)
	}
}

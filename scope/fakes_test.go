package scope

import (
	"image"
	"time"
)

type lineCall struct {
	a, b  Point
	style Style
}

type recordingSurface struct {
	w, h      int
	clears    []image.Rectangle
	lines     []lineCall
	polylines [][]Point
	styles    []Style
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) ClearRect(r image.Rectangle) {
	s.clears = append(s.clears, r)
	s.lines, s.polylines, s.styles = nil, nil, nil
}

func (s *recordingSurface) Line(a, b Point, st Style) {
	s.lines = append(s.lines, lineCall{a, b, st})
}

func (s *recordingSurface) Polyline(pts []Point, st Style) {
	s.polylines = append(s.polylines, append([]Point(nil), pts...))
	s.styles = append(s.styles, st)
}

type scriptedSource struct {
	rate  float64
	bufs  [NumChannels][]float64
	errs  [NumChannels]error
	calls [NumChannels]int
}

func (s *scriptedSource) Samples(ch Channel) ([]float64, error) {
	s.calls[ch]++
	if s.errs[ch] != nil {
		return nil, s.errs[ch]
	}
	if s.bufs[ch] == nil {
		return nil, ErrNotReady
	}
	return s.bufs[ch], nil
}

func (s *scriptedSource) SampleRate() float64 { return s.rate }

// manualScheduler runs frames only when fired. With leaky set, CancelFrame
// is ignored so stale callbacks still run.
type manualScheduler struct {
	next    FrameID
	pending map[FrameID]FrameFunc
	order   []FrameID
	leaky   bool
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{pending: map[FrameID]FrameFunc{}}
}

func (s *manualScheduler) RequestFrame(fn FrameFunc) FrameID {
	s.next++
	s.pending[s.next] = fn
	s.order = append(s.order, s.next)
	return s.next
}

func (s *manualScheduler) CancelFrame(id FrameID) {
	if !s.leaky {
		delete(s.pending, id)
	}
}

func (s *manualScheduler) Len() int { return len(s.pending) }

// Fire runs every frame requested before the call.
func (s *manualScheduler) Fire(now time.Time) int {
	order := s.order
	s.order = nil
	n := 0
	for _, id := range order {
		fn, ok := s.pending[id]
		if !ok {
			continue
		}
		delete(s.pending, id)
		fn(now)
		n++
	}
	return n
}

type staticParams struct{ p Params }

func (s *staticParams) Params() Params { return s.p }

type countingDrawer struct {
	renders, idles int
	onRender       func()
}

func (d *countingDrawer) Render(*Params, time.Time) {
	d.renders++
	if d.onRender != nil {
		d.onRender()
	}
}

func (d *countingDrawer) DrawIdle(*Params) { d.idles++ }

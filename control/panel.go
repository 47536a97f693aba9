package control

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/peragwin/vuzicscope/audio/gen"
	"github.com/peragwin/vuzicscope/scope"
)

// Control names a knob on the front panel.
type Control int

// Controls
const (
	ControlVoltsPerDiv Control = iota
	ControlVerticalOffset
	ControlTimePerDiv
	ControlHorizontalOffset
	ControlTriggerLevel
	ControlFrequency
	ControlAmplitude
)

var controlNames = [...]string{
	"volts/div", "vertical offset", "time/div", "horizontal offset",
	"trigger level", "frequency", "amplitude",
}

func (c Control) String() string {
	if c < 0 || int(c) >= len(controlNames) {
		return fmt.Sprintf("Control(%d)", int(c))
	}
	return controlNames[c]
}

// Panel maps front panel gestures onto store edits. Per-channel controls act
// on the selected channel.
type Panel struct {
	store    *Store
	selected scope.Channel
	osc      [scope.NumChannels]*gen.Oscillator
}

// NewPanel returns a panel with CH1 selected.
func NewPanel(s *Store) *Panel {
	return &Panel{store: s}
}

// AttachOscillator lets the frequency and amplitude knobs drive the
// generator feeding ch.
func (p *Panel) AttachOscillator(ch scope.Channel, o *gen.Oscillator) {
	if ch.Valid() {
		p.osc[ch] = o
	}
}

// Selected is the channel the per-channel controls act on.
func (p *Panel) Selected() scope.Channel { return p.selected }

// SelectNext cycles the selected channel.
func (p *Panel) SelectNext() scope.Channel {
	p.selected = (p.selected + 1) % scope.NumChannels
	glog.V(2).Infof("panel: selected %v", p.selected)
	return p.selected
}

// ToggleRun flips acquisition on or off.
func (p *Panel) ToggleRun() {
	p.store.SetRunning(!p.store.Params().Running)
}

// ToggleVisible shows or hides the selected channel.
func (p *Panel) ToggleVisible() error {
	ch := p.selected
	return p.store.Update(func(q *scope.Params) { q.Visible[ch] = !q.Visible[ch] })
}

// ToggleSlope switches between rising and falling edge triggering.
func (p *Panel) ToggleSlope() error {
	return p.store.Update(func(q *scope.Params) {
		if q.Trigger.Slope == scope.Rising {
			q.Trigger.Slope = scope.Falling
		} else {
			q.Trigger.Slope = scope.Rising
		}
	})
}

// NextTriggerSource cycles the trigger source channel.
func (p *Panel) NextTriggerSource() error {
	return p.store.Update(func(q *scope.Params) {
		q.TriggerSource = (q.TriggerSource + 1) % scope.NumChannels
	})
}

// ToggleLayout switches between overlay and split screen.
func (p *Panel) ToggleLayout() error {
	return p.store.Update(func(q *scope.Params) {
		if q.Layout == scope.Overlay {
			q.Layout = scope.Split
		} else {
			q.Layout = scope.Overlay
		}
	})
}

// Reset restores the defaults, keeping the run state.
func (p *Panel) Reset() { p.store.Reset() }

// Turn moves control c by clicks increments.
func (p *Panel) Turn(c Control, clicks int) error {
	ch := p.selected
	switch c {
	case ControlFrequency, ControlAmplitude:
		o := p.osc[ch]
		if o == nil {
			return fmt.Errorf("%v: no generator on %v", c, ch)
		}
		f, a, _ := o.Settings()
		if c == ControlFrequency {
			o.SetFrequency(OscillatorFrequencyKnob.Turn(f, clicks))
		} else {
			o.SetAmplitude(OscillatorAmplitudeKnob.Turn(a, clicks))
		}
		return nil
	}

	var err error
	if uerr := p.store.Update(func(q *scope.Params) {
		cp := &q.Channels[ch]
		switch c {
		case ControlVoltsPerDiv:
			cp.VoltsPerDiv = VoltsPerDivKnob.Turn(cp.VoltsPerDiv, clicks)
		case ControlVerticalOffset:
			cp.VerticalOffsetDiv = VerticalOffsetKnob.Turn(cp.VerticalOffsetDiv, clicks)
		case ControlTimePerDiv:
			cp.TimePerDiv = TimePerDivKnob.Turn(cp.TimePerDiv, clicks)
		case ControlHorizontalOffset:
			cp.HorizontalOffsetDiv = HorizontalOffsetKnob.Turn(cp.HorizontalOffsetDiv, clicks)
		case ControlTriggerLevel:
			q.Trigger.Level = TriggerLevelKnob.Turn(q.Trigger.Level, clicks)
		default:
			err = fmt.Errorf("%w: %v", ErrBadValue, c)
		}
	}); uerr != nil {
		return uerr
	}
	return err
}

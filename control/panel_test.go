package control

import (
	"errors"
	"math"
	"testing"

	"github.com/peragwin/vuzicscope/audio/gen"
	"github.com/peragwin/vuzicscope/scope"
)

func TestPanelToggles(t *testing.T) {
	s := newTestStore(t)
	p := NewPanel(s)

	p.ToggleRun()
	if !s.Params().Running {
		t.Error("ToggleRun did not start")
	}
	if err := p.ToggleSlope(); err != nil {
		t.Fatal(err)
	}
	if err := p.ToggleLayout(); err != nil {
		t.Fatal(err)
	}
	if err := p.NextTriggerSource(); err != nil {
		t.Fatal(err)
	}
	if p.SelectNext() != scope.CH2 {
		t.Fatal("SelectNext did not pick CH2")
	}
	if err := p.ToggleVisible(); err != nil {
		t.Fatal(err)
	}

	got := s.Params()
	if got.Trigger.Slope != scope.Falling || got.Layout != scope.Split ||
		got.TriggerSource != scope.CH2 || !got.Visible[scope.CH2] {
		t.Errorf("params after toggles: %+v", got)
	}

	p.Reset()
	if got := s.Params(); got.Layout != scope.Overlay || !got.Running {
		t.Errorf("after reset: %+v", got)
	}
	if p.SelectNext() != scope.CH1 {
		t.Error("SelectNext did not wrap")
	}
}

func TestPanelTurn(t *testing.T) {
	s := newTestStore(t)
	p := NewPanel(s)

	if err := p.Turn(ControlVoltsPerDiv, 2); err != nil {
		t.Fatal(err)
	}
	if err := p.Turn(ControlTimePerDiv, 5); err != nil {
		t.Fatal(err)
	}
	if err := p.Turn(ControlTriggerLevel, -10); err != nil {
		t.Fatal(err)
	}
	got := s.Params()
	if v := got.Channels[scope.CH1].VoltsPerDiv; math.Abs(v-1.2) > 1e-9 {
		t.Errorf("volts/div = %v", v)
	}
	if v := got.Channels[scope.CH1].TimePerDiv; v != 15 {
		t.Errorf("time/div = %v", v)
	}
	if v := got.Trigger.Level; math.Abs(v+0.1) > 1e-9 {
		t.Errorf("trigger level = %v", v)
	}

	// clamped at the bottom of the range, never zero
	if err := p.Turn(ControlVoltsPerDiv, -100); err != nil {
		t.Fatal(err)
	}
	if v := s.Params().Channels[scope.CH1].VoltsPerDiv; v != VoltsPerDivKnob.Min {
		t.Errorf("volts/div = %v", v)
	}

	if err := p.Turn(Control(42), 1); !errors.Is(err, ErrBadValue) {
		t.Errorf("unknown control: %v", err)
	}
}

func TestPanelOscillator(t *testing.T) {
	p := NewPanel(newTestStore(t))
	if err := p.Turn(ControlFrequency, 1); err == nil {
		t.Error("turned a generator that isn't attached")
	}

	o := gen.NewOscillator(48000, gen.Sine, 440, 1)
	p.AttachOscillator(scope.CH1, o)
	if err := p.Turn(ControlFrequency, 10); err != nil {
		t.Fatal(err)
	}
	if err := p.Turn(ControlAmplitude, -20); err != nil {
		t.Fatal(err)
	}
	f, a, _ := o.Settings()
	if f != 450 {
		t.Errorf("frequency = %v", f)
	}
	if a != 0 {
		t.Errorf("amplitude = %v", a)
	}
}

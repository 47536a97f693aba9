package control

import (
	"testing"

	"github.com/peragwin/vuzicscope/scope"
)

func TestReadout(t *testing.T) {
	s := newTestStore(t)
	s.Update(func(p *scope.Params) {
		p.Visible[scope.CH2] = true
		p.Channels[scope.CH2].VoltsPerDiv = 0.5
		p.Channels[scope.CH1].TimePerDiv = 2.5
		p.Trigger.Level = 0.1
	})
	s.SetPeak(scope.CH1, scope.PeakMeasurement{Vpp: 0.8234})

	items := s.Readout()
	want := []string{
		"CH1 1.00V  Vpp: 0.82V",
		"CH2 0.50V",
		"M 2.5ms",
		"T CH1 rising 0.10",
		"STOP",
	}
	if len(items) != len(want) {
		t.Fatalf("items = %+v", items)
	}
	for i := range want {
		if items[i].Text != want[i] {
			t.Errorf("item %d = %q, want %q", i, items[i].Text, want[i])
		}
	}
	if !items[1].PerChannel || items[1].Channel != scope.CH2 || items[2].PerChannel {
		t.Errorf("channel tags wrong: %+v", items)
	}
}

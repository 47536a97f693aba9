package control

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/peragwin/vuzicscope/scope"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(scope.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStoreRejectsInvalidEdits(t *testing.T) {
	s := newTestStore(t)

	for _, edit := range []func(*scope.Params){
		func(p *scope.Params) { p.Channels[scope.CH1].VoltsPerDiv = 0 },
		func(p *scope.Params) { p.Channels[scope.CH2].TimePerDiv = -1 },
		func(p *scope.Params) { p.TriggerSource = 7 },
	} {
		err := s.Update(func(p *scope.Params) {
			p.Layout = scope.Split
			edit(p)
		})
		if !errors.Is(err, scope.ErrInvalidParams) {
			t.Errorf("err = %v, want ErrInvalidParams", err)
		}
	}
	if s.Params() != scope.DefaultParams() {
		t.Errorf("rejected edit leaked: %+v", s.Params())
	}

	if _, err := NewStore(scope.Params{}); err == nil {
		t.Error("zero params accepted")
	}
}

func TestStoreRunHooks(t *testing.T) {
	s := newTestStore(t)
	var calls []bool
	s.OnRunChange(func(running bool) { calls = append(calls, running) })

	s.SetRunning(true)
	s.SetRunning(true)
	if err := s.Update(func(p *scope.Params) { p.Trigger.Level = 0.5 }); err != nil {
		t.Fatal(err)
	}
	s.SetRunning(false)

	if len(calls) != 2 || !calls[0] || calls[1] {
		t.Errorf("hook calls = %v", calls)
	}
}

func TestStoreResetKeepsRunState(t *testing.T) {
	s := newTestStore(t)
	s.Update(func(p *scope.Params) {
		p.Running = true
		p.Channels[scope.CH1].VoltsPerDiv = 0.2
		p.Layout = scope.Split
	})
	s.Reset()

	want := scope.DefaultParams()
	want.Running = true
	if got := s.Params(); got != want {
		t.Errorf("after reset: %+v", got)
	}
}

func TestStorePeaks(t *testing.T) {
	s := newTestStore(t)
	if _, ok := s.Peak(scope.CH1); ok {
		t.Error("peak before publish")
	}
	pm := scope.PeakMeasurement{Min: -0.4, Max: 0.4, Vpp: 0.8, UpdatedAt: time.Unix(5, 0)}
	s.SetPeak(scope.CH1, pm)
	s.SetPeak(scope.Channel(9), pm)
	if got, ok := s.Peak(scope.CH1); !ok || got != pm {
		t.Errorf("peak = %+v %v", got, ok)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scope.json")
	s := newTestStore(t)
	s.Update(func(p *scope.Params) {
		p.Running = true
		p.Channels[scope.CH2].TimePerDiv = 25
		p.Visible[scope.CH2] = true
		p.Trigger = scope.TriggerSpec{Level: -0.3, Slope: scope.Falling}
		p.TriggerSource = scope.CH2
		p.Layout = scope.Split
	})
	if err := s.SaveConfig(path); err != nil {
		t.Fatal(err)
	}

	loaded := newTestStore(t)
	if err := loaded.LoadConfig(path); err != nil {
		t.Fatal(err)
	}
	want := s.Params()
	want.Running = false
	if got := loaded.Params(); got != want {
		t.Errorf("loaded %+v\nwant   %+v", got, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t)
	if err := s.LoadConfig(filepath.Join(dir, "missing.json")); err != nil {
		t.Errorf("missing file: %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"channels":[{"voltsPerDiv":0,"timePerDiv":10},{"voltsPerDiv":1,"timePerDiv":10}]}`), 0644)
	if err := s.LoadConfig(bad); !errors.Is(err, scope.ErrInvalidParams) {
		t.Errorf("invalid settings: %v", err)
	}

	garbage := filepath.Join(dir, "garbage.json")
	os.WriteFile(garbage, []byte(`{"layout":"sideways"}`), 0644)
	if err := s.LoadConfig(garbage); err == nil {
		t.Error("bad layout accepted")
	}
	if s.Params() != scope.DefaultParams() {
		t.Errorf("failed loads changed the store: %+v", s.Params())
	}
}

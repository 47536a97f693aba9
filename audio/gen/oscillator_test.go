package gen

import (
	"context"
	"math"
	"testing"
	"time"
)

func TestParseWaveform(t *testing.T) {
	for _, w := range []Waveform{Sine, Square, Sawtooth, Triangle} {
		got, err := ParseWaveform(w.String())
		if err != nil || got != w {
			t.Errorf("%v: got %v %v", w, got, err)
		}
	}
	if w, _ := ParseWaveform("Saw"); w != Sawtooth {
		t.Errorf("saw = %v", w)
	}
	if _, err := ParseWaveform("noise"); err == nil {
		t.Error("expected error")
	}
}

func TestOscillatorShapes(t *testing.T) {
	// 4 samples per period: phases 0, .25, .5, .75
	cases := []struct {
		w   Waveform
		exp []float64
	}{
		{Sine, []float64{0, 0.5, 0, -0.5}},
		{Square, []float64{0.5, 0.5, -0.5, -0.5}},
		{Sawtooth, []float64{-0.5, -0.25, 0, 0.25}},
		{Triangle, []float64{-0.5, 0, 0.5, 0}},
	}
	for _, c := range cases {
		t.Run(c.w.String(), func(t *testing.T) {
			o := NewOscillator(400, c.w, 100, 0.5)
			buf := make([]float64, 8)
			o.Fill(buf)
			for i, v := range buf {
				if math.Abs(v-c.exp[i%4]) > 1e-5 {
					t.Fatalf("sample %d = %v, want %v (%v)", i, v, c.exp[i%4], buf)
				}
			}
		})
	}
}

func TestOscillatorSetters(t *testing.T) {
	o := NewOscillator(400, Square, 100, 1)
	o.SetAmplitude(0.25)
	if v := o.Next(); v != 0.25 {
		t.Errorf("amplitude: %v", v)
	}
	o.SetWaveform(Sawtooth)
	o.SetFrequency(200)
	// saw at phase .25
	if v := o.Next(); math.Abs(float64(v)+0.125) > 1e-6 {
		t.Errorf("saw: %v", v)
	}
	// 200 Hz at 400 Hz advances half a period
	if v := o.Next(); math.Abs(float64(v)-0.125) > 1e-6 {
		t.Errorf("saw after frequency change: %v", v)
	}
	if f, a, w := o.Settings(); f != 200 || a != 0.25 || w != Sawtooth {
		t.Errorf("Settings() = %v, %v, %v", f, a, w)
	}
}

func TestNewSource(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	osc := NewOscillator(48000, Sine, 1000, 1)
	out, errc := NewSource(ctx, osc, &Config{BlockSize: 480, SampleRate: 48000})
	n := 0
	for block := range out {
		if len(block) != 480 {
			t.Fatalf("block size %d", len(block))
		}
		n++
	}
	select {
	case err := <-errc:
		t.Fatal(err)
	default:
	}
	// one block every 10ms
	if n < 5 || n > 30 {
		t.Errorf("got %d blocks in 200ms", n)
	}
}

func TestNewSourceBadConfig(t *testing.T) {
	_, errc := NewSource(context.Background(), NewOscillator(1, Sine, 1, 1), &Config{})
	if err := <-errc; err == nil {
		t.Fatal("expected error")
	}
}

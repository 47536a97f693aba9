// Package gen synthesizes test signals for the oscilloscope inputs.
package gen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/chewxy/math32"
)

// Waveform is the shape produced by an Oscillator.
type Waveform int

// Waveforms
const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

var waveformNames = [...]string{"sine", "square", "sawtooth", "triangle"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform parses a waveform name. "saw" is accepted for sawtooth.
func ParseWaveform(s string) (Waveform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "saw" {
		return Sawtooth, nil
	}
	for i, n := range waveformNames {
		if n == s {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q", s)
}

// Oscillator is a phase accumulator. Its settings may be changed from any
// goroutine while another one pulls samples.
type Oscillator struct {
	mu         sync.Mutex
	sampleRate float32
	frequency  float32
	amplitude  float32
	waveform   Waveform
	phase      float32 // [0, 1)
}

// NewOscillator creates an oscillator at phase 0.
func NewOscillator(sampleRate float64, w Waveform, frequency, amplitude float64) *Oscillator {
	return &Oscillator{
		sampleRate: float32(sampleRate),
		frequency:  float32(frequency),
		amplitude:  float32(amplitude),
		waveform:   w,
	}
}

// SetFrequency changes the frequency in Hz without a phase jump.
func (o *Oscillator) SetFrequency(hz float64) {
	o.mu.Lock()
	o.frequency = float32(hz)
	o.mu.Unlock()
}

// SetAmplitude changes the peak amplitude.
func (o *Oscillator) SetAmplitude(a float64) {
	o.mu.Lock()
	o.amplitude = float32(a)
	o.mu.Unlock()
}

// SetWaveform changes the shape.
func (o *Oscillator) SetWaveform(w Waveform) {
	o.mu.Lock()
	o.waveform = w
	o.mu.Unlock()
}

// Settings returns the current frequency, amplitude and waveform.
func (o *Oscillator) Settings() (frequency, amplitude float64, w Waveform) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return float64(o.frequency), float64(o.amplitude), o.waveform
}

// Next returns one sample and advances the phase.
func (o *Oscillator) Next() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.next()
}

// Fill writes len(buf) consecutive samples.
func (o *Oscillator) Fill(buf []float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range buf {
		buf[i] = float64(o.next())
	}
}

func (o *Oscillator) next() float32 {
	v := o.amplitude * shape(o.waveform, o.phase)
	o.phase += o.frequency / o.sampleRate
	o.phase -= math32.Floor(o.phase)
	return v
}

// shape evaluates a unit waveform at phase p in [0, 1).
func shape(w Waveform, p float32) float32 {
	switch w {
	case Square:
		if p < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*p - 1
	case Triangle:
		return 1 - 4*math32.Abs(p-0.5)
	default:
		return math32.Sin(2 * math32.Pi * p)
	}
}

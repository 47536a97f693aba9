package control

import "math"

// Knob is a stepped control with a fixed range.
type Knob struct {
	Min, Max  float64
	Increment float64
}

// Ranges of the front panel controls.
var (
	VoltsPerDivKnob         = Knob{Min: 0.1, Max: 4, Increment: 0.1}
	VerticalOffsetKnob      = Knob{Min: -4, Max: 4, Increment: 0.1}
	TimePerDivKnob          = Knob{Min: 1, Max: 100, Increment: 1}
	HorizontalOffsetKnob    = Knob{Min: -5, Max: 5, Increment: 0.1}
	TriggerLevelKnob        = Knob{Min: -1, Max: 1, Increment: 0.01}
	OscillatorFrequencyKnob = Knob{Min: 20, Max: 2000, Increment: 1}
	OscillatorAmplitudeKnob = Knob{Min: 0, Max: 10, Increment: 0.1}
)

// Turn moves v by clicks increments, snapped to the increment grid and
// clamped to the range.
func (k Knob) Turn(v float64, clicks int) float64 {
	return k.Clamp(v + float64(clicks)*k.Increment)
}

// Clamp snaps v to the increment grid and limits it to [Min, Max].
func (k Knob) Clamp(v float64) float64 {
	if k.Increment > 0 {
		v = math.Round(v/k.Increment) * k.Increment
	}
	if v < k.Min {
		return k.Min
	}
	if v > k.Max {
		return k.Max
	}
	return v
}

package scope

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// DefaultPeakInterval is the minimum time between published measurements.
const DefaultPeakInterval = 100 * time.Millisecond

// PeakMeasurement is the last peak-to-peak reading of a channel.
type PeakMeasurement struct {
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Vpp       float64   `json:"vpp"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Measure returns the smallest and largest sample of buf, or zeros if buf is empty.
func Measure(buf []float64) (min, max float64) {
	if len(buf) == 0 {
		return 0, 0
	}
	return floats.Min(buf), floats.Max(buf)
}

// PublishFunc receives throttled peak measurements.
type PublishFunc func(Channel, PeakMeasurement)

// PeakMeter scans a buffer every frame but publishes at most once per Interval per channel.
type PeakMeter struct {
	Interval time.Duration
	publish  PublishFunc

	last [NumChannels]PeakMeasurement
	seen [NumChannels]bool
}

// NewPeakMeter creates a meter. A zero interval uses DefaultPeakInterval;
// publish may be nil.
func NewPeakMeter(interval time.Duration, publish PublishFunc) *PeakMeter {
	if interval <= 0 {
		interval = DefaultPeakInterval
	}
	return &PeakMeter{Interval: interval, publish: publish}
}

// Update measures buf and publishes the result when more than Interval has
// passed since the channel's last published measurement. The first update of a
// channel always publishes. It returns the fresh measurement and whether it was
// published.
func (m *PeakMeter) Update(ch Channel, buf []float64, now time.Time) (PeakMeasurement, bool) {
	lo, hi := Measure(buf)
	pm := PeakMeasurement{Min: lo, Max: hi, Vpp: hi - lo, UpdatedAt: now}
	if !ch.Valid() {
		return pm, false
	}
	if m.seen[ch] && now.Sub(m.last[ch].UpdatedAt) <= m.Interval {
		return pm, false
	}
	m.last[ch] = pm
	m.seen[ch] = true
	if m.publish != nil {
		m.publish(ch, pm)
	}
	return pm, true
}

// Last returns the most recently published measurement of ch.
func (m *PeakMeter) Last(ch Channel) (PeakMeasurement, bool) {
	if !ch.Valid() {
		return PeakMeasurement{}, false
	}
	return m.last[ch], m.seen[ch]
}

package scope

import (
	"image"
	"math"
)

// Timebase maps screen columns to sample indices for one channel.
type Timebase struct {
	SamplesPerDiv   float64
	TotalSamples    float64
	PixelsPerSample float64
}

// NewTimebase computes the horizontal mapping for a timebase in milliseconds
// per division. timePerDivMs and sampleRate must be positive.
func NewTimebase(timePerDivMs, sampleRate float64, widthPx int) Timebase {
	spd := timePerDivMs / 1000 * sampleRate
	total := HorizontalDivisions * spd
	return Timebase{
		SamplesPerDiv:   spd,
		TotalSamples:    total,
		PixelsPerSample: float64(widthPx) / total,
	}
}

// StartIndex is the sample drawn at column 0. A positive offset moves the
// trace right, which exposes samples from before the trigger.
func (t Timebase) StartIndex(trigger int, horizontalOffsetDiv float64) int {
	return trigger - int(math.Floor(horizontalOffsetDiv*t.SamplesPerDiv))
}

// SampleIndex is the sample drawn at column x.
func (t Timebase) SampleIndex(start, x int) int {
	return start + int(math.Floor(float64(x)/t.PixelsPerSample))
}

// Band is the vertical region a channel is drawn in.
type Band struct {
	Top, Bottom  float64
	ZeroY        float64
	PixelsPerDiv float64
	// Clamp keeps y inside [Top, Bottom]; set in split layout only.
	Clamp bool
}

// BandFor returns the vertical mapping region of ch. In overlay layout every
// channel shares the full height; in split layout CH1 owns the top half and
// CH2 the bottom half, each with four divisions.
func BandFor(layout LayoutMode, ch Channel, heightPx int) Band {
	h := float64(heightPx)
	if layout != Split {
		return Band{
			Top:          0,
			Bottom:       h,
			ZeroY:        h / 2,
			PixelsPerDiv: h / VerticalDivisions,
		}
	}
	half := h / 2
	b := Band{
		PixelsPerDiv: half / (VerticalDivisions / 2),
		Clamp:        true,
	}
	if ch == CH2 {
		b.Top, b.Bottom = half, h
	} else {
		b.Top, b.Bottom = 0, half
	}
	b.ZeroY = (b.Top + b.Bottom) / 2
	return b
}

// Y maps a sample value to a screen row.
func (b Band) Y(sample float64, p ChannelViewParams) float64 {
	y := b.ZeroY - (sample/p.VoltsPerDiv)*b.PixelsPerDiv - p.VerticalOffsetDiv*b.PixelsPerDiv
	if b.Clamp {
		if y < b.Top {
			y = b.Top
		} else if y > b.Bottom {
			y = b.Bottom
		}
	}
	return y
}

// Rect is the band as an integer rectangle of the given width.
func (b Band) Rect(widthPx int) image.Rectangle {
	return image.Rect(0, int(b.Top), widthPx, int(math.Ceil(b.Bottom)))
}

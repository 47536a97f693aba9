// Package scope implements the acquisition, trigger and render pipeline of a
// two channel audio oscilloscope.
//
// The package draws onto a Surface, pulls samples from a SampleSource and is
// driven by a Scheduler; it never starts goroutines of its own.
package scope

import (
	"errors"
	"fmt"
	"strings"
)

// Display geometry, fixed regardless of zoom.
const (
	HorizontalDivisions = 10
	VerticalDivisions   = 8
)

var (
	// ErrNotReady is returned by a SampleSource that has no data for a channel yet.
	ErrNotReady = errors.New("sample source not ready")
	// ErrInvalidParams is returned when view parameters would divide by zero.
	ErrInvalidParams = errors.New("invalid view parameters")
)

// Channel identifies one of the input channels.
type Channel int

// Channels
const (
	CH1 Channel = iota
	CH2

	NumChannels = 2
)

func (c Channel) String() string {
	return fmt.Sprintf("CH%d", int(c)+1)
}

// Valid reports whether c names an existing channel.
func (c Channel) Valid() bool {
	return c >= 0 && c < NumChannels
}

// MarshalText encodes the channel as "CH1" or "CH2".
func (c Channel) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown channel %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts "CH1"/"CH2" and the bare numbers "1"/"2".
func (c *Channel) UnmarshalText(b []byte) error {
	ch, err := ParseChannel(string(b))
	if err != nil {
		return err
	}
	*c = ch
	return nil
}

// ParseChannel parses a 1-based channel name.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CH1", "1":
		return CH1, nil
	case "CH2", "2":
		return CH2, nil
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

// Slope is the edge direction the trigger looks for.
type Slope int

// Slopes
const (
	Rising Slope = iota
	Falling
)

func (s Slope) String() string {
	if s == Falling {
		return "falling"
	}
	return "rising"
}

// MarshalText encodes the slope as "rising" or "falling".
func (s Slope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "rising" or "falling".
func (s *Slope) UnmarshalText(b []byte) error {
	v, err := ParseSlope(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSlope parses a slope name.
func ParseSlope(s string) (Slope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rising", "rise", "up":
		return Rising, nil
	case "falling", "fall", "down":
		return Falling, nil
	}
	return 0, fmt.Errorf("unknown slope %q", s)
}

// LayoutMode selects between one shared grid and two stacked bands.
type LayoutMode int

// Layouts
const (
	Overlay LayoutMode = iota
	Split
)

func (l LayoutMode) String() string {
	if l == Split {
		return "split"
	}
	return "overlay"
}

// MarshalText encodes the layout as "overlay" or "split".
func (l LayoutMode) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes "overlay" or "split".
func (l *LayoutMode) UnmarshalText(b []byte) error {
	v, err := ParseLayout(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseLayout parses a layout name.
func ParseLayout(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overlay":
		return Overlay, nil
	case "split":
		return Split, nil
	}
	return 0, fmt.Errorf("unknown layout %q", s)
}

// TriggerSpec describes the edge condition searched for in the trigger buffer.
type TriggerSpec struct {
	Level float64 `json:"level"`
	Slope Slope   `json:"slope"`
}

// ChannelViewParams are the scale and offset controls of one channel.
// VoltsPerDiv and TimePerDiv must be strictly positive; see Validate.
type ChannelViewParams struct {
	VoltsPerDiv         float64 `json:"voltsPerDiv"`
	VerticalOffsetDiv   float64 `json:"verticalOffsetDiv"`
	TimePerDiv          float64 `json:"timePerDiv"` // milliseconds
	HorizontalOffsetDiv float64 `json:"horizontalOffsetDiv"`
}

// Validate checks the division-by-zero preconditions of the mapper.
func (p ChannelViewParams) Validate() error {
	if !(p.VoltsPerDiv > 0) {
		return fmt.Errorf("%w: voltsPerDiv must be > 0, got %v", ErrInvalidParams, p.VoltsPerDiv)
	}
	if !(p.TimePerDiv > 0) {
		return fmt.Errorf("%w: timePerDiv must be > 0, got %v", ErrInvalidParams, p.TimePerDiv)
	}
	return nil
}

// Params is everything the renderer reads for one frame.
type Params struct {
	Channels      [NumChannels]ChannelViewParams `json:"channels"`
	Visible       [NumChannels]bool              `json:"visible"`
	Trigger       TriggerSpec                    `json:"trigger"`
	TriggerSource Channel                        `json:"triggerSource"`
	Layout        LayoutMode                     `json:"layout"`
	Running       bool                           `json:"running"`
}

// Validate checks every channel and the trigger source.
func (p *Params) Validate() error {
	for i := range p.Channels {
		if err := p.Channels[i].Validate(); err != nil {
			return fmt.Errorf("%v: %w", Channel(i), err)
		}
	}
	if !p.TriggerSource.Valid() {
		return fmt.Errorf("%w: trigger source %d", ErrInvalidParams, int(p.TriggerSource))
	}
	return nil
}

// DefaultChannelParams are the power-on settings of a channel.
func DefaultChannelParams() ChannelViewParams {
	return ChannelViewParams{
		VoltsPerDiv: 1,
		TimePerDiv:  10,
	}
}

// DefaultParams returns the power-on state: CH1 shown, stopped, rising edge at 0.
func DefaultParams() Params {
	return Params{
		Channels: [NumChannels]ChannelViewParams{
			DefaultChannelParams(), DefaultChannelParams(),
		},
		Visible:       [NumChannels]bool{true, false},
		Trigger:       TriggerSpec{Level: 0, Slope: Rising},
		TriggerSource: CH1,
		Layout:        Overlay,
	}
}

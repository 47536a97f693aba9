package control

import (
	"fmt"
	"strconv"

	"github.com/peragwin/vuzicscope/scope"
)

// ReadoutItem is one line of the screen overlay. Channel is only meaningful
// when PerChannel is set.
type ReadoutItem struct {
	Text       string
	Channel    scope.Channel
	PerChannel bool
}

// Readout formats the overlay for the current state of the store.
func (s *Store) Readout() []ReadoutItem {
	s.mu.RLock()
	p, peaks, has := s.params, s.peaks, s.hasPeak
	s.mu.RUnlock()
	return FormatReadout(&p, peaks, has)
}

// FormatReadout builds the overlay lines: one per visible channel with its
// scale and Vpp, then the timebase, the trigger and the run state.
func FormatReadout(p *scope.Params, peaks [scope.NumChannels]scope.PeakMeasurement,
	hasPeak [scope.NumChannels]bool) []ReadoutItem {

	var items []ReadoutItem
	for i := range p.Channels {
		if !p.Visible[i] {
			continue
		}
		ch := scope.Channel(i)
		text := fmt.Sprintf("%v %.2fV", ch, p.Channels[i].VoltsPerDiv)
		if hasPeak[i] {
			text += fmt.Sprintf("  Vpp: %.2fV", peaks[i].Vpp)
		}
		items = append(items, ReadoutItem{Text: text, Channel: ch, PerChannel: true})
	}

	timebase := p.TriggerSource
	if !timebase.Valid() {
		timebase = scope.CH1
	}
	items = append(items,
		ReadoutItem{Text: "M " + formatMs(p.Channels[timebase].TimePerDiv)},
		ReadoutItem{Text: fmt.Sprintf("T %v %v %.2f", p.TriggerSource, p.Trigger.Slope, p.Trigger.Level)},
	)
	if p.Running {
		items = append(items, ReadoutItem{Text: "RUN"})
	} else {
		items = append(items, ReadoutItem{Text: "STOP"})
	}
	return items
}

func formatMs(ms float64) string {
	return strconv.FormatFloat(ms, 'f', -1, 64) + "ms"
}

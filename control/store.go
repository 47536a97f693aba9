// Package control is the editing boundary for the oscilloscope parameters.
// Every change is validated here so the render pipeline can rely on positive
// scales and timebases.
package control

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang/glog"
	"github.com/graphql-go/graphql"

	"github.com/peragwin/vuzicscope/scope"
)

var (
	// ErrUnknownChannel is returned for channel numbers other than 1 and 2.
	ErrUnknownChannel = errors.New("unknown channel")
	// ErrBadValue is returned for enum values that can't be parsed.
	ErrBadValue = errors.New("bad value")
)

// Store holds the current parameters and the last published peak readings.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	params  scope.Params
	peaks   [scope.NumChannels]scope.PeakMeasurement
	hasPeak [scope.NumChannels]bool
	hooks   []func(running bool)

	schema graphql.Schema
}

// NewStore creates a store holding p, which must be valid.
func NewStore(p scope.Params) (*Store, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Store{params: p}
	if err := s.initGraphql(); err != nil {
		return nil, fmt.Errorf("building graphql schema: %w", err)
	}
	return s, nil
}

// Params returns a copy of the current parameters.
func (s *Store) Params() scope.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Update applies fn to a copy of the parameters and keeps the result only if
// it validates. Run change hooks fire after the lock is released.
func (s *Store) Update(fn func(p *scope.Params)) error {
	s.mu.Lock()
	next := s.params
	fn(&next)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	changed := next.Running != s.params.Running
	s.params = next
	hooks := s.hooks
	s.mu.Unlock()

	if changed {
		state := scope.Stopped
		if next.Running {
			state = scope.Running
		}
		glog.Infof("acquisition %v", state)
		for _, h := range hooks {
			h(next.Running)
		}
	}
	return nil
}

// SetRunning starts or stops acquisition.
func (s *Store) SetRunning(running bool) {
	// a Running-only edit can't fail validation
	_ = s.Update(func(p *scope.Params) { p.Running = running })
}

// OnRunChange registers fn to be called whenever Running changes.
func (s *Store) OnRunChange(fn func(running bool)) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

// Reset restores the default parameters but keeps the run state.
func (s *Store) Reset() {
	_ = s.Update(func(p *scope.Params) {
		running := p.Running
		*p = scope.DefaultParams()
		p.Running = running
	})
}

// SetPeak records a published measurement. It matches scope.PublishFunc.
func (s *Store) SetPeak(ch scope.Channel, pm scope.PeakMeasurement) {
	if !ch.Valid() {
		return
	}
	s.mu.Lock()
	s.peaks[ch] = pm
	s.hasPeak[ch] = true
	s.mu.Unlock()
}

// Peak returns the last published measurement of ch.
func (s *Store) Peak(ch scope.Channel) (scope.PeakMeasurement, bool) {
	if !ch.Valid() {
		return scope.PeakMeasurement{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.peaks[ch], s.hasPeak[ch]
}

// channelArg converts a 1-based channel number.
func channelArg(n int) (scope.Channel, error) {
	ch := scope.Channel(n - 1)
	if !ch.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownChannel, n)
	}
	return ch, nil
}

package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/peragwin/vuzicscope/scope"
)

// settings is the saved form of the parameters. The run state is not saved.
type settings struct {
	Channels      [scope.NumChannels]scope.ChannelViewParams `json:"channels"`
	Visible       [scope.NumChannels]bool                    `json:"visible"`
	Trigger       scope.TriggerSpec                          `json:"trigger"`
	TriggerSource scope.Channel                              `json:"triggerSource"`
	Layout        scope.LayoutMode                           `json:"layout"`
}

// SaveConfig writes the display settings to the given file.
func (s *Store) SaveConfig(path string) error {
	p := s.Params()
	save := settings{
		Channels:      p.Channels,
		Visible:       p.Visible,
		Trigger:       p.Trigger,
		TriggerSource: p.TriggerSource,
		Layout:        p.Layout,
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&save); err != nil {
		fp.Close()
		return err
	}
	if err := fp.Close(); err != nil {
		return err
	}
	glog.Infof("settings saved to %s", path)
	return nil
}

// LoadConfig replaces the display settings with those in the given file. A
// missing file leaves the store unchanged.
func (s *Store) LoadConfig(path string) error {
	fp, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer fp.Close()

	p := s.Params()
	save := settings{
		Channels:      p.Channels,
		Visible:       p.Visible,
		Trigger:       p.Trigger,
		TriggerSource: p.TriggerSource,
		Layout:        p.Layout,
	}
	if err := json.NewDecoder(fp).Decode(&save); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Update(func(p *scope.Params) {
		p.Channels = save.Channels
		p.Visible = save.Visible
		p.Trigger = save.Trigger
		p.TriggerSource = save.TriggerSource
		p.Layout = save.Layout
	}); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	glog.Infof("settings loaded from %s", path)
	return nil
}

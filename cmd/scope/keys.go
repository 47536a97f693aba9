package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/peragwin/vuzicscope/control"
)

const usage = `keys:
  space         run / stop
  tab           select channel
  v             show / hide selected channel
  up, down      volts/div     (shift: vertical offset)
  right, left   time/div      (shift: horizontal offset)
  pgup, pgdn    trigger level
  s             trigger slope
  t             trigger source
  l             overlay / split
  f, a          generator frequency, amplitude (shift: down)
  r             reset
`

type turn struct {
	control control.Control
	clicks  int
}

var (
	turnKeys = map[glfw.Key]turn{
		glfw.KeyUp:       {control.ControlVoltsPerDiv, 1},
		glfw.KeyDown:     {control.ControlVoltsPerDiv, -1},
		glfw.KeyRight:    {control.ControlTimePerDiv, 1},
		glfw.KeyLeft:     {control.ControlTimePerDiv, -1},
		glfw.KeyPageUp:   {control.ControlTriggerLevel, 1},
		glfw.KeyPageDown: {control.ControlTriggerLevel, -1},
		glfw.KeyF:        {control.ControlFrequency, 10},
		glfw.KeyA:        {control.ControlAmplitude, 1},
	}
	shiftTurnKeys = map[glfw.Key]turn{
		glfw.KeyUp:    {control.ControlVerticalOffset, 1},
		glfw.KeyDown:  {control.ControlVerticalOffset, -1},
		glfw.KeyRight: {control.ControlHorizontalOffset, 1},
		glfw.KeyLeft:  {control.ControlHorizontalOffset, -1},
		glfw.KeyF:     {control.ControlFrequency, -10},
		glfw.KeyA:     {control.ControlAmplitude, -1},
	}
)

func keyHandler(p *control.Panel) func(glfw.Key, glfw.ModifierKey) {
	return func(key glfw.Key, mods glfw.ModifierKey) {
		if err := handleKey(p, key, mods); err != nil {
			glog.Warningf("key %v: %v", key, err)
		}
	}
}

func handleKey(p *control.Panel, key glfw.Key, mods glfw.ModifierKey) error {
	if mods&glfw.ModShift != 0 {
		if t, ok := shiftTurnKeys[key]; ok {
			return p.Turn(t.control, t.clicks)
		}
	}
	if t, ok := turnKeys[key]; ok {
		return p.Turn(t.control, t.clicks)
	}

	switch key {
	case glfw.KeySpace:
		p.ToggleRun()
	case glfw.KeyTab:
		p.SelectNext()
	case glfw.KeyV:
		return p.ToggleVisible()
	case glfw.KeyS:
		return p.ToggleSlope()
	case glfw.KeyT:
		return p.NextTriggerSource()
	case glfw.KeyL:
		return p.ToggleLayout()
	case glfw.KeyR:
		p.Reset()
	}
	return nil
}

package main

import (
	"testing"

	"github.com/peragwin/vuzicscope/audio/gen"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		in   string
		want inputSpec
	}{
		{"off", inputSpec{kind: inputOff}},
		{"", inputSpec{kind: inputOff}},
		{"osc", inputSpec{kind: inputOsc, waveform: gen.Sine, frequency: 440, amplitude: 1}},
		{"osc:square:100", inputSpec{kind: inputOsc, waveform: gen.Square, frequency: 100, amplitude: 1}},
		{"OSC:saw:50:0.5", inputSpec{kind: inputOsc, waveform: gen.Sawtooth, frequency: 50, amplitude: 0.5}},
		{"mic", inputSpec{kind: inputMic}},
		{"mic:1", inputSpec{kind: inputMic, micChannel: 1}},
		{"file:/tmp/a:b.wav", inputSpec{kind: inputFile, path: "/tmp/a:b.wav"}},
	}
	for _, tt := range tests {
		got, err := parseInput(tt.in)
		if err != nil {
			t.Errorf("parseInput(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseInput(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseInputErrors(t *testing.T) {
	for _, in := range []string{
		"osc:noise", "osc:sine:-3", "osc:sine:1:x", "osc:sine:1:1:1",
		"mic:-1", "mic:x", "file", "file:", "usb",
	} {
		if _, err := parseInput(in); err == nil {
			t.Errorf("parseInput(%q) accepted", in)
		}
	}
}

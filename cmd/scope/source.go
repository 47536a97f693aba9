package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/peragwin/vuzicscope/audio"
	"github.com/peragwin/vuzicscope/audio/file"
	"github.com/peragwin/vuzicscope/audio/gen"
	"github.com/peragwin/vuzicscope/control"
	"github.com/peragwin/vuzicscope/scope"
)

type inputKind int

const (
	inputOff inputKind = iota
	inputOsc
	inputMic
	inputFile
)

// inputSpec describes what feeds one channel. Accepted forms:
//
//	off
//	osc[:waveform[:hz[:amplitude]]]
//	mic[:input]        input is the 0-based device channel
//	file:path          .wav or .mp3
type inputSpec struct {
	kind inputKind

	waveform  gen.Waveform
	frequency float64
	amplitude float64

	micChannel int
	path       string
}

func parseInput(s string) (inputSpec, error) {
	kind, rest, _ := strings.Cut(strings.TrimSpace(s), ":")
	switch strings.ToLower(kind) {
	case "", "off":
		return inputSpec{kind: inputOff}, nil

	case "osc":
		in := inputSpec{kind: inputOsc, waveform: gen.Sine, frequency: 440, amplitude: 1}
		var args []string
		if rest != "" {
			args = strings.Split(rest, ":")
		}
		if len(args) > 3 {
			return in, fmt.Errorf("input %q: too many oscillator arguments", s)
		}
		var err error
		if len(args) > 0 {
			if in.waveform, err = gen.ParseWaveform(args[0]); err != nil {
				return in, fmt.Errorf("input %q: %w", s, err)
			}
		}
		if len(args) > 1 {
			if in.frequency, err = strconv.ParseFloat(args[1], 64); err != nil || in.frequency <= 0 {
				return in, fmt.Errorf("input %q: bad frequency %q", s, args[1])
			}
		}
		if len(args) > 2 {
			if in.amplitude, err = strconv.ParseFloat(args[2], 64); err != nil || in.amplitude < 0 {
				return in, fmt.Errorf("input %q: bad amplitude %q", s, args[2])
			}
		}
		return in, nil

	case "mic":
		in := inputSpec{kind: inputMic}
		if rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil || n < 0 {
				return in, fmt.Errorf("input %q: bad device channel %q", s, rest)
			}
			in.micChannel = n
		}
		return in, nil

	case "file":
		if rest == "" {
			return inputSpec{}, fmt.Errorf("input %q: missing path", s)
		}
		return inputSpec{kind: inputFile, path: rest}, nil
	}
	return inputSpec{}, fmt.Errorf("input %q: unknown kind %q", s, kind)
}

type inputConfig struct {
	blockSize  int
	sampleRate float64
}

// startInputs connects every channel's input to capture. Generators are
// attached to the panel so its knobs can drive them. The returned channel
// carries the first error of any input.
func startInputs(ctx context.Context, capture *audio.Capture, panel *control.Panel,
	specs [scope.NumChannels]inputSpec, cfg inputConfig) <-chan error {

	errc := make(chan error, 2*scope.NumChannels+1)
	watch := func(ch scope.Channel, e <-chan error) {
		go func() {
			select {
			case err := <-e:
				if err != nil {
					errc <- fmt.Errorf("%v: %w", ch, err)
				}
			case <-ctx.Done():
			}
		}()
	}

	micChannels := 0
	for _, in := range specs {
		if in.kind == inputMic && in.micChannel+1 > micChannels {
			micChannels = in.micChannel + 1
		}
	}
	var mic []chan []float64
	if micChannels > 0 {
		stream, serr := audio.NewSource(ctx, &audio.Config{
			BlockSize:  cfg.blockSize,
			Channels:   micChannels,
			SampleRate: cfg.sampleRate,
		})
		mic = audio.Deinterleave(ctx.Done(), stream, micChannels)
		watch(scope.CH1, serr)
	}

	for i, in := range specs {
		ch := scope.Channel(i)
		switch in.kind {
		case inputOsc:
			osc := gen.NewOscillator(cfg.sampleRate, in.waveform, in.frequency, in.amplitude)
			panel.AttachOscillator(ch, osc)
			out, e := gen.NewSource(ctx, osc, &gen.Config{BlockSize: cfg.blockSize, SampleRate: cfg.sampleRate})
			capture.Feed(ctx.Done(), ch, out)
			watch(ch, e)
			glog.Infof("%v: %v oscillator at %g Hz", ch, in.waveform, in.frequency)

		case inputMic:
			capture.Feed(ctx.Done(), ch, mic[in.micChannel])
			glog.Infof("%v: input channel %d", ch, in.micChannel)

		case inputFile:
			clip, err := file.Load(in.path)
			if err != nil {
				errc <- fmt.Errorf("%v: %w", ch, err)
				continue
			}
			out, e := file.NewSource(ctx, clip, &file.Config{BlockSize: cfg.blockSize, SampleRate: cfg.sampleRate})
			capture.Feed(ctx.Done(), ch, out)
			watch(ch, e)
			glog.Infof("%v: playing %s (%v)", ch, in.path, clip.Duration())
		}
	}
	return errc
}

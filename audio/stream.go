package audio

import (
	"context"
	"fmt"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
)

// Config represents a config that is used to open a new Stream.
type Config struct {
	// BlockSize refers to the number of frames in each block
	BlockSize int
	// Channels is the number of input channels, interleaved in each block
	Channels int
	// SampleRate is the sample rate (Fs).
	SampleRate float64
}

// NewSource opens the default input device with portaudio and returns a
// channel of interleaved blocks of BlockSize*Channels samples. Each block is
// a fresh slice owned by the receiver.
func NewSource(ctx context.Context, cfg *Config) (<-chan []float32, <-chan error) {
	out := make(chan []float32)
	errc := make(chan error, 1)
	done := ctx.Done()

	go func() {
		defer close(out)

		if err := portaudio.Initialize(); err != nil {
			errc <- fmt.Errorf("initializing portaudio: %w", err)
			return
		}
		defer portaudio.Terminate()

		in := make([]float32, cfg.BlockSize*cfg.Channels)
		stream, err := portaudio.OpenDefaultStream(
			cfg.Channels, 0, cfg.SampleRate, cfg.BlockSize, in)
		if err != nil {
			errc <- fmt.Errorf("opening stream: %w", err)
			return
		}
		defer stream.Close()
		if err := stream.Start(); err != nil {
			errc <- fmt.Errorf("starting stream: %w", err)
			return
		}
		defer stream.Stop()
		glog.Infof("input stream started: %d channels at %.0f Hz, %d frames per block",
			cfg.Channels, cfg.SampleRate, cfg.BlockSize)

		for {
			select {
			case <-done:
				return
			default:
			}

			if err := stream.Read(); err != nil {
				errc <- fmt.Errorf("reading from stream: %w", err)
				return
			}

			block := make([]float32, len(in))
			copy(block, in)
			select {
			case out <- block:
			case <-done:
				return
			}
		}
	}()

	return out, errc
}

package gen

import (
	"context"
	"errors"
	"time"
)

// Config paces an oscillator source.
type Config struct {
	BlockSize  int
	SampleRate float64
}

// NewSource emits one block of BlockSize samples from osc every
// BlockSize/SampleRate seconds, like a capture device would.
func NewSource(ctx context.Context, osc *Oscillator, cfg *Config) (<-chan []float64, <-chan error) {
	out := make(chan []float64, 1)
	errc := make(chan error, 1)

	if cfg.BlockSize <= 0 || cfg.SampleRate <= 0 {
		errc <- errors.New("gen: block size and sample rate must be positive")
		close(out)
		return out, errc
	}

	period := time.Duration(float64(cfg.BlockSize) / cfg.SampleRate * float64(time.Second))
	go func() {
		defer close(out)
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			block := make([]float64, cfg.BlockSize)
			osc.Fill(block)
			select {
			case out <- block:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errc
}

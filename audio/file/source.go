package file

import (
	"context"
	"fmt"
	"time"
)

// Config paces clip playback.
type Config struct {
	BlockSize  int
	SampleRate float64
}

// NewSource loops clip forever, emitting BlockSize samples every
// BlockSize/SampleRate seconds. The clip must already be at SampleRate.
func NewSource(ctx context.Context, clip *Clip, cfg *Config) (<-chan []float64, <-chan error) {
	out := make(chan []float64, 1)
	errc := make(chan error, 1)

	switch {
	case cfg.BlockSize <= 0 || cfg.SampleRate <= 0:
		errc <- fmt.Errorf("file: block size and sample rate must be positive")
	case len(clip.Samples) == 0:
		errc <- fmt.Errorf("file: empty clip")
	case clip.SampleRate != cfg.SampleRate:
		errc <- fmt.Errorf("file: clip is %.0f Hz, capture runs at %.0f Hz", clip.SampleRate, cfg.SampleRate)
	}
	if len(errc) > 0 {
		close(out)
		return out, errc
	}

	period := time.Duration(float64(cfg.BlockSize) / cfg.SampleRate * float64(time.Second))
	go func() {
		defer close(out)
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		pos := 0
		for {
			block := make([]float64, cfg.BlockSize)
			for i := range block {
				block[i] = clip.Samples[pos]
				pos = (pos + 1) % len(clip.Samples)
			}
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

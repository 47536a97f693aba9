package audio

import (
	"github.com/golang/glog"
)

// Deinterleave splits interleaved float32 frames into one float64 stream per
// channel. A block is dropped for every output whose reader is not keeping
// up, so a slow consumer never stalls the device.
func Deinterleave(done <-chan struct{}, in <-chan []float32, channels int) []chan []float64 {
	out := make([]chan []float64, channels)
	for i := range out {
		out[i] = make(chan []float64, 16)
	}

	go func() {
		for i := range out {
			defer close(out[i])
		}

		for {
			var x []float32
			select {
			case <-done:
				return
			case x = <-in:
			}
			if x == nil {
				return
			}

			frames := len(x) / channels
			for c := range out {
				y := make([]float64, frames)
				for i := range y {
					y[i] = float64(x[i*channels+c])
				}

				select {
				case out[c] <- y:
				default:
					glog.Warningf("input %d buffer overrun, block dropped", c+1)
				}
			}
		}
	}()

	return out
}

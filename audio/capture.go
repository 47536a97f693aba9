package audio

import (
	"sync"

	"github.com/golang/glog"

	"github.com/peragwin/vuzicscope/audio/util"
	"github.com/peragwin/vuzicscope/scope"
)

// DefaultBufferSize is the number of samples kept and handed out per channel.
const DefaultBufferSize = 32768

// Capture collects blocks from per-channel streams and serves the latest
// window of each channel to the renderer.
type Capture struct {
	rate float64

	mu    sync.Mutex
	rings [scope.NumChannels]*util.RingBuffer
	views [scope.NumChannels][]float64
}

// NewCapture creates a capture with bufferSize samples per channel. A
// non-positive size uses DefaultBufferSize.
func NewCapture(sampleRate float64, bufferSize int) *Capture {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	c := &Capture{rate: sampleRate}
	for i := range c.rings {
		c.rings[i] = util.NewRingBuffer(bufferSize)
		c.views[i] = make([]float64, bufferSize)
	}
	return c
}

// SampleRate implements scope.SampleSource.
func (c *Capture) SampleRate() float64 { return c.rate }

// Samples implements scope.SampleSource. The returned slice is reused by the
// next call for the same channel. Until the first block arrives it fails with
// scope.ErrNotReady.
func (c *Capture) Samples(ch scope.Channel) ([]float64, error) {
	if !ch.Valid() {
		return nil, scope.ErrNotReady
	}
	ring := c.rings[ch]
	if ring.Filled() == 0 {
		return nil, scope.ErrNotReady
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	view := c.views[ch]
	ring.CopyLatest(view)
	return view, nil
}

// Push appends a block to a channel.
func (c *Capture) Push(ch scope.Channel, block []float64) {
	if !ch.Valid() || len(block) == 0 {
		return
	}
	c.rings[ch].Push(block)
}

// Feed pushes every block received on in to ch until in is closed or done
// fires.
func (c *Capture) Feed(done <-chan struct{}, ch scope.Channel, in <-chan []float64) {
	go func() {
		for {
			select {
			case <-done:
				return
			case block, ok := <-in:
				if !ok {
					glog.Infof("%v: input closed", ch)
					return
				}
				c.Push(ch, block)
			}
		}
	}()
}

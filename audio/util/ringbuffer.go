// Package util holds small data structures shared by the audio sources.
package util

import (
	"sync"
)

// RingBuffer keeps the most recent samples of a stream. It is safe for one
// writer and any number of readers.
type RingBuffer struct {
	sync.RWMutex
	buf    []float64
	index  int
	filled int
}

// NewRingBuffer creates a new ring buffer with the given size.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{buf: make([]float64, size)}
}

// Size is the capacity of the buffer.
func (r *RingBuffer) Size() int { return len(r.buf) }

// Filled is the number of valid samples, at most Size.
func (r *RingBuffer) Filled() int {
	r.RLock()
	defer r.RUnlock()
	return r.filled
}

// Push appends data, overwriting the oldest samples. Only the tail of data
// is kept when it is longer than the buffer.
func (r *RingBuffer) Push(data []float64) {
	if len(data) > len(r.buf) {
		data = data[len(data)-len(r.buf):]
	}

	r.Lock()
	defer r.Unlock()

	n := copy(r.buf[r.index:], data)
	copy(r.buf, data[n:])

	r.index = (r.index + len(data)) % len(r.buf)
	r.filled += len(data)
	if r.filled > len(r.buf) {
		r.filled = len(r.buf)
	}
}

// Get the most recent N data points from the buffer.
func (r *RingBuffer) Get(size int) []float64 {
	return r.GetOffset(size, 0)
}

// GetOffset gets the most recent N data points from the buffer, offset minus M samples.
func (r *RingBuffer) GetOffset(size, offset int) []float64 {
	ret := make([]float64, size)
	r.CopyOffset(ret, offset)
	return ret
}

// CopyLatest fills dst with the most recent len(dst) samples, oldest first.
func (r *RingBuffer) CopyLatest(dst []float64) {
	r.CopyOffset(dst, 0)
}

// CopyOffset fills dst with len(dst) samples ending offset samples before the
// newest one. Negative offsets wrap around to older data.
func (r *RingBuffer) CopyOffset(dst []float64, offset int) {
	size := len(dst)
	if size > len(r.buf) {
		panic("cant get size greater than size of buffer")
	}

	r.RLock()
	defer r.RUnlock()

	end := ((r.index-offset)%len(r.buf) + len(r.buf)) % len(r.buf)
	st := end - size
	if st >= 0 {
		copy(dst, r.buf[st:end])
		return
	}
	n := copy(dst, r.buf[len(r.buf)+st:])
	copy(dst[n:], r.buf[:end])
}

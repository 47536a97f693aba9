// Package file plays audio files into the oscilloscope inputs.
package file

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/golang/glog"
	"github.com/hajimehoshi/go-mp3"
)

// Clip is a decoded mono signal normalised to [-1, 1].
type Clip struct {
	Samples    []float64
	SampleRate float64
}

// Duration is the playing time of the clip.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(c.Samples)) / c.SampleRate * float64(time.Second))
}

// Load decodes a .wav or .mp3 file, keeping only its first channel.
func Load(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var clip *Clip
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		clip, err = decodeWav(f)
	case ".mp3":
		clip, err = decodeMp3(f)
	default:
		return nil, fmt.Errorf("%s: unsupported audio format", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(clip.Samples) == 0 {
		return nil, fmt.Errorf("%s: no samples", path)
	}
	glog.Infof("loaded %s: %.0f Hz, %v", path, clip.SampleRate, clip.Duration())
	return clip, nil
}

func decodeWav(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("wav: not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	if dec.BitDepth == 0 || dec.NumChans == 0 {
		return nil, errors.New("wav: missing format")
	}

	factor := math.Pow(2, float64(dec.BitDepth-1))
	nch := int(dec.NumChans)
	data := buf.AsFloatBuffer().Data
	clip := &Clip{
		Samples:    make([]float64, 0, len(data)/nch),
		SampleRate: float64(dec.SampleRate),
	}
	for i := 0; i < len(data); i += nch {
		clip.Samples = append(clip.Samples, data[i]/factor)
	}
	return clip, nil
}

// decodeMp3 keeps the left channel. go-mp3 always produces 16 bit little
// endian stereo.
func decodeMp3(r io.Reader) (*Clip, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	clip := &Clip{SampleRate: float64(dec.SampleRate())}
	if n := dec.Length(); n > 0 {
		clip.Samples = make([]float64, 0, n/4)
	}

	var frame [2]int16
	for {
		err := binary.Read(dec, binary.LittleEndian, &frame)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mp3: %w", err)
		}
		clip.Samples = append(clip.Samples, float64(frame[0])/32768)
	}
	return clip, nil
}

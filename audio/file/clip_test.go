package file

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeWav(t *testing.T, path string, sr, nch int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sr, 16, nch, 1)
	if err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nch, SampleRate: sr},
		Data:           data,
		SourceBitDepth: 16,
	}); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	// stereo: left ramps, right is silent
	writeWav(t, path, 8000, 2, []int{0, 0, 16384, 0, -16384, 0, 32767, 0})

	clip, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if clip.SampleRate != 8000 {
		t.Errorf("rate = %v", clip.SampleRate)
	}
	exp := []float64{0, 0.5, -0.5, 32767.0 / 32768}
	if len(clip.Samples) != len(exp) {
		t.Fatalf("samples = %v", clip.Samples)
	}
	for i := range exp {
		if math.Abs(clip.Samples[i]-exp[i]) > 1e-9 {
			t.Fatalf("samples = %v, want %v", clip.Samples, exp)
		}
	}
	if d := clip.Duration(); d != 500*time.Microsecond {
		t.Errorf("duration = %v", d)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.wav")); err == nil {
		t.Error("missing file loaded")
	}

	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(txt); err == nil {
		t.Error("unsupported extension loaded")
	}

	bad := filepath.Join(dir, "bad.wav")
	if err := os.WriteFile(bad, []byte("RIFF0000garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("corrupt wav loaded")
	}
}

func TestSourceLoops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clip := &Clip{Samples: []float64{1, 2, 3}, SampleRate: 1000}
	out, errc := NewSource(ctx, clip, &Config{BlockSize: 2, SampleRate: 1000})

	var got []float64
	for len(got) < 8 {
		select {
		case b := <-out:
			got = append(got, b...)
		case err := <-errc:
			t.Fatal(err)
		case <-time.After(time.Second):
			t.Fatal("timed out")
		}
	}
	for i, v := range []float64{1, 2, 3, 1, 2, 3, 1, 2} {
		if got[i] != v {
			t.Fatalf("got %v", got)
		}
	}
}

func TestSourceRejectsRateMismatch(t *testing.T) {
	clip := &Clip{Samples: []float64{0}, SampleRate: 44100}
	out, errc := NewSource(context.Background(), clip, &Config{BlockSize: 64, SampleRate: 48000})
	if err := <-errc; err == nil {
		t.Fatal("expected error")
	}
	if _, ok := <-out; ok {
		t.Error("output not closed")
	}
}

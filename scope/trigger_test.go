package scope

import (
	"math/rand"
	"testing"
)

func TestLocateSquare(t *testing.T) {
	buf := make([]float64, 512)
	for i := range buf {
		// one period: low for the first half, high for the second
		if i < 256 {
			buf[i] = -0.8
		} else {
			buf[i] = 0.8
		}
	}

	i, ok := Locate(buf, TriggerSpec{Level: 0, Slope: Rising})
	if !ok || i != 256 {
		t.Fatalf("rising: got %d %v, want 256 true", i, ok)
	}
	if _, ok := Locate(buf, TriggerSpec{Level: 0, Slope: Falling}); ok {
		t.Fatal("falling: expected no edge")
	}
}

func TestLocateEdgeCases(t *testing.T) {
	cases := []struct {
		name  string
		buf   []float64
		spec  TriggerSpec
		index int
		ok    bool
	}{
		{"empty", nil, TriggerSpec{}, 0, false},
		{"too short", []float64{-1, 1}, TriggerSpec{}, 0, false},
		{"all above", []float64{1, 1, 1, 1}, TriggerSpec{Level: 0.5}, 0, false},
		{"all below falling", []float64{0, 0, 0, 0}, TriggerSpec{Level: 0.5, Slope: Falling}, 0, false},
		{"level equal counts rising", []float64{-1, 0, 1, 1}, TriggerSpec{Level: 0}, 1, true},
		{"level equal counts falling", []float64{1, 0, -1, -1}, TriggerSpec{Slope: Falling}, 1, true},
		{"last sample ignored", []float64{-1, -1, -1, 1}, TriggerSpec{}, 0, false},
		{"first of many", []float64{-1, 1, -1, 1, -1}, TriggerSpec{}, 1, true},
		{"falling", []float64{0.5, 0.4, 0.1, -0.2, -0.4}, TriggerSpec{Level: 0.2, Slope: Falling}, 2, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i, ok := Locate(c.buf, c.spec)
			if i != c.index || ok != c.ok {
				t.Errorf("got %d %v, want %d %v", i, ok, c.index, c.ok)
			}
		})
	}
}

func TestLocateFirstCrossing(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 200; n++ {
		buf := make([]float64, 3+rng.Intn(64))
		for i := range buf {
			buf[i] = rng.Float64()*2 - 1
		}
		level := rng.Float64() - 0.5

		i, ok := Locate(buf, TriggerSpec{Level: level, Slope: Rising})
		end := len(buf) - 1
		if ok {
			end = i
			if !(buf[i-1] < level && level <= buf[i]) {
				t.Fatalf("index %d is not a rising edge through %v: %v", i, level, buf)
			}
		}
		for j := 1; j < end; j++ {
			if buf[j-1] < level && level <= buf[j] {
				t.Fatalf("missed earlier edge at %d (got %d %v)", j, i, ok)
			}
		}
	}
}

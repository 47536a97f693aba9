package audio

import (
	"bytes"
	"strings"
	"testing"
)

func TestListDevices(t *testing.T) {
	var buf bytes.Buffer
	if err := ListDevices(&buf); err != nil {
		t.Skip("portaudio unavailable:", err)
	}
	if !strings.Contains(buf.String(), "host APIs") {
		t.Errorf("unexpected listing: %q", buf.String())
	}
}

package audio

import (
	"fmt"
	"io"
	"text/template"

	"github.com/gordonklaus/portaudio"
)

var deviceTmpl = template.Must(template.New("").Parse(
	`{{. | len}} host APIs: {{range .}}
	Name:                   {{.Name}}
	{{if .DefaultInputDevice}}Default input device:   {{.DefaultInputDevice.Name}}{{end}}
	Input devices: {{range .Devices}}{{if .MaxInputChannels}}
		Name:                      {{.Name}}
		MaxInputChannels:          {{.MaxInputChannels}}
		DefaultLowInputLatency:    {{.DefaultLowInputLatency}}
		DefaultHighInputLatency:   {{.DefaultHighInputLatency}}
		DefaultSampleRate:         {{.DefaultSampleRate}}
	{{end}}{{end}}
{{end}}`,
))

// PrintDevices writes the input devices of every host API to w. portaudio
// must already be initialized.
func PrintDevices(w io.Writer) error {
	hs, err := portaudio.HostApis()
	if err != nil {
		return fmt.Errorf("listing host APIs: %w", err)
	}
	return deviceTmpl.Execute(w, hs)
}

// ListDevices initializes portaudio, prints the devices and terminates it.
func ListDevices(w io.Writer) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()
	return PrintDevices(w)
}

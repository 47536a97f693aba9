// Scope is a two channel software oscilloscope. Each channel is fed by a
// generator, an input device channel or a looping audio file, and the traces
// are drawn triggered on the selected source.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"time"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/golang/glog"

	"github.com/peragwin/vuzicscope/audio"
	"github.com/peragwin/vuzicscope/control"
	"github.com/peragwin/vuzicscope/gfx/canvas"
	"github.com/peragwin/vuzicscope/gfx/frame"
	"github.com/peragwin/vuzicscope/gfx/palette"
	"github.com/peragwin/vuzicscope/gfx/screen"
	"github.com/peragwin/vuzicscope/scope"
)

var (
	width  = flag.Int("width", 800, "width of the screen in pixels")
	height = flag.Int("height", 500, "height of the screen in pixels")

	sampleRate = flag.Float64("sample-rate", 48000, "capture sample rate in Hz")
	bufferSize = flag.Int("buffer", audio.DefaultBufferSize, "samples kept per channel")
	blockSize  = flag.Int("block", 512, "samples per input block")

	ch1 = flag.String("ch1", "osc:sine:440:1", "CH1 input: off, osc[:wave[:hz[:amp]]], mic[:n] or file:path")
	ch2 = flag.String("ch2", "off", "CH2 input, same forms as -ch1")

	headless  = flag.Bool("headless", false, "run without initializing OpenGL display")
	frameRate = flag.Float64("frame-rate", 30,
		"frame rate to target when rendering without a window")
	snapshot = flag.String("snapshot", "", "write the last frame as PNG here on exit (headless only)")

	httpAddr     = flag.String("http", ":8080", "address of the graphql api, empty to disable")
	configPath   = flag.String("config", "", "settings file loaded at start and saved on exit")
	run          = flag.Bool("run", true, "start acquiring immediately")
	listDevices  = flag.Bool("list-devices", false, "print the input devices and exit")
	peakInterval = flag.Duration("peak-interval", scope.DefaultPeakInterval, "how often Vpp readings refresh")
)

type app struct {
	store   *control.Store
	panel   *control.Panel
	canvas  *canvas.Canvas
	palette palette.Palette
	queue   *frame.Queue
	ctrl    *scope.Controller

	dirty    bool
	readout  []control.ReadoutItem
	captions []canvas.Caption
}

// markingDrawer flags the canvas for recomposition whenever the controller
// draws into it.
type markingDrawer struct {
	scope.Drawer
	a *app
}

func (d markingDrawer) Render(p *scope.Params, now time.Time) {
	d.Drawer.Render(p, now)
	d.a.dirty = true
}

func (d markingDrawer) DrawIdle(p *scope.Params) {
	d.Drawer.DrawIdle(p)
	d.a.dirty = true
}

func newApp(ctx context.Context) (*app, <-chan error, error) {
	var specs [scope.NumChannels]inputSpec
	for i, s := range []string{*ch1, *ch2} {
		in, err := parseInput(s)
		if err != nil {
			return nil, nil, err
		}
		specs[i] = in
	}

	store, err := control.NewStore(scope.DefaultParams())
	if err != nil {
		return nil, nil, err
	}
	if *configPath != "" {
		if err := store.LoadConfig(*configPath); err != nil {
			return nil, nil, err
		}
	}
	store.SetRunning(*run)

	a := &app{
		store:   store,
		panel:   control.NewPanel(store),
		palette: palette.Default(),
		queue:   frame.NewQueue(),
	}
	a.canvas = canvas.New(*width, *height, a.palette.Background)

	capture := audio.NewCapture(*sampleRate, *bufferSize)
	renderer := scope.NewRenderer(&scope.RendererConfig{
		Source:       capture,
		Surface:      a.canvas,
		Grid:         a.palette.Grid,
		Traces:       a.palette.Traces,
		PeakInterval: *peakInterval,
		OnPeak:       store.SetPeak,
	})
	a.ctrl = scope.NewController(markingDrawer{renderer, a}, a.queue, store)

	// run changes may come from the http api; apply them on the render thread
	store.OnRunChange(func(running bool) {
		a.queue.Post(func() { a.ctrl.SetRunning(running) })
	})
	a.queue.Post(a.ctrl.Sync)

	errc := startInputs(ctx, capture, a.panel, specs, inputConfig{
		blockSize:  *blockSize,
		sampleRate: *sampleRate,
	})
	return a, errc, nil
}

// present composes the canvas when something changed since the last call
// and returns nil otherwise.
func (a *app) present() *image.RGBA {
	items := a.store.Readout()
	if !a.dirty && reflect.DeepEqual(items, a.readout) {
		return nil
	}
	a.dirty = false
	a.readout = items

	a.captions = a.captions[:0]
	for _, it := range items {
		c := a.palette.Text
		if it.PerChannel {
			c = a.palette.Traces[it.Channel].Color
		}
		a.captions = append(a.captions, canvas.Caption{Text: it.Text, Color: c})
	}
	a.canvas.SetCaptions(a.captions)
	return a.canvas.Image()
}

func (a *app) serveAPI(addr string) {
	glog.Infof("graphql api on %s", addr)
	if err := http.ListenAndServe(addr, control.NewHandler(a.store)); err != nil {
		glog.Errorf("http: %v", err)
	}
}

func (a *app) close() {
	a.queue.Post(a.ctrl.Close)
	a.queue.Run(time.Now())
	if *configPath != "" {
		if err := a.store.SaveConfig(*configPath); err != nil {
			glog.Errorf("saving settings: %v", err)
		}
	}
}

func runScope() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	a, errc, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if *httpAddr != "" {
		go a.serveAPI(*httpAddr)
	}

	// watch for input errors
	go func() {
		select {
		case err := <-errc:
			glog.Errorf("input: %v", err)
			cancel()
		case <-ctx.Done():
		}
	}()

	if *headless {
		return runHeadless(ctx, a)
	}
	return runWindow(ctx, a)
}

func runHeadless(ctx context.Context, a *app) error {
	var last *image.RGBA
	err := frame.RunTicker(ctx, a.queue, *frameRate, func() {
		if img := a.present(); img != nil {
			last = img
		}
	})
	if *snapshot != "" && last != nil {
		if werr := writePNG(*snapshot, last); werr != nil {
			return werr
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runWindow(ctx context.Context, a *app) error {
	var (
		scr *screen.Screen
		err error
		cfg = &screen.Config{
			Width: *width, Height: *height,
			Columns: *width, Rows: *height,
			Title:       "Scope",
			TextureMode: gl.NEAREST,
			OnKey:       keyHandler(a.panel),
		}
	)
	mainthread.Call(func() { scr, err = screen.New(ctx, cfg) })
	if err != nil {
		return fmt.Errorf("error creating display: %w", err)
	}
	fmt.Print(usage)
	mainthread.Call(func() { scr.Run(a.queue, a.present) })
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if *listDevices {
		if err := audio.ListDevices(os.Stdout); err != nil {
			glog.Exit(err)
		}
		return
	}

	var err error
	if *headless {
		err = runScope()
	} else {
		// glfw needs the main OS thread
		mainthread.Run(func() { err = runScope() })
	}
	if err != nil {
		glog.Exit(err)
	}
}

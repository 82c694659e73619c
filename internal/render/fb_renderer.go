package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"

	"github.com/rook-computer/ringclock/internal/assets"
	"github.com/rook-computer/ringclock/internal/state"
)

// FBRenderer renders to the Linux framebuffer using an offscreen canvas.
type FBRenderer struct {
	compositor

	DevicePath string
	FPS        int
	// FontData overrides the embedded font when set.
	FontData []byte
	Logger   logger
	Debug    bool

	fbDev   *fb.Device
	running atomic.Bool
	redraw  chan struct{}
}

func NewFBRenderer(devicePath string) *FBRenderer {
	return &FBRenderer{DevicePath: devicePath, FPS: FPS, redraw: make(chan struct{}, 1)}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	path := r.DevicePath
	if path == "" {
		path = "/dev/fb0"
	}
	dev, err := fb.Open(path)
	if err != nil {
		return err
	}
	r.fbDev = dev
	bounds := dev.Bounds()
	if r.Logger != nil {
		r.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	if r.redraw == nil {
		r.redraw = make(chan struct{}, 1)
	}

	data := r.FontData
	if len(data) == 0 {
		data = assets.FontTTF
	}
	r.mu.Lock()
	r.canvas = NewCanvas(bounds.Dx(), bounds.Dy(), NewFontSet(data, r.Logger))
	r.mu.Unlock()

	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

func (r *FBRenderer) Size() (int, int) {
	if r.fbDev == nil {
		return 0, 0
	}
	b := r.fbDev.Bounds()
	return b.Dx(), b.Dy()
}

// RedrawWithState draws the current screen and pushes it to the framebuffer.
func (r *FBRenderer) RedrawWithState(snap state.State) {
	if !r.running.Load() || r.fbDev == nil {
		return
	}
	width, height := r.Size()
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.compose(snap, width, height) {
		return
	}
	blitToFB(r.fbDev, r.canvas.Image())
}

func (r *FBRenderer) RequestRedraw() { requestRedraw(r.redraw) }

func (r *FBRenderer) Frame(snap state.State) image.Image {
	width, height := r.Size()
	return r.frame(snap, width, height)
}

// RunLoop continuously redraws at FPS until the context is done.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	lastLog := time.Now()
	runLoop(ctx, r.FPS, r.redraw, func() {
		r.RedrawWithState(store.Snapshot())
		if r.Debug && r.Logger != nil && time.Since(lastLog) > time.Second {
			r.Logger.Infof("fb", "heartbeat frame")
			lastLog = time.Now()
		}
	})
}

// blitToFB copies canvas onto the device, scaling nearest-neighbor when the
// sizes differ.
func blitToFB(dev draw.Image, canvas *image.RGBA) {
	bounds := dev.Bounds()
	src := canvas.Bounds()
	if bounds.Size() == src.Size() {
		draw.Draw(dev, bounds, canvas, src.Min, draw.Src)
		return
	}
	fbWidth, fbHeight := bounds.Dx(), bounds.Dy()
	srcWidth, srcHeight := src.Dx(), src.Dy()
	if srcWidth == 0 || srcHeight == 0 {
		return
	}
	for y := 0; y < fbHeight; y++ {
		sy := (y * srcHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * srcWidth) / fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}

package render

import (
	"context"
	"image"
	"sync/atomic"

	"github.com/rook-computer/ringclock/internal/assets"
	"github.com/rook-computer/ringclock/internal/state"
)

// ImageRenderer renders into memory only. The simulator serves its frames
// over HTTP and the export command writes them to disk.
type ImageRenderer struct {
	compositor

	Width  int
	Height int
	FPS    int
	// FontData overrides the embedded font when set.
	FontData []byte
	Logger   logger

	running atomic.Bool
	redraw  chan struct{}
	frames  atomic.Uint64
}

func NewImageRenderer(width, height int) *ImageRenderer {
	return &ImageRenderer{Width: width, Height: height, FPS: FPS, redraw: make(chan struct{}, 1)}
}

func (r *ImageRenderer) Start(ctx context.Context) error {
	if r.Width <= 0 || r.Height <= 0 {
		r.Width, r.Height = CanvasWidth, CanvasHeight
	}
	if r.redraw == nil {
		r.redraw = make(chan struct{}, 1)
	}
	data := r.FontData
	if len(data) == 0 {
		data = assets.FontTTF
	}
	r.mu.Lock()
	r.canvas = NewCanvas(r.Width, r.Height, NewFontSet(data, r.Logger))
	r.mu.Unlock()
	r.running.Store(true)
	if r.Logger != nil {
		r.Logger.Infof("render", "offscreen canvas %dx%d", r.Width, r.Height)
	}
	return nil
}

func (r *ImageRenderer) Stop() error {
	r.running.Store(false)
	return nil
}

func (r *ImageRenderer) Size() (int, int) { return r.Width, r.Height }

func (r *ImageRenderer) RedrawWithState(snap state.State) {
	if !r.running.Load() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.compose(snap, r.Width, r.Height) {
		return
	}
	r.frames.Add(1)
}

func (r *ImageRenderer) RequestRedraw() { requestRedraw(r.redraw) }

func (r *ImageRenderer) Frame(snap state.State) image.Image {
	return r.frame(snap, r.Width, r.Height)
}

// Frames counts frames drawn by RedrawWithState.
func (r *ImageRenderer) Frames() uint64 { return r.frames.Load() }

func (r *ImageRenderer) RunLoop(ctx context.Context, store *state.Store) {
	runLoop(ctx, r.FPS, r.redraw, func() {
		r.RedrawWithState(store.Snapshot())
	})
}

package render

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/rook-computer/ringclock/internal/state"
)

// compositor owns the canvas and the current screen shared by renderers.
type compositor struct {
	mu      sync.Mutex
	canvas  *Canvas
	current Screen
}

// SetScreen sets the current logical screen to be drawn.
func (c *compositor) SetScreen(screen Screen) {
	c.mu.Lock()
	c.current = screen
	c.mu.Unlock()
}

// compose draws snap onto the canvas, sized to the snapshot viewport or the
// fallback size when none was reported. Callers hold mu.
func (c *compositor) compose(snap state.State, fallbackWidth, fallbackHeight int) bool {
	if c.current == nil || c.canvas == nil {
		return false
	}
	width, height := snap.Width, snap.Height
	if width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}
	c.canvas.Resize(width, height)
	c.current.Draw(c.canvas, snap)
	return true
}

func (c *compositor) frame(snap state.State, fallbackWidth, fallbackHeight int) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.compose(snap, fallbackWidth, fallbackHeight) {
		return nil
	}
	return c.canvas.Snapshot()
}

// requestRedraw performs a non-blocking send; one pending request is enough.
func requestRedraw(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// runLoop calls draw at fps and whenever a redraw is requested, until ctx is done.
func runLoop(ctx context.Context, fps int, redraw <-chan struct{}, draw func()) {
	if fps <= 0 {
		fps = FPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			draw()
		case <-redraw:
			draw()
		}
	}
}

package render

import (
	"context"
	"image"
	"image/color"

	"github.com/rook-computer/ringclock/internal/state"
)

type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	// Size reports the presentation surface size, or zero when it has none.
	Size() (width int, height int)
	SetScreen(screen Screen)
	RunLoop(ctx context.Context, store *state.Store)
	RedrawWithState(snap state.State)
	// RequestRedraw asks the running loop to repaint before its next tick.
	RequestRedraw()
	// Frame draws snap offscreen and returns a copy of the result.
	Frame(snap state.State) image.Image
}

type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(r Drawer, s state.State)
}

// Drawer is an abstraction the renderer provides to screens to draw primitives
// without exposing canvas or framebuffer details.
type Drawer interface {
	// Size returns the canvas size (in pixels) that screens draw into.
	Size() (width int, height int)

	FillBackground(c color.Color)

	MeasureText(text string, style TextStyle) TextMetrics
	// DrawRotatedText draws text centered on (cx, cy), turned clockwise by deg.
	DrawRotatedText(text string, cx, cy, deg float64, style TextStyle)

	// DrawLine strokes an anti-aliased segment of the given width.
	DrawLine(x0, y0, x1, y1, width float64, c color.Color)

	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)
}

// TextStyle describes how to render text.
type TextStyle struct {
	Color color.Color
	Size  float64 // pixel size; 0 means renderer default
}

type TextMetrics struct {
	Width   int
	Height  int
	Ascent  int
	Descent int
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeStretch
)

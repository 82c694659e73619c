package render

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/ringclock/internal/state"
)

type fillScreen struct{}

func (fillScreen) Start(ctx context.Context) error { return nil }
func (fillScreen) Stop() error                     { return nil }
func (fillScreen) Draw(d Drawer, s state.State)    { d.FillBackground(white) }

func TestImageRenderer_CountsFrames(t *testing.T) {
	r := NewImageRenderer(64, 48)
	require.NoError(t, r.Start(t.Context()))
	t.Cleanup(func() { _ = r.Stop() })
	r.SetScreen(fillScreen{})

	snap := state.NewStore().Snapshot()
	r.RedrawWithState(snap)
	r.RedrawWithState(snap)
	assert.Equal(t, uint64(2), r.Frames())

	img := r.Frame(snap)
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
	assert.Equal(t, uint64(2), r.Frames())
}

func TestImageRenderer_IgnoresOversizeViewport(t *testing.T) {
	r := NewImageRenderer(64, 48)
	require.NoError(t, r.Start(t.Context()))
	t.Cleanup(func() { _ = r.Stop() })
	r.SetScreen(fillScreen{})

	snap := state.NewStore().Snapshot()
	snap.Width, snap.Height = 1<<62, 1<<62
	assert.NotPanics(t, func() { r.RedrawWithState(snap) })

	img := r.Frame(snap)
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
}

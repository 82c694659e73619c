package app

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/rook-computer/ringclock/internal/clock"
)

// Export renders the current state and saves it as
// clock_YYYYMMDD_HHMMSS.png in ExportDir, stamped with the local time of
// the request. It returns the written path.
func (app *App) Export() (string, error) {
	if app.Render == nil {
		return "", errors.New("renderer not configured")
	}
	snap := app.Store.Snapshot()
	if snap.Width <= 0 || snap.Height <= 0 {
		snap.Width, snap.Height = app.viewport()
	}
	img := app.Render.Frame(snap)
	if img == nil {
		return "", errors.New("no frame to export")
	}
	now := app.Now
	if now == nil {
		now = time.Now
	}
	return WritePNG(app.ExportDir, clock.ExportName(now())+".png", img)
}

// WritePNG encodes img into dir/name, creating dir when needed.
func WritePNG(dir, name string, img image.Image) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

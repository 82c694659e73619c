package app

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rook-computer/ringclock/internal/input"
	"github.com/rook-computer/ringclock/internal/web"
)

// APIHandlers connects the HTTP API to this app.
func (app *App) APIHandlers() web.APIV1Handlers {
	return web.APIV1Handlers{
		StateFunc:    app.stateView,
		ControlsFunc: app.controlViews,
		SelectFunc:   app.Select,
		ViewportFunc: app.Resize,
		FrameFunc:    app.frame,
		ExportFunc:   app.Export,
		KeyFunc:      app.remoteKey,
	}
}

func (app *App) stateView() web.StateView {
	snap := app.Store.Snapshot()
	width, height := app.viewport()
	return web.StateView{
		Zone:       snap.Zone.Label(),
		Theme:      snap.ThemeName,
		Mode:       snap.Mode.Label(),
		Width:      width,
		Height:     height,
		Background: hexColor(snap.Palette.BG),
		Foreground: hexColor(snap.Palette.FG),
	}
}

func (app *App) controlViews() []web.ControlView {
	controls := app.Controls()
	views := make([]web.ControlView, len(controls))
	for i, c := range controls {
		views[i] = web.ControlView{
			Source:  string(c.Source),
			Label:   c.Label,
			Options: c.Options,
			Value:   c.Value,
			X:       c.Position.X,
			Y:       c.Position.Y,
		}
	}
	return views
}

func (app *App) frame() image.Image {
	if app.Render == nil {
		return nil
	}
	snap := app.Store.Snapshot()
	if snap.Width <= 0 || snap.Height <= 0 {
		snap.Width, snap.Height = app.viewport()
	}
	return app.Render.Frame(snap)
}

func (app *App) remoteKey(name string) error {
	key, err := input.ParseKey(name)
	if err != nil {
		return err
	}
	if key == input.Exit && !app.RemoteExit {
		return fmt.Errorf("key %q is not accepted remotely", name)
	}
	return app.HandleKey(key)
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

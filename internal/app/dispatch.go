package app

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/rook-computer/ringclock/internal/clock"
	"github.com/rook-computer/ringclock/internal/input"
	"github.com/rook-computer/ringclock/internal/render/layout"
	"github.com/rook-computer/ringclock/internal/theme"
)

// Source names a selection control.
type Source string

const (
	SourceTimezone Source = "timezone"
	SourceTheme    Source = "theme"
	SourceMode     Source = "mode"
)

// maxViewport bounds each side of the viewport so a frame stays allocatable.
const maxViewport = 8192

var (
	ErrUnknownSource   = errors.New("unknown selection source")
	ErrInvalidViewport = errors.New("invalid viewport")
)

// Sources lists the selection controls in screen order.
func Sources() []Source { return []Source{SourceTimezone, SourceTheme, SourceMode} }

// selectHandler validates value and applies it to the store.
type selectHandler func(value string) error

func (app *App) selectHandlers() map[Source]selectHandler {
	return map[Source]selectHandler{
		SourceTimezone: app.selectZone,
		SourceTheme:    app.selectTheme,
		SourceMode:     app.selectMode,
	}
}

// Select applies value to the named control. An invalid value leaves the
// state untouched.
func (app *App) Select(source, value string) error {
	return app.do(func() error {
		if app.handlers == nil {
			app.handlers = app.selectHandlers()
		}
		key := Source(strings.ToLower(strings.TrimSpace(source)))
		handler, ok := app.handlers[key]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSource, source)
		}
		if err := handler(value); err != nil {
			return fmt.Errorf("select %s: %w", key, err)
		}
		app.logger().Infof("app", "%s set to %q", key, value)
		app.requestRedraw()
		return nil
	})
}

func (app *App) selectZone(value string) error {
	zone, err := clock.ParseZone(value)
	if err != nil {
		return err
	}
	app.Store.SetZone(zone)
	return nil
}

func (app *App) selectTheme(value string) error {
	if !theme.Has(value) {
		return fmt.Errorf("%w: %q", theme.ErrUnknownTheme, value)
	}
	app.Store.SetTheme(value)
	return nil
}

func (app *App) selectMode(value string) error {
	mode, err := theme.ParseMode(value)
	if err != nil {
		return err
	}
	app.Store.SetMode(mode)
	return nil
}

// Resize records a new viewport; control positions follow from it.
func (app *App) Resize(width, height int) error {
	if width <= 0 || height <= 0 || width > maxViewport || height > maxViewport {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	return app.do(func() error {
		app.Store.SetViewport(width, height)
		app.requestRedraw()
		return nil
	})
}

// Control is one selection widget: its options, current value and the
// top-left corner where it is placed below the dial.
type Control struct {
	Source   Source
	Label    string
	Options  []string
	Value    string
	Position image.Point
}

// Controls returns the selection widgets for the current viewport.
func (app *App) Controls() []Control {
	snap := app.Store.Snapshot()
	width, height := app.viewport()
	zonePos, themePos, modePos := layout.ControlRow(width, height)
	return []Control{
		{Source: SourceTimezone, Label: "Time zone", Options: clock.ZoneLabels(), Value: snap.Zone.Label(), Position: zonePos},
		{Source: SourceTheme, Label: "Theme", Options: theme.Names(), Value: snap.ThemeName, Position: themePos},
		{Source: SourceMode, Label: "Mode", Options: theme.ModeLabels(), Value: snap.Mode.Label(), Position: modePos},
	}
}

// HandleKey runs the action bound to key.
func (app *App) HandleKey(key input.Key) error {
	switch key {
	case input.Export:
		return app.do(func() error {
			path, err := app.Export()
			if err != nil {
				return err
			}
			app.logger().Infof("app", "exported %s", path)
			return nil
		})
	case input.Exit:
		app.logger().Infof("app", "exit key pressed")
		app.Exit(nil)
		return nil
	}
	return fmt.Errorf("unhandled key %q", key)
}

func (app *App) viewport() (int, int) {
	snap := app.Store.Snapshot()
	if snap.Width > 0 && snap.Height > 0 {
		return snap.Width, snap.Height
	}
	if app.Render != nil {
		return app.Render.Size()
	}
	return 0, 0
}

func (app *App) logger() Logger {
	if app.Logger == nil {
		return NoopLogger{}
	}
	return app.Logger
}

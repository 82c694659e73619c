package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/ringclock/internal/app/screens"
	"github.com/rook-computer/ringclock/internal/clock"
	"github.com/rook-computer/ringclock/internal/input"
	"github.com/rook-computer/ringclock/internal/render"
	"github.com/rook-computer/ringclock/internal/state"
	"github.com/rook-computer/ringclock/internal/system"
	"github.com/rook-computer/ringclock/internal/web"
)

type App struct {
	Store  *state.Store
	Render render.Renderer
	Web    web.Server
	Input  input.Source
	Logger Logger
	Clock  clock.Source
	// Now stamps export file names; nil means time.Now. Clock, which may
	// be frozen or offset, only drives what is drawn.
	Now func() time.Time

	// ExportDir receives PNG exports. Empty means the working directory.
	ExportDir string
	// GraphicsMode switches the console to KD_GRAPHICS while running.
	GraphicsMode bool
	// QRPayload, when set, is drawn as a QR code on the clock face.
	QRPayload string
	// RemoteExit lets the exit key arrive over HTTP (simulator only).
	RemoteExit bool
	Debug      bool

	screen   *screens.ClockScreen
	handlers map[Source]selectHandler

	dispatchMu sync.Mutex
	loop       atomic.Pointer[eventLoop]

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server, keys input.Source) *App {
	return &App{
		Store:  store,
		Render: renderer,
		Web:    webServer,
		Input:  keys,
		Logger: NoopLogger{},
		Clock:  clock.RealSource{},
		exitCh: make(chan error, 1),
	}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Attach installs the clock screen on the renderer and seeds the viewport
// from the renderer size. The renderer must already be started.
func (app *App) Attach() {
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Clock == nil {
		app.Clock = clock.RealSource{}
	}
	if app.screen == nil {
		app.screen = screens.NewClockScreen(app.Clock, app.Logger)
		app.screen.QRPayload = app.QRPayload
	}
	if snap := app.Store.Snapshot(); snap.Width <= 0 || snap.Height <= 0 {
		if width, height := app.Render.Size(); width > 0 && height > 0 {
			app.Store.SetViewport(width, height)
		}
	}
	app.Render.SetScreen(app.screen)
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}

	if app.Render == nil {
		app.Render = render.NewFBRenderer("")
	}
	switch r := app.Render.(type) {
	case *render.FBRenderer:
		r.Logger = app.Logger
		r.Debug = app.Debug
	case *render.ImageRenderer:
		r.Logger = app.Logger
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if app.GraphicsMode {
		restore := system.EnterGraphicsConsole(app.Logger)
		defer restore()
	}

	app.Attach()
	if err := app.screen.Start(ctx); err != nil {
		return err
	}
	defer app.screen.Stop()

	snap := app.Store.Snapshot()
	app.Logger.Infof("app", "clock started: zone=%s theme=%s mode=%s size=%dx%d",
		snap.Zone.Label(), snap.ThemeName, snap.Mode.Label(), snap.Width, snap.Height)

	// Force immediate first redraw instead of waiting for the first tick.
	app.Render.RedrawWithState(snap)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runEvents(loopCtx)
	}()

	if app.Input != nil {
		if err := app.Input.Start(loopCtx); err != nil {
			app.Logger.Errorf("input", "start failed: %v", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				app.watchKeys(loopCtx, app.Input.Events())
			}()
		}
	}

	var err error
	if app.Web != nil {
		if err = app.Web.Start(loopCtx); err != nil {
			app.Logger.Errorf("web", "start failed: %v", err)
		}
	}

	// Wait for completion (requested by a key or the caller), then exit.
	if err == nil {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case err = <-app.exitCh:
		}
	}
	cancel()
	if app.Web != nil {
		_ = app.Web.Stop()
	}
	if app.Input != nil {
		_ = app.Input.Stop()
	}
	wg.Wait()
	app.Logger.Infof("app", "stopped")
	return err
}

// Stop requests a clean shutdown of a running Start.
func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}

func (app *App) watchKeys(ctx context.Context, keys <-chan input.Key) {
	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-keys:
			if !ok {
				return
			}
			if err := app.HandleKey(key); err != nil {
				app.Logger.Errorf("input", "key %s: %v", key, err)
			}
		}
	}
}

func (app *App) requestRedraw() {
	if app.Render != nil {
		app.Render.RequestRedraw()
	}
}

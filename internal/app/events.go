package app

import "context"

type event struct {
	run  func() error
	done chan error
}

type eventLoop struct {
	events chan event
	done   chan struct{}
}

// runEvents processes selection, resize and key events one at a time until
// ctx is done.
func (app *App) runEvents(ctx context.Context) {
	loop := &eventLoop{events: make(chan event), done: make(chan struct{})}
	app.loop.Store(loop)
	defer func() {
		app.loop.CompareAndSwap(loop, nil)
		close(loop.done)
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-loop.events:
			app.dispatchMu.Lock()
			ev.done <- ev.run()
			app.dispatchMu.Unlock()
		}
	}
}

// do runs fn on the event loop and waits for its result. Without a running
// loop fn runs on the caller's goroutine, still serialized with other events.
func (app *App) do(fn func() error) error {
	if loop := app.loop.Load(); loop != nil {
		ev := event{run: fn, done: make(chan error, 1)}
		select {
		case loop.events <- ev:
			return <-ev.done
		case <-loop.done:
		}
	}
	app.dispatchMu.Lock()
	defer app.dispatchMu.Unlock()
	return fn()
}

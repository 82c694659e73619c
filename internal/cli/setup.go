package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/rook-computer/ringclock/internal/app"
	"github.com/rook-computer/ringclock/internal/config"
	"github.com/rook-computer/ringclock/internal/state"
	"github.com/rook-computer/ringclock/internal/system"
	"github.com/rook-computer/ringclock/internal/theme"
)

// NewLogger builds the zerolog-backed logger. The returned close function
// releases the log file, if any.
func NewLogger(cfg config.LogConfig) (app.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	l, err := app.NewZerologLogger(w, cfg.Level, cfg.Format)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return l, closeFn, nil
}

// NewStore seeds the state from the configured selections. In auto mode the
// desktop color-scheme preference picks dark or light.
func NewStore(ctx context.Context, cfg config.ClockConfig, runner system.Runner, log app.Logger) (*state.Store, error) {
	zone, err := cfg.ParseZone()
	if err != nil {
		return nil, err
	}
	mode, auto, err := cfg.ParseMode()
	if err != nil {
		return nil, err
	}
	if auto {
		mode = theme.Light
		if system.PrefersDark(ctx, runner) {
			mode = theme.Dark
		}
		log.Infof("main", "color scheme preference: %s", mode.Label())
	}

	store := state.NewStore()
	store.SetZone(zone)
	store.SetTheme(cfg.Theme)
	store.SetMode(mode)
	return store, nil
}

// LoadFont returns the font file at path, or nil for the embedded face.
func LoadFont(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return data, nil
}

// ControlURL is the address encoded in the on-screen QR code.
func ControlURL(cfg config.WebConfig) string {
	if cfg.PublicURL != "" {
		return cfg.PublicURL
	}
	host, port, err := net.SplitHostPort(cfg.Listen)
	if err != nil {
		return ""
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		if h, err := os.Hostname(); err == nil && h != "" {
			host = h
		} else {
			host = "localhost"
		}
	}
	if port == "80" {
		return "http://" + host + "/"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// IsQuit reports whether err is only the result of an interrupt.
func IsQuit(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

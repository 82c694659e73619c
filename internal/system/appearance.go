package system

import (
	"context"
	"os"
	"strings"
	"time"
)

const queryTimeout = 2 * time.Second

// PrefersDark reports the desktop's dark color-scheme preference.
// It asks gsettings first and falls back to GTK_THEME; with no signal
// the answer is false, like a browser whose dark-scheme query does not match.
func PrefersDark(ctx context.Context, runner Runner) bool {
	return prefersDark(ctx, runner, os.Getenv)
}

func prefersDark(ctx context.Context, runner Runner, getenv func(string) string) bool {
	if runner != nil {
		queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
		out, _, err := runner.Run(queryCtx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
		cancel()
		if err == nil {
			switch strings.Trim(strings.TrimSpace(out), "'\"") {
			case "prefer-dark":
				return true
			case "prefer-light", "default":
				return false
			}
		}
	}
	return strings.HasSuffix(strings.ToLower(getenv("GTK_THEME")), ":dark")
}

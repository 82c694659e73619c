package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rook-computer/ringclock/internal/app"
	"github.com/rook-computer/ringclock/internal/clock"
	"github.com/rook-computer/ringclock/internal/render"
	"github.com/rook-computer/ringclock/internal/system"
)

// NewExportCommand renders a single frame to a PNG without a display.
func NewExportCommand() *cobra.Command {
	var (
		at     string
		width  int
		height int
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render one clock frame to clock_YYYYMMDD_HHMMSS.png",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger, closeLog, err := NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer closeLog()

			instant, err := ParseInstant(at, time.Now())
			if err != nil {
				return err
			}
			if width <= 0 {
				width = cfg.Display.Width
			}
			if height <= 0 {
				height = cfg.Display.Height
			}
			if out == "" {
				out = cfg.Export.Dir
			}

			store, err := NewStore(cmd.Context(), cfg.Clock, system.ShellRunner{Logger: logger}, logger)
			if err != nil {
				return err
			}
			font, err := LoadFont(cfg.Font.Path)
			if err != nil {
				return err
			}

			renderer := render.NewImageRenderer(width, height)
			renderer.FontData = font
			renderer.Logger = logger
			if err := renderer.Start(cmd.Context()); err != nil {
				return err
			}
			defer renderer.Stop()

			a := app.New(store, renderer, nil, nil)
			a.Logger = logger
			a.Clock = clock.FixedSource{T: instant}
			a.Now = func() time.Time { return instant }
			a.ExportDir = out
			a.Attach()

			path, err := a.Export()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "instant to draw: RFC 3339, or HH:MM[:SS] today (default now)")
	cmd.Flags().IntVar(&width, "out-width", 0, "image width (default display.width)")
	cmd.Flags().IntVar(&height, "out-height", 0, "image height (default display.height)")
	cmd.Flags().StringVar(&out, "out", "", "output directory (default export.dir)")
	return cmd
}

// ParseInstant accepts RFC 3339 timestamps or a wall time on now's date in
// the local zone. Empty means now.
func ParseInstant(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.ParseInLocation(layout, value, now.Location())
		if err != nil {
			continue
		}
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid instant %q: want RFC 3339 or HH:MM[:SS]", value)
}

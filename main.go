package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/ringclock/internal/app"
	"github.com/rook-computer/ringclock/internal/cli"
	"github.com/rook-computer/ringclock/internal/input"
	"github.com/rook-computer/ringclock/internal/render"
	"github.com/rook-computer/ringclock/internal/system"
	"github.com/rook-computer/ringclock/internal/web"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "ringclock:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ringclock",
		Short:         "Rotating-ring analog clock for the Linux framebuffer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDevice,
	}
	cli.AddConfigFlags(cmd.PersistentFlags())
	cmd.AddCommand(cli.NewExportCommand())
	return cmd
}

func runDevice(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	if cfg.Log.Stdio != "" {
		if err := redirectStdIO(cfg.Log.Stdio); err != nil {
			fmt.Fprintln(os.Stderr, "stdio log redirect error:", err)
		}
	}

	logger, closeLog, err := cli.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cli.NewStore(ctx, cfg.Clock, system.ShellRunner{Logger: logger}, logger)
	if err != nil {
		return err
	}
	font, err := cli.LoadFont(cfg.Font.Path)
	if err != nil {
		return err
	}

	renderer := render.NewFBRenderer(cfg.Display.Device)
	renderer.FPS = cfg.Display.FPS
	renderer.FontData = font

	a := app.New(store, renderer, nil, input.NewEvdevSource(logger))
	a.Logger = logger
	a.ExportDir = cfg.Export.Dir
	a.GraphicsMode = cfg.Display.GraphicsMode
	a.Debug = cfg.Log.Level == "debug"

	if cfg.Web.Enabled {
		server := web.NewHTTPServer(cfg.Web.Listen, a.APIHandlers())
		server.StaticDir = cfg.Web.StaticDir
		server.DevMode = cfg.Web.Dev
		server.Logger = logger
		a.Web = server
		if cfg.Web.ShowQR {
			a.QRPayload = cli.ControlURL(cfg.Web)
		}
	}

	if err := a.Start(ctx); !cli.IsQuit(err) {
		return err
	}
	return nil
}

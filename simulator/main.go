package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
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
		fmt.Fprintln(os.Stderr, "ringclock-sim:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ringclock-sim",
		Short:         "Run the clock offscreen and serve it to a browser",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSimulator,
	}
	cli.AddConfigFlags(cmd.PersistentFlags())
	cmd.AddCommand(cli.NewExportCommand())
	return cmd
}

func runSimulator(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	logger, closeLog, err := cli.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	processCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cli.NewStore(processCtx, cfg.Clock, system.ShellRunner{Logger: logger}, logger)
	if err != nil {
		return err
	}
	font, err := cli.LoadFont(cfg.Font.Path)
	if err != nil {
		return err
	}

	renderer := render.NewImageRenderer(cfg.Display.Width, cfg.Display.Height)
	renderer.FPS = cfg.Display.FPS
	renderer.FontData = font

	simClock := NewSimClock()
	a := app.New(store, renderer, nil, input.NewNoopSource())
	a.Logger = logger
	a.Clock = simClock
	a.ExportDir = cfg.Export.Dir
	a.RemoteExit = true
	control := NewSimControl(a, simClock)

	// The simulator is only reachable through the browser, so the web
	// server is always on.
	server := web.NewHTTPServer(cfg.Web.Listen, a.APIHandlers())
	server.StaticDir = cfg.Web.StaticDir
	server.DevMode = cfg.Web.Dev
	server.Logger = logger
	server.Routes = func(r chi.Router) { registerSimEndpoints(r, control) }
	a.Web = server
	if cfg.Web.ShowQR {
		a.QRPayload = cli.ControlURL(cfg.Web)
	}

	fmt.Println("ringclock simulator on", displayAddr(cfg.Web.Listen))
	if err := a.Start(processCtx); !cli.IsQuit(err) {
		return err
	}
	return nil
}

func displayAddr(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "http://127.0.0.1" + addr + "/"
	}
	if addr == "" {
		return "http://127.0.0.1:8080/"
	}
	return "http://" + addr + "/"
}

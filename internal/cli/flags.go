// Package cli holds the command-line wiring shared by the device binary and
// the simulator.
package cli

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rook-computer/ringclock/internal/config"
)

// flagKeys maps CLI flags onto configuration keys. A flag only overrides
// file and environment values when it was set explicitly.
var flagKeys = map[string]string{
	"zone":        "clock.zone",
	"theme":       "clock.theme",
	"mode":        "clock.mode",
	"device":      "display.device",
	"fps":         "display.fps",
	"no-graphics": "display.graphics_mode",
	"width":       "display.width",
	"height":      "display.height",
	"font":        "font.path",
	"export-dir":  "export.dir",
	"web":         "web.enabled",
	"listen":      "web.listen",
	"dev":         "web.dev",
	"static-dir":  "web.static_dir",
	"show-qr":     "web.show_qr",
	"public-url":  "web.public_url",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"log-file":    "log.file",
	"stdio-log":   "log.stdio",
}

// AddConfigFlags registers the configuration flags on fs.
func AddConfigFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default searches ./ringclock.yaml, /etc/ringclock, ~/.config/ringclock)")
	fs.String("zone", "", `initial time zone ("Local Time", UTC, Europe/Rome, ...)`)
	fs.String("theme", "", "initial theme (Green, Pink, Salmon, Blue, B&W)")
	fs.String("mode", "", "display mode: auto, dark or light")
	fs.String("device", "", "framebuffer device")
	fs.Int("fps", 0, "frames per second")
	fs.Bool("no-graphics", false, "leave the console in text mode")
	fs.Int("width", 0, "offscreen canvas width")
	fs.Int("height", 0, "offscreen canvas height")
	fs.String("font", "", "TrueType/OpenType font file for the dial numerals")
	fs.String("export-dir", "", "directory for PNG exports")
	fs.Bool("web", false, "enable the HTTP control server")
	fs.String("listen", "", "http listen address")
	fs.Bool("dev", false, "enable permissive CORS for local UI development")
	fs.String("static-dir", "", "serve the web UI from this directory instead of the embedded assets")
	fs.Bool("show-qr", false, "draw a QR code with the control URL")
	fs.String("public-url", "", "control URL encoded in the QR code")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-format", "", "log format (console, json)")
	fs.String("log-file", "", "append logs to this file instead of stderr")
	fs.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file")
}

// LoadConfig reads configuration with explicitly set flags taking priority
// over environment variables, the config file and defaults.
func LoadConfig(fs *pflag.FlagSet) (*config.Config, error) {
	v := viper.New()
	if err := applyFlags(v, fs); err != nil {
		return nil, err
	}
	path, _ := fs.GetString("config")
	return config.LoadWith(v, path)
}

func applyFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		switch f.Value.Type() {
		case "bool":
			var b bool
			b, err = fs.GetBool(f.Name)
			if f.Name == "no-graphics" {
				b = !b
			}
			v.Set(key, b)
		case "int":
			var n int
			n, err = fs.GetInt(f.Name)
			v.Set(key, n)
		default:
			v.Set(key, f.Value.String())
		}
		if err != nil {
			err = fmt.Errorf("flag --%s: %w", f.Name, err)
		}
	})
	return err
}

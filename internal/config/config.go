// Package config provides configuration management for ringclock using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rook-computer/ringclock/internal/clock"
	"github.com/rook-computer/ringclock/internal/theme"
)

// Default configuration values.
const (
	defaultFPS          = 30
	defaultWidth        = 1280
	defaultHeight       = 800
	defaultListenAddr   = ":8080"
	defaultDevicePath   = "/dev/fb0"
	maxFPS              = 120
	ModeAuto            = "auto"
	EnvPrefix           = "RINGCLOCK"
	defaultConfigName   = "ringclock"
	defaultExportDir    = "."
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
	defaultThemeName    = "Green"
	defaultZoneSelector = clock.LocalLabel
)

// Config holds all configuration for the application.
type Config struct {
	Clock   ClockConfig   `mapstructure:"clock"`
	Display DisplayConfig `mapstructure:"display"`
	Font    FontConfig    `mapstructure:"font"`
	Export  ExportConfig  `mapstructure:"export"`
	Web     WebConfig     `mapstructure:"web"`
	Log     LogConfig     `mapstructure:"log"`
}

// ClockConfig holds the initial selections.
type ClockConfig struct {
	Zone  string `mapstructure:"zone"`
	Theme string `mapstructure:"theme"`
	Mode  string `mapstructure:"mode"` // auto, dark, light
}

type DisplayConfig struct {
	Device       string `mapstructure:"device"`
	FPS          int    `mapstructure:"fps"`
	GraphicsMode bool   `mapstructure:"graphics_mode"`
	// Width and Height size the offscreen canvas of the simulator and export.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type FontConfig struct {
	Path string `mapstructure:"path"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type WebConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Listen    string `mapstructure:"listen"`
	Dev       bool   `mapstructure:"dev"`
	StaticDir string `mapstructure:"static_dir"`
	ShowQR    bool   `mapstructure:"show_qr"`
	PublicURL string `mapstructure:"public_url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console, json
	File   string `mapstructure:"file"`
	Stdio  string `mapstructure:"stdio"`
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
// Environment variables are prefixed with RINGCLOCK_ and use underscores for nesting.
// Example: RINGCLOCK_CLOCK_THEME=Pink.
func Load(configPath string) (*Config, error) {
	return LoadWith(viper.New(), configPath)
}

// LoadWith is Load on a caller-provided viper instance, so CLI flags bound
// to v override file and environment values.
func LoadWith(v *viper.Viper, configPath string) (*Config, error) {
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/ringclock")
		v.AddConfigPath("$HOME/.config/ringclock")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not found is OK - defaults and env vars apply.
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("clock.zone", defaultZoneSelector)
	v.SetDefault("clock.theme", defaultThemeName)
	v.SetDefault("clock.mode", ModeAuto)

	v.SetDefault("display.device", defaultDevicePath)
	v.SetDefault("display.fps", defaultFPS)
	v.SetDefault("display.graphics_mode", true)
	v.SetDefault("display.width", defaultWidth)
	v.SetDefault("display.height", defaultHeight)

	v.SetDefault("font.path", "")
	v.SetDefault("export.dir", defaultExportDir)

	v.SetDefault("web.enabled", false)
	v.SetDefault("web.listen", defaultListenAddr)
	v.SetDefault("web.dev", false)
	v.SetDefault("web.static_dir", "")
	v.SetDefault("web.show_qr", false)
	v.SetDefault("web.public_url", "")

	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("log.file", "")
	v.SetDefault("log.stdio", "")
}

// Validate checks selections against the fixed catalogs and numeric ranges.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Clock.ParseZone(); err != nil {
		errs = append(errs, fmt.Errorf("clock.zone: %w", err))
	}
	if !theme.Has(c.Clock.Theme) {
		errs = append(errs, fmt.Errorf("clock.theme: %w: %q", theme.ErrUnknownTheme, c.Clock.Theme))
	}
	if _, _, err := c.Clock.ParseMode(); err != nil {
		errs = append(errs, fmt.Errorf("clock.mode: %w", err))
	}
	if c.Display.FPS < 1 || c.Display.FPS > maxFPS {
		errs = append(errs, fmt.Errorf("display.fps must be between 1 and %d, got %d", maxFPS, c.Display.FPS))
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func (c ClockConfig) ParseZone() (clock.Zone, error) { return clock.ParseZone(c.Zone) }

// ParseMode returns the configured mode; auto is false when the mode is forced.
func (c ClockConfig) ParseMode() (mode theme.Mode, auto bool, err error) {
	if c.Mode == "" || strings.EqualFold(strings.TrimSpace(c.Mode), ModeAuto) {
		return theme.Dark, true, nil
	}
	mode, err = theme.ParseMode(c.Mode)
	return mode, false, err
}

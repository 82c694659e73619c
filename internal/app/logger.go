package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// ZerologLogger adapts zerolog to the component logger used across packages.
type ZerologLogger struct{ log zerolog.Logger }

// NewZerologLogger writes to w at level. Format "json" emits JSON lines;
// anything else uses the human-readable console writer.
func NewZerologLogger(w io.Writer, level, format string) (ZerologLogger, error) {
	lvl := zerolog.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return ZerologLogger{}, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}
	if !strings.EqualFold(format, "json") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	}
	return ZerologLogger{log: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}, nil
}

func (l ZerologLogger) Infof(component string, format string, args ...interface{}) {
	l.log.Info().Str("component", component).Msgf(format, args...)
}

func (l ZerologLogger) Errorf(component string, format string, args ...interface{}) {
	l.log.Error().Str("component", component).Msgf(format, args...)
}

// Zerolog exposes the underlying logger.
func (l ZerologLogger) Zerolog() zerolog.Logger { return l.log }

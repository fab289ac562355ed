// Package cli implements the galaxyprofile command-line interface.
//
// Commands:
//   - generate: fetch GitHub data and write the four SVG documents
//   - init: wizard that writes config.yml
//   - serve: render documents on request over HTTP
//   - mcp: stdio MCP server with render tools
//   - cache: inspect and clear the API and render cache
//
// Log lines go to stderr through charmbracelet/log, colored with the same
// palette as the status output. --verbose switches to debug level and also
// logs pipeline, cache and HTTP events.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// newLogger returns a leveled logger stamping each line with the wall
// clock, e.g. "14:32:01.45 INFO fetched profile data".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	l.SetStyles(logStyles())
	return l
}

func logStyles() *log.Styles {
	s := log.DefaultStyles()
	s.Timestamp = lipgloss.NewStyle().Foreground(colorDim)
	s.Key = lipgloss.NewStyle().Foreground(colorGray)
	s.Levels[log.DebugLevel] = s.Levels[log.DebugLevel].Foreground(colorBlue)
	s.Levels[log.InfoLevel] = s.Levels[log.InfoLevel].Foreground(colorCyan)
	s.Levels[log.WarnLevel] = s.Levels[log.WarnLevel].Foreground(colorYellow)
	s.Levels[log.ErrorLevel] = s.Levels[log.ErrorLevel].Foreground(colorRed)
	s.Keys["error"] = lipgloss.NewStyle().Foreground(colorRed)
	return s
}

// stopwatch times a command and reports its total duration.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// finish logs msg with the elapsed time: "Generated 4 files (1.234s)".
func (s *stopwatch) finish(msg string) {
	s.logger.Infof("%s (%s)", msg, s.elapsed())
}

func (s *stopwatch) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Millisecond)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() outside
// a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

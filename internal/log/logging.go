// Package log builds the slog.Logger used by the natsort commands.
//
// Logs go to the console writer (stderr in the CLI) and never to stdout,
// which carries keys and sorted values.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below Debug and is printed as TRACE.
const LevelTrace slog.Level = -8

// ParseLevel maps a level name to its slog.Level. Unknown names give Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}

// SetupLogger returns a text logger writing to console and, when logFile is
// set, appending the same lines to that file. closeFn releases the file and is
// never nil.
func SetupLogger(logLevel, logFile string, console io.Writer) (logger *slog.Logger, closeFn func() error, err error) {
	out := console
	closeFn = func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(console, f)
		closeFn = f.Close
	}
	h := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:       ParseLevel(logLevel),
		ReplaceAttr: replaceLevel,
	})
	return slog.New(h), closeFn, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Package logging configures structured logging for dirgate on top of
// log/slog, with automatic redaction of credential-bearing attributes.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"dirgate-hq/dirgate/pkg/config"
)

// redactedKeys are attribute keys whose values are never written to logs.
var redactedKeys = map[string]bool{
	"client_secret": true,
	"authorization": true,
	"access_token":  true,
}

// New creates a *slog.Logger from the logging configuration. If writer is
// nil, os.Stderr is used (stdout belongs to the MCP stdio transport). The
// returned LevelVar adjusts the minimum level at runtime, which is how a
// config reload changes verbosity without rebuilding the logger.
func New(cfg config.LoggingConfig, writer io.Writer) (*slog.Logger, *slog.LevelVar, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if writer == nil {
		writer = os.Stderr
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	opts := &slog.HandlerOptions{
		Level:       levelVar,
		AddSource:   cfg.AddSource,
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json", "":
		handler = slog.NewJSONHandler(writer, opts)
	case "text":
		handler = slog.NewTextHandler(writer, opts)
	default:
		return nil, nil, fmt.Errorf("invalid log format %q (expected json or text)", cfg.Format)
	}

	return slog.New(handler), levelVar, nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (expected debug, info, warn, or error)", level)
	}
}

func redactAttr(groups []string, a slog.Attr) slog.Attr {
	if redactedKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lepinkainen/videodash/config"
)

// New creates a zerolog.Logger for the client. The dashboard owns the terminal,
// so logs go to cfg.LogFile unless it is "-".
// The returned closer must be called on exit.
func New(cfg *config.Config, version string) (zerolog.Logger, io.Closer, error) {
	out, closer, err := openOutput(cfg.LogFile)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != os.Stderr,
	}
	logger := zerolog.New(output).
		With().
		Timestamp().
		Str("app", "videodash").
		Str("version", version).
		Logger().
		Level(parseLevel(cfg.LogLevel))

	return logger, closer, nil
}

func openOutput(path string) (io.Writer, io.Closer, error) {
	if path == "-" {
		return os.Stderr, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f, nil
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

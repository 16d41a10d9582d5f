package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// NewLogger builds the application logger from lc. When lc.File is set the
// log goes there, since stderr belongs to the TUI. The returned closer must be
// called on shutdown.
func NewLogger(lc LogConfig, prefix string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if lc.File != "" {
		path := ExpandHome(lc.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Package logging holds the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	logger *log.Logger
	file   *os.File
)

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "startpage",
		Level:           log.WarnLevel,
	})
}

// L returns the shared logger.
func L() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLevel parses and applies a level name ("debug", "info", "warn", "error").
func SetLevel(name string) error {
	level, err := log.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	L().SetLevel(level)
	return nil
}

// SetOutput redirects the shared logger.
func SetOutput(w io.Writer) {
	L().SetOutput(w)
}

// ToFile sends log output to path, creating parent directories. The previous
// log file, if any, is closed. The returned func restores stderr.
func ToFile(path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	prev := file
	file = f
	logger.SetOutput(f)
	mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}

	return func() error {
		mu.Lock()
		defer mu.Unlock()
		if file != f {
			return nil
		}
		logger.SetOutput(os.Stderr)
		file = nil
		return f.Close()
	}, nil
}

// ABOUTME: Diagnostic logger for the TUI that writes to a log file
// ABOUTME: Keeps failures off the terminal display while still capturing them

package debuglog

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	logFile *os.File
	logger  zerolog.Logger
	enabled bool
)

// Init initializes the diagnostic logger under the config directory.
// If configDir is empty, logging is disabled.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		enabled = false
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		enabled = false
		return err
	}

	logPath := filepath.Join(configDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		enabled = false
		return err
	}

	logFile = f
	logger = zerolog.New(f).With().Timestamp().Logger()
	enabled = true
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	enabled = false
}

// Error logs a failed operation. Failures surfaced here are diagnostic
// only; the UI shows no error messaging for them.
func Error(op string, err error) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || err == nil {
		return
	}
	logger.Error().Str("op", op).Err(err).Msg("request failed")
}

// Warn logs a non-fatal condition
func Warn(op, msg string) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Warn().Str("op", op).Msg(msg)
}

// Info logs an informational event
func Info(op, msg string) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Info().Str("op", op).Msg(msg)
}

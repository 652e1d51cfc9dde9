// Package logging wires the process-wide slog logger. The TUI owns
// stdout, so interactive commands log JSON lines to a file under the
// state directory; plain CLI commands log colored lines to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Mode selects where log output goes.
type Mode int

const (
	// Console writes colored human-readable lines to stderr.
	Console Mode = iota
	// File appends JSON lines to the log file.
	File
)

// Init installs the default logger for the given mode and returns a
// close function. The close function is a no-op in Console mode.
func Init(mode Mode) (func() error, error) {
	level := levelFromEnv()

	if mode == Console {
		slog.SetDefault(slog.New(NewConsoleHandler(os.Stderr, level)))
		return func() error { return nil }, nil
	}

	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})))
	return f.Close, nil
}

// InitWriter installs a JSON logger on w. Used by tests and by demo
// mode, where the log file would outlive the throwaway database.
func InitWriter(w io.Writer) {
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelFromEnv()})))
}

// FilePath resolves the log file path in priority order:
// 1. TUTORA_LOG environment variable
// 2. $XDG_STATE_HOME/tutora/tutora.log
// 3. ~/.local/state/tutora/tutora.log
func FilePath() (string, error) {
	if p := os.Getenv("TUTORA_LOG"); p != "" {
		return p, ensureDir(p)
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}

	p := filepath.Join(stateHome, "tutora", "tutora.log")
	return p, ensureDir(p)
}

// levelFromEnv returns debug when TUTORA_DEBUG is set, info otherwise.
func levelFromEnv() slog.Level {
	if os.Getenv("TUTORA_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

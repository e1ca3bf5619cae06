// Package logger builds the application's zap logger. The TUI owns the
// terminal, so output goes to a file.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/persona/internal/config"
)

// New returns a production logger when cfg selects production and a
// development logger otherwise. Both write to cfg.Log.File, or to
// DefaultLogPath when that is empty.
func New(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	}

	if cfg.Log.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}

	path := cfg.Log.File
	if path == "" {
		path = DefaultLogPath()
	}
	if path != "stderr" && path != "stdout" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}

	return zc.Build()
}

// DefaultLogPath returns $XDG_STATE_HOME/persona/persona.log, falling back
// to ~/.local/state/persona/persona.log.
func DefaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "persona.log")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "persona", "persona.log")
}

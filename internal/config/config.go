package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const DefaultDocumentPath = "design.json"

// DocumentPath returns the design document from LAYERFILL_DOCUMENT,
// falling back to DefaultDocumentPath.
func DocumentPath() string {
	if env := os.Getenv("LAYERFILL_DOCUMENT"); env != "" {
		return env
	}
	return DefaultDocumentPath
}

// StorePath returns the image database from LAYERFILL_STORE, falling back
// to layerfill/images.db under the XDG data directory.
func StorePath() string {
	if env := os.Getenv("LAYERFILL_STORE"); env != "" {
		return env
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "layerfill", "images.db")
}

// LogLevel returns LAYERFILL_LOG_LEVEL, "info" when unset
func LogLevel() string {
	if env := os.Getenv("LAYERFILL_LOG_LEVEL"); env != "" {
		return env
	}
	return "info"
}

// ParseLevel maps debug, info, warn and error to slog levels
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// NewLogger returns a colorized logger writing to w
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

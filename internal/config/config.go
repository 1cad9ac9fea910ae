package config

import (
	"os"
	"time"
)

// Render constants. These are fixed for now; command line switches for them
// are planned but out of scope.
const (
	// Refresh is the sampling and redraw cadence.
	Refresh = 500 * time.Millisecond
	// HistoryHeight is the sparkline block height in rows.
	HistoryHeight = 10
	// HistoryDivisor subsamples history pushes: one push every N ticks, so
	// the visible window spans longer than the raw refresh rate.
	HistoryDivisor = 4
	// MaxGraphWidth bounds the history backing store and the widest bar.
	MaxGraphWidth = 512
	// MinGraphWidth keeps bars legible on narrow terminals.
	MinGraphWidth = 20
	// GraphMargin is reserved for bar ends and labels.
	GraphMargin = 12
	// MaxDebugLines caps the tail buffer.
	MaxDebugLines = 12
)

// Config carries runtime options for sidecar.
type Config struct {
	// TailPath is the optional file to watch tail -f style. Empty disables
	// the debug stream.
	TailPath string
	// LogPath receives diagnostic logs while the TUI owns the terminal.
	// Empty discards them.
	LogPath string
}

func Default() Config {
	return Config{}
}

// FromArgs parses the command line (zero or one positional argument, the tail
// path) and environment overrides.
func FromArgs(args []string) Config {
	cfg := Default()
	if len(args) > 0 {
		cfg.TailPath = args[0]
	}
	if v := os.Getenv("SIDECAR_LOG"); v != "" {
		cfg.LogPath = v
	}
	return cfg
}

// GraphWidth derives the bar/sparkline width from the terminal column count,
// clamped to the documented bounds.
func GraphWidth(cols int) int {
	w := cols - GraphMargin
	if w > MaxGraphWidth {
		w = MaxGraphWidth
	}
	if w < MinGraphWidth {
		w = MinGraphWidth
	}
	return w
}

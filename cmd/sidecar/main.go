// sidecar watches a file tail -f style while keeping an eye on system
// resources. Meant to run in a small window beside another terminal session.
//
// Usage: sidecar [optional file to watch]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/sidecar-sh/sidecar/internal/config"
	"github.com/sidecar-sh/sidecar/internal/sampler"
	"github.com/sidecar-sh/sidecar/internal/tail"
	"github.com/sidecar-sh/sidecar/internal/ui"
)

func main() {
	cfg := config.FromArgs(os.Args[1:])

	startupLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// The TUI owns the terminal once it starts, so per-tick diagnostics go
	// to a file when SIDECAR_LOG names one and nowhere otherwise.
	var sink io.Writer = io.Discard
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			startupLog.Warn().Err(err).Str("path", cfg.LogPath).Msg("cannot open log sink")
		} else {
			defer f.Close()
			sink = f
		}
	}
	runLog := zerolog.New(sink).With().Timestamp().Logger()

	// The debug stream is optional: report the failure and run without it.
	var tailer *tail.Tailer
	if cfg.TailPath != "" {
		t, err := tail.Open(cfg.TailPath, config.MaxDebugLines)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to load debug file %s: %v\n", cfg.TailPath, err)
		} else {
			defer t.Close()
			tailer = t
		}
	}

	samp := sampler.New(sampler.System(), runLog)
	if err := samp.Prime(); err != nil {
		startupLog.Fatal().Err(err).Msg("counter source unavailable")
	}

	if err := ui.Run(ui.New(samp, tailer)); err != nil {
		startupLog.Fatal().Err(err).Msg("dashboard terminated")
	}
}

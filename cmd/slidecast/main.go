// Command slidecast is the CLI entrypoint for the slideshow video generator.
//
// It parses flags, validates configuration and paths, and either runs
// system diagnostics (--check) or the composite/encode pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/backmassage/slidecast/internal/check"
	"github.com/backmassage/slidecast/internal/config"
	"github.com/backmassage/slidecast/internal/display"
	"github.com/backmassage/slidecast/internal/logging"
	"github.com/backmassage/slidecast/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "slidecast: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "slidecast: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slidecast: %v\n", err)
		return 1
	}
	defer log.Close()

	// Respect container CPU quotas so the default worker count is honest.
	// maxprocs only fails on an invalid GOMAXPROCS env var, in which case
	// runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug(cfg.Verbose, format, args...)
	}))

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(log) {
			return 1
		}
		return 0
	}

	// Validate paths: song and image directory must exist, the output's
	// parent directory is created if needed.
	if fi, err := os.Stat(cfg.SongPath); err != nil || fi.IsDir() {
		log.Error("Audio track not found: %s", cfg.SongPath)
		return 1
	}
	if fi, err := os.Stat(cfg.ImageDir); err != nil || !fi.IsDir() {
		log.Error("Image directory not found: %s", cfg.ImageDir)
		return 1
	}
	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("Cannot create output directory: %s", dir)
			return 1
		}
	}

	log.Info("=== slidecast v%s (%s) ===", version, commit)
	log.Info("Song:   %s", cfg.SongPath)
	log.Info("Images: %s", cfg.ImageDir)
	log.Info("Out:    %s", cfg.OutputPath)
	log.Info("Jump cut: %g seconds, layout: %s", cfg.JumpCutSeconds, cfg.Layout)
	log.Info("")

	// Fail fast if ffmpeg/ffprobe are unavailable.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so
	// workers drain and the run exits without invoking the encoder.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	// Phase 4: Run pipeline (scan → probe → schedule → composite → encode).
	start := time.Now()
	if _, err := pipeline.Run(ctx, &cfg, log, pipeline.DefaultDeps()); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("Time: %s", display.FormatElapsed(time.Since(start)))
	return 0
}

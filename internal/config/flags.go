package config

// This file implements CLI flag parsing and help text. Parsing order:
// defaults -> YAML preset (--config) -> explicit flags. Explicit flags win
// over preset values via FlagSet.Changed.

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// ParseFlags parses args (without the program name) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, bad enum value, unreadable preset).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("slidecast", flag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() { printUsage(fs) }

	var (
		resolution  string
		showVersion bool
		noColor     bool
		forceColor  bool
	)

	fs.Float64VarP(&cfg.JumpCutSeconds, "jump-cut", "j", cfg.JumpCutSeconds, "Seconds each image is shown")
	fs.StringVarP(&cfg.SongPath, "song", "s", "", "Audio track path (required)")
	fs.StringVarP(&cfg.OutputPath, "output", "o", "", "Output video path (required)")
	fs.StringVar(&cfg.ImageDir, "images", "", "Directory containing source images (required)")
	fs.IntVar(&cfg.OutputFramerate, "framerate", cfg.OutputFramerate, "Output container framerate")
	fs.VarP(&layoutValue{&cfg.Layout}, "layout", "a", "Frame layout: single | stacked")
	fs.StringVarP(&resolution, "resolution", "r", "", "Target resolution WxH (default per layout)")
	fs.IntVarP(&cfg.Workers, "workers", "w", 0, "Parallel frame workers (0 = CPU count)")
	fs.Int64Var(&cfg.Seed, "seed", 0, "Image-shuffle seed (0 = time-based)")
	fs.BoolVar(&cfg.KeepFrames, "keep-frames", false, "Keep temporary frame files after encoding")
	fs.StringVar(&cfg.PresetPath, "config", "", "YAML preset file")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Run system diagnostics and exit")
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		return err
	}

	if showVersion {
		fmt.Fprintln(os.Stdout, "slidecast v"+version)
		os.Exit(0)
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	if cfg.PresetPath != "" {
		p, err := LoadPreset(cfg.PresetPath)
		if err != nil {
			return err
		}
		if err := p.Apply(cfg, fs.Changed); err != nil {
			return err
		}
	}

	if resolution != "" {
		w, h, err := ParseResolution(resolution)
		if err != nil {
			return err
		}
		cfg.Width, cfg.Height = w, h
	}

	cfg.ImageDir = NormalizeDirArg(cfg.ImageDir)
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprint(os.Stderr, `slidecast: turn an image pool and an audio track into a slideshow video

USAGE:
  slidecast --song track.mp3 --images ./pngs --output out.mp4 [options]

OPTIONS:
`)
	fmt.Fprintln(os.Stderr, fs.FlagUsages())
}

// layoutValue adapts LayoutMode to the pflag.Value interface so invalid
// values fail at parse time.
type layoutValue struct{ v *LayoutMode }

func (l *layoutValue) String() string { return string(*l.v) }
func (l *layoutValue) Type() string   { return "layout" }

func (l *layoutValue) Set(s string) error {
	m := LayoutMode(s)
	switch m {
	case LayoutSingle, LayoutStacked:
		*l.v = m
		return nil
	default:
		return fmt.Errorf("invalid layout %q (use 'single' or 'stacked')", s)
	}
}

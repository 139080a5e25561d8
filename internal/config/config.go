// Package config holds runtime configuration: defaults, YAML presets, CLI
// flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// LayoutMode selects how source images are composited into each frame.
type LayoutMode string

const (
	// LayoutSingle letterboxes one image per frame (landscape output).
	LayoutSingle LayoutMode = "single"
	// LayoutStacked stacks up to three cropped images into equal
	// horizontal bands (portrait output).
	LayoutStacked LayoutMode = "stacked"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Default target resolutions per layout. Overridable via --resolution.
const (
	defaultSingleWidth   = 1920
	defaultSingleHeight  = 1080
	defaultStackedWidth  = 1080
	defaultStackedHeight = 1920
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Paths.
	SongPath   string
	OutputPath string
	ImageDir   string

	// Timing.
	JumpCutSeconds  float64 // Seconds each frame is displayed. Default: 0.1.
	OutputFramerate int     // Container playback framerate. Default: 30.

	// Compositing.
	Layout LayoutMode
	Width  int // 0 = layout default.
	Height int // 0 = layout default.

	// Scheduling.
	Workers int   // 0 = derive from GOMAXPROCS.
	Seed    int64 // 0 = derive from time; fixed seeds reproduce image assignment.

	// Behavior flags.
	KeepFrames bool // Skip temp-frame cleanup after a successful encode.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode
	LogFile   string // Optional log file path.
	CheckOnly bool   // Run --check diagnostics and exit.

	// Preset file path (--config), recorded for diagnostics.
	PresetPath string
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [ParseFlags] applies preset-file and CLI overrides.
func DefaultConfig() Config {
	return Config{
		JumpCutSeconds:  0.1,
		OutputFramerate: 30,
		Layout:          LayoutSingle,
		ColorMode:       ColorAuto,
	}
}

// Validate checks enum fields and numeric invariants. When not in CheckOnly
// mode, it also requires the three mandatory paths.
func (c *Config) Validate() error {
	switch c.Layout {
	case LayoutSingle, LayoutStacked:
		// valid
	default:
		return errors.New("invalid layout (use 'single' or 'stacked')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.JumpCutSeconds <= 0 {
		return fmt.Errorf("jump-cut seconds must be positive (got %g)", c.JumpCutSeconds)
	}
	if c.OutputFramerate <= 0 {
		return fmt.Errorf("output framerate must be positive (got %d)", c.OutputFramerate)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative (got %d)", c.Workers)
	}
	if (c.Width < 0) || (c.Height < 0) || (c.Width == 0) != (c.Height == 0) {
		return errors.New("resolution must set both width and height")
	}

	if c.CheckOnly {
		return nil
	}
	if c.SongPath == "" {
		return errors.New("song path is required (--song)")
	}
	if c.OutputPath == "" {
		return errors.New("output video path is required (--output)")
	}
	if c.ImageDir == "" {
		return errors.New("image directory is required (--images)")
	}
	return nil
}

// TargetResolution returns the frame canvas size: the explicit --resolution
// override when set, otherwise the layout default. Dimensions are rounded up
// to even values since yuv420p encoders reject odd sizes.
func (c *Config) TargetResolution() (w, h int) {
	w, h = c.Width, c.Height
	if w == 0 {
		if c.Layout == LayoutStacked {
			w, h = defaultStackedWidth, defaultStackedHeight
		} else {
			w, h = defaultSingleWidth, defaultSingleHeight
		}
	}
	return even(w), even(h)
}

func even(n int) int {
	if n%2 == 0 {
		return n
	}
	return n + 1
}

// ParseResolution parses "WxH" (e.g. "1280x720") into positive dimensions.
func ParseResolution(res string) (int, int, error) {
	parts := strings.Split(res, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad resolution %q; expected WxH", res)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad width in %q: %w", res, err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad height in %q: %w", res, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("resolution %q must be positive", res)
	}
	return w, h, nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

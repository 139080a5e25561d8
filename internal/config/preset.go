package config

// This file implements YAML preset loading (--config). A preset supplies the
// same options as the CLI; explicit flags win over preset values.

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// maxPresetSize bounds preset input so a mistyped path to a large file
// cannot exhaust memory.
const maxPresetSize = 1 << 20

// Preset mirrors the configuration surface in YAML form. Pointer fields
// distinguish "absent" from zero values.
type Preset struct {
	Song       *string  `yaml:"song"`
	Output     *string  `yaml:"output"`
	Images     *string  `yaml:"images"`
	JumpCut    *float64 `yaml:"jump_cut_seconds"`
	Framerate  *int     `yaml:"framerate"`
	Layout     *string  `yaml:"layout"`
	Resolution *string  `yaml:"resolution"`
	Workers    *int     `yaml:"workers"`
	Seed       *int64   `yaml:"seed"`
	KeepFrames *bool    `yaml:"keep_frames"`
}

// LoadPreset reads and strictly parses a YAML preset file. Unknown keys are
// rejected so typos surface instead of silently falling back to defaults.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	if len(data) > maxPresetSize {
		return nil, fmt.Errorf("preset %s exceeds %d bytes", path, maxPresetSize)
	}
	var p Preset
	if err := yaml.UnmarshalWithOptions(data, &p, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return &p, nil
}

// Apply copies present preset fields into cfg. The set callback reports
// whether the corresponding CLI flag was given explicitly; such fields are
// skipped so flags keep precedence over the preset file.
func (p *Preset) Apply(cfg *Config, set func(flag string) bool) error {
	if p.Song != nil && !set("song") {
		cfg.SongPath = *p.Song
	}
	if p.Output != nil && !set("output") {
		cfg.OutputPath = *p.Output
	}
	if p.Images != nil && !set("images") {
		cfg.ImageDir = NormalizeDirArg(*p.Images)
	}
	if p.JumpCut != nil && !set("jump-cut") {
		cfg.JumpCutSeconds = *p.JumpCut
	}
	if p.Framerate != nil && !set("framerate") {
		cfg.OutputFramerate = *p.Framerate
	}
	if p.Layout != nil && !set("layout") {
		cfg.Layout = LayoutMode(*p.Layout)
	}
	if p.Resolution != nil && !set("resolution") {
		w, h, err := ParseResolution(*p.Resolution)
		if err != nil {
			return err
		}
		cfg.Width, cfg.Height = w, h
	}
	if p.Workers != nil && !set("workers") {
		cfg.Workers = *p.Workers
	}
	if p.Seed != nil && !set("seed") {
		cfg.Seed = *p.Seed
	}
	if p.KeepFrames != nil && !set("keep-frames") {
		cfg.KeepFrames = *p.KeepFrames
	}
	return nil
}

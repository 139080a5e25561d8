// Package probe wraps the external audio duration probe (ffprobe). The
// probe is injectable so the pipeline can be tested without the binary.
package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DurationFunc returns the duration of an audio file in seconds. Production
// code uses [Duration]; tests substitute a stub.
type DurationFunc func(ctx context.Context, path string) (float64, error)

// Duration runs a single ffprobe call against path and returns the
// container duration in seconds. Any failure is fatal to the run and
// carries the captured ffprobe stderr.
func Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return 0, fmt.Errorf("ffprobe %q: %s", path, msg)
		}
		return 0, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseDuration(string(out))
}

// ParseDuration converts raw ffprobe stdout into seconds. Exported for
// testing without a real ffprobe binary.
func ParseDuration(out string) (float64, error) {
	s := strings.TrimSpace(out)
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("ffprobe reported non-positive duration %g", d)
	}
	return d, nil
}

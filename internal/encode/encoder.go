// Package encode wraps the external video encoder (ffmpeg). Only the
// invocation contract lives here: the frame sequence and audio track go in,
// one video file comes out, and the shorter input bounds the output length.
package encode

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Request describes one encoder invocation.
type Request struct {
	FramesDir       string  // directory holding the frame artifacts
	FramePattern    string  // printf-style sequence pattern, e.g. frame_%06d.jpg
	InputFramerate  float64 // rate stills are fed in (1 / per-frame seconds)
	OutputFramerate int     // container playback framerate
	AudioPath       string
	OutputPath      string
	Verbose         bool // tee encoder stderr to os.Stderr in real time
}

// ExecResult holds the outcome of a single encoder invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// RunFunc executes the encoder. Production code uses [Execute]; tests
// substitute a stub so the pipeline runs without ffmpeg installed.
type RunFunc func(ctx context.Context, req Request) ExecResult

// BuildArgs returns the full ffmpeg argv for req. The still sequence is fed
// at the input framerate, x264 video and AAC audio are produced, -shortest
// stops at the shorter input, and yuv420p keeps the output broadly playable.
func BuildArgs(req Request) []string {
	return []string{
		"ffmpeg",
		"-y",
		"-framerate", fmt.Sprintf("%.6g", req.InputFramerate),
		"-i", filepath.Join(req.FramesDir, req.FramePattern),
		"-i", req.AudioPath,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-shortest",
		"-pix_fmt", "yuv420p",
		"-r", fmt.Sprintf("%d", req.OutputFramerate),
		"-movflags", "+faststart",
		req.OutputPath,
	}
}

// Execute builds and runs the ffmpeg command. When verbose, stderr is tee'd
// to os.Stderr in real time; otherwise it is captured silently and surfaced
// only on failure. The encoder is never retried.
func Execute(ctx context.Context, req Request) ExecResult {
	args := BuildArgs(req)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if req.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// StderrTail returns the last n lines of captured encoder output, for
// compact diagnostics when an invocation fails.
func StderrTail(stderr string, n int) []string {
	if strings.TrimSpace(stderr) == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg and ffprobe.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrX264Unavailable = errors.New("ffmpeg has no usable libx264 encoder")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// ffprobe, and the x264/AAC encoders the pipeline depends on. Informational
// only; reports overall success.
func RunCheck(log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(log, "ffmpeg")
	ok = checkTool(log, "ffprobe") && ok
	ok = checkX264(log) && ok
	ok = checkAAC(log) && ok
	return ok
}

// checkTool verifies a binary is on PATH and logs its version line.
func checkTool(log Logger, name string) bool {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found", name)
		return false
	}
	cmd := exec.Command(name, "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return false
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
	return true
}

// checkX264 runs a minimal libx264 encode to verify the video encoder works.
func checkX264(log Logger) bool {
	log.Info("Testing libx264...")
	if runSilent("ffmpeg", x264TestArgs()...) {
		log.Success("libx264 works")
		return true
	}
	log.Error("libx264 test encode failed")
	return false
}

// checkAAC runs a minimal AAC encode to verify the audio encoder works.
func checkAAC(log Logger) bool {
	log.Info("Testing AAC encoder...")
	if runSilent("ffmpeg",
		"-hide_banner", "-nostdin",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	) {
		log.Success("AAC encoder works")
		return true
	}
	log.Error("AAC encoder test failed")
	return false
}

// CheckDeps is the pre-pipeline validation: ffmpeg and ffprobe must be on
// PATH and libx264 must pass a short test encode. Returns a sentinel error
// on failure.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent("ffmpeg", x264TestArgs()...) {
		return ErrX264Unavailable
	}
	return nil
}

// x264TestArgs returns the ffmpeg arguments for a minimal libx264 test
// encode. Shared by checkX264 and CheckDeps to avoid duplicating the list.
func x264TestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx264",
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/slidecast/internal/compose"
	"github.com/backmassage/slidecast/internal/config"
	"github.com/backmassage/slidecast/internal/display"
	"github.com/backmassage/slidecast/internal/encode"
	"github.com/backmassage/slidecast/internal/logging"
	"github.com/backmassage/slidecast/internal/probe"
	"github.com/backmassage/slidecast/internal/reuse"
	"github.com/backmassage/slidecast/internal/schedule"
	"github.com/backmassage/slidecast/internal/timing"
)

// Deps are the external-process boundaries, injectable so the pipeline is
// testable without ffprobe/ffmpeg installed.
type Deps struct {
	ProbeDuration probe.DurationFunc
	RunEncoder    encode.RunFunc
}

// DefaultDeps returns the production boundaries.
func DefaultDeps() Deps {
	return Deps{
		ProbeDuration: probe.Duration,
		RunEncoder:    encode.Execute,
	}
}

// Run executes the whole pipeline. Per-frame errors are absorbed into stats
// and never unwind the batch; the returned error is fatal (configuration,
// probe or encoder failure, cancellation) and means no video was produced.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, deps Deps) (*RunStats, error) {
	stats := &RunStats{}

	// --- Scan image pool ---
	pool, err := DiscoverImages(cfg.ImageDir)
	if err != nil {
		return stats, fmt.Errorf("scan %s: %w", cfg.ImageDir, err)
	}
	if len(pool) == 0 {
		return stats, fmt.Errorf("%w: no images in %s", reuse.ErrEmptyPool, cfg.ImageDir)
	}
	log.Info("Found %d images", len(pool))

	// --- Probe track duration (first external-process block, serial) ---
	duration, err := deps.ProbeDuration(ctx, cfg.SongPath)
	if err != nil {
		return stats, err
	}
	log.Info("Track duration: %.2f seconds", duration)

	plan, err := timing.Compute(duration, cfg.JumpCutSeconds)
	if err != nil {
		return stats, err
	}
	log.Info("Frames needed: %d (input framerate %.6g fps)", plan.FrameCount, plan.InputFramerate)

	demand := plan.FrameCount * schedule.RefsPerJob(cfg.Layout)
	if len(pool) < demand {
		log.Warn("Only %d images for %d slots; images will be repeated", len(pool), demand)
	}

	// --- Build the full job list before any parallel work ---
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Debug(cfg.Verbose, "Shuffle seed: %d", seed)

	queue, err := reuse.New(pool, rng)
	if err != nil {
		return stats, err
	}
	jobs := schedule.BuildJobs(plan.FrameCount, cfg.Layout, queue)
	stats.Frames = len(jobs)

	framesDir, err := os.MkdirTemp("", "slidecast-*")
	if err != nil {
		return stats, fmt.Errorf("create frames directory: %w", err)
	}
	cleanup := func() {
		if cfg.KeepFrames {
			log.Info("Keeping frames in %s", framesDir)
			return
		}
		if err := os.RemoveAll(framesDir); err != nil {
			log.Warn("Could not remove %s: %v", framesDir, err)
		}
	}
	defer cleanup()

	// --- Composite frames in parallel ---
	width, height := cfg.TargetResolution()
	comp := &compose.Compositor{
		Width:  width,
		Height: height,
		Layout: cfg.Layout,
		Dir:    framesDir,
	}
	log.Info("Compositing %d frames at %dx%d (%s layout, %d workers)",
		len(jobs), width, height, cfg.Layout, schedule.ResolveWorkers(cfg.Workers))

	bar := progressbar.Default(int64(len(jobs)), "Compositing")
	err = schedule.Dispatch(ctx, jobs, schedule.ResolveWorkers(cfg.Workers), func(job schedule.FrameJob) {
		renderJob(comp, job, stats, log)
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	if err != nil {
		return stats, fmt.Errorf("compositing interrupted: %w", err)
	}

	if stats.Succeeded.Load() == 0 {
		return stats, errors.New("no frames were composited; nothing to encode")
	}

	// --- Encode (second external-process block, serial) ---
	log.Info("Encoding video...")
	result := deps.RunEncoder(ctx, encode.Request{
		FramesDir:       framesDir,
		FramePattern:    compose.Pattern,
		InputFramerate:  plan.InputFramerate,
		OutputFramerate: cfg.OutputFramerate,
		AudioPath:       cfg.SongPath,
		OutputPath:      cfg.OutputPath,
		Verbose:         cfg.Verbose,
	})
	if result.Err != nil {
		for _, line := range encode.StderrTail(result.Stderr, 20) {
			log.Error("  %s", line)
		}
		return stats, fmt.Errorf("ffmpeg failed: %w", result.Err)
	}

	if fi, err := os.Stat(cfg.OutputPath); err == nil {
		stats.OutputBytes = fi.Size()
	}

	logSummary(log, cfg, stats)
	return stats, nil
}

// renderJob runs one frame job and folds its outcome into stats. Per-frame
// failures are logged and counted, never propagated.
func renderJob(comp *compose.Compositor, job schedule.FrameJob, stats *RunStats, log *logging.Logger) {
	res, err := comp.Render(job.Index, job.ImagePaths)

	stats.DecodeFailures.Add(int64(len(res.SkippedPaths)))
	for _, p := range res.SkippedPaths {
		log.Warn("frame %06d: cannot decode %s", job.Index, p)
	}

	switch {
	case err != nil:
		log.Warn("frame %06d: %v", job.Index, err)
		stats.ArtifactErrors.Add(1)
	case res.Blank:
		stats.SkippedBlank.Add(1)
	default:
		stats.Succeeded.Add(1)
	}
}

func logSummary(log *logging.Logger, cfg *config.Config, stats *RunStats) {
	log.Info("==============================")
	log.Success("Done: %d/%d frames composited, %d blank, %d write errors",
		stats.Succeeded.Load(), stats.Frames,
		stats.SkippedBlank.Load(), stats.ArtifactErrors.Load())
	if stats.DecodeFailures.Load() > 0 {
		log.Warn("  Images skipped (decode failures): %d", stats.DecodeFailures.Load())
	}
	log.Success("Output: %s (%s)", cfg.OutputPath, display.FormatBytes(stats.OutputBytes))
}

// Package timing converts track duration and per-frame display time into
// the frame count and input framerate consumed by the encoder.
package timing

import (
	"fmt"
	"math"
)

// Plan is the computed timing for one run.
type Plan struct {
	// FrameCount is the number of still frames needed to cover the track.
	FrameCount int
	// InputFramerate is the rate at which stills are fed to the encoder;
	// the reciprocal of the per-frame display time. Distinct from the
	// output container framerate.
	InputFramerate float64
}

// Compute derives the timing plan from the audio track duration and the
// per-frame display time, both in seconds. The frame count is rounded up so
// the image sequence always covers the full track; the encoder's shortest-
// stream rule trims the overhang.
//
// A plan with zero frames is a configuration error (zero-length track or
// non-positive display time), never a valid result.
func Compute(trackDurationSeconds, perFrameSeconds float64) (Plan, error) {
	if perFrameSeconds <= 0 {
		return Plan{}, fmt.Errorf("per-frame seconds must be positive (got %g)", perFrameSeconds)
	}
	n := int(math.Ceil(trackDurationSeconds / perFrameSeconds))
	if n < 1 {
		return Plan{}, fmt.Errorf("track too short: %g seconds yields no frames", trackDurationSeconds)
	}
	return Plan{
		FrameCount:     n,
		InputFramerate: 1 / perFrameSeconds,
	}, nil
}

package timing

import (
	"math"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		duration  float64
		perFrame  float64
		wantCount int
		wantRate  float64
		wantErr   bool
	}{
		{"ten seconds at half-second cuts", 10, 0.5, 20, 2.0, false},
		{"partial frame rounds up", 10.1, 0.5, 21, 2.0, false},
		{"short track still gets one frame", 0.05, 0.1, 1, 10.0, false},
		{"one frame per second", 3, 1, 3, 1.0, false},
		{"fast cuts", 1, 0.1, 10, 10.0, false},
		{"zero-length track", 0, 0.5, 0, 0, true},
		{"zero per-frame time", 10, 0, 0, 0, true},
		{"negative per-frame time", 10, -1, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Compute(tt.duration, tt.perFrame)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if plan.FrameCount != tt.wantCount {
				t.Errorf("FrameCount = %d, want %d", plan.FrameCount, tt.wantCount)
			}
			if math.Abs(plan.InputFramerate-tt.wantRate) > 1e-9 {
				t.Errorf("InputFramerate = %g, want %g", plan.InputFramerate, tt.wantRate)
			}
		})
	}
}

func TestCompute_CoversTrack(t *testing.T) {
	// The frame sequence must always be at least as long as the track.
	durations := []float64{0.3, 1, 7.77, 180, 3600.5}
	perFrames := []float64{0.1, 0.25, 1, 2.5}
	for _, d := range durations {
		for _, p := range perFrames {
			plan, err := Compute(d, p)
			if err != nil {
				t.Fatalf("Compute(%g, %g): %v", d, p, err)
			}
			if float64(plan.FrameCount)*p < d {
				t.Errorf("Compute(%g, %g): %d frames cover only %g seconds",
					d, p, plan.FrameCount, float64(plan.FrameCount)*p)
			}
		}
	}
}

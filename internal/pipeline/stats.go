package pipeline

import "sync/atomic"

// RunStats tracks per-frame counters across the parallel region. Counters
// are atomics because workers bump them concurrently.
type RunStats struct {
	Frames         int // total frame jobs built
	Succeeded      atomic.Int64
	SkippedBlank   atomic.Int64 // frames written with no image content
	DecodeFailures atomic.Int64 // individual images that failed to decode
	ArtifactErrors atomic.Int64 // frame artifacts that failed to write
	OutputBytes    int64        // final video size, set after encoding
}

// Resolved reports how many frame jobs have fully resolved, successfully
// or otherwise.
func (s *RunStats) Resolved() int64 {
	return s.Succeeded.Load() + s.SkippedBlank.Load() + s.ArtifactErrors.Load()
}

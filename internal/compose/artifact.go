package compose

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"os"
)

// Frame artifacts use a fixed-width zero-padded index so lexical and numeric
// ordering coincide; the encoder consumes them by this pattern, which is what
// guarantees final video frame order regardless of worker completion order.
const (
	// Pattern is the printf-style sequence pattern handed to the encoder.
	Pattern = "frame_%06d.jpg"

	// jpegQuality suits slide-style stills; the video codec re-compresses
	// anyway.
	jpegQuality = 90
)

// ArtifactName returns the file name for a frame index.
func ArtifactName(index int) string {
	return fmt.Sprintf(Pattern, index)
}

// WriteError marks a frame artifact that could not be written. Recoverable
// per-frame: the run continues and the failure is counted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write frame %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// writeJPEG encodes img to path with buffered IO.
func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	bw := bufio.NewWriterSize(f, 1<<20)
	if err := jpeg.Encode(bw, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

package compose

import (
	"fmt"
	"image"
	"os"

	// Registered decoders for the formats the discovery step accepts.
	_ "image/jpeg"
	_ "image/png"
)

// DecodeError marks a source image that could not be read or decoded.
// Recoverable: the affected band or frame is left blank and the run
// continues.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// decodeImage opens and decodes one source image by content sniffing.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

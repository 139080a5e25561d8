package compose

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/backmassage/slidecast/internal/config"
)

// Compositor renders frame artifacts at a fixed target resolution. One
// instance is shared read-only by all workers; each Render call owns its
// decode buffers, so there is no cross-job aliasing.
type Compositor struct {
	Width  int
	Height int
	Layout config.LayoutMode
	Dir    string // run-scoped directory receiving frame artifacts
}

// Result reports what one Render call put on the canvas.
type Result struct {
	// SkippedPaths lists images that failed to decode; their band (or the
	// whole frame, in single layout) was left blank.
	SkippedPaths []string
	// Blank is true when no image content reached the canvas. The artifact
	// is still written so the frame sequence stays contiguous.
	Blank bool
}

// Render composites the images of one frame job and writes its artifact.
// Decode failures are reported in the Result, never as the error; the
// returned error is reserved for artifact write failures ([WriteError]).
func (c *Compositor) Render(index int, paths []string) (Result, error) {
	var res Result
	canvas := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	stddraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, stddraw.Src)

	switch c.Layout {
	case config.LayoutStacked:
		c.renderStacked(canvas, paths, &res)
	default:
		c.renderSingle(canvas, paths, &res)
	}

	res.Blank = len(res.SkippedPaths) == len(paths)

	out := filepath.Join(c.Dir, ArtifactName(index))
	if err := writeJPEG(out, canvas); err != nil {
		return res, err
	}
	return res, nil
}

// renderSingle letterboxes one image onto the canvas: aspect-preserving
// resize, centered, black padding on the short axis.
func (c *Compositor) renderSingle(canvas *image.RGBA, paths []string, res *Result) {
	if len(paths) == 0 {
		return
	}
	img, err := decodeImage(paths[0])
	if err != nil {
		res.SkippedPaths = append(res.SkippedPaths, paths[0])
		return
	}
	b := img.Bounds()
	dst := fitRect(b.Dx(), b.Dy(), c.Width, c.Height)
	draw.CatmullRom.Scale(canvas, dst, img, b, draw.Src, nil)
}

// renderStacked divides the canvas height into three equal horizontal bands
// and fills each with a smart-cropped, resized source image. Fewer than
// three sources, or a failed decode, leaves the remaining bands black.
func (c *Compositor) renderStacked(canvas *image.RGBA, paths []string, res *Result) {
	bandH := c.Height / 3
	for i, path := range paths {
		if i >= 3 {
			break
		}
		img, err := decodeImage(path)
		if err != nil {
			res.SkippedPaths = append(res.SkippedPaths, path)
			continue
		}
		b := img.Bounds()
		src := cropRect(b.Dx(), b.Dy(), c.Width, bandH).Add(b.Min)
		dst := image.Rect(0, i*bandH, c.Width, (i+1)*bandH)
		draw.CatmullRom.Scale(canvas, dst, img, src, draw.Src, nil)
	}
}

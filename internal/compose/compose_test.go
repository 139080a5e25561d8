package compose

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/slidecast/internal/config"
)

// writePNG writes a solid-color test image and returns its path.
func writePNG(t *testing.T, dir, name string, w, h int, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeCorrupt writes a file that is not a decodable image.
func writeCorrupt(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// loadArtifact decodes the frame artifact for index from dir.
func loadArtifact(t *testing.T, dir string, index int) image.Image {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, ArtifactName(index)))
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("artifact not decodable: %v", err)
	}
	return img
}

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// isNear reports whether two 8-bit channel values are within JPEG tolerance.
func isNear(a, b uint32) bool {
	const tol = 40 << 8 // 16-bit channel space
	d := int64(a) - int64(b)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func sameColor(px color.Color, want color.RGBA) bool {
	r, g, b, _ := px.RGBA()
	wr, wg, wb, _ := want.RGBA()
	return isNear(r, wr) && isNear(g, wg) && isNear(b, wb)
}

// --- Smart crop tests ---

func TestCropRect_WiderSource(t *testing.T) {
	// Source relatively wider than the band: width is cropped, centered.
	// cropW = round(srcH * bandW/bandH) = round(600 * 1080/640) = 1013.
	r := cropRect(1600, 600, 1080, 640)
	if r.Dx() != 1013 {
		t.Errorf("crop width = %d, want 1013", r.Dx())
	}
	if r.Dy() != 600 {
		t.Errorf("crop height = %d, want full 600", r.Dy())
	}
	if r.Min.X != (1600-1013)/2 {
		t.Errorf("x offset = %d, want %d (centered)", r.Min.X, (1600-1013)/2)
	}
	if r.Min.Y != 0 {
		t.Errorf("y offset = %d, want 0", r.Min.Y)
	}
}

func TestCropRect_TallerSource(t *testing.T) {
	// Source relatively taller: height is cropped, centered.
	// cropH = round(srcW * bandH/bandW) = round(800 * 640/1080) = 474.
	r := cropRect(800, 600, 1080, 640)
	if r.Dx() != 800 {
		t.Errorf("crop width = %d, want full 800", r.Dx())
	}
	if r.Dy() != 474 {
		t.Errorf("crop height = %d, want 474", r.Dy())
	}
	if r.Min.Y != (600-474)/2 {
		t.Errorf("y offset = %d, want %d (centered)", r.Min.Y, (600-474)/2)
	}
}

func TestCropRect_MatchingRatio(t *testing.T) {
	r := cropRect(1920, 1080, 640, 360)
	if r != image.Rect(0, 0, 1920, 1080) {
		t.Errorf("matching ratio should not crop, got %v", r)
	}
}

func TestFitRect_Letterbox(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, dstW, dstH int
		want                   image.Rectangle
	}{
		{"wide into wider", 400, 300, 1920, 1080, image.Rect(240, 0, 1680, 1080)},
		{"tall into wide", 300, 400, 1920, 1080, image.Rect(555, 0, 1365, 1080)},
		{"exact fit", 960, 540, 1920, 1080, image.Rect(0, 0, 1920, 1080)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fitRect(tt.srcW, tt.srcH, tt.dstW, tt.dstH)
			if got != tt.want {
				t.Errorf("fitRect = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- Artifact naming ---

func TestArtifactName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "frame_000000.jpg"},
		{7, "frame_000007.jpg"},
		{19, "frame_000019.jpg"},
		{123456, "frame_123456.jpg"},
	}
	for _, tt := range tests {
		if got := ArtifactName(tt.index); got != tt.want {
			t.Errorf("ArtifactName(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

// --- Render tests ---

func TestRender_SingleLetterbox(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	// 2:1 source into a 16:9 canvas: pads top and bottom.
	src := writePNG(t, srcDir, "wide.png", 100, 50, red)

	c := &Compositor{Width: 320, Height: 180, Layout: config.LayoutSingle, Dir: outDir}
	res, err := c.Render(0, []string{src})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Blank || len(res.SkippedPaths) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	out := loadArtifact(t, outDir, 0)
	if out.Bounds().Dx() != 320 || out.Bounds().Dy() != 180 {
		t.Fatalf("artifact is %v, want 320x180", out.Bounds())
	}
	if !sameColor(out.At(160, 90), red) {
		t.Errorf("center pixel %v, want red image content", out.At(160, 90))
	}
	if !sameColor(out.At(160, 2), color.RGBA{A: 255}) {
		t.Errorf("top edge %v, want black letterbox", out.At(160, 2))
	}
}

func TestRender_StackedThreeBands(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	paths := []string{
		writePNG(t, srcDir, "a.png", 400, 300, red),
		writePNG(t, srcDir, "b.png", 300, 400, green),
		writePNG(t, srcDir, "c.png", 200, 200, blue),
	}

	c := &Compositor{Width: 240, Height: 420, Layout: config.LayoutStacked, Dir: outDir}
	res, err := c.Render(3, paths)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Blank || len(res.SkippedPaths) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	out := loadArtifact(t, outDir, 3)
	// Band height 140; sample each band center.
	if !sameColor(out.At(120, 70), red) {
		t.Errorf("band 1 center %v, want red", out.At(120, 70))
	}
	if !sameColor(out.At(120, 210), green) {
		t.Errorf("band 2 center %v, want green", out.At(120, 210))
	}
	if !sameColor(out.At(120, 350), blue) {
		t.Errorf("band 3 center %v, want blue", out.At(120, 350))
	}
}

func TestRender_StackedTwoImagesLeavesThirdBandBlank(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	paths := []string{
		writePNG(t, srcDir, "a.png", 300, 300, red),
		writePNG(t, srcDir, "b.png", 300, 300, green),
	}

	c := &Compositor{Width: 240, Height: 420, Layout: config.LayoutStacked, Dir: outDir}
	res, err := c.Render(0, paths)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Blank {
		t.Fatal("two rendered bands must not count as a blank frame")
	}

	out := loadArtifact(t, outDir, 0)
	if !sameColor(out.At(120, 350), color.RGBA{A: 255}) {
		t.Errorf("missing third band should stay black, got %v", out.At(120, 350))
	}
}

func TestRender_CorruptBandSkippedNotFatal(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	bad := writeCorrupt(t, srcDir, "bad.png")
	paths := []string{
		writePNG(t, srcDir, "a.png", 300, 300, red),
		bad,
		writePNG(t, srcDir, "c.png", 300, 300, blue),
	}

	c := &Compositor{Width: 240, Height: 420, Layout: config.LayoutStacked, Dir: outDir}
	res, err := c.Render(0, paths)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(res.SkippedPaths) != 1 || res.SkippedPaths[0] != bad {
		t.Fatalf("SkippedPaths = %v, want just the corrupt image", res.SkippedPaths)
	}
	if res.Blank {
		t.Error("frame with two good bands must not be blank")
	}

	out := loadArtifact(t, outDir, 0)
	if !sameColor(out.At(120, 210), color.RGBA{A: 255}) {
		t.Errorf("corrupt band should stay black, got %v", out.At(120, 210))
	}
	if !sameColor(out.At(120, 70), red) || !sameColor(out.At(120, 350), blue) {
		t.Error("good bands must still render around the skipped one")
	}
}

func TestRender_SingleCorruptWritesBlankFrame(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	bad := writeCorrupt(t, srcDir, "bad.png")

	c := &Compositor{Width: 320, Height: 180, Layout: config.LayoutSingle, Dir: outDir}
	res, err := c.Render(7, []string{bad})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !res.Blank {
		t.Error("all-failed frame must report Blank")
	}
	if len(res.SkippedPaths) != 1 {
		t.Errorf("SkippedPaths = %v, want the corrupt image", res.SkippedPaths)
	}

	// The artifact still exists so the sequence stays contiguous.
	out := loadArtifact(t, outDir, 7)
	if !sameColor(out.At(160, 90), color.RGBA{A: 255}) {
		t.Errorf("blank frame center %v, want black", out.At(160, 90))
	}
}

func TestRender_WriteFailure(t *testing.T) {
	srcDir := t.TempDir()
	src := writePNG(t, srcDir, "a.png", 100, 100, red)

	c := &Compositor{
		Width: 320, Height: 180,
		Layout: config.LayoutSingle,
		Dir:    filepath.Join(srcDir, "does", "not", "exist"),
	}
	_, err := c.Render(0, []string{src})
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("Render error = %v, want *WriteError", err)
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	inner := os.ErrNotExist
	e := &DecodeError{Path: "x.png", Err: inner}
	if !errors.Is(e, os.ErrNotExist) {
		t.Error("DecodeError must unwrap to its cause")
	}
}

package transform

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/menta2k/image-resizer/pkg/types"
)

// createTestImage creates a simple opaque test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			}
		}
	}
	return img
}

func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.png")
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func baseRequest(src, dst string) types.Request {
	return types.Request{
		Source:         src,
		Dest:           dst,
		Target:         types.Dimensions{Width: 100, Height: 100},
		Quality:        85,
		Format:         types.FormatPNG,
		Mode:           types.ModeFit,
		PreserveAspect: true,
	}
}

func outputDims(t *testing.T, path string) (int, int) {
	t.Helper()
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("failed to open output %s: %v", path, err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestTransformFit(t *testing.T) {
	src := writeTestPNG(t, createTestImage(400, 300))
	req := baseRequest(src, filepath.Join(t.TempDir(), "out.png"))

	dst, err := New().Transform(req)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	w, h := outputDims(t, dst)
	if w != 100 || h != 75 {
		t.Errorf("expected 100x75, got %dx%d", w, h)
	}
}

func TestTransformStretch(t *testing.T) {
	src := writeTestPNG(t, createTestImage(400, 300))
	req := baseRequest(src, filepath.Join(t.TempDir(), "out.png"))
	req.Mode = types.ModeStretch

	dst, err := New().Transform(req)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if w, h := outputDims(t, dst); w != 100 || h != 100 {
		t.Errorf("expected 100x100, got %dx%d", w, h)
	}
}

func TestTransformCropExactTarget(t *testing.T) {
	src := writeTestPNG(t, createTestImage(400, 300))
	req := baseRequest(src, filepath.Join(t.TempDir(), "out.png"))
	req.Mode = types.ModeCrop

	dst, err := New().Transform(req)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if w, h := outputDims(t, dst); w != 100 || h != 100 {
		t.Errorf("crop mode must hit the target exactly, got %dx%d", w, h)
	}
}

func TestTransformFillOvershoots(t *testing.T) {
	src := writeTestPNG(t, createTestImage(200, 100))
	req := baseRequest(src, filepath.Join(t.TempDir(), "out.png"))
	req.Mode = types.ModeFill

	dst, err := New().Transform(req)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// fill resizes to the covering box and does not crop back down
	if w, h := outputDims(t, dst); w != 200 || h != 100 {
		t.Errorf("expected 200x100, got %dx%d", w, h)
	}
}

func TestTransformRegion(t *testing.T) {
	// left half red, right half blue; extract the left half
	src := writeTestPNG(t, createTestImage(200, 100))
	req := baseRequest(src, filepath.Join(t.TempDir(), "out.png"))
	req.Mode = types.ModeStretch
	req.Region = &types.Region{Left: 0, Top: 0, Right: 100, Bottom: 100}

	dst, err := New().Transform(req)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	img, err := imaging.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	r, _, b, _ := img.At(50, 50).RGBA()
	if r>>8 < 200 || b>>8 > 50 {
		t.Errorf("expected red region content, got r=%d b=%d", r>>8, b>>8)
	}
}

func TestTransformInvalidRegionDropped(t *testing.T) {
	src := writeTestPNG(t, createTestImage(200, 100))
	req := baseRequest(src, filepath.Join(t.TempDir(), "out.png"))
	req.Region = &types.Region{Left: 500, Top: 500, Right: 900, Bottom: 900}

	dst, err := New().Transform(req)
	if err != nil {
		t.Fatalf("invalid region must not fail the transform: %v", err)
	}

	// full image is used, so fit resolves against 200x100
	if w, h := outputDims(t, dst); w != 100 || h != 50 {
		t.Errorf("expected 100x50, got %dx%d", w, h)
	}
}

func TestTransformFlattensTransparencyForJPEG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				img.Set(x, y, color.NRGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.NRGBA{0, 0, 0, 0})
			}
		}
	}
	src := writeTestPNG(t, img)

	req := baseRequest(src, filepath.Join(t.TempDir(), "out.jpeg"))
	req.Format = types.FormatJPEG
	req.Mode = types.ModeStretch

	dst, err := New().Transform(req)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	out, err := imaging.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	// the transparent half composites over white
	r, g, b, _ := out.At(80, 50).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("expected white background, got r=%d g=%d b=%d", r>>8, g>>8, b>>8)
	}
}

func TestTransformLosslessRoundTrip(t *testing.T) {
	src := writeTestPNG(t, createTestImage(400, 300))
	req := baseRequest(src, filepath.Join(t.TempDir(), "out.png"))
	req.Target = types.Dimensions{Width: 200, Height: 200}

	dst, err := New().Transform(req)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// lossless output must match the resolved geometry exactly
	if w, h := outputDims(t, dst); w != 200 || h != 150 {
		t.Errorf("expected 200x150, got %dx%d", w, h)
	}
}

func TestTransformDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(src, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	req := baseRequest(src, filepath.Join(dir, "out.png"))
	_, err := New().Transform(req)
	if !errors.Is(err, ErrDecodeFailed) {
		t.Errorf("expected ErrDecodeFailed, got %v", err)
	}

	if _, statErr := os.Stat(req.Dest); !os.IsNotExist(statErr) {
		t.Error("failed transform must not leave an output file")
	}
}

func TestTransformUnsupportedFormat(t *testing.T) {
	src := writeTestPNG(t, createTestImage(50, 50))
	req := baseRequest(src, filepath.Join(t.TempDir(), "out.gif"))
	req.Format = types.Format("gif")

	if _, err := New().Transform(req); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTransformCreatesDestDir(t *testing.T) {
	src := writeTestPNG(t, createTestImage(50, 50))
	dst := filepath.Join(t.TempDir(), "nested", "deep", "out.png")

	if _, err := New().Transform(baseRequest(src, dst)); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("expected output at %s: %v", dst, err)
	}
}

func TestInfo(t *testing.T) {
	src := writeTestPNG(t, createTestImage(321, 123))

	info, err := New().Info(src)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Size.Width != 321 || info.Size.Height != 123 {
		t.Errorf("expected 321x123, got %dx%d", info.Size.Width, info.Size.Height)
	}
	if info.Format != "png" {
		t.Errorf("expected png, got %q", info.Format)
	}
	if info.FileSize <= 0 {
		t.Error("expected positive file size")
	}
	if info.HasTransparency {
		t.Error("opaque fixture must not report transparency")
	}
}

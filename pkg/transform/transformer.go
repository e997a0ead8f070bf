// Package transform applies a single image transform: decode, optional
// region extraction, mode-dependent resize or center-crop, and encode with
// format-appropriate options.
package transform

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/menta2k/image-resizer/internal/utils"
	"github.com/menta2k/image-resizer/pkg/geometry"
	"github.com/menta2k/image-resizer/pkg/types"
)

// Transformer applies transform requests to image files
type Transformer struct {
	logger *zap.Logger
}

// New creates a Transformer with a no-op logger
func New() *Transformer {
	return &Transformer{logger: zap.NewNop()}
}

// NewWithLogger creates a Transformer that logs through the given logger
func NewWithLogger(logger *zap.Logger) *Transformer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transformer{logger: logger}
}

// Transform resizes a single image according to the request and writes the
// result to the request's destination. It returns the destination path on
// success. Failures are wrapped in one of the package's error kinds; a
// failed transform never leaves a partially written file behind.
func (t *Transformer) Transform(req types.Request) (string, error) {
	info, ok := types.GetFormatInfo(req.Format)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}

	img, err := t.decode(req.Source)
	if err != nil {
		return "", err
	}

	// Opaque-only formats cannot carry an alpha channel; composite over
	// white before anything else so the encode never drops pixels.
	if !info.SupportsTransparency && !isOpaque(img) {
		img = flatten(img)
	}

	regionApplied := false
	if req.Region != nil {
		b := img.Bounds()
		if r, ok := req.Region.Clamp(b.Dx(), b.Dy()); ok {
			img = imaging.Crop(img, image.Rect(r.Left, r.Top, r.Right, r.Bottom))
			regionApplied = true
		} else {
			t.logger.Warn("invalid region dropped",
				zap.String("source", req.Source),
				zap.Any("region", *req.Region))
		}
	}

	current := types.Dimensions{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	out := geometry.Resolve(current, req.Target, req.Mode, req.PreserveAspect)

	if req.Mode == types.ModeCrop && !regionApplied {
		// combined center-crop to the target ratio plus resize
		img = imaging.Fill(img, req.Target.Width, req.Target.Height, imaging.Center, imaging.Lanczos)
	} else {
		img = imaging.Resize(img, out.Width, out.Height, imaging.Lanczos)
	}

	data, err := t.encode(img, req.Format, req.Quality, req.Lossless)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrEncodeFailed, req.Source, err)
	}

	if req.PreserveMetadata && req.Format == types.FormatJPEG {
		if segment := readEXIFSegment(req.Source); segment != nil {
			data = injectEXIFSegment(data, segment)
		} else {
			t.logger.Debug("no metadata to carry over", zap.String("source", req.Source))
		}
	}

	if err := utils.EnsureDir(filepath.Dir(req.Dest)); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrEncodeFailed, req.Dest, err)
	}
	if err := os.WriteFile(req.Dest, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrEncodeFailed, req.Dest, err)
	}

	t.logger.Debug("transformed image",
		zap.String("source", req.Source),
		zap.String("dest", req.Dest),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return req.Dest, nil
}

// decode loads an image with WebP fallback support
func (t *Transformer) decode(path string) (image.Image, error) {
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
		if _, err := f.Seek(0, 0); err == nil {
			if img, _, err := image.Decode(f); err == nil {
				return img, nil
			}
		}
	} else if img, _, err := image.Decode(f); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrDecodeFailed, path)
}

// encode renders the image to a complete in-memory buffer so a codec
// failure can never truncate the destination file
func (t *Transformer) encode(img image.Image, format types.Format, quality int, lossless bool) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case types.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	case types.FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, err
		}
	case types.FormatWebP:
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		if err := webp.Encode(&buf, img, opts); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return buf.Bytes(), nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// flatten composites the image over an opaque white background
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

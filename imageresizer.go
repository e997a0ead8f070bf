// Package imageresizer provides concurrent batch image resizing.
//
// The package transforms collections of raster images to target dimensions
// under one of four geometric modes (fit, fill, crop, stretch), encodes the
// results as JPEG, PNG or WebP, and names outputs from a pattern template.
// Items are processed across a bounded worker pool; a failed item is logged
// and skipped while the rest of the batch continues.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		imageresizer "github.com/menta2k/image-resizer"
//		"github.com/menta2k/image-resizer/pkg/batch"
//		"github.com/menta2k/image-resizer/pkg/types"
//	)
//
//	func main() {
//		resizer := imageresizer.New()
//
//		outputs, err := resizer.ResizeFolder(context.Background(), "photos", "resized", batch.Settings{
//			Target:         types.Dimensions{Width: 800, Height: 600},
//			Quality:        85,
//			Format:         types.FormatJPEG,
//			Mode:           types.ModeFit,
//			PreserveAspect: true,
//			Pattern:        "{name}_{width}x{height}",
//			OnProgress: func(completed, total int) {
//				fmt.Printf("\r%d/%d", completed, total)
//			},
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("\nresized %d images\n", len(outputs))
//	}
//
// The package consists of four main components:
//
// 1. Geometry (pkg/geometry): Resolves output dimensions per resize mode
// 2. Naming (pkg/naming): Resolves output names from pattern templates
// 3. Transform (pkg/transform): Applies a single decode/crop/resize/encode pipeline
// 4. Batch (pkg/batch): Fans transforms across a bounded worker pool
//
// Supported source formats are JPEG, PNG, BMP, TIFF, WebP and GIF; output
// formats are JPEG (quality-controlled, flattens transparency), PNG and
// WebP (optionally lossless).
package imageresizer

import (
	"context"

	"go.uber.org/zap"

	"github.com/menta2k/image-resizer/pkg/batch"
	"github.com/menta2k/image-resizer/pkg/transform"
	"github.com/menta2k/image-resizer/pkg/types"
)

// Version of the image resizer library
const Version = "1.0.0"

// Resizer provides a high-level interface for single and batch resizing
type Resizer struct {
	transformer  *transform.Transformer
	orchestrator *batch.Orchestrator
}

// New creates a Resizer with a no-op logger
func New() *Resizer {
	return NewWithLogger(nil)
}

// NewWithLogger creates a Resizer that logs through the given logger
func NewWithLogger(logger *zap.Logger) *Resizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resizer{
		transformer:  transform.NewWithLogger(logger),
		orchestrator: batch.NewWithLogger(logger),
	}
}

// ResizeFile transforms a single image and returns the output path
func (r *Resizer) ResizeFile(req types.Request) (string, error) {
	return r.transformer.Transform(req)
}

// ResizeBatch transforms a list of images into destDir and returns the
// output paths of the items that succeeded
func (r *Resizer) ResizeBatch(ctx context.Context, items []string, destDir string, s batch.Settings) ([]string, error) {
	return r.orchestrator.Run(ctx, items, destDir, s)
}

// ResizeFolder recursively transforms all supported images under root
// into destDir
func (r *Resizer) ResizeFolder(ctx context.Context, root, destDir string, s batch.Settings) ([]string, error) {
	return r.orchestrator.RunFolder(ctx, root, destDir, s)
}

// ImageInfo returns basic information about an image file
func (r *Resizer) ImageInfo(path string) (transform.ImageInfo, error) {
	return r.transformer.Info(path)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}

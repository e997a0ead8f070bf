// Package batch drives concurrent image transforms over a bounded worker
// pool. Per-item failures are logged and excluded from the result; they
// never abort the batch.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/menta2k/image-resizer/internal/utils"
	"github.com/menta2k/image-resizer/pkg/naming"
	"github.com/menta2k/image-resizer/pkg/transform"
	"github.com/menta2k/image-resizer/pkg/types"
)

// Settings configures a batch run. The zero value is not usable; start
// from an explicit target size and format.
type Settings struct {
	Target           types.Dimensions
	Quality          int
	Format           types.Format
	Mode             types.Mode
	PreserveAspect   bool
	PreserveMetadata bool
	Lossless         bool

	// Pattern is the output naming pattern, see package naming
	Pattern string

	// Workers bounds concurrently active transforms. 0 selects
	// min(4, available CPUs).
	Workers int

	// Regions maps a source path or base name to an explicit crop
	// region for that item.
	Regions map[string]types.Region

	// OnProgress, when set, is called exactly once per item with the
	// completed and total counts, regardless of the item's outcome.
	// Calls are serialized and completed counts arrive in order; the
	// callback should return quickly.
	OnProgress func(completed, total int)
}

// Orchestrator fans transform work across a worker pool
type Orchestrator struct {
	transformer *transform.Transformer
	logger      *zap.Logger
}

// New creates an Orchestrator with a no-op logger
func New() *Orchestrator {
	return NewWithLogger(nil)
}

// NewWithLogger creates an Orchestrator that logs through the given logger
func NewWithLogger(logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		transformer: transform.NewWithLogger(logger),
		logger:      logger,
	}
}

// Run transforms every item into destDir and returns the paths of the
// outputs that succeeded, in completion order. Each item's sequence index
// for naming is its 1-based position in items, stable regardless of
// completion order. The only batch-fatal errors are an unknown output
// format and failure to create destDir.
func (o *Orchestrator) Run(ctx context.Context, items []string, destDir string, s Settings) ([]string, error) {
	if len(items) == 0 {
		return nil, nil
	}
	info, ok := types.GetFormatInfo(s.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", transform.ErrUnsupportedFormat, s.Format)
	}
	if err := utils.EnsureDir(destDir); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}

	workers := s.Workers
	if workers <= 0 {
		workers = defaultWorkers()
	}
	if workers > len(items) {
		workers = len(items)
	}

	total := len(items)
	var (
		mu        sync.Mutex
		outputs   []string
		completed int
	)

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, src := range items {
		req := o.buildRequest(i+1, src, destDir, info.Extension, s)
		g.Go(func() error {
			var dst string
			err := ctx.Err()
			if err == nil {
				dst, err = o.transformer.Transform(req)
			}
			if err != nil {
				o.logger.Warn("item failed",
					zap.String("source", req.Source),
					zap.Error(err))
			}

			// the callback runs under the lock so completed counts
			// arrive strictly in order
			mu.Lock()
			completed++
			if err == nil {
				outputs = append(outputs, dst)
			}
			if s.OnProgress != nil {
				s.OnProgress(completed, total)
			}
			mu.Unlock()

			// per-item failures never cancel sibling tasks
			return nil
		})
	}
	_ = g.Wait()

	o.logger.Info("batch complete",
		zap.Int("succeeded", len(outputs)),
		zap.Int("total", total))
	return outputs, nil
}

// RunFolder enumerates all supported images under root recursively and
// transforms them into destDir.
func (o *Orchestrator) RunFolder(ctx context.Context, root, destDir string, s Settings) ([]string, error) {
	items, err := utils.ListImageFiles(root)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", root, err)
	}
	return o.Run(ctx, items, destDir, s)
}

// buildRequest assembles the immutable per-item transform request. The
// sequence index is precomputed here so duplicate base names can never
// resolve to the wrong position.
func (o *Orchestrator) buildRequest(index int, src, destDir, ext string, s Settings) types.Request {
	base := filepath.Base(src)
	name := naming.Resolve(s.Pattern, naming.Context{
		Name:         utils.Stem(src),
		OriginalName: base,
		Index:        index,
		Width:        s.Target.Width,
		Height:       s.Target.Height,
	})
	name = utils.SanitizeFilename(name)

	req := types.Request{
		Source:           src,
		Dest:             filepath.Join(destDir, name+"."+ext),
		Target:           s.Target,
		Quality:          s.Quality,
		Format:           s.Format,
		Mode:             s.Mode,
		PreserveAspect:   s.PreserveAspect,
		PreserveMetadata: s.PreserveMetadata,
		Lossless:         s.Lossless,
	}
	if s.Regions != nil {
		if r, ok := s.Regions[src]; ok {
			req.Region = &r
		} else if r, ok := s.Regions[base]; ok {
			req.Region = &r
		}
	}
	return req
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

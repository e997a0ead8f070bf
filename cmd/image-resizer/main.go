package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	imageresizer "github.com/menta2k/image-resizer"
	"github.com/menta2k/image-resizer/internal/config"
	"github.com/menta2k/image-resizer/internal/utils"
	"github.com/menta2k/image-resizer/pkg/batch"
	"github.com/menta2k/image-resizer/pkg/types"
)

func main() {
	cfg := config.Default()
	if err := cfg.FromEnv(); err != nil {
		log.Fatalf("environment config: %v", err)
	}

	var in, cfgPath string
	var verbose, info bool

	flag.StringVar(&in, "in", "", "input image file or directory")
	flag.StringVar(&cfgPath, "config", "", "JSON config file (overrides defaults, overridden by flags)")
	flag.IntVar(&cfg.Resize.Width, "width", cfg.Resize.Width, "target width in pixels")
	flag.IntVar(&cfg.Resize.Height, "height", cfg.Resize.Height, "target height in pixels")
	flag.IntVar(&cfg.Resize.Quality, "quality", cfg.Resize.Quality, "JPEG/WebP output quality (1-100)")
	flag.StringVar(&cfg.Resize.Format, "format", cfg.Resize.Format, "output format: jpeg|png|webp")
	flag.StringVar(&cfg.Resize.Mode, "mode", cfg.Resize.Mode, "resize mode: fit|fill|crop|stretch")
	flag.BoolVar(&cfg.Resize.PreserveAspect, "aspect", cfg.Resize.PreserveAspect, "preserve aspect ratio")
	flag.BoolVar(&cfg.Resize.PreserveMetadata, "metadata", cfg.Resize.PreserveMetadata, "carry EXIF metadata into JPEG output")
	flag.BoolVar(&cfg.Resize.Lossless, "lossless", cfg.Resize.Lossless, "WebP lossless mode")
	flag.StringVar(&cfg.Output.Dir, "out", cfg.Output.Dir, "output directory")
	flag.StringVar(&cfg.Output.NamingPattern, "pattern", cfg.Output.NamingPattern, "output naming pattern, e.g. {name}_{width}x{height}")
	flag.IntVar(&cfg.Batch.Workers, "workers", cfg.Batch.Workers, "concurrent workers (0 = auto)")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.BoolVar(&info, "info", false, "print image information instead of resizing")
	flag.Parse()

	if in == "" {
		log.Fatalf("usage: %s -in input.jpg|dir [-out outdir] [-width 800] [-height 600] [-mode fit|fill|crop|stretch] [-format jpeg|png|webp]", filepath.Base(os.Args[0]))
	}

	if cfgPath != "" {
		fileCfg, err := config.LoadFromFile(cfgPath)
		if err != nil {
			log.Fatal(err)
		}
		// flags already parsed win over the file
		applyUnsetDefaults(cfg, fileCfg)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		logger = l
		defer logger.Sync()
	}

	resizer := imageresizer.NewWithLogger(logger)

	if info {
		printInfo(resizer, in)
		return
	}

	format, _ := types.ParseFormat(cfg.Resize.Format)
	mode, _ := types.ParseMode(cfg.Resize.Mode)
	settings := batch.Settings{
		Target:           types.Dimensions{Width: cfg.Resize.Width, Height: cfg.Resize.Height},
		Quality:          cfg.Resize.Quality,
		Format:           format,
		Mode:             mode,
		PreserveAspect:   cfg.Resize.PreserveAspect,
		PreserveMetadata: cfg.Resize.PreserveMetadata,
		Lossless:         cfg.Resize.Lossless,
		Pattern:          cfg.Output.NamingPattern,
		Workers:          cfg.Batch.Workers,
		OnProgress: func(completed, total int) {
			log.Printf("processed %d/%d", completed, total)
		},
	}

	start := time.Now()
	var outputs []string
	var err error
	if utils.DirExists(in) {
		outputs, err = resizer.ResizeFolder(context.Background(), in, cfg.Output.Dir, settings)
	} else {
		outputs, err = resizer.ResizeBatch(context.Background(), []string{in}, cfg.Output.Dir, settings)
	}
	if err != nil {
		log.Fatal(err)
	}

	var totalSize int64
	for _, out := range outputs {
		if st, err := os.Stat(out); err == nil {
			totalSize += st.Size()
		}
	}
	log.Printf("resized %d images in %s (%s written to %s)",
		len(outputs), time.Since(start).Round(time.Millisecond),
		utils.FormatFileSize(totalSize), cfg.Output.Dir)
}

// applyUnsetDefaults copies file-config values into cfg for flags the user
// did not pass on the command line
func applyUnsetDefaults(cfg, fileCfg *config.Config) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["width"] {
		cfg.Resize.Width = fileCfg.Resize.Width
	}
	if !set["height"] {
		cfg.Resize.Height = fileCfg.Resize.Height
	}
	if !set["quality"] {
		cfg.Resize.Quality = fileCfg.Resize.Quality
	}
	if !set["format"] {
		cfg.Resize.Format = fileCfg.Resize.Format
	}
	if !set["mode"] {
		cfg.Resize.Mode = fileCfg.Resize.Mode
	}
	if !set["aspect"] {
		cfg.Resize.PreserveAspect = fileCfg.Resize.PreserveAspect
	}
	if !set["metadata"] {
		cfg.Resize.PreserveMetadata = fileCfg.Resize.PreserveMetadata
	}
	if !set["lossless"] {
		cfg.Resize.Lossless = fileCfg.Resize.Lossless
	}
	if !set["out"] {
		cfg.Output.Dir = fileCfg.Output.Dir
	}
	if !set["pattern"] {
		cfg.Output.NamingPattern = fileCfg.Output.NamingPattern
	}
	if !set["workers"] {
		cfg.Batch.Workers = fileCfg.Batch.Workers
	}
}

func printInfo(resizer *imageresizer.Resizer, in string) {
	paths := []string{in}
	if utils.DirExists(in) {
		var err error
		paths, err = utils.ListImageFiles(in)
		if err != nil {
			log.Fatal(err)
		}
	}
	for _, path := range paths {
		info, err := resizer.ImageInfo(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			continue
		}
		fmt.Printf("%s: %s %dx%d %s transparency=%v\n",
			info.Path, info.Format, info.Size.Width, info.Size.Height,
			utils.FormatFileSize(info.FileSize), info.HasTransparency)
	}
}

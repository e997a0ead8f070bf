package transform

import (
	"fmt"
	"image"
	"os"

	"github.com/menta2k/image-resizer/pkg/types"
)

// ImageInfo contains basic information about a source image file
type ImageInfo struct {
	Path            string           `json:"path"`
	Format          string           `json:"format"`
	Size            types.Dimensions `json:"size"`
	FileSize        int64            `json:"file_size"`
	HasTransparency bool             `json:"has_transparency"`
}

// Info probes an image file without transforming it
func (t *Transformer) Info(path string) (ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	_, format, cfgErr := image.DecodeConfig(f)
	f.Close()

	img, err := t.decode(path)
	if err != nil {
		return ImageInfo{}, err
	}
	if cfgErr != nil {
		format = "webp"
	}

	info := ImageInfo{
		Path:   path,
		Format: format,
		Size: types.Dimensions{
			Width:  img.Bounds().Dx(),
			Height: img.Bounds().Dy(),
		},
		HasTransparency: !isOpaque(img),
	}
	if st, err := os.Stat(path); err == nil {
		info.FileSize = st.Size()
	}
	return info, nil
}

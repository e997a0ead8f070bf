package types

import "strings"

// Dimensions represents a width/height pair in pixels
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AspectRatio returns the width-to-height ratio
func (d Dimensions) AspectRatio() float64 {
	if d.Height == 0 {
		return 0
	}
	return float64(d.Width) / float64(d.Height)
}

// Mode defines how an image is mapped onto the target dimensions
type Mode string

// Resize modes
const (
	// ModeFit scales the image to fit entirely inside the target box,
	// preserving aspect ratio. Output is at most the target in both axes.
	ModeFit Mode = "fit"
	// ModeFill scales the image to cover the target box, preserving
	// aspect ratio. The output overshoots the target in one axis; no
	// center-crop back to the target is applied.
	ModeFill Mode = "fill"
	// ModeCrop center-crops to the target aspect ratio and resizes to
	// exactly the target dimensions.
	ModeCrop Mode = "crop"
	// ModeStretch resizes to exactly the target dimensions, ignoring
	// aspect ratio.
	ModeStretch Mode = "stretch"
)

// ParseMode parses a mode name (case-insensitive). Unknown names fall
// back to ModeFit.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFit:
		return ModeFit, true
	case ModeFill:
		return ModeFill, true
	case ModeCrop:
		return ModeCrop, true
	case ModeStretch:
		return ModeStretch, true
	}
	return ModeFit, false
}

// AllModes returns the supported resize modes
func AllModes() []Mode {
	return []Mode{ModeFit, ModeFill, ModeCrop, ModeStretch}
}

// Region represents an explicit crop rectangle in source-pixel coordinates
type Region struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Clamp constrains the region to an image of the given size. Left/top are
// floored at zero, right/bottom are capped at the image extent and each
// pair is ordered. The second return value is false when the clamped
// region has no area.
func (r Region) Clamp(width, height int) (Region, bool) {
	c := Region{
		Left: clampInt(r.Left, 0, width),
		Top:  clampInt(r.Top, 0, height),
	}
	c.Right = clampInt(r.Right, c.Left, width)
	c.Bottom = clampInt(r.Bottom, c.Top, height)
	return c, c.Right > c.Left && c.Bottom > c.Top
}

// Size returns the region's dimensions
func (r Region) Size() Dimensions {
	return Dimensions{Width: r.Right - r.Left, Height: r.Bottom - r.Top}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Request describes a single image transform. It is built once per item
// and never mutated afterwards; workers each own their copy.
type Request struct {
	Source           string
	Dest             string
	Target           Dimensions
	Quality          int
	Format           Format
	Mode             Mode
	PreserveAspect   bool
	PreserveMetadata bool
	Lossless         bool
	Region           *Region
}

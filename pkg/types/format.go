package types

import "strings"

// Format identifies an output codec
type Format string

// Output formats
const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// FormatInfo describes the capabilities of an output format
type FormatInfo struct {
	Name                 string `json:"name"`
	Extension            string `json:"extension"`
	Lossy                bool   `json:"lossy"`
	SupportsLossless     bool   `json:"supports_lossless"`
	SupportsTransparency bool   `json:"supports_transparency"`
	Description          string `json:"description"`
}

// formatInfos is built once and only read afterwards; GetFormatInfo hands
// out copies.
var formatInfos = map[Format]FormatInfo{
	FormatJPEG: {
		Name:                 "JPEG",
		Extension:            "jpeg",
		Lossy:                true,
		SupportsLossless:     false,
		SupportsTransparency: false,
		Description:          "Lossy compression, best for photos",
	},
	FormatPNG: {
		Name:                 "PNG",
		Extension:            "png",
		Lossy:                false,
		SupportsLossless:     true,
		SupportsTransparency: true,
		Description:          "Lossless compression, preserves transparency",
	},
	FormatWebP: {
		Name:                 "WebP",
		Extension:            "webp",
		Lossy:                true,
		SupportsLossless:     true,
		SupportsTransparency: true,
		Description:          "Modern format with lossy or lossless compression",
	},
}

// GetFormatInfo returns the descriptor for a format
func GetFormatInfo(f Format) (FormatInfo, bool) {
	info, ok := formatInfos[f]
	return info, ok
}

// ParseFormat parses a format name (case-insensitive), accepting common
// extension aliases such as "jpg".
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpeg", "jpg":
		return FormatJPEG, true
	case "png":
		return FormatPNG, true
	case "webp":
		return FormatWebP, true
	}
	return FormatJPEG, false
}

// AllFormats returns the supported output formats
func AllFormats() []Format {
	return []Format{FormatJPEG, FormatPNG, FormatWebP}
}

// SupportsLossless reports whether a format has a lossless mode
func SupportsLossless(f Format) bool {
	info, ok := formatInfos[f]
	return ok && info.SupportsLossless
}

// Package geometry resolves output dimensions for the supported resize
// modes. All functions are pure and perform no I/O.
package geometry

import (
	"math"

	"github.com/menta2k/image-resizer/pkg/types"
)

// Resolve maps an image's current dimensions and a requested target onto
// the final output dimensions for the given mode.
//
// Stretch (or preserveAspect=false) returns the target verbatim and is the
// only combination allowed to distort. Fit returns the largest box inside
// the target with the original ratio. Fill returns the smallest box
// covering the target with the original ratio, so one axis overshoots.
// Crop returns the target exactly; the aspect-preserving crop itself
// happens in the transform composite step.
func Resolve(original, target types.Dimensions, mode types.Mode, preserveAspect bool) types.Dimensions {
	if mode == types.ModeStretch || !preserveAspect {
		return target
	}

	origRatio := float64(original.Width) / float64(original.Height)
	targetRatio := float64(target.Width) / float64(target.Height)

	switch mode {
	case types.ModeFit:
		if origRatio > targetRatio {
			return dims(target.Width, round(float64(target.Width)/origRatio))
		}
		return dims(round(float64(target.Height)*origRatio), target.Height)
	case types.ModeFill:
		if origRatio > targetRatio {
			return dims(round(float64(target.Height)*origRatio), target.Height)
		}
		return dims(target.Width, round(float64(target.Width)/origRatio))
	}

	// crop and anything unrecognized resolve to the target itself
	return target
}

func round(v float64) int {
	return int(math.Round(v))
}

// dims floors each axis at 1 so degenerate ratios never yield a zero axis
func dims(w, h int) types.Dimensions {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return types.Dimensions{Width: w, Height: h}
}

// Package perturb generates stacks of occlusion masks from a
// reference image, for black-box saliency estimation: a model is
// probed with occluded variants of an input and the output shift per
// mask locates the regions the model relies on.
//
// Two generators are provided. SlidingWindow slides a rectangular
// hard-occlusion window over the image plane; SlidingRadial slides an
// elliptical occlusion area, optionally blurred into a smooth
// occlusion gradient. Both are stateless and safe for reuse across
// images of different sizes.
package perturb

import (
	"image"

	"github.com/ivlev/perturb/mask"
)

// Perturber produces one occlusion mask per window/radial position
// covering the reference image. Only the image bounds are read;
// pixel data never influences the masks. The result is deterministic
// for a given generator configuration and image size.
type Perturber interface {
	// Perturb returns a stack of masks with the same height and
	// width as ref. It fails only when ref has an empty bounds.
	Perturb(ref image.Image) (mask.Stack, error)

	// Config returns the construction parameters in their canonical
	// JSON-serializable shape, suitable for New.
	Config() map[string]any
}

// gridPositions returns 0, step, 2*step, ... strictly below limit.
// For limit ≥ 1 there is always at least one position.
func gridPositions(limit, step int) []int {
	pos := make([]int, 0, (limit+step-1)/step)
	for p := 0; p < limit; p += step {
		pos = append(pos, p)
	}
	return pos
}

// floorDiv divides a by b rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

package mask

import (
	"math"

	"github.com/ivlev/perturb/internal/system"
)

// gaussKernel builds a normalized 1D Gaussian kernel for the given
// standard deviation, truncated at 4σ.
func gaussKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	k := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range k {
		d := float64(i - radius)
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// reflect maps an out-of-range index into [0, n) by mirroring across
// the edges, repeating the edge sample.
func reflect(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - 1 - i
		}
	}
	return i
}

// Blur convolves mask i with a separable 2D Gaussian kernel of
// standard deviation (sigmaY, sigmaX), using reflected boundaries.
func (s *Soft) Blur(i int, sigmaY, sigmaX float64) {
	plane := s.Plane(i)
	tmp := system.GetScratch(len(plane))
	defer system.PutScratch(tmp)

	// Vertical pass into tmp.
	ky := gaussKernel(sigmaY)
	ry := len(ky) / 2
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			acc := 0.0
			for j, kv := range ky {
				yy := reflect(y+j-ry, s.h)
				acc += kv * float64(plane[yy*s.w+x])
			}
			tmp[y*s.w+x] = acc
		}
	}

	// Horizontal pass back into the plane.
	kx := gaussKernel(sigmaX)
	rx := len(kx) / 2
	for y := 0; y < s.h; y++ {
		row := tmp[y*s.w : y*s.w+s.w]
		for x := 0; x < s.w; x++ {
			acc := 0.0
			for j, kv := range kx {
				acc += kv * row[reflect(x+j-rx, s.w)]
			}
			plane[y*s.w+x] = float32(acc)
		}
	}
}

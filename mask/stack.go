// Package mask holds stacks of 2D occlusion masks and the raster
// operations used to draw them. A stack stores N masks of identical
// height and width in one contiguous buffer, so generating a large
// number of masks costs a single allocation.
package mask

import "image"

// Stack is an ordered sequence of H×W masks. Values follow the
// keep/occlude convention: 1 keeps a pixel, 0 fully occludes it.
type Stack interface {
	// Len returns the number of masks in the stack.
	Len() int
	// Size returns the height and width shared by every mask.
	Size() (h, w int)
	// At returns the keep-weight of pixel (y, x) in mask i.
	At(i, y, x int) float64
}

// Binary is a stack of hard boolean masks. true keeps a pixel,
// false occludes it.
type Binary struct {
	h, w int
	pix  []bool
}

// NewBinary allocates a stack of n h×w boolean masks, every pixel
// initialized to keep.
func NewBinary(n, h, w int, keep bool) *Binary {
	b := &Binary{h: h, w: w, pix: make([]bool, n*h*w)}
	if keep {
		for i := range b.pix {
			b.pix[i] = true
		}
	}
	return b
}

func (b *Binary) Len() int         { return len(b.pix) / (b.h * b.w) }
func (b *Binary) Size() (h, w int) { return b.h, b.w }

// Bit returns the keep flag of pixel (y, x) in mask i.
func (b *Binary) Bit(i, y, x int) bool {
	return b.pix[(i*b.h+y)*b.w+x]
}

func (b *Binary) At(i, y, x int) float64 {
	if b.Bit(i, y, x) {
		return 1
	}
	return 0
}

// Plane returns mask i as a row-major view into the stack buffer.
func (b *Binary) Plane(i int) []bool {
	return b.pix[i*b.h*b.w : (i+1)*b.h*b.w]
}

// SetRect sets every pixel of mask i inside r to keep. The rectangle
// is clipped to the mask bounds, so windows hanging over an edge
// occlude only their visible part.
func (b *Binary) SetRect(i int, r image.Rectangle, keep bool) {
	r = r.Intersect(image.Rect(0, 0, b.w, b.h))
	plane := b.Plane(i)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := plane[y*b.w : y*b.w+b.w]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = keep
		}
	}
}

// Soft is a stack of weighted masks with values in [0, 1].
type Soft struct {
	h, w int
	pix  []float32
}

// NewSoft allocates a stack of n h×w weighted masks, zero-filled.
func NewSoft(n, h, w int) *Soft {
	return &Soft{h: h, w: w, pix: make([]float32, n*h*w)}
}

func (s *Soft) Len() int         { return len(s.pix) / (s.h * s.w) }
func (s *Soft) Size() (h, w int) { return s.h, s.w }

// Value returns the raw weight of pixel (y, x) in mask i.
func (s *Soft) Value(i, y, x int) float32 {
	return s.pix[(i*s.h+y)*s.w+x]
}

func (s *Soft) At(i, y, x int) float64 {
	return float64(s.Value(i, y, x))
}

// Plane returns mask i as a row-major view into the stack buffer.
func (s *Soft) Plane(i int) []float32 {
	return s.pix[i*s.h*s.w : (i+1)*s.h*s.w]
}

// Invert replaces every value v of mask i with 1−v.
func (s *Soft) Invert(i int) {
	plane := s.Plane(i)
	for j, v := range plane {
		plane[j] = 1 - v
	}
}

// NormalizeMax rescales mask i so its maximum value is exactly 1.
// A mask that is entirely zero is left unchanged.
func (s *Soft) NormalizeMax(i int) {
	plane := s.Plane(i)
	var max float32
	for _, v := range plane {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return
	}
	for j, v := range plane {
		plane[j] = v / max
	}
}

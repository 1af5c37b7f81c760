package mask

import "math"

// ellipseRows visits every pixel inside the ellipse centered at
// (cy, cx) with semi-axes ry and rx, clipped to an h×w plane. A pixel
// (y, x) is inside when ((y-cy)/ry)² + ((x-cx)/rx)² ≤ 1. For each row
// that intersects the ellipse, fn receives the row index and the
// inclusive column span.
func ellipseRows(cy, cx int, ry, rx float64, h, w int, fn func(y, x0, x1 int)) {
	y0 := int(math.Ceil(float64(cy) - ry))
	y1 := int(math.Floor(float64(cy) + ry))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > h-1 {
		y1 = h - 1
	}
	for y := y0; y <= y1; y++ {
		dy := float64(y-cy) / ry
		rem := 1 - dy*dy
		if rem < 0 {
			continue
		}
		inside := func(x int) bool {
			dx := float64(x-cx) / rx
			return dy*dy+dx*dx <= 1
		}
		// Half-width of the ellipse at this row gives a candidate
		// span, widened by one pixel; the span is then tightened
		// with the membership rule itself, so sqrt rounding can
		// never drop an exact-boundary pixel.
		span := rx * math.Sqrt(rem)
		x0 := int(math.Ceil(float64(cx)-span)) - 1
		x1 := int(math.Floor(float64(cx)+span)) + 1
		for x0 <= x1 && !inside(x0) {
			x0++
		}
		for x1 >= x0 && !inside(x1) {
			x1--
		}
		if x0 < 0 {
			x0 = 0
		}
		if x1 > w-1 {
			x1 = w - 1
		}
		if x0 > x1 {
			continue
		}
		fn(y, x0, x1)
	}
}

// SetEllipse sets every pixel of mask i inside the ellipse centered
// at (cy, cx) with semi-axes ry and rx, clipped to the mask bounds.
func (b *Binary) SetEllipse(i, cy, cx int, ry, rx float64, keep bool) {
	plane := b.Plane(i)
	ellipseRows(cy, cx, ry, rx, b.h, b.w, func(y, x0, x1 int) {
		row := plane[y*b.w : y*b.w+b.w]
		for x := x0; x <= x1; x++ {
			row[x] = keep
		}
	})
}

// FillEllipse sets every pixel of mask i inside the ellipse centered
// at (cy, cx) with semi-axes ry and rx to 1, clipped to the mask
// bounds.
func (s *Soft) FillEllipse(i, cy, cx int, ry, rx float64) {
	plane := s.Plane(i)
	ellipseRows(cy, cx, ry, rx, s.h, s.w, func(y, x0, x1 int) {
		row := plane[y*s.w : y*s.w+s.w]
		for x := x0; x <= x1; x++ {
			row[x] = 1
		}
	})
}

// Package occlude applies occlusion mask stacks to a reference
// image, producing the perturbed variants that are fed to the model
// under test. Occluded pixels are replaced with content from a
// configurable Fill; kept pixels pass through unchanged. Soft masks
// blend the two proportionally to their keep-weight.
package occlude

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/perturb/internal/system"
	"github.com/ivlev/perturb/mask"
)

// Fill produces the replacement content for occluded pixels of a
// reference image.
type Fill interface {
	// Background returns an image whose pixels replace occluded
	// regions of ref. Its At must cover the bounds of ref.
	Background(ref image.Image) image.Image
}

// Uniform fills occluded pixels with a constant color.
type Uniform struct {
	C color.Color
}

func (u Uniform) Background(ref image.Image) image.Image {
	return image.NewUniform(u.C)
}

// Blur fills occluded pixels with a Gaussian-blurred copy of the
// reference itself, so occlusion removes detail instead of
// introducing a hard artificial color.
type Blur struct {
	Sigma float64
}

func (b Blur) Background(ref image.Image) image.Image {
	return imaging.Blur(ref, b.Sigma)
}

// Image fills occluded pixels from an explicit image, rescaled to the
// reference size when the dimensions differ.
type Image struct {
	Img image.Image
}

func (f Image) Background(ref image.Image) image.Image {
	rb, fb := ref.Bounds(), f.Img.Bounds()
	if fb.Dx() == rb.Dx() && fb.Dy() == rb.Dy() {
		return f.Img
	}
	dst := image.NewRGBA(image.Rect(0, 0, rb.Dx(), rb.Dy()))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), f.Img, fb, xdraw.Src, nil)
	return dst
}

// Apply produces the perturbed variant of ref for mask i of the
// stack: out = ref·w + fill·(1−w) per pixel, where w is the mask's
// keep-weight. The stack must have the same height and width as ref.
func Apply(ref image.Image, st mask.Stack, i int, fill Fill) (*image.RGBA, error) {
	bg := fill.Background(ref)
	return apply(toRGBA(ref), bg, st, i)
}

// Batch produces one perturbed variant per mask in the stack,
// computing the fill background once and blending masks in parallel.
func Batch(ref image.Image, st mask.Stack, fill Fill) ([]*image.RGBA, error) {
	src := toRGBA(ref)
	bg := fill.Background(ref)

	out := make([]*image.RGBA, st.Len())
	var g errgroup.Group
	g.SetLimit(system.Workers())
	for i := range out {
		i := i
		g.Go(func() error {
			img, err := apply(src, bg, st, i)
			if err != nil {
				return err
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func apply(src *image.RGBA, bg image.Image, st mask.Stack, i int) (*image.RGBA, error) {
	h, w := st.Size()
	if src.Bounds().Dy() != h || src.Bounds().Dx() != w {
		return nil, fmt.Errorf("mask size %dx%d does not match image %dx%d",
			w, h, src.Bounds().Dx(), src.Bounds().Dy())
	}

	bgMin := bg.Bounds().Min
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			weight := st.At(i, y, x)
			so := src.PixOffset(x, y)
			oo := out.PixOffset(x, y)
			switch weight {
			case 1:
				copy(out.Pix[oo:oo+4], src.Pix[so:so+4])
			case 0:
				r, g, b, a := bg.At(bgMin.X+x, bgMin.Y+y).RGBA()
				out.Pix[oo+0] = uint8(r >> 8)
				out.Pix[oo+1] = uint8(g >> 8)
				out.Pix[oo+2] = uint8(b >> 8)
				out.Pix[oo+3] = uint8(a >> 8)
			default:
				r, g, b, a := bg.At(bgMin.X+x, bgMin.Y+y).RGBA()
				fillPix := [4]float64{float64(r >> 8), float64(g >> 8), float64(b >> 8), float64(a >> 8)}
				for c := 0; c < 4; c++ {
					v := float64(src.Pix[so+c])*weight + fillPix[c]*(1-weight)
					out.Pix[oo+c] = uint8(v + 0.5)
				}
			}
		}
	}
	return out, nil
}

// toRGBA normalizes ref into an RGBA image with bounds anchored at
// the origin.
func toRGBA(ref image.Image) *image.RGBA {
	b := ref.Bounds()
	if rgba, ok := ref.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), ref, b.Min, draw.Src)
	return dst
}

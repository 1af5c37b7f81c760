package perturb

import (
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/perturb/internal/system"
	"github.com/ivlev/perturb/mask"
)

// SlidingRadial produces occlusion masks by sliding an elliptical
// occlusion area over the image plane. Equal radius values give
// circular areas, unequal values elliptical ones. With sigma set,
// each mask is blurred with a Gaussian kernel and renormalized,
// turning the hard ellipse into a smooth gradient from full occlusion
// at the center to none at the edge; masks are then float32 in [0, 1]
// instead of boolean.
//
// As with SlidingWindow, a stride that does not evenly divide the
// radial size, or that exceeds the radial diameter, leaves the summed
// mask plane uneven. Accepted geometry, not corrected.
type SlidingRadial struct {
	cfg RadialConfig
}

var _ Perturber = (*SlidingRadial)(nil)

// NewSlidingRadial builds a SlidingRadial generator. Unset fields of
// cfg take the defaults from DefaultRadialConfig; invalid parameters
// fail here, never during Perturb.
func NewSlidingRadial(cfg RadialConfig) (*SlidingRadial, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Radius = append([]float64(nil), cfg.Radius...)
	cfg.Stride = append([]int(nil), cfg.Stride...)
	cfg.Sigma = append([]float64(nil), cfg.Sigma...)
	return &SlidingRadial{cfg: cfg}, nil
}

// Perturb returns one mask per radial center, centers enumerated top
// row first with the x coordinate varying fastest. Every mask has the
// height and width of ref.
func (s *SlidingRadial) Perturb(ref image.Image) (mask.Stack, error) {
	imgH, imgW := ref.Bounds().Dy(), ref.Bounds().Dx()
	if imgH < 1 || imgW < 1 {
		return nil, fmt.Errorf("reference image is empty: %dx%d", imgW, imgH)
	}
	radY, radX := s.cfg.Radius[0], s.cfg.Radius[1]

	centerYs := gridPositions(imgH, s.cfg.Stride[0])
	centerXs := gridPositions(imgW, s.cfg.Stride[1])
	n := len(centerYs) * len(centerXs)

	var g errgroup.Group
	g.SetLimit(system.Workers())

	if s.cfg.Sigma == nil {
		// Hard masks: keep everything, occlude the ellipse.
		st := mask.NewBinary(n, imgH, imgW, true)
		for yi, cy := range centerYs {
			for xi, cx := range centerXs {
				i := yi*len(centerXs) + xi
				cy, cx := cy, cx
				g.Go(func() error {
					st.SetEllipse(i, cy, cx, radY, radX, false)
					return nil
				})
			}
		}
		g.Wait()
		return st, nil
	}

	sigY, sigX := s.cfg.Sigma[0], s.cfg.Sigma[1]
	st := mask.NewSoft(n, imgH, imgW)
	for yi, cy := range centerYs {
		for xi, cx := range centerXs {
			i := yi*len(centerXs) + xi
			cy, cx := cy, cx
			g.Go(func() error {
				st.FillEllipse(i, cy, cx, radY, radX)
				st.Blur(i, sigY, sigX)
				st.NormalizeMax(i)
				st.Invert(i)
				return nil
			})
		}
	}
	g.Wait()
	return st, nil
}

// Config returns the construction parameters in their canonical
// JSON-serializable shape. Sigma appears as null when unset.
func (s *SlidingRadial) Config() map[string]any {
	return configMap(s.cfg)
}

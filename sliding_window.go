package perturb

import (
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/perturb/internal/system"
	"github.com/ivlev/perturb/mask"
)

// SlidingWindow produces hard occlusion masks by sliding a
// rectangular window of a configured size over the image plane. Each
// mask keeps every pixel except the window rectangle at one grid
// position.
//
// If the stride does not evenly divide the window size along an axis,
// the plane of values obtained by summing all masks is uneven. The
// same holds when the stride exceeds the window size, which leaves
// valleys of never-occluded space between masked regions. Both are
// accepted geometry, not corrected.
type SlidingWindow struct {
	cfg WindowConfig
}

var _ Perturber = (*SlidingWindow)(nil)

// NewSlidingWindow builds a SlidingWindow generator. Unset fields of
// cfg take the defaults from DefaultWindowConfig; invalid parameters
// fail here, never during Perturb.
func NewSlidingWindow(cfg WindowConfig) (*SlidingWindow, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.WindowSize = append([]int(nil), cfg.WindowSize...)
	cfg.Stride = append([]int(nil), cfg.Stride...)
	return &SlidingWindow{cfg: cfg}, nil
}

// Perturb returns one boolean mask per window position, in row-major
// order: all columns of the first row of positions, then the next
// row. Every mask has the height and width of ref.
func (s *SlidingWindow) Perturb(ref image.Image) (mask.Stack, error) {
	imgH, imgW := ref.Bounds().Dy(), ref.Bounds().Dx()
	if imgH < 1 || imgW < 1 {
		return nil, fmt.Errorf("reference image is empty: %dx%d", imgW, imgH)
	}
	winH, winW := s.cfg.WindowSize[0], s.cfg.WindowSize[1]

	rows := gridPositions(imgH, s.cfg.Stride[0])
	cols := gridPositions(imgW, s.cfg.Stride[1])

	// Overhang of the window anchored at the last grid position.
	// Shifting the whole grid back by half of it centers the windows,
	// splitting the uncovered margin between both image edges.
	overhangH := winH - (imgH - rows[len(rows)-1])
	overhangW := winW - (imgW - cols[len(cols)-1])
	for i := range rows {
		rows[i] -= floorDiv(overhangH, 2)
	}
	for i := range cols {
		cols[i] -= floorDiv(overhangW, 2)
	}

	st := mask.NewBinary(len(rows)*len(cols), imgH, imgW, true)

	var g errgroup.Group
	g.SetLimit(system.Workers())
	for ri, r := range rows {
		for ci, c := range cols {
			i := ri*len(cols) + ci
			r, c := r, c
			g.Go(func() error {
				st.SetRect(i, image.Rect(c, r, c+winW, r+winH), false)
				return nil
			})
		}
	}
	g.Wait()

	return st, nil
}

// Config returns the construction parameters in their canonical
// JSON-serializable shape.
func (s *SlidingWindow) Config() map[string]any {
	return configMap(s.cfg)
}

package perturb

import (
	"image"
	"testing"

	"github.com/ivlev/perturb/mask"
)

func refImage(w, h int) image.Image {
	return image.NewGray(image.Rect(0, 0, w, h))
}

func windowGen(t *testing.T, winH, winW, strideH, strideW int) *SlidingWindow {
	t.Helper()
	g, err := NewSlidingWindow(WindowConfig{
		WindowSize: []int{winH, winW},
		Stride:     []int{strideH, strideW},
	})
	if err != nil {
		t.Fatalf("NewSlidingWindow failed: %v", err)
	}
	return g
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func TestSlidingWindowQuadrants(t *testing.T) {
	// 100×100 image with a 50×50 window at a 50×50 stride: four masks,
	// each occluding a distinct quadrant, tiling the image exactly.
	g := windowGen(t, 50, 50, 50, 50)

	st, err := g.Perturb(refImage(100, 100))
	if err != nil {
		t.Fatalf("Perturb failed: %v", err)
	}

	bin, ok := st.(*mask.Binary)
	if !ok {
		t.Fatalf("stack type %T, want *mask.Binary", st)
	}
	if bin.Len() != 4 {
		t.Fatalf("mask count %d, want 4", bin.Len())
	}
	h, w := bin.Size()
	if h != 100 || w != 100 {
		t.Fatalf("mask size %dx%d, want 100x100", h, w)
	}

	// Row-major enumeration: quadrant top-left corners in order.
	corners := [][2]int{{0, 0}, {0, 50}, {50, 0}, {50, 50}}
	for i, c := range corners {
		for y := 0; y < 100; y++ {
			for x := 0; x < 100; x++ {
				inQuadrant := y >= c[0] && y < c[0]+50 && x >= c[1] && x < c[1]+50
				if bin.Bit(i, y, x) == inQuadrant {
					t.Fatalf("mask %d pixel (%d,%d): keep = %v, want %v", i, y, x, bin.Bit(i, y, x), !inQuadrant)
				}
			}
		}
	}

	// Exactly one mask occludes each pixel.
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			occluders := 0
			for i := 0; i < 4; i++ {
				if !bin.Bit(i, y, x) {
					occluders++
				}
			}
			if occluders != 1 {
				t.Fatalf("pixel (%d,%d) occluded by %d masks, want 1", y, x, occluders)
			}
		}
	}
}

func TestSlidingWindowMaskCount(t *testing.T) {
	tests := []struct {
		name             string
		imgW, imgH       int
		winH, winW       int
		strideH, strideW int
	}{
		{"defaults", 224, 224, 50, 50, 20, 20},
		{"uneven stride", 100, 70, 30, 30, 7, 13},
		{"stride exceeds window", 60, 60, 5, 5, 12, 12},
		{"window exceeds image", 16, 16, 50, 50, 20, 20},
		{"single pixel image", 1, 1, 50, 50, 20, 20},
		{"thin image", 200, 1, 10, 10, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := windowGen(t, tt.winH, tt.winW, tt.strideH, tt.strideW)
			st, err := g.Perturb(refImage(tt.imgW, tt.imgH))
			if err != nil {
				t.Fatalf("Perturb failed: %v", err)
			}

			wantN := ceilDiv(tt.imgH, tt.strideH) * ceilDiv(tt.imgW, tt.strideW)
			if st.Len() != wantN {
				t.Errorf("mask count %d, want %d", st.Len(), wantN)
			}
			h, w := st.Size()
			if h != tt.imgH || w != tt.imgW {
				t.Errorf("mask size %dx%d, want %dx%d", h, w, tt.imgH, tt.imgW)
			}
		})
	}
}

func TestSlidingWindowFullCoverage(t *testing.T) {
	// With window ≥ stride along both axes every pixel is occluded by
	// at least one mask.
	tests := []struct {
		name             string
		imgW, imgH       int
		winH, winW       int
		strideH, strideW int
	}{
		{"equal", 30, 30, 10, 10, 10, 10},
		{"overlapping", 47, 31, 10, 12, 4, 5},
		{"oversized window", 20, 20, 50, 50, 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := windowGen(t, tt.winH, tt.winW, tt.strideH, tt.strideW)
			st, err := g.Perturb(refImage(tt.imgW, tt.imgH))
			if err != nil {
				t.Fatalf("Perturb failed: %v", err)
			}
			bin := st.(*mask.Binary)

			for y := 0; y < tt.imgH; y++ {
				for x := 0; x < tt.imgW; x++ {
					covered := false
					for i := 0; i < bin.Len() && !covered; i++ {
						covered = !bin.Bit(i, y, x)
					}
					if !covered {
						t.Fatalf("pixel (%d,%d) never occluded", y, x)
					}
				}
			}
		})
	}
}

func TestSlidingWindowCentering(t *testing.T) {
	// 10×10 image, 4×4 window, stride 3. Grid positions are 0,3,6,9;
	// the window at 9 overhangs by 4-(10-9)=3 pixels, so the grid
	// shifts by -1 and the first window covers rows/cols 0..2 after
	// clipping.
	g := windowGen(t, 4, 4, 3, 3)
	st, err := g.Perturb(refImage(10, 10))
	if err != nil {
		t.Fatalf("Perturb failed: %v", err)
	}
	bin := st.(*mask.Binary)

	if bin.Len() != 16 {
		t.Fatalf("mask count %d, want 16", bin.Len())
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inWindow := y < 3 && x < 3
			if bin.Bit(0, y, x) == inWindow {
				t.Errorf("mask 0 pixel (%d,%d): keep = %v, want %v", y, x, bin.Bit(0, y, x), !inWindow)
			}
		}
	}

	// Last mask anchors at 9-1=8, covering rows/cols 8..9.
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inWindow := y >= 8 && x >= 8
			if bin.Bit(15, y, x) == inWindow {
				t.Errorf("mask 15 pixel (%d,%d): keep = %v, want %v", y, x, bin.Bit(15, y, x), !inWindow)
			}
		}
	}
}

func TestSlidingWindowNegativeOverhangCentering(t *testing.T) {
	// 9×9 image, 1×1 window, stride 5: positions 0,5 with overhang
	// 1-(9-5) = -3. Floor division shifts the grid by +2, placing the
	// single-pixel windows at 2 and 7 on each axis.
	g := windowGen(t, 1, 1, 5, 5)
	st, err := g.Perturb(refImage(9, 9))
	if err != nil {
		t.Fatalf("Perturb failed: %v", err)
	}
	bin := st.(*mask.Binary)

	if bin.Len() != 4 {
		t.Fatalf("mask count %d, want 4", bin.Len())
	}

	wantPixels := [][2]int{{2, 2}, {2, 7}, {7, 2}, {7, 7}}
	for i, p := range wantPixels {
		for y := 0; y < 9; y++ {
			for x := 0; x < 9; x++ {
				wantKeep := !(y == p[0] && x == p[1])
				if bin.Bit(i, y, x) != wantKeep {
					t.Errorf("mask %d pixel (%d,%d): keep = %v, want %v", i, y, x, bin.Bit(i, y, x), wantKeep)
				}
			}
		}
	}
}

func TestSlidingWindowReusableAcrossSizes(t *testing.T) {
	g := windowGen(t, 10, 10, 10, 10)

	for _, size := range []int{10, 25, 40} {
		st, err := g.Perturb(refImage(size, size))
		if err != nil {
			t.Fatalf("Perturb %dx%d failed: %v", size, size, err)
		}
		wantN := ceilDiv(size, 10) * ceilDiv(size, 10)
		if st.Len() != wantN {
			t.Errorf("size %d: mask count %d, want %d", size, st.Len(), wantN)
		}
	}
}

func TestSlidingWindowEmptyImage(t *testing.T) {
	g := windowGen(t, 10, 10, 5, 5)
	if _, err := g.Perturb(image.NewGray(image.Rect(0, 0, 0, 0))); err == nil {
		t.Fatal("expected error for empty image, got nil")
	}
}

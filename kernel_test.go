package planar

import (
	"math"
	"testing"
)

func allKernels(t *testing.T) map[string]*Kernel {
	t.Helper()
	lanczos, err := NewLanczosKernel(3)
	if err != nil {
		t.Fatalf("lanczos kernel: %v", err)
	}
	return map[string]*Kernel{
		"point":    NewPointKernel(),
		"bilinear": NewBilinearKernel(),
		"bicubic":  NewBicubicKernel(1.0/3.0, 1.0/3.0),
		"spline16": NewSpline16Kernel(),
		"spline36": NewSpline36Kernel(),
		"lanczos":  lanczos,
	}
}

func TestComputeWeightsTapsSumToOne(t *testing.T) {
	cases := []struct {
		src, dst int
	}{
		{100, 100},
		{100, 173},
		{173, 100},
		{591, 333},
		{7, 1920},
		{1920, 7},
	}

	for name, k := range allKernels(t) {
		for _, tc := range cases {
			w, err := computeWeights(k, tc.src, tc.dst, 0, float64(tc.src))
			if err != nil {
				t.Fatalf("%s %d->%d: %v", name, tc.src, tc.dst, err)
			}
			for d := 0; d < tc.dst; d++ {
				var sum float64
				for i := 0; i < w.taps; i++ {
					sum += float64(w.data[d*w.taps+i])
				}
				if math.Abs(sum-1) > 1e-5 {
					t.Fatalf("%s %d->%d: taps at %d sum to %v", name, tc.src, tc.dst, d, sum)
				}
			}
		}
	}
}

func TestComputeWeightsWindowsMonotonic(t *testing.T) {
	for name, k := range allKernels(t) {
		w, err := computeWeights(k, 200, 77, 0.25, 198.5)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		prevFirst, prevLast := w.window(0)
		for d := 1; d < 77; d++ {
			first, last := w.window(d)
			if first < prevFirst || last < prevLast {
				t.Fatalf("%s: window regressed at %d: [%d,%d) after [%d,%d)", name, d, first, last, prevFirst, prevLast)
			}
			prevFirst, prevLast = first, last
		}
	}
}

func TestComputeWeightsSpanCoversColumns(t *testing.T) {
	for name, k := range allKernels(t) {
		w, err := computeWeights(k, 123, 456, -0.5, 123)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		spans := [][2]int{{0, 456}, {0, 1}, {455, 456}, {100, 217}}
		for _, s := range spans {
			first, last := w.span(s[0], s[1])
			for d := s[0]; d < s[1]; d++ {
				wf, wl := w.window(d)
				if wf < first || wl > last {
					t.Fatalf("%s: span [%d,%d)=[%d,%d) excludes column %d window [%d,%d)",
						name, s[0], s[1], first, last, d, wf, wl)
				}
			}
		}
	}
}

func TestComputeWeightsEdgeClamp(t *testing.T) {
	k := NewBicubicKernel(1.0/3.0, 1.0/3.0)
	w, err := computeWeights(k, 10, 10, 0, 10)
	if err != nil {
		t.Fatalf("weights: %v", err)
	}
	first, last := w.window(0)
	if first < 0 || last > 10 || first >= last {
		t.Fatalf("window(0) not clamped: [%d,%d)", first, last)
	}
	first, last = w.window(9)
	if first < 0 || last > 10 || first >= last {
		t.Fatalf("window(9) not clamped: [%d,%d)", first, last)
	}
}

func TestComputeWeightsRejectsBadArguments(t *testing.T) {
	k := NewBilinearKernel()
	if _, err := computeWeights(k, 0, 10, 0, 10); err == nil {
		t.Fatal("expected error for zero source extent")
	}
	if _, err := computeWeights(k, 10, 10, math.NaN(), 10); err == nil {
		t.Fatal("expected error for NaN shift")
	}
	if _, err := computeWeights(k, 10, 10, 0, -1); err == nil {
		t.Fatal("expected error for negative active window")
	}
}

func TestNewLanczosKernelRejectsBadLobeCount(t *testing.T) {
	if _, err := NewLanczosKernel(0); err == nil {
		t.Fatal("expected error for zero lobe count")
	}
}

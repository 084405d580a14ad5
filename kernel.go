package planar

import (
	"fmt"
	"math"
)

// Kernel is a 1-D resampling kernel shape. The support radius is expressed in
// source samples at unity scale; weight tables stretch it when minifying so
// the kernel keeps covering one destination sample's footprint.
type Kernel struct {
	name    string
	support float64
	eval    func(x float64) float64
}

func (k *Kernel) String() string { return k.name }

// NewPointKernel returns nearest-sample interpolation.
func NewPointKernel() *Kernel {
	return &Kernel{
		name:    "point",
		support: 0,
		eval:    func(x float64) float64 { return 1 },
	}
}

// NewBilinearKernel returns the triangle kernel.
func NewBilinearKernel() *Kernel {
	return &Kernel{
		name:    "bilinear",
		support: 1,
		eval: func(x float64) float64 {
			x = math.Abs(x)
			if x < 1 {
				return 1 - x
			}
			return 0
		},
	}
}

// NewBicubicKernel returns the two-parameter cubic family (Mitchell-Netravali
// form); b = c = 1/3 is the usual default.
func NewBicubicKernel(b, c float64) *Kernel {
	p0 := (6 - 2*b) / 6
	p2 := (-18 + 12*b + 6*c) / 6
	p3 := (12 - 9*b - 6*c) / 6
	q0 := (8*b + 24*c) / 6
	q1 := (-12*b - 48*c) / 6
	q2 := (6*b + 30*c) / 6
	q3 := (-b - 6*c) / 6

	return &Kernel{
		name:    "bicubic",
		support: 2,
		eval: func(x float64) float64 {
			x = math.Abs(x)
			switch {
			case x < 1:
				return p0 + x*x*(p2+x*p3)
			case x < 2:
				return q0 + x*(q1+x*(q2+x*q3))
			default:
				return 0
			}
		},
	}
}

// NewSpline16Kernel returns the fixed-shape piecewise cubic over 4 taps.
func NewSpline16Kernel() *Kernel {
	return &Kernel{
		name:    "spline16",
		support: 2,
		eval: func(x float64) float64 {
			x = math.Abs(x)
			switch {
			case x < 1:
				return ((x-9.0/5.0)*x-1.0/5.0)*x + 1.0
			case x < 2:
				x -= 1
				return ((-1.0/3.0*x+4.0/5.0)*x - 7.0/15.0) * x
			default:
				return 0
			}
		},
	}
}

// NewSpline36Kernel returns the fixed-shape piecewise cubic over 6 taps.
func NewSpline36Kernel() *Kernel {
	return &Kernel{
		name:    "spline36",
		support: 3,
		eval: func(x float64) float64 {
			x = math.Abs(x)
			switch {
			case x < 1:
				return ((13.0/11.0*x-453.0/209.0)*x-3.0/209.0)*x + 1.0
			case x < 2:
				x -= 1
				return ((-6.0/11.0*x+270.0/209.0)*x - 156.0/209.0) * x
			case x < 3:
				x -= 2
				return ((1.0/11.0*x-45.0/209.0)*x + 26.0/209.0) * x
			default:
				return 0
			}
		},
	}
}

// NewLanczosKernel returns the windowed-sinc kernel with the given lobe
// count.
func NewLanczosKernel(taps int) (*Kernel, error) {
	if taps < 1 {
		return nil, fmt.Errorf("lanczos lobe count %d: %w", taps, ErrIllegalArgument)
	}
	n := float64(taps)
	return &Kernel{
		name:    "lanczos",
		support: n,
		eval: func(x float64) float64 {
			if x > -n && x < n {
				return sinc(x) * sinc(x/n)
			}
			return 0
		},
	}, nil
}

func sinc(x float64) float64 {
	x = math.Abs(x) * math.Pi
	if x >= 1.220703e-4 {
		return math.Sin(x) / x
	}
	return 1
}

// weights is an immutable per-axis resampling table: for each destination
// coordinate, the leftmost source tap and the normalized tap weights.
// Tap positions outside [0, src) read the nearest in-bounds sample (edge
// replication), so the clamped support window always covers every read.
type weights struct {
	data []float32
	left []int
	taps int
	src  int
}

// computeWeights builds the table for one axis. width is the active source
// extent, which may differ from src to express crop or pad by resampling;
// shift registers the destination grid at sub-pixel precision.
func computeWeights(k *Kernel, src, dst int, shift, width float64) (*weights, error) {
	if src <= 0 || dst <= 0 {
		return nil, fmt.Errorf("invalid resample extents %d -> %d: %w", src, dst, ErrIllegalArgument)
	}
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("invalid active window %v: %w", width, ErrIllegalArgument)
	}
	if math.IsNaN(shift) || math.IsInf(shift, 0) {
		return nil, fmt.Errorf("invalid shift %v: %w", shift, ErrIllegalArgument)
	}

	scale := width / float64(dst)
	stretch := math.Max(scale, 1)
	support := k.support * stretch

	taps := int(math.Ceil(support * 2))
	if taps < 1 {
		taps = 1
	}

	w := &weights{
		data: make([]float32, dst*taps),
		left: make([]int, dst),
		taps: taps,
		src:  src,
	}

	for d := 0; d < dst; d++ {
		s := (float64(d)+0.5)*scale + shift - 0.5

		var left int
		if taps%2 == 1 {
			left = int(math.Floor(s+0.5)) - taps/2
		} else {
			left = int(math.Floor(s)) - taps/2 + 1
		}
		w.left[d] = left

		base := d * taps
		var sum float64
		for i := 0; i < taps; i++ {
			v := k.eval((s - float64(left+i)) / stretch)
			w.data[base+i] = float32(v)
			sum += v
		}
		if sum != 0 {
			inv := float32(1 / sum)
			for i := 0; i < taps; i++ {
				w.data[base+i] *= inv
			}
		}
	}
	return w, nil
}

// window returns the clamped half-open source range feeding destination
// coordinate d. Replicated edge reads resolve to the boundary sample, which
// the clamped range always contains.
func (w *weights) window(d int) (int, int) {
	first := w.left[d]
	last := first + w.taps
	if first < 0 {
		first = 0
	}
	if first > w.src-1 {
		first = w.src - 1
	}
	if last < first+1 {
		last = first + 1
	}
	if last > w.src {
		last = w.src
	}
	return first, last
}

// span returns the union of windows for destination coordinates
// [left, right). left positions are non-decreasing, so the union is the
// range from the first coordinate's window start to the last one's end.
func (w *weights) span(left, right int) (int, int) {
	if right <= left {
		first, _ := w.window(left)
		return first, first
	}
	first, _ := w.window(left)
	_, last := w.window(right - 1)
	if last < first {
		last = first
	}
	return first, last
}

package planar

import (
	"fmt"
	"math"
)

// ResizeFilter applies a separable resampling kernel along width and height
// of plane 0. The horizontal pass materializes only the vertical support
// window into caller scratch, so a host can stream rows without holding the
// whole source frame.
type ResizeFilter struct {
	typ PixelType
	cpu CPU

	srcWidth  int
	srcHeight int
	dstWidth  int
	dstHeight int

	horiz *weights
	vert  *weights
}

// NewResizeFilter builds a resize filter from one kernel shape applied on
// both axes.
//
// subWidth and subHeight define the active source window; pass NaN to default
// each independently to the full source extent. shiftW and shiftH register
// the destination grid at sub-pixel precision.
func NewResizeFilter(k *Kernel, t PixelType, srcWidth, srcHeight, dstWidth, dstHeight int, shiftW, shiftH, subWidth, subHeight float64, cpu CPU) (*ResizeFilter, error) {
	if k == nil {
		return nil, fmt.Errorf("nil kernel: %w", ErrIllegalArgument)
	}
	if err := (PixelFormat{Type: t, Depth: t.Size() * 8}).validate(); err != nil {
		return nil, err
	}
	if srcWidth <= 0 || srcHeight <= 0 || dstWidth <= 0 || dstHeight <= 0 {
		return nil, fmt.Errorf("invalid resize extents %dx%d -> %dx%d: %w",
			srcWidth, srcHeight, dstWidth, dstHeight, ErrIllegalArgument)
	}
	if math.IsNaN(subWidth) {
		subWidth = float64(srcWidth)
	}
	if math.IsNaN(subHeight) {
		subHeight = float64(srcHeight)
	}

	horiz, err := computeWeights(k, srcWidth, dstWidth, shiftW, subWidth)
	if err != nil {
		return nil, err
	}
	vert, err := computeWeights(k, srcHeight, dstHeight, shiftH, subHeight)
	if err != nil {
		return nil, err
	}

	return &ResizeFilter{
		typ:       t,
		cpu:       cpu.Resolve(),
		srcWidth:  srcWidth,
		srcHeight: srcHeight,
		dstWidth:  dstWidth,
		dstHeight: dstHeight,
		horiz:     horiz,
		vert:      vert,
	}, nil
}

func (f *ResizeFilter) Flags() Flags {
	return Flags{SameRow: true}
}

func (f *ResizeFilter) RequiredRowRange(row int) (int, int) {
	return f.vert.window(row)
}

func (f *ResizeFilter) RequiredColRange(left, right int) (int, int) {
	return f.horiz.span(left, right)
}

func (f *ResizeFilter) SimultaneousLines() int { return 1 }

func (f *ResizeFilter) ContextSize() int { return 0 }

// TmpSize covers one float32 row of the span per vertical tap.
func (f *ResizeFilter) TmpSize(left, right int) int {
	return f.vert.taps * (right - left) * 4
}

func (f *ResizeFilter) InitContext(ctx []byte) {}

func (f *ResizeFilter) Process(ctx []byte, src, dst *Buffer, tmp []byte, row, left, right int) error {
	span := right - left
	if span <= 0 {
		return nil
	}

	first, last := f.vert.window(row)
	scratch := scratchF32(tmp, 0, (last-first)*span)

	// Horizontal pass: resample each needed source row into a scratch slot.
	for y := first; y < last; y++ {
		f.resampleRow(src.Planes[0].Row(y), scratch[(y-first)*span:(y-first+1)*span], left)
	}

	// Vertical pass: combine scratch rows into the destination row.
	dstRow := dst.Planes[0].Row(row)
	base := row * f.vert.taps
	for x := 0; x < span; x++ {
		var acc float32
		for i := 0; i < f.vert.taps; i++ {
			yi := f.vert.left[row] + i
			if yi < 0 {
				yi = 0
			} else if yi >= f.srcHeight {
				yi = f.srcHeight - 1
			}
			acc += scratch[(yi-first)*span+x] * f.vert.data[base+i]
		}
		storeSample(f.typ, dstRow, left+x, acc)
	}
	return nil
}

func (f *ResizeFilter) resampleRow(srcRow []byte, out []float32, left int) {
	for j := range out {
		x := left + j
		lx := f.horiz.left[x]
		base := x * f.horiz.taps
		var acc float32
		for i := 0; i < f.horiz.taps; i++ {
			xi := lx + i
			if xi < 0 {
				xi = 0
			} else if xi >= f.srcWidth {
				xi = f.srcWidth - 1
			}
			acc += loadSample(f.typ, srcRow, xi) * f.horiz.data[base+i]
		}
		out[j] = acc
	}
}

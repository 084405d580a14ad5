package planar

import "fmt"

// DitherType selects the quantization strategy applied when a depth
// conversion narrows precision.
type DitherType int

const (
	// DitherNone rounds to the nearest representable level.
	DitherNone DitherType = iota
	// DitherOrdered adds a fixed position-dependent tile bias before
	// rounding; stateless and tile-safe.
	DitherOrdered
	// DitherRandom adds pseudo-random noise within half an output LSB; the
	// generator state lives in a per-session context.
	DitherRandom
	// DitherErrorDiffusion propagates quantization residual to causal
	// neighbors; sequential along rows and across rows.
	DitherErrorDiffusion
)

func (d DitherType) String() string {
	switch d {
	case DitherNone:
		return "none"
	case DitherOrdered:
		return "ordered"
	case DitherRandom:
		return "random"
	case DitherErrorDiffusion:
		return "error_diffusion"
	default:
		return fmt.Sprintf("dither(%d)", int(d))
	}
}

// DepthFilter rescales plane 0 samples between {type, depth, range} triples,
// quantizing through the selected dither when the destination is integer.
type DepthFilter struct {
	width  int
	height int
	in     PixelFormat
	out    PixelFormat
	dither DitherType
	cpu    CPU

	// out = in*scale + offset, both in raw code units.
	scale   float32
	offset  float32
	maxCode float32
}

// NewDepthFilter builds a depth/range conversion over a width x height
// plane. Chroma-flagged formats rescale around the mid-range zero point;
// both sides must agree on chroma-ness.
func NewDepthFilter(dither DitherType, width, height int, in, out PixelFormat, cpu CPU) (*DepthFilter, error) {
	in = in.normalize()
	out = out.normalize()

	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := out.validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid plane dimensions %dx%d: %w", width, height, ErrIllegalArgument)
	}
	if in.Chroma != out.Chroma {
		return nil, fmt.Errorf("chroma flag must match across a depth conversion: %w", ErrIllegalArgument)
	}
	switch dither {
	case DitherNone, DitherOrdered, DitherRandom, DitherErrorDiffusion:
	default:
		return nil, fmt.Errorf("invalid dither type %d: %w", int(dither), ErrIllegalArgument)
	}
	if dither != DitherNone && !out.Type.Integer() {
		return nil, fmt.Errorf("%s dither requires an integer destination, got %s: %w", dither, out.Type, ErrUnsupported)
	}

	inScale, inOffset := in.rangeOffset()
	outScale, outOffset := out.rangeOffset()
	scale := outScale / inScale

	return &DepthFilter{
		width:   width,
		height:  height,
		in:      in,
		out:     out,
		dither:  dither,
		cpu:     cpu.Resolve(),
		scale:   scale,
		offset:  outOffset - inOffset*scale,
		maxCode: out.maxCode(),
	}, nil
}

func (f *DepthFilter) Flags() Flags {
	switch f.dither {
	case DitherRandom:
		return Flags{HasState: true, EntireRow: true}
	case DitherErrorDiffusion:
		return Flags{HasState: true, EntireRow: true}
	default:
		return Flags{SameRow: true}
	}
}

func (f *DepthFilter) RequiredRowRange(row int) (int, int) {
	return row, row + 1
}

func (f *DepthFilter) RequiredColRange(left, right int) (int, int) {
	return left, right
}

func (f *DepthFilter) SimultaneousLines() int { return 1 }

func (f *DepthFilter) ContextSize() int {
	switch f.dither {
	case DitherRandom:
		return 4
	case DitherErrorDiffusion:
		// Pending-row and accumulation-row error terms, one guard column on
		// each side.
		return 2 * (f.width + 2) * 4
	default:
		return 0
	}
}

func (f *DepthFilter) TmpSize(left, right int) int { return 0 }

func (f *DepthFilter) InitContext(ctx []byte) {
	for i := range ctx[:f.ContextSize()] {
		ctx[i] = 0
	}
	if f.dither == DitherRandom {
		putRandState(ctx, randDitherSeed)
	}
}

func (f *DepthFilter) Process(ctx []byte, src, dst *Buffer, tmp []byte, row, left, right int) error {
	srcRow := src.Planes[0].Row(row)
	dstRow := dst.Planes[0].Row(row)

	if !f.out.Type.Integer() {
		for x := left; x < right; x++ {
			storeSample(f.out.Type, dstRow, x, loadSample(f.in.Type, srcRow, x)*f.scale+f.offset)
		}
		return nil
	}

	switch f.dither {
	case DitherOrdered:
		f.processOrdered(srcRow, dstRow, row, left, right)
	case DitherRandom:
		f.processRandom(ctx, srcRow, dstRow, left, right)
	case DitherErrorDiffusion:
		f.processErrorDiffusion(ctx, srcRow, dstRow, left, right)
	default:
		for x := left; x < right; x++ {
			f.storeQuantized(dstRow, x, loadSample(f.in.Type, srcRow, x)*f.scale+f.offset)
		}
	}
	return nil
}

// storeQuantized rounds to nearest and clamps to the destination depth,
// which may be narrower than the type's native range.
func (f *DepthFilter) storeQuantized(dstRow []byte, x int, v float32) {
	if v <= 0 {
		v = 0
	} else if v >= f.maxCode {
		v = f.maxCode
	} else {
		v = float32(int32(v + 0.5))
	}
	storeSample(f.out.Type, dstRow, x, v)
}

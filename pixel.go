package planar

import (
	"fmt"
	"math"
)

// PixelType identifies the in-memory representation of one sample.
type PixelType int

const (
	// PixelByte is an unsigned 8-bit integer sample.
	PixelByte PixelType = iota
	// PixelWord is an unsigned little-endian 16-bit integer sample.
	PixelWord
	// PixelHalf is an IEEE 754 binary16 sample, little-endian.
	PixelHalf
	// PixelFloat is an IEEE 754 binary32 sample, little-endian.
	PixelFloat
)

// Size returns the sample size in bytes.
func (t PixelType) Size() int {
	switch t {
	case PixelByte:
		return 1
	case PixelWord:
		return 2
	case PixelHalf:
		return 2
	default:
		return 4
	}
}

// Integer reports whether samples are quantized integers.
func (t PixelType) Integer() bool {
	return t == PixelByte || t == PixelWord
}

func (t PixelType) String() string {
	switch t {
	case PixelByte:
		return "byte"
	case PixelWord:
		return "word"
	case PixelHalf:
		return "half"
	case PixelFloat:
		return "float"
	default:
		return fmt.Sprintf("pixel(%d)", int(t))
	}
}

// PixelFormat describes the numeric interpretation of samples in one plane.
//
// Depth is only meaningful for integer types and must not exceed the type's
// native width; NewPixelFormat normalizes half/float formats so that two
// formats describing the same interpretation compare equal.
type PixelFormat struct {
	Type      PixelType
	Depth     int
	Chroma    bool
	FullRange bool
}

// NewPixelFormat returns a format with the type's native depth.
func NewPixelFormat(t PixelType) PixelFormat {
	return PixelFormat{Type: t, Depth: t.Size() * 8}
}

// normalize strips fields that carry no meaning for the type.
func (f PixelFormat) normalize() PixelFormat {
	if !f.Type.Integer() {
		f.Depth = f.Type.Size() * 8
		f.FullRange = false
	}
	return f
}

func (f PixelFormat) validate() error {
	switch f.Type {
	case PixelByte, PixelWord, PixelHalf, PixelFloat:
	default:
		return fmt.Errorf("invalid pixel type %d: %w", int(f.Type), ErrIllegalArgument)
	}
	if f.Type.Integer() {
		if f.Depth < 1 || f.Depth > f.Type.Size()*8 {
			return fmt.Errorf("invalid bit depth %d for %s: %w", f.Depth, f.Type, ErrIllegalArgument)
		}
	}
	return nil
}

// rangeOffset returns the affine parameters mapping stored sample values onto
// the unified scale where luma spans [0, 1] and chroma spans [-0.5, 0.5]:
//
//	unified = (stored - offset) / scale
//
// Limited-range integer formats use the broadcast ranges (offset 16<<(d-8),
// luma range 219<<(d-8), chroma range 224<<(d-8), both expressed as
// 2^(d-8) multiples so sub-8-bit depths remain exact); full-range formats
// span the whole code space. Chroma zero sits at half scale for integers and
// at 0.0 for half/float.
func (f PixelFormat) rangeOffset() (scale, offset float32) {
	if !f.Type.Integer() {
		return 1, 0
	}
	d := float64(f.Depth)
	switch {
	case f.FullRange && f.Chroma:
		return float32(math.Exp2(d) - 1), float32(math.Exp2(d - 1))
	case f.FullRange:
		return float32(math.Exp2(d) - 1), 0
	case f.Chroma:
		return float32(224 * math.Exp2(d-8)), float32(math.Exp2(d - 1))
	default:
		return float32(219 * math.Exp2(d-8)), float32(16 * math.Exp2(d-8))
	}
}

// maxCode returns the largest representable integer code, used for clamping.
func (f PixelFormat) maxCode() float32 {
	return float32(math.Exp2(float64(f.Depth)) - 1)
}

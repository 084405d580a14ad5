package planar

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Alignment is the byte alignment required of plane pointers and strides.
// It matches the widest vector width the dispatch levels cover.
const Alignment = 32

// MaskAll selects linear row addressing for a plane.
const MaskAll = ^uint32(0)

// Plane is one channel of an image buffer. Rows are addressed as
// (row & Mask) * Stride, so a Mask covering a power-of-two row count turns
// the plane into a ring buffer over an unbounded row stream.
type Plane struct {
	Data   []byte
	Stride int
	Mask   uint32
}

// Row returns the storage for a row index, honoring the ring mask.
func (p *Plane) Row(i int) []byte {
	return p.Data[int(uint32(i)&p.Mask)*p.Stride:]
}

// Buffer is up to three planes passed to a filter per call. Filters never
// retain a buffer beyond the call.
type Buffer struct {
	Planes [3]Plane
}

// AllocBuffer allocates a linear buffer of n planes with aligned strides.
// It is a convenience for hosts and tests; filters accept any buffer whose
// strides and data honor Alignment.
func AllocBuffer(width, height int, t PixelType, planes int) *Buffer {
	stride := (width*t.Size() + Alignment - 1) &^ (Alignment - 1)
	b := &Buffer{}
	for i := 0; i < planes; i++ {
		b.Planes[i] = Plane{
			Data:   allocAligned(stride * height),
			Stride: stride,
			Mask:   MaskAll,
		}
	}
	return b
}

// allocAligned returns n bytes whose first element honors Alignment; the Go
// allocator only guarantees size-class alignment.
func allocAligned(n int) []byte {
	raw := make([]byte, n+Alignment-1)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(&raw[0])) & (Alignment - 1)); rem != 0 {
		off = Alignment - rem
	}
	return raw[off : off+n : off+n]
}

// loadSample reads sample x of a row as a raw numeric value (integer code or
// floating-point value, without range normalization).
func loadSample(t PixelType, row []byte, x int) float32 {
	switch t {
	case PixelByte:
		return float32(row[x])
	case PixelWord:
		return float32(binary.LittleEndian.Uint16(row[x*2:]))
	case PixelHalf:
		return halfToFloat32(binary.LittleEndian.Uint16(row[x*2:]))
	default:
		return math.Float32frombits(binary.LittleEndian.Uint32(row[x*4:]))
	}
}

// storeSample writes a raw numeric value as sample x of a row. Integer types
// round to nearest and clamp to the type's native range.
func storeSample(t PixelType, row []byte, x int, v float32) {
	switch t {
	case PixelByte:
		row[x] = clampToByte(v)
	case PixelWord:
		binary.LittleEndian.PutUint16(row[x*2:], clampToUint16(v))
	case PixelHalf:
		binary.LittleEndian.PutUint16(row[x*2:], float32ToHalf(v))
	default:
		binary.LittleEndian.PutUint32(row[x*4:], math.Float32bits(v))
	}
}

func clampToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clampToUint16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 65535 {
		return 65535
	}
	return uint16(v + 0.5)
}

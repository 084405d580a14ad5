package planar

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// scratchF32 views a region of a caller scratch block as float32 values.
// The view needs 4-byte alignment, which any Go-allocated slice provides.
func scratchF32(tmp []byte, off, n int) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(&tmp[off*4])), n)
}

// LoadFloatRow reads float samples [left, left+len(dst)) of a PixelFloat
// plane row.
func LoadFloatRow(row []byte, left int, dst []float32) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(row[(left+i)*4:]))
	}
}

// StoreFloatRow writes float samples [left, left+len(src)) of a PixelFloat
// plane row.
func StoreFloatRow(row []byte, left int, src []float32) {
	for i := range src {
		binary.LittleEndian.PutUint32(row[(left+i)*4:], math.Float32bits(src[i]))
	}
}

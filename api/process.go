package api

import (
	"fmt"
	"unsafe"

	"github.com/vearutop/planar"
)

// Process drives one filter call and classifies any failure. Buffer
// alignment is a caller contract, not a recoverable condition, so
// violations panic.
func Process(f planar.Filter, ctx []byte, src, dst *planar.Buffer, tmp []byte, row, left, right int) Result {
	assertBufferAligned(src)
	assertBufferAligned(dst)

	return ResultOf(f.Process(ctx, src, dst, tmp, row, left, right))
}

func assertBufferAligned(b *planar.Buffer) {
	for i := range b.Planes {
		p := &b.Planes[i]
		if len(p.Data) > 0 && uintptr(unsafe.Pointer(&p.Data[0]))%planar.Alignment != 0 {
			panic(fmt.Sprintf("plane %d data not %d-byte aligned", i, planar.Alignment))
		}
		if p.Stride != 0 && p.Stride%planar.Alignment != 0 {
			panic(fmt.Sprintf("plane %d stride %d not %d-byte aligned", i, p.Stride, planar.Alignment))
		}
	}
}

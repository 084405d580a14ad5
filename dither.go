package planar

import "encoding/binary"

// bayer8 is the classic 8x8 ordered-dither index matrix.
var bayer8 = [8][8]uint8{
	{0, 32, 8, 40, 2, 34, 10, 42},
	{48, 16, 56, 24, 50, 18, 58, 26},
	{12, 44, 4, 36, 14, 46, 6, 38},
	{60, 28, 52, 20, 62, 30, 54, 22},
	{3, 35, 11, 43, 1, 33, 9, 41},
	{51, 19, 59, 27, 49, 17, 57, 25},
	{15, 47, 7, 39, 13, 45, 5, 37},
	{63, 31, 55, 23, 61, 29, 53, 21},
}

// bayerBias holds the matrix remapped to a zero-mean bias in output LSBs.
var bayerBias = func() (b [8][8]float32) {
	for y := range bayer8 {
		for x := range bayer8[y] {
			b[y][x] = (float32(bayer8[y][x])+0.5)/64 - 0.5
		}
	}
	return b
}()

func (f *DepthFilter) processOrdered(srcRow, dstRow []byte, row, left, right int) {
	bias := &bayerBias[row&7]
	for x := left; x < right; x++ {
		v := loadSample(f.in.Type, srcRow, x)*f.scale + f.offset
		f.storeQuantized(dstRow, x, v+bias[x&7])
	}
}

// randDitherSeed is the fixed generator seed, so identical inputs and
// contexts dither identically across sessions.
const randDitherSeed uint32 = 0x9E3779B9

func getRandState(ctx []byte) uint32 { return binary.LittleEndian.Uint32(ctx) }

func putRandState(ctx []byte, s uint32) { binary.LittleEndian.PutUint32(ctx, s) }

func xorshift32(s uint32) uint32 {
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	return s
}

func (f *DepthFilter) processRandom(ctx, srcRow, dstRow []byte, left, right int) {
	state := getRandState(ctx)
	for x := left; x < right; x++ {
		state = xorshift32(state)
		// Top 24 bits give noise in [-0.5, 0.5).
		noise := float32(state>>8)/(1<<24) - 0.5
		v := loadSample(f.in.Type, srcRow, x)*f.scale + f.offset
		f.storeQuantized(dstRow, x, v+noise)
	}
	putRandState(ctx, state)
}

// processErrorDiffusion applies Floyd-Steinberg diffusion. The context keeps
// the error terms pending for the current row (written while quantizing the
// previous row) and an accumulation row for the next one; the row must be
// processed whole and in order.
func (f *DepthFilter) processErrorDiffusion(ctx, srcRow, dstRow []byte, left, right int) {
	stride := f.width + 2
	pending := scratchF32(ctx, 0, stride)
	next := scratchF32(ctx, stride, stride)

	var carry float32
	for x := left; x < right; x++ {
		v := loadSample(f.in.Type, srcRow, x)*f.scale + f.offset
		v += carry*(7.0/16.0) + pending[x+1]

		q := v
		if q <= 0 {
			q = 0
		} else if q >= f.maxCode {
			q = f.maxCode
		} else {
			q = float32(int32(q + 0.5))
		}
		storeSample(f.out.Type, dstRow, x, q)

		err := v - q
		next[x] += err * (3.0 / 16.0)
		next[x+1] += err * (5.0 / 16.0)
		next[x+2] += err * (1.0 / 16.0)
		carry = err
	}

	copy(pending, next)
	for i := range next {
		next[i] = 0
	}
}

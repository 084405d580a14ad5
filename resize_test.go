package planar

import (
	"image"
	"math"
	"testing"

	"github.com/nfnt/resize"
)

// fillSamples stores v(x, y) through the pixel codec so every type holds
// well-formed values.
func fillSamples(b *Buffer, width, height int, typ PixelType, v func(x, y int) float32) {
	for y := 0; y < height; y++ {
		row := b.Planes[0].Row(y)
		for x := 0; x < width; x++ {
			storeSample(typ, row, x, v(x, y))
		}
	}
}

func resizeTo(t *testing.T, k *Kernel, typ PixelType, src *Buffer, sw, sh, dw, dh int, subW, subH float64) *Buffer {
	t.Helper()
	f, err := NewResizeFilter(k, typ, sw, sh, dw, dh, 0, 0, subW, subH, CPUNone)
	if err != nil {
		t.Fatalf("resize filter: %v", err)
	}
	dst := AllocBuffer(dw, dh, typ, 1)
	runFilter(t, f, src, dst, dh, dw)
	return dst
}

func TestResizePointIdentity(t *testing.T) {
	const width, height = 591, 333
	for _, typ := range []PixelType{PixelByte, PixelWord, PixelHalf, PixelFloat} {
		src := AllocBuffer(width, height, typ, 1)
		fillSamples(src, width, height, typ, func(x, y int) float32 {
			return float32((x*31 + y*17) % 250)
		})
		dst := resizeTo(t, NewPointKernel(), typ, src, width, height, width, height, math.NaN(), math.NaN())
		if !samePixels(&src.Planes[0], &dst.Planes[0], width, height, typ) {
			t.Fatalf("%s: point identity not byte-exact", typ)
		}
	}
}

func TestResizeBilinearIdentity(t *testing.T) {
	const width, height = 128, 64
	for _, typ := range []PixelType{PixelByte, PixelWord, PixelFloat} {
		src := AllocBuffer(width, height, typ, 1)
		fillSamples(src, width, height, typ, func(x, y int) float32 {
			return float32((x*7 + y*13) % 256)
		})
		dst := resizeTo(t, NewBilinearKernel(), typ, src, width, height, width, height, math.NaN(), math.NaN())
		if !samePixels(&src.Planes[0], &dst.Planes[0], width, height, typ) {
			t.Fatalf("%s: bilinear identity not byte-exact", typ)
		}
	}
}

func TestResizePointUpscalePicksNearest(t *testing.T) {
	const sw, sh, dw, dh = 4, 4, 8, 8
	src := AllocBuffer(sw, sh, PixelByte, 1)
	fillSamples(src, sw, sh, PixelByte, func(x, y int) float32 {
		return float32(x*10 + y*40)
	})
	dst := resizeTo(t, NewPointKernel(), PixelByte, src, sw, sh, dw, dh, math.NaN(), math.NaN())
	for y := 0; y < dh; y++ {
		row := dst.Planes[0].Row(y)
		for x := 0; x < dw; x++ {
			want := byte((x/2)*10 + (y/2)*40)
			if row[x] != want {
				t.Fatalf("dst(%d,%d) = %d, want %d", x, y, row[x], want)
			}
		}
	}
}

func TestResizeBicubicRampStaysMonotonic(t *testing.T) {
	const sw, sh, dw = 64, 8, 128
	src := AllocBuffer(sw, sh, PixelByte, 1)
	fillSamples(src, sw, sh, PixelByte, func(x, _ int) float32 {
		return float32(x * 3)
	})
	dst := resizeTo(t, NewBicubicKernel(1.0/3.0, 1.0/3.0), PixelByte, src, sw, sh, dw, sh, math.NaN(), math.NaN())
	for y := 0; y < sh; y++ {
		row := dst.Planes[0].Row(y)
		for x := 1; x < dw; x++ {
			if int(row[x])+1 < int(row[x-1]) {
				t.Fatalf("row %d: ramp regressed at %d: %d after %d", y, x, row[x], row[x-1])
			}
		}
	}
	// All source rows are equal, so all destination rows must be too.
	ref := dst.Planes[0].Row(0)[:dw]
	for y := 1; y < sh; y++ {
		row := dst.Planes[0].Row(y)
		for x := 0; x < dw; x++ {
			if row[x] != ref[x] {
				t.Fatalf("rows diverged at (%d,%d)", x, y)
			}
		}
	}
}

func TestResizeConstantPreserved(t *testing.T) {
	const sw, sh, dw, dh = 64, 64, 17, 13
	lanczos, err := NewLanczosKernel(3)
	if err != nil {
		t.Fatal(err)
	}
	for name, k := range map[string]*Kernel{
		"bicubic": NewBicubicKernel(1.0/3.0, 1.0/3.0),
		"lanczos": lanczos,
	} {
		src := AllocBuffer(sw, sh, PixelByte, 1)
		fillSamples(src, sw, sh, PixelByte, func(_, _ int) float32 { return 180 })
		dst := resizeTo(t, k, PixelByte, src, sw, sh, dw, dh, math.NaN(), math.NaN())
		for y := 0; y < dh; y++ {
			row := dst.Planes[0].Row(y)
			for x := 0; x < dw; x++ {
				if row[x] != 180 {
					t.Fatalf("%s: dst(%d,%d) = %d, want 180", name, x, y, row[x])
				}
			}
		}
	}
}

func TestResizeSubWindowDefaultsIndependently(t *testing.T) {
	const sw, sh, dw, dh = 100, 50, 60, 30
	src := AllocBuffer(sw, sh, PixelByte, 1)
	fillSamples(src, sw, sh, PixelByte, func(x, y int) float32 {
		return float32((x*2 + y*5) % 256)
	})
	k := NewBilinearKernel()

	both := resizeTo(t, k, PixelByte, src, sw, sh, dw, dh, math.NaN(), math.NaN())
	explicit := resizeTo(t, k, PixelByte, src, sw, sh, dw, dh, sw, sh)
	if !samePixels(&both.Planes[0], &explicit.Planes[0], dw, dh, PixelByte) {
		t.Fatal("NaN sub window must default to the full source extents")
	}

	// A NaN sub width must not disturb an explicit sub height.
	mixed := resizeTo(t, k, PixelByte, src, sw, sh, dw, dh, math.NaN(), 25)
	cropped := resizeTo(t, k, PixelByte, src, sw, sh, dw, dh, sw, 25)
	if !samePixels(&mixed.Planes[0], &cropped.Planes[0], dw, dh, PixelByte) {
		t.Fatal("sub width default leaked into sub height")
	}
	if samePixels(&mixed.Planes[0], &both.Planes[0], dw, dh, PixelByte) {
		t.Fatal("explicit sub height had no effect")
	}
}

func TestResizeBilinearMatchesNfnt(t *testing.T) {
	const sw, sh, dw, dh = 64, 64, 128, 128
	src := AllocBuffer(sw, sh, PixelByte, 1)
	fillSamples(src, sw, sh, PixelByte, func(x, _ int) float32 {
		return float32(x * 3)
	})
	dst := resizeTo(t, NewBilinearKernel(), PixelByte, src, sw, sh, dw, dh, math.NaN(), math.NaN())

	gray := image.NewGray(image.Rect(0, 0, sw, sh))
	for y := 0; y < sh; y++ {
		copy(gray.Pix[y*gray.Stride:], src.Planes[0].Row(y)[:sw])
	}
	ref := resize.Resize(dw, dh, gray, resize.Bilinear)

	// Same center-aligned sample positions, so interior pixels agree up to
	// the fixed-point weight quantization in the reference.
	for y := 2; y < dh-2; y++ {
		row := dst.Planes[0].Row(y)
		for x := 2; x < dw-2; x++ {
			r, _, _, _ := ref.At(x, y).RGBA()
			diff := int(row[x]) - int(r>>8)
			if diff < -2 || diff > 2 {
				t.Fatalf("(%d,%d): got %d, reference %d", x, y, row[x], r>>8)
			}
		}
	}
}

func TestResizeDeclaredRangesCoverReads(t *testing.T) {
	k := NewBicubicKernel(1.0/3.0, 1.0/3.0)
	f, err := NewResizeFilter(k, PixelFloat, 200, 100, 77, 41, 0.5, -0.25, 198, 99, CPUAuto)
	if err != nil {
		t.Fatal(err)
	}
	if fl := f.Flags(); !fl.SameRow || fl.HasState || fl.EntireRow || fl.Color {
		t.Fatalf("unexpected flags: %+v", fl)
	}
	if f.SimultaneousLines() != 1 || f.ContextSize() != 0 {
		t.Fatal("resize must be stateless, one line per call")
	}
	if f.TmpSize(10, 50) <= 0 {
		t.Fatal("resize needs scratch for the horizontal pass")
	}
	prevFirst, prevLast := 0, 0
	for row := 0; row < 41; row++ {
		first, last := f.RequiredRowRange(row)
		if first < 0 || last > 100 || first >= last {
			t.Fatalf("row %d: bad range [%d,%d)", row, first, last)
		}
		if first < prevFirst || last < prevLast {
			t.Fatalf("row %d: range regressed", row)
		}
		prevFirst, prevLast = first, last
	}
	first, last := f.RequiredColRange(0, 77)
	if first < 0 || last > 200 || first >= last {
		t.Fatalf("bad col range [%d,%d)", first, last)
	}
}

func TestNewResizeFilterRejectsBadArguments(t *testing.T) {
	k := NewBilinearKernel()
	if _, err := NewResizeFilter(nil, PixelByte, 10, 10, 5, 5, 0, 0, math.NaN(), math.NaN(), CPUNone); err == nil {
		t.Fatal("expected error for nil kernel")
	}
	if _, err := NewResizeFilter(k, PixelByte, 0, 10, 5, 5, 0, 0, math.NaN(), math.NaN(), CPUNone); err == nil {
		t.Fatal("expected error for zero source width")
	}
	if _, err := NewResizeFilter(k, PixelByte, 10, 10, 5, -1, 0, 0, math.NaN(), math.NaN(), CPUNone); err == nil {
		t.Fatal("expected error for negative destination height")
	}
	if _, err := NewResizeFilter(k, PixelType(9), 10, 10, 5, 5, 0, 0, math.NaN(), math.NaN(), CPUNone); err == nil {
		t.Fatal("expected error for bad pixel type")
	}
}

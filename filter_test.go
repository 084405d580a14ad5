package planar

import (
	"bytes"
	"testing"
)

// fillPattern writes a deterministic byte pattern over the used region of a
// plane so byte-for-byte comparisons are meaningful for every pixel type.
func fillPattern(p *Plane, width, height int, t PixelType) {
	n := width * t.Size()
	for y := 0; y < height; y++ {
		row := p.Row(y)
		for i := 0; i < n; i++ {
			row[i] = byte((i*7 + y*131 + 5) % 251)
		}
	}
}

// samePixels compares the used region of two planes row by row, ignoring
// stride padding.
func samePixels(a, b *Plane, width, height int, t PixelType) bool {
	n := width * t.Size()
	for y := 0; y < height; y++ {
		if !bytes.Equal(a.Row(y)[:n], b.Row(y)[:n]) {
			return false
		}
	}
	return true
}

func runFilter(t *testing.T, f Filter, src, dst *Buffer, height, width int) {
	t.Helper()
	ctx := allocAligned(f.ContextSize())
	f.InitContext(ctx)
	tmp := allocAligned(f.TmpSize(0, width))
	prevFirst, prevLast := 0, 0
	for row := 0; row < height; row += f.SimultaneousLines() {
		first, last := f.RequiredRowRange(row)
		if first > last || first < prevFirst || last < prevLast {
			t.Fatalf("row range regressed at %d: [%d,%d) after [%d,%d)", row, first, last, prevFirst, prevLast)
		}
		prevFirst, prevLast = first, last
		if err := f.Process(ctx, src, dst, tmp, row, 0, width); err != nil {
			t.Fatalf("process row %d: %v", row, err)
		}
	}
}

func TestCopyFilterIdentity(t *testing.T) {
	const width, height = 591, 333
	for _, typ := range []PixelType{PixelByte, PixelWord, PixelHalf, PixelFloat} {
		f, err := NewCopyFilter(width, height, typ)
		if err != nil {
			t.Fatalf("%s: %v", typ, err)
		}
		src := AllocBuffer(width, height, typ, 1)
		dst := AllocBuffer(width, height, typ, 1)
		fillPattern(&src.Planes[0], width, height, typ)

		runFilter(t, f, src, dst, height, width)

		if !samePixels(&src.Planes[0], &dst.Planes[0], width, height, typ) {
			t.Fatalf("%s: copy output differs from input", typ)
		}
	}
}

func TestCopyFilterPartialSpan(t *testing.T) {
	const width, height = 64, 4
	f, err := NewCopyFilter(width, height, PixelWord)
	if err != nil {
		t.Fatal(err)
	}
	src := AllocBuffer(width, height, PixelWord, 1)
	dst := AllocBuffer(width, height, PixelWord, 1)
	fillPattern(&src.Planes[0], width, height, PixelWord)

	for row := 0; row < height; row++ {
		if err := f.Process(nil, src, dst, nil, row, 16, 48); err != nil {
			t.Fatalf("process: %v", err)
		}
	}
	for y := 0; y < height; y++ {
		s, d := src.Planes[0].Row(y), dst.Planes[0].Row(y)
		if !bytes.Equal(s[16*2:48*2], d[16*2:48*2]) {
			t.Fatalf("row %d: span not copied", y)
		}
		for _, i := range []int{0, 15*2 + 1, 48 * 2, width*2 - 1} {
			if d[i] != 0 {
				t.Fatalf("row %d: wrote outside span at byte %d", y, i)
			}
		}
	}
}

func TestCopyFilterContract(t *testing.T) {
	f, err := NewCopyFilter(100, 50, PixelByte)
	if err != nil {
		t.Fatal(err)
	}
	if fl := f.Flags(); !fl.SameRow || !fl.InPlace || fl.HasState || fl.EntireRow || fl.Color {
		t.Fatalf("unexpected flags: %+v", fl)
	}
	if first, last := f.RequiredRowRange(17); first != 17 || last != 18 {
		t.Fatalf("row range: [%d,%d)", first, last)
	}
	if first, last := f.RequiredColRange(3, 90); first != 3 || last != 90 {
		t.Fatalf("col range: [%d,%d)", first, last)
	}
	if f.ContextSize() != 0 || f.TmpSize(0, 100) != 0 || f.SimultaneousLines() != 1 {
		t.Fatal("copy filter must be stateless and scratch-free")
	}
	if _, err := NewCopyFilter(0, 50, PixelByte); err == nil {
		t.Fatal("expected error for zero width")
	}
}

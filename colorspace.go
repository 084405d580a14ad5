package planar

import "fmt"

// colorOp transforms one span of three channel rows in place.
type colorOp func(c0, c1, c2 []float32)

// ColorspaceFilter converts between two colorspace definitions. It operates
// on float samples only: the matrix math assumes unbounded real-valued
// linear-light values, so integer formats must pass through a depth
// conversion first.
type ColorspaceFilter struct {
	width  int
	height int
	in     ColorspaceDefinition
	out    ColorspaceDefinition
	ops    []colorOp
	cpu    CPU
}

// NewColorspaceFilter composes the per-pixel operation chain at construction:
// constant-luminance or plain matrix decode to R'G'B', linearization when the
// transfers differ, and the forward re-encode. Primaries mismatches are
// carried without chromatic adaptation.
func NewColorspaceFilter(in, out ColorspaceDefinition, width, height int, t PixelType, cpu CPU) (*ColorspaceFilter, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := out.validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d: %w", width, height, ErrIllegalArgument)
	}
	if t != PixelFloat {
		return nil, fmt.Errorf("colorspace conversion requires float samples, got %s: %w", t, ErrUnsupported)
	}

	ops, err := buildColorOps(in, out)
	if err != nil {
		return nil, err
	}

	return &ColorspaceFilter{
		width:  width,
		height: height,
		in:     in,
		out:    out,
		ops:    ops,
		cpu:    cpu.Resolve(),
	}, nil
}

func buildColorOps(in, out ColorspaceDefinition) ([]colorOp, error) {
	if in == out {
		return nil, nil
	}

	var ops []colorOp
	cur := in

	// Decode to R'G'B'.
	switch {
	case cur.Matrix == Matrix2020CL:
		ops = append(ops, cl2020ToLinearRGBOp())
		cur.Matrix = MatrixRGB
		cur.Transfer = TransferLinear
	case cur.Matrix != MatrixRGB:
		kr, kb := krKb(cur.Matrix)
		m, err := inverse3(nclRGBToYUVMatrix(kr, kb))
		if err != nil {
			return nil, err
		}
		ops = append(ops, matrixOp(m))
		cur.Matrix = MatrixRGB
	}

	// Linearize when the transfers differ or a constant-luminance target
	// needs linear light.
	if cur.Transfer != TransferLinear && (cur.Transfer != out.Transfer || out.Matrix == Matrix2020CL) {
		ops = append(ops, transferOp(rec709InverseOETF))
		cur.Transfer = TransferLinear
	}

	// Primaries mismatches are intentionally not adapted.

	// Re-encode.
	if out.Matrix == Matrix2020CL {
		ops = append(ops, linearRGBToCL2020Op())
		return ops, nil
	}
	if cur.Transfer != out.Transfer {
		ops = append(ops, transferOp(rec709OETF))
		cur.Transfer = out.Transfer
	}
	if out.Matrix != MatrixRGB {
		kr, kb := krKb(out.Matrix)
		ops = append(ops, matrixOp(nclRGBToYUVMatrix(kr, kb)))
	}
	return ops, nil
}

func matrixOp(m matrix3) colorOp {
	m00, m01, m02 := float32(m[0][0]), float32(m[0][1]), float32(m[0][2])
	m10, m11, m12 := float32(m[1][0]), float32(m[1][1]), float32(m[1][2])
	m20, m21, m22 := float32(m[2][0]), float32(m[2][1]), float32(m[2][2])

	return func(c0, c1, c2 []float32) {
		for i := range c0 {
			a, b, c := c0[i], c1[i], c2[i]
			c0[i] = m00*a + m01*b + m02*c
			c1[i] = m10*a + m11*b + m12*c
			c2[i] = m20*a + m21*b + m22*c
		}
	}
}

func transferOp(curve func(float32) float32) colorOp {
	return func(c0, c1, c2 []float32) {
		for i := range c0 {
			c0[i] = curve(c0[i])
			c1[i] = curve(c1[i])
			c2[i] = curve(c2[i])
		}
	}
}

// BT.2020 constant-luminance chroma scale factors (Nb/Pb, Nr/Pr doubled).
const (
	cl2020NB = 1.9404
	cl2020PB = 1.5816
	cl2020NR = 1.7184
	cl2020PR = 0.9936
)

// cl2020ToLinearRGBOp decodes constant-luminance Y'CbCr to linear RGB: luma
// and the chroma-derived R'/B' linearize per channel, G comes from linear
// light.
func cl2020ToLinearRGBOp() colorOp {
	kr, kb := krKb(Matrix2020CL)
	fkr, fkb := float32(kr), float32(kb)
	fkg := 1 - fkr - fkb

	return func(c0, c1, c2 []float32) {
		for i := range c0 {
			y, cb, cr := c0[i], c1[i], c2[i]

			bp := cb*cl2020PB + y
			if cb <= 0 {
				bp = cb*cl2020NB + y
			}
			rp := cr*cl2020PR + y
			if cr <= 0 {
				rp = cr*cl2020NR + y
			}

			yl := rec709InverseOETF(y)
			b := rec709InverseOETF(bp)
			r := rec709InverseOETF(rp)
			g := (yl - fkr*r - fkb*b) / fkg

			c0[i], c1[i], c2[i] = r, g, b
		}
	}
}

func linearRGBToCL2020Op() colorOp {
	kr, kb := krKb(Matrix2020CL)
	fkr, fkb := float32(kr), float32(kb)
	fkg := 1 - fkr - fkb

	return func(c0, c1, c2 []float32) {
		for i := range c0 {
			r, g, b := c0[i], c1[i], c2[i]

			y := rec709OETF(fkr*r + fkg*g + fkb*b)
			bp := rec709OETF(b)
			rp := rec709OETF(r)

			cb := (bp - y) / cl2020PB
			if bp-y <= 0 {
				cb = (bp - y) / cl2020NB
			}
			cr := (rp - y) / cl2020PR
			if rp-y <= 0 {
				cr = (rp - y) / cl2020NR
			}

			c0[i], c1[i], c2[i] = y, cb, cr
		}
	}
}

func (f *ColorspaceFilter) Flags() Flags {
	return Flags{SameRow: true, InPlace: true, Color: true}
}

func (f *ColorspaceFilter) RequiredRowRange(row int) (int, int) {
	return row, row + 1
}

func (f *ColorspaceFilter) RequiredColRange(left, right int) (int, int) {
	return left, right
}

func (f *ColorspaceFilter) SimultaneousLines() int { return 1 }

func (f *ColorspaceFilter) ContextSize() int { return 0 }

// TmpSize covers three float32 channel rows of the span.
func (f *ColorspaceFilter) TmpSize(left, right int) int {
	return 3 * (right - left) * 4
}

func (f *ColorspaceFilter) InitContext(ctx []byte) {}

func (f *ColorspaceFilter) Process(ctx []byte, src, dst *Buffer, tmp []byte, row, left, right int) error {
	span := right - left
	if span <= 0 {
		return nil
	}

	if len(f.ops) == 0 {
		for p := 0; p < 3; p++ {
			s := src.Planes[p].Row(row)
			d := dst.Planes[p].Row(row)
			copy(d[left*4:right*4], s[left*4:right*4])
		}
		return nil
	}

	c0 := scratchF32(tmp, 0, span)
	c1 := scratchF32(tmp, span, span)
	c2 := scratchF32(tmp, 2*span, span)

	LoadFloatRow(src.Planes[0].Row(row), left, c0)
	LoadFloatRow(src.Planes[1].Row(row), left, c1)
	LoadFloatRow(src.Planes[2].Row(row), left, c2)

	for _, op := range f.ops {
		op(c0, c1, c2)
	}

	StoreFloatRow(dst.Planes[0].Row(row), left, c0)
	StoreFloatRow(dst.Planes[1].Row(row), left, c1)
	StoreFloatRow(dst.Planes[2].Row(row), left, c2)
	return nil
}

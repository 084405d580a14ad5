package planar

import "fmt"

// MatrixCoefficients selects the Y'CbCr <-> R'G'B' matrix family.
type MatrixCoefficients int

const (
	// MatrixRGB leaves samples as R'G'B'.
	MatrixRGB MatrixCoefficients = iota
	// Matrix709 is BT.709.
	Matrix709
	// Matrix601 is BT.601 (470BG / 170M).
	Matrix601
	// Matrix2020NCL is BT.2020 non-constant luminance.
	Matrix2020NCL
	// Matrix2020CL is BT.2020 constant luminance.
	Matrix2020CL
)

// TransferCharacteristics selects the encoding curve.
type TransferCharacteristics int

const (
	// Transfer709 is the BT.709-compatible curve (also covers the 601 and
	// 2020 10/12-bit aliases).
	Transfer709 TransferCharacteristics = iota
	// TransferLinear is linear light.
	TransferLinear
)

// ColorPrimaries identifies the chromaticity set. Primaries mismatches are
// intentionally not chromatically adapted; the field exists so definitions
// compare meaningfully and hosts round-trip it.
type ColorPrimaries int

const (
	// Primaries709 is BT.709.
	Primaries709 ColorPrimaries = iota
	// PrimariesSMPTEC is SMPTE-C (170M / 240M).
	PrimariesSMPTEC
	// Primaries2020 is BT.2020.
	Primaries2020
)

// ColorspaceDefinition fully describes one side of a colorspace conversion.
// Equal input and output definitions form a legal identity transform.
type ColorspaceDefinition struct {
	Matrix    MatrixCoefficients
	Transfer  TransferCharacteristics
	Primaries ColorPrimaries
}

func (d ColorspaceDefinition) validate() error {
	switch d.Matrix {
	case MatrixRGB, Matrix709, Matrix601, Matrix2020NCL, Matrix2020CL:
	default:
		return fmt.Errorf("invalid matrix coefficients %d: %w", int(d.Matrix), ErrIllegalArgument)
	}
	switch d.Transfer {
	case Transfer709, TransferLinear:
	default:
		return fmt.Errorf("invalid transfer characteristics %d: %w", int(d.Transfer), ErrIllegalArgument)
	}
	switch d.Primaries {
	case Primaries709, PrimariesSMPTEC, Primaries2020:
	default:
		return fmt.Errorf("invalid color primaries %d: %w", int(d.Primaries), ErrIllegalArgument)
	}
	return nil
}

// krKb returns the luma coefficients of a non-RGB matrix.
func krKb(m MatrixCoefficients) (kr, kb float64) {
	switch m {
	case Matrix709:
		return 0.2126, 0.0722
	case Matrix601:
		return 0.299, 0.114
	default: // Matrix2020NCL, Matrix2020CL
		return 0.2627, 0.0593
	}
}

type matrix3 [3][3]float64

// nclRGBToYUVMatrix derives the forward R'G'B' -> Y'CbCr matrix from the
// luma coefficients.
func nclRGBToYUVMatrix(kr, kb float64) matrix3 {
	kg := 1 - kr - kb
	uscale := 1 / (2 * (1 - kb))
	vscale := 1 / (2 * (1 - kr))

	return matrix3{
		{kr, kg, kb},
		{-kr * uscale, -kg * uscale, (1 - kb) * uscale},
		{(1 - kr) * vscale, -kg * vscale, -kb * vscale},
	}
}

// inverse3 inverts a 3x3 matrix by cofactor expansion.
func inverse3(m matrix3) (matrix3, error) {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	if det == 0 {
		return matrix3{}, fmt.Errorf("singular color matrix: %w", ErrLogic)
	}
	inv := 1 / det

	var r matrix3
	r[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv
	r[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv
	r[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv
	r[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv
	r[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv
	r[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv
	r[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv
	r[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv
	r[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv
	return r, nil
}

// rec709OETF encodes linear light. Values below the knee (including
// negatives from ringing) stay on the linear segment.
func rec709OETF(x float32) float32 {
	if x < 0.018 {
		return 4.5 * x
	}
	return 1.099*powf(x, 0.45) - 0.099
}

// rec709InverseOETF decodes to linear light.
func rec709InverseOETF(x float32) float32 {
	if x < 0.081 {
		return x / 4.5
	}
	return powf((x+0.099)/1.099, 1/0.45)
}

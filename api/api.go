// Package api is the host-facing boundary of the planar library: integer
// enums, versioned parameter structs and the status-code call convention.
//
// The core raises typed failures; this package is the single place they are
// classified to status codes and human-readable messages, so the core never
// leaks raised failures across the boundary. Instead of a process-wide
// last-error slot, every call returns an explicit Result; see Compat for
// the query-after-failure style shim.
package api

import (
	"errors"
	"fmt"
	"math"

	"github.com/vearutop/planar"
)

// APIVersion gates which parameter-struct fields are populated and read.
// Fields are only touched when the struct's version is at or above the
// field's introduction version; new fields are additive, never reordered or
// removed, so older callers using a smaller struct remain valid.
const APIVersion = 2

// VersionInfo returns the library release triple.
func VersionInfo() (major, minor, micro uint) {
	return 1, 90, 0
}

// Status codes returned across the boundary.
const (
	StatusOK              = 0
	StatusUnknown         = 1
	StatusLogic           = 2
	StatusOutOfMemory     = 3
	StatusIllegalArgument = 4
	StatusUnsupported     = 5
)

// Status classifies an error to its boundary code. Nil maps to StatusOK;
// errors that wrap none of the library's failure classes map to
// StatusUnknown.
func Status(err error) int {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, planar.ErrLogic):
		return StatusLogic
	case errors.Is(err, planar.ErrOutOfMemory):
		return StatusOutOfMemory
	case errors.Is(err, planar.ErrIllegalArgument):
		return StatusIllegalArgument
	case errors.Is(err, planar.ErrUnsupported):
		return StatusUnsupported
	default:
		return StatusUnknown
	}
}

// Result pairs a status code with its message, carried per call rather than
// in thread-local state.
type Result struct {
	Code    int
	Message string
}

// ResultOf captures an error as a Result.
func ResultOf(err error) Result {
	if err == nil {
		return Result{Code: StatusOK}
	}
	return Result{Code: Status(err), Message: err.Error()}
}

// Compat emulates a "query last error" call convention for callers that want
// it. It is an explicit value fed per call, not ambient process state; hosts
// running concurrent sessions keep one Compat per session.
type Compat struct {
	last Result
}

// Record classifies err, stores it as the last error and returns its code.
func (c *Compat) Record(err error) int {
	c.last = ResultOf(err)
	return c.last.Code
}

// LastError returns the most recently recorded code and message.
func (c *Compat) LastError() (int, string) {
	return c.last.Code, c.last.Message
}

// Clear resets the last recorded error.
func (c *Compat) Clear() {
	c.last = Result{}
}

// CPU dispatch levels. Legacy sub-levels collapse onto the nearest
// implemented level.
const (
	CPUNone     = 0
	CPUAuto     = 1
	CPUX86MMX   = 2
	CPUX86SSE   = 3
	CPUX86SSE2  = 4
	CPUX86SSE3  = 5
	CPUX86SSSE3 = 6
	CPUX86SSE41 = 7
	CPUX86SSE42 = 8
	CPUX86AVX   = 9
	CPUX86F16C  = 10
	CPUX86AVX2  = 11
)

// Pixel types.
const (
	PixelByte  = 0
	PixelWord  = 1
	PixelHalf  = 2
	PixelFloat = 3
)

// Pixel ranges.
const (
	RangeLimited = 0
	RangeFull    = 1
)

// Matrix coefficients (H.273 code points; 470BG and 170M alias to 601).
const (
	MatrixRGB     = 0
	Matrix709     = 1
	Matrix470BG   = 5
	Matrix170M    = 6
	Matrix2020NCL = 9
	Matrix2020CL  = 10
)

// Transfer characteristics (H.273 code points; the 601 and 2020 10/12-bit
// curves alias to the 709-compatible curve).
const (
	Transfer709    = 1
	Transfer601    = 6
	TransferLinear = 8
	Transfer202010 = 14
	Transfer202012 = 15
)

// Color primaries (H.273 code points; 170M and 240M alias to SMPTE-C).
const (
	Primaries709  = 1
	Primaries170M = 6
	Primaries240M = 7
	Primaries2020 = 9
)

// Dither types.
const (
	DitherNone           = 0
	DitherOrdered        = 1
	DitherRandom         = 2
	DitherErrorDiffusion = 3
)

// Resize filter kinds.
const (
	ResizePoint    = 0
	ResizeBilinear = 1
	ResizeBicubic  = 2
	ResizeSpline16 = 3
	ResizeSpline36 = 4
	ResizeLanczos  = 5
)

func translateCPU(cpu int) (planar.CPU, error) {
	switch cpu {
	case CPUNone, CPUX86MMX, CPUX86SSE:
		return planar.CPUNone, nil
	case CPUAuto:
		return planar.CPUAuto, nil
	case CPUX86SSE2, CPUX86SSE3, CPUX86SSSE3, CPUX86SSE41, CPUX86SSE42, CPUX86AVX, CPUX86F16C:
		return planar.CPUSSE2, nil
	case CPUX86AVX2:
		return planar.CPUAVX2, nil
	default:
		return 0, fmt.Errorf("invalid cpu type %d: %w", cpu, planar.ErrIllegalArgument)
	}
}

func translatePixelType(pixel int) (planar.PixelType, error) {
	switch pixel {
	case PixelByte:
		return planar.PixelByte, nil
	case PixelWord:
		return planar.PixelWord, nil
	case PixelHalf:
		return planar.PixelHalf, nil
	case PixelFloat:
		return planar.PixelFloat, nil
	default:
		return 0, fmt.Errorf("invalid pixel type %d: %w", pixel, planar.ErrIllegalArgument)
	}
}

func translateRange(r int) (bool, error) {
	switch r {
	case RangeLimited:
		return false, nil
	case RangeFull:
		return true, nil
	default:
		return false, fmt.Errorf("invalid pixel range %d: %w", r, planar.ErrIllegalArgument)
	}
}

func translateMatrix(matrix int) (planar.MatrixCoefficients, error) {
	switch matrix {
	case MatrixRGB:
		return planar.MatrixRGB, nil
	case Matrix709:
		return planar.Matrix709, nil
	case Matrix470BG, Matrix170M:
		return planar.Matrix601, nil
	case Matrix2020NCL:
		return planar.Matrix2020NCL, nil
	case Matrix2020CL:
		return planar.Matrix2020CL, nil
	default:
		return 0, fmt.Errorf("invalid matrix coefficients %d: %w", matrix, planar.ErrIllegalArgument)
	}
}

func translateTransfer(transfer int) (planar.TransferCharacteristics, error) {
	switch transfer {
	case Transfer709, Transfer601, Transfer202010, Transfer202012:
		return planar.Transfer709, nil
	case TransferLinear:
		return planar.TransferLinear, nil
	default:
		return 0, fmt.Errorf("invalid transfer characteristics %d: %w", transfer, planar.ErrIllegalArgument)
	}
}

func translatePrimaries(primaries int) (planar.ColorPrimaries, error) {
	switch primaries {
	case Primaries709:
		return planar.Primaries709, nil
	case Primaries170M, Primaries240M:
		return planar.PrimariesSMPTEC, nil
	case Primaries2020:
		return planar.Primaries2020, nil
	default:
		return 0, fmt.Errorf("invalid color primaries %d: %w", primaries, planar.ErrIllegalArgument)
	}
}

func translateDither(dither int) (planar.DitherType, error) {
	switch dither {
	case DitherNone:
		return planar.DitherNone, nil
	case DitherOrdered:
		return planar.DitherOrdered, nil
	case DitherRandom:
		return planar.DitherRandom, nil
	case DitherErrorDiffusion:
		return planar.DitherErrorDiffusion, nil
	default:
		return 0, fmt.Errorf("invalid dither %d: %w", dither, planar.ErrIllegalArgument)
	}
}

// translateResizeKernel resolves a filter kind and its shape parameters,
// applying the documented defaults for NaN sentinels.
func translateResizeKernel(kind int, paramA, paramB float64) (*planar.Kernel, error) {
	switch kind {
	case ResizePoint:
		return planar.NewPointKernel(), nil
	case ResizeBilinear:
		return planar.NewBilinearKernel(), nil
	case ResizeBicubic:
		if math.IsNaN(paramA) {
			paramA = 1.0 / 3.0
		}
		if math.IsNaN(paramB) {
			paramB = 1.0 / 3.0
		}
		return planar.NewBicubicKernel(paramA, paramB), nil
	case ResizeSpline16:
		return planar.NewSpline16Kernel(), nil
	case ResizeSpline36:
		return planar.NewSpline36Kernel(), nil
	case ResizeLanczos:
		if math.IsNaN(paramA) {
			paramA = 3
		}
		return planar.NewLanczosKernel(int(math.Floor(paramA)))
	default:
		return nil, fmt.Errorf("invalid resize filter %d: %w", kind, planar.ErrIllegalArgument)
	}
}

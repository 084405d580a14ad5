package api

import (
	"fmt"
	"math"

	"github.com/vearutop/planar"
)

// ColorspaceParams configures a colorspace filter. All fields below Version
// were introduced at version 2.
type ColorspaceParams struct {
	Version uint

	Width  int
	Height int

	MatrixIn    int
	TransferIn  int
	PrimariesIn int

	MatrixOut    int
	TransferOut  int
	PrimariesOut int

	PixelType int

	CPU int
}

// ColorspaceParamsDefault populates the fields a caller's version knows
// about.
func ColorspaceParamsDefault(p *ColorspaceParams, version uint) {
	if version >= 2 {
		p.Version = version

		p.Width = 0
		p.Height = 0

		p.MatrixIn = 2
		p.TransferIn = 2
		p.PrimariesIn = 2

		p.MatrixOut = 2
		p.TransferOut = 2
		p.PrimariesOut = 2

		p.PixelType = -1

		p.CPU = CPUAuto
	}
}

// NewColorspaceFilter validates the parameters and constructs the filter.
// On failure it returns a nil filter and a classified error.
func NewColorspaceFilter(p *ColorspaceParams) (planar.Filter, error) {
	if err := checkVersion(p.Version); err != nil {
		return nil, err
	}

	var in, out planar.ColorspaceDefinition
	var pixel planar.PixelType
	var cpu planar.CPU

	if p.Version >= 2 {
		var err error
		if in.Matrix, err = translateMatrix(p.MatrixIn); err != nil {
			return nil, err
		}
		if in.Transfer, err = translateTransfer(p.TransferIn); err != nil {
			return nil, err
		}
		if in.Primaries, err = translatePrimaries(p.PrimariesIn); err != nil {
			return nil, err
		}

		if out.Matrix, err = translateMatrix(p.MatrixOut); err != nil {
			return nil, err
		}
		if out.Transfer, err = translateTransfer(p.TransferOut); err != nil {
			return nil, err
		}
		if out.Primaries, err = translatePrimaries(p.PrimariesOut); err != nil {
			return nil, err
		}

		if pixel, err = translatePixelType(p.PixelType); err != nil {
			return nil, err
		}
		if cpu, err = translateCPU(p.CPU); err != nil {
			return nil, err
		}
	}

	return planar.NewColorspaceFilter(in, out, p.Width, p.Height, pixel, cpu)
}

// DepthParams configures a depth/dither filter. All fields below Version
// were introduced at version 2.
type DepthParams struct {
	Version uint

	Width  int
	Height int

	DitherType int
	Chroma     bool

	PixelIn int
	DepthIn int
	RangeIn int

	PixelOut int
	DepthOut int
	RangeOut int

	CPU int
}

// DepthParamsDefault populates the fields a caller's version knows about.
func DepthParamsDefault(p *DepthParams, version uint) {
	if version >= 2 {
		p.Version = version

		p.Width = 0
		p.Height = 0

		p.DitherType = DitherNone
		p.Chroma = false

		p.PixelIn = -1
		p.DepthIn = 0
		p.RangeIn = RangeLimited

		p.PixelOut = -1
		p.DepthOut = 0
		p.RangeOut = RangeLimited

		p.CPU = CPUAuto
	}
}

// NewDepthFilter validates the parameters and constructs the filter.
func NewDepthFilter(p *DepthParams) (planar.Filter, error) {
	if err := checkVersion(p.Version); err != nil {
		return nil, err
	}

	var in, out planar.PixelFormat
	var dither planar.DitherType
	var cpu planar.CPU

	if p.Version >= 2 {
		var err error
		if dither, err = translateDither(p.DitherType); err != nil {
			return nil, err
		}

		if in.Type, err = translatePixelType(p.PixelIn); err != nil {
			return nil, err
		}
		in.Chroma = p.Chroma
		if in.Type.Integer() {
			in.Depth = p.DepthIn
			if in.FullRange, err = translateRange(p.RangeIn); err != nil {
				return nil, err
			}
		}

		if out.Type, err = translatePixelType(p.PixelOut); err != nil {
			return nil, err
		}
		out.Chroma = p.Chroma
		if out.Type.Integer() {
			out.Depth = p.DepthOut
			if out.FullRange, err = translateRange(p.RangeOut); err != nil {
				return nil, err
			}
		}

		if cpu, err = translateCPU(p.CPU); err != nil {
			return nil, err
		}
	}

	return planar.NewDepthFilter(dither, p.Width, p.Height, in, out, cpu)
}

// ResizeParams configures a resize filter. All fields below Version were
// introduced at version 2. NaN is the "unspecified" sentinel for SubWidth,
// SubHeight, FilterParamA and FilterParamB.
type ResizeParams struct {
	Version uint

	SrcWidth  int
	SrcHeight int
	DstWidth  int
	DstHeight int

	PixelType int

	ShiftW    float64
	ShiftH    float64
	SubWidth  float64
	SubHeight float64

	FilterType   int
	FilterParamA float64
	FilterParamB float64

	CPU int
}

// ResizeParamsDefault populates the fields a caller's version knows about.
// SubWidth and SubHeight each default independently to the source extent at
// construction.
func ResizeParamsDefault(p *ResizeParams, version uint) {
	if version >= 2 {
		p.Version = version

		p.SrcWidth = 0
		p.SrcHeight = 0
		p.DstWidth = 0
		p.DstHeight = 0

		p.PixelType = -1

		p.ShiftW = 0
		p.ShiftH = 0
		p.SubWidth = math.NaN()
		p.SubHeight = math.NaN()

		p.FilterType = ResizePoint
		p.FilterParamA = math.NaN()
		p.FilterParamB = math.NaN()

		p.CPU = CPUAuto
	}
}

// NewResizeFilter validates the parameters and constructs the filter.
func NewResizeFilter(p *ResizeParams) (planar.Filter, error) {
	if err := checkVersion(p.Version); err != nil {
		return nil, err
	}

	var kernel *planar.Kernel
	var pixel planar.PixelType
	var cpu planar.CPU

	shiftW, shiftH := 0.0, 0.0
	subWidth, subHeight := math.NaN(), math.NaN()

	if p.Version >= 2 {
		var err error
		if kernel, err = translateResizeKernel(p.FilterType, p.FilterParamA, p.FilterParamB); err != nil {
			return nil, err
		}
		if pixel, err = translatePixelType(p.PixelType); err != nil {
			return nil, err
		}
		if cpu, err = translateCPU(p.CPU); err != nil {
			return nil, err
		}

		shiftW = p.ShiftW
		shiftH = p.ShiftH
		subWidth = p.SubWidth
		subHeight = p.SubHeight
	}

	return planar.NewResizeFilter(kernel, pixel,
		p.SrcWidth, p.SrcHeight, p.DstWidth, p.DstHeight,
		shiftW, shiftH, subWidth, subHeight, cpu)
}

func checkVersion(version uint) error {
	if version < 2 || version > APIVersion {
		return fmt.Errorf("unsupported parameter struct version %d: %w", version, planar.ErrIllegalArgument)
	}
	return nil
}

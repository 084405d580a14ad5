package planar

import "fmt"

// Flags are declarative properties of a filter instance. A host scheduler
// uses them to pick legal tiling and parallelization strategies without
// inspecting the filter.
type Flags struct {
	// HasState marks filters that carry state across Process calls in their
	// context block; calls against one context must be serialized.
	HasState bool
	// SameRow marks filters that may produce the same output row repeatedly
	// with identical results.
	SameRow bool
	// InPlace marks filters that may write over their input planes.
	InPlace bool
	// EntireRow marks filters that consume and produce whole rows only.
	EntireRow bool
	// Color marks pure color transforms that touch all three planes and have
	// no spatial dependency.
	Color bool
}

// Filter is a bounded-window streaming transform over planar buffers.
//
// A filter is constructed once, owns its kernel or matrix state for the life
// of a processing session, and owns no frame data. Unless Flags.Color is set,
// a filter operates on plane 0 only; hosts process each plane with its own
// instance.
//
// Row and column indices passed to Process must stay within the bounds the
// filter was constructed for; out-of-range indices are a caller contract
// violation, not a recoverable error.
type Filter interface {
	// Flags has no side effects and always succeeds.
	Flags() Flags

	// RequiredRowRange returns the half-open range of source rows needed to
	// produce one destination row. It is monotonic in row so a host can
	// maintain a sliding window.
	RequiredRowRange(row int) (first, last int)

	// RequiredColRange returns the half-open range of source columns needed
	// to produce destination columns [left, right).
	RequiredColRange(left, right int) (first, last int)

	// SimultaneousLines is the number of destination rows produced together
	// by one Process call.
	SimultaneousLines() int

	// ContextSize is the size in bytes of the per-session state block
	// preserved across calls; 0 for stateless filters.
	ContextSize() int

	// TmpSize is the scratch size in bytes needed to process a span of the
	// given width. It must not vary between calls with the same width.
	TmpSize(left, right int) int

	// InitContext prepares the state block before first use; a no-op when
	// ContextSize is 0.
	InitContext(ctx []byte)

	// Process produces destination rows [row, row+SimultaneousLines()) and
	// columns [left, right). It reads only the declared source ranges and
	// writes only the declared output region plus, for stateful filters, the
	// context block.
	Process(ctx []byte, src, dst *Buffer, tmp []byte, row, left, right int) error
}

// CopyFilter passes plane 0 through unchanged. It is the degenerate identity
// filter hosts use to normalize graph shapes.
type CopyFilter struct {
	width  int
	height int
	typ    PixelType
}

// NewCopyFilter returns an identity filter over a width x height plane.
func NewCopyFilter(width, height int, t PixelType) (*CopyFilter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid plane dimensions %dx%d: %w", width, height, ErrIllegalArgument)
	}
	return &CopyFilter{width: width, height: height, typ: t}, nil
}

func (f *CopyFilter) Flags() Flags {
	return Flags{SameRow: true, InPlace: true}
}

func (f *CopyFilter) RequiredRowRange(row int) (int, int) {
	return row, row + 1
}

func (f *CopyFilter) RequiredColRange(left, right int) (int, int) {
	return left, right
}

func (f *CopyFilter) SimultaneousLines() int { return 1 }

func (f *CopyFilter) ContextSize() int { return 0 }

func (f *CopyFilter) TmpSize(left, right int) int { return 0 }

func (f *CopyFilter) InitContext(ctx []byte) {}

func (f *CopyFilter) Process(ctx []byte, src, dst *Buffer, tmp []byte, row, left, right int) error {
	n := f.typ.Size()
	s := src.Planes[0].Row(row)
	d := dst.Planes[0].Row(row)
	copy(d[left*n:right*n], s[left*n:right*n])
	return nil
}

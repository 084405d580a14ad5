package planar

// CPU selects an instruction-set dispatch level. All numeric kernels here
// are scalar Go, so every level produces bit-identical output; the level is
// normalized at construction and recorded on the filter, keeping the
// selection contract stable for hosts that pin a level.
type CPU int

const (
	// CPUNone disables acceleration.
	CPUNone CPU = iota
	// CPUSSE2 targets the x86-64 baseline vector set.
	CPUSSE2
	// CPUAVX2 targets 256-bit x86 vectors.
	CPUAVX2
	// CPUAuto probes the running processor.
	CPUAuto
)

// Resolve maps CPUAuto to the probed level and passes other levels through.
func (c CPU) Resolve() CPU {
	if c == CPUAuto {
		return probeCPU()
	}
	return c
}

func (c CPU) String() string {
	switch c {
	case CPUNone:
		return "none"
	case CPUSSE2:
		return "sse2"
	case CPUAVX2:
		return "avx2"
	case CPUAuto:
		return "auto"
	default:
		return "unknown"
	}
}

//go:build amd64

package planar

import "golang.org/x/sys/cpu"

func probeCPU() CPU {
	if cpu.X86.HasAVX2 {
		return CPUAVX2
	}
	// SSE2 is the amd64 baseline.
	return CPUSSE2
}

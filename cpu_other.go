//go:build !amd64

package planar

func probeCPU() CPU {
	return CPUNone
}

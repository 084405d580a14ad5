// Package planar converts raw planar image buffers between pixel formats,
// color spaces, bit depths and spatial resolutions.
//
// The implementation favors correctness and portability over raw speed.
// The library owns no frame storage: callers hand each filter
// caller-owned planes per call and drive processing tile by tile using the
// dependency ranges the filter declares, so a bounded row window can stream
// an unbounded frame sequence.
package planar

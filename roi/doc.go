// Package roi implements region-of-interest extraction and conversion
// between dense and run-length encoded volumes.
//
// # Overview
//
// Four shapes share one skeleton: RLE-to-RLE (same or different pixel
// and counter types), dense-to-RLE, and RLE-to-dense. RLEToRLE,
// DenseToRLE and RLEToDense extract an output of the requested
// region's shape; Convert takes no region and re-encodes the whole
// input volume. All four work one (N-1)-D grid line at a time. Lines are independent,
// so every shape dispatches its per-line work across
// internal/parallel's worker pool.
//
// # Concurrency
//
// The output's grid of lines is the only mutable shared state. Safety
// rests on a single rule: a given output line is ever written by
// exactly one worker. This package enforces the rule structurally by
// making "one dispatched unit of work" and "one whole output line"
// the same thing — a worker is never handed a partial scanline, so
// there is no sub-line tile whose ownership could be ambiguous.
//
// # Quick start
//
//	out, err := roi.RLEToRLE(input, rleimage.Region{
//		Index: []int{1, 0},
//		Size:  []int{2, 3},
//	})
package roi

// Package rleimage provides a run-length encoded N-dimensional image
// container optimized for label/segmentation images.
//
// # Overview
//
// rleimage trades per-pixel access speed for a large reduction in memory
// footprint on images dominated by long runs of identical pixel values
// (e.g. a segmented medical-imaging label volume). It is a port of ITK's
// RLEImage module: a dense (N-1)-dimensional grid of "lines", each line
// being a compact list of (count, value) segments along the fastest axis.
//
// # Quick Start
//
//	import "github.com/gogpu/rleimage"
//
//	vol := rleimage.New[uint16, uint8](rleimage.NewRegion(256, 256, 64))
//	if err := vol.Allocate(); err != nil {
//		log.Fatal(err)
//	}
//	vol.Fill(0)
//
//	cur, err := rleimage.NewRegionCursor(vol, vol.BufferedRegion())
//	if err != nil {
//		log.Fatal(err)
//	}
//	for !cur.AtEnd() {
//		cur.Set(1)
//		cur.Next()
//	}
//
// # Architecture
//
// The library is organized into:
//   - Segment/Line primitives (segment.go): the canonical run-list
//     representation of one scanline and its single mutation primitive,
//     Line Edit.
//   - Volume container (volume.go, geometry.go, internal/grid): owns the
//     (N-1)-D grid of lines, geometry, and bulk operations.
//   - Cursors (cursor*.go): forward/reverse, scanline/region/with-index
//     traversal over a buffered region.
//   - Region-of-interest extraction and dense<->RLE conversion (package
//     roi): parallel per-line workers under a "one writer per line" rule.
//
// # Coordinate System
//
// Axis 0 is the fastest-varying, run-length-encoded axis. The buffered
// region must span the complete axis-0 extent; it may be a strict subset
// of the largest-possible region along the remaining axes.
//
// # Performance
//
// Per-pixel Volume.SetPixel/GetPixel walk the line's segment list in
// O(k); cursors amortize this to O(1) by caching the current segment
// position and updating it in place on every Line Edit.
package rleimage

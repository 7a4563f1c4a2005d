package roi

import (
	"golang.org/x/exp/constraints"

	"github.com/gogpu/rleimage"
)

// OutputLargestRegion returns the output volume's largest-possible
// region for a RoI extraction: same size as the requested region,
// reindexed to start at the origin.
//
// Grounded on itkRLERegionOfInterestImageFilter.hxx's
// GenerateOutputInformation, which reindexes the output region to
// (0,0,...) regardless of where the RoI sat in the input.
func OutputLargestRegion(roiRegion rleimage.Region) rleimage.Region {
	return rleimage.NewRegion(roiRegion.Size...)
}

// OutputGeometry computes the output volume's geometry for a RoI
// extraction: the origin is translated to the RoI's starting physical
// point via the input's index-to-point mapping; spacing and direction
// pass through unchanged.
//
// Grounded on GenerateOutputInformation's
// "TransformIndexToPhysicalPoint(requestedRegion.GetIndex())" call.
func OutputGeometry[C constraints.Unsigned, P comparable](input *rleimage.Volume[C, P], roiRegion rleimage.Region) rleimage.Geometry {
	g := input.Geometry()
	return rleimage.Geometry{
		Origin:    g.TransformIndexToPhysicalPoint(roiRegion.Index),
		Spacing:   append([]float64(nil), g.Spacing...),
		Direction: append([]float64(nil), g.Direction...),
	}
}

// GenerateInputRequestedRegion returns the region this filter demands
// from its input: exactly the requested RoI, unchanged.
func GenerateInputRequestedRegion(roiRegion rleimage.Region) rleimage.Region {
	return roiRegion
}

// checkDimension reports rleimage.ErrDimensionMismatch unless roiRegion
// and volumeRegion share a dimension. The C++ filter rejects a
// dimension mismatch at compile time via its template parameters; Go's
// generics fix a Volume's pixel and counter types the same way but not
// its dimension, so every roi entry point calls this before indexing
// into a volume or dense image with a caller-supplied region.
func checkDimension(roiRegion, volumeRegion rleimage.Region) error {
	if !roiRegion.SameDimension(volumeRegion) {
		return rleimage.ErrDimensionMismatch
	}
	return nil
}

// EnlargeOutputRequestedRegion forces full axis-0 production: RLE
// production is indivisible along the encoded axis, so a worker given
// a partial axis-0 slice would leave its line in a non-canonical,
// partially-built state visible to concurrent writers. axis0Extent is
// the output volume's full axis-0 size.
func EnlargeOutputRequestedRegion(requested rleimage.Region, axis0Extent int) rleimage.Region {
	enlarged := rleimage.Region{
		Index: append([]int(nil), requested.Index...),
		Size:  append([]int(nil), requested.Size...),
	}
	enlarged.Index[0] = 0
	enlarged.Size[0] = axis0Extent
	return enlarged
}

// enumerateGrid lists every (N-1)-D grid index within r in row-major
// order, axis 0 of r (the first non-encoded axis) varying fastest.
//
// Every RLEToRLE/DenseToRLE/RLEToDense dispatch hands each entry of
// this list to exactly one work item and always produces that line's
// full axis-0 width, never a sub-line slice. That is what makes
// "one writer per line" hold structurally here: the
// dispatch unit and the line coincide, so there is no narrower tile
// whose ownership could be contested.
func enumerateGrid(r rleimage.Region) [][]int {
	dims := len(r.Size)
	total := 1
	for _, s := range r.Size {
		total *= s
	}
	out := make([][]int, 0, total)
	idx := append([]int(nil), r.Index...)
	for len(out) < total {
		out = append(out, append([]int(nil), idx...))
		for d := 0; d < dims; d++ {
			idx[d]++
			if idx[d] < r.Index[d]+r.Size[d] {
				break
			}
			idx[d] = r.Index[d]
		}
	}
	return out
}

package roi

import (
	"golang.org/x/exp/constraints"

	"github.com/gogpu/rleimage"
	"github.com/gogpu/rleimage/internal/parallel"
)

// sliceLine returns the portion of in covering the half-open axis-0
// interval [start, end), re-expressed in canonical form. No explicit
// cleanup pass is needed: truncating a canonical line never introduces
// a new pair of adjacent same-value segments.
//
// Grounded on itkRLERegionOfInterestImageFilter.hxx's copyImagePortion.
func sliceLine[C constraints.Unsigned, P comparable](in rleimage.Line[C, P], start, end C) rleimage.Line[C, P] {
	if end <= start {
		return nil
	}
	out := make(rleimage.Line[C, P], 0, len(in))
	var t C
	for _, s := range in {
		segStart := t
		segEnd := t + s.Count
		t = segEnd
		if segEnd <= start {
			continue
		}
		if segStart >= end {
			break
		}
		lo, hi := segStart, segEnd
		if start > lo {
			lo = start
		}
		if end < hi {
			hi = end
		}
		out = append(out, rleimage.Segment[C, P]{Count: hi - lo, Value: s.Value})
	}
	return out
}

// RLEToRLE extracts roiRegion from input into a freshly allocated
// output volume of the same pixel and counter types.
//
// Grounded on itkRLERegionOfInterestImageFilter.hxx's
// DynamicThreadedGenerateData specialization for RLEImage -> RLEImage.
func RLEToRLE[C constraints.Unsigned, P comparable](input *rleimage.Volume[C, P], roiRegion rleimage.Region) (*rleimage.Volume[C, P], error) {
	if err := checkDimension(roiRegion, input.LargestPossibleRegion()); err != nil {
		return nil, err
	}

	output := rleimage.New[C, P](OutputLargestRegion(roiRegion), rleimage.WithOnTheFlyCleanup[C, P](input.OnTheFlyCleanup()))
	output.SetGeometry(OutputGeometry(input, roiRegion))
	if err := output.Allocate(); err != nil {
		return nil, err
	}

	inBuffered := input.BufferedRegion()
	start := C(roiRegion.IndexOf(0) - inBuffered.IndexOf(0))
	end := start + C(roiRegion.SizeOf(0))

	cells := enumerateGrid(output.GridRegion())
	pool := parallel.NewWorkerPool(0)
	defer pool.Close()

	errs := make([]error, len(cells))
	work := make([]func(), len(cells))
	for i, cell := range cells {
		i, cell := i, cell
		work[i] = func() {
			inputGridIdx := make([]int, len(cell))
			for d := range cell {
				inputGridIdx[d] = (roiRegion.IndexOf(d+1) + cell[d]) - inBuffered.IndexOf(d+1)
			}
			inLine, err := input.LineAt(inputGridIdx)
			if err != nil {
				errs[i] = err
				return
			}
			errs[i] = output.SetLineAt(cell, sliceLine(inLine, start, end))
		}
	}
	pool.ExecuteAll(work)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return output, nil
}

// Convert re-encodes input into an output volume with a possibly
// different pixel type POut and counter type COut, applying pixel to
// every segment's value. Counts are converted directly between the
// two unsigned counter types; both must be sufficient to represent the
// axis-0 extent, and the dense expansion of the result is independent
// of which counter type was chosen.
//
// Grounded on itkRLERegionOfInterestImageFilter.hxx's
// RLEImageTypeIn/RLEImageTypeOut template specialization.
func Convert[PIn, POut comparable, CIn, COut constraints.Unsigned](input *rleimage.Volume[CIn, PIn], pixel func(PIn) POut) (*rleimage.Volume[COut, POut], error) {
	region := input.LargestPossibleRegion()
	output := rleimage.New[COut, POut](rleimage.NewRegion(region.Size...), rleimage.WithOnTheFlyCleanup[COut, POut](input.OnTheFlyCleanup()))
	output.SetGeometry(input.Geometry())
	if err := output.Allocate(); err != nil {
		return nil, err
	}

	cells := enumerateGrid(output.GridRegion())
	pool := parallel.NewWorkerPool(0)
	defer pool.Close()

	errs := make([]error, len(cells))
	work := make([]func(), len(cells))
	for i, cell := range cells {
		i, cell := i, cell
		work[i] = func() {
			inLine, err := input.LineAt(cell)
			if err != nil {
				errs[i] = err
				return
			}
			outLine := make(rleimage.Line[COut, POut], len(inLine))
			for j, s := range inLine {
				outLine[j] = rleimage.Segment[COut, POut]{Count: COut(s.Count), Value: pixel(s.Value)}
			}
			errs[i] = output.SetLineAt(cell, outLine)
		}
	}
	pool.ExecuteAll(work)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return output, nil
}

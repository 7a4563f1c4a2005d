package roi

import (
	"golang.org/x/exp/constraints"

	"github.com/gogpu/rleimage"
	"github.com/gogpu/rleimage/internal/parallel"
)

// RLEToDense expands roiRegion of an RLE volume into a freshly
// allocated dense image.
//
// Grounded on itkRLERegionOfInterestImageFilter.hxx's
// DynamicThreadedGenerateData specialization for RLEImage -> Image.
func RLEToDense[C constraints.Unsigned, P comparable](input *rleimage.Volume[C, P], roiRegion rleimage.Region) (*DenseImage[P], error) {
	if err := checkDimension(roiRegion, input.LargestPossibleRegion()); err != nil {
		return nil, err
	}

	output, err := NewDenseImage[P](rleimage.NewRegion(roiRegion.Size...))
	if err != nil {
		return nil, err
	}

	inBuffered := input.BufferedRegion()
	start := C(roiRegion.IndexOf(0) - inBuffered.IndexOf(0))
	end := start + C(roiRegion.SizeOf(0))

	outGrid := output.Region().Slice(0)
	cells := enumerateGrid(outGrid)
	pool := parallel.NewWorkerPool(0)
	defer pool.Close()

	errs := make([]error, len(cells))
	work := make([]func(), len(cells))
	for i, cell := range cells {
		i, cell := i, cell
		work[i] = func() {
			inputGridIdx := make([]int, len(cell))
			for d := range cell {
				inputGridIdx[d] = (roiRegion.IndexOf(d+1) + cell[d]) - inBuffered.IndexOf(d + 1)
			}
			line, err := input.LineAt(inputGridIdx)
			if err != nil {
				errs[i] = err
				return
			}

			dstIndex := make([]int, len(cell)+1)
			for d, c := range cell {
				dstIndex[d+1] = c
			}

			x := 0
			var t C
			for _, s := range line {
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
				for p := lo; p < hi; p++ {
					dstIndex[0] = x
					if err := output.Set(dstIndex, s.Value); err != nil {
						errs[i] = err
						return
					}
					x++
				}
			}
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

package roi

import (
	"golang.org/x/exp/constraints"

	"github.com/gogpu/rleimage"
	"github.com/gogpu/rleimage/internal/parallel"
)

// DenseToRLE run-length encodes roiRegion of a dense image into a
// freshly allocated Volume.
//
// Grounded on itkRLERegionOfInterestImageFilter.hxx's
// DynamicThreadedGenerateData specialization for Image -> RLEImage.
func DenseToRLE[C constraints.Unsigned, P comparable](input *DenseImage[P], roiRegion rleimage.Region, opts ...rleimage.VolumeOption[C, P]) (*rleimage.Volume[C, P], error) {
	if err := checkDimension(roiRegion, input.Region()); err != nil {
		return nil, err
	}

	output := rleimage.New[C, P](OutputLargestRegion(roiRegion), opts...)
	if err := output.Allocate(); err != nil {
		return nil, err
	}

	axis0 := roiRegion.SizeOf(0)
	cells := enumerateGrid(output.GridRegion())
	pool := parallel.NewWorkerPool(0)
	defer pool.Close()

	errs := make([]error, len(cells))
	work := make([]func(), len(cells))
	for i, cell := range cells {
		i, cell := i, cell
		work[i] = func() {
			srcIndex := make([]int, len(cell)+1)
			for d, c := range cell {
				srcIndex[d+1] = roiRegion.IndexOf(d+1) + c
			}

			line := make(rleimage.Line[C, P], 0, axis0)
			var run rleimage.Segment[C, P]
			for x := 0; x < axis0; x++ {
				srcIndex[0] = roiRegion.IndexOf(0) + x
				v, err := input.At(srcIndex)
				if err != nil {
					errs[i] = err
					return
				}
				if run.Count > 0 && v == run.Value {
					run.Count++
					continue
				}
				if run.Count > 0 {
					line = append(line, run)
				}
				run = rleimage.Segment[C, P]{Count: 1, Value: v}
			}
			if run.Count > 0 {
				line = append(line, run)
			}
			errs[i] = output.SetLineAt(cell, line)
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

package roi

import (
	"github.com/gogpu/rleimage"
	"github.com/gogpu/rleimage/internal/grid"
)

// DenseImage is a flat N-D array of pixels, the dense counterpart
// package roi converts to and from an rleimage.Volume.
type DenseImage[P any] struct {
	region rleimage.Region
	data   *grid.Grid[P]
}

// NewDenseImage allocates a zero-valued dense image of the given
// region's size.
func NewDenseImage[P any](region rleimage.Region) (*DenseImage[P], error) {
	g, err := grid.New[P](region.Size)
	if err != nil {
		return nil, err
	}
	return &DenseImage[P]{region: region, data: g}, nil
}

// Region returns the dense image's region.
func (d *DenseImage[P]) Region() rleimage.Region { return d.region }

// At returns the pixel at the given N-D index, relative to Region's
// own Index.
func (d *DenseImage[P]) At(index []int) (P, error) {
	local := d.toLocal(index)
	v, err := d.data.TryAt(local)
	if err != nil {
		var zero P
		return zero, err
	}
	return *v, nil
}

// Set overwrites the pixel at the given N-D index.
func (d *DenseImage[P]) Set(index []int, value P) error {
	local := d.toLocal(index)
	v, err := d.data.TryAt(local)
	if err != nil {
		return err
	}
	*v = value
	return nil
}

func (d *DenseImage[P]) toLocal(index []int) []int {
	local := make([]int, len(index))
	for i := range index {
		local[i] = index[i] - d.region.IndexOf(i)
	}
	return local
}

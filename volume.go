package rleimage

import (
	"log/slog"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/gogpu/rleimage/internal/grid"
	"github.com/gogpu/rleimage/internal/parallel"
)

// Volume is an N-dimensional run-length encoded image: a dense
// (N-1)-dimensional grid of Lines, the fastest-varying axis (axis 0)
// run-length-encoded within each Line.
//
// Grounded on itkRLEImage.h/.hxx. A Volume exclusively owns its grid
// and all lines; Cursors hold a non-owning back-reference plus a
// local position, per the container's contract "Ownership".
type Volume[C constraints.Unsigned, P comparable] struct {
	largest   Region
	buffered  Region
	requested Region
	geometry  Geometry

	cleanup      bool
	defaultValue P

	buffer *grid.Grid[Line[C, P]]
}

// New constructs an empty Volume of the given largest-possible region.
// Buffered and requested regions both start out equal to largest.
// Call Allocate before any pixel access.
func New[C constraints.Unsigned, P comparable](largest Region, opts ...VolumeOption[C, P]) *Volume[C, P] {
	o := defaultVolumeOptions[C, P]()
	for _, opt := range opts {
		opt(&o)
	}
	return &Volume[C, P]{
		largest:      largest,
		buffered:     largest,
		requested:    largest,
		geometry:     DefaultGeometry(largest.Dimension()),
		cleanup:      o.cleanup,
		defaultValue: o.defaultValue,
	}
}

// Dimension returns N.
func (v *Volume[C, P]) Dimension() int { return v.largest.Dimension() }

// LargestPossibleRegion returns the volume's largest-possible region.
func (v *Volume[C, P]) LargestPossibleRegion() Region { return v.largest }

// BufferedRegion returns the volume's buffered region.
func (v *Volume[C, P]) BufferedRegion() Region { return v.buffered }

// RequestedRegion returns the volume's requested region.
func (v *Volume[C, P]) RequestedRegion() Region { return v.requested }

// Geometry returns the volume's physical-space geometry.
func (v *Volume[C, P]) Geometry() Geometry { return v.geometry }

// SetGeometry replaces the volume's physical-space geometry.
func (v *Volume[C, P]) SetGeometry(g Geometry) { v.geometry = g }

// SetLargestPossibleRegion sets the largest-possible region. Axis 0's
// extent here becomes the logical length of every buffered Line once
// Allocate is called.
func (v *Volume[C, P]) SetLargestPossibleRegion(r Region) { v.largest = r }

// SetBufferedRegion sets the buffered region. It must span the full
// axis-0 extent before Allocate succeeds.
func (v *Volume[C, P]) SetBufferedRegion(r Region) { v.buffered = r }

// SetRequestedRegion sets the requested region.
func (v *Volume[C, P]) SetRequestedRegion(r Region) { v.requested = r }

// OnTheFlyCleanup reports whether every Line Edit restores canonical
// form locally.
func (v *Volume[C, P]) OnTheFlyCleanup() bool { return v.cleanup }

// SetOnTheFlyCleanup toggles on-the-fly cleanup. Turning it on triggers
// a full Clean; turning it off is a no-op on existing state.
func (v *Volume[C, P]) SetOnTheFlyCleanup(value bool) {
	if value == v.cleanup {
		return
	}
	v.cleanup = value
	if v.cleanup {
		v.Clean()
	}
}

// axis0Extent returns Nx, the largest-possible region's axis-0 size.
func (v *Volume[C, P]) axis0Extent() int {
	return v.largest.SizeOf(0)
}

// Allocate allocates the volume's internal grid of Lines. Precondition:
// the buffered region spans the full axis-0 extent, and that extent
// fits in C. Postcondition: every buffered Line equals
// [(Nx, defaultValue)].
func (v *Volume[C, P]) Allocate() error {
	if v.buffered.SizeOf(0) != v.largest.SizeOf(0) {
		return ErrGeometryViolation
	}
	nx := v.axis0Extent()
	if uint64(nx) > maxUnsigned[C]() {
		return ErrCounterOverflow
	}

	g, err := grid.New[Line[C, P]](v.buffered.Slice(0).Size)
	if err != nil {
		return err
	}
	v.buffer = g

	line := Line[C, P]{{Count: C(nx), Value: v.defaultValue}}
	for i := 0; i < g.Len(); i++ {
		*g.AtLinear(i) = append(Line[C, P](nil), line...)
	}

	Logger().Debug("rleimage: allocated volume", slog.Int("axis0", nx), slog.Int("cells", g.Len()))
	return nil
}

// Fill overwrites every buffered Line with a single segment of value v
// spanning the full axis-0 extent.
func (v *Volume[C, P]) Fill(value P) {
	if v.buffer == nil {
		return
	}
	nx := C(v.axis0Extent())
	for i := 0; i < v.buffer.Len(); i++ {
		*v.buffer.AtLinear(i) = Line[C, P]{{Count: nx, Value: value}}
	}
}

// Clean canonicalises every buffered Line. Independent per line, so it
// is dispatched across rleimage's internal worker pool; idempotent.
func (v *Volume[C, P]) Clean() {
	if v.buffer == nil || v.buffer.Len() == 0 {
		return
	}
	pool := parallel.NewWorkerPool(0)
	defer pool.Close()

	work := make([]func(), v.buffer.Len())
	for i := 0; i < v.buffer.Len(); i++ {
		i := i
		work[i] = func() {
			line := v.buffer.AtLinear(i)
			*line = line.Clean()
		}
	}
	pool.ExecuteAll(work)
	Logger().Debug("rleimage: cleaned volume", slog.Int("cells", v.buffer.Len()))
}

// toGridIndex drops axis 0 and rebases the remaining axes onto the
// buffered region's origin, producing a 0-based index into the
// internal grid.
//
// Grounded on itkRLEImage.hxx's static truncateIndex, generalized here
// to also rebase onto the buffered origin since the internal grid (per
// internal/grid.Grid) is always 0-based.
func (v *Volume[C, P]) toGridIndex(index []int) []int {
	gridIdx := make([]int, len(index)-1)
	for i := 1; i < len(index); i++ {
		gridIdx[i-1] = index[i] - v.buffered.IndexOf(i)
	}
	return gridIdx
}

// lineAt returns a pointer to the Line at the buffered grid position
// addressed by the (N-1)-D index truncated from a full N-D index.
func (v *Volume[C, P]) lineAt(gridIndex []int) (*Line[C, P], error) {
	return v.buffer.TryAt(gridIndex)
}

// GridRegion returns the buffered region's (N-1)-D grid extent, in the
// internal grid's own 0-based coordinate frame. Used by package roi to
// enumerate and address grid cells without reaching into Volume's
// unexported fields.
func (v *Volume[C, P]) GridRegion() Region {
	size := v.buffered.Slice(0).Size
	return Region{Index: make([]int, len(size)), Size: size}
}

// LineAt returns a copy of the Line at the given 0-based grid index
// (in GridRegion's coordinate frame).
func (v *Volume[C, P]) LineAt(gridIndex []int) (Line[C, P], error) {
	l, err := v.lineAt(gridIndex)
	if err != nil {
		return nil, err
	}
	return *l, nil
}

// SetLineAt overwrites the Line at the given 0-based grid index.
func (v *Volume[C, P]) SetLineAt(gridIndex []int, line Line[C, P]) error {
	l, err := v.lineAt(gridIndex)
	if err != nil {
		return err
	}
	*l = line
	return nil
}

// SetPixel sets a single pixel's value. This is the O(k) convenience
// path in the line's segment count; prefer a Cursor for sequential
// writes.
func (v *Volume[C, P]) SetPixel(index []int, value P) error {
	if v.buffered.SizeOf(0) != v.largest.SizeOf(0) {
		return ErrGeometryViolation
	}
	line, err := v.lineAt(v.toGridIndex(index))
	if err != nil {
		return err
	}
	bri0 := v.buffered.IndexOf(0)
	pos, err := seek(*line, C(index[0]-bri0))
	if err != nil {
		Logger().Warn("rleimage: out of line walk in SetPixel", slog.Any("index", index))
		return err
	}
	newLine, delta := Edit(*line, &pos, value, v.cleanup)
	*line = newLine
	if delta != 0 {
		Logger().Debug("rleimage: line edit", slog.Any("index", index), slog.Int("delta", delta))
	}
	return nil
}

// GetPixel returns a single pixel's value.
func (v *Volume[C, P]) GetPixel(index []int) (P, error) {
	var zero P
	if v.buffered.SizeOf(0) != v.largest.SizeOf(0) {
		return zero, ErrGeometryViolation
	}
	line, err := v.lineAt(v.toGridIndex(index))
	if err != nil {
		return zero, err
	}
	bri0 := v.buffered.IndexOf(0)
	pos, err := seek(*line, C(index[0]-bri0))
	if err != nil {
		Logger().Warn("rleimage: out of line walk in GetPixel", slog.Any("index", index))
		return zero, err
	}
	return (*line)[pos.Index].Value, nil
}

// maxUnsigned returns the maximum representable value of an unsigned
// integer type C, used by Allocate's CounterOverflow precondition
// check.
func maxUnsigned[C constraints.Unsigned]() uint64 {
	var x C
	x--
	// x is now all-ones; its value as uint64 is the max for every
	// unsigned type, uint64/uintptr included, so the zero check below
	// never fires.
	if uint64(x) == 0 {
		return math.MaxUint64
	}
	return uint64(x)
}

package rleimage

import (
	"log/slog"

	"golang.org/x/exp/constraints"
)

// cursorState holds the fields shared by every cursor shape: the
// owning volume, the (N-1)-D grid position, the region's axis-0 bounds
// relative to the buffered region's own axis-0 origin, a cached
// pointer to the current line, the current axis-0 offset (same
// frame), and the line-local (segment index, remainder) pair.
//
// Grounded on the cursor base classes threaded through every RLE
// iterator in itkRLEImage.h (RegionCursor/ScanlineCursor/
// WithIndexCursor all share this same bundle of state).
type cursorState[C constraints.Unsigned, P comparable] struct {
	vol *Volume[C, P]

	// gridRegion is the (N-1)-D sub-grid this cursor walks, in the
	// internal grid's own 0-based coordinate frame.
	gridRegion Region
	gridIndex  []int

	axis0Begin C
	axis0End   C

	line   *Line[C, P]
	offset C
	pos    LinePos[C]

	atEnd bool
}

// newCursorState builds the shared state for a cursor over region r
// (an N-D region, typically the volume's requested region), seeked to
// the region's first pixel. r is given in the volume's global index
// frame (the same frame SetPixel takes); its non-axis-0 index
// components are rebased onto the internal grid here via
// Volume.toGridIndex.
func newCursorState[C constraints.Unsigned, P comparable](vol *Volume[C, P], r Region) (*cursorState[C, P], error) {
	gridRegion := Region{
		Index: vol.toGridIndex(r.Index),
		Size:  r.Slice(0).Size,
	}
	cs := &cursorState[C, P]{
		vol:        vol,
		gridRegion: gridRegion,
		gridIndex:  append([]int(nil), gridRegion.Index...),
		axis0Begin: C(r.IndexOf(0) - vol.buffered.IndexOf(0)),
		axis0End:   C(r.IndexOf(0) - vol.buffered.IndexOf(0) + r.SizeOf(0)),
	}
	if r.SizeOf(0) == 0 || regionEmpty(gridRegion) {
		cs.atEnd = true
		return cs, nil
	}
	if err := cs.seekLineBegin(); err != nil {
		return nil, err
	}
	return cs, nil
}

// regionEmpty reports whether r has a zero extent along any axis.
func regionEmpty(r Region) bool {
	for _, s := range r.Size {
		if s <= 0 {
			return true
		}
	}
	return false
}

// seekLineBegin loads the line at the cursor's current grid index and
// positions (m, r) at axis0Begin.
func (cs *cursorState[C, P]) seekLineBegin() error {
	line, err := cs.vol.lineAt(cs.gridIndex)
	if err != nil {
		return err
	}
	cs.line = line
	cs.offset = cs.axis0Begin
	pos, err := seek(*cs.line, cs.offset)
	if err != nil {
		Logger().Warn("rleimage: out of line walk in cursor seekLineBegin", slog.Any("gridIndex", cs.gridIndex))
		return err
	}
	cs.pos = pos
	return nil
}

// seekLineEnd positions (m, r) at the last pixel of the region's
// axis-0 span on the current line.
func (cs *cursorState[C, P]) seekLineEnd() error {
	line, err := cs.vol.lineAt(cs.gridIndex)
	if err != nil {
		return err
	}
	cs.line = line
	cs.offset = cs.axis0End - 1
	pos, err := seek(*cs.line, cs.offset)
	if err != nil {
		Logger().Warn("rleimage: out of line walk in cursor seekLineEnd", slog.Any("gridIndex", cs.gridIndex))
		return err
	}
	cs.pos = pos
	return nil
}

// advanceGridIndex steps the (N-1)-D grid index row-major, axis 1 (the
// first non-encoded axis) varying fastest. Returns false once the
// index has advanced past gridRegion's last cell.
func advanceGridIndex(r Region, idx []int) bool {
	for i := 0; i < len(idx); i++ {
		idx[i]++
		if idx[i] < r.Index[i]+r.Size[i] {
			return true
		}
		idx[i] = r.Index[i]
	}
	return false
}

// retreatGridIndex is advanceGridIndex's mirror image for reverse
// traversal.
func retreatGridIndex(r Region, idx []int) bool {
	for i := 0; i < len(idx); i++ {
		idx[i]--
		if idx[i] >= r.Index[i] {
			return true
		}
		idx[i] = r.Index[i] + r.Size[i] - 1
	}
	return false
}

// stepForward implements the forward step algorithm: advance within
// the current segment, cross a segment boundary, or cross a line
// boundary and advance the grid cursor.
func (cs *cursorState[C, P]) stepForward() error {
	cs.offset++
	if cs.offset >= cs.axis0End {
		if !advanceGridIndex(cs.gridRegion, cs.gridIndex) {
			cs.atEnd = true
			return nil
		}
		return cs.seekLineBegin()
	}
	if cs.pos.Remainder > 1 {
		cs.pos.Remainder--
		return nil
	}
	cs.pos.Index++
	cs.pos.Remainder = (*cs.line)[cs.pos.Index].Count
	return nil
}

// stepBackward is stepForward's mirror image.
func (cs *cursorState[C, P]) stepBackward() error {
	if cs.offset <= cs.axis0Begin {
		if !retreatGridIndex(cs.gridRegion, cs.gridIndex) {
			cs.atEnd = true
			return nil
		}
		cs.offset = cs.axis0End
		return cs.seekLineEnd()
	}
	cs.offset--
	if cs.pos.Remainder < (*cs.line)[cs.pos.Index].Count {
		cs.pos.Remainder++
		return nil
	}
	cs.pos.Index--
	cs.pos.Remainder = 1
	return nil
}

// value returns the pixel value at the cursor's current position.
func (cs *cursorState[C, P]) value() P {
	return (*cs.line)[cs.pos.Index].Value
}

// set delegates to the Line Edit primitive on the current line.
// Invalidates every other cursor on this line: at most one writer may
// ever touch a given line, and a write invalidates any other cursor
// positioned on that same line.
func (cs *cursorState[C, P]) set(v P) int {
	newLine, delta := Edit(*cs.line, &cs.pos, v, cs.vol.cleanup)
	*cs.line = newLine
	if delta != 0 {
		Logger().Debug("rleimage: line edit", slog.Any("gridIndex", cs.gridIndex), slog.Int("delta", delta))
	}
	return delta
}

// RegionCursor walks the row-major pixel sequence of a buffered
// sub-region, forward only, wrapping across the axis-0 extent at each
// line boundary.
//
// Grounded on itkRLEImage.h's RegionCursor / ConstRegionCursor.
type RegionCursor[C constraints.Unsigned, P comparable] struct {
	cs *cursorState[C, P]
}

// NewRegionCursor returns a cursor over r, positioned at r's first
// pixel. r must lie within vol's buffered region.
func NewRegionCursor[C constraints.Unsigned, P comparable](vol *Volume[C, P], r Region) (*RegionCursor[C, P], error) {
	cs, err := newCursorState(vol, r)
	if err != nil {
		return nil, err
	}
	return &RegionCursor[C, P]{cs: cs}, nil
}

// AtEnd reports whether the cursor has advanced past the region's
// last pixel.
func (rc *RegionCursor[C, P]) AtEnd() bool { return rc.cs.atEnd }

// Value returns the pixel value at the cursor's current position.
// Value must not be called when AtEnd.
func (rc *RegionCursor[C, P]) Value() P { return rc.cs.value() }

// Next advances the cursor by one pixel, wrapping to the next line
// when the current line's region slice is exhausted.
func (rc *RegionCursor[C, P]) Next() error { return rc.cs.stepForward() }

// Set overwrites the pixel at the cursor's current position via the
// Line Edit primitive, keeping the cursor positioned on the same
// logical pixel, and returns the signed change in the line's segment
// count. Invalidates every other cursor on the same line.
func (rc *RegionCursor[C, P]) Set(v P) int { return rc.cs.set(v) }

// GridIndex returns a copy of the cursor's current (N-1)-D grid
// position, in the internal grid's own coordinate frame.
func (rc *RegionCursor[C, P]) GridIndex() []int {
	return append([]int(nil), rc.cs.gridIndex...)
}

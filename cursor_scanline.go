package rleimage

import "golang.org/x/exp/constraints"

// ScanlineCursor walks a single scanline's pixel sequence, or a
// row-major sequence of scanlines, with explicit line-boundary
// queries. Single-step operators assume the caller will not step past
// the current line's end; stepping past it is undefined.
//
// Grounded on itkRLEImage.h's ScanlineCursor / ConstScanlineCursor.
type ScanlineCursor[C constraints.Unsigned, P comparable] struct {
	cs *cursorState[C, P]
}

// NewScanlineCursor returns a cursor over r, positioned at the first
// pixel of r's first scanline.
func NewScanlineCursor[C constraints.Unsigned, P comparable](vol *Volume[C, P], r Region) (*ScanlineCursor[C, P], error) {
	cs, err := newCursorState(vol, r)
	if err != nil {
		return nil, err
	}
	return &ScanlineCursor[C, P]{cs: cs}, nil
}

// AtEnd reports whether the cursor has advanced past the region's
// last scanline.
func (sc *ScanlineCursor[C, P]) AtEnd() bool { return sc.cs.atEnd }

// AtEndOfLine reports whether the cursor sits at the last pixel of the
// current line's region slice.
func (sc *ScanlineCursor[C, P]) AtEndOfLine() bool {
	return sc.cs.offset+1 >= sc.cs.axis0End
}

// Value returns the pixel value at the cursor's current position.
func (sc *ScanlineCursor[C, P]) Value() P { return sc.cs.value() }

// Next advances one pixel within the current line. The caller must not
// call Next at AtEndOfLine; use NextLine instead.
func (sc *ScanlineCursor[C, P]) Next() {
	cs := sc.cs
	cs.offset++
	if cs.pos.Remainder > 1 {
		cs.pos.Remainder--
		return
	}
	cs.pos.Index++
	cs.pos.Remainder = (*cs.line)[cs.pos.Index].Count
}

// NextLine advances the grid cursor to the next scanline and
// repositions at its region-begin pixel.
func (sc *ScanlineCursor[C, P]) NextLine() error {
	cs := sc.cs
	if !advanceGridIndex(cs.gridRegion, cs.gridIndex) {
		cs.atEnd = true
		return nil
	}
	return cs.seekLineBegin()
}

// GoToBeginOfLine repositions the cursor at the current line's
// region-begin pixel.
func (sc *ScanlineCursor[C, P]) GoToBeginOfLine() error {
	return sc.cs.seekLineBegin()
}

// GoToEndOfLine repositions the cursor at the current line's
// region-end pixel (the last pixel included in the region's axis-0
// slice).
func (sc *ScanlineCursor[C, P]) GoToEndOfLine() error {
	return sc.cs.seekLineEnd()
}

// Set overwrites the pixel at the cursor's current position, keeping
// the cursor positioned on the same logical pixel, and returns the
// signed change in the line's segment count. Invalidates every other
// cursor on the same line.
func (sc *ScanlineCursor[C, P]) Set(v P) int { return sc.cs.set(v) }

// GridIndex returns a copy of the cursor's current (N-1)-D grid
// position.
func (sc *ScanlineCursor[C, P]) GridIndex() []int {
	return append([]int(nil), sc.cs.gridIndex...)
}

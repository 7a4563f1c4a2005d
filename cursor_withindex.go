package rleimage

import "golang.org/x/exp/constraints"

// WithIndexCursor additionally exposes the current N-D index and
// supports reverse traversal. Reverse traversal supports Set the same
// as forward traversal: the design notes' open question ("does a
// reverse write cursor exist?") is resolved here in favor of uniform
// support, since nothing about Line Edit depends on traversal
// direction.
//
// Grounded on itkRLEImage.h's ImageScanlineConstIterator /
// ImageScanlineIterator's WithIndex variants.
type WithIndexCursor[C constraints.Unsigned, P comparable] struct {
	cs *cursorState[C, P]
	r  Region
}

// NewWithIndexCursor returns a cursor over r, positioned at r's first
// pixel with forward traversal.
func NewWithIndexCursor[C constraints.Unsigned, P comparable](vol *Volume[C, P], r Region) (*WithIndexCursor[C, P], error) {
	cs, err := newCursorState(vol, r)
	if err != nil {
		return nil, err
	}
	return &WithIndexCursor[C, P]{cs: cs, r: r}, nil
}

// GoToReverseBegin repositions the cursor at r's last pixel, the
// starting point for backward traversal.
func (wc *WithIndexCursor[C, P]) GoToReverseBegin() error {
	cs := wc.cs
	cs.atEnd = false
	last := make([]int, len(cs.gridRegion.Size))
	for i := range last {
		last[i] = cs.gridRegion.Index[i] + cs.gridRegion.Size[i] - 1
	}
	cs.gridIndex = last
	return cs.seekLineEnd()
}

// AtEnd reports whether forward traversal has advanced past r's last
// pixel.
func (wc *WithIndexCursor[C, P]) AtEnd() bool { return wc.cs.atEnd }

// AtReverseEnd reports whether backward traversal has retreated past
// r's first pixel.
func (wc *WithIndexCursor[C, P]) AtReverseEnd() bool { return wc.cs.atEnd }

// Value returns the pixel value at the cursor's current position.
func (wc *WithIndexCursor[C, P]) Value() P { return wc.cs.value() }

// Next advances the cursor forward by one pixel.
func (wc *WithIndexCursor[C, P]) Next() error { return wc.cs.stepForward() }

// Previous retreats the cursor backward by one pixel.
func (wc *WithIndexCursor[C, P]) Previous() error { return wc.cs.stepBackward() }

// Set overwrites the pixel at the cursor's current position, keeping
// the cursor positioned on the same logical pixel, and returns the
// signed change in the line's segment count. Invalidates every other
// cursor on the same line.
func (wc *WithIndexCursor[C, P]) Set(v P) int { return wc.cs.set(v) }

// Index returns the cursor's current full N-D index: axis 0 rebuilt
// from the line-local offset, the remaining axes from the grid index,
// both rebased back into the volume's global index frame.
func (wc *WithIndexCursor[C, P]) Index() []int {
	cs := wc.cs
	n := len(cs.gridIndex) + 1
	idx := make([]int, n)
	idx[0] = int(cs.offset) + wc.cs.vol.buffered.IndexOf(0)
	for i, g := range cs.gridIndex {
		idx[i+1] = g + wc.cs.vol.buffered.IndexOf(i + 1)
	}
	return idx
}

// GridIndex returns a copy of the cursor's current (N-1)-D grid
// position.
func (wc *WithIndexCursor[C, P]) GridIndex() []int {
	return append([]int(nil), wc.cs.gridIndex...)
}

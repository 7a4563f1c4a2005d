package rleimage

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Segment is one (count, value) run within a Line: count consecutive
// pixels along axis 0 all holding value. Count is always >= 1.
//
// Grounded on itkRLEImage.h's RLSegment = std::pair<CounterType, PixelType>.
type Segment[C constraints.Unsigned, P comparable] struct {
	Count C
	Value P
}

// Line is a canonical (or, with cleanup disabled, possibly
// non-canonical) run-length encoded scanline: an ordered sequence of
// Segments whose counts sum to the line's logical length.
//
// Grounded on itkRLEImage.h's RLLine = std::vector<RLSegment>.
type Line[C constraints.Unsigned, P comparable] []Segment[C, P]

// Len returns the line's logical pixel length, the sum of all segment
// counts.
func (l Line[C, P]) Len() C {
	var total C
	for _, s := range l {
		total += s.Count
	}
	return total
}

// IsCanonical reports whether no two adjacent segments share a value.
func (l Line[C, P]) IsCanonical() bool {
	for i := 1; i < len(l); i++ {
		if l[i].Value == l[i-1].Value {
			return false
		}
	}
	return true
}

// Expand materializes the line's dense pixel sequence. Used by tests
// exercising round-trip properties; not on any hot path.
func (l Line[C, P]) Expand() []P {
	out := make([]P, 0, l.Len())
	for _, s := range l {
		for i := C(0); i < s.Count; i++ {
			out = append(out, s.Value)
		}
	}
	return out
}

// Clean returns the canonical form of l: adjacent same-value segments
// merged into one. Clean is idempotent and does
// not modify l.
//
// Grounded on itkRLEImage.hxx's CleanUpLine, which accumulates into a
// fresh output line with pre-reserved capacity rather than compacting
// in place, since merges can only shrink the segment count.
func (l Line[C, P]) Clean() Line[C, P] {
	if len(l) == 0 {
		return nil
	}
	out := make(Line[C, P], 0, len(l))
	out = append(out, l[0])
	for _, s := range l[1:] {
		last := &out[len(out)-1]
		if s.Value == last.Value {
			last.Count += s.Count
		} else {
			out = append(out, s)
		}
	}
	return out
}

// LinePos is a cursor position into a Line: Index names the segment
// the cursor points into, and Remainder is the number of pixels from
// the cursor's current position to the end of that segment (inclusive
// of the current pixel), i.e. the pixel sits at
// line[Index].Count - Remainder within the segment.
//
// Grounded on the (m_RealIndex, segmentRemainder) pair threaded through
// itkRLEImage.hxx's SetPixel and every RLE iterator class.
type LinePos[C constraints.Unsigned] struct {
	Index     int
	Remainder C
}

// offsetIn computes a LinePos's absolute pixel offset within line:
// Σ_{j<Index} line[j].Count + (line[Index].Count - Remainder). A free
// function, not a LinePos method, because LinePos is parameterized
// only over C while computing an offset also needs P.
func offsetIn[C constraints.Unsigned, P comparable](line Line[C, P], pos LinePos[C]) C {
	var off C
	for i := 0; i < pos.Index; i++ {
		off += line[i].Count
	}
	return off + line[pos.Index].Count - pos.Remainder
}

// seek walks line from the beginning to find the LinePos addressing
// axis-0 coordinate x (0-based, relative to the line's own start).
// Returns ErrOutOfLineWalk if x is not covered by the line: the line's
// segment counts don't sum to the buffered axis-0 extent.
//
// Grounded on the walk loop duplicated across itkRLEImage.hxx's
// SetPixel(index, value) and GetPixel(index).
func seek[C constraints.Unsigned, P comparable](line Line[C, P], x C) (LinePos[C], error) {
	var t C
	for i, s := range line {
		t += s.Count
		if t > x {
			return LinePos[C]{Index: i, Remainder: t - x}, nil
		}
	}
	return LinePos[C]{}, ErrOutOfLineWalk
}

// Edit is the Line Edit primitive: it replaces the single
// pixel addressed by pos with value, restores canonical form locally
// when cleanup is enabled, updates pos in place to keep addressing the
// same logical pixel, and returns the signed change in the line's
// segment count (len(line), not the pixel length Len reports).
//
// Edit takes and returns the line by value (a Go slice header) because
// insertion/deletion may reallocate the backing array; callers must
// store the returned Line back into the grid cell. pos is updated
// in place via the pointer, matching the reference-parameter style of
// itkRLEImage.hxx's SetPixel(RLLine&, IndexValueType&, SizeValueType&, const TPixel&),
// the source this function is a direct, case-for-case port of, branch
// order included.
func Edit[C constraints.Unsigned, P comparable](line Line[C, P], pos *LinePos[C], value P, cleanup bool) (Line[C, P], int) {
	m := pos.Index
	r := pos.Remainder

	// Case 0: already the right value.
	if line[m].Value == value {
		return line, 0
	}

	// Cases 1-4: single-pixel segment.
	if line[m].Count == 1 {
		line[m].Value = value
		if cleanup {
			mergeLeft := m > 0 && line[m-1].Value == value
			mergeRight := m < len(line)-1 && line[m+1].Value == value

			if mergeLeft && mergeRight {
				// Case 1: merge three segments into one.
				line[m-1].Count += 1 + line[m+1].Count
				pos.Remainder = r + line[m+1].Count
				line = slices.Delete(line, m, m+2)
				pos.Index = m - 1
				return line, -2
			}
			if mergeLeft {
				// Case 2: merge into left neighbour.
				line[m-1].Count++
				line = slices.Delete(line, m, m+1)
				pos.Index = m - 1
				pos.Remainder = 1
				return line, -1
			}
			if mergeRight {
				// Case 3: merge into right neighbour.
				line[m+1].Count++
				pos.Remainder = line[m+1].Count
				line = slices.Delete(line, m, m+1)
				// pos.Index unchanged: the erase shifts the merged
				// segment (formerly m+1) down into slot m.
				return line, -1
			}
		}
		// Case 4: cleanup off, or no mergeable neighbour.
		return line, 0
	}

	// Case 5: rightmost pixel of the segment, right neighbour matches.
	if r == 1 && m < len(line)-1 && line[m+1].Value == value {
		line[m].Count--
		line[m+1].Count++
		pos.Index = m + 1
		pos.Remainder = line[m+1].Count
		return line, 0
	}

	// Case 6: leftmost pixel of the segment, left neighbour matches.
	if r == line[m].Count && m > 0 && line[m-1].Value == value {
		line[m].Count--
		line[m-1].Count++
		pos.Index = m - 1
		pos.Remainder = 1
		return line, 0
	}

	// Case 7: rightmost pixel, no merge - insert a new segment after.
	if r == 1 {
		line[m].Count--
		line = slices.Insert(line, m+1, Segment[C, P]{Count: 1, Value: value})
		pos.Index = m + 1
		pos.Remainder = 1
		return line, 1
	}

	// Case 8: leftmost pixel, no merge - insert a new segment before.
	if r == line[m].Count {
		line[m].Count--
		line = slices.Insert(line, m, Segment[C, P]{Count: 1, Value: value})
		pos.Remainder = 1
		return line, 1
	}

	// Case 9: interior pixel - split into [prefix, (1, value), suffix].
	orig := line[m]
	prefixCount := orig.Count - r
	suffixCount := r - 1
	line[m].Count = prefixCount
	line = slices.Insert(line, m+1, Segment[C, P]{Count: 1, Value: value}, Segment[C, P]{Count: suffixCount, Value: orig.Value})
	pos.Index = m + 1
	pos.Remainder = 1
	return line, 2
}

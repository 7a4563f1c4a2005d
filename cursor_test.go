package rleimage

import "testing"

func newCursorTestVolume(t *testing.T) *Volume[uint16, uint8] {
	t.Helper()
	vol := New[uint16, uint8](NewRegion(4, 3))
	if err := vol.Allocate(); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if err := vol.SetPixel([]int{x, y}, uint8(y*4+x)); err != nil {
				t.Fatalf("SetPixel(%d,%d): %v", x, y, err)
			}
		}
	}
	return vol
}

func TestRegionCursorForwardTraversal(t *testing.T) {
	vol := newCursorTestVolume(t)
	cur, err := NewRegionCursor(vol, vol.LargestPossibleRegion())
	if err != nil {
		t.Fatalf("NewRegionCursor: %v", err)
	}
	var got []uint8
	for !cur.AtEnd() {
		got = append(got, cur.Value())
		if err := cur.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if len(got) != 12 {
		t.Fatalf("visited %d pixels, want 12", len(got))
	}
	for i, v := range got {
		if int(v) != i {
			t.Errorf("pixel %d = %d, want %d", i, v, i)
		}
	}
}

func TestRegionCursorPartialRegionWraps(t *testing.T) {
	vol := newCursorTestVolume(t)
	r := Region{Index: []int{1, 0}, Size: []int{2, 3}}
	cur, err := NewRegionCursor(vol, r)
	if err != nil {
		t.Fatalf("NewRegionCursor: %v", err)
	}
	var got []uint8
	for !cur.AtEnd() {
		got = append(got, cur.Value())
		if err := cur.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	want := []uint8{1, 2, 5, 6, 9, 10}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestScanlineCursorLineBoundaries(t *testing.T) {
	vol := newCursorTestVolume(t)
	cur, err := NewScanlineCursor(vol, vol.LargestPossibleRegion())
	if err != nil {
		t.Fatalf("NewScanlineCursor: %v", err)
	}
	lines := 0
	for !cur.AtEnd() {
		for !cur.AtEndOfLine() {
			cur.Next()
		}
		lines++
		if err := cur.NextLine(); err != nil {
			t.Fatalf("NextLine: %v", err)
		}
	}
	if lines != 3 {
		t.Errorf("visited %d lines, want 3", lines)
	}
}

func TestScanlineCursorGoToBeginAndEndOfLine(t *testing.T) {
	vol := newCursorTestVolume(t)
	cur, err := NewScanlineCursor(vol, vol.LargestPossibleRegion())
	if err != nil {
		t.Fatalf("NewScanlineCursor: %v", err)
	}
	if err := cur.GoToEndOfLine(); err != nil {
		t.Fatalf("GoToEndOfLine: %v", err)
	}
	if cur.Value() != 3 {
		t.Errorf("value at end of line 0 = %d, want 3", cur.Value())
	}
	if err := cur.GoToBeginOfLine(); err != nil {
		t.Fatalf("GoToBeginOfLine: %v", err)
	}
	if cur.Value() != 0 {
		t.Errorf("value at begin of line 0 = %d, want 0", cur.Value())
	}
}

func TestWithIndexCursorReverseTraversal(t *testing.T) {
	vol := newCursorTestVolume(t)
	cur, err := NewWithIndexCursor(vol, vol.LargestPossibleRegion())
	if err != nil {
		t.Fatalf("NewWithIndexCursor: %v", err)
	}
	if err := cur.GoToReverseBegin(); err != nil {
		t.Fatalf("GoToReverseBegin: %v", err)
	}
	var got []uint8
	for !cur.AtReverseEnd() {
		got = append(got, cur.Value())
		if err := cur.Previous(); err != nil {
			t.Fatalf("Previous: %v", err)
		}
	}
	if len(got) != 12 {
		t.Fatalf("visited %d pixels in reverse, want 12", len(got))
	}
	for i, v := range got {
		want := 11 - i
		if int(v) != want {
			t.Errorf("reverse pixel %d = %d, want %d", i, v, want)
		}
	}
}

func TestWithIndexCursorIndex(t *testing.T) {
	vol := newCursorTestVolume(t)
	cur, err := NewWithIndexCursor(vol, vol.LargestPossibleRegion())
	if err != nil {
		t.Fatalf("NewWithIndexCursor: %v", err)
	}
	if err := cur.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := cur.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	idx := cur.Index()
	want := []int{2, 0}
	if idx[0] != want[0] || idx[1] != want[1] {
		t.Errorf("Index() = %v, want %v", idx, want)
	}
}

func TestCursorSetPreservesPositionAndReturnsDelta(t *testing.T) {
	vol := newCursorTestVolume(t)
	vol.Fill(0)
	cur, err := NewScanlineCursor(vol, vol.LargestPossibleRegion())
	if err != nil {
		t.Fatalf("NewScanlineCursor: %v", err)
	}
	cur.Next()
	cur.Next()
	if delta := cur.Set(9); delta != 2 {
		t.Errorf("Set delta = %d, want 2", delta)
	}
	if cur.Value() != 9 {
		t.Errorf("Value after Set = %d, want 9", cur.Value())
	}
	if delta := cur.Set(0); delta != -2 {
		t.Errorf("Set delta = %d, want -2", delta)
	}
}

func TestWithIndexCursorReverseWrite(t *testing.T) {
	vol := newCursorTestVolume(t)
	cur, err := NewWithIndexCursor(vol, vol.LargestPossibleRegion())
	if err != nil {
		t.Fatalf("NewWithIndexCursor: %v", err)
	}
	if err := cur.GoToReverseBegin(); err != nil {
		t.Fatalf("GoToReverseBegin: %v", err)
	}
	cur.Set(99)
	if cur.Value() != 99 {
		t.Errorf("Value after reverse Set = %d, want 99", cur.Value())
	}
}

package rleimage

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"unsafe"

	"golang.org/x/image/draw"
	"golang.org/x/text/message"
)

// DumpReport is a textual self-description of a Volume's footprint,
// the Go analog of itkRLEImage's PrintSelf override.
type DumpReport struct {
	SegmentCount     int
	GridCells        int
	CompressedBytes  int64
	DenseBytes       int64
	CompressionRatio float64
	OnTheFlyCleanup  bool
}

// Dump reports the volume's total segment count across buffered
// lines, its compressed footprint (segments*sizeof(Segment) +
// gridCells*sizeof(Line)), the footprint of an equivalent dense image
// (pixels*sizeof(P)), their ratio, and the cleanup flag.
func (v *Volume[C, P]) Dump() DumpReport {
	var report DumpReport
	if v.buffer == nil {
		report.OnTheFlyCleanup = v.cleanup
		return report
	}

	var segment Segment[C, P]
	var line Line[C, P]
	var pixel P

	cells := v.buffer.Len()
	segCount := 0
	for i := 0; i < cells; i++ {
		segCount += len(*v.buffer.AtLinear(i))
	}

	compressed := int64(segCount)*int64(unsafe.Sizeof(segment)) + int64(cells)*int64(unsafe.Sizeof(line))
	dense := int64(v.axis0Extent()) * int64(cells) * int64(unsafe.Sizeof(pixel))

	ratio := 0.0
	if dense > 0 {
		ratio = float64(compressed) / float64(dense)
	}

	report.SegmentCount = segCount
	report.GridCells = cells
	report.CompressedBytes = compressed
	report.DenseBytes = dense
	report.CompressionRatio = ratio
	report.OnTheFlyCleanup = v.cleanup
	return report
}

// String formats r with locale-aware thousands separators, matching
// the style of a human-read diagnostics dump rather than a machine
// format.
func (r DumpReport) String() string {
	p := message.NewPrinter(message.MatchLanguage("en"))
	return p.Sprintf(
		"rleimage volume: %d segments across %d lines, %d bytes compressed vs %d bytes dense (ratio %.4f), on-the-fly cleanup=%t",
		r.SegmentCount, r.GridCells, r.CompressedBytes, r.DenseBytes, r.CompressionRatio, r.OnTheFlyCleanup,
	)
}

// RenderDebugPNG renders a single 2-D slice of the volume (axes axisX
// and axisY; every other axis pinned at fixedIndex's value) to a PNG,
// colorized via palette and downscaled to fit within maxWidth x
// maxHeight. Intended for quick visual sanity-checks of label images
// during debugging, not as a production export path.
func (v *Volume[C, P]) RenderDebugPNG(w io.Writer, axisX, axisY int, fixedIndex []int, maxWidth, maxHeight int, palette func(P) color.Color) error {
	width := v.largest.SizeOf(axisX)
	height := v.largest.SizeOf(axisY)

	full := image.NewRGBA(image.Rect(0, 0, width, height))
	index := make([]int, v.Dimension())
	copy(index, fixedIndex)
	for y := 0; y < height; y++ {
		index[axisY] = y + v.largest.IndexOf(axisY)
		for x := 0; x < width; x++ {
			index[axisX] = x + v.largest.IndexOf(axisX)
			value, err := v.GetPixel(index)
			if err != nil {
				return err
			}
			full.Set(x, y, palette(value))
		}
	}

	dst := full
	if maxWidth > 0 && maxHeight > 0 && (width > maxWidth || height > maxHeight) {
		scale := float64(maxWidth) / float64(width)
		if alt := float64(maxHeight) / float64(height); alt < scale {
			scale = alt
		}
		dw := int(float64(width) * scale)
		dh := int(float64(height) * scale)
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		thumb := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(thumb, thumb.Bounds(), full, full.Bounds(), draw.Over, nil)
		dst = thumb
	}

	return png.Encode(w, dst)
}

package bitmap

import (
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// RasterOperator is the raster operation code. Its four low bits are the truth table
// of the operation, indexed by 'src<<1 | dst'.
type RasterOperator uint8

// Raster operators.
const (
	PixClr             RasterOperator = 0x0
	PixNotSrcAndNotDst RasterOperator = 0x1
	PixNotSrcAndDst    RasterOperator = 0x2
	PixNotSrc          RasterOperator = 0x3
	PixSrcAndNotDst    RasterOperator = 0x4
	PixNotDst          RasterOperator = 0x5
	PixSrcXorDst       RasterOperator = 0x6
	PixSrcAndDst       RasterOperator = 0x8
	PixDst             RasterOperator = 0xa
	PixNotSrcOrDst     RasterOperator = 0xb
	PixSrc             RasterOperator = 0xc
	PixSrcOrNotDst     RasterOperator = 0xd
	PixSrcOrDst        RasterOperator = 0xe
	PixSet             RasterOperator = 0xf

	// PixPaint paints the source over the destination.
	PixPaint = PixSrcOrDst
	// PixMask masks the destination with the source.
	PixMask = PixSrcAndDst
	// PixSubtract clears the destination pixels set in the source.
	PixSubtract = PixNotSrcAndDst
)

func (op RasterOperator) apply(src, dst bool) bool {
	var idx uint
	if src {
		idx |= 2
	}
	if dst {
		idx |= 1
	}
	return (op>>idx)&1 != 0
}

// usesSource checks if the result depends on the source pixels.
func (op RasterOperator) usesSource() bool {
	return (op>>2)&3 != op&3
}

// RasterOperation applies the 'op' operation on the destination 'd' rectangle at 'dx', 'dy'
// of size 'dw' x 'dh', using the source 's' pixels starting at 'sx', 'sy'.
// Both rectangles are clipped to their bitmaps; the source may be nil for the
// operators that don't use it.
func RasterOperation(d *Bitmap, dx, dy, dw, dh int, op RasterOperator, s *Bitmap, sx, sy int) error {
	const processName = "RasterOperation"
	if d == nil {
		return errors.Error(processName, "destination bitmap 'd' not defined")
	}
	if op&0xf != op {
		return errors.Errorf(processName, "invalid raster operator: %#x", uint8(op))
	}
	if op == PixDst {
		return nil
	}
	if !op.usesSource() {
		rasterOpUnary(d, dx, dy, dw, dh, op)
		return nil
	}
	if s == nil {
		return errors.Errorf(processName, "source bitmap not defined for operator: %#x", uint8(op))
	}
	if s == d {
		s = s.Copy()
	}

	// clip horizontally
	if dx < 0 {
		sx -= dx
		dw += dx
		dx = 0
	}
	if sx < 0 {
		dx -= sx
		dw += sx
		sx = 0
	}
	if over := dx + dw - d.Width; over > 0 {
		dw -= over
	}
	if over := sx + dw - s.Width; over > 0 {
		dw -= over
	}
	// clip vertically
	if dy < 0 {
		sy -= dy
		dh += dy
		dy = 0
	}
	if sy < 0 {
		dy -= sy
		dh += sy
		sy = 0
	}
	if over := dy + dh - d.Height; over > 0 {
		dh -= over
	}
	if over := sy + dh - s.Height; over > 0 {
		dh -= over
	}
	if dw <= 0 || dh <= 0 {
		return nil
	}

	for j := 0; j < dh; j++ {
		for i := 0; i < dw; i++ {
			d.setPixel(dx+i, dy+j, op.apply(s.pixel(sx+i, sy+j), d.pixel(dx+i, dy+j)))
		}
	}
	return nil
}

func rasterOpUnary(d *Bitmap, dx, dy, dw, dh int, op RasterOperator) {
	if dx < 0 {
		dw += dx
		dx = 0
	}
	if dy < 0 {
		dh += dy
		dy = 0
	}
	if over := dx + dw - d.Width; over > 0 {
		dw -= over
	}
	if over := dy + dh - d.Height; over > 0 {
		dh -= over
	}
	for j := 0; j < dh; j++ {
		for i := 0; i < dw; i++ {
			d.setPixel(dx+i, dy+j, op.apply(false, d.pixel(dx+i, dy+j)))
		}
	}
}

package bitmap

import (
	"image"
)

// Bitmaps is the collection of bitmaps with their bounding boxes.
type Bitmaps struct {
	Values []*Bitmap
	Boxes  []image.Rectangle
}

// AddBitmap adds the bitmap 'bm' with its 'box' to the collection.
func (b *Bitmaps) AddBitmap(bm *Bitmap, box image.Rectangle) {
	b.Values = append(b.Values, bm)
	b.Boxes = append(b.Boxes, box)
}

// Size returns the number of bitmaps.
func (b *Bitmaps) Size() int {
	return len(b.Values)
}

// SelectBySize returns the bitmaps whose width is at most 'maxWidth' and height at most 'maxHeight'.
func (b *Bitmaps) SelectBySize(maxWidth, maxHeight int) *Bitmaps {
	d := &Bitmaps{}
	for i, bm := range b.Values {
		if bm.Width > maxWidth || bm.Height > maxHeight {
			continue
		}
		d.AddBitmap(bm, b.Boxes[i])
	}
	return d
}

// SizeRange returns the maximal width and height of the bitmaps.
func (b *Bitmaps) SizeRange() (maxWidth, maxHeight int) {
	for _, bm := range b.Values {
		if bm.Width > maxWidth {
			maxWidth = bm.Width
		}
		if bm.Height > maxHeight {
			maxHeight = bm.Height
		}
	}
	return maxWidth, maxHeight
}

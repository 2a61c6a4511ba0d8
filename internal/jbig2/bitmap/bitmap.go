package bitmap

import (
	"fmt"
	"image"
	"math/bits"

	"github.com/moolekkari/jbclass/internal/endian"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// Bitmap is the jbig2 binary image. Each pixel is stored as a single bit, the rows are
// packed most significant bit first and every row starts on a byte boundary.
// The padding bits at the end of each row are always zero.
type Bitmap struct {
	Width, Height int

	// RowStride is the number of bytes used by a single row.
	RowStride int
	Data      []byte

	// Color defines how the set bits are interpreted when converting to the image.
	Color Color
}

// New creates new bitmap with the provided 'width' and 'height'. All the pixels are cleared.
func New(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := (width + 7) >> 3
	return &Bitmap{
		Width:     width,
		Height:    height,
		RowStride: stride,
		Data:      make([]byte, stride*height),
		Color:     Chocolate,
	}
}

// NewFrom creates a cleared bitmap with the same dimensions and color as 'b'.
func NewFrom(b *Bitmap) *Bitmap {
	d := New(b.Width, b.Height)
	d.Color = b.Color
	return d
}

// Bounds returns the rectangle (0, 0, Width, Height).
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Copy creates a deep copy of the bitmap.
func (b *Bitmap) Copy() *Bitmap {
	data := make([]byte, len(b.Data))
	copy(data, b.Data)
	return &Bitmap{
		Width:     b.Width,
		Height:    b.Height,
		RowStride: b.RowStride,
		Data:      data,
		Color:     b.Color,
	}
}

// Equals checks if the bitmaps have the same dimensions and pixels.
func (b *Bitmap) Equals(s *Bitmap) bool {
	if b == nil || s == nil {
		return b == s
	}
	if b.Width != s.Width || b.Height != s.Height {
		return false
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.RowStride; x++ {
			if b.Data[y*b.RowStride+x] != s.Data[y*s.RowStride+x] {
				return false
			}
		}
	}
	return true
}

// GetPixel returns the value of the pixel at 'x', 'y'. Pixels outside the bitmap are clear.
func (b *Bitmap) GetPixel(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.pixel(x, y)
}

// SetPixel sets the pixel at 'x', 'y' to the 'pixel' value, where any non zero value sets the bit.
func (b *Bitmap) SetPixel(x, y int, pixel byte) error {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return errors.Errorf("SetPixel", "index out of range: x: %d, y: %d, width: %d, height: %d", x, y, b.Width, b.Height)
	}
	b.setPixel(x, y, pixel != 0)
	return nil
}

// ClearPixel clears the pixel at 'x', 'y'. Pixels outside the bitmap are ignored.
func (b *Bitmap) ClearPixel(x, y int) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.setPixel(x, y, false)
}

func (b *Bitmap) pixel(x, y int) bool {
	return b.Data[y*b.RowStride+(x>>3)]&(0x80>>uint(x&7)) != 0
}

func (b *Bitmap) setPixel(x, y int, on bool) {
	idx := y*b.RowStride + (x >> 3)
	mask := byte(0x80 >> uint(x&7))
	if on {
		b.Data[idx] |= mask
	} else {
		b.Data[idx] &^= mask
	}
}

// Zero checks if all the pixels are clear.
func (b *Bitmap) Zero() bool {
	for _, v := range b.Data {
		if v != 0 {
			return false
		}
	}
	return true
}

// Clear clears all the pixels.
func (b *Bitmap) Clear() {
	for i := range b.Data {
		b.Data[i] = 0
	}
}

// CountPixels counts the set pixels of the bitmap.
func (b *Bitmap) CountPixels() int {
	return countBits(b.Data)
}

func countBits(data []byte) int {
	var count int
	order := endian.ByteOrder()
	i := 0
	for ; i+8 <= len(data); i += 8 {
		count += bits.OnesCount64(order.Uint64(data[i:]))
	}
	for ; i < len(data); i++ {
		count += bits.OnesCount8(data[i])
	}
	return count
}

// RowCounts returns the number of set pixels in each row.
func (b *Bitmap) RowCounts() []int {
	counts := make([]int, b.Height)
	for y := 0; y < b.Height; y++ {
		counts[y] = countBits(b.Data[y*b.RowStride : (y+1)*b.RowStride])
	}
	return counts
}

// Centroid returns the center of mass of the set pixels relative to the
// top-left corner of the bitmap. An empty bitmap has its centroid at (0, 0).
func (b *Bitmap) Centroid() (x, y float64) {
	var sumX, sumY, count int
	for j := 0; j < b.Height; j++ {
		row := b.Data[j*b.RowStride : (j+1)*b.RowStride]
		for i, v := range row {
			if v == 0 {
				continue
			}
			for k := 0; k < 8; k++ {
				if v&(0x80>>uint(k)) != 0 {
					sumX += i<<3 + k
					sumY += j
					count++
				}
			}
		}
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sumX) / float64(count), float64(sumY) / float64(count)
}

// AddBorder creates a new bitmap surrounded by the border of 'borderSize' pixels.
// Non zero 'val' sets the border pixels.
func (b *Bitmap) AddBorder(borderSize, val int) (*Bitmap, error) {
	const processName = "AddBorder"
	if borderSize < 0 {
		return nil, errors.Errorf(processName, "invalid border size: %d", borderSize)
	}
	d := New(b.Width+2*borderSize, b.Height+2*borderSize)
	d.Color = b.Color
	if val != 0 {
		if err := RasterOperation(d, 0, 0, d.Width, d.Height, PixSet, nil, 0, 0); err != nil {
			return nil, errors.Wrap(err, processName, "")
		}
	}
	if err := RasterOperation(d, borderSize, borderSize, b.Width, b.Height, PixSrc, b, 0, 0); err != nil {
		return nil, errors.Wrap(err, processName, "")
	}
	return d, nil
}

// RemoveBorder creates a new bitmap with the 'borderSize' pixels removed from each side.
func (b *Bitmap) RemoveBorder(borderSize int) (*Bitmap, error) {
	const processName = "RemoveBorder"
	if borderSize < 0 {
		return nil, errors.Errorf(processName, "invalid border size: %d", borderSize)
	}
	if borderSize == 0 {
		return b.Copy(), nil
	}
	w, h := b.Width-2*borderSize, b.Height-2*borderSize
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf(processName, "border: %d too big for the bitmap %dx%d", borderSize, b.Width, b.Height)
	}
	d := New(w, h)
	d.Color = b.Color
	if err := RasterOperation(d, 0, 0, w, h, PixSrc, b, borderSize, borderSize); err != nil {
		return nil, errors.Wrap(err, processName, "")
	}
	return d, nil
}

// ClipRectangle copies the 'box' region of the bitmap into a new bitmap.
// The returned rectangle is the 'box' clipped to the bitmap bounds.
func (b *Bitmap) ClipRectangle(box image.Rectangle) (*Bitmap, image.Rectangle, error) {
	const processName = "ClipRectangle"
	clipped := box.Intersect(b.Bounds())
	if clipped.Empty() {
		return nil, clipped, errors.Errorf(processName, "box %v doesn't overlap bitmap %dx%d", box, b.Width, b.Height)
	}
	d := New(clipped.Dx(), clipped.Dy())
	d.Color = b.Color
	if err := RasterOperation(d, 0, 0, d.Width, d.Height, PixSrc, b, clipped.Min.X, clipped.Min.Y); err != nil {
		return nil, clipped, errors.Wrap(err, processName, "")
	}
	return d, clipped, nil
}

// String implements fmt.Stringer interface.
func (b *Bitmap) String() string {
	return fmt.Sprintf("Bitmap %dx%d, pixels: %d", b.Width, b.Height, b.CountPixels())
}

// ClipToForeground returns the smallest part of the bitmap containing all the set
// pixels along with its rectangle. An empty bitmap gives a nil bitmap.
func (b *Bitmap) ClipToForeground() (*Bitmap, image.Rectangle, error) {
	box := image.Rectangle{}
	found := false
	for y := 0; y < b.Height; y++ {
		row := b.Data[y*b.RowStride : (y+1)*b.RowStride]
		for i, v := range row {
			if v == 0 {
				continue
			}
			first := i<<3 + bits.LeadingZeros8(v)
			last := i<<3 + 7 - bits.TrailingZeros8(v)
			r := image.Rect(first, y, last+1, y+1)
			if !found {
				box = r
				found = true
			} else {
				box = box.Union(r)
			}
		}
	}
	if !found {
		return nil, box, nil
	}
	d, _, err := b.ClipRectangle(box)
	if err != nil {
		return nil, box, errors.Wrap(err, "ClipToForeground", "")
	}
	return d, box, nil
}

package bitmap

import (
	"image"
	"image/color"

	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// DefaultThreshold is the gray level below which the image pixel is treated as foreground.
const DefaultThreshold = 128

// ToImage converts the bitmap into the 8 bit gray image, interpreting the bits by the bitmap Color.
func (b *Bitmap) ToImage() *image.Gray {
	img := image.NewGray(b.Bounds())
	for y := 0; y < b.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Width]
		for x := range row {
			row[x] = b.Color.gray(b.pixel(x, y))
		}
	}
	return img
}

// FromImage converts the image into the Chocolate bitmap. The pixels whose gray
// level is below the 'threshold' are set (dark foreground). Fully transparent
// pixels are background.
func FromImage(img image.Image, threshold uint8) (*Bitmap, error) {
	if img == nil {
		return nil, errors.Error("FromImage", "image not defined")
	}
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.At(x, y)
			if _, _, _, a := c.RGBA(); a == 0 {
				continue
			}
			g := color.GrayModel.Convert(c).(color.Gray)
			if g.Y < threshold {
				b.setPixel(x-bounds.Min.X, y-bounds.Min.Y, true)
			}
		}
	}
	return b, nil
}

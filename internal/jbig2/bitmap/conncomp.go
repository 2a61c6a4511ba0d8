package bitmap

import (
	"image"

	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

type point struct {
	x, y int
}

// ConnComponents finds the 4 or 8 connected components of the bitmap.
// The components are ordered by their first pixel in the raster scan order.
// Each component bitmap is cut to its bounding box and contains only the pixels
// of that component; the boxes are in the bitmap coordinates.
func (b *Bitmap) ConnComponents(connectivity int) (*Bitmaps, error) {
	const processName = "ConnComponents"
	if connectivity != 4 && connectivity != 8 {
		return nil, errors.Errorf(processName, "invalid connectivity: %d", connectivity)
	}

	result := &Bitmaps{}
	visited := make([]bool, b.Width*b.Height)
	var (
		stack  []point
		pixels []point
	)

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if visited[y*b.Width+x] || !b.pixel(x, y) {
				continue
			}
			visited[y*b.Width+x] = true
			stack = append(stack[:0], point{x, y})
			pixels = pixels[:0]
			box := image.Rect(x, y, x+1, y+1)

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				pixels = append(pixels, p)
				box = box.Union(image.Rect(p.x, p.y, p.x+1, p.y+1))

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						if connectivity == 4 && dx != 0 && dy != 0 {
							continue
						}
						nx, ny := p.x+dx, p.y+dy
						if nx < 0 || ny < 0 || nx >= b.Width || ny >= b.Height {
							continue
						}
						if visited[ny*b.Width+nx] || !b.pixel(nx, ny) {
							continue
						}
						visited[ny*b.Width+nx] = true
						stack = append(stack, point{nx, ny})
					}
				}
			}

			comp := New(box.Dx(), box.Dy())
			comp.Color = b.Color
			for _, p := range pixels {
				comp.setPixel(p.x-box.Min.X, p.y-box.Min.Y, true)
			}
			result.AddBitmap(comp, box)
		}
	}
	return result, nil
}

package classer

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
)

// fromRows creates the bitmap from the rows where '1' sets the pixel.
func fromRows(t *testing.T, rows ...string) *bitmap.Bitmap {
	t.Helper()
	b := bitmap.New(len(rows[0]), len(rows))
	for y, row := range rows {
		require.Len(t, row, b.Width)
		for x, c := range row {
			if c == '1' {
				require.NoError(t, b.SetPixel(x, y, 1))
			}
		}
	}
	return b
}

// filled creates the 'w' x 'h' bitmap with all pixels set.
func filled(t *testing.T, w, h int) *bitmap.Bitmap {
	t.Helper()
	b := bitmap.New(w, h)
	require.NoError(t, bitmap.RasterOperation(b, 0, 0, w, h, bitmap.PixSet, nil, 0, 0))
	return b
}

// randomBitmap creates the 'w' x 'h' bitmap with roughly half of the pixels set.
// The top-left pixel is always set.
func randomBitmap(t *testing.T, r *rand.Rand, w, h int) *bitmap.Bitmap {
	t.Helper()
	b := bitmap.New(w, h)
	require.NoError(t, b.SetPixel(0, 0, 1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Intn(2) == 0 {
				require.NoError(t, b.SetPixel(x, y, 1))
			}
		}
	}
	return b
}

// bordered adds the classifier border.
func bordered(t *testing.T, b *bitmap.Bitmap) *bitmap.Bitmap {
	t.Helper()
	d, err := b.AddBorder(JbAddedPixels, 0)
	require.NoError(t, err)
	return d
}

// dilated dilates with the square brick of 'size'.
func dilated(t *testing.T, b *bitmap.Bitmap, size int) *bitmap.Bitmap {
	t.Helper()
	d, err := b.DilateBrick(size, size)
	require.NoError(t, err)
	return d
}

// components builds the page components from the bitmaps placed at the 'positions'.
func components(bms []*bitmap.Bitmap, positions []image.Point) *bitmap.Bitmaps {
	comps := &bitmap.Bitmaps{}
	for i, bm := range bms {
		p := positions[i]
		comps.AddBitmap(bm, image.Rect(p.X, p.Y, p.X+bm.Width, p.Y+bm.Height))
	}
	return comps
}

// page paints the bitmaps at the 'positions' on the new 'w' x 'h' page.
func page(t *testing.T, w, h int, bms []*bitmap.Bitmap, positions []image.Point) *bitmap.Bitmap {
	t.Helper()
	p := bitmap.New(w, h)
	for i, bm := range bms {
		require.NoError(t, bitmap.RasterOperation(p, positions[i].X, positions[i].Y, bm.Width, bm.Height, bitmap.PixPaint, bm, 0, 0))
	}
	return p
}

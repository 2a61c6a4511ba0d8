package bitmap

import (
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// DilateBrick dilates the bitmap with the 'hSize' x 'vSize' rectangular structuring
// element. The element origin is at its center (hSize/2, vSize/2). Pixels shifted
// outside the bitmap are lost; add a border first to keep them.
func (b *Bitmap) DilateBrick(hSize, vSize int) (*Bitmap, error) {
	const processName = "DilateBrick"
	if hSize < 1 || vSize < 1 {
		return nil, errors.Errorf(processName, "invalid brick size: %dx%d", hSize, vSize)
	}
	if hSize == 1 && vSize == 1 {
		return b.Copy(), nil
	}

	h := b
	if hSize > 1 {
		h = NewFrom(b)
		cx := hSize / 2
		for i := 0; i < hSize; i++ {
			if err := RasterOperation(h, i-cx, 0, b.Width, b.Height, PixSrcOrDst, b, 0, 0); err != nil {
				return nil, errors.Wrap(err, processName, "horizontal")
			}
		}
	}
	if vSize == 1 {
		return h, nil
	}

	d := NewFrom(b)
	cy := vSize / 2
	for j := 0; j < vSize; j++ {
		if err := RasterOperation(d, 0, j-cy, b.Width, b.Height, PixSrcOrDst, h, 0, 0); err != nil {
			return nil, errors.Wrap(err, processName, "vertical")
		}
	}
	return d, nil
}

// ErodeBrick erodes the bitmap with the 'hSize' x 'vSize' rectangular structuring
// element. Pixels outside the bitmap are treated as set.
func (b *Bitmap) ErodeBrick(hSize, vSize int) (*Bitmap, error) {
	const processName = "ErodeBrick"
	if hSize < 1 || vSize < 1 {
		return nil, errors.Errorf(processName, "invalid brick size: %dx%d", hSize, vSize)
	}
	if hSize == 1 && vSize == 1 {
		return b.Copy(), nil
	}

	h := b
	if hSize > 1 {
		h = b.Copy()
		cx := hSize / 2
		for i := 0; i < hSize; i++ {
			if err := RasterOperation(h, cx-i, 0, b.Width, b.Height, PixSrcAndDst, b, 0, 0); err != nil {
				return nil, errors.Wrap(err, processName, "horizontal")
			}
		}
	}
	if vSize == 1 {
		return h, nil
	}

	d := h.Copy()
	cy := vSize / 2
	for j := 0; j < vSize; j++ {
		if err := RasterOperation(d, 0, cy-j, b.Width, b.Height, PixSrcAndDst, h, 0, 0); err != nil {
			return nil, errors.Wrap(err, processName, "vertical")
		}
	}
	return d, nil
}

// CloseBrick does the morphological closing (dilation followed by erosion) with the
// 'hSize' x 'vSize' brick. The bitmap is temporarily bordered so the closing is safe
// near the edges.
func (b *Bitmap) CloseBrick(hSize, vSize int) (*Bitmap, error) {
	const processName = "CloseBrick"
	border := hSize
	if vSize > border {
		border = vSize
	}
	bordered, err := b.AddBorder(border, 0)
	if err != nil {
		return nil, errors.Wrap(err, processName, "")
	}
	dilated, err := bordered.DilateBrick(hSize, vSize)
	if err != nil {
		return nil, errors.Wrap(err, processName, "")
	}
	closed, err := dilated.ErodeBrick(hSize, vSize)
	if err != nil {
		return nil, errors.Wrap(err, processName, "")
	}
	return closed.RemoveBorder(border)
}

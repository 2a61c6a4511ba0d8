package classer

import (
	"image"

	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// alignShifts are the local shifts tested by the placement refinement.
// The unshifted position goes first so it wins the ties.
var alignShifts = [9]image.Point{
	{0, 0},
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// placement computes the page position of the un-bordered template top-left corner
// reproducing the instance. The centroid alignment is rounded to the integer shift
// and then refined within the 3x3 neighbourhood, minimizing the number of pixels
// differing between the instance and the template.
func (c *Classer) placement(inst *instance, t *Template) (image.Point, error) {
	const processName = "placement"
	idelX, idelY := roundShift(t.CentroidX-inst.centroid.X, t.CentroidY-inst.centroid.Y)

	dx, dy, err := finalAlignment(inst.bordered, t.Bitmap, idelX, idelY)
	if err != nil {
		return image.Point{}, errors.Wrap(err, processName, "")
	}
	return image.Pt(inst.box.Min.X-idelX+dx, inst.box.Min.Y-idelY+dy), nil
}

// finalAlignment finds the shift from the 'alignShifts' minimizing the XOR of the
// bordered instance and the bordered template. The region has the template size and
// starts at the bordered template position given by 'idelX', 'idelY'; the instance
// lies at 'idelX', 'idelY' within the region.
func finalAlignment(inst, tmpl *bitmap.Bitmap, idelX, idelY int) (dx, dy int, err error) {
	const processName = "finalAlignment"
	region := bitmap.New(tmpl.Width, tmpl.Height)
	if err = bitmap.RasterOperation(region, idelX, idelY, inst.Width, inst.Height, bitmap.PixSrc, inst, 0, 0); err != nil {
		return 0, 0, errors.Wrap(err, processName, "instance")
	}

	minCount := -1
	for _, shift := range alignShifts {
		xor := region.Copy()
		if err = bitmap.RasterOperation(xor, shift.X, shift.Y, tmpl.Width, tmpl.Height, bitmap.PixSrcXorDst, tmpl, 0, 0); err != nil {
			return 0, 0, errors.Wrap(err, processName, "template")
		}
		if count := xor.CountPixels(); minCount < 0 || count < minCount {
			minCount = count
			dx, dy = shift.X, shift.Y
		}
	}
	return dx, dy, nil
}

package classer

import (
	"math"

	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// HausTest does the two-way hausdorff test of the bordered instance 'p1' and the
// bordered template 'p3'. The 'p2' and 'p4' are their dilations.
// The 'delX' and 'delY' are the instance centroid minus the template centroid.
//
// The bitmaps match when every foreground pixel of the instance is in the dilated
// template and every foreground pixel of the template is in the dilated instance,
// after the centroid alignment. The bitmaps whose widths or heights differ more than
// 'maxDiffW' or 'maxDiffH' don't match.
func HausTest(p1, p2, p3, p4 *bitmap.Bitmap, delX, delY float64, maxDiffW, maxDiffH int) (bool, error) {
	const processName = "HausTest"
	if err := checkHausInput(p1, p2, p3, p4); err != nil {
		return false, errors.Wrap(err, processName, "")
	}
	if !sizeMatches(p1, p3, maxDiffW, maxDiffH) {
		return false, nil
	}

	idelX, idelY := roundShift(delX, delY)
	residual, err := instanceResidual(p1, p4, idelX, idelY)
	if err != nil {
		return false, errors.Wrap(err, processName, "instance")
	}
	if !residual.Zero() {
		return false, nil
	}

	residual, err = templateResidual(p3, p2, idelX, idelY)
	if err != nil {
		return false, errors.Wrap(err, processName, "template")
	}
	return residual.Zero(), nil
}

// RankHausTest is the HausTest tolerating the residual pixels. Each direction
// matches if the number of its residual pixels is not greater than
// floor(area * (1 - rank) + 0.5), where 'area1' is the foreground area of the
// instance 'p1' and 'area3' of the template 'p3'. The rank equal to 1.0 is the
// HausTest.
func RankHausTest(p1, p2, p3, p4 *bitmap.Bitmap, delX, delY float64, maxDiffW, maxDiffH, area1, area3 int, rank float64) (bool, error) {
	const processName = "RankHausTest"
	if err := checkHausInput(p1, p2, p3, p4); err != nil {
		return false, errors.Wrap(err, processName, "")
	}
	if !sizeMatches(p1, p3, maxDiffW, maxDiffH) {
		return false, nil
	}

	thresh1 := rankThreshold(area1, rank)
	thresh3 := rankThreshold(area3, rank)

	idelX, idelY := roundShift(delX, delY)
	residual, err := instanceResidual(p1, p4, idelX, idelY)
	if err != nil {
		return false, errors.Wrap(err, processName, "instance")
	}
	if residual.CountPixels() > thresh1 {
		return false, nil
	}

	residual, err = templateResidual(p3, p2, idelX, idelY)
	if err != nil {
		return false, errors.Wrap(err, processName, "template")
	}
	return residual.CountPixels() <= thresh3, nil
}

func rankThreshold(area int, rank float64) int {
	return int(math.Floor(float64(area)*(1.0-rank) + 0.5))
}

// instanceResidual returns the instance pixels not covered by the dilated
// template shifted by 'idelX', 'idelY', in the instance frame.
func instanceResidual(p1, p4 *bitmap.Bitmap, idelX, idelY int) (*bitmap.Bitmap, error) {
	t := p1.Copy()
	if err := bitmap.RasterOperation(t, idelX, idelY, p4.Width, p4.Height, bitmap.PixNotSrcAndDst, p4, 0, 0); err != nil {
		return nil, err
	}
	return t, nil
}

// templateResidual returns the template pixels not covered by the dilated
// instance shifted back by 'idelX', 'idelY', in the template frame.
func templateResidual(p3, p2 *bitmap.Bitmap, idelX, idelY int) (*bitmap.Bitmap, error) {
	t := p3.Copy()
	if err := bitmap.RasterOperation(t, -idelX, -idelY, p2.Width, p2.Height, bitmap.PixNotSrcAndDst, p2, 0, 0); err != nil {
		return nil, err
	}
	return t, nil
}

func checkHausInput(p1, p2, p3, p4 *bitmap.Bitmap) error {
	if p1 == nil || p2 == nil || p3 == nil || p4 == nil {
		return errors.Wrap(ErrInvalidInput, "checkHausInput", "bitmap not defined")
	}
	return nil
}

func sizeMatches(b1, b2 *bitmap.Bitmap, maxDiffW, maxDiffH int) bool {
	return abs(b1.Width-b2.Width) <= maxDiffW && abs(b1.Height-b2.Height) <= maxDiffH
}

// roundShift rounds the centroid difference half away from zero.
func roundShift(delX, delY float64) (int, int) {
	return int(math.Round(delX)), int(math.Round(delY))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package classer

import (
	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// CorrelationScore computes the correlation score of the bordered instance 'bm1' and
// the bordered template 'bm2' aligned by the rounded centroid difference 'delX', 'delY':
//
//	score = |bm1 AND shifted bm2|^2 / (area1 * area2)
//
// The bitmaps whose dimensions differ more than 'maxDiffW' or 'maxDiffH' score 0.
func CorrelationScore(bm1, bm2 *bitmap.Bitmap, area1, area2 int, delX, delY float64, maxDiffW, maxDiffH int) (float64, error) {
	const processName = "CorrelationScore"
	if bm1 == nil || bm2 == nil {
		return 0, errors.Wrap(ErrInvalidInput, processName, "bitmap not defined")
	}
	if area1 <= 0 || area2 <= 0 {
		return 0, nil
	}
	if !sizeMatches(bm1, bm2, maxDiffW, maxDiffH) {
		return 0, nil
	}
	idelX, idelY := roundShift(delX, delY)
	var count int
	for y := 0; y < bm1.Height; y++ {
		count += rowIntersection(bm1, bm2, y, idelX, idelY)
	}
	return score(count, area1, area2), nil
}

// CorrelationScoreThresholded checks if the correlation score of 'bm1' and 'bm2' is
// at least the 'scoreThreshold'. The rows are scanned top-down and the test stops as
// soon as the remaining instance pixels can't raise the score up to the threshold.
// The 'downcount' are the numbers of the 'bm1' pixels in the rows from 'y' to the
// bottom (see DownCounts); nil computes them.
//
// Two empty bitmaps match.
func CorrelationScoreThresholded(bm1, bm2 *bitmap.Bitmap, area1, area2 int, delX, delY float64, maxDiffW, maxDiffH int, downcount []int, scoreThreshold float64) (bool, error) {
	const processName = "CorrelationScoreThresholded"
	if bm1 == nil || bm2 == nil {
		return false, errors.Wrap(ErrInvalidInput, processName, "bitmap not defined")
	}
	if !sizeMatches(bm1, bm2, maxDiffW, maxDiffH) {
		return false, nil
	}
	if area1 <= 0 || area2 <= 0 {
		return area1 == area2, nil
	}
	if downcount == nil {
		downcount = DownCounts(bm1)
	}
	if len(downcount) != bm1.Height+1 {
		return false, errors.Wrapf(ErrInvalidInput, processName, "downcount length: %d, expected: %d", len(downcount), bm1.Height+1)
	}

	idelX, idelY := roundShift(delX, delY)
	var count int
	for y := 0; y < bm1.Height; y++ {
		count += rowIntersection(bm1, bm2, y, idelX, idelY)
		// the best possible score
		if score(count+downcount[y+1], area1, area2) < scoreThreshold {
			return false, nil
		}
	}
	return score(count, area1, area2) >= scoreThreshold, nil
}

// EffectiveThreshold raises the correlation 'threshold' for the dense templates:
//
//	threshold + (1 - threshold) * weightFactor * templateArea / boxArea
func EffectiveThreshold(threshold, weightFactor float64, templateArea, boxArea int) float64 {
	if weightFactor <= 0 || boxArea <= 0 {
		return threshold
	}
	return threshold + (1.0-threshold)*weightFactor*float64(templateArea)/float64(boxArea)
}

// DownCounts returns the numbers of the foreground pixels in the rows from 'y'
// to the bottom of the bitmap, for y in [0, Height]. The last value is zero.
func DownCounts(bm *bitmap.Bitmap) []int {
	rows := bm.RowCounts()
	down := make([]int, len(rows)+1)
	for y := len(rows) - 1; y >= 0; y-- {
		down[y] = down[y+1] + rows[y]
	}
	return down
}

func score(count, area1, area2 int) float64 {
	return float64(count) * float64(count) / (float64(area1) * float64(area2))
}

// rowIntersection counts the pixels of the 'y' row of the instance 'bm1' set also in
// the template 'bm2' shifted by 'idelX', 'idelY'.
func rowIntersection(bm1, bm2 *bitmap.Bitmap, y, idelX, idelY int) int {
	ty := y - idelY
	if ty < 0 || ty >= bm2.Height {
		return 0
	}
	xStart, xEnd := idelX, idelX+bm2.Width
	if xStart < 0 {
		xStart = 0
	}
	if xEnd > bm1.Width {
		xEnd = bm1.Width
	}
	var count int
	for x := xStart; x < xEnd; x++ {
		if bm1.GetPixel(x, y) && bm2.GetPixel(x-idelX, ty) {
			count++
		}
	}
	return count
}

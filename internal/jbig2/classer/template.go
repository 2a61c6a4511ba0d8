package classer

import (
	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
)

// JbAddedPixels is the border size added to each side of the component bitmaps.
// The border keeps the dilation and the alignment search within the bitmap.
const JbAddedPixels = 6

// Template is the class representative.
type Template struct {
	// ID is the class identifier, the index of the template in the creation order.
	ID int
	// Bitmap is the bordered template bitmap.
	Bitmap *bitmap.Bitmap
	// Dilated is the dilated Bitmap, used by the rank hausdorff method only.
	Dilated *bitmap.Bitmap
	// CentroidX and CentroidY is the center of mass of the Bitmap.
	CentroidX, CentroidY float64
	// Width and Height are the dimensions of the template without the border.
	Width, Height int
	// Area is the number of the foreground pixels.
	Area int
	// BoxArea is the Width times Height.
	BoxArea int

	// Instances is the number of the components assigned to the class.
	Instances int
	// Members are the bordered bitmaps of the class components, kept only with
	// the Settings.KeepClassInstances.
	Members []*bitmap.Bitmap
}

// Unbordered returns the template bitmap without the border.
func (t *Template) Unbordered() (*bitmap.Bitmap, error) {
	return t.Bitmap.RemoveBorder(JbAddedPixels)
}

package document

import (
	"io"

	"golang.org/x/image/tiff"

	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// WriteAtlas writes the template atlas into 'w' as the deflate compressed tiff image.
func (d *Data) WriteAtlas(w io.Writer) error {
	const processName = "Data.WriteAtlas"
	if d.Atlas == nil {
		return errors.Error(processName, "atlas not defined")
	}
	if err := tiff.Encode(w, d.Atlas.ToImage(), &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
		return errors.Wrap(err, processName, "")
	}
	return nil
}

// ReadAtlas reads the template atlas image from 'r' and sets it as the Atlas.
// The atlas must hold the lattice of the Data classes.
func (d *Data) ReadAtlas(r io.Reader) error {
	const processName = "Data.ReadAtlas"
	img, err := tiff.Decode(r)
	if err != nil {
		return errors.Wrapf(ErrCorruptData, processName, "%v", err)
	}
	atlas, err := bitmap.FromImage(img, bitmap.DefaultThreshold)
	if err != nil {
		return errors.Wrap(err, processName, "")
	}
	if d.LatticeWidth < 1 || d.LatticeHeight < 1 {
		return errors.Wrapf(ErrCorruptData, processName, "lattice size: %dx%d", d.LatticeWidth, d.LatticeHeight)
	}
	if atlas.Width < d.columns()*d.LatticeWidth || atlas.Height < d.rows()*d.LatticeHeight {
		return errors.Wrapf(ErrCorruptData, processName, "atlas %dx%d too small for %d classes", atlas.Width, atlas.Height, d.NumClasses)
	}
	d.Atlas = atlas
	return nil
}

// Templates cuts the atlas into the class templates, ordered by the class id.
// Each template has the size of the lattice cell without its one pixel gap.
func (d *Data) Templates() ([]*bitmap.Bitmap, error) {
	const processName = "Data.Templates"
	if d.Atlas == nil {
		return nil, errors.Error(processName, "atlas not defined")
	}
	templates := make([]*bitmap.Bitmap, d.NumClasses)
	w, h := d.LatticeWidth-1, d.LatticeHeight-1
	for i := range templates {
		x, y := d.cell(i)
		t := bitmap.New(w, h)
		if err := bitmap.RasterOperation(t, 0, 0, w, h, bitmap.PixSrc, d.Atlas, x, y); err != nil {
			return nil, errors.Wrapf(err, processName, "class: %d", i)
		}
		templates[i] = t
	}
	return templates, nil
}

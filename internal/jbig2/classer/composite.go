package classer

import (
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/moolekkari/jbclass/common"
	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// Composite is the sum of the class members aligned at their average centroid.
type Composite struct {
	ClassID int
	// Count is the number of the summed members.
	Count int
	// Width and Height are the dimensions of the bordered template.
	Width, Height int
	// Sum holds the number of the members having each pixel set, in row order.
	Sum []uint32
	// Centroid is the average centroid of the members.
	Centroid Point
}

// AccumulateComposites sums the members of each class. It requires the
// Settings.KeepClassInstances.
func (c *Classer) AccumulateComposites() ([]*Composite, error) {
	const processName = "Classer.AccumulateComposites"
	if c == nil {
		return nil, errors.Wrap(ErrInvalidInput, processName, "classer not defined")
	}
	if !c.settings.KeepClassInstances {
		return nil, errors.Wrap(ErrInvalidInput, processName, "class instances were not kept")
	}

	composites := make([]*Composite, len(c.templates))
	for i, t := range c.templates {
		comp, err := accumulate(t)
		if err != nil {
			return nil, errors.Wrapf(err, processName, "class: %d", i)
		}
		composites[i] = comp
	}
	common.Log.Debug("[%s] accumulated %d composites", processName, len(composites))
	return composites, nil
}

func accumulate(t *Template) (*Composite, error) {
	comp := &Composite{
		ClassID: t.ID,
		Count:   len(t.Members),
		Width:   t.Bitmap.Width,
		Height:  t.Bitmap.Height,
		Sum:     make([]uint32, t.Bitmap.Width*t.Bitmap.Height),
	}
	if len(t.Members) == 0 {
		return comp, nil
	}

	xs := make([]float64, len(t.Members))
	ys := make([]float64, len(t.Members))
	for i, m := range t.Members {
		xs[i], ys[i] = m.Centroid()
	}
	comp.Centroid = Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}

	// the member shifts moving their centroids to the average one
	floats.Scale(-1, xs)
	floats.AddConst(comp.Centroid.X, xs)
	floats.Scale(-1, ys)
	floats.AddConst(comp.Centroid.Y, ys)

	for i, m := range t.Members {
		aligned := bitmap.New(comp.Width, comp.Height)
		dx, dy := int(math.Round(xs[i])), int(math.Round(ys[i]))
		if err := bitmap.RasterOperation(aligned, dx, dy, m.Width, m.Height, bitmap.PixSrc, m, 0, 0); err != nil {
			return nil, err
		}
		for y := 0; y < comp.Height; y++ {
			for x := 0; x < comp.Width; x++ {
				if aligned.GetPixel(x, y) {
					comp.Sum[y*comp.Width+x]++
				}
			}
		}
	}
	return comp, nil
}

// Template normalizes the composite into the 8 bit gray template, where each pixel is
// 255 - 255 * count / n; the pixels set in every member are black.
func (c *Composite) Template() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			v := uint8(255)
			if c.Count > 0 {
				v = uint8(255 - math.Round(255*float64(c.Sum[y*c.Width+x])/float64(c.Count)))
			}
			img.Pix[y*img.Stride+x] = v
		}
	}
	return img
}

// TemplatesFromComposites accumulates the composites and returns the gray templates
// ordered by the class ids.
func (c *Classer) TemplatesFromComposites() ([]*image.Gray, error) {
	composites, err := c.AccumulateComposites()
	if err != nil {
		return nil, errors.Wrap(err, "Classer.TemplatesFromComposites", "")
	}
	templates := make([]*image.Gray, len(composites))
	for i, comp := range composites {
		templates[i] = comp.Template()
	}
	return templates, nil
}

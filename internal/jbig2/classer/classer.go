package classer

import (
	"image"

	"github.com/moolekkari/jbclass/common"
	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// Point is the floating point position.
type Point struct {
	X, Y float64
}

// Classer is the jbig2 symbol classifier state. It holds the class templates,
// the size index and, for every classified component, its page, class,
// centroid and placement.
type Classer struct {
	settings Settings

	templates []*Template
	index     sizeIndex

	// per component records
	classIDs    []int
	pageNumbers []int
	centroids   []Point
	placements  []image.Point

	componentsPerPage []int
	numPages          int
	pageWidth         int
	pageHeight        int
}

// New creates new Classer with the provided 'settings'.
func New(settings Settings) (*Classer, error) {
	const processName = "classer.New"
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, processName, "")
	}
	common.Log.Debug("[%s] method: %s, components: %s, max size: %dx%d", processName, settings.Method, settings.Components, settings.MaxWidth, settings.MaxHeight)
	return &Classer{
		settings: settings,
		index:    sizeIndex{},
	}, nil
}

// AddPage extracts the components of the binary 'page', as defined by the
// Settings.Components, and classifies them.
func (c *Classer) AddPage(page *bitmap.Bitmap) error {
	const processName = "Classer.AddPage"
	if c == nil {
		return errors.Wrap(ErrInvalidInput, processName, "classer not defined")
	}
	if page == nil {
		return errors.Wrap(ErrInvalidInput, processName, "page not defined")
	}
	components, err := c.extractComponents(page)
	if err != nil {
		return errors.Wrapf(err, processName, "page: %d", c.numPages)
	}
	return c.addPageComponents(page.Width, page.Height, components)
}

// AddPageComponents classifies the components extracted from a page of the
// 'pageWidth' x 'pageHeight' size. Each component bitmap is cut to its box, the
// boxes are in the page coordinates. The components bigger than the maximal size
// are skipped; the page is counted even if it has no components.
func (c *Classer) AddPageComponents(pageWidth, pageHeight int, components *bitmap.Bitmaps) error {
	const processName = "Classer.AddPageComponents"
	if c == nil {
		return errors.Wrap(ErrInvalidInput, processName, "classer not defined")
	}
	if components == nil {
		return errors.Wrap(ErrInvalidInput, processName, "components not defined")
	}
	if len(components.Values) != len(components.Boxes) {
		return errors.Wrapf(ErrInvalidInput, processName, "bitmaps: %d, boxes: %d", len(components.Values), len(components.Boxes))
	}
	for i, bm := range components.Values {
		if bm == nil {
			return errors.Wrapf(ErrInvalidInput, processName, "component: %d not defined", i)
		}
		box := components.Boxes[i]
		if box.Dx() != bm.Width || box.Dy() != bm.Height {
			return errors.Wrapf(ErrInvalidInput, processName, "component: %d box %v doesn't fit bitmap %dx%d", i, box, bm.Width, bm.Height)
		}
	}
	return c.addPageComponents(pageWidth, pageHeight, components)
}

func (c *Classer) addPageComponents(pageWidth, pageHeight int, components *bitmap.Bitmaps) error {
	const processName = "Classer.addPageComponents"
	if pageWidth <= 0 || pageHeight <= 0 {
		return errors.Wrapf(ErrInvalidInput, processName, "page size: %dx%d", pageWidth, pageHeight)
	}
	if c.numPages == 0 {
		c.pageWidth, c.pageHeight = pageWidth, pageHeight
	}

	selected := components.SelectBySize(c.settings.MaxWidth, c.settings.MaxHeight)
	if skipped := components.Size() - selected.Size(); skipped > 0 {
		common.Log.Debug("[%s] page: %d skipped %d components bigger than %dx%d", processName, c.numPages, skipped, c.settings.MaxWidth, c.settings.MaxHeight)
	}
	if selected.Size() == 0 {
		common.Log.Trace("[%s] page: %d has no components", processName, c.numPages)
		c.componentsPerPage = append(c.componentsPerPage, 0)
		c.numPages++
		return nil
	}

	pg, err := c.classifyPage(selected)
	if err != nil {
		return errors.Wrapf(err, processName, "page: %d", c.numPages)
	}
	c.commit(pg)
	common.Log.Trace("[%s] page: %d components: %d, classes: %d", processName, c.numPages-1, selected.Size(), len(c.templates))
	return nil
}

// Settings returns the settings the Classer was created with.
func (c *Classer) Settings() Settings {
	return c.settings
}

// NumPages returns the number of the added pages.
func (c *Classer) NumPages() int {
	return c.numPages
}

// NumInstances returns the number of the classified components.
func (c *Classer) NumInstances() int {
	return len(c.classIDs)
}

// NumClasses returns the number of the classes.
func (c *Classer) NumClasses() int {
	return len(c.templates)
}

// PageSize returns the size of the first added page.
func (c *Classer) PageSize() (width, height int) {
	return c.pageWidth, c.pageHeight
}

// Templates returns the class templates ordered by their ids.
func (c *Classer) Templates() []*Template {
	return c.templates
}

// ClassIDs returns the class id of each classified component.
func (c *Classer) ClassIDs() []int {
	return c.classIDs
}

// PageNumbers returns the page number of each classified component.
func (c *Classer) PageNumbers() []int {
	return c.pageNumbers
}

// Centroids returns the centroid of each classified component, relative to its bordered bitmap.
func (c *Classer) Centroids() []Point {
	return c.centroids
}

// Placements returns the page position of the un-bordered template top-left corner
// reproducing each classified component.
func (c *Classer) Placements() []image.Point {
	return c.placements
}

// ComponentsPerPage returns the number of the classified components of each page.
func (c *Classer) ComponentsPerPage() []int {
	return c.componentsPerPage
}

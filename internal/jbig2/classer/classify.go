package classer

import (
	"image"

	"github.com/moolekkari/jbclass/common"
	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// instance is the component being classified.
type instance struct {
	// box is the un-bordered component box in the page coordinates.
	box      image.Rectangle
	bordered *bitmap.Bitmap
	// dilated is defined for the RankHaus method only.
	dilated   *bitmap.Bitmap
	centroid  Point
	area      int
	downcount []int
	classID   int
}

// pageResult is the classification of a single page, committed to the Classer
// state only when the whole page succeeds.
type pageResult struct {
	firstNewID int
	instances  []*instance
	placements []image.Point
}

func (c *Classer) classifyPage(components *bitmap.Bitmaps) (*pageResult, error) {
	const processName = "classifyPage"
	pg := &pageResult{firstNewID: len(c.templates)}

	for i, bm := range components.Values {
		inst, err := c.newInstance(bm, components.Boxes[i])
		if err != nil {
			c.rollback(pg)
			return nil, errors.Wrapf(err, processName, "component: %d", i)
		}

		id, err := c.findTemplate(inst)
		if err != nil {
			c.rollback(pg)
			return nil, errors.Wrapf(err, processName, "component: %d", i)
		}
		if id < 0 {
			id, err = c.addTemplate(inst)
			if err != nil {
				c.rollback(pg)
				return nil, errors.Wrapf(err, processName, "component: %d", i)
			}
		}
		inst.classID = id
		pg.instances = append(pg.instances, inst)
	}

	// the placements are refined once the page classification is complete
	for i, inst := range pg.instances {
		p, err := c.placement(inst, c.templates[inst.classID])
		if err != nil {
			c.rollback(pg)
			return nil, errors.Wrapf(err, processName, "placement of component: %d", i)
		}
		pg.placements = append(pg.placements, p)
	}
	return pg, nil
}

func (c *Classer) newInstance(bm *bitmap.Bitmap, box image.Rectangle) (*instance, error) {
	bordered, err := bm.AddBorder(JbAddedPixels, 0)
	if err != nil {
		return nil, err
	}
	inst := &instance{
		box:      box,
		bordered: bordered,
		area:     bordered.CountPixels(),
	}
	inst.centroid.X, inst.centroid.Y = bordered.Centroid()

	switch c.settings.Method {
	case RankHaus:
		inst.dilated, err = bordered.DilateBrick(c.settings.SizeHaus, c.settings.SizeHaus)
		if err != nil {
			return nil, err
		}
	case Correlation:
		inst.downcount = DownCounts(bordered)
	}
	return inst, nil
}

// findTemplate returns the id of the first template of the similar size matching
// the instance, or -1 if none matches.
func (c *Classer) findTemplate(inst *instance) (int, error) {
	finder := newSimilarTemplatesFinder(c.templates, c.index, inst.box.Dx(), inst.box.Dy(), MaxSizeCells)
	for id := finder.Next(); id >= 0; id = finder.Next() {
		match, err := c.matches(inst, c.templates[id])
		if err != nil {
			return -1, err
		}
		if match {
			return id, nil
		}
	}
	return -1, nil
}

func (c *Classer) matches(inst *instance, t *Template) (bool, error) {
	delX := inst.centroid.X - t.CentroidX
	delY := inst.centroid.Y - t.CentroidY

	switch c.settings.Method {
	case RankHaus:
		if c.settings.RankHaus == 1.0 {
			return HausTest(inst.bordered, inst.dilated, t.Bitmap, t.Dilated, delX, delY, MaxDiffWidth, MaxDiffHeight)
		}
		return RankHausTest(inst.bordered, inst.dilated, t.Bitmap, t.Dilated, delX, delY, MaxDiffWidth, MaxDiffHeight, inst.area, t.Area, c.settings.RankHaus)
	case Correlation:
		threshold := EffectiveThreshold(c.settings.Thresh, c.settings.WeightFactor, t.Area, t.BoxArea)
		return CorrelationScoreThresholded(inst.bordered, t.Bitmap, inst.area, t.Area, delX, delY, MaxDiffWidth, MaxDiffHeight, inst.downcount, threshold)
	}
	return false, errors.Wrapf(ErrInvalidInput, "matches", "method: %d", int(c.settings.Method))
}

// addTemplate creates the new class from the instance.
func (c *Classer) addTemplate(inst *instance) (int, error) {
	id := len(c.templates)
	t := &Template{
		ID:        id,
		Bitmap:    inst.bordered,
		Dilated:   inst.dilated,
		CentroidX: inst.centroid.X,
		CentroidY: inst.centroid.Y,
		Width:     inst.box.Dx(),
		Height:    inst.box.Dy(),
		Area:      inst.area,
		BoxArea:   inst.box.Dx() * inst.box.Dy(),
	}
	c.templates = append(c.templates, t)
	c.index.add(t.Width, t.Height, id)
	if common.Log.IsLogLevel(common.LogLevelTrace) {
		common.Log.Trace("[addTemplate] class: %d size: %dx%d area: %d", id, t.Width, t.Height, t.Area)
	}
	return id, nil
}

// rollback removes the templates created by the unfinished page.
func (c *Classer) rollback(pg *pageResult) {
	for id := len(c.templates) - 1; id >= pg.firstNewID; id-- {
		t := c.templates[id]
		c.index.removeLast(t.Width, t.Height, id)
		c.templates[id] = nil
	}
	c.templates = c.templates[:pg.firstNewID]
}

// commit stores the page classification in the Classer state.
func (c *Classer) commit(pg *pageResult) {
	for i, inst := range pg.instances {
		t := c.templates[inst.classID]
		t.Instances++
		if c.settings.KeepClassInstances {
			t.Members = append(t.Members, inst.bordered)
		}
		c.classIDs = append(c.classIDs, inst.classID)
		c.pageNumbers = append(c.pageNumbers, c.numPages)
		c.centroids = append(c.centroids, inst.centroid)
		c.placements = append(c.placements, pg.placements[i])
	}
	c.componentsPerPage = append(c.componentsPerPage, len(pg.instances))
	c.numPages++
}

package classer

import (
	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// characterCloseHeight is the height of the vertical closing joining the
// character parts.
const characterCloseHeight = 6

// extractComponents gets the components of the page as defined by the Settings.Components.
// The components are not filtered by size.
func (c *Classer) extractComponents(page *bitmap.Bitmap) (*bitmap.Bitmaps, error) {
	const processName = "extractComponents"
	switch c.settings.Components {
	case ConnComps:
		return page.ConnComponents(8)
	case Characters:
		return maskedComponents(page, 1, characterCloseHeight)
	case Words:
		return maskedComponents(page, c.settings.WordGap, characterCloseHeight)
	}
	return nil, errors.Wrapf(ErrInvalidInput, processName, "components: %d", int(c.settings.Components))
}

// maskedComponents finds the components of the page closed with the 'hSize' x 'vSize'
// brick. Each component bitmap keeps the page pixels covered by the closed component
// and is clipped to them.
func maskedComponents(page *bitmap.Bitmap, hSize, vSize int) (*bitmap.Bitmaps, error) {
	const processName = "maskedComponents"
	closed, err := page.CloseBrick(hSize, vSize)
	if err != nil {
		return nil, errors.Wrap(err, processName, "")
	}
	masks, err := closed.ConnComponents(8)
	if err != nil {
		return nil, errors.Wrap(err, processName, "")
	}

	result := &bitmap.Bitmaps{}
	for i, mask := range masks.Values {
		box := masks.Boxes[i]
		clip, _, err := page.ClipRectangle(box)
		if err != nil {
			return nil, errors.Wrapf(err, processName, "component: %d", i)
		}
		if err = bitmap.RasterOperation(clip, 0, 0, clip.Width, clip.Height, bitmap.PixSrcAndDst, mask, 0, 0); err != nil {
			return nil, errors.Wrapf(err, processName, "component: %d", i)
		}
		fg, fgBox, err := clip.ClipToForeground()
		if err != nil {
			return nil, errors.Wrapf(err, processName, "component: %d", i)
		}
		if fg == nil {
			continue
		}
		result.AddBitmap(fg, fgBox.Add(box.Min))
	}
	return result, nil
}

package document

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/moolekkari/jbclass/common"
	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// Render draws the pages back from the atlas templates. Each record template is
// OR-ed into its page at the record placement, so that the overlapping templates
// never erase each other.
func (d *Data) Render() ([]*bitmap.Bitmap, error) {
	const processName = "Data.Render"
	if d.PageWidth <= 0 || d.PageHeight <= 0 {
		return nil, errors.Errorf(processName, "invalid page size: %dx%d", d.PageWidth, d.PageHeight)
	}
	templates, err := d.Templates()
	if err != nil {
		return nil, errors.Wrap(err, processName, "")
	}

	pages := make([]*bitmap.Bitmap, d.NumPages)
	for i := range pages {
		pages[i] = bitmap.New(d.PageWidth, d.PageHeight)
	}
	for i, r := range d.Records {
		if r.Page < 0 || r.Page >= len(pages) || r.Class < 0 || r.Class >= len(templates) {
			return nil, errors.Wrapf(ErrCorruptData, processName, "record: %d out of range", i)
		}
		t := templates[r.Class]
		if err = bitmap.RasterOperation(pages[r.Page], r.X, r.Y, t.Width, t.Height, bitmap.PixPaint, t, 0, 0); err != nil {
			return nil, errors.Wrapf(err, processName, "record: %d", i)
		}
	}
	common.Log.Debug("[%s] rendered %d pages", processName, len(pages))
	return pages, nil
}

// WritePDF writes the 'pages' into 'w' as the PDF document. Each page has the size
// of its bitmap in points.
func WritePDF(w io.Writer, pages []*bitmap.Bitmap) error {
	const processName = "WritePDF"
	if len(pages) == 0 {
		return errors.Error(processName, "no pages")
	}
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCreator("jbclass", true)
	for i, page := range pages {
		if page == nil {
			return errors.Errorf(processName, "page: %d not defined", i)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, page.ToImage()); err != nil {
			return errors.Wrapf(err, processName, "page: %d", i)
		}

		pw, ph := float64(page.Width), float64(page.Height)
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: pw, Ht: ph})
		name := fmt.Sprintf("page%d", i)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, 0, 0, pw, ph, false, opts, 0, "")
	}
	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, processName, "")
	}
	return nil
}

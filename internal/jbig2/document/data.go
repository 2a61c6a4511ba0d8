package document

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/moolekkari/jbclass/common"
	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/classer"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// dataHeader is the first line of the data file.
const dataHeader = "jb data file"

// maxRecordsCapacity limits the records preallocated from the header count.
const maxRecordsCapacity = 1 << 16

// Record is the placement of a single classified component.
type Record struct {
	Page  int
	Class int
	// X and Y are the page position of the template top-left corner.
	X, Y int
}

// Data is the persisted classification result.
type Data struct {
	NumPages   int
	PageWidth  int
	PageHeight int
	NumClasses int
	// LatticeWidth and LatticeHeight is the size of the atlas cell, one pixel more
	// than the maximal template size.
	LatticeWidth  int
	LatticeHeight int
	Records       []Record
	// Atlas contains the un-bordered class templates, each at the top-left corner of
	// its lattice cell, ordered by the class id in the row major order.
	Atlas *bitmap.Bitmap
}

// FromClasser creates the Data from the classifier state.
func FromClasser(c *classer.Classer) (*Data, error) {
	const processName = "FromClasser"
	if c == nil {
		return nil, errors.Error(processName, "classer not defined")
	}

	templates := &bitmap.Bitmaps{}
	for i, t := range c.Templates() {
		bm, err := t.Unbordered()
		if err != nil {
			return nil, errors.Wrapf(err, processName, "class: %d", i)
		}
		templates.AddBitmap(bm, bm.Bounds())
	}
	maxW, maxH := templates.SizeRange()

	d := &Data{
		NumPages:      c.NumPages(),
		NumClasses:    c.NumClasses(),
		LatticeWidth:  maxW + 1,
		LatticeHeight: maxH + 1,
		Records:       make([]Record, c.NumInstances()),
	}
	d.PageWidth, d.PageHeight = c.PageSize()

	classIDs, pages, placements := c.ClassIDs(), c.PageNumbers(), c.Placements()
	for i := range d.Records {
		d.Records[i] = Record{Page: pages[i], Class: classIDs[i], X: placements[i].X, Y: placements[i].Y}
	}

	d.Atlas = d.newAtlas()
	for i, bm := range templates.Values {
		x, y := d.cell(i)
		if err := bitmap.RasterOperation(d.Atlas, x, y, bm.Width, bm.Height, bitmap.PixSrc, bm, 0, 0); err != nil {
			return nil, errors.Wrapf(err, processName, "class: %d", i)
		}
	}
	common.Log.Debug("[%s] pages: %d, components: %d, classes: %d, lattice: %dx%d", processName, d.NumPages, len(d.Records), d.NumClasses, d.LatticeWidth, d.LatticeHeight)
	return d, nil
}

// columns is the number of the atlas lattice columns.
func (d *Data) columns() int {
	cols := int(math.Ceil(math.Sqrt(float64(d.NumClasses))))
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (d *Data) rows() int {
	cols := d.columns()
	rows := (d.NumClasses + cols - 1) / cols
	if rows < 1 {
		rows = 1
	}
	return rows
}

// cell returns the top-left corner of the 'class' lattice cell.
func (d *Data) cell(class int) (x, y int) {
	cols := d.columns()
	return (class % cols) * d.LatticeWidth, (class / cols) * d.LatticeHeight
}

func (d *Data) newAtlas() *bitmap.Bitmap {
	return bitmap.New(d.columns()*d.LatticeWidth, d.rows()*d.LatticeHeight)
}

// WriteData writes the data file text into 'w'.
func (d *Data) WriteData(w io.Writer) error {
	const processName = "Data.WriteData"
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, dataHeader)
	fmt.Fprintf(bw, "num pages = %d\n", d.NumPages)
	fmt.Fprintf(bw, "page size: w = %d, h = %d\n", d.PageWidth, d.PageHeight)
	fmt.Fprintf(bw, "num components = %d\n", len(d.Records))
	fmt.Fprintf(bw, "num classes = %d\n", d.NumClasses)
	fmt.Fprintf(bw, "template lattice size: w = %d, h = %d\n", d.LatticeWidth, d.LatticeHeight)
	for _, r := range d.Records {
		fmt.Fprintf(bw, "%d %d %d %d\n", r.Page, r.Class, r.X, r.Y)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, processName, "")
	}
	return nil
}

// ReadData reads the data file text. The Atlas of the result is not set.
// The data whose header or number of records is not valid returns ErrCorruptData.
func ReadData(r io.Reader) (*Data, error) {
	const processName = "ReadData"
	scanner := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		line++
		return strings.TrimRight(scanner.Text(), "\r"), true
	}

	text, ok := next()
	if !ok || text != dataHeader {
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, processName, "header")
		}
		return nil, errors.Wrapf(ErrCorruptData, processName, "invalid header: '%s'", text)
	}

	d := &Data{}
	var numComponents int
	header := []struct {
		format string
		values []*int
	}{
		{"num pages = %d", []*int{&d.NumPages}},
		{"page size: w = %d, h = %d", []*int{&d.PageWidth, &d.PageHeight}},
		{"num components = %d", []*int{&numComponents}},
		{"num classes = %d", []*int{&d.NumClasses}},
		{"template lattice size: w = %d, h = %d", []*int{&d.LatticeWidth, &d.LatticeHeight}},
	}
	for _, h := range header {
		text, ok = next()
		if !ok {
			return nil, errors.Wrapf(ErrCorruptData, processName, "missing line: '%s'", h.format)
		}
		if err := scanLine(text, h.format, h.values...); err != nil {
			return nil, errors.Wrapf(ErrCorruptData, processName, "line %d: '%s' %v", line, text, err)
		}
	}
	if numComponents < 0 || d.NumPages < 0 || d.NumClasses < 0 {
		return nil, errors.Wrapf(ErrCorruptData, processName, "negative counts")
	}

	d.Records = make([]Record, 0, min(numComponents, maxRecordsCapacity))
	for {
		text, ok = next()
		if !ok {
			break
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		var rec Record
		if err := scanLine(text, "%d %d %d %d", &rec.Page, &rec.Class, &rec.X, &rec.Y); err != nil {
			return nil, errors.Wrapf(ErrCorruptData, processName, "line %d: '%s' %v", line, text, err)
		}
		if rec.Page < 0 || rec.Page >= d.NumPages || rec.Class < 0 || rec.Class >= d.NumClasses {
			return nil, errors.Wrapf(ErrCorruptData, processName, "line %d: record out of range", line)
		}
		d.Records = append(d.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, processName, "")
	}
	if len(d.Records) != numComponents {
		return nil, errors.Wrapf(ErrCorruptData, processName, "components: %d, records: %d", numComponents, len(d.Records))
	}
	return d, nil
}

// scanLine parses the integer 'values' of the 'text' line written with the 'format'.
// The line must be exactly the one the format produces for the parsed values.
func scanLine(text, format string, values ...*int) error {
	scanned := make([]interface{}, len(values))
	for i, v := range values {
		scanned[i] = v
	}
	n, err := fmt.Sscanf(text, format, scanned...)
	if err != nil {
		return err
	}
	printed := make([]interface{}, len(values))
	for i, v := range values {
		printed[i] = *v
	}
	if n != len(values) || fmt.Sprintf(format, printed...) != text {
		return fmt.Errorf("line doesn't match the format '%s'", format)
	}
	return nil
}

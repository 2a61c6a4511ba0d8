package document

import (
	"bytes"
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/classer"
)

func fromRows(t *testing.T, rows ...string) *bitmap.Bitmap {
	t.Helper()
	b := bitmap.New(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			if c == '1' {
				require.NoError(t, b.SetPixel(x, y, 1))
			}
		}
	}
	return b
}

func glyphL(t *testing.T) *bitmap.Bitmap {
	return fromRows(t,
		"11000",
		"11000",
		"11000",
		"11000",
		"11000",
		"11111",
		"11111",
	)
}

func glyphDash(t *testing.T) *bitmap.Bitmap {
	return fromRows(t,
		"111111111",
		"111111111",
		"111111111",
	)
}

func testPage(t *testing.T, w, h int, bms []*bitmap.Bitmap, positions []image.Point) *bitmap.Bitmap {
	t.Helper()
	p := bitmap.New(w, h)
	for i, bm := range bms {
		require.NoError(t, bitmap.RasterOperation(p, positions[i].X, positions[i].Y, bm.Width, bm.Height, bitmap.PixPaint, bm, 0, 0))
	}
	return p
}

// classified returns the classifier of two pages and the pages.
func classified(t *testing.T) (*classer.Classer, []*bitmap.Bitmap) {
	t.Helper()
	c, err := classer.New(classer.DefaultSettings(classer.RankHaus))
	require.NoError(t, err)

	pages := []*bitmap.Bitmap{
		testPage(t, 40, 12, []*bitmap.Bitmap{glyphL(t), glyphDash(t), glyphL(t)}, []image.Point{{2, 2}, {10, 2}, {22, 3}}),
		testPage(t, 40, 12, []*bitmap.Bitmap{glyphDash(t), glyphL(t)}, []image.Point{{30, 0}, {1, 4}}),
	}
	for _, p := range pages {
		require.NoError(t, c.AddPage(p))
	}
	require.Equal(t, 2, c.NumClasses())
	return c, pages
}

func TestFromClasser(t *testing.T) {
	c, _ := classified(t)
	d, err := FromClasser(c)
	require.NoError(t, err)

	assert.Equal(t, 2, d.NumPages)
	assert.Equal(t, 40, d.PageWidth)
	assert.Equal(t, 12, d.PageHeight)
	assert.Equal(t, 2, d.NumClasses)
	assert.Equal(t, 10, d.LatticeWidth)
	assert.Equal(t, 8, d.LatticeHeight)

	expected := []Record{
		{Page: 0, Class: 0, X: 2, Y: 2},
		{Page: 0, Class: 1, X: 10, Y: 2},
		{Page: 0, Class: 0, X: 22, Y: 3},
		{Page: 1, Class: 1, X: 30, Y: 0},
		{Page: 1, Class: 0, X: 1, Y: 4},
	}
	assert.Equal(t, expected, d.Records)

	// two columns of one row
	require.NotNil(t, d.Atlas)
	assert.Equal(t, 20, d.Atlas.Width)
	assert.Equal(t, 8, d.Atlas.Height)
	assert.Equal(t, 20+27, d.Atlas.CountPixels())
	assert.True(t, d.Atlas.GetPixel(10, 0))
	assert.False(t, d.Atlas.GetPixel(9, 0))

	templates, err := d.Templates()
	require.NoError(t, err)
	require.Len(t, templates, 2)
	fg, _, err := templates[0].ClipToForeground()
	require.NoError(t, err)
	assert.True(t, fg.Equals(glyphL(t)))
	fg, _, err = templates[1].ClipToForeground()
	require.NoError(t, err)
	assert.True(t, fg.Equals(glyphDash(t)))

	_, err = FromClasser(nil)
	assert.Error(t, err)
}

func TestFromClasserEmpty(t *testing.T) {
	c, err := classer.New(classer.DefaultSettings(classer.Correlation))
	require.NoError(t, err)
	require.NoError(t, c.AddPage(bitmap.New(8, 8)))

	d, err := FromClasser(c)
	require.NoError(t, err)
	assert.Equal(t, 1, d.NumPages)
	assert.Zero(t, d.NumClasses)
	assert.Empty(t, d.Records)
	assert.Equal(t, 1, d.Atlas.Width)
	assert.Equal(t, 1, d.Atlas.Height)

	pages, err := d.Render()
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.True(t, pages[0].Zero())
}

func TestWriteData(t *testing.T) {
	d := &Data{
		NumPages:      2,
		PageWidth:     100,
		PageHeight:    50,
		NumClasses:    2,
		LatticeWidth:  6,
		LatticeHeight: 9,
		Records: []Record{
			{Page: 0, Class: 0, X: 1, Y: 2},
			{Page: 1, Class: 1, X: -3, Y: 40},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, d.WriteData(&buf))

	expected := `jb data file
num pages = 2
page size: w = 100, h = 50
num components = 2
num classes = 2
template lattice size: w = 6, h = 9
0 0 1 2
1 1 -3 40
`
	assert.Equal(t, expected, buf.String())

	read, err := ReadData(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, read)
}

func TestDataRoundTrip(t *testing.T) {
	c, _ := classified(t)
	d, err := FromClasser(c)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.WriteData(&buf))
	read, err := ReadData(&buf)
	require.NoError(t, err)

	assert.Equal(t, c.NumPages(), read.NumPages)
	assert.Equal(t, c.NumInstances(), len(read.Records))
	assert.Equal(t, c.NumClasses(), read.NumClasses)
	assert.Equal(t, d.Records, read.Records)
	assert.Nil(t, read.Atlas)
}

func TestReadDataCorrupt(t *testing.T) {
	const valid = "jb data file\nnum pages = 1\npage size: w = 10, h = 10\nnum components = 2\nnum classes = 1\ntemplate lattice size: w = 4, h = 4\n0 0 1 1\n0 0 5 5\n"

	d, err := ReadData(strings.NewReader(valid))
	require.NoError(t, err)
	require.Len(t, d.Records, 2)

	// windows line endings and the trailing blank line are accepted
	_, err = ReadData(strings.NewReader(strings.ReplaceAll(valid, "\n", "\r\n") + "\n"))
	require.NoError(t, err)

	cases := map[string]string{
		"Header":        strings.Replace(valid, "jb data file", "jb data", 1),
		"Empty":         "",
		"MissingRecord": strings.TrimSuffix(valid, "0 0 5 5\n"),
		"ExtraRecord":   valid + "0 0 7 7\n",
		"BadRecord":     strings.Replace(valid, "0 0 5 5", "0 zero 5 5", 1),
		"ClassRange":    strings.Replace(valid, "0 0 5 5", "0 1 5 5", 1),
		"PageRange":     strings.Replace(valid, "0 0 5 5", "1 0 5 5", 1),
		"MissingLine":   "jb data file\nnum pages = 1\n",
		"LineOrder":     strings.Replace(valid, "num pages = 1\npage size: w = 10, h = 10", "page size: w = 10, h = 10\nnum pages = 1", 1),
		"HugeCount":     strings.Replace(valid, "num components = 2", "num components = 9223372036854775807", 1),
		"HeaderSuffix":  strings.Replace(valid, "num pages = 1", "num pages = 1xyz", 1),
		"SizeSuffix":    strings.Replace(valid, "h = 10\n", "h = 10 garbage\n", 1),
		"RecordSuffix":  strings.Replace(valid, "0 0 1 1", "0 0 1 1 junk", 1),
		"RecordFields":  strings.Replace(valid, "0 0 1 1", "0 0 1", 1),
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			d, err := ReadData(strings.NewReader(text))
			assert.True(t, errors.Is(err, ErrCorruptData), "err: %v", err)
			assert.Nil(t, d)
		})
	}
}

func TestAtlasRoundTrip(t *testing.T) {
	c, _ := classified(t)
	d, err := FromClasser(c)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.WriteAtlas(&buf))

	read := &Data{NumClasses: d.NumClasses, LatticeWidth: d.LatticeWidth, LatticeHeight: d.LatticeHeight}
	require.NoError(t, read.ReadAtlas(&buf))
	assert.True(t, d.Atlas.Equals(read.Atlas))

	t.Run("TooSmall", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, d.WriteAtlas(&buf))
		small := &Data{NumClasses: 5, LatticeWidth: d.LatticeWidth, LatticeHeight: d.LatticeHeight}
		err := small.ReadAtlas(&buf)
		assert.True(t, errors.Is(err, ErrCorruptData))
		assert.Nil(t, small.Atlas)
	})

	t.Run("NotImage", func(t *testing.T) {
		err := read.ReadAtlas(strings.NewReader("not a tiff"))
		assert.True(t, errors.Is(err, ErrCorruptData))
	})
}

func TestRender(t *testing.T) {
	c, pages := classified(t)
	d, err := FromClasser(c)
	require.NoError(t, err)

	rendered, err := d.Render()
	require.NoError(t, err)
	require.Len(t, rendered, len(pages))
	for i, p := range pages {
		assert.True(t, p.Equals(rendered[i]), "page: %d\n%s", i, rendered[i])
	}

	t.Run("Overlapping", func(t *testing.T) {
		// the blank part of the second template doesn't erase the first one
		o := &Data{
			NumPages: 1, PageWidth: 20, PageHeight: 12, NumClasses: d.NumClasses,
			LatticeWidth: d.LatticeWidth, LatticeHeight: d.LatticeHeight, Atlas: d.Atlas,
			Records: []Record{{Page: 0, Class: 0, X: 0, Y: 0}, {Page: 0, Class: 0, X: 3, Y: 0}},
		}
		rendered, err := o.Render()
		require.NoError(t, err)
		assert.Equal(t, 2*20-4, rendered[0].CountPixels())
	})
}

func TestSaveLoad(t *testing.T) {
	c, pages := classified(t)
	d, err := FromClasser(c)
	require.NoError(t, err)

	root := filepath.Join(t.TempDir(), "result")
	require.NoError(t, d.Save(root))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, d.Records, loaded.Records)
	assert.Equal(t, d.NumPages, loaded.NumPages)
	assert.True(t, d.Atlas.Equals(loaded.Atlas))

	rendered, err := loaded.Render()
	require.NoError(t, err)
	for i, p := range pages {
		assert.True(t, p.Equals(rendered[i]), "page: %d", i)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWritePDF(t *testing.T) {
	c, _ := classified(t)
	d, err := FromClasser(c)
	require.NoError(t, err)
	pages, err := d.Render()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, pages))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.Error(t, WritePDF(&buf, nil))
}

package main

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moolekkari/jbclass/internal/jbig2/document"
)

// writePage writes the white png page with the black squares at the 'positions'.
func writePage(t *testing.T, path string, positions ...image.Point) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 60, 30))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, p := range positions {
		for y := p.Y; y < p.Y+6; y++ {
			for x := p.X; x < p.X+6; x++ {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	pages := []string{filepath.Join(dir, "p1.png"), filepath.Join(dir, "p2.png")}
	writePage(t, pages[0], image.Pt(2, 2), image.Pt(20, 10))
	writePage(t, pages[1], image.Pt(40, 20))

	opts := options{
		method:     "rank",
		out:        filepath.Join(dir, "out"),
		renderPDF:  filepath.Join(dir, "out.pdf"),
		composites: filepath.Join(dir, "composites"),
		pages:      pages,
	}
	require.NoError(t, run(context.Background(), opts))

	d, err := document.Load(opts.out)
	require.NoError(t, err)
	assert.Equal(t, 2, d.NumPages)
	assert.Equal(t, 1, d.NumClasses)
	assert.Equal(t, []document.Record{
		{Page: 0, Class: 0, X: 2, Y: 2},
		{Page: 0, Class: 0, X: 20, Y: 10},
		{Page: 1, Class: 0, X: 40, Y: 20},
	}, d.Records)

	info, err := os.Stat(opts.renderPDF)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
	_, err = os.Stat(filepath.Join(opts.composites, "class_00000.png"))
	assert.NoError(t, err)

	t.Run("MissingPage", func(t *testing.T) {
		opts := options{method: "rank", out: filepath.Join(dir, "missing"), pages: []string{pages[0], filepath.Join(dir, "none.png")}}
		assert.Error(t, run(context.Background(), opts))
	})
}

package main

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/moolekkari/jbclass/common"
	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// loadPage decodes the image file and binarizes it.
func loadPage(path string) (*bitmap.Bitmap, error) {
	const processName = "loadPage"
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, processName, "")
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, processName, "'%s'", path)
	}
	common.Log.Debug("[%s] '%s' %s %v", processName, path, format, img.Bounds())
	return bitmap.FromImage(img, bitmap.DefaultThreshold)
}

// loadPages sends the pages decoded from the 'paths' to the 'pages' channel, in
// the 'paths' order, and closes it when done.
func loadPages(ctx context.Context, paths []string, pages chan<- *bitmap.Bitmap) error {
	defer close(pages)
	for _, path := range paths {
		page, err := loadPage(path)
		if err != nil {
			return err
		}
		select {
		case pages <- page:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// jbclass is a command-line tool grouping the symbols of the scanned binary pages
// into classes, the way the jbig2 symbol coder does.
//
// The connected components (or characters, or words) of all the pages are
// classified with the rank hausdorff or the correlation method. The result is
// saved as the text data file '<out>.data' and the template atlas image
// '<out>.templates.tif'.
//
// Usage:
//
//	jbclass -out root [options] page1.tif page2.png ...
//
// Options:
//
//	-method string      Classification method: rank or corr (default "rank")
//	-config string      Path to the yaml settings file
//	-components string  Classified units: conn, char or word
//	-out string         Root name of the output files
//	-render-pdf string  Path of the PDF rendered from the templates
//	-composites string  Directory for the gray composite templates
//	-v                  Verbose logging
//
// Example:
//
//	jbclass -method corr -components char -out book -render-pdf book.pdf scans/*.tif
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/moolekkari/jbclass/common"
	"github.com/moolekkari/jbclass/internal/jbig2/bitmap"
	"github.com/moolekkari/jbclass/internal/jbig2/classer"
	"github.com/moolekkari/jbclass/internal/jbig2/document"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

type options struct {
	method     string
	config     string
	components string
	out        string
	renderPDF  string
	composites string
	pages      []string
}

func main() {
	var opts options
	flag.StringVar(&opts.method, "method", "rank", "Classification method: rank or corr")
	flag.StringVar(&opts.config, "config", "", "Path to the yaml settings file")
	flag.StringVar(&opts.components, "components", "", "Classified units: conn, char or word")
	flag.StringVar(&opts.out, "out", "", "Root name of the output files")
	flag.StringVar(&opts.renderPDF, "render-pdf", "", "Path of the PDF rendered from the templates")
	flag.StringVar(&opts.composites, "composites", "", "Directory for the gray composite templates")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()
	opts.pages = flag.Args()

	level := common.LogLevelInfo
	if *verbose {
		level = common.LogLevelDebug
	}
	common.SetLogger(common.NewConsoleLogger(level))

	if opts.out == "" || len(opts.pages) == 0 {
		fmt.Println("Error: Must provide -out and at least one page image")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(context.Background(), opts); err != nil {
		common.Log.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	const processName = "run"
	settings, err := loadSettings(opts.method, opts.config, opts.components)
	if err != nil {
		return err
	}
	if opts.composites != "" {
		settings.KeepClassInstances = true
	}
	c, err := classer.New(settings)
	if err != nil {
		return err
	}

	start := time.Now()
	// the pages are decoded ahead while the previous one is classified
	pages := make(chan *bitmap.Bitmap, 1)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loadPages(ctx, opts.pages, pages)
	})
	g.Go(func() error {
		for page := range pages {
			if err := c.AddPage(page); err != nil {
				return err
			}
			common.Log.Debug("[%s] page: %d classes: %d", processName, c.NumPages()-1, c.NumClasses())
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return errors.Wrap(err, processName, "classification")
	}

	d, err := document.FromClasser(c)
	if err != nil {
		return err
	}
	if err = d.Save(opts.out); err != nil {
		return err
	}

	if opts.renderPDF != "" {
		if err = renderPDF(d, opts.renderPDF); err != nil {
			return err
		}
	}
	if opts.composites != "" {
		if err = writeComposites(c, opts.composites); err != nil {
			return err
		}
	}

	printSummary(os.Stdout, c, time.Since(start))
	return nil
}

func renderPDF(d *document.Data, path string) error {
	const processName = "renderPDF"
	pages, err := d.Render()
	if err != nil {
		return errors.Wrap(err, processName, "")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, processName, "")
	}
	if err = document.WritePDF(f, pages); err != nil {
		f.Close()
		return errors.Wrap(err, processName, "")
	}
	return f.Close()
}

// writeComposites writes the gray composite template of each class as the png file.
func writeComposites(c *classer.Classer, dir string) error {
	const processName = "writeComposites"
	templates, err := c.TemplatesFromComposites()
	if err != nil {
		return errors.Wrap(err, processName, "")
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, processName, "")
	}
	for i, img := range templates {
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("class_%05d.png", i)))
		if err != nil {
			return errors.Wrapf(err, processName, "class: %d", i)
		}
		if err = png.Encode(f, img); err != nil {
			f.Close()
			return errors.Wrapf(err, processName, "class: %d", i)
		}
		if err = f.Close(); err != nil {
			return errors.Wrapf(err, processName, "class: %d", i)
		}
	}
	common.Log.Info("[%s] %d composites written into '%s'", processName, len(templates), dir)
	return nil
}

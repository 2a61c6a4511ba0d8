package main

import (
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/moolekkari/jbclass/common"
	"github.com/moolekkari/jbclass/internal/jbig2/classer"
)

// printSummary writes the classification statistics with the localized numbers.
func printSummary(w io.Writer, c *classer.Classer, elapsed time.Duration) {
	p := message.NewPrinter(language.English)
	width, height := c.PageSize()
	p.Fprintf(w, "Classified on %s in %v\n", common.UtcTimeFormat(time.Now()), elapsed.Round(time.Millisecond))
	p.Fprintf(w, "  method:     %s (%s)\n", c.Settings().Method, c.Settings().Components)
	p.Fprintf(w, "  pages:      %d (%d x %d)\n", c.NumPages(), width, height)
	p.Fprintf(w, "  components: %d\n", c.NumInstances())
	p.Fprintf(w, "  classes:    %d\n", c.NumClasses())
	if c.NumClasses() > 0 {
		p.Fprintf(w, "  ratio:      %.2f components per class\n", float64(c.NumInstances())/float64(c.NumClasses()))
	}
}

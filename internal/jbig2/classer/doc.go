// Package classer implements the unsupervised classifier of the jbig2 symbols.
//
// The Classer takes the connected components (or characters, or words) of the
// binary page images and, page by page, groups the visually similar ones into
// classes. Each class is represented by a template bitmap. A component is
// compared with the templates of the similar size, found by the size index,
// using either the rank hausdorff test or the thresholded correlation; the first
// matching template wins, otherwise the component becomes a new template.
// For every component the Classer keeps the page number, the class and the
// placement where the template should be drawn to reproduce the page.
//
// The classification is sequential: the result depends on the order of the
// pages and of the components within the page, thus the Classer is not safe
// for concurrent use.
package classer

// Package document persists the result of the jbig2 symbol classification.
//
// The classification is stored in two companion files: the text data file with the
// per component records and the lossless template atlas image, where every class
// template is drawn in its own cell of the uniform lattice. The package can also
// render the pages back from the templates and export them as a PDF.
package document

// Package bitmap contains the bitmap data container for the
// binary images used by the jbig2 symbol classifier.
// This package contains also multiple binary image operational functions
// that extract the connected components, do the morphology changes, do raster
// operations and combine multiple instances into single image.
package bitmap

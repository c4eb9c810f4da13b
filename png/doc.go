// Package png decodes PNG 1.2 image streams into a raster of 8-bit RGB
// triples, the form a terminal renderer or any other downstream consumer
// needs. It reads the chunked container, verifies CRCs, concatenates and
// inflates the IDAT stream, reverses the per-scanline filters, and expands
// whatever combination of color type, bit depth, palette and transparency
// the stream declares.
//
// Interlaced (Adam7) images are detected and rejected. 16-bit samples are
// downscaled to 8 bits; re-encoding, gamma, and ICC profiles are out of
// scope.
package png

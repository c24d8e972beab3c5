// Package surface holds the raster the user draws on.
//
// A [Surface] wraps a gg drawing context filled with a white background. Ink is
// black, erasing paints white. [IsBlank] is the emptiness check that gates
// transmission; it short-circuits on the first non-background pixel.
package surface

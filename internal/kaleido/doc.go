// Package kaleido implements the symmetric stroke renderer: a persistent
// raster surface that every pointer movement is drawn into 2N times, once
// per rotation of 360/N degrees about the surface center and once more for
// each mirrored copy.
//
// The raster is the only state. Strokes are composited as they happen and
// no geometry is retained, so clearing or resizing the surface discards
// everything drawn before.
//
// The package has no window or GPU dependency. Hosts feed it pointer events
// and a ParamSource and read back pixels through Surface.
package kaleido

package kaleido

import (
	"image"
	"image/color"
	"io"
	"math"
	"slices"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa is the distance of the cubic Bézier control points from the end
// points of a quarter circle of radius 1.
const kappa = 0.5522847498307936

// degenerateLength is the length below which a segment is stroked as a dot.
const degenerateLength = 1e-9

// Surface is the persistent raster that strokes are composited into.
// Colors carry straight alpha both in and out; the backing image is NRGBA
// so a translucent background survives a clear or an export unchanged.
type Surface struct {
	img     *image.NRGBA
	rast    *vector.Rasterizer
	version uint64
}

// NewSurface allocates a width×height surface filled with bg. Non-positive
// dimensions are raised to 1.
func NewSurface(width, height int, bg color.RGBA) *Surface {
	s := &Surface{rast: vector.NewRasterizer(0, 0)}
	s.Resize(width, height, bg)
	return s
}

// Resize discards the current content, reallocates the raster at the new
// size and fills it with bg.
func (s *Surface) Resize(width, height int, bg color.RGBA) {
	width = max(width, 1)
	height = max(height, 1)
	s.img = image.NewNRGBA(image.Rect(0, 0, width, height))
	s.Fill(bg)
}

// Fill replaces every pixel with bg, byte for byte.
func (s *Surface) Fill(bg color.RGBA) {
	pix := s.img.Pix
	if len(pix) >= 4 {
		pix[0], pix[1], pix[2], pix[3] = bg.R, bg.G, bg.B, bg.A
		for n := 4; n < len(pix); n *= 2 {
			copy(pix[n:], pix[:n])
		}
	}
	s.version++
}

// StrokeLine strokes the device-space segment from→to with round caps.
// A zero-length segment leaves a round dot of the given width.
func (s *Surface) StrokeLine(from, to Point, width float64, c color.RGBA) {
	if width <= 0 || c.A == 0 {
		return
	}
	r := width / 2
	box := image.Rect(
		int(math.Floor(min(from.X, to.X)-r)),
		int(math.Floor(min(from.Y, to.Y)-r)),
		int(math.Ceil(max(from.X, to.X)+r)),
		int(math.Ceil(max(from.Y, to.Y)+r)),
	).Intersect(s.img.Bounds())
	if box.Empty() {
		return
	}

	s.rast.Reset(box.Dx(), box.Dy())
	s.rast.DrawOp = xdraw.Over
	off := Point{X: float64(box.Min.X), Y: float64(box.Min.Y)}
	capsule(s.rast, from.Sub(off), to.Sub(off), r)
	s.rast.Draw(s.img, box, image.NewUniform(color.NRGBA(c)), image.Point{})
	s.version++
}

// capsule adds the outline of a round-capped stroke of radius r around a→b.
func capsule(p *vector.Rasterizer, a, b Point, r float64) {
	v := b.Sub(a)
	l := v.Len()
	if l < degenerateLength {
		circle(p, a, r)
		return
	}
	d := v.Mul(1 / l)
	n := Point{X: -d.Y, Y: d.X}

	moveTo(p, a.Add(n.Mul(r)))
	lineTo(p, b.Add(n.Mul(r)))
	quarterArc(p, b, n, d, r)
	quarterArc(p, b, d, n.Mul(-1), r)
	lineTo(p, a.Sub(n.Mul(r)))
	quarterArc(p, a, n.Mul(-1), d.Mul(-1), r)
	quarterArc(p, a, d.Mul(-1), n, r)
	p.ClosePath()
}

func circle(p *vector.Rasterizer, c Point, r float64) {
	dirs := [4]Point{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}}
	moveTo(p, c.Add(dirs[0].Mul(r)))
	for i := range dirs {
		quarterArc(p, c, dirs[i], dirs[(i+1)%4], r)
	}
	p.ClosePath()
}

// quarterArc continues the path from c+u*r to c+v*r along the circle of
// radius r around c. u and v must be perpendicular unit vectors.
func quarterArc(p *vector.Rasterizer, c, u, v Point, r float64) {
	c1 := c.Add(u.Mul(r)).Add(v.Mul(r * kappa))
	c2 := c.Add(v.Mul(r)).Add(u.Mul(r * kappa))
	end := c.Add(v.Mul(r))
	p.CubeTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(end.X), float32(end.Y))
}

func moveTo(p *vector.Rasterizer, q Point) { p.MoveTo(float32(q.X), float32(q.Y)) }
func lineTo(p *vector.Rasterizer, q Point) { p.LineTo(float32(q.X), float32(q.Y)) }

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Bounds returns the pixel bounds, always anchored at (0, 0).
func (s *Surface) Bounds() image.Rectangle { return s.img.Rect }

// Center returns the device-space center of the surface.
func (s *Surface) Center() Point {
	return Point{X: float64(s.Width()) / 2, Y: float64(s.Height()) / 2}
}

// Version changes whenever the pixels change. Hosts use it to skip
// re-uploading an unchanged raster.
func (s *Surface) Version() uint64 { return s.version }

// At returns the straight-alpha color of pixel (x, y).
func (s *Surface) At(x, y int) color.RGBA {
	return color.RGBA(s.img.NRGBAAt(x, y))
}

// Pix returns the raw straight-alpha RGBA bytes, row-major with no padding.
// The slice aliases the surface and is only valid until the next mutation.
func (s *Surface) Pix() []byte { return s.img.Pix }

// AppendPremultiplied appends the raster to dst[:0] with alpha
// premultiplied, the layout GPU uploads expect, and returns the result.
func (s *Surface) AppendPremultiplied(dst []byte) []byte {
	dst = slices.Grow(dst[:0], len(s.img.Pix))[:len(s.img.Pix)]
	for i := 0; i+3 < len(s.img.Pix); i += 4 {
		a := uint32(s.img.Pix[i+3])
		dst[i] = premul(s.img.Pix[i], a)
		dst[i+1] = premul(s.img.Pix[i+1], a)
		dst[i+2] = premul(s.img.Pix[i+2], a)
		dst[i+3] = uint8(a)
	}
	return dst
}

func premul(c uint8, a uint32) uint8 {
	return uint8((uint32(c)*a + 127) / 255)
}

// Snapshot returns a deep copy of the raster.
func (s *Surface) Snapshot() *image.NRGBA {
	cp := image.NewNRGBA(s.img.Rect)
	copy(cp.Pix, s.img.Pix)
	return cp
}

// EncodePNG writes the raster to w as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return encodePNG(w, s.img)
}

package kaleido

import "math"

// Segment is one replicated copy of an input segment.
type Segment struct {
	// Index is the rotation step i in [0, N).
	Index int
	// Angle is the rotation in degrees, Index * 360/N.
	Angle float64
	// Mirrored is true for the copy flipped across the horizontal axis
	// before rotation.
	Mirrored bool
	// Transform maps the centered user frame to device space for this copy.
	Transform Matrix
	// From and To are the transformed endpoints in device space.
	From, To Point
}

// Replicate returns the 2N copies of the centered segment p0→p1 for a
// surface whose center lies at center. For each i in [0, N) the plain copy
// comes first, followed by its mirror copy. n below MinSymmetry is raised to
// MinSymmetry.
func Replicate(p0, p1 Point, n int, center Point) []Segment {
	return AppendReplicas(nil, p0, p1, n, center)
}

// AppendReplicas is Replicate appending into dst, so a caller on a hot path
// can reuse its buffer.
func AppendReplicas(dst []Segment, p0, p1 Point, n int, center Point) []Segment {
	if n < MinSymmetry {
		n = MinSymmetry
	}
	step := 360.0 / float64(n)
	base := TranslateMatrix(center.X, center.Y)
	for i := 0; i < n; i++ {
		angle := step * float64(i)
		rot := base.Rotate(angle * math.Pi / 180)
		mirror := rot.Scale(1, -1)
		dst = append(dst,
			Segment{Index: i, Angle: angle, Transform: rot, From: rot.Apply(p0), To: rot.Apply(p1)},
			Segment{Index: i, Angle: angle, Mirrored: true, Transform: mirror, From: mirror.Apply(p0), To: mirror.Apply(p1)},
		)
	}
	return dst
}

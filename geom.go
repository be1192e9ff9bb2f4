package halfedge

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// positionEpsilon is the absolute distance below which a point is considered
// to lie on a boundary edge when searching for crack splits.
const positionEpsilon = 1e-4

func dist(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// lerp returns a + t*(b-a).
func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// paramOnSegment projects p onto the segment [a, b] and returns the
// unclamped parameter together with the distance from p to the projection.
// A degenerate segment yields t == 0 and the distance to a.
func paramOnSegment(p, a, b r3.Vec) (t, d float64) {
	ab := r3.Sub(b, a)
	l2 := r3.Norm2(ab)
	if l2 == 0 {
		return 0, dist(p, a)
	}
	t = r3.Dot(r3.Sub(p, a), ab) / l2
	return t, dist(p, r3.Add(a, r3.Scale(t, ab)))
}

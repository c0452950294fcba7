// Package geom holds the 2D primitives shared by the level geometry packages:
// vectors, segment predicates and polygon helpers. Every predicate takes an
// explicit epsilon so callers can tune robustness per use site.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

// Vec2 is a point or direction in world space.
type Vec2 = mgl64.Vec2

const (
	// DefaultEpsilon is the tolerance used by predicates when the caller has no
	// better value.
	DefaultEpsilon = 1e-6
	// NormalizeEpsilon is the length below which a vector has no direction.
	NormalizeEpsilon = 1e-8
)

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Cross returns the z component of the 3D cross product of a and b.
func Cross(a, b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// Perp returns v rotated 90 degrees counter-clockwise.
func Perp(v Vec2) Vec2 {
	return Vec2{-v[1], v[0]}
}

// Normalize returns the unit vector of v. The second result is false when v is
// shorter than NormalizeEpsilon and therefore has no direction.
func Normalize(v Vec2) (Vec2, bool) {
	l := v.Len()
	if l < NormalizeEpsilon || math.IsNaN(l) {
		return Vec2{}, false
	}
	return v.Mul(1 / l), true
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// NearlyEqual reports whether a and b differ by at most tol.
func NearlyEqual(a, b, tol float64) bool {
	return scalar.EqualWithinAbs(a, b, tol)
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

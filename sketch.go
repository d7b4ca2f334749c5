/*
Package sketch implements points, chords and affine transformations for
drawing hand-sketched marks on charts.

A sketched mark is not drawn as a crisp outline but as a dense swarm of
semi-transparent chords whose endpoints are randomly perturbed. Package sketch
holds the shared vocabulary: pairs (2D points), chords and chord batches, and
the rotation of whole batches around a pivot. Samplers for the individual
primitives live in package marks, colour jitter in package palette and the
drawing glue in package plot.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package sketch

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sketch'
func tracer() tracing.Trace {
	return tracing.Select("sketch")
}

var (
	// ErrInvalidGeometry indicates a shape with non-positive extent or a
	// coordinate which is NaN/Inf.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrInvalidArgument indicates an out-of-range count, noise or style value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDegenerateSegment indicates a segment whose start and end coincide.
	ErrDegenerateSegment = errors.New("degenerate segment")
)

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// IsFinite is a predicate: is n neither NaN nor ±Inf ?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// === Pair Data Type ========================================================

// Pair is a 2D-point.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// IsFinite is a predicate: are both coordinates finite?
func (p Pair) IsFinite() bool {
	return !cmplx.IsNaN(p.C()) && !cmplx.IsInf(p.C())
}

// Equal compares two pairs, up to Epsilon.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Abs is the Euclidean length of p, seen as a vector.
func (p Pair) Abs() float64 {
	return cmplx.Abs(p.C())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return p + v
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	return Rotation(theta).Transform(p)
}

// RotatedAround returns a new pair rotated around v by theta (counterclockwise).
func (p Pair) RotatedAround(v Pair, theta float64) Pair {
	return RotationAround(v, theta).Transform(p)
}

// Lerp returns the point at time t on the line through p and q, i.e.
// p + t⋅(q-p). t is not restricted to [0,1].
func Lerp(p, q Pair, t float64) Pair {
	return P(p.X()+t*(q.X()-p.X()), p.Y()+t*(q.Y()-p.Y()))
}

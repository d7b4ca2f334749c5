package marks

import (
	"fmt"
	"math"
	"slices"

	"github.com/npillmayer/sketch"
)

// Rectangle is an axis-aligned rectangle. Other than for Ellipse, Width and
// Height are the full extents.
type Rectangle struct {
	center sketch.Pair
	width  float64
	height float64
}

// NewRectangle creates a rectangle. Width and height must be positive and
// finite, otherwise ErrInvalidGeometry is returned.
func NewRectangle(center sketch.Pair, width, height float64) (Rectangle, error) {
	if err := checkShape(center, width, height); err != nil {
		return Rectangle{}, err
	}
	return Rectangle{center: center, width: width, height: height}, nil
}

// Center of the rectangle.
func (r Rectangle) Center() sketch.Pair { return r.center }

// Width is the full horizontal extent.
func (r Rectangle) Width() float64 { return r.width }

// Height is the full vertical extent.
func (r Rectangle) Height() float64 { return r.height }

// Top of the rectangle.
func (r Rectangle) Top() float64 { return r.center.Y() + r.height/2 }

// Bottom of the rectangle.
func (r Rectangle) Bottom() float64 { return r.center.Y() - r.height/2 }

// Left edge of the rectangle.
func (r Rectangle) Left() float64 { return r.center.X() - r.width/2 }

// Right edge of the rectangle.
func (r Rectangle) Right() float64 { return r.center.X() + r.width/2 }

// Contains is a predicate: is p strictly inside the rectangle?
func (r Rectangle) Contains(p sketch.Pair) bool {
	return r.Left() < p.X() && p.X() < r.Right() && r.Bottom() < p.Y() && p.Y() < r.Top()
}

func (r Rectangle) String() string {
	return fmt.Sprintf("rectangle(%s, %g, %g)", r.center, r.width, r.height)
}

// circumscribed is the ellipse with the same center, width and height. Its
// semi-axes are the full extents of r, thus it contains r.
func (r Rectangle) circumscribed() Ellipse {
	return Ellipse{center: r.center, width: r.width, height: r.height}
}

// SampleRectangle generates up to n chords of r.
//
// Raw chords are sampled from the circumscribed ellipse without fuzz and
// without rotation. For every raw chord P0→P1, taken as an infinite line
// P0 + t⋅(P1-P0), the times of crossing the four edge lines are sorted.
// The second-smallest time is where the line enters the rectangle, if it
// crosses it at all; chords whose entry point is not strictly inside are
// dropped. For the others, fuzz noise is added to the sorted times, and
// the chord is cut to the second and third time, the entry and exit
// crossings.
//
// The result has k ≤ n chords. Options may rotate the batch.
func SampleRectangle(r Rectangle, n int, fuzz float64, rnd Rand, opts ...Option) (sketch.Batch, error) {
	if err := checkSampling(n, fuzz); err != nil {
		return nil, err
	}
	raw, err := SampleEllipse(r.circumscribed(), n, 0, rnd)
	if err != nil {
		return nil, err
	}
	b := make(sketch.Batch, 0, n)
	for _, c := range raw {
		times := r.crossings(c)
		entry := times[1]
		if math.IsInf(entry, 0) {
			continue
		}
		if !r.Contains(sketch.Lerp(c.Start, c.End, entry+_epsilon)) {
			continue
		}
		for i := range times {
			times[i] += fuzzScale * fuzz * rnd.NormFloat64()
		}
		b = append(b, sketch.C(
			sketch.Lerp(c.Start, c.End, times[1]),
			sketch.Lerp(c.Start, c.End, times[2]),
		))
	}
	tracer().Debugf("kept %d of %d chords for %s", len(b), n, r)
	return collect(opts).rotated(b, r.center), nil
}

// crossings returns the sorted times at which the line through c crosses
// the lines x = left, x = right, y = top, y = bottom, in this order before
// sorting.
func (r Rectangle) crossings(c sketch.Chord) [4]float64 {
	x0, y0 := c.Start.F()
	dx, dy := (c.End - c.Start).F()
	times := [4]float64{
		crossing(r.Left()-x0, dx),
		crossing(r.Right()-x0, dx),
		crossing(r.Top()-y0, dy),
		crossing(r.Bottom()-y0, dy),
	}
	slices.Sort(times[:])
	return times
}

// crossing is num/denom for a line crossing an edge line. A line parallel to
// the edge (denom = 0) never crosses it; it gets -Inf or +Inf by the side of
// the edge it lies on, +Inf if it lies on the edge, but never NaN.
func crossing(num, denom float64) float64 {
	if denom == 0 {
		if num < 0 {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	return num / denom
}

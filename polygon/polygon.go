/*
Package polygon deals with the footprints of sketched marks.

A footprint is the polygonal area a mark may cover: a k-gon approximating an
ellipse, a box for a rectangle, a rotated strip for a line segment. The union
of all footprints of a plot gives the area a canvas has to show. Polygon
clipping is done by github.com/akavel/polyclip-go.

Polygons are built with a builder pattern:

	pg := NullPolygon().Knot(sketch.P(0, 0)).Knot(sketch.P(1, 3)).Knot(sketch.P(3, 0)).Cycle()

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/sketch"
	"github.com/npillmayer/sketch/marks"
)

// L traces to the polygon tracer.
func L() tracing.Trace {
	return tracing.Select("sketch.polygon")
}

// Polygon is a set of closed contours. A polygon under construction has a
// single open contour, which is closed by Cycle.
type Polygon struct {
	pg     polyclip.Polygon
	open   polyclip.Contour
	closed bool
}

// NullPolygon creates an empty polygon, to be extended by Knot.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a vertex to the open contour. Part of builder functionality.
func (p *Polygon) Knot(pr sketch.Pair) *Polygon {
	if p.closed {
		panic("cannot add knot to closed polygon")
	}
	p.open = append(p.open, pt(pr))
	return p
}

// Cycle closes the open contour. Part of builder functionality.
func (p *Polygon) Cycle() *Polygon {
	if len(p.open) > 0 {
		p.pg = append(p.pg, p.open)
		p.open = nil
	}
	p.closed = true
	return p
}

// N is the number of vertices, over all contours.
func (p *Polygon) N() int {
	n := len(p.open)
	for _, c := range p.pg {
		n += len(c)
	}
	return n
}

// Contours is the number of closed contours.
func (p *Polygon) Contours() int {
	return len(p.pg)
}

// Contour returns the vertices of the i-th closed contour.
func (p *Polygon) Contour(i int) []sketch.Pair {
	c := p.pg[i]
	r := make([]sketch.Pair, len(c))
	for j, v := range c {
		r[j] = sketch.P(v.X, v.Y)
	}
	return r
}

// IsEmpty is a predicate: has the polygon no closed contour?
func (p *Polygon) IsEmpty() bool {
	return len(p.pg) == 0
}

// Box creates a rectangular polygon from two opposite corners.
func Box(a, b sketch.Pair) *Polygon {
	x0, x1 := math.Min(a.X(), b.X()), math.Max(a.X(), b.X())
	y0, y1 := math.Min(a.Y(), b.Y()), math.Max(a.Y(), b.Y())
	return NullPolygon().
		Knot(sketch.P(x0, y0)).Knot(sketch.P(x1, y0)).
		Knot(sketch.P(x1, y1)).Knot(sketch.P(x0, y1)).Cycle()
}

// BoundingBox returns the lower-left and upper-right corner of the
// smallest axis-aligned box containing p. An empty polygon has a box
// collapsed to the origin.
func (p *Polygon) BoundingBox() (sketch.Pair, sketch.Pair) {
	if p.IsEmpty() {
		return sketch.Origin, sketch.Origin
	}
	bb := p.pg.BoundingBox()
	return sketch.P(bb.Min.X, bb.Min.Y), sketch.P(bb.Max.X, bb.Max.Y)
}

// Rotated returns a copy of p with every vertex rotated counter-clockwise by
// theta around pivot.
func (p *Polygon) Rotated(pivot sketch.Pair, theta float64) *Polygon {
	r := NullPolygon().Cycle()
	for i := range p.pg {
		pts := sketch.Rotate(p.Contour(i), pivot, theta)
		c := make(polyclip.Contour, len(pts))
		for j, v := range pts {
			c[j] = pt(v)
		}
		r.pg = append(r.pg, c)
	}
	return r
}

// Union returns the union of polygons as a new polygon.
func Union(polygons ...*Polygon) *Polygon {
	r := NullPolygon().Cycle()
	for _, p := range polygons {
		if p == nil || p.IsEmpty() {
			continue
		}
		if r.IsEmpty() {
			r.pg = p.pg.Clone()
			continue
		}
		r.pg = r.pg.Construct(polyclip.UNION, p.pg)
	}
	L().Debugf("union of %d polygons has %d contours", len(polygons), r.Contours())
	return r
}

// Intersection returns the intersection of p and q as a new polygon.
func Intersection(p, q *Polygon) *Polygon {
	r := NullPolygon().Cycle()
	if p.IsEmpty() || q.IsEmpty() {
		return r
	}
	r.pg = p.pg.Construct(polyclip.INTERSECTION, q.pg)
	return r
}

// AsString returns a polygon as a (debugging) string.
func AsString(p *Polygon) string {
	var sb strings.Builder
	write := func(c polyclip.Contour, cycle bool) {
		for i, v := range c {
			if i > 0 {
				sb.WriteString(" -- ")
			}
			fmt.Fprintf(&sb, "(%g,%g)", v.X, v.Y)
		}
		if cycle {
			sb.WriteString(" -- cycle")
		}
	}
	for i, c := range p.pg {
		if i > 0 {
			sb.WriteString(" & ")
		}
		write(c, true)
	}
	if len(p.open) > 0 {
		if len(p.pg) > 0 {
			sb.WriteString(" & ")
		}
		write(p.open, false)
	}
	return sb.String()
}

func pt(p sketch.Pair) polyclip.Point {
	return polyclip.Point{X: p.X(), Y: p.Y()}
}

// === Footprints of marks ===================================================

// OfRectangle is the box of a rectangle.
func OfRectangle(r marks.Rectangle) *Polygon {
	return Box(sketch.P(r.Left(), r.Bottom()), sketch.P(r.Right(), r.Top()))
}

// OfEllipse approximates an ellipse by a regular k-gon which contains it.
// k is at least 3.
func OfEllipse(e marks.Ellipse, k int) *Polygon {
	k = max(k, 3)
	// scale the vertices out so that the edges touch the ellipse
	s := 1 / math.Cos(math.Pi/float64(k))
	c := e.Center()
	pg := NullPolygon()
	for i := 0; i < k; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(k))
		pg.Knot(sketch.P(c.X()+s*e.Width()*cos, c.Y()+s*e.Height()*sin))
	}
	return pg.Cycle()
}

// OfSegment is the strip of the given width around a segment, the area
// covered by SampleSegment.
func OfSegment(s marks.Segment, width float64) *Polygon {
	dir := (s.End() - s.Start()).Scaled(1 / s.Length())
	n := sketch.P(-dir.Y(), dir.X()).Scaled(width / 2)
	return NullPolygon().
		Knot(s.Start() - n).Knot(s.End() - n).
		Knot(s.End() + n).Knot(s.Start() + n).Cycle()
}

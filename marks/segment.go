package marks

import (
	"fmt"
	"math"

	"github.com/npillmayer/sketch"
)

// Segment is a straight line segment, parametrized by its start and end
// point.
type Segment struct {
	start, end sketch.Pair
	length     float64
	theta      float64
}

// NewSegment creates a segment from start to end. If start and end
// coincide, the direction is undefined and ErrDegenerateSegment is
// returned.
func NewSegment(start, end sketch.Pair) (Segment, error) {
	if !start.IsFinite() || !end.IsFinite() {
		return Segment{}, fmt.Errorf("%w: segment %s--%s is not finite",
			sketch.ErrInvalidGeometry, start, end)
	}
	tangent := end - start
	length := tangent.Abs()
	if length == 0 {
		return Segment{}, fmt.Errorf("%w: at %s", sketch.ErrDegenerateSegment, start)
	}
	dx, dy := tangent.F()
	// Horizontal segments get π/2. This only covers dy = 0 and is not a
	// rule for other degenerate directions.
	theta := math.Pi / 2
	if dy != 0 {
		theta = math.Atan(dx / dy)
	}
	return Segment{start: start, end: end, length: length, theta: theta}, nil
}

// Start point of the segment.
func (s Segment) Start() sketch.Pair { return s.start }

// End point of the segment.
func (s Segment) End() sketch.Pair { return s.end }

// Center is the midpoint of the segment.
func (s Segment) Center() sketch.Pair { return s.start + (s.end-s.start)/2 }

// Length is the Euclidean distance from start to end.
func (s Segment) Length() float64 { return s.length }

// Theta is the clockwise angle from the positive y-axis to the segment's
// direction, atan(dx/dy), in (-π/2, π/2]. It is π/2 for horizontal
// segments, where dy = 0.
func (s Segment) Theta() float64 { return s.theta }

func (s Segment) String() string {
	return fmt.Sprintf("segment(%s, %s)", s.start, s.end)
}

// Strip is the rectangle of the given width, centered at the segment's
// center, with height equal to the segment's length. Rotated clockwise by
// Theta around the center, it covers the segment.
func (s Segment) Strip(width float64) (Rectangle, error) {
	return NewRectangle(s.Center(), width, s.length)
}

// SampleSegment generates chords of a line segment of the given width.
// The segment is drawn as its strip, a thin rectangle which is rotated to
// the segment's direction after sampling.
func SampleSegment(s Segment, n int, fuzz, width float64, rnd Rand) (sketch.Batch, error) {
	strip, err := s.Strip(width)
	if err != nil {
		return nil, err
	}
	return SampleRectangle(strip, n, fuzz, rnd, RotateAround(-s.theta, s.Center()))
}

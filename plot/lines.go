package plot

import (
	"fmt"

	"github.com/npillmayer/sketch"
	"github.com/npillmayer/sketch/marks"
)

// Polyline sketches a line through points. Every pair of consecutive points
// is drawn as an independent segment, so joints may show gaps or overlaps.
// k points result in k-1 segments, each with st.N chords. All segments are
// checked before the first one is drawn; an invalid segment leaves the canvas
// untouched.
func Polyline(c Canvas, points []sketch.Pair, st Style, rnd Rand) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: poly-line needs at least 2 points, has %d",
			sketch.ErrInvalidArgument, len(points))
	}
	segs := make([]marks.Segment, len(points)-1)
	for i := range segs {
		seg, err := marks.NewSegment(points[i], points[i+1])
		if err != nil {
			return fmt.Errorf("poly-line segment %d: %w", i, err)
		}
		segs[i] = seg
	}
	for _, seg := range segs {
		if err := DrawSegment(c, seg, st, rnd); err != nil {
			return err
		}
	}
	tracer().Debugf("drew poly-line of %d segments", len(points)-1)
	return nil
}

// Line sketches a poly-line through data points (x[i], y[i]).
func Line(c Canvas, x, y []float64, st Style, rnd Rand) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d x-values, but %d y-values",
			sketch.ErrInvalidArgument, len(x), len(y))
	}
	points := make([]sketch.Pair, len(x))
	for i := range x {
		points[i] = sketch.P(x[i], y[i])
	}
	return Polyline(c, points, st, rnd)
}

// VLine sketches a vertical line at x from ymin to ymax, as a poly-line
// with knots every st.Width units.
func VLine(c Canvas, x, ymin, ymax float64, st Style, rnd Rand) error {
	ys, err := Grid(ymin, ymax, st.Width)
	if err != nil {
		return err
	}
	points := make([]sketch.Pair, len(ys))
	for i, y := range ys {
		points[i] = sketch.P(x, y)
	}
	return Polyline(c, points, st, rnd)
}

// HLine sketches a horizontal line at y from xmin to xmax, as a poly-line
// with knots every st.Width units.
func HLine(c Canvas, y, xmin, xmax float64, st Style, rnd Rand) error {
	xs, err := Grid(xmin, xmax, st.Width)
	if err != nil {
		return err
	}
	points := make([]sketch.Pair, len(xs))
	for i, x := range xs {
		points[i] = sketch.P(x, y)
	}
	return Polyline(c, points, st, rnd)
}

// MaxGridPoints limits the number of knots of a grid.
const MaxGridPoints = 1_000_000

// Grid returns lo, lo+step, lo+2⋅step, … up to, but excluding, hi,
// followed by hi. Consecutive values are step apart, except for the last
// two, which are at most step apart.
func Grid(lo, hi, step float64) ([]float64, error) {
	if !sketch.IsFinite(step) || step <= 0 {
		return nil, fmt.Errorf("%w: grid step %g must be positive", sketch.ErrInvalidArgument, step)
	}
	if !sketch.IsFinite(lo) || !sketch.IsFinite(hi) || hi <= lo {
		return nil, fmt.Errorf("%w: empty range [%g,%g]", sketch.ErrInvalidArgument, lo, hi)
	}
	if (hi-lo)/step > MaxGridPoints {
		return nil, fmt.Errorf("%w: grid step %g too small for range [%g,%g]",
			sketch.ErrInvalidArgument, step, lo, hi)
	}
	var g []float64
	for i := 0; ; i++ {
		v := lo + float64(i)*step
		if v >= hi-sketch.Epsilon {
			break
		}
		g = append(g, v)
	}
	return append(g, hi), nil
}

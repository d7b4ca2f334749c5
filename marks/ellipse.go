package marks

import (
	"fmt"
	"math"

	"github.com/npillmayer/sketch"
)

// Ellipse is an axis-aligned ellipse. Width and Height are the lengths of
// the semi-axes, thus a circle of radius r has Width = Height = r.
type Ellipse struct {
	center sketch.Pair
	width  float64
	height float64
}

// NewEllipse creates an ellipse. Width and height must be positive and
// finite, otherwise ErrInvalidGeometry is returned.
func NewEllipse(center sketch.Pair, width, height float64) (Ellipse, error) {
	if err := checkShape(center, width, height); err != nil {
		return Ellipse{}, err
	}
	return Ellipse{center: center, width: width, height: height}, nil
}

// Center of the ellipse.
func (e Ellipse) Center() sketch.Pair { return e.center }

// Width is the horizontal semi-axis.
func (e Ellipse) Width() float64 { return e.width }

// Height is the vertical semi-axis.
func (e Ellipse) Height() float64 { return e.height }

func (e Ellipse) String() string {
	return fmt.Sprintf("ellipse(%s, %g, %g)", e.center, e.width, e.height)
}

func checkShape(center sketch.Pair, width, height float64) error {
	if !center.IsFinite() {
		return fmt.Errorf("%w: center %s is not finite", sketch.ErrInvalidGeometry, center)
	}
	if !sketch.IsFinite(width) || width <= 0 {
		return fmt.Errorf("%w: width %g must be positive", sketch.ErrInvalidGeometry, width)
	}
	if !sketch.IsFinite(height) || height <= 0 {
		return fmt.Errorf("%w: height %g must be positive", sketch.ErrInvalidGeometry, height)
	}
	return nil
}

func checkSampling(n int, fuzz float64) error {
	if n < 0 {
		return fmt.Errorf("%w: chord count %d < 0", sketch.ErrInvalidArgument, n)
	}
	if !sketch.IsFinite(fuzz) || fuzz < 0 {
		return fmt.Errorf("%w: fuzz %g must be non-negative", sketch.ErrInvalidArgument, fuzz)
	}
	return nil
}

// SampleEllipse generates n chords of e. Both endpoints of a chord are at
// independent angles, uniform on [0,2π). Each endpoint is computed from its
// own noisy copy of the semi-axes,
//
//	(cx + (w + nw)⋅cos θ, cy + (h + nh)⋅sin θ),   nw, nh ~ 0.001⋅fuzz⋅N(0,1)
//
// Options may rotate the batch. n = 0 yields an empty batch.
func SampleEllipse(e Ellipse, n int, fuzz float64, rnd Rand, opts ...Option) (sketch.Batch, error) {
	if err := checkSampling(n, fuzz); err != nil {
		return nil, err
	}
	b := make(sketch.Batch, n)
	for i := range b {
		b[i] = sketch.C(e.boundaryPoint(fuzz, rnd), e.boundaryPoint(fuzz, rnd))
	}
	tracer().Debugf("sampled %d chords of %s, fuzz %g", n, e, fuzz)
	return collect(opts).rotated(b, e.center), nil
}

func (e Ellipse) boundaryPoint(fuzz float64, rnd Rand) sketch.Pair {
	theta := 2 * math.Pi * rnd.Float64()
	w := e.width + fuzzScale*fuzz*rnd.NormFloat64()
	h := e.height + fuzzScale*fuzz*rnd.NormFloat64()
	sin, cos := math.Sincos(theta)
	return sketch.P(e.center.X()+w*cos, e.center.Y()+h*sin)
}

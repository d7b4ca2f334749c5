/*
Package marks samples the chords of sketched circles, ellipses, rectangles
and line segments.

A sketched mark consists of many chords. For an ellipse, every chord
connects two points on (or, with fuzz, near) the boundary, each at an
angle drawn uniformly from [0,2π). For a circle this is the same as picking
points uniformly on the circumference; for other ellipses it is not, the
sampling is uniform in the parametric angle, not in arc length.

Rectangles are sampled by inscribing them into the ellipse with the same
center and the same width and height. Every raw chord of that ellipse is
taken as an infinite line; lines not crossing the interior of the rectangle
are thrown away, and the remaining ones are cut at the two points where they
enter and leave the rectangle:

	        ____________
	      /   ·      ·   \
	     |  +-·------·-+  |
	     |  | ·      · |  |     only the parts inside the box survive
	     |  +-·------·-+  |
	      \___·______·___/

A line segment is a very thin rectangle, as long as the segment, rotated to
the segment's direction.

All samplers take a Rand, so batches are reproducible for a seeded
generator:

	rnd := rand.New(rand.NewPCG(1, 2))
	circle, _ := marks.NewEllipse(sketch.P(0, 0), 1, 1)
	chords, err := marks.SampleEllipse(circle, 3000, 3, rnd)

Fuzz is the magnitude of the Gaussian noise moving chord endpoints in and
out; the noise has standard deviation 0.001⋅fuzz.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package marks

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/sketch"
)

// tracer writes to trace with key 'sketch.marks'
func tracer() tracing.Trace {
	return tracing.Select("sketch.marks")
}

// fuzzScale converts a fuzz value to the standard deviation of endpoint noise.
const fuzzScale = 0.001

// _epsilon pushes a computed entry point strictly into the rectangle.
const _epsilon = 1e-7

// Rand is the source of randomness for chord sampling. *rand.Rand of
// math/rand/v2 implements it.
type Rand interface {
	Float64() float64
	NormFloat64() float64
}

// Option configures a sampling call.
type Option func(*options)

type options struct {
	rotate bool
	theta  float64
	pivot  *sketch.Pair
}

// Rotate rotates the sampled chords counter-clockwise by theta around the
// center of the mark.
func Rotate(theta float64) Option {
	return func(o *options) {
		o.rotate = true
		o.theta = theta
	}
}

// RotateAround rotates the sampled chords counter-clockwise by theta around
// pivot.
func RotateAround(theta float64, pivot sketch.Pair) Option {
	return func(o *options) {
		o.rotate = true
		o.theta = theta
		o.pivot = &pivot
	}
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// rotated applies a configured rotation, falling back to center as pivot.
func (o options) rotated(b sketch.Batch, center sketch.Pair) sketch.Batch {
	if !o.rotate {
		return b
	}
	pivot := center
	if o.pivot != nil {
		pivot = *o.pivot
	}
	return b.Rotated(pivot, o.theta)
}

// Package palette produces the stroke colors of a sketch.
//
// Every chord of a sketched mark gets its own color, jittered around a base
// color. This produces the visual "graininess" of a swarm of chords. Opacity
// is not jittered; it is set uniformly for a whole batch with WithAlpha.
package palette

import (
	"fmt"
	"image/color"
	"math"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/sketch"
)

// tracer writes to trace with key 'sketch.palette'
func tracer() tracing.Trace {
	return tracing.Select("sketch.palette")
}

// DefaultNoise is the default jitter amplitude, in 0–255 channel units.
const DefaultNoise = 50

// MaxNoise is the largest jitter amplitude. Larger offsets would clamp
// every channel anyway.
const MaxNoise = 255

// Rand is the source of randomness for color jitter. *rand.Rand of
// math/rand/v2 implements it.
type Rand interface {
	IntN(n int) int
}

// RGBA is a non-premultiplied color with channels in [0,1].
type RGBA struct {
	R, G, B, A float64
}

// Gray returns an opaque gray of level v.
func Gray(v float64) RGBA {
	return RGBA{v, v, v, 1}
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%.3f,%.3f,%.3f,%.3f)", c.R, c.G, c.B, c.A)
}

// NRGBA converts c to an 8-bit non-premultiplied color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// FromColor converts any image/color color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// Valid is a predicate: are all channels in [0,1]?
func (c RGBA) Valid() bool {
	for _, v := range [...]float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return true
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Jitter produces count colors near base. Each RGB channel of each output
// color is moved, in the 0–255 domain, by an independent integer offset
// uniformly drawn from [-noise, noise), then clamped to [0,255]. Alpha is
// copied from base.
//
// count = 0 yields an empty batch. Negative count, and noise outside
// [0, MaxNoise], is an ErrInvalidArgument.
func Jitter(base RGBA, count, noise int, rnd Rand) ([]RGBA, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: color count %d < 0", sketch.ErrInvalidArgument, count)
	}
	if noise < 0 || noise > MaxNoise {
		return nil, fmt.Errorf("%w: color noise %d not in [0,%d]", sketch.ErrInvalidArgument, noise, MaxNoise)
	}
	colors := make([]RGBA, count)
	if noise == 0 {
		for i := range colors {
			colors[i] = base
		}
		return colors, nil
	}
	r, g, b := base.R*255, base.G*255, base.B*255
	offset := func() float64 {
		return float64(rnd.IntN(2*noise) - noise)
	}
	for i := range colors {
		colors[i] = RGBA{
			R: clamp(r+offset(), 0, 255) / 255,
			G: clamp(g+offset(), 0, 255) / 255,
			B: clamp(b+offset(), 0, 255) / 255,
			A: base.A,
		}
	}
	tracer().Debugf("jittered %d colors around %s, noise %d", count, base, noise)
	return colors, nil
}

// WithAlpha returns a copy of colors with every alpha set to alpha.
func WithAlpha(colors []RGBA, alpha float64) ([]RGBA, error) {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: alpha %g not in [0,1]", sketch.ErrInvalidArgument, alpha)
	}
	r := make([]RGBA, len(colors))
	for i, c := range colors {
		c.A = alpha
		r[i] = c
	}
	return r, nil
}

// Package plot draws sketched marks onto a canvas.
//
// Drawing a mark means sampling its chords (package marks), jittering one
// color per chord (package palette), setting a uniform opacity and handing
// everything to a Canvas. Package plot never rasterizes itself.
package plot

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/sketch"
	"github.com/npillmayer/sketch/marks"
	"github.com/npillmayer/sketch/palette"
)

// tracer writes to trace with key 'sketch.plot'
func tracer() tracing.Trace {
	return tracing.Select("sketch.plot")
}

// Canvas is the rendering collaborator. It draws every chord as a straight
// stroke of the given line width, with the color of the same index.
type Canvas interface {
	DrawStrokes(chords sketch.Batch, colors []palette.RGBA, lineWidth float64) error
}

// Rand is the source of randomness for both chord sampling and color
// jitter. *rand.Rand of math/rand/v2 implements it.
type Rand interface {
	marks.Rand
	palette.Rand
}

// Style collects the pass-through parameters of a mark.
type Style struct {
	Color     palette.RGBA // base color, jittered per chord
	LineWidth float64      // stroke width of every chord ('lw')
	N         int          // number of chords to sample
	Fuzz      float64      // raggedness of chord endpoints
	Alpha     float64      // uniform opacity, applied after jitter
	Noise     int          // color jitter amplitude in 0–255 units
	Width     float64      // thickness of segments and lines
	Rot       *float64     // optional rotation, radians, counter-clockwise
	RotPoint  *sketch.Pair // pivot of the rotation; nil means the mark's center
}

// EllipseStyle is the default style for circles and ellipses.
func EllipseStyle(color palette.RGBA) Style {
	return Style{
		Color:     color,
		LineWidth: 2,
		N:         30000,
		Fuzz:      3,
		Alpha:     0.05,
		Noise:     palette.DefaultNoise,
	}
}

// RectangleStyle is the default style for rectangles.
func RectangleStyle(color palette.RGBA) Style {
	return EllipseStyle(color)
}

// SegmentStyle is the default style for a single line segment.
func SegmentStyle(color palette.RGBA) Style {
	return Style{
		Color:     color,
		LineWidth: 1,
		N:         1000,
		Fuzz:      4,
		Alpha:     0.2,
		Noise:     palette.DefaultNoise,
		Width:     0.02,
	}
}

// LineStyle is the default style for poly-lines through data points.
// N is the number of chords per segment.
func LineStyle(color palette.RGBA) Style {
	return Style{
		Color:     color,
		LineWidth: 0.05,
		N:         150,
		Fuzz:      100,
		Alpha:     0.2,
		Noise:     palette.DefaultNoise,
		Width:     0.02,
	}
}

// RuleStyle is the default style for horizontal and vertical lines. Its
// short segments are less ragged than those of LineStyle.
func RuleStyle(color palette.RGBA) Style {
	st := LineStyle(color)
	st.Fuzz = 5
	return st
}

// Rotated returns a copy of st rotating the mark by theta around its center.
func (st Style) Rotated(theta float64) Style {
	st.Rot = &theta
	st.RotPoint = nil
	return st
}

// RotatedAround returns a copy of st rotating the mark by theta around pivot.
func (st Style) RotatedAround(theta float64, pivot sketch.Pair) Style {
	st.Rot = &theta
	st.RotPoint = &pivot
	return st
}

func (st Style) options() []marks.Option {
	if st.Rot == nil {
		return nil
	}
	if st.RotPoint == nil {
		return []marks.Option{marks.Rotate(*st.Rot)}
	}
	return []marks.Option{marks.RotateAround(*st.Rot, *st.RotPoint)}
}

// Validate checks the drawing parameters of st. Sampling parameters (N,
// Fuzz, Width) are checked by the samplers.
func (st Style) Validate() error {
	if !st.Color.Valid() {
		return fmt.Errorf("%w: color %s", sketch.ErrInvalidArgument, st.Color)
	}
	if !sketch.IsFinite(st.LineWidth) || st.LineWidth <= 0 {
		return fmt.Errorf("%w: line width %g must be positive", sketch.ErrInvalidArgument, st.LineWidth)
	}
	if st.Alpha < 0 || st.Alpha > 1 {
		return fmt.Errorf("%w: alpha %g not in [0,1]", sketch.ErrInvalidArgument, st.Alpha)
	}
	if st.Noise < 0 || st.Noise > palette.MaxNoise {
		return fmt.Errorf("%w: color noise %d not in [0,%d]", sketch.ErrInvalidArgument, st.Noise, palette.MaxNoise)
	}
	return nil
}

// Colors returns n jittered colors with the style's alpha.
func (st Style) Colors(n int, rnd Rand) ([]palette.RGBA, error) {
	colors, err := palette.Jitter(st.Color, n, st.Noise, rnd)
	if err != nil {
		return nil, err
	}
	return palette.WithAlpha(colors, st.Alpha)
}

// Stroke colors a batch and hands it to the canvas.
func Stroke(c Canvas, b sketch.Batch, st Style, rnd Rand) error {
	if err := st.Validate(); err != nil {
		return err
	}
	colors, err := st.Colors(len(b), rnd)
	if err != nil {
		return err
	}
	return c.DrawStrokes(b, colors, st.LineWidth)
}

// DrawEllipse sketches an ellipse.
func DrawEllipse(c Canvas, e marks.Ellipse, st Style, rnd Rand) error {
	if err := st.Validate(); err != nil {
		return err
	}
	b, err := marks.SampleEllipse(e, st.N, st.Fuzz, rnd, st.options()...)
	if err != nil {
		return err
	}
	tracer().Debugf("drawing %s with %d chords", e, len(b))
	return Stroke(c, b, st, rnd)
}

// DrawRectangle sketches a rectangle.
func DrawRectangle(c Canvas, r marks.Rectangle, st Style, rnd Rand) error {
	if err := st.Validate(); err != nil {
		return err
	}
	b, err := marks.SampleRectangle(r, st.N, st.Fuzz, rnd, st.options()...)
	if err != nil {
		return err
	}
	tracer().Debugf("drawing %s with %d chords", r, len(b))
	return Stroke(c, b, st, rnd)
}

// DrawSegment sketches a line segment of thickness st.Width. Rotation
// parameters of st are ignored; a segment is oriented by its end points.
func DrawSegment(c Canvas, s marks.Segment, st Style, rnd Rand) error {
	if err := st.Validate(); err != nil {
		return err
	}
	b, err := marks.SampleSegment(s, st.N, st.Fuzz, st.Width, rnd)
	if err != nil {
		return err
	}
	return Stroke(c, b, st, rnd)
}

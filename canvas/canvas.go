// Package canvas provides drawing surfaces for sketched marks.
//
// Every surface implements plot.Canvas. Chart coordinates are mapped to
// device pixels by a Viewport; line widths are given in device pixels.
//
//   - Recorder keeps all strokes in memory.
//   - Raster paints anti-aliased strokes into an image, to be saved as PNG.
//   - SVG writes one <line> element per chord.
package canvas

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/sketch"
	"github.com/npillmayer/sketch/palette"
	"github.com/npillmayer/sketch/plot"
)

// tracer writes to trace with key 'sketch.canvas'
func tracer() tracing.Trace {
	return tracing.Select("sketch.canvas")
}

// Viewport maps the chart area [Min,Max] onto a pixel grid of Width×Height
// pixels. Chart y grows upwards, device y downwards.
type Viewport struct {
	Min, Max      sketch.Pair
	Width, Height int
}

// NewViewport creates a viewport showing the area spanned by corners a and
// b on a w×h pixel grid.
func NewViewport(a, b sketch.Pair, w, h int) (Viewport, error) {
	lo := sketch.P(math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y()))
	hi := sketch.P(math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()))
	if !lo.IsFinite() || !hi.IsFinite() || hi.X() <= lo.X() || hi.Y() <= lo.Y() {
		return Viewport{}, fmt.Errorf("%w: empty viewport %s--%s", sketch.ErrInvalidGeometry, a, b)
	}
	if w <= 0 || h <= 0 {
		return Viewport{}, fmt.Errorf("%w: canvas size %d×%d", sketch.ErrInvalidArgument, w, h)
	}
	return Viewport{Min: lo, Max: hi, Width: w, Height: h}, nil
}

// Padded returns a viewport enlarged by frac of its extent on every side.
func (v Viewport) Padded(frac float64) Viewport {
	d := (v.Max - v.Min).Scaled(frac)
	v.Min -= d
	v.Max += d
	return v
}

// Device maps a chart point to device coordinates.
func (v Viewport) Device(p sketch.Pair) (float64, float64) {
	sx := float64(v.Width) / (v.Max.X() - v.Min.X())
	sy := float64(v.Height) / (v.Max.Y() - v.Min.Y())
	return (p.X() - v.Min.X()) * sx, (v.Max.Y() - p.Y()) * sy
}

func checkAligned(chords sketch.Batch, colors []palette.RGBA, lineWidth float64) error {
	if len(chords) != len(colors) {
		return fmt.Errorf("%w: %d chords, but %d colors", sketch.ErrInvalidArgument, len(chords), len(colors))
	}
	if !sketch.IsFinite(lineWidth) || lineWidth <= 0 {
		return fmt.Errorf("%w: line width %g", sketch.ErrInvalidArgument, lineWidth)
	}
	return nil
}

// Strokes is one call to DrawStrokes.
type Strokes struct {
	Chords    sketch.Batch
	Colors    []palette.RGBA
	LineWidth float64
}

var (
	_ plot.Canvas = (*Recorder)(nil)
	_ plot.Canvas = (*Raster)(nil)
	_ plot.Canvas = (*SVG)(nil)
)

// Recorder is a canvas which records every call to DrawStrokes.
type Recorder struct {
	Calls []Strokes
}

// DrawStrokes records chords and colors.
func (r *Recorder) DrawStrokes(chords sketch.Batch, colors []palette.RGBA, lineWidth float64) error {
	if err := checkAligned(chords, colors, lineWidth); err != nil {
		return err
	}
	r.Calls = append(r.Calls, Strokes{Chords: chords, Colors: colors, LineWidth: lineWidth})
	return nil
}

// Len is the total number of chords recorded.
func (r *Recorder) Len() int {
	n := 0
	for _, c := range r.Calls {
		n += len(c.Chords)
	}
	return n
}

// Replay draws every recorded call onto another canvas, in order.
func (r *Recorder) Replay(c plot.Canvas) error {
	for _, s := range r.Calls {
		if err := c.DrawStrokes(s.Chords, s.Colors, s.LineWidth); err != nil {
			return err
		}
	}
	return nil
}

package canvas

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/npillmayer/sketch"
	"github.com/npillmayer/sketch/palette"
)

// svgScale is the number of SVG user units per device pixel. svgo works on
// integer coordinates, thus the SVG is drawn on a finer grid and scaled down
// by its viewBox.
const svgScale = 16

const strokeFmt = `stroke:rgb(%d,%d,%d);stroke-opacity:%.3f;stroke-width:%.2f`

// SVG writes strokes as SVG <line> elements, one per chord. Call Close to
// finish the document.
type SVG struct {
	View   Viewport
	canvas *svg.SVG
	lines  int
}

// NewSVG starts an SVG document of the viewport's size on w. A background
// with non-zero alpha is drawn as a full-size rectangle.
func NewSVG(w io.Writer, v Viewport, background palette.RGBA) *SVG {
	s := &SVG{View: v, canvas: svg.New(w)}
	W, H := v.Width*svgScale, v.Height*svgScale
	s.canvas.Startview(v.Width, v.Height, 0, 0, W, H)
	if background.A > 0 {
		bg := background.NRGBA()
		s.canvas.Rect(0, 0, W, H, fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.3f",
			bg.R, bg.G, bg.B, background.A))
	}
	return s
}

// DrawStrokes writes one line per chord. lineWidth is in pixels.
func (s *SVG) DrawStrokes(chords sketch.Batch, colors []palette.RGBA, lineWidth float64) error {
	if err := checkAligned(chords, colors, lineWidth); err != nil {
		return err
	}
	s.canvas.Gstyle("fill:none;stroke-linecap:butt")
	for i, c := range chords {
		if colors[i].A == 0 {
			continue
		}
		x0, y0 := s.device(c.Start)
		x1, y1 := s.device(c.End)
		col := colors[i].NRGBA()
		s.canvas.Line(x0, y0, x1, y1, fmt.Sprintf(strokeFmt,
			col.R, col.G, col.B, colors[i].A, lineWidth*svgScale))
		s.lines++
	}
	s.canvas.Gend()
	return nil
}

// Lines is the number of <line> elements written so far.
func (s *SVG) Lines() int {
	return s.lines
}

// Close finishes the SVG document. It does not close the underlying writer.
func (s *SVG) Close() error {
	s.canvas.End()
	tracer().Debugf("wrote SVG with %d lines", s.lines)
	return nil
}

func (s *SVG) device(p sketch.Pair) (int, int) {
	x, y := s.View.Device(p)
	return int(math.Round(x * svgScale)), int(math.Round(y * svgScale))
}

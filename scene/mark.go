package scene

import (
	"fmt"

	"github.com/npillmayer/sketch"
	"github.com/npillmayer/sketch/marks"
	"github.com/npillmayer/sketch/palette"
	"github.com/npillmayer/sketch/plot"
	"github.com/npillmayer/sketch/polygon"
)

// Kinds of marks.
const (
	KindCircle    = "circle"
	KindEllipse   = "ellipse"
	KindRectangle = "rectangle"
	KindSegment   = "segment"
	KindLine      = "line"
	KindHLine     = "hline"
	KindVLine     = "vline"
)

// DefaultColor is used for marks without a color.
const DefaultColor = "k"

// footprintSides is the number of sides of the polygon standing in for an
// ellipse when fitting the viewport.
const footprintSides = 64

// Mark is a [[mark]] table of a scene file. Which keys are read depends on
// Kind; style keys which are not set take the defaults of the kind.
type Mark struct {
	Kind string `toml:"kind"`

	// shapes
	Center []float64 `toml:"center"`
	Width  float64   `toml:"width"`  // radius of circles, semi-axis of ellipses, full width of rectangles
	Height float64   `toml:"height"` // ignored for circles

	// segments
	Start []float64 `toml:"start"`
	End   []float64 `toml:"end"`

	// lines
	X    []float64 `toml:"x"`
	Y    []float64 `toml:"y"`
	At   float64   `toml:"at"` // x of a vline, y of an hline
	From float64   `toml:"from"`
	To   float64   `toml:"to"`

	// style
	Color     string    `toml:"color"`
	LW        *float64  `toml:"lw"`
	N         *int      `toml:"n"`
	Fuzz      *float64  `toml:"fuzz"`
	Alpha     *float64  `toml:"alpha"`
	Noise     *int      `toml:"noise"`
	Thickness *float64  `toml:"thickness"`
	Rot       *float64  `toml:"rot"`       // shapes only
	RotPoint  []float64 `toml:"rot_point"` // shapes only
}

// drawable is a validated mark, ready to draw.
type drawable struct {
	draw      func(c plot.Canvas, rnd plot.Rand) error
	footprint *polygon.Polygon
}

func pair(key string, v []float64) (sketch.Pair, error) {
	if len(v) != 2 {
		return sketch.Origin, fmt.Errorf("%w: %s needs 2 numbers, has %d", sketch.ErrInvalidArgument, key, len(v))
	}
	return sketch.P(v[0], v[1]), nil
}

// style builds the style of m on top of the defaults of its kind.
func (m Mark) style() (plot.Style, error) {
	name := m.Color
	if name == "" {
		name = DefaultColor
	}
	color, err := palette.Parse(name)
	if err != nil {
		return plot.Style{}, err
	}
	var st plot.Style
	switch m.Kind {
	case KindCircle, KindEllipse:
		st = plot.EllipseStyle(color)
	case KindRectangle:
		st = plot.RectangleStyle(color)
	case KindSegment:
		st = plot.SegmentStyle(color)
	case KindLine:
		st = plot.LineStyle(color)
	case KindHLine, KindVLine:
		st = plot.RuleStyle(color)
	default:
		return st, fmt.Errorf("%w: unknown kind of mark %q", sketch.ErrInvalidArgument, m.Kind)
	}
	if m.LW != nil {
		st.LineWidth = *m.LW
	}
	if m.N != nil {
		st.N = *m.N
	}
	if m.Fuzz != nil {
		st.Fuzz = *m.Fuzz
	}
	if m.Alpha != nil {
		st.Alpha = *m.Alpha
	}
	if m.Noise != nil {
		st.Noise = *m.Noise
	}
	if m.Thickness != nil {
		st.Width = *m.Thickness
	}
	if (m.Rot != nil || m.RotPoint != nil) && !m.isShape() {
		return st, fmt.Errorf("%w: %s marks cannot be rotated, they follow their points",
			sketch.ErrInvalidArgument, m.Kind)
	}
	if m.Rot != nil {
		if m.RotPoint != nil {
			pivot, err := pair("rot_point", m.RotPoint)
			if err != nil {
				return st, err
			}
			st = st.RotatedAround(*m.Rot, pivot)
		} else {
			st = st.Rotated(*m.Rot)
		}
	} else if m.RotPoint != nil {
		return st, fmt.Errorf("%w: rot_point without rot", sketch.ErrInvalidArgument)
	}
	return st, st.Validate()
}

// isShape is a predicate: is m a circle, ellipse or rectangle? Only shapes
// take a rotation.
func (m Mark) isShape() bool {
	return m.Kind == KindCircle || m.Kind == KindEllipse || m.Kind == KindRectangle
}

// rotated applies the style's rotation to a shape footprint.
func rotated(fp *polygon.Polygon, st plot.Style, center sketch.Pair) *polygon.Polygon {
	if st.Rot == nil {
		return fp
	}
	pivot := center
	if st.RotPoint != nil {
		pivot = *st.RotPoint
	}
	return fp.Rotated(pivot, *st.Rot)
}

// compile checks m and binds it to the plot function of its kind.
func (m Mark) compile() (drawable, error) {
	st, err := m.style()
	if err != nil {
		return drawable{}, err
	}
	switch m.Kind {
	case KindCircle, KindEllipse:
		return m.compileEllipse(st)
	case KindRectangle:
		return m.compileRectangle(st)
	case KindSegment:
		return m.compileSegment(st)
	case KindLine:
		return m.compileLine(st)
	}
	return m.compileRule(st)
}

func (m Mark) compileEllipse(st plot.Style) (drawable, error) {
	center, err := pair("center", m.Center)
	if err != nil {
		return drawable{}, err
	}
	h := m.Height
	if m.Kind == KindCircle {
		h = m.Width
	}
	e, err := marks.NewEllipse(center, m.Width, h)
	if err != nil {
		return drawable{}, err
	}
	return drawable{
		draw: func(c plot.Canvas, rnd plot.Rand) error {
			return plot.DrawEllipse(c, e, st, rnd)
		},
		footprint: rotated(polygon.OfEllipse(e, footprintSides), st, center),
	}, nil
}

func (m Mark) compileRectangle(st plot.Style) (drawable, error) {
	center, err := pair("center", m.Center)
	if err != nil {
		return drawable{}, err
	}
	r, err := marks.NewRectangle(center, m.Width, m.Height)
	if err != nil {
		return drawable{}, err
	}
	return drawable{
		draw: func(c plot.Canvas, rnd plot.Rand) error {
			return plot.DrawRectangle(c, r, st, rnd)
		},
		footprint: rotated(polygon.OfRectangle(r), st, center),
	}, nil
}

func (m Mark) compileSegment(st plot.Style) (drawable, error) {
	start, err := pair("start", m.Start)
	if err != nil {
		return drawable{}, err
	}
	end, err := pair("end", m.End)
	if err != nil {
		return drawable{}, err
	}
	s, err := marks.NewSegment(start, end)
	if err != nil {
		return drawable{}, err
	}
	if _, err := s.Strip(st.Width); err != nil {
		return drawable{}, err
	}
	return drawable{
		draw: func(c plot.Canvas, rnd plot.Rand) error {
			return plot.DrawSegment(c, s, st, rnd)
		},
		footprint: polygon.OfSegment(s, st.Width),
	}, nil
}

func (m Mark) compileLine(st plot.Style) (drawable, error) {
	if len(m.X) != len(m.Y) {
		return drawable{}, fmt.Errorf("%w: %d x-values, but %d y-values",
			sketch.ErrInvalidArgument, len(m.X), len(m.Y))
	}
	if len(m.X) < 2 {
		return drawable{}, fmt.Errorf("%w: line needs at least 2 points", sketch.ErrInvalidArgument)
	}
	fps := make([]*polygon.Polygon, 0, len(m.X)-1)
	for i := 1; i < len(m.X); i++ {
		s, err := marks.NewSegment(sketch.P(m.X[i-1], m.Y[i-1]), sketch.P(m.X[i], m.Y[i]))
		if err != nil {
			return drawable{}, fmt.Errorf("line segment %d: %w", i-1, err)
		}
		fps = append(fps, polygon.OfSegment(s, st.Width))
	}
	x, y := m.X, m.Y
	return drawable{
		draw: func(c plot.Canvas, rnd plot.Rand) error {
			return plot.Line(c, x, y, st, rnd)
		},
		footprint: polygon.Union(fps...),
	}, nil
}

func (m Mark) compileRule(st plot.Style) (drawable, error) {
	if _, err := plot.Grid(m.From, m.To, st.Width); err != nil {
		return drawable{}, err
	}
	var a, b sketch.Pair
	var draw func(c plot.Canvas, rnd plot.Rand) error
	at, from, to := m.At, m.From, m.To
	if m.Kind == KindVLine {
		a, b = sketch.P(at, from), sketch.P(at, to)
		draw = func(c plot.Canvas, rnd plot.Rand) error {
			return plot.VLine(c, at, from, to, st, rnd)
		}
	} else {
		a, b = sketch.P(from, at), sketch.P(to, at)
		draw = func(c plot.Canvas, rnd plot.Rand) error {
			return plot.HLine(c, at, from, to, st, rnd)
		}
	}
	s, err := marks.NewSegment(a, b)
	if err != nil {
		return drawable{}, err
	}
	return drawable{draw: draw, footprint: polygon.OfSegment(s, st.Width)}, nil
}

// Package scene reads plots of sketched marks from TOML files and draws them.
//
// A scene file sets up the canvas and lists marks, each as a [[mark]] table:
//
//	width = 800
//	height = 600
//	seed = 42
//	background = "white"
//
//	[[mark]]
//	kind = "circle"
//	center = [0.0, 0.0]
//	width = 1.0
//	color = "orange"
//
//	[[mark]]
//	kind = "line"
//	x = [-1.0, 0.0, 1.0]
//	y = [1.0, 0.0, 1.0]
//	color = "k"
//
// Marks are drawn in the order of the file. Style keys left out take the
// defaults of the mark's kind (see package plot).
package scene

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/sketch"
	"github.com/npillmayer/sketch/canvas"
	"github.com/npillmayer/sketch/palette"
	"github.com/npillmayer/sketch/plot"
	"github.com/npillmayer/sketch/polygon"
)

// tracer writes to trace with key 'sketch.scene'
func tracer() tracing.Trace {
	return tracing.Select("sketch.scene")
}

// Defaults for keys left out of a scene file.
const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultBackground = "white"
	DefaultPadding    = 0.05
)

// Scene is a canvas setup plus an ordered list of marks.
type Scene struct {
	Width      int       `toml:"width"`
	Height     int       `toml:"height"`
	Seed       uint64    `toml:"seed"`       // 0 means: seed from the clock
	Background string    `toml:"background"` // any color understood by palette.Parse
	Viewport   []float64 `toml:"viewport"`   // [xmin, ymin, xmax, ymax]; empty means: fit to marks
	Padding    *float64  `toml:"padding"`    // fraction added around a fitted viewport
	Marks      []Mark    `toml:"mark"`

	compiled []drawable
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	s := &Scene{}
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, s.Validate()
}

// Decode reads and validates a scene from r.
func Decode(r io.Reader) (*Scene, error) {
	s := &Scene{}
	md, err := toml.NewDecoder(r).Decode(s)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return s, s.Validate()
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", sketch.ErrInvalidArgument, strings.Join(names, ", "))
	}
	return nil
}

// Validate fills in defaults and checks every mark. It is called by Load
// and Decode; scenes constructed in code have to call it before drawing.
func (s *Scene) Validate() error {
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.Background == "" {
		s.Background = DefaultBackground
	}
	if s.Padding == nil {
		p := DefaultPadding
		s.Padding = &p
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: canvas size %d×%d", sketch.ErrInvalidArgument, s.Width, s.Height)
	}
	if len(s.Viewport) != 0 && len(s.Viewport) != 4 {
		return fmt.Errorf("%w: viewport needs 4 numbers, has %d", sketch.ErrInvalidArgument, len(s.Viewport))
	}
	if _, err := palette.Parse(s.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	s.compiled = make([]drawable, len(s.Marks))
	for i, m := range s.Marks {
		d, err := m.compile()
		if err != nil {
			return fmt.Errorf("mark #%d (%s): %w", i+1, m.Kind, err)
		}
		s.compiled[i] = d
	}
	tracer().Infof("scene with %d marks on %d×%d canvas", len(s.Marks), s.Width, s.Height)
	return nil
}

// BackgroundColor is the parsed background color.
func (s *Scene) BackgroundColor() palette.RGBA {
	c, err := palette.Parse(s.Background)
	if err != nil {
		return palette.Gray(1)
	}
	return c
}

// Footprint is the union of the footprints of all marks.
func (s *Scene) Footprint() *polygon.Polygon {
	fps := make([]*polygon.Polygon, len(s.compiled))
	for i, d := range s.compiled {
		fps[i] = d.footprint
	}
	return polygon.Union(fps...)
}

// Bounds returns the lower-left and upper-right corner of the bounding box
// of all footprints. A scene without marks has an empty box at the origin.
func (s *Scene) Bounds() (sketch.Pair, sketch.Pair) {
	return s.Footprint().BoundingBox()
}

// View returns the scene's viewport: the configured one, or the bounding
// box of all footprints, padded.
func (s *Scene) View() (canvas.Viewport, error) {
	if len(s.Viewport) == 4 {
		v := s.Viewport
		return canvas.NewViewport(sketch.P(v[0], v[1]), sketch.P(v[2], v[3]), s.Width, s.Height)
	}
	if len(s.compiled) == 0 {
		return canvas.Viewport{}, fmt.Errorf("%w: no marks to fit a viewport to", sketch.ErrInvalidGeometry)
	}
	ll, ur := s.Bounds()
	v, err := canvas.NewViewport(ll, ur, s.Width, s.Height)
	if err != nil {
		return v, err
	}
	return v.Padded(*s.Padding), nil
}

// Rand returns a generator seeded with the scene's seed, or with the clock
// for seed 0.
func (s *Scene) Rand() *rand.Rand {
	seed := s.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Draw draws all marks onto c, in order.
func (s *Scene) Draw(c plot.Canvas, rnd plot.Rand) error {
	if len(s.compiled) != len(s.Marks) {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for i, d := range s.compiled {
		if err := d.draw(c, rnd); err != nil {
			return fmt.Errorf("drawing mark #%d (%s): %w", i+1, s.Marks[i].Kind, err)
		}
	}
	return nil
}

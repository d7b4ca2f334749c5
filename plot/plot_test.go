package plot

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/sketch"
	"github.com/npillmayer/sketch/marks"
	"github.com/npillmayer/sketch/palette"
)

type call struct {
	chords    sketch.Batch
	colors    []palette.RGBA
	lineWidth float64
}

// countingCanvas remembers every call to DrawStrokes.
type countingCanvas struct {
	calls []call
	fail  error
}

func (c *countingCanvas) DrawStrokes(chords sketch.Batch, colors []palette.RGBA, lw float64) error {
	if c.fail != nil {
		return c.fail
	}
	c.calls = append(c.calls, call{chords, colors, lw})
	return nil
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 7*seed+1))
}

var orange = palette.RGBA{R: 1, G: 0.647, B: 0, A: 1}

func TestDrawEllipse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e, err := marks.NewEllipse(sketch.Origin, 1, 1)
	require.NoError(t, err)
	st := EllipseStyle(orange)
	st.N = 250
	c := &countingCanvas{}
	require.NoError(t, DrawEllipse(c, e, st, seeded(1)))
	require.Len(t, c.calls, 1)
	got := c.calls[0]
	assert.Len(t, got.chords, 250)
	assert.Len(t, got.colors, 250)
	assert.Equal(t, 2.0, got.lineWidth)
	for _, col := range got.colors {
		assert.Equal(t, 0.05, col.A)
		assert.True(t, col.Valid())
	}
}

func TestDrawRectangleColorsAlignWithChords(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r, err := marks.NewRectangle(sketch.Origin, 1, 1)
	require.NoError(t, err)
	st := RectangleStyle(orange).Rotated(math.Pi / 6)
	st.N = 400
	c := &countingCanvas{}
	require.NoError(t, DrawRectangle(c, r, st, seeded(2)))
	require.Len(t, c.calls, 1)
	assert.Equal(t, len(c.calls[0].chords), len(c.calls[0].colors))
	assert.LessOrEqual(t, len(c.calls[0].chords), 400)
}

func TestStyleRotation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e, err := marks.NewEllipse(sketch.P(5, 0), 1, 1)
	require.NoError(t, err)
	st := EllipseStyle(orange).RotatedAround(math.Pi, sketch.Origin)
	st.N, st.Fuzz = 100, 0
	c := &countingCanvas{}
	require.NoError(t, DrawEllipse(c, e, st, seeded(3)))
	for _, p := range c.calls[0].chords.Points() {
		// circle mirrored to (-5,0)
		assert.InDelta(t, 1.0, (p - sketch.P(-5, 0)).Abs(), 1e-9)
	}
}

func TestStyleValidation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e, _ := marks.NewEllipse(sketch.Origin, 1, 1)
	c := &countingCanvas{}
	st := EllipseStyle(orange)
	st.Alpha = 2
	assert.True(t, errors.Is(DrawEllipse(c, e, st, seeded(1)), sketch.ErrInvalidArgument))
	st = EllipseStyle(orange)
	st.LineWidth = 0
	assert.True(t, errors.Is(DrawEllipse(c, e, st, seeded(1)), sketch.ErrInvalidArgument))
	st = EllipseStyle(palette.RGBA{R: 2})
	assert.True(t, errors.Is(DrawEllipse(c, e, st, seeded(1)), sketch.ErrInvalidArgument))
	st = EllipseStyle(orange)
	st.N = -1
	assert.True(t, errors.Is(DrawEllipse(c, e, st, seeded(1)), sketch.ErrInvalidArgument))
	st = EllipseStyle(orange)
	st.Noise = math.MaxInt
	assert.True(t, errors.Is(st.Validate(), sketch.ErrInvalidArgument))
	assert.True(t, errors.Is(DrawEllipse(c, e, st, seeded(1)), sketch.ErrInvalidArgument))
	assert.Empty(t, c.calls)
}

func TestCanvasErrorsArePassedOn(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	boom := errors.New("boom")
	e, _ := marks.NewEllipse(sketch.Origin, 1, 1)
	st := EllipseStyle(orange)
	st.N = 10
	err := DrawEllipse(&countingCanvas{fail: boom}, e, st, seeded(1))
	assert.True(t, errors.Is(err, boom))
}

func TestPolylineSamplesEverySegment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	x := []float64{-2, -1, 0, 1, 2}
	y := []float64{4, 1, 0, 1, 4}
	st := LineStyle(orange)
	st.N = 20
	c := &countingCanvas{}
	require.NoError(t, Line(c, x, y, st, seeded(4)))
	assert.Len(t, c.calls, len(x)-1)
	for _, cl := range c.calls {
		assert.Equal(t, 0.05, cl.lineWidth)
		assert.Equal(t, len(cl.chords), len(cl.colors))
	}
}

func TestPolylineErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	st := LineStyle(orange)
	c := &countingCanvas{}
	err := Polyline(c, []sketch.Pair{sketch.Origin}, st, seeded(1))
	assert.True(t, errors.Is(err, sketch.ErrInvalidArgument))
	err = Line(c, []float64{1, 2}, []float64{1}, st, seeded(1))
	assert.True(t, errors.Is(err, sketch.ErrInvalidArgument))
	err = Polyline(c, []sketch.Pair{sketch.P(1, 1), sketch.P(1, 1)}, st, seeded(1))
	assert.True(t, errors.Is(err, sketch.ErrDegenerateSegment))
	assert.Empty(t, c.calls)
}

func TestPolylineDrawsNothingOnError(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := &countingCanvas{}
	// the second segment collapses to a point
	err := Line(c, []float64{0, 1, 1, 2}, []float64{0, 1, 1, 0}, LineStyle(orange), seeded(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sketch.ErrDegenerateSegment))
	assert.Contains(t, err.Error(), "segment 1")
	assert.Empty(t, c.calls, "no segment may reach the canvas")
}

func TestGrid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g, err := Grid(0, 1, 0.25)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, g)
	g, err = Grid(2, 3, 0.4)
	require.NoError(t, err)
	require.Len(t, g, 4)
	assert.InDelta(t, 2.8, g[2], 1e-12)
	assert.Equal(t, 3.0, g[3])
	g, err = Grid(0, 0.1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.1}, g)
	_, err = Grid(1, 1, 0.1)
	assert.True(t, errors.Is(err, sketch.ErrInvalidArgument))
	_, err = Grid(0, 1, 0)
	assert.True(t, errors.Is(err, sketch.ErrInvalidArgument))
}

func TestGridIsBounded(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Grid(-2, 2, 1e-12)
	assert.True(t, errors.Is(err, sketch.ErrInvalidArgument))
	_, err = Grid(0, 1, math.SmallestNonzeroFloat64)
	assert.True(t, errors.Is(err, sketch.ErrInvalidArgument))
	g, err := Grid(0, 1, 2.0/MaxGridPoints)
	require.NoError(t, err)
	assert.InDelta(t, MaxGridPoints/2+1, len(g), 1)
	c := &countingCanvas{}
	st := RuleStyle(orange)
	st.Width = 1e-12
	err = VLine(c, 0, -2, 2, st, seeded(1))
	assert.True(t, errors.Is(err, sketch.ErrInvalidArgument))
	assert.Empty(t, c.calls)
}

func TestVLineAndHLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	st := RuleStyle(orange)
	st.N = 30
	st.Width = 0.25
	st.Fuzz = 0
	c := &countingCanvas{}
	require.NoError(t, VLine(c, 3, 2, 3, st, seeded(5)))
	assert.Len(t, c.calls, 4)
	for _, cl := range c.calls {
		for _, p := range cl.chords.Points() {
			assert.InDelta(t, 3.0, p.X(), st.Width/2+1e-6)
			assert.GreaterOrEqual(t, p.Y(), 2.0-1e-6)
			assert.LessOrEqual(t, p.Y(), 3.0+1e-6)
		}
	}
	c = &countingCanvas{}
	require.NoError(t, HLine(c, 3, 2, 3, st, seeded(6)))
	assert.Len(t, c.calls, 4)
	for _, cl := range c.calls {
		for _, p := range cl.chords.Points() {
			assert.InDelta(t, 3.0, p.Y(), st.Width/2+1e-6)
		}
	}
	assert.True(t, errors.Is(HLine(c, 0, 1, 0, st, seeded(1)), sketch.ErrInvalidArgument))
}

func TestRuleStyleIsLessRagged(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Less(t, RuleStyle(orange).Fuzz, LineStyle(orange).Fuzz)
	assert.Equal(t, 5.0, RuleStyle(orange).Fuzz)
}

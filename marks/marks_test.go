package marks

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/sketch"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1000+seed))
}

func mustEllipse(t *testing.T, c sketch.Pair, w, h float64) Ellipse {
	t.Helper()
	e, err := NewEllipse(c, w, h)
	require.NoError(t, err)
	return e
}

func mustRectangle(t *testing.T, c sketch.Pair, w, h float64) Rectangle {
	t.Helper()
	r, err := NewRectangle(c, w, h)
	require.NoError(t, err)
	return r
}

func TestPointsOnCircumference(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	radius := 2.0
	circ := mustEllipse(t, sketch.Origin, radius, radius)
	for _, n := range []int{0, 1, 100, 1000} {
		b, err := SampleEllipse(circ, n, 0, seeded(uint64(n)))
		require.NoError(t, err)
		require.Len(t, b, n)
		for _, p := range b.Points() {
			assert.InDelta(t, radius*radius, p.X()*p.X()+p.Y()*p.Y(), 1e-9)
		}
	}
}

func TestEllipsePointsOffCenter(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e := mustEllipse(t, sketch.P(3, -1), 2, 0.5)
	b, err := SampleEllipse(e, 500, 0, seeded(3))
	require.NoError(t, err)
	for _, p := range b.Points() {
		x, y := (p.X()-3)/2, (p.Y()+1)/0.5
		assert.InDelta(t, 1.0, x*x+y*y, 1e-9)
	}
}

func TestEllipseFuzzMovesPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	circ := mustEllipse(t, sketch.Origin, 1, 1)
	b, err := SampleEllipse(circ, 500, 100, seeded(4))
	require.NoError(t, err)
	off := 0
	for _, p := range b.Points() {
		r := p.Abs()
		if math.Abs(r-1) > 1e-6 {
			off++
		}
		assert.InDelta(t, 1.0, r, 0.1*8, "0.1 is one standard deviation")
	}
	assert.Greater(t, off, 900)
}

func TestEllipseRotation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e := mustEllipse(t, sketch.P(1, 1), 3, 1)
	plain, err := SampleEllipse(e, 200, 0, seeded(5))
	require.NoError(t, err)
	rotated, err := SampleEllipse(e, 200, 0, seeded(5), Rotate(math.Pi/2))
	require.NoError(t, err)
	require.Len(t, rotated, len(plain))
	for i := range plain {
		want := plain[i].Start.RotatedAround(sketch.P(1, 1), math.Pi/2)
		assert.InDelta(t, want.X(), rotated[i].Start.X(), 1e-9)
		assert.InDelta(t, want.Y(), rotated[i].Start.Y(), 1e-9)
	}
	pivoted, err := SampleEllipse(e, 200, 0, seeded(5), RotateAround(math.Pi, sketch.Origin))
	require.NoError(t, err)
	for i := range plain {
		assert.InDelta(t, -plain[i].End.X(), pivoted[i].End.X(), 1e-9)
		assert.InDelta(t, -plain[i].End.Y(), pivoted[i].End.Y(), 1e-9)
	}
}

func TestInvalidGeometry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewEllipse(sketch.Origin, 0, 1)
	assert.True(t, errors.Is(err, sketch.ErrInvalidGeometry))
	_, err = NewEllipse(sketch.Origin, 1, -1)
	assert.True(t, errors.Is(err, sketch.ErrInvalidGeometry))
	_, err = NewRectangle(sketch.P(math.NaN(), 0), 1, 1)
	assert.True(t, errors.Is(err, sketch.ErrInvalidGeometry))
	_, err = NewRectangle(sketch.Origin, math.Inf(1), 1)
	assert.True(t, errors.Is(err, sketch.ErrInvalidGeometry))
}

func TestInvalidSampling(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e := mustEllipse(t, sketch.Origin, 1, 1)
	_, err := SampleEllipse(e, -1, 0, seeded(1))
	assert.True(t, errors.Is(err, sketch.ErrInvalidArgument))
	_, err = SampleEllipse(e, 1, -3, seeded(1))
	assert.True(t, errors.Is(err, sketch.ErrInvalidArgument))
	r := mustRectangle(t, sketch.Origin, 1, 1)
	_, err = SampleRectangle(r, -5, 0, seeded(1))
	assert.True(t, errors.Is(err, sketch.ErrInvalidArgument))
	b, err := SampleRectangle(r, 0, 0, seeded(1))
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestRectangleEdges(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := mustRectangle(t, sketch.P(1, 2), 4, 2)
	assert.Equal(t, -1.0, r.Left())
	assert.Equal(t, 3.0, r.Right())
	assert.Equal(t, 1.0, r.Bottom())
	assert.Equal(t, 3.0, r.Top())
	assert.True(t, r.Contains(sketch.P(1, 2)))
	assert.False(t, r.Contains(sketch.P(3, 2)), "edges are not inside")
}

func TestPointsOnEdge(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	width, height := 3.0, 1.0
	rect := mustRectangle(t, sketch.Origin, width, height)
	b, err := SampleRectangle(rect, 1000, 0, seeded(42))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(b), 1000)
	assert.NotEmpty(t, b)
	ll, ur := b.Bounds()
	assert.InDelta(t, width/2, ur.X(), 1e-7)
	assert.InDelta(t, -width/2, ll.X(), 1e-7)
	assert.InDelta(t, height/2, ur.Y(), 1e-7)
	assert.InDelta(t, -height/2, ll.Y(), 1e-7)
}

func TestRectangleChordsStayInside(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for seed := uint64(0); seed < 5; seed++ {
		rect := mustRectangle(t, sketch.P(-2, 5), 1, 4)
		b, err := SampleRectangle(rect, 300, 0, seeded(seed))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(b), 300)
		for _, p := range b.Points() {
			assert.GreaterOrEqual(t, p.X(), rect.Left()-1e-9)
			assert.LessOrEqual(t, p.X(), rect.Right()+1e-9)
			assert.GreaterOrEqual(t, p.Y(), rect.Bottom()-1e-9)
			assert.LessOrEqual(t, p.Y(), rect.Top()+1e-9)
		}
		for _, c := range b {
			mid := sketch.Lerp(c.Start, c.End, 0.5)
			assert.True(t, rect.Contains(mid), "chord %s does not cross the interior", c)
		}
	}
}

func TestRectangleFuzzIsSmall(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rect := mustRectangle(t, sketch.Origin, 2, 2)
	b, err := SampleRectangle(rect, 500, 10, seeded(9))
	require.NoError(t, err)
	require.NotEmpty(t, b)
	// times move by 0.01⋅N(0,1); raw chords are at most 2⋅√8 long
	slack := 8 * 0.01 * 2 * math.Sqrt(8)
	for _, p := range b.Points() {
		assert.LessOrEqual(t, math.Abs(p.X()), 1+slack)
		assert.LessOrEqual(t, math.Abs(p.Y()), 1+slack)
	}
}

func TestCrossingNeverNaN(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.True(t, math.IsInf(crossing(1, 0), 1))
	assert.True(t, math.IsInf(crossing(-1, 0), -1))
	assert.True(t, math.IsInf(crossing(0, 0), 1))
	assert.Equal(t, 0.5, crossing(1, 2))
	r := mustRectangle(t, sketch.Origin, 2, 2)
	// horizontal chord through the rectangle
	times := r.crossings(sketch.C(sketch.P(-2, 0.5), sketch.P(2, 0.5)))
	assert.True(t, math.IsInf(times[0], -1))
	assert.InDelta(t, 0.25, times[1], 1e-12)
	assert.InDelta(t, 0.75, times[2], 1e-12)
	assert.True(t, math.IsInf(times[3], 1))
	// degenerate chord: a point
	times = r.crossings(sketch.C(sketch.P(0.5, 0.5), sketch.P(0.5, 0.5)))
	for _, tm := range times {
		assert.False(t, math.IsNaN(tm))
	}
}

func TestSegmentGeometry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seg, err := NewSegment(sketch.P(0, 0), sketch.P(1, 1))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, seg.Length(), 1e-12)
	assert.True(t, seg.Center().Equal(sketch.P(0.5, 0.5)))
	assert.InDelta(t, math.Pi/4, seg.Theta(), 1e-12)

	horizontal, err := NewSegment(sketch.P(0, 3), sketch.P(2, 3))
	require.NoError(t, err)
	assert.Equal(t, math.Pi/2, horizontal.Theta())

	_, err = NewSegment(sketch.P(1, 1), sketch.P(1, 1))
	assert.True(t, errors.Is(err, sketch.ErrDegenerateSegment))
	_, err = NewSegment(sketch.P(math.Inf(1), 1), sketch.P(1, 1))
	assert.True(t, errors.Is(err, sketch.ErrInvalidGeometry))
}

func TestSegmentChordsFollowSegment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const width = 0.02
	cases := []struct {
		name       string
		start, end sketch.Pair
	}{
		{"diagonal", sketch.P(0, 0), sketch.P(1, 1)},
		{"falling", sketch.P(0, 2), sketch.P(3, -1)},
		{"horizontal", sketch.P(-1, 0.5), sketch.P(2, 0.5)},
		{"vertical", sketch.P(4, 0), sketch.P(4, -2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seg, err := NewSegment(tc.start, tc.end)
			require.NoError(t, err)
			b, err := SampleSegment(seg, 400, 0, width, seeded(11))
			require.NoError(t, err)
			require.NotEmpty(t, b)
			dir := (tc.end - tc.start).Scaled(1 / seg.Length())
			for _, p := range b.Points() {
				v := p - seg.Center()
				along := v.X()*dir.X() + v.Y()*dir.Y()
				across := v.X()*dir.Y() - v.Y()*dir.X()
				assert.LessOrEqual(t, math.Abs(along), seg.Length()/2+1e-7)
				assert.LessOrEqual(t, math.Abs(across), width/2+1e-7)
			}
		})
	}
}

func TestSegmentWidthMustBePositive(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seg, err := NewSegment(sketch.P(0, 0), sketch.P(0, 1))
	require.NoError(t, err)
	_, err = SampleSegment(seg, 10, 0, 0, seeded(1))
	assert.True(t, errors.Is(err, sketch.ErrInvalidGeometry))
}

func TestSamplingIsReproducible(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rect := mustRectangle(t, sketch.Origin, 1, 2)
	a, _ := SampleRectangle(rect, 100, 5, seeded(77), Rotate(0.3))
	b, _ := SampleRectangle(rect, 100, 5, seeded(77), Rotate(0.3))
	assert.Equal(t, a, b)
}

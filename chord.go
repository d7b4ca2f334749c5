package sketch

import "fmt"

// Chord is a single stroke of a sketch, a straight line from Start to End.
type Chord struct {
	Start Pair
	End   Pair
}

// C is a quick notation for constructing a chord.
func C(start, end Pair) Chord {
	return Chord{Start: start, End: end}
}

func (c Chord) String() string {
	return fmt.Sprintf("%s--%s", c.Start, c.End)
}

// Length is the Euclidean length of a chord.
func (c Chord) Length() float64 {
	return (c.End - c.Start).Abs()
}

// Batch is a sequence of chords, in order of generation. The order carries
// no meaning other than being index-aligned with a batch of colors.
type Batch []Chord

// Points flattens a batch into [start₀, end₀, start₁, end₁, …].
func (b Batch) Points() []Pair {
	pts := make([]Pair, 0, 2*len(b))
	for _, c := range b {
		pts = append(pts, c.Start, c.End)
	}
	return pts
}

// FromPoints is the inverse of Points. A trailing unpaired point is ignored.
func FromPoints(pts []Pair) Batch {
	b := make(Batch, len(pts)/2)
	for i := range b {
		b[i] = Chord{Start: pts[2*i], End: pts[2*i+1]}
	}
	return b
}

// Rotated returns a new batch with every endpoint rotated counter-clockwise
// by theta around pivot. Count and pairing of the chords are kept.
func (b Batch) Rotated(pivot Pair, theta float64) Batch {
	tracer().Debugf("rotating %d chords by %.4f around %s", len(b), theta, pivot)
	return FromPoints(Rotate(b.Points(), pivot, theta))
}

// Bounds returns the lower-left and upper-right corner of the axis-aligned
// box containing every endpoint of b. For an empty batch both are Origin.
func (b Batch) Bounds() (Pair, Pair) {
	if len(b) == 0 {
		return Origin, Origin
	}
	minx, miny := b[0].Start.F()
	maxx, maxy := minx, miny
	for _, p := range b.Points() {
		x, y := p.F()
		minx, maxx = min(minx, x), max(maxx, x)
		miny, maxy = min(miny, y), max(maxy, y)
	}
	return P(minx, miny), P(maxx, maxy)
}

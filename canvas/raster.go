package canvas

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/npillmayer/sketch"
	"github.com/npillmayer/sketch/palette"
	"github.com/npillmayer/sketch/polygon"
)

// Raster paints strokes into an RGBA image. Every chord becomes a thin
// quadrilateral, anti-aliased by golang.org/x/image/vector and composited
// over the image with the chord's color and opacity.
//
// A Raster is not safe for concurrent use.
type Raster struct {
	View  Viewport
	img   *image.RGBA
	z     *vector.Rasterizer
	frame *polygon.Polygon
}

// NewRaster creates a raster canvas for v, filled with background.
func NewRaster(v Viewport, background palette.RGBA) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, v.Width, v.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background.NRGBA()), image.Point{}, draw.Src)
	return &Raster{
		View:  v,
		img:   img,
		z:     vector.NewRasterizer(1, 1),
		frame: polygon.Box(sketch.Origin, sketch.P(float64(v.Width), float64(v.Height))),
	}
}

// Image returns the image painted so far.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// WritePNG encodes the image as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

// DrawStrokes paints every chord with its color. lineWidth is in pixels.
func (r *Raster) DrawStrokes(chords sketch.Batch, colors []palette.RGBA, lineWidth float64) error {
	if err := checkAligned(chords, colors, lineWidth); err != nil {
		return err
	}
	for i, c := range chords {
		if colors[i].A == 0 {
			continue
		}
		r.stroke(c, lineWidth, image.NewUniform(colors[i].NRGBA()))
	}
	tracer().Debugf("painted %d strokes of width %g", len(chords), lineWidth)
	return nil
}

// quad returns the outline of a chord of width lw in device space.
func (r *Raster) quad(c sketch.Chord, lw float64) []sketch.Pair {
	p0 := sketch.P(r.View.Device(c.Start))
	p1 := sketch.P(r.View.Device(c.End))
	dir := sketch.P(1, 0)
	if l := (p1 - p0).Abs(); l > 0 {
		dir = (p1 - p0).Scaled(1 / l)
	}
	n := sketch.P(-dir.Y(), dir.X()).Scaled(lw / 2)
	if p0 == p1 { // a dot
		p0, p1 = p0-dir.Scaled(lw/2), p1+dir.Scaled(lw/2)
	}
	return []sketch.Pair{p0 + n, p1 + n, p1 - n, p0 - n}
}

func (r *Raster) stroke(c sketch.Chord, lw float64, src image.Image) {
	q := r.quad(c, lw)
	ll, ur := bounds(q)
	w, h := float64(r.View.Width), float64(r.View.Height)
	switch {
	case ur.X() <= 0 || ur.Y() <= 0 || ll.X() >= w || ll.Y() >= h:
		return // invisible
	case ll.X() >= 0 && ll.Y() >= 0 && ur.X() <= w && ur.Y() <= h:
		r.fill([][]sketch.Pair{q}, src)
	default: // partly visible, clip to the frame
		pg := polygon.NullPolygon()
		for _, p := range q {
			pg.Knot(p)
		}
		clipped := polygon.Intersection(pg.Cycle(), r.frame)
		contours := make([][]sketch.Pair, clipped.Contours())
		for i := range contours {
			contours[i] = clipped.Contour(i)
		}
		r.fill(contours, src)
	}
}

// fill rasterizes closed contours, all inside the image, with a rasterizer
// covering just their bounding box.
func (r *Raster) fill(contours [][]sketch.Pair, src image.Image) {
	var all []sketch.Pair
	for _, c := range contours {
		all = append(all, c...)
	}
	if len(all) < 3 {
		return
	}
	ll, ur := bounds(all)
	rect := image.Rect(
		int(math.Floor(ll.X())), int(math.Floor(ll.Y())),
		int(math.Ceil(ur.X())), int(math.Ceil(ur.Y())),
	).Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	ox, oy := float64(rect.Min.X), float64(rect.Min.Y)
	r.z.Reset(rect.Dx(), rect.Dy())
	for _, c := range contours {
		for i, p := range c {
			x, y := float32(p.X()-ox), float32(p.Y()-oy)
			if i == 0 {
				r.z.MoveTo(x, y)
			} else {
				r.z.LineTo(x, y)
			}
		}
		r.z.ClosePath()
	}
	r.z.Draw(r.img, rect, src, image.Point{})
}

func bounds(pts []sketch.Pair) (sketch.Pair, sketch.Pair) {
	minx, miny := pts[0].F()
	maxx, maxy := minx, miny
	for _, p := range pts[1:] {
		x, y := p.F()
		minx, maxx = math.Min(minx, x), math.Max(maxx, x)
		miny, maxy = math.Min(miny, y), math.Max(maxy, y)
	}
	return sketch.P(minx, miny), sketch.P(maxx, maxy)
}

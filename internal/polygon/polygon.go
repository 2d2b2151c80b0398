// Package polygon implements geometry on simple polygons stored as vertex slices.
package polygon

import (
	"math"
	"slices"

	"github.com/tomz197/rigid2d/internal/vector"
)

// Polygon is an ordered list of vertices. Winding order is significant:
// counter-clockwise polygons have positive area.
//
// Polygons must be simple and have at least three vertices; results are
// undefined otherwise.
type Polygon []vector.Vector

// Range is a closed interval of scalar projections.
type Range struct {
	Min, Max float64
}

// Overlaps reports whether r and o share at least one point.
func (r Range) Overlaps(o Range) bool {
	return !(r.Max < o.Min || o.Max < r.Min)
}

// Clone returns an independent copy of p.
func (p Polygon) Clone() Polygon {
	return slices.Clone(p)
}

// Area returns the signed area of p using the shoelace formula.
func (p Polygon) Area() float64 {
	n := len(p)
	sum := 0.0
	for i := range n {
		a := p[i]
		b := p[(i+1)%n]
		sum += a.Cross(b)
	}
	return sum / 2
}

// Centroid returns the center of mass of the polygon's area.
// A zero-area polygon yields NaN components.
func (p Polygon) Centroid() vector.Vector {
	area := p.Area()
	n := len(p)

	var cx, cy float64
	for i := range n {
		a := p[i]
		b := p[(i+1)%n]
		cross := a.Cross(b)
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}

	return vector.Vector{X: cx / (6 * area), Y: cy / (6 * area)}
}

// Mean returns the arithmetic mean of the vertices. Unlike Centroid it is
// defined for degenerate polygons.
func (p Polygon) Mean() vector.Vector {
	if len(p) == 0 {
		return vector.Zero
	}
	var sum vector.Vector
	for _, v := range p {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(p)))
}

// Translate moves every vertex by offset.
func (p Polygon) Translate(offset vector.Vector) {
	for i := range p {
		p[i] = p[i].Add(offset)
	}
}

// Rotate rotates every vertex counter-clockwise by angle radians about pivot.
// The angle is relative to the current orientation.
func (p Polygon) Rotate(angle float64, pivot vector.Vector) {
	for i := range p {
		p[i] = p[i].Sub(pivot).Rotate(angle).Add(pivot)
	}
}

// Project returns the range of dot products of all vertices with axis.
// The axis is used as given and need not be normalized.
// A zero-length axis projects to {0, 0}.
func (p Polygon) Project(axis vector.Vector) Range {
	if axis.IsZero() {
		return Range{}
	}

	r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range p {
		d := v.Dot(axis)
		if d < r.Min {
			r.Min = d
		}
		if d > r.Max {
			r.Max = d
		}
	}
	return r
}

// Rect returns a counter-clockwise axis-aligned rectangle centered at center.
func Rect(width, height float64, center vector.Vector) Polygon {
	hw, hh := width/2, height/2
	return Polygon{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}
}

// Regular returns a counter-clockwise regular polygon with n vertices on a
// circle of the given radius. Large n approximates a circle.
func Regular(n int, radius float64, center vector.Vector) Polygon {
	p := make(Polygon, n)
	step := 2 * math.Pi / float64(n)
	for i := range n {
		sin, cos := math.Sincos(float64(i) * step)
		p[i] = vector.Vector{X: center.X + radius*cos, Y: center.Y + radius*sin}
	}
	return p
}

// Star returns a counter-clockwise star with the given number of points,
// alternating between outer and inner radius.
func Star(points int, outer, inner float64, center vector.Vector) Polygon {
	n := 2 * points
	p := make(Polygon, n)
	step := 2 * math.Pi / float64(n)
	for i := range n {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		sin, cos := math.Sincos(math.Pi/2 + float64(i)*step)
		p[i] = vector.Vector{X: center.X + r*cos, Y: center.Y + r*sin}
	}
	return p
}

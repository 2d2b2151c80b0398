// Package physics provides separating-axis collision detection between
// convex polygons.
package physics

import (
	"math"

	"github.com/tomz197/rigid2d/internal/polygon"
	"github.com/tomz197/rigid2d/internal/vector"
)

// Collision describes the result of a polygon overlap test.
type Collision struct {
	// Collided is true when the polygons overlap.
	Collided bool
	// Axis is the unit axis of minimum overlap, pointing from the first
	// polygon towards the second. Zero when not collided.
	Axis vector.Vector
	// Overlap is the penetration depth along Axis.
	Overlap float64
}

// FindCollision tests two convex polygons for overlap using the separating
// axis theorem. Candidate axes are the outward edge normals of shape1 followed
// by those of shape2; the first separating axis ends the test.
//
// Non-convex inputs may produce false negatives.
func FindCollision(shape1, shape2 polygon.Polygon) Collision {
	best := Collision{Collided: true, Overlap: math.Inf(1)}

	for _, shape := range [2]polygon.Polygon{shape1, shape2} {
		for _, axis := range edgeNormals(shape) {
			r1 := shape1.Project(axis)
			r2 := shape2.Project(axis)
			if !r1.Overlaps(r2) {
				return Collision{}
			}
			if o := overlap(r1, r2); o < best.Overlap {
				best.Overlap = o
				best.Axis = axis
			}
		}
	}

	if best.Axis.IsZero() {
		// Only degenerate shapes produce no usable axis.
		best.Overlap = 0
		return best
	}

	if shape2.Mean().Sub(shape1.Mean()).Dot(best.Axis) < 0 {
		best.Axis = best.Axis.Negate()
	}
	return best
}

// Colliding reports whether two convex polygons overlap.
func Colliding(shape1, shape2 polygon.Polygon) bool {
	return FindCollision(shape1, shape2).Collided
}

// edgeNormals returns the outward unit normal of every edge of shape.
func edgeNormals(shape polygon.Polygon) []vector.Vector {
	n := len(shape)
	// For counter-clockwise winding the outward normal is the clockwise
	// perpendicular of the edge.
	ccw := shape.Area() >= 0
	axes := make([]vector.Vector, 0, n)
	for i := range n {
		edge := shape[(i+1)%n].Sub(shape[i])
		normal := edge.Rotate90(!ccw).Normalize()
		if normal.IsZero() {
			continue
		}
		axes = append(axes, normal)
	}
	return axes
}

// overlap returns the length of the intersection of two overlapping ranges.
func overlap(r1, r2 polygon.Range) float64 {
	if r1.Min <= r2.Min {
		if r1.Max <= r2.Max {
			// r1 leads into r2
			return r1.Max - r2.Min
		}
		// r2 nested in r1
		return r2.Max - r2.Min
	}
	if r1.Max >= r2.Max {
		// r2 leads into r1
		return r2.Max - r1.Min
	}
	// r1 nested in r2
	return r1.Max - r1.Min
}

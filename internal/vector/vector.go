// Package vector provides immutable 2D vector arithmetic.
package vector

import "math"

// Vector is a 2D vector or point.
type Vector struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vector{}

// New returns the vector (x, y).
func New(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	return Vector{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) Vector {
	return Vector{v.X - w.X, v.Y - w.Y}
}

// Negate returns -v.
func (v Vector) Negate() Vector {
	return v.Scale(-1)
}

// Scale returns s * v.
func (v Vector) Scale(s float64) Vector {
	return Vector{s * v.X, s * v.Y}
}

// Dot returns the dot product of v and w.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z-component of the 3D cross product of v and w.
func (v Vector) Cross(w Vector) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Rotate rotates v counter-clockwise by angle radians about the origin.
func (v Vector) Rotate(angle float64) Vector {
	sin, cos := math.Sincos(angle)
	return Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Rotate90 rotates v by a quarter turn, counter-clockwise when ccw is true.
func (v Vector) Rotate90(ccw bool) Vector {
	if ccw {
		return Vector{-v.Y, v.X}
	}
	return Vector{v.Y, -v.X}
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Dist returns the Euclidean distance between v and w.
func (v Vector) Dist(w Vector) float64 {
	return v.Sub(w).Norm()
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vector) Normalize() Vector {
	if v.IsZero() {
		return Zero
	}
	return v.Scale(1 / v.Norm())
}

// ScalarProj returns the signed length of v projected onto axis.
// Returns 0 for a zero-length axis.
func (v Vector) ScalarProj(axis Vector) float64 {
	if axis.IsZero() {
		return 0
	}
	return v.Dot(axis) / axis.Norm()
}

// VecProj returns the projection of v onto axis.
// Returns the zero vector for a zero-length axis.
func (v Vector) VecProj(axis Vector) Vector {
	if axis.IsZero() {
		return Zero
	}
	return axis.Scale(v.Dot(axis) / axis.Dot(axis))
}

// IsZero reports whether both components are exactly zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Equal reports whether v and w are exactly equal.
func (v Vector) Equal(w Vector) bool {
	return v.X == w.X && v.Y == w.Y
}

// Within reports whether each component of v and w differs by less than eps.
func (v Vector) Within(eps float64, w Vector) bool {
	return math.Abs(v.X-w.X) < eps && math.Abs(v.Y-w.Y) < eps
}

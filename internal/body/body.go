// Package body implements movable and immovable polygonal rigid bodies.
package body

import (
	"math"

	"github.com/tomz197/rigid2d/internal/color"
	"github.com/tomz197/rigid2d/internal/polygon"
	"github.com/tomz197/rigid2d/internal/vector"
)

// InfiniteMass marks a body as immovable: forces and impulses never change its
// velocity, though it still moves with whatever velocity is set on it.
var InfiniteMass = math.Inf(1)

// ReleaseFunc disposes of a body's payload when the body is destroyed.
type ReleaseFunc func(info any)

// Body is a polygon with mass, velocity and per-tick force and impulse
// accumulators.
//
// The cached centroid and rotation always describe the current vertex
// positions: setters apply the difference from the stored value to every
// vertex rather than recomputing the shape.
type Body struct {
	shape    polygon.Polygon
	mass     float64
	rotation float64
	color    color.RGB
	centroid vector.Vector
	velocity vector.Vector
	force    vector.Vector
	impulse  vector.Vector
	info     any
	release  ReleaseFunc
	removed  bool
	released bool
}

// New creates a body from shape with the given mass and color.
// The body keeps its own copy of shape.
func New(shape polygon.Polygon, mass float64, c color.RGB) *Body {
	return NewWithInfo(shape, mass, c, nil, nil)
}

// NewWithInfo creates a body carrying an opaque payload. release, if non-nil,
// is called with info once when the body is destroyed by its scene.
func NewWithInfo(shape polygon.Polygon, mass float64, c color.RGB, info any, release ReleaseFunc) *Body {
	s := shape.Clone()
	return &Body{
		shape:    s,
		mass:     mass,
		color:    c,
		centroid: s.Centroid(),
		info:     info,
		release:  release,
	}
}

// Shape returns a copy of the body's current vertices.
func (b *Body) Shape() polygon.Polygon {
	return b.shape.Clone()
}

// Centroid returns the body's center of mass.
func (b *Body) Centroid() vector.Vector {
	return b.centroid
}

// SetCentroid moves the body so its centroid is at x.
func (b *Body) SetCentroid(x vector.Vector) {
	b.shape.Translate(x.Sub(b.centroid))
	b.centroid = x
}

// Velocity returns the body's velocity.
func (b *Body) Velocity() vector.Vector {
	return b.velocity
}

// SetVelocity sets the body's velocity.
func (b *Body) SetVelocity(v vector.Vector) {
	b.velocity = v
}

// Rotation returns the body's absolute rotation in radians.
func (b *Body) Rotation() float64 {
	return b.rotation
}

// SetRotation rotates the body about its centroid to the absolute angle.
func (b *Body) SetRotation(angle float64) {
	b.shape.Rotate(angle-b.rotation, b.centroid)
	b.rotation = angle
}

// Mass returns the body's mass, InfiniteMass for immovable bodies.
func (b *Body) Mass() float64 {
	return b.mass
}

// Immovable reports whether the body has infinite mass.
func (b *Body) Immovable() bool {
	return math.IsInf(b.mass, 1)
}

// Color returns the body's color.
func (b *Body) Color() color.RGB {
	return b.color
}

// SetColor sets the body's color.
func (b *Body) SetColor(c color.RGB) {
	b.color = c
}

// Info returns the payload passed to NewWithInfo.
func (b *Body) Info() any {
	return b.info
}

// AddForce accumulates a force applied over the next tick.
func (b *Body) AddForce(f vector.Vector) {
	b.force = b.force.Add(f)
}

// AddImpulse accumulates an impulse applied at the next tick.
func (b *Body) AddImpulse(j vector.Vector) {
	b.impulse = b.impulse.Add(j)
}

// Remove marks the body for removal. The scene destroys it during its next
// tick sweep.
func (b *Body) Remove() {
	b.removed = true
}

// IsRemoved reports whether the body is marked for removal.
func (b *Body) IsRemoved() bool {
	return b.removed
}

// Tick advances the body by dt seconds, consuming the accumulated force and
// impulse. Position uses the average of the old and new velocity.
func (b *Body) Tick(dt float64) {
	var dv vector.Vector
	if !b.Immovable() {
		dv = b.impulse.Add(b.force.Scale(dt)).Scale(1 / b.mass)
	}

	oldV := b.velocity
	newV := oldV.Add(dv)
	displacement := oldV.Add(newV).Scale(dt / 2)

	b.SetCentroid(b.centroid.Add(displacement))
	b.velocity = newV
	b.force = vector.Zero
	b.impulse = vector.Zero
}

// Release disposes of the payload. It runs the release func at most once.
func (b *Body) Release() {
	if b.released {
		return
	}
	b.released = true
	if b.release != nil {
		b.release(b.info)
	}
}

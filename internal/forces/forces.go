// Package forces registers the built-in force effects on a scene.
//
// Every factory captures its constants and bodies in a closure and hands it to
// the scene together with the bodies it depends on, so the effect disappears
// as soon as one of them is removed.
package forces

import (
	"github.com/tomz197/rigid2d/internal/body"
	"github.com/tomz197/rigid2d/internal/scene"
	"github.com/tomz197/rigid2d/internal/vector"
)

// GravityMinDist is the centroid distance below which gravity is not applied.
const GravityMinDist = 5.0

// Rand is the random source used by randomized effects.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewtonianGravity attracts b1 and b2 with force G·m1·m2/r² along the line
// between their centroids. No force is applied while the centroids are closer
// than GravityMinDist.
func NewtonianGravity(sc *scene.Scene, g float64, b1, b2 *body.Body) {
	sc.AddBodiesForceCreator(func() {
		c1, c2 := b1.Centroid(), b2.Centroid()
		dist := c1.Dist(c2)
		if dist < GravityMinDist {
			return
		}
		mag := g * b1.Mass() * b2.Mass() / (dist * dist)
		dir := c2.Sub(c1).Scale(1 / dist)
		b1.AddForce(dir.Scale(mag))
		b2.AddForce(dir.Scale(-mag))
	}, []*body.Body{b1, b2}, nil)
}

// Spring pulls b1 and b2 together with Hooke's-law force k·displacement.
func Spring(sc *scene.Scene, k float64, b1, b2 *body.Body) {
	sc.AddBodiesForceCreator(func() {
		disp := b2.Centroid().Sub(b1.Centroid())
		b1.AddForce(disp.Scale(k))
		b2.AddForce(disp.Scale(-k))
	}, []*body.Body{b1, b2}, nil)
}

// Drag applies a force -gamma·v opposing b's velocity.
func Drag(sc *scene.Scene, gamma float64, b *body.Body) {
	sc.AddBodiesForceCreator(func() {
		b.AddForce(b.Velocity().Scale(-gamma))
	}, []*body.Body{b}, nil)
}

// RandomImpulse gives b, with the given probability each tick, an impulse
// whose components are drawn uniformly from [-maxImpulse, maxImpulse].
func RandomImpulse(sc *scene.Scene, probability, maxImpulse float64, b *body.Body, rng Rand) {
	sc.AddBodiesForceCreator(func() {
		jx := (2*rng.Float64() - 1) * maxImpulse
		jy := (2*rng.Float64() - 1) * maxImpulse
		if rng.Float64() < probability {
			b.AddImpulse(vector.New(jx, jy))
		}
	}, []*body.Body{b}, nil)
}

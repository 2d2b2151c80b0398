package forces

import (
	"slices"

	"github.com/tomz197/rigid2d/internal/body"
	"github.com/tomz197/rigid2d/internal/color"
	"github.com/tomz197/rigid2d/internal/physics"
	"github.com/tomz197/rigid2d/internal/scene"
	"github.com/tomz197/rigid2d/internal/vector"
)

// CollisionHandler reacts to b1 and b2 starting to overlap. axis is the unit
// collision axis pointing from b1 towards b2.
type CollisionHandler func(b1, b2 *body.Body, axis vector.Vector)

// contactState is the per-effect edge-trigger state.
type contactState uint8

const (
	notColliding contactState = iota
	colliding
)

// Collision registers handler to run once each time b1 and b2 begin to
// overlap. It does not run again until the bodies have separated.
func Collision(sc *scene.Scene, b1, b2 *body.Body, handler CollisionHandler) {
	collisionWithDeps(sc, b1, b2, handler, []*body.Body{b1, b2})
}

func collisionWithDeps(sc *scene.Scene, b1, b2 *body.Body, handler CollisionHandler, deps []*body.Body) {
	state := notColliding
	sc.AddBodiesForceCreator(func() {
		c := physics.FindCollision(b1.Shape(), b2.Shape())
		if !c.Collided {
			state = notColliding
			return
		}
		if state == notColliding {
			handler(b1, b2, c.Axis)
		}
		state = colliding
	}, deps, nil)
}

// DestructiveCollision removes both bodies when they collide.
func DestructiveCollision(sc *scene.Scene, b1, b2 *body.Body) {
	Collision(sc, b1, b2, func(b1, b2 *body.Body, _ vector.Vector) {
		b1.Remove()
		b2.Remove()
	})
}

// SingleDestructiveCollision removes b1 when it collides with b2.
func SingleDestructiveCollision(sc *scene.Scene, b1, b2 *body.Body) {
	Collision(sc, b1, b2, func(b1, _ *body.Body, _ vector.Vector) {
		b1.Remove()
	})
}

// PhysicsCollision resolves collisions between b1 and b2 with an impulse
// along the collision axis. elasticity is the coefficient of restitution:
// 0 is perfectly inelastic, 1 perfectly elastic. A body with infinite mass
// behaves as a wall and receives no impulse.
func PhysicsCollision(sc *scene.Scene, elasticity float64, b1, b2 *body.Body) {
	Collision(sc, b1, b2, func(b1, b2 *body.Body, axis vector.Vector) {
		applyCollisionImpulse(elasticity, b1, b2, axis)
	})
}

func applyCollisionImpulse(elasticity float64, b1, b2 *body.Body, axis vector.Vector) {
	switch {
	case b1.Immovable() && b2.Immovable():
		return
	case b1.Immovable():
		b2.AddImpulse(wallImpulse(elasticity, b2, axis))
	case b2.Immovable():
		b1.AddImpulse(wallImpulse(elasticity, b1, axis))
	default:
		m1, m2 := b1.Mass(), b2.Mass()
		u1 := b1.Velocity().Dot(axis)
		u2 := b2.Velocity().Dot(axis)
		reduced := m1 * m2 / (m1 + m2)
		j := axis.Scale(reduced * (1 + elasticity) * (u2 - u1))
		b1.AddImpulse(j)
		b2.AddImpulse(j.Negate())
	}
}

// wallImpulse reverses b's velocity component along axis, scaled by
// elasticity.
func wallImpulse(elasticity float64, b *body.Body, axis vector.Vector) vector.Vector {
	u := b.Velocity().Dot(axis)
	return axis.Scale(-b.Mass() * (1 + elasticity) * u)
}

// SpeedBoostCollision removes b1 when it collides with b2 and multiplies the
// velocity of b3 by factor. The effect also ends if b3 is removed.
func SpeedBoostCollision(sc *scene.Scene, factor float64, b1, b2, b3 *body.Body) {
	collisionWithDeps(sc, b1, b2, func(b1, _ *body.Body, _ vector.Vector) {
		b1.Remove()
		b3.SetVelocity(b3.Velocity().Scale(factor))
	}, []*body.Body{b1, b2, b3})
}

// ColorIncrementCollision removes b1 when it collides with b2 and advances b2
// one step through palette. b2 is removed when it already shows the last
// palette color or a color that is not in the palette.
func ColorIncrementCollision(sc *scene.Scene, b1, b2 *body.Body, palette []color.RGB) {
	colors := slices.Clone(palette)
	Collision(sc, b1, b2, func(b1, b2 *body.Body, _ vector.Vector) {
		b1.Remove()

		i := slices.Index(colors, b2.Color())
		if i < 0 || i == len(colors)-1 {
			b2.Remove()
			return
		}
		b2.SetColor(colors[i+1])
	})
}

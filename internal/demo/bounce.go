package demo

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rigid2d/internal/body"
	"github.com/tomz197/rigid2d/internal/color"
	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/forces"
	"github.com/tomz197/rigid2d/internal/input"
	"github.com/tomz197/rigid2d/internal/polygon"
	"github.com/tomz197/rigid2d/internal/scene"
	"github.com/tomz197/rigid2d/internal/vector"
)

var bouncePalette = []color.RGB{
	color.Red, color.Orange, color.Yellow, color.Lime,
	color.Aqua, color.Blue, color.Violet, color.Fuchsia,
}

// Bounce is a box of balls colliding elastically and receiving random kicks.
// Space throws every ball upwards.
type Bounce struct {
	rng    *rand.Rand
	logger *log.Logger
	sc     *scene.Scene
	balls  []*body.Body
}

// NewBounce builds the bouncing balls demo.
func NewBounce(rng *rand.Rand, logger *log.Logger) Demo {
	d := &Bounce{rng: rng, logger: orDiscard(logger)}
	d.sc = newScene(d.logger)

	walls := boxWalls(config.ViewWidth, config.ViewHeight, config.BounceWallThickness)
	for _, w := range walls {
		d.sc.AddBody(w)
	}

	// Lay the balls out on a grid so none start overlapped.
	cols := 5
	cellW := (config.ViewWidth - 2*config.BounceWallThickness) / float64(cols)
	rows := (config.BounceCount + cols - 1) / cols
	cellH := (config.ViewHeight - 2*config.BounceWallThickness) / float64(rows)

	for i := range config.BounceCount {
		center := vector.New(
			config.BounceWallThickness+cellW*(float64(i%cols)+0.5),
			config.BounceWallThickness+cellH*(float64(i/cols)+0.5),
		)
		b := body.New(
			polygon.Regular(10, config.BounceRadius, center),
			uniform(rng, 0.5, 2),
			bouncePalette[i%len(bouncePalette)],
		)
		b.SetVelocity(vector.New(uniform(rng, -20, 20), uniform(rng, -20, 20)))
		d.sc.AddBody(b)

		for _, w := range walls {
			forces.PhysicsCollision(d.sc, config.BounceElasticity, b, w)
		}
		for _, other := range d.balls {
			forces.PhysicsCollision(d.sc, config.BounceElasticity, other, b)
		}
		forces.RandomImpulse(d.sc, config.BounceImpulseChance, config.BounceMaxImpulse, b, rng)
		d.balls = append(d.balls, b)
	}
	return d
}

// boxWalls returns four immovable walls lining a width x height box.
func boxWalls(width, height, thickness float64) []*body.Body {
	wall := func(w, h float64, center vector.Vector) *body.Body {
		return body.NewWithInfo(polygon.Rect(w, h, center), body.InfiniteMass, color.Indigo, kindWall, nil)
	}
	return []*body.Body{
		wall(width, thickness, vector.New(width/2, thickness/2)),
		wall(width, thickness, vector.New(width/2, height-thickness/2)),
		wall(thickness, height, vector.New(thickness/2, height/2)),
		wall(thickness, height, vector.New(width-thickness/2, height/2)),
	}
}

func (d *Bounce) Name() string        { return "bounce" }
func (d *Bounce) Scene() *scene.Scene { return d.sc }

func (d *Bounce) Update(in input.Input, _ float64) {
	if !in.Space {
		return
	}
	for _, b := range d.balls {
		b.AddImpulse(vector.New(0, 30*b.Mass()))
	}
}

// Status reports the total kinetic energy of the balls.
func (d *Bounce) Status() string {
	var energy float64
	for _, b := range d.balls {
		v := b.Velocity()
		energy += 0.5 * b.Mass() * v.Dot(v)
	}
	return fmt.Sprintf("%d balls  energy %.0f", len(d.balls), energy)
}

func (d *Bounce) Release() { d.sc.Release() }

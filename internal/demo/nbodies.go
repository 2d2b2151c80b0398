package demo

import (
	"fmt"
	"math"
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

// NBodies is a cluster of spinning stars attracting each other pairwise.
// Space re-seeds the cluster.
type NBodies struct {
	rng    *rand.Rand
	logger *log.Logger
	sc     *scene.Scene
	spin   map[*body.Body]float64
}

// NewNBodies builds the n-body demo.
func NewNBodies(rng *rand.Rand, logger *log.Logger) Demo {
	d := &NBodies{rng: rng, logger: orDiscard(logger)}
	d.reset()
	return d
}

func (d *NBodies) reset() {
	if d.sc != nil {
		d.sc.Release()
	}
	d.sc = newScene(d.logger)
	d.spin = make(map[*body.Body]float64, config.NBodyCount)

	var momentum vector.Vector
	var totalMass float64
	for range config.NBodyCount {
		r := uniform(d.rng, config.NBodyMinRadius, config.NBodyMaxRadius)
		center := vector.New(
			uniform(d.rng, 0.2, 0.8)*config.ViewWidth,
			uniform(d.rng, 0.2, 0.8)*config.ViewHeight,
		)
		shape := polygon.Star(config.NBodyStarPoints, r, r/2, center)
		c := color.FromHSV(d.rng.Float64()*2*math.Pi, 0.8, 1)

		b := body.New(shape, r*r, c)
		v := vector.New(
			uniform(d.rng, -1, 1)*config.NBodyMaxSpeed,
			uniform(d.rng, -1, 1)*config.NBodyMaxSpeed,
		)
		b.SetVelocity(v)
		momentum = momentum.Add(v.Scale(b.Mass()))
		totalMass += b.Mass()

		d.spin[b] = uniform(d.rng, -2, 2)
		d.sc.AddBody(b)
	}

	// Zero the net momentum so the cluster stays in view.
	drift := momentum.Scale(1 / totalMass)
	for i := range d.sc.Len() {
		b := d.sc.Body(i)
		b.SetVelocity(b.Velocity().Sub(drift))
		for j := range i {
			forces.NewtonianGravity(d.sc, config.NBodyGravity, b, d.sc.Body(j))
		}
	}
}

func (d *NBodies) Name() string        { return "nbodies" }
func (d *NBodies) Scene() *scene.Scene { return d.sc }

func (d *NBodies) Update(in input.Input, dt float64) {
	if in.Space {
		d.reset()
		return
	}
	for i := range d.sc.Len() {
		b := d.sc.Body(i)
		b.SetRotation(b.Rotation() + d.spin[b]*dt)
	}
}

func (d *NBodies) Status() string {
	return fmt.Sprintf("%d stars  %d pairs", d.sc.Len(), d.sc.ForceLen())
}

func (d *NBodies) Release() { d.sc.Release() }

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

// Damping is a row of oscillators tied to fixed anchors by springs, with drag
// growing from left to right. Space kicks every oscillator again.
type Damping struct {
	rng     *rand.Rand
	logger  *log.Logger
	sc      *scene.Scene
	bobs    []*body.Body
	anchors []vector.Vector
}

// NewDamping builds the damped oscillator demo.
func NewDamping(rng *rand.Rand, logger *log.Logger) Demo {
	d := &Damping{rng: rng, logger: orDiscard(logger)}
	d.reset()
	return d
}

func (d *Damping) reset() {
	if d.sc != nil {
		d.sc.Release()
	}
	d.sc = newScene(d.logger)
	d.bobs = d.bobs[:0]
	d.anchors = d.anchors[:0]

	n := config.DampingCount
	spacing := config.ViewWidth / float64(n)
	restY := config.ViewHeight / 2
	hue0 := d.rng.Float64() * 2 * math.Pi

	for i := range n {
		x := spacing * (float64(i) + 0.5)
		rest := vector.New(x, restY)

		anchor := body.New(polygon.Rect(1, 1, rest), body.InfiniteMass, color.White)
		bob := body.New(
			polygon.Regular(12, config.DampingRadius, rest.Add(vector.New(0, config.DampingAmplitude))),
			1,
			color.FromHSV(hue0+float64(i)*2*math.Pi/float64(n), 1, 1),
		)
		d.sc.AddBody(anchor)
		d.sc.AddBody(bob)

		gamma := config.DampingMaxGamma * float64(i) / float64(max(n-1, 1))
		forces.Spring(d.sc, config.DampingSpringK, bob, anchor)
		forces.Drag(d.sc, gamma, bob)

		d.bobs = append(d.bobs, bob)
		d.anchors = append(d.anchors, rest)
	}
}

func (d *Damping) Name() string        { return "damping" }
func (d *Damping) Scene() *scene.Scene { return d.sc }

func (d *Damping) Update(in input.Input, dt float64) {
	if in.Space {
		for i, b := range d.bobs {
			b.SetCentroid(d.anchors[i].Add(vector.New(0, config.DampingAmplitude)))
			b.SetVelocity(vector.Zero)
		}
	}
	for _, b := range d.bobs {
		b.SetColor(color.HueShift(b.Color(), config.DampingHueRate*dt))
	}
}

// Status reports the displacement of the least and most damped oscillators.
func (d *Damping) Status() string {
	first, last := d.bobs[0], d.bobs[len(d.bobs)-1]
	return fmt.Sprintf("amplitude %.1f .. %.1f",
		first.Centroid().Dist(d.anchors[0]),
		last.Centroid().Dist(d.anchors[len(d.anchors)-1]))
}

func (d *Damping) Release() { d.sc.Release() }

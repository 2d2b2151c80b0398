// Package demo holds the interactive scenes shown by the terminal front-ends.
package demo

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rigid2d/internal/input"
	"github.com/tomz197/rigid2d/internal/scene"
)

// Demo is a scene together with the logic that drives it between ticks.
type Demo interface {
	Name() string
	// Scene returns the scene to tick and draw. It may change after Update.
	Scene() *scene.Scene
	// Update runs once per frame before the scene ticks.
	Update(in input.Input, dt float64)
	// Status is a one-line summary shown under the canvas.
	Status() string
	// Release frees the demo's scene.
	Release()
}

// Factory builds a demo. rng drives every random choice the demo makes.
type Factory func(rng *rand.Rand, logger *log.Logger) Demo

// Entry is a registered demo.
type Entry struct {
	Name string
	New  Factory
}

// Registry lists the demos in the order the number keys select them.
var Registry = []Entry{
	{Name: "nbodies", New: NewNBodies},
	{Name: "damping", New: NewDamping},
	{Name: "bounce", New: NewBounce},
	{Name: "breakout", New: NewBreakout},
}

// Lookup returns the index of the demo called name.
func Lookup(name string) (int, bool) {
	for i, e := range Registry {
		if e.Name == name {
			return i, true
		}
	}
	return 0, false
}

// NewRand returns the deterministic random source used for a given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

func newScene(logger *log.Logger) *scene.Scene {
	return scene.New(scene.WithLogger(logger))
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

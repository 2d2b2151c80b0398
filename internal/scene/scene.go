// Package scene owns bodies and force effects and advances them in time.
package scene

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rigid2d/internal/body"
)

const (
	initialBodyCapacity  = 8
	initialForceCapacity = 8
)

// ForceCreator is invoked once per tick before any body integrates. It may add
// forces or impulses to bodies, or mark them removed.
type ForceCreator func()

// force is a registered force effect.
type force struct {
	creator ForceCreator
	bodies  []*body.Body // dependencies, not owned
	release func()
	removed bool
}

func (f *force) dependsOnRemoved() bool {
	for _, b := range f.bodies {
		if b.IsRemoved() {
			return true
		}
	}
	return false
}

func (f *force) free() {
	if f.release != nil {
		f.release()
	}
	f.bodies = nil
}

// Scene is a collection of bodies and the force effects acting on them.
// A Scene is not safe for concurrent use.
type Scene struct {
	bodies []*body.Body
	forces []*force
	logger *log.Logger
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for sweep diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		s.logger = l
	}
}

// New creates an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{
		bodies: make([]*body.Body, 0, initialBodyCapacity),
		forces: make([]*force, 0, initialForceCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Len returns the number of bodies in the scene, including bodies marked for
// removal that have not been swept yet.
func (s *Scene) Len() int {
	return len(s.bodies)
}

// Body returns the body at index. It panics if index is out of range.
func (s *Scene) Body(index int) *body.Body {
	s.checkBodyIndex(index)
	return s.bodies[index]
}

// AddBody appends b to the scene. The scene takes ownership of b.
func (s *Scene) AddBody(b *body.Body) {
	s.bodies = append(s.bodies, b)
}

// RemoveBody marks the body at index for removal. It is destroyed during the
// next tick. It panics if index is out of range.
func (s *Scene) RemoveBody(index int) {
	s.checkBodyIndex(index)
	s.bodies[index].Remove()
}

// ForceLen returns the number of registered force effects.
func (s *Scene) ForceLen() int {
	return len(s.forces)
}

// RemoveForce marks the force effect at index for removal. It is destroyed at
// the end of the next tick. It panics if index is out of range.
func (s *Scene) RemoveForce(index int) {
	if index < 0 || index >= len(s.forces) {
		panic(fmt.Sprintf("scene: force index %d out of range [0, %d)", index, len(s.forces)))
	}
	s.forces[index].removed = true
}

// AddForceCreator registers a force effect with no body dependencies.
// release, if non-nil, runs when the effect is destroyed.
func (s *Scene) AddForceCreator(creator ForceCreator, release func()) {
	s.AddBodiesForceCreator(creator, nil, release)
}

// AddBodiesForceCreator registers a force effect that acts on bodies. The
// effect is removed as soon as any of bodies is removed. The scene does not
// take ownership of bodies through this call.
func (s *Scene) AddBodiesForceCreator(creator ForceCreator, bodies []*body.Body, release func()) {
	deps := make([]*body.Body, len(bodies))
	copy(deps, bodies)
	s.forces = append(s.forces, &force{
		creator: creator,
		bodies:  deps,
		release: release,
	})
}

// Tick advances the scene by dt seconds:
//  1. every force effect runs once;
//  2. effects depending on a removed body are marked removed;
//  3. removed bodies are destroyed, the rest integrate;
//  4. removed effects are destroyed.
func (s *Scene) Tick(dt float64) {
	for _, f := range s.forces {
		f.creator()
	}

	for _, f := range s.forces {
		if f.dependsOnRemoved() {
			f.removed = true
		}
	}

	keptBodies := s.bodies[:0]
	for _, b := range s.bodies {
		if b.IsRemoved() {
			b.Release()
			continue
		}
		b.Tick(dt)
		keptBodies = append(keptBodies, b)
	}
	sweptBodies := len(s.bodies) - len(keptBodies)
	clear(s.bodies[len(keptBodies):])
	s.bodies = keptBodies

	keptForces := s.forces[:0]
	for _, f := range s.forces {
		if f.removed {
			f.free()
			continue
		}
		keptForces = append(keptForces, f)
	}
	sweptForces := len(s.forces) - len(keptForces)
	clear(s.forces[len(keptForces):])
	s.forces = keptForces

	if sweptBodies > 0 || sweptForces > 0 {
		s.logger.Debug("swept scene", "bodies", sweptBodies, "forces", sweptForces,
			"remaining_bodies", len(s.bodies), "remaining_forces", len(s.forces))
	}
}

// Release destroys every force effect and body in the scene. The scene is
// empty afterwards.
func (s *Scene) Release() {
	for _, f := range s.forces {
		f.free()
	}
	for _, b := range s.bodies {
		b.Release()
	}
	s.forces = s.forces[:0]
	s.bodies = s.bodies[:0]
}

func (s *Scene) checkBodyIndex(index int) {
	if index < 0 || index >= len(s.bodies) {
		panic(fmt.Sprintf("scene: body index %d out of range [0, %d)", index, len(s.bodies)))
	}
}

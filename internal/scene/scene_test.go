package scene

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rigid2d/internal/body"
	"github.com/tomz197/rigid2d/internal/color"
	"github.com/tomz197/rigid2d/internal/polygon"
	"github.com/tomz197/rigid2d/internal/vector"
)

func newBody(x float64) *body.Body {
	return body.New(polygon.Rect(1, 1, vector.New(x, 0)), 1, color.White)
}

func TestAddAndGet(t *testing.T) {
	s := New()
	a, b := newBody(0), newBody(5)
	s.AddBody(a)
	s.AddBody(b)

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if s.Body(0) != a || s.Body(1) != b {
		t.Error("bodies not returned in insertion order")
	}
}

func TestBodyIndexPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(s *Scene)
	}{
		{"Body past end", func(s *Scene) { s.Body(1) }},
		{"Body negative", func(s *Scene) { s.Body(-1) }},
		{"RemoveBody past end", func(s *Scene) { s.RemoveBody(3) }},
		{"RemoveForce empty", func(s *Scene) { s.RemoveForce(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.AddBody(newBody(0))
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(s)
		})
	}
}

func TestTickIntegratesBodies(t *testing.T) {
	s := New()
	b := newBody(0)
	b.SetVelocity(vector.New(2, 0))
	s.AddBody(b)

	s.Tick(0.5)
	if c := b.Centroid(); !c.Within(1e-9, vector.New(1, 0)) {
		t.Errorf("Centroid = %v, want (1,0)", c)
	}
}

func TestForcesRunBeforeIntegration(t *testing.T) {
	s := New()
	b := newBody(0)
	s.AddBody(b)

	var seen []vector.Vector
	s.AddBodiesForceCreator(func() {
		seen = append(seen, b.Centroid())
		b.AddImpulse(vector.New(1, 0))
	}, []*body.Body{b}, nil)

	s.Tick(1)
	s.Tick(1)

	if len(seen) != 2 {
		t.Fatalf("force ran %d times, want 2", len(seen))
	}
	if !seen[0].Within(1e-9, vector.Zero) {
		t.Errorf("first run saw centroid %v, want origin", seen[0])
	}
	// tick 1: v 0 -> 1, dx = 0.5; tick 2 sees x = 0.5
	if !seen[1].Within(1e-9, vector.New(0.5, 0)) {
		t.Errorf("second run saw centroid %v, want (0.5,0)", seen[1])
	}
}

func TestRemovalIsDeferredToSweep(t *testing.T) {
	s := New()
	a, b := newBody(0), newBody(10)
	s.AddBody(a)
	s.AddBody(b)

	var observed []bool
	s.AddForceCreator(func() {
		if s.Len() == 2 {
			a.Remove()
		}
	}, nil)
	s.AddForceCreator(func() {
		observed = append(observed, s.Len() == 2 && s.Body(0).IsRemoved())
	}, nil)

	s.Tick(1)
	if len(observed) != 1 || !observed[0] {
		t.Errorf("later effect did not see flagged body: %v", observed)
	}
	if s.Len() != 1 || s.Body(0) != b {
		t.Errorf("body not swept: Len = %d", s.Len())
	}
}

func TestRemoveBodyByIndex(t *testing.T) {
	s := New()
	released := 0
	s.AddBody(body.NewWithInfo(polygon.Rect(1, 1, vector.Zero), 1, color.Black, "x", func(any) { released++ }))
	s.AddBody(newBody(3))

	s.RemoveBody(0)
	if s.Len() != 2 || !s.Body(0).IsRemoved() {
		t.Fatal("RemoveBody should only mark the body")
	}

	s.Tick(0.1)
	if s.Len() != 1 {
		t.Errorf("Len = %d after sweep, want 1", s.Len())
	}
	if released != 1 {
		t.Errorf("payload released %d times, want 1", released)
	}
}

func TestForceRemovedWithDependency(t *testing.T) {
	s := New()
	a, b := newBody(0), newBody(5)
	s.AddBody(a)
	s.AddBody(b)

	runs := 0
	freed := 0
	s.AddBodiesForceCreator(func() { runs++ }, []*body.Body{a, b}, func() { freed++ })
	s.AddForceCreator(func() {}, nil)

	s.Tick(1)
	b.Remove()
	s.Tick(1)

	if s.ForceLen() != 1 {
		t.Errorf("ForceLen = %d, want 1", s.ForceLen())
	}
	if freed != 1 {
		t.Errorf("release ran %d times, want 1", freed)
	}

	s.Tick(1)
	if runs != 2 {
		t.Errorf("force ran %d times, want 2", runs)
	}
}

func TestRemoveForce(t *testing.T) {
	s := New()
	runs := 0
	freed := false
	s.AddForceCreator(func() { runs++ }, func() { freed = true })

	s.RemoveForce(0)
	s.Tick(1)
	if s.ForceLen() != 0 || !freed {
		t.Errorf("ForceLen = %d, freed = %v", s.ForceLen(), freed)
	}
	s.Tick(1)
	if runs != 1 {
		t.Errorf("force ran %d times, want 1", runs)
	}
}

func TestRelease(t *testing.T) {
	s := New()
	bodiesFreed, forcesFreed := 0, 0
	for i := range 3 {
		s.AddBody(body.NewWithInfo(polygon.Rect(1, 1, vector.New(float64(i), 0)), 1, color.Black, i,
			func(any) { bodiesFreed++ }))
	}
	s.AddForceCreator(func() {}, func() { forcesFreed++ })

	s.Release()
	if bodiesFreed != 3 || forcesFreed != 1 {
		t.Errorf("released %d bodies and %d forces, want 3 and 1", bodiesFreed, forcesFreed)
	}
	if s.Len() != 0 || s.ForceLen() != 0 {
		t.Error("scene not empty after Release")
	}
}

func TestSweepLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := New(WithLogger(logger))
	s.AddBody(newBody(0))

	s.Tick(1)
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %q", buf.String())
	}

	s.RemoveBody(0)
	s.Tick(1)
	if !strings.Contains(buf.String(), "swept scene") {
		t.Errorf("missing sweep log, got %q", buf.String())
	}
}

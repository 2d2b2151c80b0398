package body

import (
	"math"
	"testing"

	"github.com/tomz197/rigid2d/internal/color"
	"github.com/tomz197/rigid2d/internal/polygon"
	"github.com/tomz197/rigid2d/internal/vector"
)

const eps = 1e-9

func unitSquare() polygon.Polygon {
	return polygon.Rect(2, 2, vector.New(1, 1))
}

func TestNewComputesCentroid(t *testing.T) {
	b := New(unitSquare(), 3, color.Red)
	if c := b.Centroid(); !c.Within(eps, vector.New(1, 1)) {
		t.Errorf("Centroid = %v, want (1,1)", c)
	}
	if b.Mass() != 3 || b.Immovable() {
		t.Errorf("Mass = %v, Immovable = %v", b.Mass(), b.Immovable())
	}
	if b.Color() != color.Red {
		t.Errorf("Color = %v, want red", b.Color())
	}
	if b.IsRemoved() {
		t.Error("new body is removed")
	}
}

func TestShapeIsDefensiveCopy(t *testing.T) {
	src := unitSquare()
	b := New(src, 1, color.Black)

	src.Translate(vector.New(100, 100))
	if c := b.Shape().Centroid(); !c.Within(eps, vector.New(1, 1)) {
		t.Errorf("mutating constructor input moved body to %v", c)
	}

	shape := b.Shape()
	shape.Translate(vector.New(5, 5))
	if c := b.Shape().Centroid(); !c.Within(eps, vector.New(1, 1)) {
		t.Errorf("mutating returned shape moved body to %v", c)
	}
}

func TestSetCentroidTranslatesShape(t *testing.T) {
	b := New(unitSquare(), 1, color.Black)
	b.SetCentroid(vector.New(10, -4))

	if c := b.Shape().Centroid(); !c.Within(eps, vector.New(10, -4)) {
		t.Errorf("shape centroid = %v, want (10,-4)", c)
	}
	want := vector.New(9, -5)
	if got := b.Shape()[0]; !got.Within(eps, want) {
		t.Errorf("first vertex = %v, want %v", got, want)
	}
}

func TestSetRotationIsRelativeToStoredAngle(t *testing.T) {
	b := New(polygon.Rect(4, 2, vector.Zero), 1, color.Black)

	b.SetRotation(math.Pi / 2)
	b.SetRotation(math.Pi / 2)
	if got := b.Rotation(); got != math.Pi/2 {
		t.Errorf("Rotation = %v, want π/2", got)
	}

	r := b.Shape().Project(vector.New(0, 1))
	if math.Abs(r.Max-2) > eps || math.Abs(r.Min+2) > eps {
		t.Errorf("rotated extent along y = %v, want [-2, 2]", r)
	}

	b.SetRotation(0)
	r = b.Shape().Project(vector.New(1, 0))
	if math.Abs(r.Max-2) > eps || math.Abs(r.Min+2) > eps {
		t.Errorf("restored extent along x = %v, want [-2, 2]", r)
	}
}

func TestTickTrapezoidalIntegration(t *testing.T) {
	b := New(unitSquare(), 2, color.Black)
	b.SetVelocity(vector.New(1, 0))
	b.AddForce(vector.New(4, 0))
	b.AddImpulse(vector.New(0, 2))

	b.Tick(0.5)

	// dv = (impulse + force*dt) / m = ((0,2) + (2,0)) / 2 = (1,1)
	wantV := vector.New(2, 1)
	if v := b.Velocity(); !v.Within(eps, wantV) {
		t.Errorf("Velocity = %v, want %v", v, wantV)
	}
	// displacement = dt * (old+new)/2 = 0.5 * (1.5, 0.5)
	wantC := vector.New(1.75, 1.25)
	if c := b.Centroid(); !c.Within(eps, wantC) {
		t.Errorf("Centroid = %v, want %v", c, wantC)
	}

	b.Tick(1)
	if v := b.Velocity(); !v.Within(eps, wantV) {
		t.Errorf("accumulators not reset: velocity = %v", v)
	}
}

func TestTickInfiniteMass(t *testing.T) {
	b := New(unitSquare(), InfiniteMass, color.Black)
	if !b.Immovable() {
		t.Fatal("infinite mass body is not immovable")
	}

	b.Tick(1)
	if v := b.Velocity(); !v.Equal(vector.Zero) {
		t.Errorf("velocity after empty tick = %v, want zero", v)
	}
	if c := b.Centroid(); math.IsNaN(c.X) || math.IsNaN(c.Y) {
		t.Errorf("centroid became NaN: %v", c)
	}

	b.SetVelocity(vector.New(3, 0))
	b.AddForce(vector.New(1000, 0))
	b.AddImpulse(vector.New(0, 1000))
	b.Tick(1)
	if v := b.Velocity(); !v.Equal(vector.New(3, 0)) {
		t.Errorf("immovable body velocity = %v, want (3,0)", v)
	}
	if c := b.Centroid(); !c.Within(eps, vector.New(4, 1)) {
		t.Errorf("immovable body centroid = %v, want (4,1)", c)
	}
}

func TestRemove(t *testing.T) {
	b := New(unitSquare(), 1, color.Black)
	b.Remove()
	if !b.IsRemoved() {
		t.Error("IsRemoved = false after Remove")
	}
}

func TestReleaseRunsOnce(t *testing.T) {
	type tag struct{ name string }
	payload := &tag{"ball"}
	calls := 0

	b := NewWithInfo(unitSquare(), 1, color.Black, payload, func(info any) {
		if info != payload {
			t.Errorf("release got %v, want payload", info)
		}
		calls++
	})

	if b.Info() != payload {
		t.Errorf("Info = %v, want payload", b.Info())
	}
	b.Release()
	b.Release()
	if calls != 1 {
		t.Errorf("release called %d times, want 1", calls)
	}

	// A nil release func is allowed.
	New(unitSquare(), 1, color.Black).Release()
}

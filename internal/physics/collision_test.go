package physics

import (
	"math"
	"testing"

	"github.com/tomz197/rigid2d/internal/polygon"
	"github.com/tomz197/rigid2d/internal/vector"
)

const eps = 1e-9

func poly(pts ...float64) polygon.Polygon {
	p := make(polygon.Polygon, 0, len(pts)/2)
	for i := 0; i+1 < len(pts); i += 2 {
		p = append(p, vector.New(pts[i], pts[i+1]))
	}
	return p
}

func diamond(center vector.Vector, r float64) polygon.Polygon {
	return polygon.Polygon{
		{X: center.X + r, Y: center.Y},
		{X: center.X, Y: center.Y + r},
		{X: center.X - r, Y: center.Y},
		{X: center.X, Y: center.Y - r},
	}
}

func TestFindCollisionPairs(t *testing.T) {
	tests := []struct {
		name   string
		a, b   polygon.Polygon
		collid bool
	}{
		{
			"overlapping horizontal",
			poly(1, 1, 3, 1, 3, 2, 1, 2),
			poly(2, 1, 4, 1, 4, 2, 2, 2),
			true,
		},
		{
			"overlapping vertical",
			poly(1, 1, 2, 1, 2, 3, 1, 3),
			poly(1, 2, 2, 2, 2, 4, 1, 4),
			true,
		},
		{
			"separated horizontal",
			poly(1, 1, 2, 1, 2, 2, 1, 2),
			poly(3, 1, 4, 1, 4, 2, 3, 2),
			false,
		},
		{
			"separated vertical",
			poly(1, 1, 2, 1, 2, 2, 1, 2),
			poly(1, 3, 2, 3, 2, 4, 1, 4),
			false,
		},
		{
			"nested",
			polygon.Rect(10, 10, vector.Zero),
			polygon.Rect(1, 1, vector.New(1, 1)),
			true,
		},
		{
			"clockwise winding",
			poly(1, 2, 3, 2, 3, 1, 1, 1),
			poly(2, 2, 4, 2, 4, 1, 2, 1),
			true,
		},
		{
			"separated only by diamond edge",
			polygon.Rect(1, 1, vector.New(0.5, 0.5)),
			diamond(vector.New(1.6, 1.6), 0.7),
			false,
		},
		{
			"touching edges",
			poly(0, 0, 1, 0, 1, 1, 0, 1),
			poly(1, 0, 2, 0, 2, 1, 1, 1),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindCollision(tt.a, tt.b).Collided; got != tt.collid {
				t.Errorf("FindCollision(a, b).Collided = %v, want %v", got, tt.collid)
			}
			if got := Colliding(tt.b, tt.a); got != tt.collid {
				t.Errorf("Colliding(b, a) = %v, want %v", got, tt.collid)
			}
		})
	}
}

func TestSeparatedResultIsEmpty(t *testing.T) {
	c := FindCollision(poly(1, 1, 2, 1, 2, 2, 1, 2), poly(3, 1, 4, 1, 4, 2, 3, 2))
	if c.Collided || !c.Axis.IsZero() || c.Overlap != 0 {
		t.Errorf("separated result = %+v, want zero value", c)
	}
}

func TestAxisPointsFromFirstToSecond(t *testing.T) {
	a := polygon.Rect(2, 2, vector.New(1, 1))

	tests := []struct {
		name string
		b    polygon.Polygon
		axis vector.Vector
	}{
		{"right", polygon.Rect(2, 2, vector.New(2.5, 1.5)), vector.New(1, 0)},
		{"left", polygon.Rect(2, 2, vector.New(-0.5, 0.5)), vector.New(-1, 0)},
		{"above", polygon.Rect(2, 2, vector.New(1.5, 2.75)), vector.New(0, 1)},
		{"below", polygon.Rect(2, 2, vector.New(0.5, -0.75)), vector.New(0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FindCollision(a, tt.b)
			if !c.Collided {
				t.Fatal("expected collision")
			}
			if !c.Axis.Within(eps, tt.axis) {
				t.Errorf("Axis = %v, want %v", c.Axis, tt.axis)
			}
			if math.Abs(c.Axis.Norm()-1) > eps {
				t.Errorf("Axis is not a unit vector: %v", c.Axis)
			}
		})
	}
}

func TestMinimumOverlapUsesBothShapesAxes(t *testing.T) {
	square := polygon.Rect(2, 2, vector.New(1, 1))
	d := diamond(vector.New(3, 3), 2.2)

	c := FindCollision(square, d)
	if !c.Collided {
		t.Fatal("expected collision")
	}

	want := vector.New(1, 1).Normalize()
	if !c.Axis.Within(1e-9, want) {
		t.Errorf("Axis = %v, want %v", c.Axis, want)
	}
	if wantOverlap := 0.2 / math.Sqrt2; math.Abs(c.Overlap-wantOverlap) > 1e-9 {
		t.Errorf("Overlap = %v, want %v", c.Overlap, wantOverlap)
	}
}

func TestOverlapCases(t *testing.T) {
	tests := []struct {
		name   string
		r1, r2 polygon.Range
		want   float64
	}{
		{"r1 leads", polygon.Range{Min: 0, Max: 3}, polygon.Range{Min: 2, Max: 5}, 1},
		{"r2 nested", polygon.Range{Min: 0, Max: 10}, polygon.Range{Min: 2, Max: 5}, 3},
		{"r2 leads", polygon.Range{Min: 4, Max: 8}, polygon.Range{Min: 1, Max: 6}, 2},
		{"r1 nested", polygon.Range{Min: 3, Max: 4}, polygon.Range{Min: 1, Max: 6}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlap(tt.r1, tt.r2); got != tt.want {
				t.Errorf("overlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotatedShapes(t *testing.T) {
	a := polygon.Rect(4, 0.5, vector.Zero)
	b := polygon.Rect(4, 0.5, vector.New(0, 1.5))

	if Colliding(a, b) {
		t.Fatal("parallel bars should not collide")
	}
	a.Rotate(math.Pi/2, vector.Zero)
	if !Colliding(a, b) {
		t.Error("crossed bars should collide")
	}
}

package shape

import (
	"math"
	"testing"

	"github.com/soypat/glgl/math/ms2"
)

var white = Material{Color: Color{1, 1, 1, 1}, Emissivity: 1}

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-4 }

func TestSignedDistanceKinds(t *testing.T) {
	cases := []struct {
		name string
		s    Shape
		p    ms2.Vec
		want float32
	}{
		{"circle outside", NewCircle(ms2.Vec{X: 10, Y: 10}, 5, white), ms2.Vec{X: 20, Y: 10}, 5},
		{"circle centre", NewCircle(ms2.Vec{X: 10, Y: 10}, 5, white), ms2.Vec{X: 10, Y: 10}, -5},
		{"rect side", NewRectangle(ms2.Vec{}, ms2.Vec{X: 2, Y: 1}, white), ms2.Vec{X: 5, Y: 0}, 3},
		{"rect corner", NewRectangle(ms2.Vec{}, ms2.Vec{X: 2, Y: 1}, white), ms2.Vec{X: 5, Y: 5}, 5},
		{"rect inside", NewRectangle(ms2.Vec{}, ms2.Vec{X: 2, Y: 1}, white), ms2.Vec{}, -1},
		{"line end", NewLine(ms2.Vec{}, ms2.Vec{X: 10}, 1, white), ms2.Vec{X: 13}, 2},
		{"line middle", NewLine(ms2.Vec{}, ms2.Vec{X: 10}, 1, white), ms2.Vec{X: 5, Y: 4}, 3},
		{"degenerate line", NewLine(ms2.Vec{X: 1, Y: 1}, ms2.Vec{X: 1, Y: 1}, 1, white), ms2.Vec{X: 4, Y: 5}, 4},
		{"triangle outside", NewTriangle(ms2.Vec{}, ms2.Vec{X: 10}, ms2.Vec{Y: 10}, white), ms2.Vec{X: -3, Y: 5}, 3},
		{"triangle inside", NewTriangle(ms2.Vec{}, ms2.Vec{X: 10}, ms2.Vec{Y: 10}, white), ms2.Vec{X: 1, Y: 5}, -1},
		{"triangle cw inside", NewTriangle(ms2.Vec{}, ms2.Vec{Y: 10}, ms2.Vec{X: 10}, white), ms2.Vec{X: 1, Y: 5}, -1},
	}
	for _, c := range cases {
		got := c.s.SignedDistance(c.p)
		if !near(got, c.want) {
			t.Fatalf("%s: got %f want %f", c.name, got, c.want)
		}
	}
}

func TestBoundsContainShape(t *testing.T) {
	shapes := []Shape{
		NewCircle(ms2.Vec{X: 50, Y: 40}, 12, white),
		NewRectangle(ms2.Vec{X: 20, Y: 30}, ms2.Vec{X: 8, Y: 3}, white),
		NewTriangle(ms2.Vec{X: 5, Y: 5}, ms2.Vec{X: 30, Y: 8}, ms2.Vec{X: 12, Y: 40}, white),
		NewLine(ms2.Vec{X: 10, Y: 60}, ms2.Vec{X: 70, Y: 20}, 3, white),
	}
	for _, s := range shapes {
		b := s.Bounds()
		for y := float32(0); y < 100; y++ {
			for x := float32(0); x < 100; x++ {
				p := ms2.Vec{X: x, Y: y}
				if !s.Contains(p) {
					continue
				}
				if p.X < b.Min.X || p.X > b.Max.X || p.Y < b.Min.Y || p.Y > b.Max.Y {
					t.Fatalf("%v: point %v inside shape but outside bounds %+v", s.Kind, p, b)
				}
			}
		}
	}
}

func TestMoveToKeepsGeometry(t *testing.T) {
	tri := NewTriangle(ms2.Vec{}, ms2.Vec{X: 3}, ms2.Vec{Y: 3}, white)
	before := tri.SignedDistance(ms2.Vec{X: 5, Y: 5})
	tri.MoveTo(ms2.Vec{X: 101, Y: 201})
	c := tri.Centroid()
	if !near(c.X, 101) || !near(c.Y, 201) {
		t.Fatalf("centroid not moved: %+v", c)
	}
	after := tri.SignedDistance(ms2.Vec{X: 106, Y: 206})
	if !near(before, after) {
		t.Fatalf("distance changed after translate: %f vs %f", before, after)
	}

	circ := NewCircle(ms2.Vec{X: 1, Y: 1}, 2, white)
	circ.MoveTo(ms2.Vec{X: 9, Y: 8})
	if circ.Center != (ms2.Vec{X: 9, Y: 8}) {
		t.Fatalf("circle centre: %+v", circ.Center)
	}
}

func TestScenePickAndDistance(t *testing.T) {
	sc := NewScene(100, 100)
	if d := sc.Distance(ms2.Vec{X: 1, Y: 1}); !near(d, sc.Diagonal()) {
		t.Fatalf("empty scene distance %f, want diagonal %f", d, sc.Diagonal())
	}
	sc.Add(
		NewCircle(ms2.Vec{X: 50, Y: 50}, 10, white),
		NewCircle(ms2.Vec{X: 55, Y: 50}, 10, white),
	)
	if got := sc.Pick(ms2.Vec{X: 52, Y: 50}); got != 0 {
		t.Fatalf("pick overlapping: got %d want 0", got)
	}
	if got := sc.Pick(ms2.Vec{X: 64, Y: 50}); got != 1 {
		t.Fatalf("pick second: got %d want 1", got)
	}
	if got := sc.Pick(ms2.Vec{X: 1, Y: 1}); got != -1 {
		t.Fatalf("pick miss: got %d", got)
	}
	if d := sc.Distance(ms2.Vec{X: 80, Y: 50}); !near(d, 15) {
		t.Fatalf("min distance %f want 15", d)
	}
	cl := sc.Clone()
	cl.Shapes[0].MoveTo(ms2.Vec{})
	if sc.Shapes[0].Center != (ms2.Vec{X: 50, Y: 50}) {
		t.Fatal("clone shares shapes with source")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Circle, Rectangle, Triangle, Line} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("hexagon"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

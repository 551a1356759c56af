package overlay

import (
	"image/color"
	"testing"

	"RC/internal/cascade"

	"github.com/soypat/glgl/math/ms2"
)

var black = color.RGBA{0, 0, 0, 255}

func count(c *Canvas, clr color.RGBA) int {
	n := 0
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if c.At(x, y) == clr {
				n++
			}
		}
	}
	return n
}

func TestLine(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	cases := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 2, 3, 9, 3, 8},
		{"vertical", 4, 0, 4, 5, 6},
		{"diagonal", 0, 0, 7, 7, 8},
		{"point", 5, 5, 5, 5, 1},
		{"clipped", -100, 10, 100, 10, 16},
		{"outside", -50, -50, -10, -60, 0},
	}
	for _, c := range cases {
		cv := NewCanvas(16, 16)
		cv.Clear()
		cv.Line(c.x0, c.y0, c.x1, c.y1, red)
		if got := count(cv, red); got != c.want {
			t.Fatalf("%s: got %d pixels want %d", c.name, got, c.want)
		}
	}
}

func TestLineEndpoints(t *testing.T) {
	cv := NewCanvas(32, 32)
	clr := color.RGBA{1, 2, 3, 255}
	cv.Line(3, 29, 27, 4, clr)
	if cv.At(3, 29) != clr || cv.At(27, 4) != clr {
		t.Fatalf("endpoints not plotted")
	}
}

func TestLevelColor(t *testing.T) {
	if got := LevelColor(0); got != (color.RGBA{249, 68, 68, 255}) {
		t.Fatalf("level 0: got %v", got)
	}
	if got := LevelColor(4); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("level 4: got %v", got)
	}
	if got := LevelColor(5); got != (color.RGBA{127, 127, 249, 255}) {
		t.Fatalf("level 5: got %v", got)
	}
}

func TestImportantProbe(t *testing.T) {
	cases := []struct {
		mouse float32
		dn    int
		want  int
	}{
		{0, 64, 0},
		{10, 64, 0},
		{100, 64, 1},
		{500, 128, 3},
	}
	for _, c := range cases {
		if got := ImportantProbe(c.mouse, c.dn); got != c.want {
			t.Fatalf("ImportantProbe(%v, %d): got %d want %d", c.mouse, c.dn, got, c.want)
		}
	}
}

func TestDrawLevelRaysImportantOnly(t *testing.T) {
	p := cascade.Params{D0: 64, R0: 4, RL0: 16, SpatialFactor: 2, AngularFactor: 4, LengthFactor: 3, MaxCascade: 0}
	gw, gh := p.GridSize(512, 512)
	pyr := cascade.NewPyramid(gw, gh, 1)
	cv := NewCanvas(512, 512)
	cv.Clear()
	DrawLevelRays(cv, pyr, p.Level(0), RayOptions{Important: true, Mouse: ms2.Vec{X: 40, Y: 40}})

	drawn := 0
	for y := 0; y < cv.Height; y++ {
		for x := 0; x < cv.Width; x++ {
			if cv.At(x, y) == black {
				continue
			}
			drawn++
			if x < 15 || y < 15 || x > 113 || y > 113 {
				t.Fatalf("ray pixel (%d,%d) outside the selected probes", x, y)
			}
		}
	}
	if drawn == 0 {
		t.Fatalf("no rays drawn")
	}
}

func TestDrawHolographicRays(t *testing.T) {
	cv := NewCanvas(64, 64)
	cv.Clear()
	DrawHolographicRays(cv, 3)
	if count(cv, LevelColor(3)) == 0 {
		t.Fatalf("no holographic rays drawn")
	}
	if cv.At(0, 0) != LevelColor(3) {
		t.Fatalf("probe at the origin missing")
	}
}

package shape

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
)

// Kind tags the geometry a Shape carries.
type Kind uint8

const (
	Circle Kind = iota
	Rectangle
	Triangle
	Line
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Rectangle:
		return "rectangle"
	case Triangle:
		return "triangle"
	case Line:
		return "line"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a lower-case shape name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "circle":
		return Circle, nil
	case "rectangle", "rect":
		return Rectangle, nil
	case "triangle":
		return Triangle, nil
	case "line":
		return Line, nil
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

// Color is a linear RGBA color with channels nominally in [0,1].
type Color struct {
	R, G, B, A float32
}

// Transparent is the cleared material color.
var Transparent = Color{}

// Material describes how a shape looks and how much light it emits.
type Material struct {
	Color      Color
	Emissivity float32 // 0..1
}

// Radiance is the light a surface of this material emits.
func (m Material) Radiance() (r, g, b float32) {
	return m.Color.R * m.Emissivity, m.Color.G * m.Emissivity, m.Color.B * m.Emissivity
}

// Shape is one entry of a Scene. Only the fields relevant to Kind are used:
//
//	Circle:    Center, Radius
//	Rectangle: Center, Half (half extents)
//	Triangle:  P0, P1, P2
//	Line:      P0, P1, Thickness
type Shape struct {
	Kind      Kind
	Center    ms2.Vec
	Radius    float32
	Half      ms2.Vec
	P0        ms2.Vec
	P1        ms2.Vec
	P2        ms2.Vec
	Thickness float32
	Material  Material
}

func NewCircle(center ms2.Vec, radius float32, m Material) Shape {
	return Shape{Kind: Circle, Center: center, Radius: radius, Material: m}
}

func NewRectangle(center, half ms2.Vec, m Material) Shape {
	return Shape{Kind: Rectangle, Center: center, Half: half, Material: m}
}

func NewTriangle(p0, p1, p2 ms2.Vec, m Material) Shape {
	return Shape{Kind: Triangle, P0: p0, P1: p1, P2: p2, Material: m}
}

func NewLine(start, end ms2.Vec, thickness float32, m Material) Shape {
	return Shape{Kind: Line, P0: start, P1: end, Thickness: thickness, Material: m}
}

// SignedDistance returns the distance from p to the shape boundary,
// negative inside.
func (s *Shape) SignedDistance(p ms2.Vec) float32 {
	switch s.Kind {
	case Circle:
		return ms2.Norm(ms2.Sub(p, s.Center)) - s.Radius
	case Rectangle:
		d := ms2.Sub(ms2.AbsElem(ms2.Sub(p, s.Center)), s.Half)
		return ms2.Norm(ms2.MaxElem(d, ms2.Vec{})) + math32.Min(math32.Max(d.X, d.Y), 0)
	case Triangle:
		return triangleDistance(p, s.P0, s.P1, s.P2)
	case Line:
		pa := ms2.Sub(p, s.P0)
		ba := ms2.Sub(s.P1, s.P0)
		dd := ms2.Dot(ba, ba)
		var h float32
		if dd > 0 {
			h = ms1.Clamp(ms2.Dot(pa, ba)/dd, 0, 1)
		}
		return ms2.Norm(ms2.Sub(pa, ms2.Scale(h, ba))) - s.Thickness
	}
	return math32.Inf(1)
}

// triangleDistance is the exact signed distance to a triangle.
func triangleDistance(p, p0, p1, p2 ms2.Vec) float32 {
	e0, v0 := ms2.Sub(p1, p0), ms2.Sub(p, p0)
	e1, v1 := ms2.Sub(p2, p1), ms2.Sub(p, p1)
	e2, v2 := ms2.Sub(p0, p2), ms2.Sub(p, p2)

	pq0 := ms2.Sub(v0, ms2.Scale(segmentT(v0, e0), e0))
	pq1 := ms2.Sub(v1, ms2.Scale(segmentT(v1, e1), e1))
	pq2 := ms2.Sub(v2, ms2.Scale(segmentT(v2, e2), e2))

	s := e0.X*e2.Y - e0.Y*e2.X
	d := math32.Min(math32.Min(ms2.Norm2(pq0), ms2.Norm2(pq1)), ms2.Norm2(pq2))
	d = math32.Sqrt(d)
	inside := s*(v0.X*e0.Y-v0.Y*e0.X) > 0 &&
		s*(v1.X*e1.Y-v1.Y*e1.X) > 0 &&
		s*(v2.X*e2.Y-v2.Y*e2.X) > 0
	if inside {
		return -d
	}
	return d
}

func segmentT(v, e ms2.Vec) float32 {
	ee := ms2.Dot(e, e)
	if ee == 0 {
		return 0
	}
	return ms1.Clamp(ms2.Dot(v, e)/ee, 0, 1)
}

// Contains reports whether p lies inside or on the shape.
func (s *Shape) Contains(p ms2.Vec) bool {
	return s.SignedDistance(p) <= 0
}

// Bounds returns the axis aligned bounding box of the shape.
func (s *Shape) Bounds() ms2.Box {
	switch s.Kind {
	case Circle:
		r := ms2.Vec{X: s.Radius, Y: s.Radius}
		return ms2.Box{Min: ms2.Sub(s.Center, r), Max: ms2.Add(s.Center, r)}
	case Rectangle:
		return ms2.Box{Min: ms2.Sub(s.Center, s.Half), Max: ms2.Add(s.Center, s.Half)}
	case Triangle:
		return ms2.Box{
			Min: ms2.MinElem(s.P0, ms2.MinElem(s.P1, s.P2)),
			Max: ms2.MaxElem(s.P0, ms2.MaxElem(s.P1, s.P2)),
		}
	case Line:
		b := ms2.Box{Min: ms2.MinElem(s.P0, s.P1), Max: ms2.MaxElem(s.P0, s.P1)}
		b.Min = ms2.AddScalar(-s.Thickness, b.Min)
		b.Max = ms2.AddScalar(s.Thickness, b.Max)
		return b
	}
	return ms2.Box{}
}

// Centroid returns the anchor point used for dragging.
func (s *Shape) Centroid() ms2.Vec {
	switch s.Kind {
	case Triangle:
		return ms2.Scale(1.0/3, ms2.Add(s.P0, ms2.Add(s.P1, s.P2)))
	case Line:
		return ms2.Scale(0.5, ms2.Add(s.P0, s.P1))
	}
	return s.Center
}

// MoveTo translates the shape so its centroid lands on c.
func (s *Shape) MoveTo(c ms2.Vec) {
	d := ms2.Sub(c, s.Centroid())
	s.Center = ms2.Add(s.Center, d)
	if s.Kind == Triangle || s.Kind == Line {
		s.P0 = ms2.Add(s.P0, d)
		s.P1 = ms2.Add(s.P1, d)
		s.P2 = ms2.Add(s.P2, d)
	}
}

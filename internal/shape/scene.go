package shape

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
)

// Scene is the ordered collection of shapes lit by the cascades. Order
// matters for rasterisation: later shapes paint over earlier ones.
type Scene struct {
	Width, Height int
	Shapes        []Shape
}

// NewScene creates an empty scene covering a width x height field.
func NewScene(width, height int) *Scene {
	return &Scene{Width: width, Height: height}
}

// Add appends shapes in paint order.
func (s *Scene) Add(shapes ...Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// Diagonal is the largest distance representable inside the field.
func (s *Scene) Diagonal() float32 {
	return math32.Hypot(float32(s.Width), float32(s.Height))
}

// Distance returns the minimum signed distance over all shapes, capped at
// the field diagonal.
func (s *Scene) Distance(p ms2.Vec) float32 {
	m := s.Diagonal()
	for i := range s.Shapes {
		if d := s.Shapes[i].SignedDistance(p); d < m {
			m = d
		}
	}
	return m
}

// Pick returns the index of the first shape containing p, or -1.
func (s *Scene) Pick(p ms2.Vec) int {
	for i := range s.Shapes {
		if s.Shapes[i].Contains(p) {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy usable as a frame snapshot.
func (s *Scene) Clone() *Scene {
	c := &Scene{Width: s.Width, Height: s.Height}
	c.Shapes = append([]Shape(nil), s.Shapes...)
	return c
}

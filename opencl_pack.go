package main

import "RC/internal/shape"

// shapeStride is the number of floats each shape occupies in the device
// shape buffer:
//
//	0     kind
//	1..2  centre
//	3     radius or line thickness
//	4..5  rectangle half extents
//	6..11 triangle or line points
const shapeStride = 12

// packShapes flattens the scene into the layout read by the distance kernel.
func packShapes(sc *shape.Scene, dst []float32) []float32 {
	dst = dst[:0]
	for _, s := range sc.Shapes {
		r := s.Radius
		if s.Kind == shape.Line {
			r = s.Thickness
		}
		dst = append(dst,
			float32(s.Kind),
			s.Center.X, s.Center.Y,
			r,
			s.Half.X, s.Half.Y,
			s.P0.X, s.P0.Y,
			s.P1.X, s.P1.Y,
			s.P2.X, s.P2.Y,
		)
	}
	return dst
}

package main

import "github.com/soypat/glgl/math/ms2"

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// cursorPoint converts a cursor position into a field point inside the
// width x height grid.
func cursorPoint(x, y, width, height int) ms2.Vec {
	return ms2.Vec{
		X: float32(clampCoord(x, 0, width-1)),
		Y: float32(clampCoord(y, 0, height-1)),
	}
}

package cascade

import (
	"math"

	"github.com/soypat/glgl/math/ms2"
)

// Normalize returns v scaled to unit length, or the zero vector for a zero v.
func Normalize(v ms2.Vec) ms2.Vec {
	l := ms2.Norm(v)
	if l == 0 {
		return ms2.Vec{}
	}
	return ms2.Scale(1/l, v)
}

// March sphere-traces one ray against the distance field. Each step advances
// by the distance stored at the integer pixel under the current position.
// The ray misses when it travels maxLen or leaves the field, and hits when
// the stored distance drops below Epsilon.
func March(dist *DistanceField, mat *MaterialField, origin, dir ms2.Vec, maxLen float32) Sample {
	w, h := float32(dist.Width), float32(dist.Height)
	var traveled float32
	for traveled < maxLen {
		px := origin.X + dir.X*traveled
		py := origin.Y + dir.Y*traveled
		if px < 0 || py < 0 || px > w || py > h {
			break
		}
		x, y := int(px), int(py)
		if x >= dist.Width || y >= dist.Height {
			break
		}
		d := dist.At(x, y)
		if d < Epsilon {
			return Hit(mat.At(x, y))
		}
		traveled += d
	}
	return Miss
}

// direction is the unit vector of angular bucket i out of n; the angle is
// evaluated in float64 so mirrored buckets get mirrored vectors.
func direction(i, n int) ms2.Vec {
	a := TAU * (float64(i) + 0.5) / float64(n)
	s, c := math.Sincos(a)
	return ms2.Vec{X: float32(c), Y: float32(s)}
}

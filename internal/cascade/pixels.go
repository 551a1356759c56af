package cascade

import (
	"RC/internal/shape"

	"github.com/soypat/glgl/math/ms1"
)

func channel(v float32) byte {
	return byte(ms1.Clamp(v, 0, 1)*255 + 0.5)
}

func putColor(dst []byte, i int, c shape.Color) {
	dst[i*4] = channel(c.R)
	dst[i*4+1] = channel(c.G)
	dst[i*4+2] = channel(c.B)
	dst[i*4+3] = channel(c.A)
}

// IrradiancePixels writes ir as opaque RGBA8 into dst, which must hold
// 4*W*H bytes.
func IrradiancePixels(ir *Irradiance, dst []byte) {
	for i, c := range ir.Data {
		c.A = 1
		putColor(dst, i, c)
	}
}

// DistancePixels writes the distance field as a grey ramp where black is a
// surface and white is maxDist away.
func DistancePixels(df *DistanceField, maxDist float32, dst []byte) {
	for i, d := range df.Data {
		v := channel(d / maxDist)
		dst[i*4] = v
		dst[i*4+1] = v
		dst[i*4+2] = v
		dst[i*4+3] = 255
	}
}

// OverlayMaterials paints every occupied pixel of mat over dst with the
// shape's own color.
func OverlayMaterials(mat *MaterialField, dst []byte) {
	for i, m := range mat.Data {
		if m.Color.A == 0 {
			continue
		}
		putColor(dst, i, m.Color)
	}
}

package cascade

import (
	"fmt"

	"RC/internal/shape"

	"github.com/soypat/glgl/math/ms2"
)

// BuildMaterials clears dst and rasterises every shape in scene order inside
// its clipped bounds. Later shapes overwrite earlier ones. Bands split rows
// only, so paint order is kept within every pixel.
func BuildMaterials(sc *shape.Scene, dst *MaterialField, workers int) error {
	if sc.Width != dst.Width || sc.Height != dst.Height {
		return fmt.Errorf("material field is %dx%d, scene is %dx%d", dst.Width, dst.Height, sc.Width, sc.Height)
	}
	return forEachBand(dst.Height, workers, func(_ int, by0, by1 int) error {
		clear(dst.Data[by0*dst.Width : by1*dst.Width])
		for i := range sc.Shapes {
			s := &sc.Shapes[i]
			b := s.Bounds()
			x0, x1 := clipSpan(b.Min.X, b.Max.X, dst.Width)
			y0, y1 := clipSpan(b.Min.Y, b.Max.Y, dst.Height)
			y0, y1 = max(y0, by0), min(y1, by1)
			for y := y0; y < y1; y++ {
				row := dst.Data[y*dst.Width : (y+1)*dst.Width]
				for x := x0; x < x1; x++ {
					if s.Contains(ms2.Vec{X: float32(x), Y: float32(y)}) {
						row[x] = s.Material
					}
				}
			}
		}
		return nil
	})
}

// clipSpan converts a float extent into a pixel range clipped to [0, limit).
// The range includes the pixel holding to.
func clipSpan(from, to float32, limit int) (int, int) {
	lo := int(from)
	if lo < 0 {
		lo = 0
	}
	hi := int(to) + 1
	if hi > limit {
		hi = limit
	}
	return lo, hi
}

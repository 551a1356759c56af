package cascade

import (
	"fmt"

	"RC/internal/shape"

	"github.com/soypat/glgl/math/ms2"
)

// DistanceBuilder fills a distance field from a scene snapshot.
type DistanceBuilder interface {
	BuildDistance(sc *shape.Scene, dst *DistanceField) error
}

// CPUDistance is the brute force builder: every pixel takes the minimum over
// every shape, clamped to be non-negative.
type CPUDistance struct {
	Workers int
}

func (b CPUDistance) BuildDistance(sc *shape.Scene, dst *DistanceField) error {
	if sc.Width != dst.Width || sc.Height != dst.Height {
		return fmt.Errorf("distance field is %dx%d, scene is %dx%d", dst.Width, dst.Height, sc.Width, sc.Height)
	}
	return forEachBand(dst.Height, b.Workers, func(_ int, y0, y1 int) error {
		for y := y0; y < y1; y++ {
			row := dst.Data[y*dst.Width : (y+1)*dst.Width]
			for x := range row {
				d := sc.Distance(ms2.Vec{X: float32(x), Y: float32(y)})
				if d < 0 {
					d = 0
				}
				row[x] = d
			}
		}
		return nil
	})
}

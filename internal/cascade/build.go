package cascade

import (
	"github.com/soypat/glgl/math/ms2"
)

// Directions returns the unit direction of every angular bucket of a level,
// indexed by bucket.
func Directions(lv Level) []ms2.Vec {
	dirs := make([]ms2.Vec, lv.Angles)
	for i := range dirs {
		dirs[i] = direction(i, lv.Angles)
	}
	return dirs
}

// ProbeRay returns the origin and direction of the ray stored in cell (x, y)
// of the shared grid for level lv. dirs must come from Directions(lv).
func ProbeRay(lv Level, dirs []ms2.Vec, x, y int) (origin, dir ms2.Vec) {
	rn, dn := lv.Side, lv.Spacing
	half := float32(dn) / 2
	centre := ms2.Vec{
		X: float32((x/rn)*dn) + half,
		Y: float32((y/rn)*dn) + half,
	}
	dir = dirs[x%rn+(y%rn)*rn]
	return ms2.Add(centre, ms2.Scale(lv.Start, dir)), dir
}

// BuildLevel marches every ray of level lv and stores the results in the
// level's slice of the pyramid.
func BuildLevel(dist *DistanceField, mat *MaterialField, pyr *Pyramid, lv Level, workers int) error {
	dirs := Directions(lv)
	cells := pyr.Level(lv.Index)
	return forEachBand(pyr.Height, workers, func(_ int, y0, y1 int) error {
		for y := y0; y < y1; y++ {
			row := cells[y*pyr.Width : (y+1)*pyr.Width]
			for x := range row {
				origin, dir := ProbeRay(lv, dirs, x, y)
				row[x] = March(dist, mat, origin, dir, lv.Length)
			}
		}
		return nil
	})
}

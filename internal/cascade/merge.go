package cascade

import (
	"RC/internal/shape"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
)

// Merger folds the pyramid into per-pixel irradiance. Each worker band owns
// one scratch slice sized to the coarsest level's angle count.
type Merger struct {
	params  Params
	levels  []Level
	scratch [][]Sample
}

func NewMerger(p Params, workers int) *Merger {
	if workers < 1 {
		workers = 1
	}
	levels := p.Levels()
	m := &Merger{params: p, levels: levels, scratch: make([][]Sample, workers)}
	n := levels[len(levels)-1].Angles
	for i := range m.scratch {
		m.scratch[i] = make([]Sample, n)
	}
	return m
}

// Merge writes the irradiance of every pixel of dst.
func (m *Merger) Merge(pyr *Pyramid, dst *Irradiance) error {
	return forEachBand(dst.Height, len(m.scratch), func(band int, y0, y1 int) error {
		buf := m.scratch[band]
		for y := y0; y < y1; y++ {
			row := dst.Data[y*dst.Width : (y+1)*dst.Width]
			for x := range row {
				row[x] = m.pixel(pyr, buf, x, y)
			}
		}
		return nil
	})
}

func (m *Merger) pixel(pyr *Pyramid, buf []Sample, x, y int) (c shape.Color) {
	a := m.params.AngularFactor
	coarsest := len(m.levels) - 1
	for l := coarsest; l >= 0; l-- {
		lv := m.levels[l]
		probe := newProbeBlend(lv, pyr, x, y)
		for r := 0; r < lv.Angles; r++ {
			local := probe.sample(pyr, l, r)
			if l == coarsest || local.Occluded {
				buf[r] = local
				continue
			}
			var sr, sg, sb, st float32
			for k := 0; k < a; k++ {
				s := buf[r*a+k]
				sr += s.R
				sg += s.G
				sb += s.B
				st += s.T
			}
			inv := 1 / float32(a)
			buf[r] = Sample{
				R: local.R + local.T*sr*inv,
				G: local.G + local.T*sg*inv,
				B: local.B + local.T*sb*inv,
				T: local.T * st * inv,
			}
		}
	}
	r0 := m.params.R0
	for k := 0; k < r0; k++ {
		c.R += buf[k].R
		c.G += buf[k].G
		c.B += buf[k].B
	}
	inv := 1 / float32(r0)
	c.R *= inv
	c.G *= inv
	c.B *= inv
	c.A = 1
	return c
}

// probeBlend locates the probes around a pixel at one level.
type probeBlend struct {
	side     int
	px, py   int
	tx, ty   float32
	interior bool
}

func newProbeBlend(lv Level, pyr *Pyramid, x, y int) probeBlend {
	dn := float32(lv.Spacing)
	px, tx := probeAxis(float32(x), dn)
	py, ty := probeAxis(float32(y), dn)
	return probeBlend{
		side:     lv.Side,
		px:       px,
		py:       py,
		tx:       tx,
		ty:       ty,
		interior: (px+1)*lv.Side < pyr.Width && (py+1)*lv.Side < pyr.Height,
	}
}

// probeAxis returns the lower neighbour probe index along one axis and the
// blend weight towards the upper one. Negative indices fold to their
// absolute value.
func probeAxis(v, dn float32) (int, float32) {
	p := math32.Abs(math32.Floor(v/dn - 0.5))
	c0 := (p + 0.5) * dn
	return int(p), ms1.Clamp((v-c0)/dn, 0, 1)
}

// sample returns the blended value of direction r at level l.
func (b probeBlend) sample(pyr *Pyramid, l, r int) Sample {
	ox, oy := r%b.side, r/b.side
	x0, y0 := b.px*b.side+ox, b.py*b.side+oy
	if !b.interior {
		return pyr.At(l, x0, y0)
	}
	x1, y1 := x0+b.side, y0+b.side
	top := lerpSample(pyr.At(l, x0, y0), pyr.At(l, x1, y0), b.tx)
	bottom := lerpSample(pyr.At(l, x0, y1), pyr.At(l, x1, y1), b.tx)
	return lerpSample(top, bottom, b.ty)
}

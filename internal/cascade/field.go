package cascade

import "RC/internal/shape"

// DistanceField stores the clamped scene distance per pixel, row major.
type DistanceField struct {
	Width, Height int
	Data          []float32
}

func NewDistanceField(width, height int) *DistanceField {
	return &DistanceField{Width: width, Height: height, Data: make([]float32, width*height)}
}

// At returns the distance stored for pixel (x, y).
func (f *DistanceField) At(x, y int) float32 {
	return f.Data[y*f.Width+x]
}

// MaterialField stores the top-most shape material per pixel. An unoccupied
// pixel has a fully transparent color.
type MaterialField struct {
	Width, Height int
	Data          []shape.Material
}

func NewMaterialField(width, height int) *MaterialField {
	return &MaterialField{Width: width, Height: height, Data: make([]shape.Material, width*height)}
}

func (f *MaterialField) At(x, y int) shape.Material {
	return f.Data[y*f.Width+x]
}

// Occupied reports whether any shape was rasterised at (x, y).
func (f *MaterialField) Occupied(x, y int) bool {
	return f.Data[y*f.Width+x].Color.A != 0
}

// Sample is one directional radiance value. A ray that hit a surface is
// Occluded and carries the surface radiance with zero transmittance; a ray
// that escaped carries no radiance and full transmittance.
type Sample struct {
	R, G, B  float32
	T        float32
	Occluded bool
}

// Miss is the sample of a ray that reached the end of its interval.
var Miss = Sample{T: 1}

// Hit builds the sample of a ray that ended on a surface.
func Hit(m shape.Material) Sample {
	r, g, b := m.Radiance()
	return Sample{R: r, G: g, B: b}.occluded()
}

func (s Sample) occluded() Sample {
	s.T = 0
	s.Occluded = true
	return s
}

// lerpSample blends a towards b by t in [0,1]. The blend stays occluded only
// when every endpoint contributing weight was occluded.
func lerpSample(a, b Sample, t float32) Sample {
	return Sample{
		R:        a.R + (b.R-a.R)*t,
		G:        a.G + (b.G-a.G)*t,
		B:        a.B + (b.B-a.B)*t,
		T:        a.T + (b.T-a.T)*t,
		Occluded: (a.Occluded || t >= 1) && (b.Occluded || t <= 0),
	}
}

// Pyramid stores every cascade level in one arena. All levels share the
// same grid size so a cell is addressed by (level, x, y) with a fixed stride.
type Pyramid struct {
	Width, Height int
	Depth         int
	Data          []Sample
}

func NewPyramid(width, height, depth int) *Pyramid {
	p := &Pyramid{Width: width, Height: height, Depth: depth, Data: make([]Sample, depth*width*height)}
	for i := range p.Data {
		p.Data[i] = Miss
	}
	return p
}

func (p *Pyramid) stride() int { return p.Width * p.Height }

func (p *Pyramid) index(level, x, y int) int {
	return level*p.stride() + y*p.Width + x
}

// At returns the sample at (x, y) of a level. Cells outside the grid read as
// a miss.
func (p *Pyramid) At(level, x, y int) Sample {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return Miss
	}
	return p.Data[p.index(level, x, y)]
}

func (p *Pyramid) set(level, x, y int, s Sample) {
	p.Data[p.index(level, x, y)] = s
}

// Level returns the row-major slice backing one level.
func (p *Pyramid) Level(level int) []Sample {
	s := p.stride()
	return p.Data[level*s : (level+1)*s]
}

// Irradiance is the merged per-pixel light, row major.
type Irradiance struct {
	Width, Height int
	Data          []shape.Color
}

func NewIrradiance(width, height int) *Irradiance {
	ir := &Irradiance{Width: width, Height: height, Data: make([]shape.Color, width*height)}
	for i := range ir.Data {
		ir.Data[i].A = 1
	}
	return ir
}

func (ir *Irradiance) At(x, y int) shape.Color {
	return ir.Data[y*ir.Width+x]
}

// Package overlay rasterises debug geometry (cascade rays and probe fans)
// into RGBA8 pixel buffers.
package overlay

import (
	"image/color"

	"RC/internal/cascade"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
)

// Canvas is a row-major RGBA8 pixel buffer.
type Canvas struct {
	Width, Height int
	Pix           []byte
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{Width: width, Height: height, Pix: make([]byte, 4*width*height)}
}

// Clear fills the canvas with opaque black.
func (c *Canvas) Clear() {
	for i := 0; i < len(c.Pix); i += 4 {
		c.Pix[i], c.Pix[i+1], c.Pix[i+2], c.Pix[i+3] = 0, 0, 0, 255
	}
}

// Set writes one pixel; coordinates outside the canvas are ignored.
func (c *Canvas) Set(x, y int, clr color.RGBA) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	i := 4 * (y*c.Width + x)
	c.Pix[i], c.Pix[i+1], c.Pix[i+2], c.Pix[i+3] = clr.R, clr.G, clr.B, clr.A
}

func (c *Canvas) At(x, y int) color.RGBA {
	i := 4 * (y*c.Width + x)
	return color.RGBA{c.Pix[i], c.Pix[i+1], c.Pix[i+2], c.Pix[i+3]}
}

// Line plots a line segment using Bresenham's integer algorithm. The segment
// is clipped to an expanded canvas first so very long rays stay cheap.
func (c *Canvas) Line(x0, y0, x1, y1 int, clr color.RGBA) {
	if !c.clip(&x0, &y0, &x1, &y1) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.Set(x0, y0, clr)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clip shortens the segment to the canvas bounds padded by one pixel with
// Liang-Barsky. It reports false when nothing is left to draw.
func (c *Canvas) clip(x0, y0, x1, y1 *int) bool {
	fx0, fy0 := float32(*x0), float32(*y0)
	dx, dy := float32(*x1)-fx0, float32(*y1)-fy0
	t0, t1 := float32(0), float32(1)
	minX, minY := float32(-1), float32(-1)
	maxX, maxY := float32(c.Width), float32(c.Height)
	edges := [4][2]float32{
		{-dx, fx0 - minX},
		{dx, maxX - fx0},
		{-dy, fy0 - minY},
		{dy, maxY - fy0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math32.Max(t0, r)
		} else {
			t1 = math32.Min(t1, r)
		}
		if t0 > t1 {
			return false
		}
	}
	if t1 < 1 {
		*x1 = int(math32.Round(fx0 + t1*dx))
		*y1 = int(math32.Round(fy0 + t1*dy))
	}
	if t0 > 0 {
		*x0 = int(math32.Round(fx0 + t0*dx))
		*y0 = int(math32.Round(fy0 + t0*dy))
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// LevelColor is the overlay color of cascade cn.
func LevelColor(cn int) color.RGBA {
	switch cn {
	case 0:
		return rgb(0.98, 0.27, 0.27)
	case 1:
		return rgb(0.99, 0.69, 0.14)
	case 2:
		return rgb(0.16, 0.76, 0.19)
	case 3:
		return rgb(0.28, 0.93, 0.79)
	case 5:
		return rgb(0.50, 0.50, 0.98)
	}
	return color.RGBA{255, 255, 255, 255}
}

func rgb(r, g, b float32) color.RGBA {
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

// ImportantProbe returns the lower probe index of the 2x2 block around the
// mouse along one axis.
func ImportantProbe(mouse float32, spacing int) int {
	dn := float32(spacing)
	return max(int(math32.Floor(mouse/dn-0.5)), 0)
}

// RayOptions select which rays of a level are drawn.
type RayOptions struct {
	// Important restricts drawing to the 2x2 probes around Mouse, drawn in
	// the level color. Otherwise every ray is drawn in its sampled radiance.
	Important bool
	Mouse     ms2.Vec
}

// DrawLevelRays draws the interval segment of every ray stored in level lv.
func DrawLevelRays(c *Canvas, pyr *cascade.Pyramid, lv cascade.Level, opt RayOptions) {
	dirs := cascade.Directions(lv)
	levelColor := LevelColor(lv.Index)
	px := ImportantProbe(opt.Mouse.X, lv.Spacing)
	py := ImportantProbe(opt.Mouse.Y, lv.Spacing)
	for y := 0; y < pyr.Height; y++ {
		for x := 0; x < pyr.Width; x++ {
			clr := levelColor
			if opt.Important {
				bx, by := x/lv.Side, y/lv.Side
				if (bx != px && bx != px+1) || (by != py && by != py+1) {
					continue
				}
			} else {
				s := pyr.At(lv.Index, x, y)
				clr = rgb(clamp01(s.R), clamp01(s.G), clamp01(s.B))
			}
			origin, dir := cascade.ProbeRay(lv, dirs, x, y)
			end := ms2.Add(origin, ms2.Scale(lv.Length, dir))
			c.Line(int(origin.X), int(origin.Y), int(end.X), int(end.Y), clr)
		}
	}
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

// DrawHolographicRays draws the fixed fan of a holographic cascade level:
// probes every 2^cn pixels, each casting 2^cn rays across one probe cell.
func DrawHolographicRays(c *Canvas, cn int) {
	step := 1 << cn
	clr := LevelColor(cn)
	for y := 0; y < c.Height/step; y++ {
		for x := 0; x < c.Width/step; x++ {
			ox, oy := x*step, y*step
			for r := 0; r < step; r++ {
				c.Line(ox, oy, ox+step, oy+step-1-2*r, clr)
			}
		}
	}
}

package cascade

import (
	"errors"
	"fmt"
	"math"
)

// TAU is a full turn in radians.
const TAU = 2 * math.Pi

// Epsilon is the distance below which a march counts as a hit.
const Epsilon = 1e-3

var (
	// ErrDegenerateGrowth is returned when a growth factor of 1 makes the
	// cascade count derivation a degenerate geometric series.
	ErrDegenerateGrowth = errors.New("cascade: growth factor of 1 gives a degenerate pyramid")
	// ErrInvalidParams wraps every other parameter validation failure.
	ErrInvalidParams = errors.New("cascade: invalid parameters")
)

// Params are the startup cascade parameters.
//
// D0 is the probe spacing, R0 the ray count and RL0 the ray length of
// cascade 0. The three factors scale spacing, ray count and ray length per
// level. MaxCascade is the index of the coarsest level.
type Params struct {
	D0, R0, RL0   int
	SpatialFactor int
	AngularFactor int
	LengthFactor  int
	MaxCascade    int
}

// Level holds the derived parameters of one cascade.
type Level struct {
	Index   int
	Spacing int     // dn, distance between probes
	Angles  int     // an, rays per probe
	Side    int     // rn, sqrt(an); probe tile side in the shared grid
	Length  float32 // ray interval length
	Start   float32 // ray interval start, distance from the probe centre
}

// End is the exclusive end of the level's ray interval.
func (l Level) End() float32 { return l.Start + l.Length }

func ipow(b, e int) int {
	r := 1
	for ; e > 0; e-- {
		r *= b
	}
	return r
}

func isqrt(v int) (int, bool) {
	r := int(math.Sqrt(float64(v)))
	for r*r > v {
		r--
	}
	for (r+1)*(r+1) <= v {
		r++
	}
	return r, r*r == v
}

// Validate checks the parameters describe a constructible pyramid.
func (p Params) Validate() error {
	if p.D0 <= 0 || p.R0 <= 0 || p.RL0 <= 0 {
		return fmt.Errorf("%w: d0, r0 and rl0 must be positive (got %d, %d, %d)", ErrInvalidParams, p.D0, p.R0, p.RL0)
	}
	if p.SpatialFactor <= 0 || p.AngularFactor <= 0 || p.LengthFactor <= 0 {
		return fmt.Errorf("%w: growth factors must be positive", ErrInvalidParams)
	}
	if p.LengthFactor == 1 {
		return ErrDegenerateGrowth
	}
	if p.MaxCascade < 0 {
		return fmt.Errorf("%w: max cascade %d is negative", ErrInvalidParams, p.MaxCascade)
	}
	if _, ok := isqrt(p.R0); !ok {
		return fmt.Errorf("%w: r0=%d is not a perfect square", ErrInvalidParams, p.R0)
	}
	if _, ok := isqrt(p.AngularFactor); !ok {
		return fmt.Errorf("%w: angular factor %d is not a perfect square", ErrInvalidParams, p.AngularFactor)
	}
	an, dn, length := p.R0, p.D0, float64(p.RL0)
	for cn := 1; cn <= p.MaxCascade; cn++ {
		if an > math.MaxInt32/p.AngularFactor || dn > math.MaxInt32/p.SpatialFactor {
			return fmt.Errorf("%w: cascade %d overflows its ray or probe count", ErrInvalidParams, cn)
		}
		an *= p.AngularFactor
		dn *= p.SpatialFactor
		length *= float64(p.LengthFactor)
		if length > math.MaxFloat32 {
			return fmt.Errorf("%w: cascade %d ray length overflows", ErrInvalidParams, cn)
		}
	}
	return nil
}

// Level returns the derived parameters of cascade cn.
func (p Params) Level(cn int) Level {
	an := p.R0 * ipow(p.AngularFactor, cn)
	rn, _ := isqrt(an)
	f := float64(p.LengthFactor)
	fn := math.Pow(f, float64(cn))
	return Level{
		Index:   cn,
		Spacing: p.D0 * ipow(p.SpatialFactor, cn),
		Angles:  an,
		Side:    rn,
		Length:  float32(float64(p.RL0) * fn),
		Start:   float32(float64(p.RL0) * (1 - fn) / (1 - f)),
	}
}

// Levels returns every level from 0 to MaxCascade.
func (p Params) Levels() []Level {
	levels := make([]Level, p.MaxCascade+1)
	for i := range levels {
		levels[i] = p.Level(i)
	}
	return levels
}

// GridSize is the shared per-level radiance buffer size for a field.
func (p Params) GridSize(width, height int) (int, int) {
	side := math.Sqrt(float64(p.R0))
	return int(side * float64(width) / float64(p.D0)), int(side * float64(height) / float64(p.D0))
}

// DeriveMaxCascade picks the coarsest cascade index for a field diagonal,
// reproducing the sizing the parameters were designed around.
func DeriveMaxCascade(diagonal float32, d0, spatialFactor, lengthFactor int) (int, error) {
	if lengthFactor == 1 || spatialFactor == 1 {
		return 0, ErrDegenerateGrowth
	}
	if d0 <= 0 || spatialFactor <= 0 || lengthFactor <= 0 || diagonal <= 0 {
		return 0, fmt.Errorf("%w: cannot derive cascade count from diagonal %.1f, d0 %d", ErrInvalidParams, diagonal, d0)
	}
	factor := math.Ceil(math.Log(float64(diagonal)/float64(d0)) / math.Log(float64(lengthFactor)))
	s2 := float64(spatialFactor * spatialFactor)
	start := int(float64(d0) * (1 - math.Pow(s2, factor)) / (1 - s2))
	if start <= 0 {
		return 0, fmt.Errorf("%w: field is smaller than one probe interval", ErrInvalidParams)
	}
	n := int(math.Ceil(math.Log(float64(start))/math.Log(s2))) - 1
	if n < 0 {
		return 0, fmt.Errorf("%w: derived cascade count %d", ErrInvalidParams, n+1)
	}
	return n, nil
}

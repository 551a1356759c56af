package cascade

import (
	"fmt"
	"time"

	"RC/internal/shape"
)

// Stats records how long each stage of the last Compute took.
type Stats struct {
	Distance  time.Duration
	Materials time.Duration
	Levels    []time.Duration
	Merge     time.Duration
	Total     time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of row bands each stage is split into. One
// worker runs every stage serially.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.workers = n
		}
	}
}

// WithDistanceBuilder replaces the CPU distance field builder.
func WithDistanceBuilder(b DistanceBuilder) Option {
	return func(e *Engine) {
		if b != nil {
			e.builder = b
		}
	}
}

// WithMerge enables or disables the irradiance merge at the end of Compute.
func WithMerge(on bool) Option {
	return func(e *Engine) { e.merge = on }
}

// Engine owns every buffer of the pipeline and recomputes them from a scene
// snapshot once per frame.
type Engine struct {
	width, height int
	params        Params
	levels        []Level

	workers int
	builder DistanceBuilder
	merge   bool

	dist   *DistanceField
	mat    *MaterialField
	pyr    *Pyramid
	irr    *Irradiance
	merger *Merger

	stats Stats
}

// NewEngine validates p and allocates every buffer for a width x height
// field.
func NewEngine(width, height int, p Params, opts ...Option) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: field size %dx%d", ErrInvalidParams, width, height)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	gw, gh := p.GridSize(width, height)
	if gw <= 0 || gh <= 0 {
		return nil, fmt.Errorf("%w: d0=%d leaves an empty %dx%d probe grid", ErrInvalidParams, p.D0, gw, gh)
	}
	if coarsest := p.Level(p.MaxCascade); coarsest.Angles > width*height {
		return nil, fmt.Errorf("%w: cascade %d casts %d rays per probe, more than the %dx%d field has pixels",
			ErrInvalidParams, coarsest.Index, coarsest.Angles, width, height)
	}
	e := &Engine{
		width:   width,
		height:  height,
		params:  p,
		levels:  p.Levels(),
		workers: defaultWorkers(),
		merge:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.builder == nil {
		e.builder = CPUDistance{Workers: e.workers}
	}
	e.dist = NewDistanceField(width, height)
	e.mat = NewMaterialField(width, height)
	e.pyr = NewPyramid(gw, gh, len(e.levels))
	e.irr = NewIrradiance(width, height)
	e.merger = NewMerger(p, e.workers)
	e.stats.Levels = make([]time.Duration, len(e.levels))
	return e, nil
}

// Compute rebuilds the distance field, the materials and every cascade level
// from sc, then merges the pyramid into irradiance when merging is enabled.
func (e *Engine) Compute(sc *shape.Scene) error {
	if sc.Width != e.width || sc.Height != e.height {
		return fmt.Errorf("scene is %dx%d, engine is %dx%d", sc.Width, sc.Height, e.width, e.height)
	}
	start := time.Now()
	t := start
	if err := e.builder.BuildDistance(sc, e.dist); err != nil {
		return fmt.Errorf("build distance field: %w", err)
	}
	e.stats.Distance = time.Since(t)

	t = time.Now()
	if err := BuildMaterials(sc, e.mat, e.workers); err != nil {
		return fmt.Errorf("build materials: %w", err)
	}
	e.stats.Materials = time.Since(t)

	for i := len(e.levels) - 1; i >= 0; i-- {
		t = time.Now()
		if err := BuildLevel(e.dist, e.mat, e.pyr, e.levels[i], e.workers); err != nil {
			return fmt.Errorf("build cascade %d: %w", i, err)
		}
		e.stats.Levels[i] = time.Since(t)
	}

	e.stats.Merge = 0
	if e.merge {
		t = time.Now()
		if err := e.merger.Merge(e.pyr, e.irr); err != nil {
			return fmt.Errorf("merge cascades: %w", err)
		}
		e.stats.Merge = time.Since(t)
	}
	e.stats.Total = time.Since(start)
	return nil
}

// SetMerge toggles the merge stage for later Compute calls.
func (e *Engine) SetMerge(on bool) { e.merge = on }

func (e *Engine) Merging() bool { return e.merge }

func (e *Engine) Distance() *DistanceField  { return e.dist }
func (e *Engine) Materials() *MaterialField { return e.mat }
func (e *Engine) Pyramid() *Pyramid         { return e.pyr }
func (e *Engine) Irradiance() *Irradiance   { return e.irr }
func (e *Engine) Params() Params            { return e.params }
func (e *Engine) Levels() []Level           { return e.levels }
func (e *Engine) Workers() int              { return e.workers }

// Stats returns the stage timings of the last Compute.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Levels = append([]time.Duration(nil), e.stats.Levels...)
	return s
}

// Footprint reports the number of buffers the engine allocated and their
// combined size in bytes.
func (e *Engine) Footprint() (buffers int, bytes int) {
	const (
		sampleSize   = 20
		materialSize = 20
		colorSize    = 16
	)
	bytes += len(e.dist.Data) * 4
	bytes += len(e.mat.Data) * materialSize
	bytes += len(e.pyr.Data) * sampleSize
	bytes += len(e.irr.Data) * colorSize
	for _, s := range e.merger.scratch {
		bytes += len(s) * sampleSize
	}
	return 3 + e.pyr.Depth, bytes
}

// Summary describes the allocation for the startup log: the buffer count,
// the shared radiance grid size and the total footprint.
func (e *Engine) Summary() string {
	buffers, bytes := e.Footprint()
	return fmt.Sprintf("%d buffers of %dx%d (%dKB total)", buffers, e.pyr.Width, e.pyr.Height, bytes/1024)
}

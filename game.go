package main

import (
	"fmt"
	"log"
	"time"

	"RC/internal/cascade"
	"RC/internal/config"
	"RC/internal/overlay"
	"RC/internal/shape"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/soypat/glgl/math/ms2"
)

// viewState holds the display toggles driven by the keyboard.
type viewState struct {
	illumination bool
	objects      bool
	distanceMap  bool
	rays         bool
	holographic  bool
	important    bool
	level        int // allLevels draws rays of every level
}

// Game owns the scene, the cascade engine and the frame buffer shown by
// ebiten.
type Game struct {
	cfg           *config.Config
	width, height int

	scene  *shape.Scene
	engine *cascade.Engine
	gpu    *openCLDistanceBuilder
	canvas *overlay.Canvas

	view  viewState
	drag  int
	mouse ms2.Vec
	dirty bool

	lastCompute time.Duration
	lastLog     time.Time
}

// newGame builds the scene and allocates every pipeline buffer.
func newGame(cfg *config.Config) (*Game, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	log.Printf("Will render %d cascades", p.MaxCascade+1)

	sc, err := cfg.BuildScene()
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:    cfg,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		scene:  sc,
		canvas: overlay.NewCanvas(cfg.Window.Width, cfg.Window.Height),
		view: viewState{
			illumination: cfg.Render.Illumination,
			objects:      cfg.Render.Objects,
			distanceMap:  cfg.Render.DistanceMap,
			rays:         cfg.Render.Rays,
			holographic:  cfg.Render.HolographicRays,
			level:        allLevels,
		},
		drag:  -1,
		dirty: true,
	}

	opts := []cascade.Option{cascade.WithMerge(g.view.illumination)}
	if *workersFlag > 0 {
		opts = append(opts, cascade.WithWorkers(*workersFlag))
	}
	if *openCLFlag {
		if b, err := newOpenCLDistanceBuilder(g.width, g.height); err != nil {
			log.Printf("OpenCL unavailable, building the distance field on the CPU: %v", err)
		} else {
			log.Printf("OpenCL distance field enabled (device: %s)", b.DeviceName())
			g.gpu = b
			opts = append(opts, cascade.WithDistanceBuilder(b))
		}
	}
	g.engine, err = cascade.NewEngine(g.width, g.height, p, opts...)
	if err != nil {
		g.Close()
		return nil, err
	}
	log.Printf("Allocated %s", g.engine.Summary())
	return g, nil
}

// Close releases the OpenCL device, if any.
func (g *Game) Close() {
	if g.gpu != nil {
		g.gpu.Close()
		g.gpu = nil
	}
}

// Update handles input and recomputes the lighting when the scene or the
// illumination toggle changed.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleInput()
	if g.dirty {
		if err := g.compute(); err != nil {
			return err
		}
	}
	g.logTiming()
	return nil
}

func (g *Game) compute() error {
	g.engine.SetMerge(g.view.illumination)
	start := time.Now()
	if err := g.engine.Compute(g.scene); err != nil {
		return fmt.Errorf("computing frame: %w", err)
	}
	g.lastCompute = time.Since(start)
	g.dirty = false
	return nil
}

func (g *Game) logTiming() {
	if !*debugFlag {
		return
	}
	now := time.Now()
	if now.Sub(g.lastLog) < debugLogInterval {
		return
	}
	g.lastLog = now
	st := g.engine.Stats()
	var levels time.Duration
	for _, d := range st.Levels {
		levels += d
	}
	log.Printf("FPS %.1f, last compute %.2f ms (distance %.2f, materials %.2f, cascades %.2f, merge %.2f)",
		ebiten.ActualFPS(), msec(st.Total), msec(st.Distance), msec(st.Materials), msec(levels), msec(st.Merge))
}

func msec(d time.Duration) float64 { return d.Seconds() * 1000 }
